package actors

import (
	"context"
	"database/sql"
	"fmt"

	"dramahub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) FindByID(ctx context.Context, id int64) (*models.Actor, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, tmdb_id, name, photo_url, popularity
		FROM actors
		WHERE id = ?
	`, id)
	return scanActor(row)
}

func (r *Repo) FindByTMDBID(ctx context.Context, tmdbID int64) (*models.Actor, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, tmdb_id, name, photo_url, popularity
		FROM actors
		WHERE tmdb_id = ?
	`, tmdbID)
	return scanActor(row)
}

// Upsert inserts or refreshes an actor in one atomic statement keyed on the
// TMDB id. Photo and popularity are last-write-wins from the provider; the
// local id never changes once assigned.
func (r *Repo) Upsert(ctx context.Context, a models.Actor) (*models.Actor, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO actors (tmdb_id, name, photo_url, popularity)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(tmdb_id) DO UPDATE SET
			name = excluded.name,
			photo_url = excluded.photo_url,
			popularity = excluded.popularity
		RETURNING id
	`, a.TMDBID, a.Name, nullString(a.PhotoURL), a.Popularity).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("upsert actor tmdb=%d: %w", a.TMDBID, err)
	}
	return r.FindByID(ctx, id)
}

func (r *Repo) ListPopular(ctx context.Context, limit int) ([]models.Actor, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, tmdb_id, name, photo_url, popularity
		FROM actors
		ORDER BY popularity DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list popular actors: %w", err)
	}
	defer rows.Close()

	out := make([]models.Actor, 0, limit)
	for rows.Next() {
		var (
			a     models.Actor
			photo sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.TMDBID, &a.Name, &photo, &a.Popularity); err != nil {
			return nil, fmt.Errorf("scan actor row: %w", err)
		}
		a.PhotoURL = photo.String
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM actors`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count actors: %w", err)
	}
	return n, nil
}

func scanActor(row *sql.Row) (*models.Actor, error) {
	var (
		a     models.Actor
		photo sql.NullString
	)
	if err := row.Scan(&a.ID, &a.TMDBID, &a.Name, &photo, &a.Popularity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan actor: %w", err)
	}
	a.PhotoURL = photo.String
	return &a, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
