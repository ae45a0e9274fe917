package shows

import (
	"context"
	"database/sql"
	"fmt"

	"dramahub/pkg/models"
)

// UpsertScope controls which fields an upsert touches when the natural key
// (tmdb_id, media_type) already exists. Listing payloads are lighter than
// detail payloads and must not overwrite title/synopsis with stale data.
type UpsertScope int

const (
	// ScopePopularity refreshes only popularity-class fields on conflict.
	ScopePopularity UpsertScope = iota
	// ScopeFull refreshes every mutable field on conflict.
	ScopeFull
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

const showColumns = `
	id, tmdb_id, media_type, title, synopsis, release_year, poster_url,
	popularity, vote_average, total_episodes, created_at, updated_at
`

// FindByID looks a show up by its local surrogate key. Returns nil, nil on
// miss like every repo in this codebase.
func (r *Repo) FindByID(ctx context.Context, id int64) (*models.Show, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+showColumns+`
		FROM shows
		WHERE id = ?
	`, id)
	return scanShow(row)
}

// FindByTMDBID is the kind-agnostic provider-id lookup: if the same TMDB id
// exists as both a movie and a series, the oldest local row wins.
func (r *Repo) FindByTMDBID(ctx context.Context, tmdbID int64) (*models.Show, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+showColumns+`
		FROM shows
		WHERE tmdb_id = ?
		ORDER BY id ASC
		LIMIT 1
	`, tmdbID)
	return scanShow(row)
}

// Upsert inserts or updates a show in a single atomic statement, so two
// requests resolving the same identifier concurrently converge on one row.
// The local id is preserved on conflict; which request wins the mutable
// fields is last-committed.
func (r *Repo) Upsert(ctx context.Context, s models.Show, scope UpsertScope) (*models.Show, error) {
	conflictSet := `
		popularity = excluded.popularity,
		vote_average = excluded.vote_average,
		updated_at = CURRENT_TIMESTAMP
	`
	if scope == ScopeFull {
		conflictSet = `
		title = excluded.title,
		synopsis = excluded.synopsis,
		release_year = excluded.release_year,
		poster_url = excluded.poster_url,
		popularity = excluded.popularity,
		vote_average = excluded.vote_average,
		total_episodes = excluded.total_episodes,
		updated_at = CURRENT_TIMESTAMP
	`
	}

	var id int64
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO shows
			(tmdb_id, media_type, title, synopsis, release_year, poster_url,
			 popularity, vote_average, total_episodes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(tmdb_id, media_type) DO UPDATE SET`+conflictSet+`
		RETURNING id
	`,
		s.TMDBID,
		s.MediaType,
		s.Title,
		nullString(s.Synopsis),
		nullInt(s.ReleaseYear),
		nullString(s.PosterURL),
		s.Popularity,
		s.VoteAverage,
		nullInt(s.TotalEpisodes),
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("upsert show tmdb=%d kind=%s: %w", s.TMDBID, s.MediaType, err)
	}

	return r.FindByID(ctx, id)
}

func (r *Repo) ListPopular(ctx context.Context, limit int) ([]models.Show, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+showColumns+`
		FROM shows
		ORDER BY popularity DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list popular shows: %w", err)
	}
	defer rows.Close()

	out := make([]models.Show, 0, limit)
	for rows.Next() {
		s, err := scanShowRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShowFrom(sc rowScanner) (*models.Show, error) {
	var (
		s           models.Show
		synopsis    sql.NullString
		releaseYear sql.NullInt64
		posterURL   sql.NullString
		episodes    sql.NullInt64
	)
	if err := sc.Scan(
		&s.ID, &s.TMDBID, &s.MediaType, &s.Title, &synopsis, &releaseYear,
		&posterURL, &s.Popularity, &s.VoteAverage, &episodes,
		&s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.Synopsis = synopsis.String
	if releaseYear.Valid {
		s.ReleaseYear = int(releaseYear.Int64)
	}
	s.PosterURL = posterURL.String
	if episodes.Valid {
		s.TotalEpisodes = int(episodes.Int64)
	}
	return &s, nil
}

func scanShow(row *sql.Row) (*models.Show, error) {
	s, err := scanShowFrom(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan show: %w", err)
	}
	return s, nil
}

func scanShowRows(rows *sql.Rows) (*models.Show, error) {
	s, err := scanShowFrom(rows)
	if err != nil {
		return nil, fmt.Errorf("scan show row: %w", err)
	}
	return s, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}
