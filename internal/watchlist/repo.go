package watchlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"dramahub/pkg/models"
)

var (
	ErrShowNotFound = errors.New("show not found")
	ErrItemNotFound = errors.New("watchlist item not found")
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// Upsert inserts or replaces a user's watchlist entry for a show. The show
// must already exist locally; the reconciliation layer is the only thing
// that creates shows.
func (r *Repo) Upsert(ctx context.Context, item models.WatchlistItem) error {
	var showID int64
	err := r.DB.QueryRowContext(ctx, `SELECT id FROM shows WHERE id = ?`, item.ShowID).Scan(&showID)
	if err == sql.ErrNoRows {
		return ErrShowNotFound
	}
	if err != nil {
		return fmt.Errorf("check show: %w", err)
	}

	var rating any
	if item.Rating != nil {
		rating = *item.Rating
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO watchlist (user_id, show_id, status, current_episode, rating, notes, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, show_id) DO UPDATE SET
			status = excluded.status,
			current_episode = excluded.current_episode,
			rating = excluded.rating,
			notes = excluded.notes,
			updated_at = CURRENT_TIMESTAMP
	`, item.UserID, item.ShowID, item.Status, item.CurrentEpisode, rating, item.Notes)
	if err != nil {
		return fmt.Errorf("upsert watchlist item: %w", err)
	}
	return nil
}

// UpdateFields applies a partial update; only the provided fields change.
type UpdateFields struct {
	Status         *string
	CurrentEpisode *int
	Rating         *int
	Notes          *string
}

func (r *Repo) Update(ctx context.Context, userID string, showID int64, fields UpdateFields) error {
	var set []string
	var args []any

	if fields.Status != nil {
		set = append(set, "status = ?")
		args = append(args, *fields.Status)
	}
	if fields.CurrentEpisode != nil {
		set = append(set, "current_episode = ?")
		args = append(args, *fields.CurrentEpisode)
	}
	if fields.Rating != nil {
		set = append(set, "rating = ?")
		args = append(args, *fields.Rating)
	}
	if fields.Notes != nil {
		set = append(set, "notes = ?")
		args = append(args, *fields.Notes)
	}
	if len(set) == 0 {
		return errors.New("no fields to update")
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")

	args = append(args, userID, showID)
	res, err := r.DB.ExecContext(ctx, `
		UPDATE watchlist
		SET `+strings.Join(set, ", ")+`
		WHERE user_id = ? AND show_id = ?
	`, args...)
	if err != nil {
		return fmt.Errorf("update watchlist item: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, userID string, showID int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM watchlist
		WHERE user_id = ? AND show_id = ?
	`, userID, showID)
	if err != nil {
		return false, fmt.Errorf("delete watchlist item: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *Repo) Get(ctx context.Context, userID string, showID int64) (*models.WatchlistItem, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT w.user_id, w.show_id, w.status, w.current_episode, w.rating, w.notes, w.updated_at,
		       s.title, s.poster_url
		FROM watchlist w
		JOIN shows s ON s.id = w.show_id
		WHERE w.user_id = ? AND w.show_id = ?
	`, userID, showID)

	item, err := scanItem(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get watchlist item: %w", err)
	}
	return item, nil
}

func (r *Repo) List(ctx context.Context, userID string, status string, limit, offset int) ([]models.WatchlistItem, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	where := "w.user_id = ?"
	args := []any{userID}
	if status != "" {
		where += " AND w.status = ?"
		args = append(args, status)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM watchlist w WHERE `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count watchlist: %w", err)
	}

	args = append(args, limit, offset)
	rows, err := r.DB.QueryContext(ctx, `
		SELECT w.user_id, w.show_id, w.status, w.current_episode, w.rating, w.notes, w.updated_at,
		       s.title, s.poster_url
		FROM watchlist w
		JOIN shows s ON s.id = w.show_id
		WHERE `+where+`
		ORDER BY w.updated_at DESC
		LIMIT ? OFFSET ?
	`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list watchlist: %w", err)
	}
	defer rows.Close()

	out := make([]models.WatchlistItem, 0, limit)
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("scan watchlist row: %w", err)
		}
		out = append(out, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows err: %w", err)
	}

	return out, total, nil
}

func scanItem(scan func(dest ...any) error) (*models.WatchlistItem, error) {
	var (
		it      models.WatchlistItem
		rating  sql.NullInt64
		notes   sql.NullString
		poster  sql.NullString
		updated time.Time
	)
	if err := scan(
		&it.UserID, &it.ShowID, &it.Status, &it.CurrentEpisode, &rating, &notes, &updated,
		&it.Title, &poster,
	); err != nil {
		return nil, err
	}
	if rating.Valid {
		v := int(rating.Int64)
		it.Rating = &v
	}
	it.Notes = notes.String
	it.PosterURL = poster.String
	it.UpdatedAt = updated
	return &it, nil
}
