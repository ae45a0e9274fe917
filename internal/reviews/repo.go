package reviews

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"dramahub/pkg/models"
)

var (
	ErrNotFound     = errors.New("review not found")
	ErrDuplicate    = errors.New("user already reviewed this show")
	ErrShowNotFound = errors.New("show not found")
	ErrNotOwner     = errors.New("review belongs to another user")
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

const reviewColumns = `r.id, r.user_id, r.show_id, r.rating, r.content, r.contains_spoilers,
	r.created_at, r.updated_at, u.username`

// Create inserts a review. A user gets one review per show.
func (r *Repo) Create(ctx context.Context, rev *models.Review) (*models.Review, error) {
	var showID int64
	err := r.DB.QueryRowContext(ctx, `SELECT id FROM shows WHERE id = ?`, rev.ShowID).Scan(&showID)
	if err == sql.ErrNoRows {
		return nil, ErrShowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("check show: %w", err)
	}

	var id int64
	err = r.DB.QueryRowContext(ctx, `
		INSERT INTO reviews (user_id, show_id, rating, content, contains_spoilers)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`, rev.UserID, rev.ShowID, rev.Rating, rev.Content, rev.ContainsSpoilers).Scan(&id)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert review: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *Repo) FindByID(ctx context.Context, id int64) (*models.Review, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.id = ?
	`, id)

	rev, err := scanReview(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return rev, nil
}

func (r *Repo) ListByShow(ctx context.Context, showID int64, limit, offset int) ([]models.Review, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE show_id = ?`, showID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.show_id = ?
		ORDER BY r.created_at DESC
		LIMIT ? OFFSET ?
	`, showID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	out := make([]models.Review, 0, limit)
	for rows.Next() {
		rev, err := scanReview(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("scan review row: %w", err)
		}
		out = append(out, *rev)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows err: %w", err)
	}
	return out, total, nil
}

func (r *Repo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.user_id = ?
		ORDER BY r.created_at DESC
		LIMIT ? OFFSET ?
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list user reviews: %w", err)
	}
	defer rows.Close()

	out := make([]models.Review, 0, limit)
	for rows.Next() {
		rev, err := scanReview(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		out = append(out, *rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// Update rewrites the review body. Only the author may update.
func (r *Repo) Update(ctx context.Context, id int64, userID string, rating int, content string, spoilers bool) (*models.Review, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	if existing.UserID != userID {
		return nil, ErrNotOwner
	}

	_, err = r.DB.ExecContext(ctx, `
		UPDATE reviews
		SET rating = ?, content = ?, contains_spoilers = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, rating, content, spoilers, id)
	if err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *Repo) Delete(ctx context.Context, id int64, userID string) error {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if existing.UserID != userID {
		return ErrNotOwner
	}

	if _, err := r.DB.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

func scanReview(scan func(dest ...any) error) (*models.Review, error) {
	var rev models.Review
	if err := scan(
		&rev.ID, &rev.UserID, &rev.ShowID, &rev.Rating, &rev.Content, &rev.ContainsSpoilers,
		&rev.CreatedAt, &rev.UpdatedAt, &rev.Username,
	); err != nil {
		return nil, err
	}
	return &rev, nil
}
