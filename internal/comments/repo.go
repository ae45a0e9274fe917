package comments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dramahub/pkg/models"
)

var (
	ErrNotFound       = errors.New("comment not found")
	ErrReviewNotFound = errors.New("review not found")
	ErrNotOwner       = errors.New("comment belongs to another user")
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) Create(ctx context.Context, reviewID int64, userID, content string) (*models.Comment, error) {
	var rid int64
	err := r.DB.QueryRowContext(ctx, `SELECT id FROM reviews WHERE id = ?`, reviewID).Scan(&rid)
	if err == sql.ErrNoRows {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("check review: %w", err)
	}

	var id int64
	err = r.DB.QueryRowContext(ctx, `
		INSERT INTO comments (review_id, user_id, content)
		VALUES (?, ?, ?)
		RETURNING id
	`, reviewID, userID, content).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *Repo) FindByID(ctx context.Context, id int64) (*models.Comment, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT c.id, c.review_id, c.user_id, c.content, c.created_at, u.username
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = ?
	`, id)

	var cm models.Comment
	err := row.Scan(&cm.ID, &cm.ReviewID, &cm.UserID, &cm.Content, &cm.CreatedAt, &cm.Username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return &cm, nil
}

func (r *Repo) ListByReview(ctx context.Context, reviewID int64, limit, offset int) ([]models.Comment, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT c.id, c.review_id, c.user_id, c.content, c.created_at, u.username
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.review_id = ?
		ORDER BY c.created_at ASC
		LIMIT ? OFFSET ?
	`, reviewID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	out := []models.Comment{}
	for rows.Next() {
		var cm models.Comment
		if err := rows.Scan(&cm.ID, &cm.ReviewID, &cm.UserID, &cm.Content, &cm.CreatedAt, &cm.Username); err != nil {
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		out = append(out, cm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
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

	if _, err := r.DB.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
