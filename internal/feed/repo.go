package feed

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

const feedQuery = `
	SELECT 'review' AS type, r.id, r.user_id, u.username, r.show_id, s.title, s.poster_url,
	       r.content, r.rating, r.created_at AS created_at
	FROM reviews r
	JOIN users u ON u.id = r.user_id
	JOIN shows s ON s.id = r.show_id
	%s
	UNION ALL
	SELECT 'watchlist' AS type, 0, w.user_id, u.username, w.show_id, s.title, s.poster_url,
	       '', w.rating, w.updated_at AS created_at
	FROM watchlist w
	JOIN users u ON u.id = w.user_id
	JOIN shows s ON s.id = w.show_id
	%s
	ORDER BY created_at DESC
	LIMIT ?`

// FollowedFeed returns recent activity from users the viewer follows:
// new reviews plus completed or dropped watchlist updates.
func (r *Repo) FollowedFeed(ctx context.Context, userID string, limit int) ([]models.FeedItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	q := fmt.Sprintf(feedQuery,
		`WHERE r.user_id IN (SELECT followed_id FROM follows WHERE follower_id = ?)`,
		`WHERE w.status IN ('completed', 'dropped')
	  AND w.user_id IN (SELECT followed_id FROM follows WHERE follower_id = ?)`,
	)

	rows, err := r.DB.QueryContext(ctx, q, userID, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query followed feed: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// GlobalFeed returns the most recent activity across all users.
func (r *Repo) GlobalFeed(ctx context.Context, limit int) ([]models.FeedItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	q := fmt.Sprintf(feedQuery, "", `WHERE w.status IN ('completed', 'dropped')`)

	rows, err := r.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query global feed: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

func collectItems(rows *sql.Rows) ([]models.FeedItem, error) {
	out := []models.FeedItem{}
	for rows.Next() {
		var (
			it      models.FeedItem
			poster  sql.NullString
			content sql.NullString
			rating  sql.NullInt64
		)
		if err := rows.Scan(
			&it.Type, &it.ID, &it.UserID, &it.Username, &it.ShowID, &it.ShowTitle, &poster,
			&content, &rating, &it.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan feed row: %w", err)
		}
		it.PosterURL = poster.String
		it.Content = content.String
		if rating.Valid {
			v := int(rating.Int64)
			it.Rating = &v
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}
