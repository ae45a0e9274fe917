package likes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dramahub/pkg/models"
)

var (
	ErrShowNotFound   = errors.New("show not found")
	ErrReviewNotFound = errors.New("review not found")
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// ToggleShow flips the user's like on a show and reports the new state plus
// the show's like count.
func (r *Repo) ToggleShow(ctx context.Context, userID string, showID int64) (liked bool, count int, err error) {
	var id int64
	err = r.DB.QueryRowContext(ctx, `SELECT id FROM shows WHERE id = ?`, showID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, 0, ErrShowNotFound
	}
	if err != nil {
		return false, 0, fmt.Errorf("check show: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM likes WHERE user_id = ? AND show_id = ?
	`, userID, showID)
	if err != nil {
		return false, 0, fmt.Errorf("unlike show: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		if _, err := r.DB.ExecContext(ctx, `
			INSERT INTO likes (user_id, show_id) VALUES (?, ?)
		`, userID, showID); err != nil {
			return false, 0, fmt.Errorf("like show: %w", err)
		}
		liked = true
	}

	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM likes WHERE show_id = ?`, showID,
	).Scan(&count); err != nil {
		return liked, 0, fmt.Errorf("count show likes: %w", err)
	}
	return liked, count, nil
}

// ToggleReview flips the user's like on a review.
func (r *Repo) ToggleReview(ctx context.Context, userID string, reviewID int64) (liked bool, count int, err error) {
	var id int64
	err = r.DB.QueryRowContext(ctx, `SELECT id FROM reviews WHERE id = ?`, reviewID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, 0, ErrReviewNotFound
	}
	if err != nil {
		return false, 0, fmt.Errorf("check review: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM review_likes WHERE user_id = ? AND review_id = ?
	`, userID, reviewID)
	if err != nil {
		return false, 0, fmt.Errorf("unlike review: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		if _, err := r.DB.ExecContext(ctx, `
			INSERT INTO review_likes (user_id, review_id) VALUES (?, ?)
		`, userID, reviewID); err != nil {
			return false, 0, fmt.Errorf("like review: %w", err)
		}
		liked = true
	}

	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM review_likes WHERE review_id = ?`, reviewID,
	).Scan(&count); err != nil {
		return liked, 0, fmt.Errorf("count review likes: %w", err)
	}
	return liked, count, nil
}

// ListShows returns the shows a user has liked, newest first.
func (r *Repo) ListShows(ctx context.Context, userID string, limit, offset int) ([]models.Show, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT s.id, s.tmdb_id, s.media_type, s.title, s.synopsis, s.release_year,
		       s.poster_url, s.popularity, s.vote_average, s.total_episodes,
		       s.created_at, s.updated_at
		FROM likes l
		JOIN shows s ON s.id = l.show_id
		WHERE l.user_id = ?
		ORDER BY l.created_at DESC
		LIMIT ? OFFSET ?
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list liked shows: %w", err)
	}
	defer rows.Close()

	out := []models.Show{}
	for rows.Next() {
		var (
			s        models.Show
			synopsis sql.NullString
			year     sql.NullInt64
			poster   sql.NullString
			episodes sql.NullInt64
		)
		if err := rows.Scan(
			&s.ID, &s.TMDBID, &s.MediaType, &s.Title, &synopsis, &year,
			&poster, &s.Popularity, &s.VoteAverage, &episodes,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan liked show: %w", err)
		}
		s.Synopsis = synopsis.String
		s.ReleaseYear = int(year.Int64)
		s.PosterURL = poster.String
		s.TotalEpisodes = int(episodes.Int64)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}
