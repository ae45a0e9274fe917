package follows

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	ErrSelfFollow    = errors.New("cannot follow yourself")
	ErrAlreadyExists = errors.New("already following")
	ErrNotFollowing  = errors.New("not following")
	ErrUserNotFound  = errors.New("user not found")
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// UserSummary is the public slice of a profile shown in follower lists.
type UserSummary struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

func (r *Repo) Follow(ctx context.Context, followerID, followedID string) error {
	if followerID == followedID {
		return ErrSelfFollow
	}

	var id string
	err := r.DB.QueryRowContext(ctx, `SELECT id FROM users WHERE id = ?`, followedID).Scan(&id)
	if err == sql.ErrNoRows {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, `
		INSERT OR IGNORE INTO follows (follower_id, followed_id) VALUES (?, ?)
	`, followerID, followedID)
	if err != nil {
		return fmt.Errorf("insert follow: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (r *Repo) Unfollow(ctx context.Context, followerID, followedID string) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM follows WHERE follower_id = ? AND followed_id = ?
	`, followerID, followedID)
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFollowing
	}
	return nil
}

func (r *Repo) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, `
		SELECT 1 FROM follows WHERE follower_id = ? AND followed_id = ?
	`, followerID, followedID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}
	return true, nil
}

func (r *Repo) Followers(ctx context.Context, userID string) ([]UserSummary, error) {
	return r.listUsers(ctx, `
		SELECT u.id, u.username, u.avatar_url
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.followed_id = ?
		ORDER BY f.created_at DESC
	`, userID)
}

func (r *Repo) Following(ctx context.Context, userID string) ([]UserSummary, error) {
	return r.listUsers(ctx, `
		SELECT u.id, u.username, u.avatar_url
		FROM follows f
		JOIN users u ON u.id = f.followed_id
		WHERE f.follower_id = ?
		ORDER BY f.created_at DESC
	`, userID)
}

func (r *Repo) Counts(ctx context.Context, userID string) (followers, following int, err error) {
	if err = r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM follows WHERE followed_id = ?`, userID,
	).Scan(&followers); err != nil {
		return 0, 0, fmt.Errorf("count followers: %w", err)
	}
	if err = r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM follows WHERE follower_id = ?`, userID,
	).Scan(&following); err != nil {
		return 0, 0, fmt.Errorf("count following: %w", err)
	}
	return followers, following, nil
}

func (r *Repo) listUsers(ctx context.Context, query, arg string) ([]UserSummary, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := []UserSummary{}
	for rows.Next() {
		var u UserSummary
		var avatar sql.NullString
		if err := rows.Scan(&u.ID, &u.Username, &avatar); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		u.AvatarURL = avatar.String
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// FollowActor records a follow on a locally cached actor row.
func (r *Repo) FollowActor(ctx context.Context, userID string, actorID int64) error {
	res, err := r.DB.ExecContext(ctx, `
		INSERT OR IGNORE INTO actor_follows (user_id, actor_id) VALUES (?, ?)
	`, userID, actorID)
	if err != nil {
		return fmt.Errorf("insert actor follow: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (r *Repo) UnfollowActor(ctx context.Context, userID string, actorID int64) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM actor_follows WHERE user_id = ? AND actor_id = ?
	`, userID, actorID)
	if err != nil {
		return fmt.Errorf("delete actor follow: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFollowing
	}
	return nil
}

func (r *Repo) IsFollowingActor(ctx context.Context, userID string, actorID int64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, `
		SELECT 1 FROM actor_follows WHERE user_id = ? AND actor_id = ?
	`, userID, actorID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check actor follow: %w", err)
	}
	return true, nil
}
