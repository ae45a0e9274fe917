package models

import "time"

// Feed item types.
const (
	FeedReview    = "review"
	FeedWatchlist = "watchlist"
)

// FeedItem is one row of the activity feed: either a review or a terminal
// watchlist update from a followed user.
type FeedItem struct {
	Type      string    `json:"type"`
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	ShowID    int64     `json:"show_id"`
	ShowTitle string    `json:"show_title"`
	PosterURL string    `json:"poster_url,omitempty"`
	Content   string    `json:"content,omitempty"`
	Rating    *int      `json:"rating,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
