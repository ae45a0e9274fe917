package models

import "time"

// Watchlist statuses. "completed" and "dropped" are terminal and are the only
// ones surfaced in followers' feeds.
const (
	StatusToWatch   = "to_watch"
	StatusWatching  = "watching"
	StatusCompleted = "completed"
	StatusDropped   = "dropped"
)

type WatchlistItem struct {
	UserID         string    `json:"user_id"`
	ShowID         int64     `json:"show_id"`
	Status         string    `json:"status"`
	CurrentEpisode int       `json:"current_episode"`
	Rating         *int      `json:"rating,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Joined show fields for list views.
	Title     string `json:"title,omitempty"`
	PosterURL string `json:"poster_url,omitempty"`
}
