package feed

import "time"

// Event types pushed over the live feed.
const (
	EventReviewCreated    = "review.created"
	EventWatchlistUpdated = "watchlist.updated"
)

type Event struct {
	Type      string    `json:"type"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	ShowID    int64     `json:"show_id"`
	ShowTitle string    `json:"show_title,omitempty"`
	Status    string    `json:"status,omitempty"`
	Rating    int       `json:"rating,omitempty"`
	At        time.Time `json:"at"`
}
