package models

import "time"

type Review struct {
	ID               int64     `json:"id"`
	UserID           string    `json:"user_id"`
	ShowID           int64     `json:"show_id"`
	Rating           int       `json:"rating"`
	Content          string    `json:"content,omitempty"`
	ContainsSpoilers bool      `json:"contains_spoilers"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Joined author name for list views.
	Username string `json:"username,omitempty"`
}

type Comment struct {
	ID        int64     `json:"id"`
	ReviewID  int64     `json:"review_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username,omitempty"`
}
