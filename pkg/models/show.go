package models

import "time"

// Media kinds a show row can carry. The same TMDB id can exist once per kind,
// so (tmdb_id, media_type) is the natural key of the shows table.
const (
	KindMovie  = "movie"
	KindSeries = "series"
)

// Show is the locally cached form of a TMDB movie or series. ID is our
// surrogate key and stays stable across re-syncs; TMDBID is the provider key.
type Show struct {
	ID            int64     `json:"id"`
	TMDBID        int64     `json:"tmdb_id"`
	MediaType     string    `json:"media_type"`
	Title         string    `json:"title"`
	Synopsis      string    `json:"synopsis,omitempty"`
	ReleaseYear   int       `json:"release_year,omitempty"`
	PosterURL     string    `json:"poster_url,omitempty"`
	Popularity    float64   `json:"popularity"`
	VoteAverage   float64   `json:"vote_average"`
	TotalEpisodes int       `json:"total_episodes,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

// CastMember is a per-show credit. Never persisted: always recomputed live
// from the provider when a show is resolved.
type CastMember struct {
	TMDBID    int64  `json:"tmdb_id"`
	Name      string `json:"name"`
	Character string `json:"character,omitempty"`
	Order     int    `json:"order"`
	PhotoURL  string `json:"photo_url"`
}

// ShowDetail is a resolved show plus its best-effort enrichment. TrailerKey
// is empty when no YouTube video exists for the show.
type ShowDetail struct {
	Show
	Cast       []CastMember `json:"cast"`
	TrailerKey string       `json:"trailer_key,omitempty"`
}
