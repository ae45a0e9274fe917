package models

// Actor is a locally cached TMDB person. TMDBID is globally unique; photo and
// popularity are refreshed from the provider on every touch.
type Actor struct {
	ID         int64   `json:"id"`
	TMDBID     int64   `json:"tmdb_id"`
	Name       string  `json:"name"`
	PhotoURL   string  `json:"photo_url,omitempty"`
	Popularity float64 `json:"popularity"`
}

// ActorCredit is one show an actor is known for, recomputed live.
type ActorCredit struct {
	TMDBID     int64   `json:"tmdb_id"`
	MediaType  string  `json:"media_type"`
	Title      string  `json:"title"`
	Character  string  `json:"character,omitempty"`
	PosterURL  string  `json:"poster_url,omitempty"`
	Popularity float64 `json:"popularity"`
}

// ActorDetail is a resolved actor plus best-effort known-for credits and,
// for authenticated callers, follow state.
type ActorDetail struct {
	Actor
	KnownFor    []ActorCredit `json:"known_for"`
	IsFollowing bool          `json:"is_following"`
}
