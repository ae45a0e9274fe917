package models

// Genre mirrors one row of the provider's genre taxonomy. The local genres
// table is a full replica of the merged movie+series lists.
type Genre struct {
	ID     int64  `json:"id"`
	TMDBID int64  `json:"tmdb_id"`
	Name   string `json:"name"`
}
