package tmdb

// ShowPayload covers both movie and tv shapes: movies populate Title and
// ReleaseDate, series populate Name and FirstAirDate. Multi-search results
// additionally carry MediaType ("movie", "tv" or "person").
type ShowPayload struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Name             string  `json:"name"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	ReleaseDate      string  `json:"release_date"`
	FirstAirDate     string  `json:"first_air_date"`
	Popularity       float64 `json:"popularity"`
	VoteAverage      float64 `json:"vote_average"`
	NumberOfEpisodes int     `json:"number_of_episodes"`
	OriginalLanguage string  `json:"original_language"`
	MediaType        string  `json:"media_type"`
}

// DisplayTitle picks whichever title field the payload's kind filled in.
func (p ShowPayload) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Name
}

// ReleaseDateField is the date string for whichever kind this payload is.
func (p ShowPayload) ReleaseDateField() string {
	if p.ReleaseDate != "" {
		return p.ReleaseDate
	}
	return p.FirstAirDate
}

type showListPayload struct {
	Results []ShowPayload `json:"results"`
}

type PersonPayload struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	ProfilePath string  `json:"profile_path"`
	Popularity  float64 `json:"popularity"`
}

type personListPayload struct {
	Results []PersonPayload `json:"results"`
}

type CastPayload struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	Order       int     `json:"order"`
	ProfilePath string  `json:"profile_path"`
	Popularity  float64 `json:"popularity"`
}

type CreditsPayload struct {
	Cast []CastPayload `json:"cast"`
}

type VideoPayload struct {
	Key      string `json:"key"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

type VideosPayload struct {
	Results []VideoPayload `json:"results"`
}

type GenrePayload struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type genreListPayload struct {
	Genres []GenrePayload `json:"genres"`
}

// PersonCreditPayload is one entry of a person's combined credits.
type PersonCreditPayload struct {
	ID         int64   `json:"id"`
	MediaType  string  `json:"media_type"`
	Title      string  `json:"title"`
	Name       string  `json:"name"`
	Character  string  `json:"character"`
	PosterPath string  `json:"poster_path"`
	Popularity float64 `json:"popularity"`
}

func (p PersonCreditPayload) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Name
}

type personCreditsPayload struct {
	Cast []PersonCreditPayload `json:"cast"`
}
