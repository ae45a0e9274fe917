package shows

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"dramahub/internal/tmdb"
	"dramahub/pkg/models"
)

// ErrNotFound is the terminal outcome of show resolution: the identifier
// matched nothing locally and the provider knows it as neither a movie nor a
// series.
var ErrNotFound = errors.New("show not found")

const castLimit = 10

// Provider is the slice of the TMDB client show resolution needs. Tests
// substitute a fake.
type Provider interface {
	MovieDetail(ctx context.Context, id int64) (*tmdb.ShowPayload, error)
	SeriesDetail(ctx context.Context, id int64) (*tmdb.ShowPayload, error)
	Credits(ctx context.Context, kind string, id int64) (*tmdb.CreditsPayload, error)
	Videos(ctx context.Context, kind string, id int64) (*tmdb.VideosPayload, error)
	PopularMovies(ctx context.Context) ([]tmdb.ShowPayload, error)
	PopularSeries(ctx context.Context) ([]tmdb.ShowPayload, error)
	SearchMulti(ctx context.Context, query string) ([]tmdb.ShowPayload, error)
	ImageURL(size, path string) string
}

// Resolver reconciles the local show cache with the provider: local-first,
// provider-fallback, self-heal on miss. It is the only writer of show rows.
type Resolver struct {
	Repo     *Repo
	Provider Provider
}

func NewResolver(repo *Repo, provider Provider) *Resolver {
	return &Resolver{Repo: repo, Provider: provider}
}

// Resolve materializes a show for an identifier of unknown origin: it may be
// a local id or a TMDB id. Lookup order:
//
//  1. local row by local id
//  2. local row by TMDB id (kind-agnostic, first hit wins)
//  3. provider fetch, movie first, series on not-found, then upsert
//
// Whatever path produced the row, cast and trailer are then fetched
// concurrently; either enrichment failing degrades to an empty value.
func (rv *Resolver) Resolve(ctx context.Context, identifier int64) (*models.ShowDetail, error) {
	show, err := rv.Repo.FindByID(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if show == nil {
		show, err = rv.Repo.FindByTMDBID(ctx, identifier)
		if err != nil {
			return nil, err
		}
	}

	if show == nil {
		show, err = rv.fetchAndStore(ctx, identifier)
		if err != nil {
			return nil, err
		}
	}

	return rv.enrich(ctx, show), nil
}

// fetchAndStore is the self-heal path: ask the provider for the identifier as
// a movie, fall through to series on a provider 404, and persist the result
// with a detail-level (full) upsert.
func (rv *Resolver) fetchAndStore(ctx context.Context, tmdbID int64) (*models.Show, error) {
	kind := models.KindMovie
	payload, err := rv.Provider.MovieDetail(ctx, tmdbID)
	if errors.Is(err, tmdb.ErrNotFound) {
		kind = models.KindSeries
		payload, err = rv.Provider.SeriesDetail(ctx, tmdbID)
	}
	if errors.Is(err, tmdb.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return rv.Repo.Upsert(ctx, rv.normalize(*payload, kind), ScopeFull)
}

// normalize maps a provider payload onto our schema: release year comes from
// whichever date field the kind fills in, poster paths become absolute CDN
// URLs here and nowhere else.
func (rv *Resolver) normalize(p tmdb.ShowPayload, kind string) models.Show {
	show := models.Show{
		TMDBID:      p.ID,
		MediaType:   kind,
		Title:       p.DisplayTitle(),
		Synopsis:    p.Overview,
		ReleaseYear: yearOf(p.ReleaseDateField()),
		PosterURL:   rv.Provider.ImageURL("w500", p.PosterPath),
		Popularity:  p.Popularity,
		VoteAverage: p.VoteAverage,
	}
	if kind == models.KindSeries {
		show.TotalEpisodes = p.NumberOfEpisodes
	}
	return show
}

func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

// enrich attaches cast and trailer to a consistent show row. Both provider
// calls run concurrently and are best-effort: a failed call yields an empty
// value, never an error.
func (rv *Resolver) enrich(ctx context.Context, show *models.Show) *models.ShowDetail {
	castCh := make(chan []models.CastMember, 1)
	trailerCh := make(chan string, 1)

	go func() {
		castCh <- rv.fetchCast(ctx, show)
	}()
	go func() {
		trailerCh <- rv.fetchTrailer(ctx, show)
	}()

	return &models.ShowDetail{
		Show:       *show,
		Cast:       <-castCh,
		TrailerKey: <-trailerCh,
	}
}

// fetchCast returns the top-billed cast in provider order, photo required,
// capped at castLimit. Entries without a photo are dropped, not placeholdered.
func (rv *Resolver) fetchCast(ctx context.Context, show *models.Show) []models.CastMember {
	credits, err := rv.Provider.Credits(ctx, show.MediaType, show.TMDBID)
	if err != nil {
		log.Printf("[shows] cast fetch for tmdb=%d failed: %v", show.TMDBID, err)
		return []models.CastMember{}
	}

	out := make([]models.CastMember, 0, castLimit)
	for _, c := range credits.Cast {
		if c.ProfilePath == "" {
			continue
		}
		out = append(out, models.CastMember{
			TMDBID:    c.ID,
			Name:      c.Name,
			Character: c.Character,
			Order:     c.Order,
			PhotoURL:  rv.Provider.ImageURL("w200", c.ProfilePath),
		})
		if len(out) == castLimit {
			break
		}
	}
	return out
}

// fetchTrailer picks the first YouTube video of type Trailer; if none, the
// first YouTube video of any type. Empty when the show has no YouTube videos
// or the call fails.
func (rv *Resolver) fetchTrailer(ctx context.Context, show *models.Show) string {
	videos, err := rv.Provider.Videos(ctx, show.MediaType, show.TMDBID)
	if err != nil {
		log.Printf("[shows] trailer fetch for tmdb=%d failed: %v", show.TMDBID, err)
		return ""
	}

	fallback := ""
	for _, v := range videos.Results {
		if v.Site != "YouTube" {
			continue
		}
		if v.Type == "Trailer" {
			return v.Key
		}
		if fallback == "" {
			fallback = v.Key
		}
	}
	return fallback
}

// Popular serves the homepage list cache-first: a non-empty store is always
// trusted, however stale. Only an empty store triggers a provider sweep, with
// list-level (popularity-scope) upserts so a later detail resolution still
// owns title/synopsis.
func (rv *Resolver) Popular(ctx context.Context, limit int) ([]models.Show, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	cached, err := rv.Repo.ListPopular(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(cached) > 0 {
		return cached, nil
	}

	log.Println("[shows] cache empty, sweeping popular shows from provider")

	movies, err := rv.Provider.PopularMovies(ctx)
	if err != nil {
		return nil, err
	}
	series, err := rv.Provider.PopularSeries(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range movies {
		if _, err := rv.Repo.Upsert(ctx, rv.normalize(p, models.KindMovie), ScopePopularity); err != nil {
			return nil, err
		}
	}
	for _, p := range series {
		if _, err := rv.Repo.Upsert(ctx, rv.normalize(p, models.KindSeries), ScopePopularity); err != nil {
			return nil, err
		}
	}

	return rv.Repo.ListPopular(ctx, limit)
}

// Search runs a provider multi-search, keeps Korean non-person results and
// caches each hit. An empty query short-circuits to an empty result set
// without touching the provider or the store.
func (rv *Resolver) Search(ctx context.Context, query string) ([]models.Show, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Show{}, nil
	}

	results, err := rv.Provider.SearchMulti(ctx, query)
	if err != nil {
		return nil, err
	}

	out := make([]models.Show, 0, len(results))
	for _, p := range results {
		if p.MediaType == "person" || p.OriginalLanguage != "ko" {
			continue
		}
		kind := models.KindMovie
		if p.MediaType == "tv" {
			kind = models.KindSeries
		}
		saved, err := rv.Repo.Upsert(ctx, rv.normalize(p, kind), ScopePopularity)
		if err != nil {
			// one bad row should not empty the whole result page
			log.Printf("[shows] save search hit tmdb=%d failed: %v", p.ID, err)
			continue
		}
		out = append(out, *saved)
	}
	return out, nil
}
