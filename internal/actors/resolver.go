package actors

import (
	"context"
	"errors"
	"log"

	"dramahub/internal/tmdb"
	"dramahub/pkg/models"
)

// ErrNotFound: the TMDB id resolves to no person, locally or upstream.
var ErrNotFound = errors.New("actor not found")

const (
	// sweepShowCount popular movies plus the same number of series feed the
	// derivation sweep when the actor cache is empty.
	sweepShowCount = 3
	// sweepCastDepth caps how many top-billed credits each show contributes.
	sweepCastDepth = 10
)

// Provider is the slice of the TMDB client actor resolution needs.
type Provider interface {
	PersonDetail(ctx context.Context, id int64) (*tmdb.PersonPayload, error)
	PersonCredits(ctx context.Context, id int64) ([]tmdb.PersonCreditPayload, error)
	PopularMovies(ctx context.Context) ([]tmdb.ShowPayload, error)
	PopularSeries(ctx context.Context) ([]tmdb.ShowPayload, error)
	Credits(ctx context.Context, kind string, id int64) (*tmdb.CreditsPayload, error)
	ImageURL(size, path string) string
}

// Resolver keeps the actor cache consistent with the provider. Unlike show
// resolution there is a single id namespace and no alternate-kind fallback.
type Resolver struct {
	Repo     *Repo
	Provider Provider
}

func NewResolver(repo *Repo, provider Provider) *Resolver {
	return &Resolver{Repo: repo, Provider: provider}
}

// Resolve returns the locally cached actor for a TMDB id, fetching and
// persisting from the provider on miss.
func (rv *Resolver) Resolve(ctx context.Context, tmdbID int64) (*models.Actor, error) {
	actor, err := rv.Repo.FindByTMDBID(ctx, tmdbID)
	if err != nil {
		return nil, err
	}
	if actor != nil {
		return actor, nil
	}

	person, err := rv.Provider.PersonDetail(ctx, tmdbID)
	if errors.Is(err, tmdb.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return rv.Repo.Upsert(ctx, rv.normalize(*person))
}

// KnownFor fetches an actor's combined credits, best-effort: a provider
// failure yields an empty list, never an error.
func (rv *Resolver) KnownFor(ctx context.Context, tmdbID int64) []models.ActorCredit {
	credits, err := rv.Provider.PersonCredits(ctx, tmdbID)
	if err != nil {
		log.Printf("[actors] credits fetch for tmdb=%d failed: %v", tmdbID, err)
		return []models.ActorCredit{}
	}

	out := make([]models.ActorCredit, 0, len(credits))
	for _, c := range credits {
		kind := models.KindMovie
		if c.MediaType == "tv" {
			kind = models.KindSeries
		}
		out = append(out, models.ActorCredit{
			TMDBID:     c.ID,
			MediaType:  kind,
			Title:      c.DisplayTitle(),
			Character:  c.Character,
			PosterURL:  rv.Provider.ImageURL("w200", c.PosterPath),
			Popularity: c.Popularity,
		})
	}
	return out
}

// Popular is cache-first: any non-empty actor store is trusted as-is,
// regardless of staleness. Only an empty store triggers the derivation sweep.
func (rv *Resolver) Popular(ctx context.Context, limit int) ([]models.Actor, error) {
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

	if err := rv.sweep(ctx); err != nil {
		return nil, err
	}
	return rv.Repo.ListPopular(ctx, limit)
}

// sweep derives an actor set from the currently popular shows: a few top
// movies and series, the top-billed cast of each, deduplicated by TMDB id
// with the first occurrence winning display fields. A failed cast fetch
// skips that show's contribution and the sweep keeps going.
func (rv *Resolver) sweep(ctx context.Context) error {
	log.Println("[actors] cache empty, deriving popular actors from show credits")

	movies, err := rv.Provider.PopularMovies(ctx)
	if err != nil {
		return err
	}
	series, err := rv.Provider.PopularSeries(ctx)
	if err != nil {
		return err
	}

	type target struct {
		kind   string
		tmdbID int64
	}
	targets := make([]target, 0, 2*sweepShowCount)
	for i, p := range movies {
		if i == sweepShowCount {
			break
		}
		targets = append(targets, target{models.KindMovie, p.ID})
	}
	for i, p := range series {
		if i == sweepShowCount {
			break
		}
		targets = append(targets, target{models.KindSeries, p.ID})
	}

	seen := make(map[int64]struct{})
	for _, t := range targets {
		credits, err := rv.Provider.Credits(ctx, t.kind, t.tmdbID)
		if err != nil {
			log.Printf("[actors] sweep: credits for %s tmdb=%d failed, skipping: %v", t.kind, t.tmdbID, err)
			continue
		}

		for i, c := range credits.Cast {
			if i == sweepCastDepth {
				break
			}
			if _, ok := seen[c.ID]; ok {
				continue
			}
			seen[c.ID] = struct{}{}

			if _, err := rv.Repo.Upsert(ctx, models.Actor{
				TMDBID:     c.ID,
				Name:       c.Name,
				PhotoURL:   rv.Provider.ImageURL("w500", c.ProfilePath),
				Popularity: c.Popularity,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (rv *Resolver) normalize(p tmdb.PersonPayload) models.Actor {
	return models.Actor{
		TMDBID:     p.ID,
		Name:       p.Name,
		PhotoURL:   rv.Provider.ImageURL("w500", p.ProfilePath),
		Popularity: p.Popularity,
	}
}
