package genres

import (
	"context"
	"log"

	"dramahub/internal/tmdb"
	"dramahub/pkg/models"
)

// Provider is the genre slice of the TMDB client.
type Provider interface {
	Genres(ctx context.Context, kind string) ([]tmdb.GenrePayload, error)
}

// Syncer keeps the local genre table a full mirror of the provider's merged
// movie+series taxonomy.
type Syncer struct {
	Repo     *Repo
	Provider Provider
}

func NewSyncer(repo *Repo, provider Provider) *Syncer {
	return &Syncer{Repo: repo, Provider: provider}
}

// SyncResult reports what a sync did.
type SyncResult struct {
	Changed bool           `json:"changed"`
	Genres  []models.Genre `json:"genres"`
}

// Sync fetches both kind lists, merges them deduplicated by TMDB id, and
// compares actual membership against the local mirror, not just counts. An
// identical set is a no-op; any difference replaces the whole mirror.
func (s *Syncer) Sync(ctx context.Context) (*SyncResult, error) {
	type listResult struct {
		genres []tmdb.GenrePayload
		err    error
	}

	movieCh := make(chan listResult, 1)
	seriesCh := make(chan listResult, 1)
	go func() {
		g, err := s.Provider.Genres(ctx, models.KindMovie)
		movieCh <- listResult{g, err}
	}()
	go func() {
		g, err := s.Provider.Genres(ctx, models.KindSeries)
		seriesCh <- listResult{g, err}
	}()

	movie, series := <-movieCh, <-seriesCh
	if movie.err != nil {
		return nil, movie.err
	}
	if series.err != nil {
		return nil, series.err
	}

	merged := make([]models.Genre, 0, len(movie.genres)+len(series.genres))
	byID := make(map[int64]struct{})
	for _, g := range append(movie.genres, series.genres...) {
		if _, ok := byID[g.ID]; ok {
			continue
		}
		byID[g.ID] = struct{}{}
		merged = append(merged, models.Genre{TMDBID: g.ID, Name: g.Name})
	}

	local, err := s.Repo.ListMirror(ctx)
	if err != nil {
		return nil, err
	}

	if sameMembership(local, byID) {
		log.Println("[genres] mirror already current")
		return &SyncResult{Changed: false, Genres: local}, nil
	}

	if err := s.Repo.ReplaceMirror(ctx, merged); err != nil {
		return nil, err
	}
	log.Printf("[genres] mirror replaced: %d genres", len(merged))

	fresh, err := s.Repo.ListMirror(ctx)
	if err != nil {
		return nil, err
	}
	return &SyncResult{Changed: true, Genres: fresh}, nil
}

// sameMembership is a two-way set comparison on TMDB ids; cardinality alone
// is not enough.
func sameMembership(local []models.Genre, upstream map[int64]struct{}) bool {
	if len(local) != len(upstream) {
		return false
	}
	for _, g := range local {
		if _, ok := upstream[g.TMDBID]; !ok {
			return false
		}
	}
	return true
}
