package actors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dramahub/internal/tmdb"
	"dramahub/pkg/database"
	"dramahub/pkg/models"
)

type fakeProvider struct {
	people        map[int64]*tmdb.PersonPayload
	personCredits map[int64][]tmdb.PersonCreditPayload
	popularMovies []tmdb.ShowPayload
	popularSeries []tmdb.ShowPayload
	credits       map[int64]*tmdb.CreditsPayload

	creditsErrFor map[int64]error
	detailCalls   int
}

func (f *fakeProvider) PersonDetail(ctx context.Context, id int64) (*tmdb.PersonPayload, error) {
	f.detailCalls++
	if p, ok := f.people[id]; ok {
		return p, nil
	}
	return nil, tmdb.ErrNotFound
}

func (f *fakeProvider) PersonCredits(ctx context.Context, id int64) ([]tmdb.PersonCreditPayload, error) {
	return f.personCredits[id], nil
}

func (f *fakeProvider) PopularMovies(ctx context.Context) ([]tmdb.ShowPayload, error) {
	return f.popularMovies, nil
}

func (f *fakeProvider) PopularSeries(ctx context.Context) ([]tmdb.ShowPayload, error) {
	return f.popularSeries, nil
}

func (f *fakeProvider) Credits(ctx context.Context, kind string, id int64) (*tmdb.CreditsPayload, error) {
	if err, ok := f.creditsErrFor[id]; ok {
		return nil, err
	}
	if c, ok := f.credits[id]; ok {
		return c, nil
	}
	return &tmdb.CreditsPayload{}, nil
}

func (f *fakeProvider) ImageURL(size, path string) string {
	if path == "" {
		return ""
	}
	return "https://image.tmdb.org/t/p/" + size + path
}

func testResolver(t *testing.T, provider *fakeProvider) *Resolver {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewResolver(NewRepo(db), provider)
}

func TestResolve_FetchesAndCaches(t *testing.T) {
	provider := &fakeProvider{
		people: map[int64]*tmdb.PersonPayload{
			10: {ID: 10, Name: "Kim Da-mi", ProfilePath: "/kdm.jpg", Popularity: 45.2},
		},
	}
	rv := testResolver(t, provider)
	ctx := context.Background()

	actor, err := rv.Resolve(ctx, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(10), actor.TMDBID)
	assert.Equal(t, "Kim Da-mi", actor.Name)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/kdm.jpg", actor.PhotoURL)

	// second resolve hits the cache, not the provider
	calls := provider.detailCalls
	again, err := rv.Resolve(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, actor.ID, again.ID)
	assert.Equal(t, calls, provider.detailCalls)
}

func TestResolve_UnknownPersonIsNotFound(t *testing.T) {
	rv := testResolver(t, &fakeProvider{})

	_, err := rv.Resolve(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKnownFor_MapsKindsAndDegrades(t *testing.T) {
	provider := &fakeProvider{
		personCredits: map[int64][]tmdb.PersonCreditPayload{
			10: {
				{ID: 1, MediaType: "movie", Title: "The Witch", PosterPath: "/w.jpg"},
				{ID: 2, MediaType: "tv", Name: "Our Beloved Summer", Character: "Kook Yeon-su"},
			},
		},
	}
	rv := testResolver(t, provider)

	credits := rv.KnownFor(context.Background(), 10)
	require.Len(t, credits, 2)

	assert.Equal(t, models.KindMovie, credits[0].MediaType)
	assert.Equal(t, "The Witch", credits[0].Title)
	assert.Equal(t, models.KindSeries, credits[1].MediaType)
	assert.Equal(t, "Kook Yeon-su", credits[1].Character)

	// no credits known: empty, never nil or an error
	assert.Empty(t, rv.KnownFor(context.Background(), 99))
}

func TestPopular_TrustsNonEmptyCache(t *testing.T) {
	rv := testResolver(t, &fakeProvider{
		popularMovies: []tmdb.ShowPayload{{ID: 1, Title: "Should Not Sweep"}},
	})
	ctx := context.Background()

	_, err := rv.Repo.Upsert(ctx, models.Actor{TMDBID: 5, Name: "Cached Actor", Popularity: 1})
	require.NoError(t, err)

	actors, err := rv.Popular(ctx, 20)
	require.NoError(t, err)
	require.Len(t, actors, 1)
	assert.Equal(t, "Cached Actor", actors[0].Name)
}

func TestPopular_EmptyCacheSweepsCredits(t *testing.T) {
	provider := &fakeProvider{
		popularMovies: []tmdb.ShowPayload{{ID: 100, Title: "M1"}},
		popularSeries: []tmdb.ShowPayload{{ID: 200, Name: "S1"}},
		credits: map[int64]*tmdb.CreditsPayload{
			100: {Cast: []tmdb.CastPayload{
				{ID: 1, Name: "Lead", ProfilePath: "/a.jpg", Popularity: 80},
				{ID: 2, Name: "Support", ProfilePath: "/b.jpg", Popularity: 60},
			}},
			200: {Cast: []tmdb.CastPayload{
				{ID: 1, Name: "Lead (duplicate billing)", Popularity: 10},
				{ID: 3, Name: "Series Lead", ProfilePath: "/c.jpg", Popularity: 70},
			}},
		},
	}
	rv := testResolver(t, provider)

	actors, err := rv.Popular(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, actors, 3)

	// ordered by popularity, duplicate id 1 kept its first-seen fields
	assert.Equal(t, "Lead", actors[0].Name)
	assert.Equal(t, 80.0, actors[0].Popularity)
	assert.Equal(t, "Series Lead", actors[1].Name)
	assert.Equal(t, "Support", actors[2].Name)
}

func TestPopular_SweepSkipsFailedShows(t *testing.T) {
	provider := &fakeProvider{
		popularMovies: []tmdb.ShowPayload{{ID: 100, Title: "M1"}, {ID: 101, Title: "M2"}},
		credits: map[int64]*tmdb.CreditsPayload{
			101: {Cast: []tmdb.CastPayload{{ID: 7, Name: "Survivor", Popularity: 50}}},
		},
		creditsErrFor: map[int64]error{100: tmdb.ErrUpstream},
	}
	rv := testResolver(t, provider)

	actors, err := rv.Popular(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, actors, 1)
	assert.Equal(t, "Survivor", actors[0].Name)
}
