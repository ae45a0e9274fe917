package genres

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
	movieGenres  []tmdb.GenrePayload
	seriesGenres []tmdb.GenrePayload
	err          error
}

func (f *fakeProvider) Genres(ctx context.Context, kind string) ([]tmdb.GenrePayload, error) {
	if f.err != nil {
		return nil, f.err
	}
	if kind == models.KindSeries {
		return f.seriesGenres, nil
	}
	return f.movieGenres, nil
}

func testSyncer(t *testing.T, provider *fakeProvider) *Syncer {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSyncer(NewRepo(db), provider)
}

func TestSync_MergesAndDeduplicates(t *testing.T) {
	s := testSyncer(t, &fakeProvider{
		movieGenres: []tmdb.GenrePayload{
			{ID: 28, Name: "Action"},
			{ID: 18, Name: "Drama"},
		},
		seriesGenres: []tmdb.GenrePayload{
			{ID: 18, Name: "Drama"}, // shared with movies
			{ID: 10759, Name: "Action & Adventure"},
		},
	})

	res, err := s.Sync(context.Background())
	require.NoError(t, err)

	assert.True(t, res.Changed)
	require.Len(t, res.Genres, 3)

	// name-sorted
	assert.Equal(t, "Action", res.Genres[0].Name)
	assert.Equal(t, "Action & Adventure", res.Genres[1].Name)
	assert.Equal(t, "Drama", res.Genres[2].Name)
}

func TestSync_IdenticalSetIsNoOp(t *testing.T) {
	provider := &fakeProvider{
		movieGenres: []tmdb.GenrePayload{{ID: 28, Name: "Action"}},
	}
	s := testSyncer(t, provider)
	ctx := context.Background()

	first, err := s.Sync(ctx)
	require.NoError(t, err)
	require.True(t, first.Changed)

	second, err := s.Sync(ctx)
	require.NoError(t, err)
	assert.False(t, second.Changed)
	assert.Equal(t, first.Genres, second.Genres)
}

func TestSync_MembershipChangeReplacesMirror(t *testing.T) {
	provider := &fakeProvider{
		movieGenres: []tmdb.GenrePayload{
			{ID: 28, Name: "Action"},
			{ID: 35, Name: "Comedy"},
		},
	}
	s := testSyncer(t, provider)
	ctx := context.Background()

	_, err := s.Sync(ctx)
	require.NoError(t, err)

	// same count, different membership: must replace, not no-op
	provider.movieGenres = []tmdb.GenrePayload{
		{ID: 28, Name: "Action"},
		{ID: 18, Name: "Drama"},
	}

	res, err := s.Sync(ctx)
	require.NoError(t, err)
	require.True(t, res.Changed)

	names := []string{res.Genres[0].Name, res.Genres[1].Name}
	assert.Equal(t, []string{"Action", "Drama"}, names)
}

func TestSync_ProviderFailureLeavesMirrorAlone(t *testing.T) {
	provider := &fakeProvider{
		movieGenres: []tmdb.GenrePayload{{ID: 28, Name: "Action"}},
	}
	s := testSyncer(t, provider)
	ctx := context.Background()

	_, err := s.Sync(ctx)
	require.NoError(t, err)

	provider.err = tmdb.ErrUpstream
	_, err = s.Sync(ctx)
	assert.ErrorIs(t, err, tmdb.ErrUpstream)

	local, err := s.Repo.ListMirror(ctx)
	require.NoError(t, err)
	assert.Len(t, local, 1)
}
