package shows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dramahub/pkg/database"
	"dramahub/pkg/models"
)

func testRepo(t *testing.T) *Repo {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepo(db)
}

func TestUpsert_InsertThenFind(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	saved, err := repo.Upsert(ctx, models.Show{
		TMDBID:      603,
		MediaType:   models.KindMovie,
		Title:       "Glory Road",
		Synopsis:    "A washed-up boxer returns.",
		ReleaseYear: 2021,
		PosterURL:   "https://image.tmdb.org/t/p/w500/p.jpg",
		Popularity:  88.1,
		VoteAverage: 7.9,
	}, ScopeFull)
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.NotZero(t, saved.ID)
	assert.Equal(t, "Glory Road", saved.Title)
	assert.Equal(t, 2021, saved.ReleaseYear)

	byTMDB, err := repo.FindByTMDBID(ctx, 603)
	require.NoError(t, err)
	require.NotNil(t, byTMDB)
	assert.Equal(t, saved.ID, byTMDB.ID)
}

func TestUpsert_ConflictKeepsLocalID(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	first, err := repo.Upsert(ctx, models.Show{
		TMDBID: 603, MediaType: models.KindMovie, Title: "Glory Road", Popularity: 10,
	}, ScopeFull)
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, models.Show{
		TMDBID: 603, MediaType: models.KindMovie, Title: "Glory Road", Popularity: 99,
	}, ScopeFull)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 99.0, second.Popularity)
}

func TestUpsert_PopularityScopeLeavesDetailFields(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, models.Show{
		TMDBID:    55,
		MediaType: models.KindSeries,
		Title:     "Night Market",
		Synopsis:  "Full detail synopsis.",
		PosterURL: "https://cdn/poster.jpg",
	}, ScopeFull)
	require.NoError(t, err)

	// listing payloads carry no synopsis; a popularity-scope upsert must not
	// blank out what the detail fetch stored
	updated, err := repo.Upsert(ctx, models.Show{
		TMDBID:     55,
		MediaType:  models.KindSeries,
		Title:      "Night Market (stale)",
		Popularity: 42.5,
	}, ScopePopularity)
	require.NoError(t, err)

	assert.Equal(t, "Night Market", updated.Title)
	assert.Equal(t, "Full detail synopsis.", updated.Synopsis)
	assert.Equal(t, "https://cdn/poster.jpg", updated.PosterURL)
	assert.Equal(t, 42.5, updated.Popularity)
}

func TestUpsert_SameTMDBIDDifferentKinds(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	movie, err := repo.Upsert(ctx, models.Show{
		TMDBID: 777, MediaType: models.KindMovie, Title: "The Movie",
	}, ScopeFull)
	require.NoError(t, err)

	series, err := repo.Upsert(ctx, models.Show{
		TMDBID: 777, MediaType: models.KindSeries, Title: "The Series", TotalEpisodes: 16,
	}, ScopeFull)
	require.NoError(t, err)

	assert.NotEqual(t, movie.ID, series.ID)

	// kind-agnostic lookup returns the older row
	found, err := repo.FindByTMDBID(ctx, 777)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, movie.ID, found.ID)
	assert.Equal(t, models.KindMovie, found.MediaType)
}

func TestFind_MissIsNilNil(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	s, err := repo.FindByID(ctx, 12345)
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = repo.FindByTMDBID(ctx, 12345)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestListPopular_OrdersByPopularity(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	for _, s := range []models.Show{
		{TMDBID: 1, MediaType: models.KindMovie, Title: "Low", Popularity: 1},
		{TMDBID: 2, MediaType: models.KindMovie, Title: "High", Popularity: 100},
		{TMDBID: 3, MediaType: models.KindSeries, Title: "Mid", Popularity: 50},
	} {
		_, err := repo.Upsert(ctx, s, ScopeFull)
		require.NoError(t, err)
	}

	list, err := repo.ListPopular(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "High", list[0].Title)
	assert.Equal(t, "Mid", list[1].Title)
}
