package watchlist

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dramahub/pkg/database"
	"dramahub/pkg/models"
)

func testDB(t *testing.T) *sql.DB {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, db *sql.DB, id, username string) {
	_, err := db.Exec(`
		INSERT INTO users (id, username, email, password_hash)
		VALUES (?, ?, ?, 'x')
	`, id, username, username+"@example.com")
	require.NoError(t, err)
}

func seedShow(t *testing.T, db *sql.DB, tmdbID int64, title string) int64 {
	var id int64
	err := db.QueryRow(`
		INSERT INTO shows (tmdb_id, media_type, title, poster_url)
		VALUES (?, 'series', ?, 'https://cdn/p.jpg')
		RETURNING id
	`, tmdbID, title).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestUpsert_RequiresExistingShow(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	seedUser(t, db, "u1", "drama_fan")

	err := repo.Upsert(context.Background(), models.WatchlistItem{
		UserID: "u1", ShowID: 999, Status: models.StatusWatching,
	})
	assert.ErrorIs(t, err, ErrShowNotFound)
}

func TestUpsert_InsertAndReplace(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "drama_fan")
	showID := seedShow(t, db, 100, "Night Market")

	err := repo.Upsert(ctx, models.WatchlistItem{
		UserID: "u1", ShowID: showID, Status: models.StatusWatching, CurrentEpisode: 3,
	})
	require.NoError(t, err)

	rating := 9
	err = repo.Upsert(ctx, models.WatchlistItem{
		UserID: "u1", ShowID: showID, Status: models.StatusCompleted,
		CurrentEpisode: 16, Rating: &rating, Notes: "great finale",
	})
	require.NoError(t, err)

	item, err := repo.Get(ctx, "u1", showID)
	require.NoError(t, err)
	require.NotNil(t, item)

	assert.Equal(t, models.StatusCompleted, item.Status)
	assert.Equal(t, 16, item.CurrentEpisode)
	require.NotNil(t, item.Rating)
	assert.Equal(t, 9, *item.Rating)
	assert.Equal(t, "Night Market", item.Title)
	assert.Equal(t, "https://cdn/p.jpg", item.PosterURL)
}

func TestUpdate_PartialFieldsOnly(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "drama_fan")
	showID := seedShow(t, db, 100, "Night Market")

	require.NoError(t, repo.Upsert(ctx, models.WatchlistItem{
		UserID: "u1", ShowID: showID, Status: models.StatusWatching,
		CurrentEpisode: 3, Notes: "keep",
	}))

	ep := 7
	err := repo.Update(ctx, "u1", showID, UpdateFields{CurrentEpisode: &ep})
	require.NoError(t, err)

	item, err := repo.Get(ctx, "u1", showID)
	require.NoError(t, err)

	assert.Equal(t, 7, item.CurrentEpisode)
	assert.Equal(t, models.StatusWatching, item.Status)
	assert.Equal(t, "keep", item.Notes)
}

func TestUpdate_MissingItem(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	seedUser(t, db, "u1", "drama_fan")

	status := models.StatusDropped
	err := repo.Update(context.Background(), "u1", 42, UpdateFields{Status: &status})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestDelete(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "drama_fan")
	showID := seedShow(t, db, 100, "Night Market")
	require.NoError(t, repo.Upsert(ctx, models.WatchlistItem{
		UserID: "u1", ShowID: showID, Status: models.StatusToWatch,
	}))

	removed, err := repo.Delete(ctx, "u1", showID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, "u1", showID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestList_StatusFilterAndTotal(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "drama_fan")
	a := seedShow(t, db, 1, "A")
	b := seedShow(t, db, 2, "B")
	c := seedShow(t, db, 3, "C")

	for showID, status := range map[int64]string{
		a: models.StatusWatching,
		b: models.StatusWatching,
		c: models.StatusCompleted,
	} {
		require.NoError(t, repo.Upsert(ctx, models.WatchlistItem{
			UserID: "u1", ShowID: showID, Status: status,
		}))
	}

	items, total, err := repo.List(ctx, "u1", models.StatusWatching, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, items, 2)

	items, total, err = repo.List(ctx, "u1", "", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, items, 3)
}
