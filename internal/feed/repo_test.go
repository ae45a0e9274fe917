package feed

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
		INSERT INTO shows (tmdb_id, media_type, title)
		VALUES (?, 'series', ?)
		RETURNING id
	`, tmdbID, title).Scan(&id)
	require.NoError(t, err)
	return id
}

func follow(t *testing.T, db *sql.DB, follower, followed string) {
	_, err := db.Exec(`INSERT INTO follows (follower_id, followed_id) VALUES (?, ?)`, follower, followed)
	require.NoError(t, err)
}

func TestFollowedFeed_OnlyFollowedUsers(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	seedUser(t, db, "viewer", "viewer")
	seedUser(t, db, "friend", "friend")
	seedUser(t, db, "stranger", "stranger")
	showID := seedShow(t, db, 1, "Night Market")
	follow(t, db, "viewer", "friend")

	for _, userID := range []string{"friend", "stranger"} {
		_, err := db.Exec(`
			INSERT INTO reviews (user_id, show_id, rating, content)
			VALUES (?, ?, 8, 'loved it')
		`, userID, showID)
		require.NoError(t, err)
	}

	items, err := repo.FollowedFeed(ctx, "viewer", 50)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, models.FeedReview, items[0].Type)
	assert.Equal(t, "friend", items[0].Username)
	assert.Equal(t, "Night Market", items[0].ShowTitle)
	require.NotNil(t, items[0].Rating)
	assert.Equal(t, 8, *items[0].Rating)
}

func TestFollowedFeed_TerminalWatchlistOnly(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	seedUser(t, db, "viewer", "viewer")
	seedUser(t, db, "friend", "friend")
	follow(t, db, "viewer", "friend")

	a := seedShow(t, db, 1, "A")
	b := seedShow(t, db, 2, "B")
	c := seedShow(t, db, 3, "C")

	for showID, status := range map[int64]string{
		a: "watching",
		b: "completed",
		c: "dropped",
	} {
		_, err := db.Exec(`
			INSERT INTO watchlist (user_id, show_id, status)
			VALUES ('friend', ?, ?)
		`, showID, status)
		require.NoError(t, err)
	}

	items, err := repo.FollowedFeed(ctx, "viewer", 50)
	require.NoError(t, err)
	require.Len(t, items, 2)

	for _, it := range items {
		assert.Equal(t, models.FeedWatchlist, it.Type)
		assert.NotEqual(t, "A", it.ShowTitle)
	}
}

func TestFollowedFeed_NewestFirstAcrossTypes(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	seedUser(t, db, "viewer", "viewer")
	seedUser(t, db, "friend", "friend")
	follow(t, db, "viewer", "friend")
	showID := seedShow(t, db, 1, "Night Market")

	_, err := db.Exec(`
		INSERT INTO reviews (user_id, show_id, rating, content, created_at)
		VALUES ('friend', ?, 8, 'older review', '2026-08-01 10:00:00')
	`, showID)
	require.NoError(t, err)
	_, err = db.Exec(`
		INSERT INTO watchlist (user_id, show_id, status, updated_at)
		VALUES ('friend', ?, 'completed', '2026-08-02 10:00:00')
	`, showID)
	require.NoError(t, err)

	items, err := repo.FollowedFeed(ctx, "viewer", 50)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// watchlist update is newer than the review, so it sorts first even
	// though its timestamp comes from a different source column
	assert.Equal(t, models.FeedWatchlist, items[0].Type)
	assert.Equal(t, models.FeedReview, items[1].Type)
}

func TestGlobalFeed_EveryoneIncluded(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "one")
	seedUser(t, db, "u2", "two")
	showID := seedShow(t, db, 1, "Night Market")

	_, err := db.Exec(`
		INSERT INTO reviews (user_id, show_id, rating, content) VALUES ('u1', ?, 7, 'fine')
	`, showID)
	require.NoError(t, err)
	_, err = db.Exec(`
		INSERT INTO watchlist (user_id, show_id, status) VALUES ('u2', ?, 'completed')
	`, showID)
	require.NoError(t, err)

	items, err := repo.GlobalFeed(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
