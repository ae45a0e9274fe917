package follows

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dramahub/pkg/database"
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

func seedActor(t *testing.T, db *sql.DB, tmdbID int64, name string) int64 {
	var id int64
	err := db.QueryRow(`
		INSERT INTO actors (tmdb_id, name) VALUES (?, ?) RETURNING id
	`, tmdbID, name).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestFollow_Rules(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "one")
	seedUser(t, db, "u2", "two")

	assert.ErrorIs(t, repo.Follow(ctx, "u1", "u1"), ErrSelfFollow)
	assert.ErrorIs(t, repo.Follow(ctx, "u1", "ghost"), ErrUserNotFound)

	require.NoError(t, repo.Follow(ctx, "u1", "u2"))
	assert.ErrorIs(t, repo.Follow(ctx, "u1", "u2"), ErrAlreadyExists)

	following, err := repo.IsFollowing(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.True(t, following)

	// not symmetric
	following, err = repo.IsFollowing(ctx, "u2", "u1")
	require.NoError(t, err)
	assert.False(t, following)
}

func TestUnfollow(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "one")
	seedUser(t, db, "u2", "two")

	assert.ErrorIs(t, repo.Unfollow(ctx, "u1", "u2"), ErrNotFollowing)

	require.NoError(t, repo.Follow(ctx, "u1", "u2"))
	require.NoError(t, repo.Unfollow(ctx, "u1", "u2"))

	following, err := repo.IsFollowing(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowersFollowingCounts(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "one")
	seedUser(t, db, "u2", "two")
	seedUser(t, db, "u3", "three")

	require.NoError(t, repo.Follow(ctx, "u2", "u1"))
	require.NoError(t, repo.Follow(ctx, "u3", "u1"))
	require.NoError(t, repo.Follow(ctx, "u1", "u2"))

	followers, err := repo.Followers(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, followers, 2)

	following, err := repo.Following(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "two", following[0].Username)

	nFollowers, nFollowing, err := repo.Counts(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, nFollowers)
	assert.Equal(t, 1, nFollowing)
}

func TestActorFollows(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "one")
	actorID := seedActor(t, db, 10, "Kim Da-mi")

	ok, err := repo.IsFollowingActor(ctx, "u1", actorID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.FollowActor(ctx, "u1", actorID))
	assert.ErrorIs(t, repo.FollowActor(ctx, "u1", actorID), ErrAlreadyExists)

	ok, err = repo.IsFollowingActor(ctx, "u1", actorID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.UnfollowActor(ctx, "u1", actorID))
	assert.ErrorIs(t, repo.UnfollowActor(ctx, "u1", actorID), ErrNotFollowing)
}
