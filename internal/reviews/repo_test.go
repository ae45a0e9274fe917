package reviews

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

func seedShow(t *testing.T, db *sql.DB, tmdbID int64) int64 {
	var id int64
	err := db.QueryRow(`
		INSERT INTO shows (tmdb_id, media_type, title)
		VALUES (?, 'movie', 'Glory Road')
		RETURNING id
	`, tmdbID).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestCreate_AndListWithUsername(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "kmovie_critic")
	showID := seedShow(t, db, 603)

	rev, err := repo.Create(ctx, &models.Review{
		UserID: "u1", ShowID: showID, Rating: 8,
		Content: "Tight pacing, great leads.", ContainsSpoilers: false,
	})
	require.NoError(t, err)

	assert.NotZero(t, rev.ID)
	assert.Equal(t, "kmovie_critic", rev.Username)
	assert.Equal(t, 8, rev.Rating)

	list, total, err := repo.ListByShow(ctx, showID, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, rev.ID, list[0].ID)
}

func TestCreate_OneReviewPerUserPerShow(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "kmovie_critic")
	showID := seedShow(t, db, 603)

	_, err := repo.Create(ctx, &models.Review{
		UserID: "u1", ShowID: showID, Rating: 8, Content: "first",
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.Review{
		UserID: "u1", ShowID: showID, Rating: 3, Content: "second",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestCreate_MissingShow(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	seedUser(t, db, "u1", "kmovie_critic")

	_, err := repo.Create(context.Background(), &models.Review{
		UserID: "u1", ShowID: 999, Rating: 5, Content: "?",
	})
	assert.ErrorIs(t, err, ErrShowNotFound)
}

func TestUpdate_OwnershipEnforced(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "kmovie_critic")
	seedUser(t, db, "u2", "drama_fan")
	showID := seedShow(t, db, 603)

	rev, err := repo.Create(ctx, &models.Review{
		UserID: "u1", ShowID: showID, Rating: 8, Content: "original",
	})
	require.NoError(t, err)

	_, err = repo.Update(ctx, rev.ID, "u2", 1, "hijacked", false)
	assert.ErrorIs(t, err, ErrNotOwner)

	updated, err := repo.Update(ctx, rev.ID, "u1", 9, "revised", true)
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Rating)
	assert.Equal(t, "revised", updated.Content)
	assert.True(t, updated.ContainsSpoilers)
}

func TestDelete(t *testing.T) {
	db := testDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "kmovie_critic")
	seedUser(t, db, "u2", "drama_fan")
	showID := seedShow(t, db, 603)

	rev, err := repo.Create(ctx, &models.Review{
		UserID: "u1", ShowID: showID, Rating: 8, Content: "x",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Delete(ctx, rev.ID, "u2"), ErrNotOwner)
	require.NoError(t, repo.Delete(ctx, rev.ID, "u1"))
	assert.ErrorIs(t, repo.Delete(ctx, rev.ID, "u1"), ErrNotFound)
}
