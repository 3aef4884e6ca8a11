package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jaymatch/server/internal/db"
	"github.com/jaymatch/server/internal/repository"
)

// setup in-memory DB
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := database.AutoMigrate(&db.Profile{}, &db.Match{}, &db.Message{}, &db.Preference{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return database
}

func TestCanonicalPair(t *testing.T) {
	cases := [][2]uint64{{1, 2}, {2, 1}, {7, 7}, {100, 3}}
	for _, c := range cases {
		lo1, hi1 := repository.CanonicalPair(c[0], c[1])
		lo2, hi2 := repository.CanonicalPair(c[1], c[0])
		assert.Equal(t, lo1, lo2)
		assert.Equal(t, hi1, hi2)
		assert.LessOrEqual(t, lo1, hi1)
	}
}

func TestCreateMatchIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMatchRepository(setupTestDB(t))

	m1, created, err := repo.Create(ctx, 2, 1)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, uint64(1), m1.UserID)
	assert.Equal(t, uint64(2), m1.MatchedUserID)

	// same pair in the other orientation is a no-op success
	m2, created, err := repo.Create(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, m1.Timestamp, m2.Timestamp)

	exists, err := repo.Exists(ctx, 2, 1)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDeleteMatch(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMatchRepository(setupTestDB(t))

	_, _, err := repo.Create(ctx, 1, 2)
	require.NoError(t, err)

	found, err := repo.Delete(ctx, 2, 1)
	require.NoError(t, err)
	assert.True(t, found)

	exists, err := repo.Exists(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, exists)

	// ensure-absence callers tolerate the missing row
	found, err = repo.Delete(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestListForUserNormalizesPeer(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMatchRepository(setupTestDB(t))

	_, _, err := repo.Create(ctx, 5, 2)
	require.NoError(t, err)
	_, _, err = repo.Create(ctx, 5, 9)
	require.NoError(t, err)

	matches, err := repo.ListForUser(ctx, 5)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	peers := []uint64{matches[0].MatchedUserID, matches[1].MatchedUserID}
	assert.ElementsMatch(t, []uint64{2, 9}, peers)
	for _, m := range matches {
		assert.Equal(t, uint64(5), m.UserID)
	}
}
