package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jaymatch/server/internal/db"
	"github.com/jaymatch/server/internal/repository"
)

func seedProfiles(t *testing.T, repo *repository.ProfileRepository, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 1; i <= n; i++ {
		p := db.Profile{
			Email:        fmt.Sprintf("student%d@ku.edu", i),
			PasswordHash: "x",
		}
		require.NoError(t, repo.Create(ctx, &p))
	}
}

func TestSampleCandidatesExcludesRequesterAndMatches(t *testing.T) {
	ctx := context.Background()
	database := setupTestDB(t)
	profiles := repository.NewProfileRepository(database)
	matches := repository.NewMatchRepository(database)

	seedProfiles(t, profiles, 10)

	// requester 1 is already matched with 3 and 7
	_, _, err := matches.Create(ctx, 1, 3)
	require.NoError(t, err)
	_, _, err = matches.Create(ctx, 7, 1)
	require.NoError(t, err)

	candidates, err := profiles.SampleCandidates(ctx, 1, 100)
	require.NoError(t, err)
	assert.Len(t, candidates, 7)
	for _, cand := range candidates {
		assert.NotEqual(t, uint64(1), cand.ID)
		assert.NotEqual(t, uint64(3), cand.ID)
		assert.NotEqual(t, uint64(7), cand.ID)
	}
}

func TestSampleCandidatesRespectsBound(t *testing.T) {
	ctx := context.Background()
	profiles := repository.NewProfileRepository(setupTestDB(t))
	seedProfiles(t, profiles, 12)

	candidates, err := profiles.SampleCandidates(ctx, 1, 5)
	require.NoError(t, err)
	assert.Len(t, candidates, 5)
}

func TestDeleteCascade(t *testing.T) {
	ctx := context.Background()
	database := setupTestDB(t)
	profiles := repository.NewProfileRepository(database)
	matches := repository.NewMatchRepository(database)
	messages := repository.NewMessageRepository(database)
	preferences := repository.NewPreferenceRepository(database)

	seedProfiles(t, profiles, 3)
	_, _, err := matches.Create(ctx, 1, 2)
	require.NoError(t, err)
	require.NoError(t, messages.Create(ctx, &db.Message{SenderID: 1, ReceiverID: 2, Content: "hi", Timestamp: 1000}))
	require.NoError(t, preferences.Put(ctx, &db.Preference{UserID: 1}))

	require.NoError(t, profiles.DeleteCascade(ctx, 1))

	_, err = profiles.GetByID(ctx, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	exists, err := matches.Exists(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, exists)

	thread, _, err := messages.GetConversation(ctx, 1, 2, 10, nil)
	require.NoError(t, err)
	assert.Empty(t, thread)

	prefs, err := preferences.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, prefs)
}

func TestDeleteCascadeMissingProfile(t *testing.T) {
	ctx := context.Background()
	profiles := repository.NewProfileRepository(setupTestDB(t))

	err := profiles.DeleteCascade(ctx, 42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
