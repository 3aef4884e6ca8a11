package discover_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jaymatch/server/internal/app"
	"github.com/jaymatch/server/internal/cache"
	"github.com/jaymatch/server/internal/config"
	"github.com/jaymatch/server/internal/db"
	"github.com/jaymatch/server/internal/realtime"
	"github.com/jaymatch/server/internal/repository"
	"github.com/jaymatch/server/internal/service/discover"
)

func setupService(t *testing.T) (*discover.Service, *app.AppContext) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(&db.Profile{}, &db.Match{}, &db.Message{}, &db.Preference{}))

	mr := miniredis.RunT(t)
	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()

	appCtx := app.New(
		cfg,
		database,
		cache.NewRedisCache(cfg),
		realtime.NewRegistry(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return discover.NewService(appCtx), appCtx
}

func seedPopulation(t *testing.T, appCtx *app.AppContext, n int) {
	t.Helper()
	repo := repository.NewProfileRepository(appCtx.DB)
	for i := 1; i <= n; i++ {
		gender := "Male"
		if i%2 == 0 {
			gender = "Female"
		}
		age := 18 + i%8
		p := db.Profile{
			Email:        fmt.Sprintf("student%d@ku.edu", i),
			PasswordHash: "x",
			Gender:       &gender,
			Age:          &age,
		}
		require.NoError(t, repo.Create(context.Background(), &p))
	}
}

func TestQueueExcludesRequester(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)
	seedPopulation(t, appCtx, 10)

	queue, err := svc.Queue(ctx, 1)
	require.NoError(t, err)
	require.NotEmpty(t, queue)
	for _, p := range queue {
		assert.NotEqual(t, uint64(1), p.ID)
	}
}

func TestQueueIsCappedAtTwenty(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)
	seedPopulation(t, appCtx, 40)

	queue, err := svc.Queue(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, queue, 20)
}

func TestQueueExcludesMatchedUsers(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)
	seedPopulation(t, appCtx, 8)

	matches := repository.NewMatchRepository(appCtx.DB)
	_, _, err := matches.Create(ctx, 1, 4)
	require.NoError(t, err)
	_, _, err = matches.Create(ctx, 6, 1)
	require.NoError(t, err)

	queue, err := svc.Queue(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, queue, 5)
	for _, p := range queue {
		assert.NotContains(t, []uint64{1, 4, 6}, p.ID)
	}
}

func TestQueueAppliesPreferences(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)
	seedPopulation(t, appCtx, 12)

	minAge, maxAge := 20, 24
	require.NoError(t, svc.PutPreferences(ctx, &db.Preference{
		UserID:  1,
		Genders: []string{"Female"},
		MinAge:  &minAge,
		MaxAge:  &maxAge,
	}))

	queue, err := svc.Queue(ctx, 1)
	require.NoError(t, err)
	for _, p := range queue {
		require.NotNil(t, p.Gender)
		require.NotNil(t, p.Age)
		assert.Equal(t, "Female", *p.Gender)
		assert.GreaterOrEqual(t, *p.Age, minAge)
		assert.LessOrEqual(t, *p.Age, maxAge)
	}
}

func TestGetPreferencesDefaultsToEmptySet(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	prefs, err := svc.GetPreferences(ctx, 77)
	require.NoError(t, err)
	require.NotNil(t, prefs)
	assert.Equal(t, uint64(77), prefs.UserID)
	assert.Empty(t, prefs.Genders)
	assert.Nil(t, prefs.MinAge)
}

func TestPutPreferencesReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	minAge := 21
	require.NoError(t, svc.PutPreferences(ctx, &db.Preference{UserID: 5, MinAge: &minAge}))
	require.NoError(t, svc.PutPreferences(ctx, &db.Preference{UserID: 5, Genders: []string{"Male"}}))

	prefs, err := svc.GetPreferences(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"Male"}, prefs.Genders)
	assert.Nil(t, prefs.MinAge)
}
