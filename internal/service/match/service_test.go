package match_test

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
	svcErr "github.com/jaymatch/server/internal/errors"
	"github.com/jaymatch/server/internal/realtime"
	"github.com/jaymatch/server/internal/service/match"
)

func setupService(t *testing.T) (*match.Service, *app.AppContext) {
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
	return match.NewService(appCtx), appCtx
}

func TestCreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)

	first, created, err := svc.Create(ctx, 5, 2)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, uint64(2), first.UserID)
	assert.Equal(t, uint64(5), first.MatchedUserID)

	// repeat in the opposite orientation: same pair, no new row
	second, created, err := svc.Create(ctx, 2, 5)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.Timestamp, second.Timestamp)

	var count int64
	require.NoError(t, appCtx.DB.Model(&db.Match{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateRejectsSelfMatch(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, _, err := svc.Create(ctx, 3, 3)
	require.Error(t, err)
	assert.Equal(t, 400, svcErr.Status(err))
}

func TestCreateWarmsExistenceCache(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)

	_, _, err := svc.Create(ctx, 1, 2)
	require.NoError(t, err)

	exists, hit, err := appCtx.RedisCache.GetMatchExists(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.True(t, exists)
}

func TestDeleteRevokesCache(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)

	_, _, err := svc.Create(ctx, 1, 2)
	require.NoError(t, err)

	found, err := svc.Delete(ctx, 2, 1)
	require.NoError(t, err)
	assert.True(t, found)

	exists, hit, err := appCtx.RedisCache.GetMatchExists(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.False(t, exists)

	// deleting again is success with found=false
	found, err = svc.Delete(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestListNormalizesPeer(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, _, err := svc.Create(ctx, 4, 1)
	require.NoError(t, err)
	_, _, err = svc.Create(ctx, 4, 9)
	require.NoError(t, err)

	matches, err := svc.List(ctx, 4)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.Equal(t, uint64(4), m.UserID)
		assert.Contains(t, []uint64{1, 9}, m.MatchedUserID)
	}
}
