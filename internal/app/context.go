package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/jaymatch/server/internal/cache"
	"github.com/jaymatch/server/internal/config"
	"github.com/jaymatch/server/internal/realtime"
)

// AppContext holds shared dependencies (DB, Redis, connection registry,
// logger). Created once at server start and handed to every service.
type AppContext struct {
	Config     *config.Config
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Registry   *realtime.Registry
	Logger     *slog.Logger
}

// New creates a new AppContext
func New(cfg *config.Config, db *gorm.DB, rdb *cache.RedisCache, registry *realtime.Registry, logger *slog.Logger) *AppContext {
	return &AppContext{
		Config:     cfg,
		DB:         db,
		RedisCache: rdb,
		Registry:   registry,
		Logger:     logger,
	}
}
