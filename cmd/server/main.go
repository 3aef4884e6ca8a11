package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/jaymatch/server/internal/app"
	"github.com/jaymatch/server/internal/cache"
	"github.com/jaymatch/server/internal/config"
	"github.com/jaymatch/server/internal/db"
	"github.com/jaymatch/server/internal/logger"
	"github.com/jaymatch/server/internal/realtime"
	"github.com/jaymatch/server/internal/server"
	"github.com/jaymatch/server/internal/service/account"
	"github.com/jaymatch/server/internal/service/chat"
	"github.com/jaymatch/server/internal/service/discover"
	"github.com/jaymatch/server/internal/service/match"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	lg := logger.L()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		lg.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		lg.Error("failed to connect to redis", "err", err)
		return
	}

	// Connection registry: created once here, shared by every session
	// and every delivery.
	registry := realtime.NewRegistry()

	appCtx := app.New(cfg, database, redisCache, registry, lg)

	registrars := []server.Registrar{
		account.NewRegistrar(appCtx),
		match.NewRegistrar(appCtx),
		chat.NewRegistrar(appCtx),
		discover.NewRegistrar(appCtx),
	}

	if cfg.App.ENV == "development" {
		if err := db.SeedTestData(database); err != nil {
			lg.Error("failed to seed", "err", err)
		}
	}

	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	lg.Info("starting HTTP server", "addr", addr)

	if err := server.StartHTTPServer(cfg, registrars...); err != nil {
		lg.Error("failed to start HTTP server", "err", err)
	}
}
