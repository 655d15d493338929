package main

import (
	"context"
	"os"

	"github.com/sahanr/mangala/internal/app"
	"github.com/sahanr/mangala/internal/cache"
	"github.com/sahanr/mangala/internal/config"
	"github.com/sahanr/mangala/internal/db"
	"github.com/sahanr/mangala/internal/handlers"
	"github.com/sahanr/mangala/internal/logger"
	"github.com/sahanr/mangala/internal/server"
	"github.com/sahanr/mangala/internal/service/account"
	"github.com/sahanr/mangala/internal/service/discovery"
	"github.com/sahanr/mangala/internal/service/match"
)

func main() {
	cfg := config.New()

	logger.InitFromConfig(cfg)
	log := logger.L()

	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		os.Exit(1)
	}

	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		os.Exit(1)
	}

	appCtx := app.New(database, redisCache, log)

	accounts := account.New(appCtx, cfg)
	matches := match.New(appCtx)
	discover := discovery.New(appCtx)

	router := server.NewRouter(accounts, server.Handlers{
		Auth:      handlers.NewAuthHandler(accounts),
		Profile:   handlers.NewProfileHandler(accounts),
		Like:      handlers.NewLikeHandler(matches),
		Discovery: handlers.NewDiscoveryHandler(discover, matches),
		Message:   handlers.NewMessageHandler(matches),
	})

	if err := server.Start(cfg, router); err != nil {
		log.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
}
