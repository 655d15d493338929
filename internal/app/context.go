package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/sahanr/mangala/internal/cache"
)

// AppContext holds shared dependencies (DB, Redis, Logger).
// Initialized once at process start and passed by reference into services.
type AppContext struct {
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Logger     *slog.Logger
}

// New creates a new AppContext.
func New(db *gorm.DB, rdb *cache.RedisCache, logger *slog.Logger) *AppContext {
	return &AppContext{
		DB:         db,
		RedisCache: rdb,
		Logger:     logger,
	}
}
