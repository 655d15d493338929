// Command suggest runs one pass of the suggestion generator over all active
// users and prints the run summary. Intended to be invoked on an external
// schedule (cron or similar).
package main

import (
	"context"
	"os"

	"github.com/sahanr/mangala/internal/app"
	"github.com/sahanr/mangala/internal/config"
	"github.com/sahanr/mangala/internal/db"
	"github.com/sahanr/mangala/internal/logger"
	"github.com/sahanr/mangala/internal/service/suggestion"
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

	// the batch never touches the cache, so no redis here
	appCtx := app.New(database, nil, log)

	generator := suggestion.New(appCtx, cfg.Suggest.PerUser, cfg.Suggest.Reason)
	summary, err := generator.Run(context.Background())
	if err != nil {
		log.Error("suggestion run failed", "err", err)
		os.Exit(1)
	}

	log.Info("done",
		"run_id", summary.RunID,
		"users_processed", summary.UsersProcessed,
		"suggestions_created", summary.SuggestionsCreated,
		"errors", summary.Errors,
	)
	if summary.Errors > 0 {
		os.Exit(2)
	}
}
