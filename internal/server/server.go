package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sahanr/mangala/internal/config"
	"github.com/sahanr/mangala/internal/handlers"
	"github.com/sahanr/mangala/internal/logger"
	"github.com/sahanr/mangala/internal/metrics"
	"github.com/sahanr/mangala/internal/middleware"
	"github.com/sahanr/mangala/internal/service/account"
)

// Handlers bundles the HTTP handlers mounted on the router.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Profile   *handlers.ProfileHandler
	Like      *handlers.LikeHandler
	Discovery *handlers.DiscoveryHandler
	Message   *handlers.MessageHandler
}

// NewRouter assembles the chi router with middleware and all routes.
func NewRouter(accounts *account.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		// public
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)

		// bearer-authenticated
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(accounts))

			r.Put("/profile", h.Profile.Upsert)
			r.Get("/profile", h.Profile.GetOwn)
			r.Get("/profile/{userID}", h.Profile.Get)

			r.Post("/likes", h.Like.Create)
			r.Get("/likes/received/count", h.Like.ReceivedCount)

			r.Get("/candidates", h.Discovery.Candidates)
			r.Get("/candidates/scored", h.Discovery.ScoredCandidates)
			r.Get("/matches", h.Discovery.Matches)
			r.Get("/suggestions", h.Discovery.Suggestions)

			r.Get("/matches/{matchID}/messages", h.Message.List)
			r.Post("/matches/{matchID}/messages", h.Message.Send)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests before returning.
func Start(cfg *config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.HTTPAddr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting http server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
