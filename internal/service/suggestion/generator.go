// Package suggestion implements the batch pass that seeds every active
// user's suggestion list with randomly chosen, exclusion-aware candidates.
package suggestion

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sahanr/mangala/internal/app"
	"github.com/sahanr/mangala/internal/metrics"
	"github.com/sahanr/mangala/internal/repository"
)

// Generator runs the suggestion batch. Each user's work is independent: a
// failure on one user is counted and logged, never fatal to the run.
type Generator struct {
	appCtx      *app.AppContext
	users       *repository.UserRepository
	profiles    *repository.ProfileRepository
	candidates  *repository.CandidateRepository
	suggestions *repository.SuggestionRepository

	rng     *rand.Rand
	perUser int
	reason  string
}

// Summary is the result of one batch run.
type Summary struct {
	RunID              string
	UsersProcessed     int
	SuggestionsCreated int
	Errors             int
	Duration           time.Duration
}

// New creates a generator with a time-seeded randomness source.
func New(appCtx *app.AppContext, perUser int, reason string) *Generator {
	return NewWithRand(appCtx, perUser, reason, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand creates a generator with an injected randomness source for
// deterministic tests.
func NewWithRand(appCtx *app.AppContext, perUser int, reason string, rng *rand.Rand) *Generator {
	if perUser <= 0 {
		perUser = 10
	}
	return &Generator{
		appCtx:      appCtx,
		users:       repository.NewUserRepository(appCtx.DB),
		profiles:    repository.NewProfileRepository(appCtx.DB),
		candidates:  repository.NewCandidateRepository(appCtx.DB),
		suggestions: repository.NewSuggestionRepository(appCtx.DB),
		rng:         rng,
		perUser:     perUser,
		reason:      reason,
	}
}

// Run performs one pass over all active users. Because suggestion inserts
// are insert-or-ignore on the (user_id, suggested_id) pair, re-running the
// pass with no intervening activity creates zero new rows.
func (g *Generator) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	summary := Summary{RunID: uuid.NewString()}
	log := g.appCtx.Logger.With("run_id", summary.RunID)

	ids, err := g.users.ListActiveIDs(ctx)
	if err != nil {
		return summary, fmt.Errorf("list active users: %w", err)
	}
	log.Info("suggestion run started", "active_users", len(ids))

	for _, userID := range ids {
		created, err := g.processUser(ctx, userID)
		if err != nil {
			summary.Errors++
			metrics.SuggestionRunErrors.Inc()
			log.Error("suggestion pass failed for user", "user_id", userID, "err", err)
			continue
		}
		summary.UsersProcessed++
		summary.SuggestionsCreated += created
	}

	summary.Duration = time.Since(start)
	metrics.SuggestionsCreated.Add(float64(summary.SuggestionsCreated))
	metrics.SuggestionRunDuration.Observe(summary.Duration.Seconds())

	log.Info("suggestion run finished",
		"users_processed", summary.UsersProcessed,
		"suggestions_created", summary.SuggestionsCreated,
		"errors", summary.Errors,
		"duration", summary.Duration,
	)
	return summary, nil
}

// processUser computes the user's exclusion-aware pool, samples up to
// perUser candidates filtered by same-or-unset location, and inserts the
// suggestion rows. No scoring is applied on this path.
func (g *Generator) processUser(ctx context.Context, userID uint64) (int, error) {
	location := ""
	profile, err := g.profiles.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("load profile: %w", err)
	}
	if profile != nil {
		location = profile.Location
	}

	pool, err := g.candidates.EligibleProfiles(ctx, userID, location)
	if err != nil {
		return 0, fmt.Errorf("load candidate pool: %w", err)
	}

	g.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > g.perUser {
		pool = pool[:g.perUser]
	}

	created := 0
	for _, candidate := range pool {
		ok, err := g.suggestions.Create(ctx, userID, candidate.UserID, g.reason)
		if err != nil {
			return created, fmt.Errorf("insert suggestion for %d: %w", candidate.UserID, err)
		}
		if ok {
			created++
		}
	}
	return created, nil
}
