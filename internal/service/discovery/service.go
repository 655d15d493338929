// Package discovery serves the candidate surfaces: a randomized eligible
// sample, a weighted-score ranking, and the user's persisted suggestions.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/sahanr/mangala/internal/app"
	"github.com/sahanr/mangala/internal/db"
	svcerr "github.com/sahanr/mangala/internal/errors"
	"github.com/sahanr/mangala/internal/repository"
	"github.com/sahanr/mangala/internal/scoring"
)

// DefaultLimit caps candidate and suggestion pages when the caller passes
// no usable limit.
const DefaultLimit = 10

// Service implements candidate selection and suggestion listing.
type Service struct {
	appCtx      *app.AppContext
	candidates  *repository.CandidateRepository
	profiles    *repository.ProfileRepository
	suggestions *repository.SuggestionRepository

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// New creates the discovery service with a time-seeded randomness source.
func New(appCtx *app.AppContext) *Service {
	return NewWithRand(appCtx, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand creates the discovery service with an injected randomness
// source so tests can assert exact samples for a fixed seed.
func NewWithRand(appCtx *app.AppContext, rng *rand.Rand) *Service {
	return &Service{
		appCtx:      appCtx,
		candidates:  repository.NewCandidateRepository(appCtx.DB),
		profiles:    repository.NewProfileRepository(appCtx.DB),
		suggestions: repository.NewSuggestionRepository(appCtx.DB),
		rng:         rng,
		now:         time.Now,
	}
}

// Candidates returns up to limit eligible candidate profiles for a user,
// sampled randomly from the pool to distribute exposure. The pool excludes
// the user, anyone in a like edge with them in either direction, confirmed
// match partners, and prior suggestion targets. Same-location candidates are
// preferred; candidates with no location stay eligible. An empty result is
// not an error.
func (s *Service) Candidates(ctx context.Context, userID uint64, limit int) ([]db.Profile, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	location, err := s.requesterLocation(ctx, userID)
	if err != nil {
		return nil, err
	}

	pool, err := s.candidates.EligibleProfiles(ctx, userID, location)
	if err != nil {
		return nil, fmt.Errorf("load candidate pool: %w", err)
	}

	return s.sample(pool, limit), nil
}

// Scored is one weighted-score candidate for the on-demand ranking surface.
type Scored struct {
	Profile         db.Profile
	Score           int
	SharedInterests []string
	Age             int
}

// ScoredCandidates ranks the user's eligible pool by compatibility score
// under the given priority, highest first, capped at limit. The requester
// must have a profile; scoring needs its attributes.
func (s *Service) ScoredCandidates(ctx context.Context, userID uint64, priority scoring.Priority, limit int) ([]Scored, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	requester, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("requester profile: %w", svcerr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load requester profile: %w", err)
	}

	pool, err := s.candidates.EligibleProfiles(ctx, userID, requester.Location)
	if err != nil {
		return nil, fmt.Errorf("load candidate pool: %w", err)
	}

	asOf := s.now().UTC()
	requesterInput := profileInput(requester)

	scored := make([]Scored, 0, len(pool))
	for _, candidate := range pool {
		res := scoring.Score(profileInput(&candidate), requesterInput, priority, asOf)
		scored = append(scored, Scored{
			Profile:         candidate,
			Score:           res.Score,
			SharedInterests: res.SharedInterests,
			Age:             res.CandidateAge,
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Profile.UserID < scored[j].Profile.UserID
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// SuggestionView pairs a persisted suggestion with the suggested profile.
type SuggestionView struct {
	Profile   db.Profile
	Reason    string
	CreatedAt int64 // unix millis
}

// Suggestions returns the user's persisted suggestions, most recent first,
// capped at limit.
func (s *Service) Suggestions(ctx context.Context, userID uint64, limit int) ([]SuggestionView, error) {
	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}

	rows, err := s.suggestions.ListForUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list suggestions: %w", err)
	}

	ids := make([]uint64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.SuggestedID)
	}
	profiles, err := s.profiles.GetManyByUserIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load suggested profiles: %w", err)
	}

	views := make([]SuggestionView, 0, len(rows))
	for _, row := range rows {
		views = append(views, SuggestionView{
			Profile:   profiles[row.SuggestedID],
			Reason:    row.Reason,
			CreatedAt: row.CreatedAt.UnixMilli(),
		})
	}
	return views, nil
}

// requesterLocation returns the requesting user's location, or "" when the
// user has no profile yet (no location filter is applied then).
func (s *Service) requesterLocation(ctx context.Context, userID uint64) (string, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load requester profile: %w", err)
	}
	return profile.Location, nil
}

// sample returns up to limit profiles drawn uniformly from the pool.
func (s *Service) sample(pool []db.Profile, limit int) []db.Profile {
	s.mu.Lock()
	s.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	s.mu.Unlock()

	if len(pool) > limit {
		pool = pool[:limit]
	}
	return pool
}

func profileInput(p *db.Profile) scoring.Input {
	return scoring.Input{
		DateOfBirth: p.DateOfBirth,
		Location:    p.Location,
		Religion:    p.Religion,
		Interests:   p.InterestTags(),
	}
}
