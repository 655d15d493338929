// Package match implements the like ledger and the match promoter: likes
// accumulate as directed edges, and the first moment both directions exist
// for a pair, exactly one canonical match row is created.
package match

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sahanr/mangala/internal/app"
	"github.com/sahanr/mangala/internal/db"
	svcerr "github.com/sahanr/mangala/internal/errors"
	"github.com/sahanr/mangala/internal/metrics"
	"github.com/sahanr/mangala/internal/repository"
)

// Service owns the match lifecycle: recording likes, promoting mutual likes
// into matches, and listing a user's confirmed matches.
type Service struct {
	appCtx   *app.AppContext
	users    *repository.UserRepository
	likes    *repository.LikeRepository
	matches  *repository.MatchRepository
	profiles *repository.ProfileRepository
	messages *repository.MessageRepository
}

// New creates the match service with dependencies from AppContext.
func New(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		users:    repository.NewUserRepository(appCtx.DB),
		likes:    repository.NewLikeRepository(appCtx.DB),
		matches:  repository.NewMatchRepository(appCtx.DB),
		profiles: repository.NewProfileRepository(appCtx.DB),
		messages: repository.NewMessageRepository(appCtx.DB),
	}
}

// RecordLike records the directed like from -> to and re-evaluates the pair
// for promotion.
//
// Behavior:
//   - Self-likes are rejected before any persistence is attempted.
//   - The like insert is idempotent; a repeat is a silent no-op.
//   - After the insert, if the reverse edge exists the canonical match row is
//     created with an insert-or-ignore, so concurrent triggering from both
//     directions still yields exactly one match.
//   - The return value never reveals whether the like was new or a repeat.
func (s *Service) RecordLike(ctx context.Context, fromID, toID uint64) error {
	if fromID == toID {
		metrics.LikesTotal.WithLabelValues("rejected").Inc()
		return fmt.Errorf("cannot like self: %w", svcerr.ErrInvalidOperation)
	}

	exists, err := s.users.ExistsActive(ctx, toID)
	if err != nil {
		return fmt.Errorf("check target user: %w", err)
	}
	if !exists {
		metrics.LikesTotal.WithLabelValues("rejected").Inc()
		return fmt.Errorf("target user %d: %w", toID, svcerr.ErrNotFound)
	}

	created, err := s.likes.Create(ctx, fromID, toID)
	if err != nil {
		return fmt.Errorf("record like: %w", err)
	}
	if created {
		metrics.LikesTotal.WithLabelValues("created").Inc()
		if s.appCtx.RedisCache != nil {
			s.appCtx.RedisCache.BumpLikeCount(ctx, toID)
		}
	} else {
		metrics.LikesTotal.WithLabelValues("repeat").Inc()
	}

	return s.promote(ctx, fromID, toID)
}

// promote runs the mutual-like check for the unordered pair {a, b} and
// creates the canonical match row if both directed edges exist. A duplicate
// insert lost to a concurrent winner is success: the invariant already holds.
func (s *Service) promote(ctx context.Context, a, b uint64) error {
	reverse, err := s.likes.Exists(ctx, b, a)
	if err != nil {
		return fmt.Errorf("check reverse like: %w", err)
	}
	if !reverse {
		return nil
	}

	created, err := s.matches.CreateCanonical(ctx, a, b)
	if err != nil {
		return fmt.Errorf("create match: %w", err)
	}
	if created {
		metrics.MatchesTotal.Inc()
		s.appCtx.Logger.Info("match created", "user_a", min(a, b), "user_b", max(a, b))
	}
	return nil
}

// CountReceived returns how many users have liked the given user,
// cache-first with the DB as fallback.
func (s *Service) CountReceived(ctx context.Context, userID uint64) (int64, error) {
	if s.appCtx.RedisCache != nil {
		if count, ok, err := s.appCtx.RedisCache.GetLikeCount(ctx, userID); err == nil && ok {
			return count, nil
		}
	}

	count, err := s.likes.CountReceived(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count received likes: %w", err)
	}
	if s.appCtx.RedisCache != nil {
		_ = s.appCtx.RedisCache.SetLikeCount(ctx, userID, count)
	}
	return count, nil
}

// Partner is one confirmed match from a user's point of view.
type Partner struct {
	MatchID   uint64
	Profile   db.Profile
	MatchedAt int64 // unix millis
}

// ListMatches returns the user's confirmed matches with the partner's
// profile, most recent first, with cursor pagination.
func (s *Service) ListMatches(ctx context.Context, userID uint64, paginationToken *string, limit int) ([]Partner, *string, error) {
	matches, nextToken, err := s.matches.ListForUser(ctx, userID, paginationToken, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("list matches: %w", err)
	}

	partnerIDs := make([]uint64, 0, len(matches))
	for _, m := range matches {
		if partner, ok := m.PartnerOf(userID); ok {
			partnerIDs = append(partnerIDs, partner)
		}
	}
	profiles, err := s.profiles.GetManyByUserIDs(ctx, partnerIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("load partner profiles: %w", err)
	}

	partners := make([]Partner, 0, len(matches))
	for _, m := range matches {
		partnerID, ok := m.PartnerOf(userID)
		if !ok {
			continue
		}
		partners = append(partners, Partner{
			MatchID:   m.ID,
			Profile:   profiles[partnerID],
			MatchedAt: m.MatchedAt.UnixMilli(),
		})
	}
	return partners, nextToken, nil
}

// SendMessage appends a message to a match the sender belongs to.
// Non-members get ErrNotFound so match existence is not leaked.
func (s *Service) SendMessage(ctx context.Context, matchID, senderID uint64, body string) (*db.Message, error) {
	if body == "" {
		return nil, fmt.Errorf("empty message body: %w", svcerr.ErrInvalidOperation)
	}

	m, err := s.memberMatch(ctx, matchID, senderID)
	if err != nil {
		return nil, err
	}

	message := &db.Message{MatchID: m.ID, SenderID: senderID, Body: body}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return message, nil
}

// ListMessages returns a match's conversation for one of its members.
func (s *Service) ListMessages(ctx context.Context, matchID, requesterID uint64, limit int) ([]db.Message, error) {
	if _, err := s.memberMatch(ctx, matchID, requesterID); err != nil {
		return nil, err
	}

	messages, err := s.messages.ListForMatch(ctx, matchID, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

func (s *Service) memberMatch(ctx context.Context, matchID, userID uint64) (*db.Match, error) {
	m, err := s.matches.GetByID(ctx, matchID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("match %d: %w", matchID, svcerr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load match: %w", err)
	}
	if _, ok := m.PartnerOf(userID); !ok {
		return nil, fmt.Errorf("match %d: %w", matchID, svcerr.ErrNotFound)
	}
	return m, nil
}
