package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sahanr/mangala/internal/db"
	"github.com/sahanr/mangala/internal/utils/pagination"
)

// MatchRepository provides data access methods for the Match model.
//
// Matches are stored as a canonical pair (user_a_id < user_b_id) under a
// unique index, so concurrent promotion attempts from both like directions
// collapse onto the same row and the second insert is a no-op.
type MatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new repository bound to the given DB connection.
func NewMatchRepository(database *gorm.DB) *MatchRepository {
	return &MatchRepository{db: database}
}

// CreateCanonical inserts the match for the unordered pair {a, b}, ordering
// the key so the smaller id is stored first. ON CONFLICT DO NOTHING on the
// pair index guarantees at most one match per pair even under races; losing
// an insert to a concurrent winner is reported as created=false, not an error.
func (r *MatchRepository) CreateCanonical(ctx context.Context, a, b uint64) (bool, error) {
	if b < a {
		a, b = b, a
	}
	match := db.Match{UserAID: a, UserBID: b}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_a_id"}, {Name: "user_b_id"}},
			DoNothing: true,
		}).
		Create(&match)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Exists reports whether the unordered pair {a, b} is matched.
func (r *MatchRepository) Exists(ctx context.Context, a, b uint64) (bool, error) {
	if b < a {
		a, b = b, a
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Match{}).
		Where("user_a_id = ? AND user_b_id = ?", a, b).
		Count(&count).Error
	return count > 0, err
}

// GetByID fetches a match by primary key.
func (r *MatchRepository) GetByID(ctx context.Context, id uint64) (*db.Match, error) {
	var match db.Match
	if err := r.db.WithContext(ctx).First(&match, id).Error; err != nil {
		return nil, err
	}
	return &match, nil
}

// ListForUser returns the user's matches, most recent first, with
// cursor-based pagination.
func (r *MatchRepository) ListForUser(
	ctx context.Context,
	userID uint64,
	paginationToken *string,
	limit int,
) ([]db.Match, *string, error) {
	var matches []db.Match

	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).
		Model(&db.Match{}).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("matched_at DESC, id DESC").
		Limit(limit + 1)

	if cursor.MatchID > 0 && cursor.MatchedUnix > 0 {
		ts := time.UnixMilli(cursor.MatchedUnix)
		query = query.Where(
			"(matched_at < ? OR (matched_at = ? AND id < ?))",
			ts, ts, cursor.MatchID,
		)
	}

	if err := query.Find(&matches).Error; err != nil {
		return nil, nil, err
	}

	var nextToken *string
	if len(matches) > limit {
		last := matches[limit-1]
		token, _ := pagination.Encode(pagination.Cursor{
			MatchID:     last.ID,
			MatchedUnix: last.MatchedAt.UnixMilli(),
		})
		nextToken = &token
		matches = matches[:limit]
	}

	return matches, nextToken, nil
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
