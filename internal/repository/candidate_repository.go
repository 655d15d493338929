package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sahanr/mangala/internal/db"
)

// CandidateRepository builds the eligible-candidate queries used by discovery
// and the suggestion batch. It spans users, profiles, likes, matches, and
// suggestions, so it lives apart from the single-table repositories.
type CandidateRepository struct {
	db *gorm.DB
}

// NewCandidateRepository creates a new repository bound to the given DB connection.
func NewCandidateRepository(database *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db: database}
}

// EligibleProfiles returns the full pool of candidate profiles for a user.
//
// The exclusion set is the union of: the user themself, anyone in a like edge
// with the user in either direction, anyone matched with the user, and anyone
// already suggested to the user. Only active users are candidates.
//
// If location is non-empty, candidates are restricted to the same location or
// an unset one (unset is non-disqualifying, not a location match). Ordering
// is unspecified; callers randomize or score the pool themselves.
func (r *CandidateRepository) EligibleProfiles(ctx context.Context, userID uint64, location string) ([]db.Profile, error) {
	var profiles []db.Profile

	query := r.db.WithContext(ctx).
		Table("profiles p").
		Select("p.*").
		Joins("JOIN users u ON u.id = p.user_id").
		Where("u.active = ?", true).
		Where("p.user_id <> ?", userID).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM likes l
				WHERE (l.from_user_id = ? AND l.to_user_id = p.user_id)
				   OR (l.from_user_id = p.user_id AND l.to_user_id = ?)
			)`, userID, userID).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM matches m
				WHERE (m.user_a_id = ? AND m.user_b_id = p.user_id)
				   OR (m.user_a_id = p.user_id AND m.user_b_id = ?)
			)`, userID, userID).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM suggestions s
				WHERE s.user_id = ? AND s.suggested_id = p.user_id
			)`, userID)

	if location != "" {
		query = query.Where("(p.location = ? OR p.location = '')", location)
	}

	if err := query.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
