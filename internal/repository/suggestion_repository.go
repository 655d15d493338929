package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sahanr/mangala/internal/db"
)

// SuggestionRepository provides data access methods for the Suggestion model.
type SuggestionRepository struct {
	db *gorm.DB
}

// NewSuggestionRepository creates a new repository bound to the given DB connection.
func NewSuggestionRepository(database *gorm.DB) *SuggestionRepository {
	return &SuggestionRepository{db: database}
}

// Create inserts a suggestion for the (userID, suggestedID) pair. The unique
// pair index plus ON CONFLICT DO NOTHING makes re-runs of the batch pass
// idempotent: an existing row is left untouched and created=false is returned.
func (r *SuggestionRepository) Create(ctx context.Context, userID, suggestedID uint64, reason string) (bool, error) {
	suggestion := db.Suggestion{
		UserID:      userID,
		SuggestedID: suggestedID,
		Reason:      reason,
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "suggested_id"}},
			DoNothing: true,
		}).
		Create(&suggestion)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListForUser returns the user's suggestions, most recent first, capped at limit.
func (r *SuggestionRepository) ListForUser(ctx context.Context, userID uint64, limit int) ([]db.Suggestion, error) {
	var suggestions []db.Suggestion
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&suggestions).Error
	return suggestions, err
}
