package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sahanr/mangala/internal/db"
)

// ProfileRepository provides data access methods for the Profile model.
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new repository bound to the given DB connection.
func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: database}
}

// Upsert creates the profile on first submission and overwrites it on every
// subsequent one. The primary key on user_id guarantees one row per user.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *db.Profile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"date_of_birth", "gender", "civil_status", "religion",
				"location", "bio", "interests", "height_cm", "weight_kg",
				"avatar_url", "updated_at",
			}),
		}).
		Create(profile).Error
}

// GetByUserID fetches the profile owned by a user.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uint64) (*db.Profile, error) {
	var profile db.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetManyByUserIDs fetches profiles for a set of users, keyed by user id.
// Users without a profile are simply absent from the result.
func (r *ProfileRepository) GetManyByUserIDs(ctx context.Context, userIDs []uint64) (map[uint64]db.Profile, error) {
	result := make(map[uint64]db.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	var profiles []db.Profile
	if err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, err
	}
	for _, p := range profiles {
		result[p.UserID] = p
	}
	return result, nil
}
