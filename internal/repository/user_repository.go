package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sahanr/mangala/internal/db"
)

// UserRepository provides data access methods for the User model.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository bound to the given DB connection.
func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{db: database}
}

// Create inserts a new user. The unique index on email rejects duplicates.
func (r *UserRepository) Create(ctx context.Context, user *db.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID fetches a user by primary key.
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*db.User, error) {
	var user db.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail fetches a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*db.User, error) {
	var user db.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsActive reports whether an active user with the given id exists.
func (r *UserRepository) ExistsActive(ctx context.Context, id uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.User{}).
		Where("id = ? AND active = ?", id, true).
		Count(&count).Error
	return count > 0, err
}

// ListActiveIDs returns the ids of all active users, ordered for stable
// batch iteration.
func (r *UserRepository) ListActiveIDs(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).
		Model(&db.User{}).
		Where("active = ?", true).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}

// Deactivate flags a user as inactive. Users are never deleted.
func (r *UserRepository) Deactivate(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).
		Model(&db.User{}).
		Where("id = ?", id).
		Update("active", false).Error
}
