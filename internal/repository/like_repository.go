package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sahanr/mangala/internal/db"
)

// LikeRepository provides data access methods for the Like ledger.
// Likes are append-only: rows are never updated or deleted in normal flow.
type LikeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new repository bound to the given DB connection.
func NewLikeRepository(database *gorm.DB) *LikeRepository {
	return &LikeRepository{db: database}
}

// Create inserts the directed edge from -> to. The composite primary key
// makes the insert idempotent: an existing row turns the statement into a
// no-op rather than an error.
//
// Returns whether a new row was actually written. Callers must not expose
// that distinction externally; it exists for cache and metrics upkeep only.
func (r *LikeRepository) Create(ctx context.Context, fromID, toID uint64) (bool, error) {
	like := db.Like{FromUserID: fromID, ToUserID: toID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Exists reports whether the directed edge from -> to is recorded.
// Used for the reverse-edge check when promoting a mutual like.
func (r *LikeRepository) Exists(ctx context.Context, fromID, toID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Like{}).
		Where("from_user_id = ? AND to_user_id = ?", fromID, toID).
		Count(&count).Error
	return count > 0, err
}

// CountReceived returns how many users have liked the given user.
func (r *LikeRepository) CountReceived(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Like{}).
		Where("to_user_id = ?", userID).
		Count(&count).Error
	return count, err
}
