package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sahanr/mangala/internal/db"
)

// MessageRepository provides data access methods for match messages.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new repository bound to the given DB connection.
func NewMessageRepository(database *gorm.DB) *MessageRepository {
	return &MessageRepository{db: database}
}

// Create appends a message to a match conversation.
func (r *MessageRepository) Create(ctx context.Context, message *db.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// ListForMatch returns a match's messages in chronological order, capped at limit.
func (r *MessageRepository) ListForMatch(ctx context.Context, matchID uint64, limit int) ([]db.Message, error) {
	var messages []db.Message
	err := r.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}
