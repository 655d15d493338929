package db

import (
	"strings"
	"time"
)

// User is the identity record. Owned by the auth flow; immutable after
// creation except for deactivation.
type User struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Name         string `gorm:"size:128;not null"`
	Active       bool   `gorm:"default:true"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// Profile holds the extended attributes of a user, one row per user.
// Created lazily on first submission, upserted thereafter.
type Profile struct {
	UserID      uint64 `gorm:"primaryKey"`
	DateOfBirth time.Time
	Gender      string `gorm:"size:16"`
	CivilStatus string `gorm:"size:32"`
	Religion    string `gorm:"size:64"`
	Location    string `gorm:"size:128"`
	Bio         string `gorm:"size:1024"`
	Interests   string `gorm:"size:1024"` // comma-separated tags
	HeightCM    uint16
	WeightKG    uint16
	AvatarURL   string    `gorm:"size:512"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// InterestTags splits the stored interests string into clean tags.
func (p *Profile) InterestTags() []string {
	if p.Interests == "" {
		return nil
	}
	parts := strings.Split(p.Interests, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// SetInterestTags stores tags as the canonical comma-separated form.
func (p *Profile) SetInterestTags(tags []string) {
	clean := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			clean = append(clean, t)
		}
	}
	p.Interests = strings.Join(clean, ",")
}

// Like is a directed edge: from_user liked to_user.
//
// Composite PK (FromUserID, ToUserID) guarantees at most one row per ordered
// pair; inserts use ON CONFLICT DO NOTHING so repeats are no-ops. Rows are
// never updated or deleted in normal flow.
type Like struct {
	FromUserID uint64    `gorm:"primaryKey"`
	ToUserID   uint64    `gorm:"primaryKey;index:idx_likes_to_user"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// Match is the canonical undirected edge between two users.
//
// UserAID < UserBID always holds, so both like directions compute the same
// target row and the unique index deduplicates concurrent promotion attempts.
// Immutable once created.
type Match struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserAID   uint64    `gorm:"not null;uniqueIndex:idx_match_pair,priority:1"`
	UserBID   uint64    `gorm:"not null;uniqueIndex:idx_match_pair,priority:2;index:idx_match_user_b"`
	MatchedAt time.Time `gorm:"autoCreateTime"`
}

// PartnerOf returns the other member of the match, and whether userID is a
// member at all.
func (m *Match) PartnerOf(userID uint64) (uint64, bool) {
	switch userID {
	case m.UserAID:
		return m.UserBID, true
	case m.UserBID:
		return m.UserAID, true
	}
	return 0, false
}

// Suggestion is a system-proposed candidate for a user. Unique per
// (UserID, SuggestedID); existing rows act as permanent exclusions so a user
// is never re-suggested the same candidate.
type Suggestion struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	UserID      uint64    `gorm:"not null;uniqueIndex:idx_suggestion_pair,priority:1"`
	SuggestedID uint64    `gorm:"not null;uniqueIndex:idx_suggestion_pair,priority:2"`
	Reason      string    `gorm:"size:255"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// Message is a chat message inside a confirmed match.
type Message struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	MatchID   uint64    `gorm:"not null;index:idx_messages_match"`
	SenderID  uint64    `gorm:"not null"`
	Body      string    `gorm:"size:2000;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
