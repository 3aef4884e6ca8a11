package db

import (
	"time"
)

// Profile table. Demographic fields are optional; only the identity and
// the contact email are required. The password hash never serializes.
type Profile struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"user_id"`
	Email        string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Name         *string   `gorm:"size:64" json:"name"`
	Age          *int      `json:"age"`
	Major        *string   `gorm:"size:64" json:"major"`
	Year         *string   `gorm:"size:32" json:"year"`
	Bio          *string   `gorm:"type:text" json:"bio"`
	Interests    []string  `gorm:"serializer:json;type:text" json:"interests"`
	Gender       *string   `gorm:"size:16" json:"gender"`
	IsFelon      *bool     `json:"is_felon"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"-"`
}

// Match represents a mutually-confirmed pairing authorizing two users to
// message each other.
//
// Composite PK: (UserID, MatchedUserID) stored canonically with the lower
// identity first, so {A,B} and {B,A} normalize to a single row and at most
// one row can exist per unordered pair.
//
// Timestamp is wall-clock milliseconds, matching the message timestamps.
type Match struct {
	UserID        uint64 `gorm:"primaryKey" json:"user_id"`
	MatchedUserID uint64 `gorm:"primaryKey" json:"matched_user_id"`
	Timestamp     int64  `gorm:"not null" json:"timestamp"`
}

// Message is immutable once created. A row may only be created while a
// Match exists between sender and receiver, but it survives a later
// unmatch.
//
// Index idx_pair_ts(sender_id, receiver_id, timestamp) serves the
// conversation query in both orientations.
type Message struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID   uint64 `gorm:"not null;index:idx_pair_ts,priority:1" json:"sender_id"`
	ReceiverID uint64 `gorm:"not null;index:idx_pair_ts,priority:2" json:"receiver_id"`
	Content    string `gorm:"type:text;not null" json:"content"`
	Timestamp  int64  `gorm:"not null;index:idx_pair_ts,priority:3" json:"timestamp"`
}

// Preference is a user's candidate filter. At most one active set per
// user; absence means "no filtering". Replaced wholesale on update.
// Empty multi-value sets and nil bounds mean the constraint is inactive.
type Preference struct {
	UserID    uint64    `gorm:"primaryKey" json:"user_id"`
	Genders   []string  `gorm:"serializer:json;type:text" json:"gender_preference"`
	MinAge    *int      `json:"min_age"`
	MaxAge    *int      `json:"max_age"`
	Years     []string  `gorm:"serializer:json;type:text" json:"year_preference"`
	Majors    []string  `gorm:"serializer:json;type:text" json:"major_preference"`
	IsFelon   *bool     `json:"is_felon"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}
