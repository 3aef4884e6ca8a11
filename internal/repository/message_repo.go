package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jaymatch/server/internal/db"
	"github.com/jaymatch/server/internal/utils/pagination"
)

// MessageRepository provides data access for stored messages.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new repository bound to the given DB connection.
func NewMessageRepository(database *gorm.DB) *MessageRepository {
	return &MessageRepository{db: database}
}

// Create appends a message row. The caller assigns the timestamp so that
// the stored value and the broadcast payload are the same.
func (r *MessageRepository) Create(ctx context.Context, msg *db.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// GetConversation returns up to limit messages between a and b in either
// sender/receiver orientation, oldest-to-newest for display. Internally
// the page is fetched newest-first and reversed.
//
// Cursor-based pagination over (timestamp, id) retrieves older pages; a
// nil token starts from the most recent message.
func (r *MessageRepository) GetConversation(
	ctx context.Context,
	a, b uint64,
	limit int,
	pageToken *string,
) ([]db.Message, *string, error) {
	cursor, err := pagination.Decode(getString(pageToken))
	if err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("timestamp DESC, id DESC").
		Limit(limit + 1)

	if cursor.MessageID > 0 {
		query = query.Where(
			"(timestamp < ? OR (timestamp = ? AND id < ?))",
			cursor.TimestampMs, cursor.TimestampMs, cursor.MessageID,
		)
	}

	var messages []db.Message
	if err := query.Find(&messages).Error; err != nil {
		return nil, nil, err
	}

	var nextToken *string
	if len(messages) > limit {
		last := messages[limit-1]
		token, _ := pagination.Encode(pagination.Cursor{
			MessageID:   last.ID,
			TimestampMs: last.Timestamp,
		})
		nextToken = &token
		messages = messages[:limit]
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nextToken, nil
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
