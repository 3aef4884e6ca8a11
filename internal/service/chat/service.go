package chat

import (
	"context"
	"strings"
	"time"

	"github.com/jaymatch/server/internal/app"
	"github.com/jaymatch/server/internal/db"
	svcErr "github.com/jaymatch/server/internal/errors"
	"github.com/jaymatch/server/internal/realtime"
	"github.com/jaymatch/server/internal/repository"
)

const defaultHistoryLimit = 100

// Service implements the messaging pipeline: match-gated sends with
// durable storage and best-effort real-time fan-out, plus history
// retrieval and the WebSocket endpoint.
type Service struct {
	appCtx   *app.AppContext
	messages *repository.MessageRepository
	matches  *repository.MatchRepository
}

// NewService creates the chat service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		messages: repository.NewMessageRepository(appCtx.DB),
		matches:  repository.NewMatchRepository(appCtx.DB),
	}
}

// Send delivers one message.
//
// Pipeline:
//  1. Reject empty content before touching the store.
//  2. Check the match relation (cache first, store on miss). No match
//     means Unauthorized and nothing is persisted.
//  3. Persist with a single server-assigned millisecond timestamp, used
//     for both storage and the broadcast payload so stored order and
//     delivered order agree.
//  4. Fan out to any live connections. Persistence happens-before
//     fan-out, so a missed push is always recoverable via History.
func (s *Service) Send(ctx context.Context, senderID, receiverID uint64, content string) (*db.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, svcErr.Validation("content must not be empty")
	}

	matched, err := s.isMatched(ctx, senderID, receiverID)
	if err != nil {
		s.appCtx.Logger.Error("match check failed", "sender", senderID, "receiver", receiverID, "err", err)
		return nil, err
	}
	if !matched {
		return nil, svcErr.Unauthorized("cannot message users you haven't matched with")
	}

	msg := &db.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Timestamp:  time.Now().UnixMilli(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		s.appCtx.Logger.Error("message insert failed", "sender", senderID, "receiver", receiverID, "err", err)
		return nil, err
	}

	s.fanOut(msg)

	s.appCtx.Logger.Debug("message stored", "id", msg.ID, "sender", senderID, "receiver", receiverID, "ts", msg.Timestamp)
	return msg, nil
}

// isMatched checks the cache first and falls back to the store, writing
// the result back through on a miss.
func (s *Service) isMatched(ctx context.Context, a, b uint64) (bool, error) {
	lo, hi := repository.CanonicalPair(a, b)
	if matched, hit, err := s.appCtx.RedisCache.GetMatchExists(ctx, lo, hi); err == nil && hit {
		return matched, nil
	}
	matched, err := s.matches.Exists(ctx, a, b)
	if err != nil {
		return false, err
	}
	_ = s.appCtx.RedisCache.SetMatchExists(ctx, lo, hi, matched)
	return matched, nil
}

// fanOut pushes the message event to the receiver and echoes it to the
// sender. Failures are logged and swallowed: delivery is best-effort and
// never rolls back persistence.
func (s *Service) fanOut(msg *db.Message) {
	ev := realtime.Event{Type: "message", Payload: msg}
	for _, id := range []uint64{msg.ReceiverID, msg.SenderID} {
		conn, ok := s.appCtx.Registry.Lookup(id)
		if !ok {
			continue
		}
		if !conn.TrySend(ev) {
			s.appCtx.Logger.Warn("dropped realtime push", "user_id", id, "message_id", msg.ID)
		}
	}
}

// History returns one page of the conversation between a and b, oldest
// first. No match gate on read: history survives unmatching.
func (s *Service) History(ctx context.Context, a, b uint64, limit int, pageToken *string) ([]db.Message, *string, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.messages.GetConversation(ctx, a, b, limit, pageToken)
}
