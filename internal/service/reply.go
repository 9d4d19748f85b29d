package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/listenupapp/board-server/internal/domain"
	"github.com/listenupapp/board-server/internal/normalize"
	"github.com/listenupapp/board-server/internal/store"
)

// ReplyService manages replies to board messages.
type ReplyService struct {
	store   store.ReplyStore
	now     func() time.Time
	metrics Recorder
	logger  *slog.Logger
}

// NewReplyService creates a new reply service.
func NewReplyService(store store.ReplyStore, metrics Recorder, logger *slog.Logger) *ReplyService {
	return &ReplyService{
		store:   store,
		now:     time.Now,
		metrics: recorderOrNoop(metrics),
		logger:  logger,
	}
}

// SetClock replaces the time source used for new replies.
func (s *ReplyService) SetClock(now func() time.Time) {
	s.now = now
}

// ListReplies returns the replies of a message, oldest first.
// A non-numeric id yields an empty list.
func (s *ReplyService) ListReplies(ctx context.Context, messageIDRaw string) ([]*domain.Reply, error) {
	id, ok := normalize.LooseInt(messageIDRaw)
	if !ok {
		return []*domain.Reply{}, nil
	}
	return s.store.ListReplies(ctx, id)
}

// RepliesBatch loads the replies of many messages with one query.
func (s *ReplyService) RepliesBatch(ctx context.Context, messageIDs []int64) (map[int64][]*domain.Reply, error) {
	if len(messageIDs) == 0 {
		return map[int64][]*domain.Reply{}, nil
	}
	return s.store.GetRepliesForMessages(ctx, messageIDs)
}

// CreateReply adds a reply to a message. It returns ErrInvalidID for a
// non-numeric message id, ErrEmptyContent for blank content and
// ErrMessageNotFound when the message does not exist.
func (s *ReplyService) CreateReply(ctx context.Context, messageIDRaw, content string) (*domain.Reply, error) {
	messageID, ok := normalize.LooseInt(messageIDRaw)
	if !ok {
		return nil, ErrInvalidID
	}

	content = normalize.Content(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	r := &domain.Reply{
		MessageID: messageID,
		Content:   content,
		CreatedAt: s.now(),
	}
	if err := s.store.CreateReply(ctx, r); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}

	s.metrics.ReplyCreated()
	s.logger.Info("reply created", "reply_id", r.ID, "message_id", messageID)
	return r, nil
}

// DeleteReply removes a reply. Like message deletion, a non-numeric id
// returns false and any numeric id returns true.
func (s *ReplyService) DeleteReply(ctx context.Context, idRaw string) (bool, error) {
	id, ok := normalize.LooseInt(idRaw)
	if !ok {
		return false, nil
	}
	if err := s.store.DeleteReply(ctx, id); err != nil {
		return false, err
	}

	s.metrics.ReplyDeleted()
	s.logger.Info("reply deleted", "reply_id", id)
	return true, nil
}

// ReplyCount returns the number of replies to a message; zero for a
// non-numeric id.
func (s *ReplyService) ReplyCount(ctx context.Context, messageIDRaw string) (int, error) {
	id, ok := normalize.LooseInt(messageIDRaw)
	if !ok {
		return 0, nil
	}
	return s.store.CountReplies(ctx, id)
}
