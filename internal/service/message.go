package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/listenupapp/board-server/internal/domain"
	"github.com/listenupapp/board-server/internal/normalize"
	"github.com/listenupapp/board-server/internal/store"
)

// BoardLimits bounds the feed and the stored history.
type BoardLimits struct {
	PageSize    int // Messages per page and default incremental batch size
	MaxMessages int // Retention cap
	MaxPages    int // Highest addressable page
}

// MessageService composes board queries and runs the create/delete flows,
// including retention after every new message.
type MessageService struct {
	store   store.MessageStore
	tags    *TagService
	limits  BoardLimits
	now     func() time.Time
	metrics Recorder
	logger  *slog.Logger
}

// NewMessageService creates a new message service.
func NewMessageService(store store.MessageStore, tags *TagService, limits BoardLimits, metrics Recorder, logger *slog.Logger) *MessageService {
	return &MessageService{
		store:   store,
		tags:    tags,
		limits:  limits,
		now:     time.Now,
		metrics: recorderOrNoop(metrics),
		logger:  logger,
	}
}

// SetClock replaces the time source used for new messages.
func (s *MessageService) SetClock(now func() time.Time) {
	s.now = now
}

// Limits returns the configured board limits.
func (s *MessageService) Limits() BoardLimits {
	return s.limits
}

// ListMessages returns one page of the feed. All inputs are raw request
// values: search is trimmed and matched literally, page falls back to 1 when
// absent or invalid and is clamped to the last page, and a non-numeric tag
// means no tag filter.
func (s *MessageService) ListMessages(ctx context.Context, searchRaw, pageRaw, tagRaw string) (*domain.MessagePage, error) {
	filter := store.MessageFilter{
		Search: strings.TrimSpace(searchRaw),
		TagID:  normalize.OptionalID(tagRaw),
	}

	total, err := s.store.CountMessages(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count messages: %w", err)
	}

	totalPages, currentPage := domain.PageBounds(total, s.limits.PageSize, s.limits.MaxPages, normalize.Page(pageRaw))

	page := &domain.MessagePage{
		SearchTerm:    filter.Search,
		TotalMessages: total,
		TotalPages:    totalPages,
		CurrentPage:   currentPage,
		TagFilter:     filter.TagID,
	}

	page.Messages, err = s.store.ListMessages(ctx, store.MessageQuery{
		Filter: filter,
		Limit:  s.limits.PageSize,
		Offset: page.Offset(s.limits.PageSize),
	})
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	if err := s.tags.attachTags(ctx, page.Messages); err != nil {
		return nil, fmt.Errorf("load message tags: %w", err)
	}

	return page, nil
}

// FetchMessagesSince returns messages newer than sinceRaw in ascending id
// order, for incremental polling. An absent, invalid or non-positive since
// means from the beginning. The limit defaults to the page size and is
// clamped to [1, 100].
func (s *MessageService) FetchMessagesSince(ctx context.Context, sinceRaw, limitRaw string) ([]*domain.Message, error) {
	params := store.SinceParams{
		Limit: normalize.Limit(limitRaw, s.limits.PageSize, store.MinSinceLimit, store.MaxSinceLimit),
	}
	if since, ok := normalize.LooseInt(sinceRaw); ok && since > 0 {
		params.SinceID = since
	}

	messages, err := s.store.ListMessagesSince(ctx, params)
	if err != nil {
		return nil, err
	}

	if err := s.tags.attachTags(ctx, messages); err != nil {
		return nil, fmt.Errorf("load message tags: %w", err)
	}
	return messages, nil
}

// CreateMessage stores a new message, links its tags and then enforces the
// retention cap. Content is trimmed; empty content returns ErrEmptyContent
// and nothing is written. Tag failures never fail the message.
func (s *MessageService) CreateMessage(ctx context.Context, content string, tagNames []string) (*domain.Message, error) {
	content = normalize.Content(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	m := &domain.Message{
		Content:   content,
		CreatedAt: s.now(),
	}
	if err := s.store.CreateMessage(ctx, m); err != nil {
		return nil, err
	}
	s.metrics.MessageCreated()

	m.Tags = s.tags.AddTagsToMessage(ctx, m.ID, tagNames)

	s.logger.Info("message created",
		"message_id", m.ID,
		"tags", len(m.Tags),
	)

	if err := s.pruneOverflow(ctx); err != nil {
		// The message is stored; the next successful create will prune.
		return m, err
	}

	return m, nil
}

func (s *MessageService) pruneOverflow(ctx context.Context) error {
	pruned, err := s.store.PruneOverflow(ctx, s.limits.MaxMessages)
	if err != nil {
		return fmt.Errorf("enforce retention: %w", err)
	}
	if pruned > 0 {
		s.metrics.Pruned(pruned)
		s.logger.Info("retention cap reached, pruned oldest messages",
			"pruned", pruned,
			"max_messages", s.limits.MaxMessages,
		)
	}
	return nil
}

// DeleteMessage removes a message along with its tag links and replies.
// A non-numeric id returns false with no error and touches nothing. Any
// numeric id returns true, whether or not the message existed.
func (s *MessageService) DeleteMessage(ctx context.Context, idRaw string) (bool, error) {
	id, ok := normalize.LooseInt(idRaw)
	if !ok {
		return false, nil
	}

	if err := s.store.DeleteMessage(ctx, id); err != nil {
		return false, err
	}

	s.metrics.MessageDeleted()
	s.logger.Info("message deleted", "message_id", id)
	return true, nil
}

// GetMessage returns a single message with its tags.
func (s *MessageService) GetMessage(ctx context.Context, id int64) (*domain.Message, error) {
	m, err := s.store.GetMessage(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.tags.attachTags(ctx, []*domain.Message{m}); err != nil {
		return nil, err
	}
	return m, nil
}

// TotalCount returns the number of stored messages, ignoring every filter.
func (s *MessageService) TotalCount(ctx context.Context) (int, error) {
	return s.store.CountMessages(ctx, store.MessageFilter{})
}
