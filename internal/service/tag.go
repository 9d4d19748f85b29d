package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/listenupapp/board-server/internal/color"
	"github.com/listenupapp/board-server/internal/domain"
	"github.com/listenupapp/board-server/internal/normalize"
	"github.com/listenupapp/board-server/internal/store"
)

// TagService owns tag identity and the message-tag links.
// Tags are board-wide and keyed by their exact name.
type TagService struct {
	store   store.TagStore
	colors  color.Source
	metrics Recorder
	logger  *slog.Logger
}

// NewTagService creates a new tag service. A nil colors source uses
// color.Random.
func NewTagService(store store.TagStore, colors color.Source, metrics Recorder, logger *slog.Logger) *TagService {
	if colors == nil {
		colors = color.Random
	}
	return &TagService{
		store:   store,
		colors:  colors,
		metrics: recorderOrNoop(metrics),
		logger:  logger,
	}
}

// ListTags returns every tag with its message count, most used first.
func (s *TagService) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	return s.store.ListTagsWithCounts(ctx)
}

// GetTag returns a tag by id.
func (s *TagService) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	return s.store.GetTag(ctx, id)
}

// GetOrCreateTag returns the tag named name, creating it with a palette color
// if needed. The name is trimmed and NFC-normalized first; an empty name
// yields nil without error. An existing tag keeps its original color.
func (s *TagService) GetOrCreateTag(ctx context.Context, name string) (*domain.Tag, error) {
	name = normalize.TagName(name)
	if name == "" {
		return nil, nil
	}

	// 1. Try to find existing tag first.
	existing, err := s.store.GetTagByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	// 2. Tag doesn't exist, create it.
	t := &domain.Tag{
		Name:  name,
		Color: color.PickTagColor(s.colors),
	}
	if err := s.store.CreateTag(ctx, t); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost a race with a concurrent creator; use their row.
			return s.store.GetTagByName(ctx, name)
		}
		return nil, err
	}

	s.metrics.TagCreated()
	s.logger.Debug("tag created", "tag_id", t.ID, "name", t.Name, "color", t.Color)

	return t, nil
}

// AddTagsToMessage resolves each name to a tag and links it to the message.
// A name that cannot be resolved or linked is logged and skipped; the
// remaining names are still processed. The returned tags are the ones
// actually linked, without duplicates, in input order.
func (s *TagService) AddTagsToMessage(ctx context.Context, messageID int64, names []string) []*domain.Tag {
	tags := []*domain.Tag{}
	seen := make(map[int64]bool, len(names))

	for _, name := range names {
		t, err := s.GetOrCreateTag(ctx, name)
		if err != nil {
			s.skipTag(messageID, name, err)
			continue
		}
		if t == nil {
			continue
		}

		if err := s.store.AttachTag(ctx, messageID, t.ID); err != nil {
			s.skipTag(messageID, name, err)
			continue
		}

		if !seen[t.ID] {
			seen[t.ID] = true
			tags = append(tags, t)
		}
	}

	return tags
}

func (s *TagService) skipTag(messageID int64, name string, err error) {
	s.metrics.TagSkipped()
	s.logger.Warn("failed to add tag to message",
		"message_id", messageID,
		"tag", name,
		"error", err,
	)
}

// GetMessageTags returns the tags of one message ordered by name.
func (s *TagService) GetMessageTags(ctx context.Context, messageID int64) ([]*domain.Tag, error) {
	batch, err := s.GetMessageTagsBatch(ctx, []int64{messageID})
	if err != nil {
		return nil, err
	}
	if tags := batch[messageID]; tags != nil {
		return tags, nil
	}
	return []*domain.Tag{}, nil
}

// GetMessageTagsBatch loads the tags of many messages with a single query.
// Messages without tags are absent from the map.
func (s *TagService) GetMessageTagsBatch(ctx context.Context, messageIDs []int64) (map[int64][]*domain.Tag, error) {
	if len(messageIDs) == 0 {
		return map[int64][]*domain.Tag{}, nil
	}
	return s.store.GetTagsForMessages(ctx, messageIDs)
}

// RemoveMessageTags unlinks every tag from a message.
func (s *TagService) RemoveMessageTags(ctx context.Context, messageID int64) error {
	return s.store.RemoveMessageTags(ctx, messageID)
}

// attachTags fills in the Tags field of every message from one batched lookup.
func (s *TagService) attachTags(ctx context.Context, messages []*domain.Message) error {
	if len(messages) == 0 {
		return nil
	}

	batch, err := s.GetMessageTagsBatch(ctx, domain.MessageIDs(messages))
	if err != nil {
		return err
	}
	for _, m := range messages {
		if tags := batch[m.ID]; tags != nil {
			m.Tags = tags
		} else {
			m.Tags = []*domain.Tag{}
		}
	}
	return nil
}
