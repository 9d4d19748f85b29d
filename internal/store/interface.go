// Package store defines the persistence interface for the message board.
package store

import (
	"context"

	"github.com/listenupapp/board-server/internal/domain"
)

// MessageStore persists board messages.
type MessageStore interface {
	CreateMessage(ctx context.Context, m *domain.Message) error
	GetMessage(ctx context.Context, id int64) (*domain.Message, error)
	ListMessages(ctx context.Context, q MessageQuery) ([]*domain.Message, error)
	CountMessages(ctx context.Context, f MessageFilter) (int, error)
	ListMessagesSince(ctx context.Context, p SinceParams) ([]*domain.Message, error)
	DeleteMessage(ctx context.Context, id int64) error

	// PruneOverflow deletes every message beyond the newest keep messages
	// and returns how many were removed.
	PruneOverflow(ctx context.Context, keep int) (int64, error)
}

// TagStore persists tags and their links to messages.
type TagStore interface {
	CreateTag(ctx context.Context, t *domain.Tag) error
	GetTag(ctx context.Context, id int64) (*domain.Tag, error)
	GetTagByName(ctx context.Context, name string) (*domain.Tag, error)
	ListTagsWithCounts(ctx context.Context) ([]*domain.Tag, error)
	AttachTag(ctx context.Context, messageID, tagID int64) error
	GetTagsForMessages(ctx context.Context, messageIDs []int64) (map[int64][]*domain.Tag, error)
	RemoveMessageTags(ctx context.Context, messageID int64) error
}

// ReplyStore persists replies to messages.
type ReplyStore interface {
	CreateReply(ctx context.Context, r *domain.Reply) error
	ListReplies(ctx context.Context, messageID int64) ([]*domain.Reply, error)
	GetRepliesForMessages(ctx context.Context, messageIDs []int64) (map[int64][]*domain.Reply, error)
	CountReplies(ctx context.Context, messageID int64) (int, error)
	DeleteReply(ctx context.Context, id int64) error
}

// Store defines the interface for all persistence operations.
type Store interface {
	MessageStore
	TagStore
	ReplyStore

	Ping(ctx context.Context) error
	Close() error
}
