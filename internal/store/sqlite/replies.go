package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/listenupapp/board-server/internal/domain"
	"github.com/listenupapp/board-server/internal/store"
)

const replyColumns = `id, message_id, content, created_at`

func scanReply(scanner interface{ Scan(dest ...any) error }) (*domain.Reply, error) {
	var (
		r         domain.Reply
		createdAt string
	)
	if err := scanner.Scan(&r.ID, &r.MessageID, &r.Content, &createdAt); err != nil {
		return nil, err
	}

	var err error
	r.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at of reply %d: %w", r.ID, err)
	}
	return &r, nil
}

func collectReplies(rows *sql.Rows) ([]*domain.Reply, error) {
	defer rows.Close()

	replies := []*domain.Reply{}
	for rows.Next() {
		r, err := scanReply(rows)
		if err != nil {
			return nil, err
		}
		replies = append(replies, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return replies, nil
}

// CreateReply inserts a reply and sets its generated ID.
// Returns store.ErrMessageNotFound if the parent message does not exist.
func (s *Store) CreateReply(ctx context.Context, r *domain.Reply) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.CreatedAt = r.CreatedAt.UTC().Truncate(time.Millisecond)

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO replies (message_id, content, created_at) VALUES (?, ?, ?)`,
		r.MessageID,
		r.Content,
		formatTime(r.CreatedAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrMessageNotFound
		}
		return fmt.Errorf("insert reply: %w", err)
	}

	r.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	return nil
}

// ListReplies returns the replies of a message, oldest first.
func (s *Store) ListReplies(ctx context.Context, messageID int64) ([]*domain.Reply, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+replyColumns+` FROM replies WHERE message_id = ? ORDER BY created_at ASC, id ASC`,
		messageID)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	return collectReplies(rows)
}

// GetRepliesForMessages loads the replies of many messages in one query,
// grouped by message id. Messages without replies are absent from the map.
func (s *Store) GetRepliesForMessages(ctx context.Context, messageIDs []int64) (map[int64][]*domain.Reply, error) {
	result := make(map[int64][]*domain.Reply)
	if len(messageIDs) == 0 {
		return result, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+replyColumns+` FROM replies
		WHERE message_id IN (`+placeholders(len(messageIDs))+`)
		ORDER BY created_at ASC, id ASC`,
		int64Args(messageIDs)...,
	)
	if err != nil {
		return nil, fmt.Errorf("get replies for messages: %w", err)
	}

	replies, err := collectReplies(rows)
	if err != nil {
		return nil, err
	}
	for _, r := range replies {
		result[r.MessageID] = append(result[r.MessageID], r)
	}
	return result, nil
}

// CountReplies returns the number of replies to a message.
func (s *Store) CountReplies(ctx context.Context, messageID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM replies WHERE message_id = ?`, messageID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count replies: %w", err)
	}
	return count, nil
}

// DeleteReply removes a reply. Deleting an id that does not exist is not an error.
func (s *Store) DeleteReply(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM replies WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete reply %d: %w", id, err)
	}
	return nil
}
