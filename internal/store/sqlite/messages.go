package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/listenupapp/board-server/internal/domain"
	"github.com/listenupapp/board-server/internal/store"
)

// messageColumns is the ordered list of columns selected in message queries.
// Must match the scan order in scanMessage.
const messageColumns = `m.id, m.content, m.created_at`

// scanMessage scans a sql.Row (or sql.Rows via its Scan method) into a domain.Message.
// Tags are left empty; the caller attaches them in a batch.
func scanMessage(scanner interface{ Scan(dest ...any) error }) (*domain.Message, error) {
	var (
		m         domain.Message
		createdAt string
	)

	if err := scanner.Scan(&m.ID, &m.Content, &createdAt); err != nil {
		return nil, err
	}

	var err error
	m.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at of message %d: %w", m.ID, err)
	}
	m.Tags = []*domain.Tag{}

	return &m, nil
}

func collectMessages(rows *sql.Rows) ([]*domain.Message, error) {
	defer rows.Close()

	messages := []*domain.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

// CreateMessage inserts a message and sets its generated ID.
// A zero CreatedAt is replaced with the current time.
func (s *Store) CreateMessage(ctx context.Context, m *domain.Message) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	// Round-trip precision so the returned value matches what a later read yields.
	m.CreatedAt = m.CreatedAt.UTC().Truncate(time.Millisecond)

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (content, created_at) VALUES (?, ?)`,
		m.Content,
		formatTime(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}

	m.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	if m.Tags == nil {
		m.Tags = []*domain.Tag{}
	}
	return nil
}

// GetMessage retrieves a message by its ID.
// Returns store.ErrMessageNotFound if the message does not exist.
func (s *Store) GetMessage(ctx context.Context, id int64) (*domain.Message, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+messageColumns+` FROM messages m WHERE m.id = ?`, id)

	m, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListMessages returns one page of the feed matching q.Filter, newest first.
func (s *Store) ListMessages(ctx context.Context, q store.MessageQuery) ([]*domain.Message, error) {
	f := buildMessageFilter(q.Filter)
	args := append(f.args, q.Limit, q.Offset)

	rows, err := s.db.QueryContext(ctx, f.selectSQL(), args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return collectMessages(rows)
}

// CountMessages returns the number of distinct messages matching f.
func (s *Store) CountMessages(ctx context.Context, f store.MessageFilter) (int, error) {
	q := buildMessageFilter(f)

	var count int
	if err := s.db.QueryRowContext(ctx, q.countSQL(), q.args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return count, nil
}

// ListMessagesSince returns messages with an id above p.SinceID, ascending by id.
func (s *Store) ListMessagesSince(ctx context.Context, p store.SinceParams) ([]*domain.Message, error) {
	p.Validate()

	var (
		query = `SELECT ` + messageColumns + ` FROM messages m`
		args  []any
	)
	if p.SinceID > 0 {
		query += ` WHERE m.id > ?`
		args = append(args, p.SinceID)
	}
	query += ` ORDER BY m.id ASC LIMIT ?`
	args = append(args, p.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages since %d: %w", p.SinceID, err)
	}
	return collectMessages(rows)
}

// DeleteMessage removes a message together with its tag links and replies in a
// single transaction. Deleting an id that does not exist is not an error.
func (s *Store) DeleteMessage(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM message_tags WHERE message_id = ?`, id); err != nil {
		return fmt.Errorf("delete message_tags: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM replies WHERE message_id = ?`, id); err != nil {
		return fmt.Errorf("delete replies: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}

	return tx.Commit()
}
