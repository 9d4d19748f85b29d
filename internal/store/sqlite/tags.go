package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/listenupapp/board-server/internal/domain"
	"github.com/listenupapp/board-server/internal/store"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `t.id, t.name, t.color`

// scanTag scans a sql.Row (or sql.Rows via its Scan method) into a domain.Tag.
// MessageCount is left as 0.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag
	if err := scanner.Scan(&t.ID, &t.Name, &t.Color); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTag inserts a new tag and sets its generated ID.
// Returns store.ErrAlreadyExists on duplicate name.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tags (name, color) VALUES (?, ?)`,
		t.Name,
		t.Color,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage(fmt.Sprintf("tag %q already exists", t.Name))
		}
		return fmt.Errorf("insert tag: %w", err)
	}

	t.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	return nil
}

// GetTag retrieves a tag by its ID.
// Returns store.ErrTagNotFound if the tag does not exist.
func (s *Store) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags t WHERE t.id = ?`, id)

	t, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrTagNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetTagByName retrieves a tag by its exact, case-sensitive name.
// Returns store.ErrTagNotFound if the tag does not exist.
func (s *Store) GetTagByName(ctx context.Context, name string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags t WHERE t.name = ?`, name)

	t, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrTagNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTagsWithCounts returns every tag with the number of messages carrying it,
// most used first and then by name. Tags with no messages are included.
func (s *Store) ListTagsWithCounts(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+tagColumns+`, COUNT(mt.message_id) AS message_count
		FROM tags t
		LEFT JOIN message_tags mt ON mt.tag_id = t.id
		GROUP BY t.id
		ORDER BY message_count DESC, t.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.MessageCount); err != nil {
			return nil, err
		}
		tags = append(tags, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}

// AttachTag links a tag to a message. Linking an already linked pair is a no-op.
// Returns store.ErrNotFound if either side does not exist.
func (s *Store) AttachTag(ctx context.Context, messageID, tagID int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO message_tags (message_id, tag_id) VALUES (?, ?)`,
		messageID,
		tagID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrNotFound.WithCause(err)
		}
		return fmt.Errorf("attach tag %d to message %d: %w", tagID, messageID, err)
	}
	return nil
}

// GetTagsForMessages loads the tags of many messages in one query.
// Each list is ordered by tag name; messages without tags are absent from the map.
func (s *Store) GetTagsForMessages(ctx context.Context, messageIDs []int64) (map[int64][]*domain.Tag, error) {
	result := make(map[int64][]*domain.Tag)
	if len(messageIDs) == 0 {
		return result, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT mt.message_id, `+tagColumns+`
		FROM message_tags mt
		INNER JOIN tags t ON t.id = mt.tag_id
		WHERE mt.message_id IN (`+placeholders(len(messageIDs))+`)
		ORDER BY t.name ASC`,
		int64Args(messageIDs)...,
	)
	if err != nil {
		return nil, fmt.Errorf("get tags for messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			messageID int64
			t         domain.Tag
		)
		if err := rows.Scan(&messageID, &t.ID, &t.Name, &t.Color); err != nil {
			return nil, err
		}
		result[messageID] = append(result[messageID], &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// RemoveMessageTags deletes every tag link of a message. The tags themselves stay.
func (s *Store) RemoveMessageTags(ctx context.Context, messageID int64) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM message_tags WHERE message_id = ?`, messageID); err != nil {
		return fmt.Errorf("remove tags of message %d: %w", messageID, err)
	}
	return nil
}
