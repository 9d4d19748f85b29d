package sqlite

import (
	"context"
	"fmt"
)

// PruneOverflow deletes every message beyond the newest keep messages,
// ordered by created_at then id. Count and delete happen in one statement so
// concurrent writers cannot make the overflow computation stale. Tag links and
// replies of pruned messages go with them through ON DELETE CASCADE.
//
// A keep of zero or less disables pruning.
func (s *Store) PruneOverflow(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM messages
		WHERE id IN (
			SELECT id FROM messages
			ORDER BY created_at DESC, id DESC
			LIMIT -1 OFFSET ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune messages: %w", err)
	}

	pruned, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	if pruned > 0 {
		s.logger.Debug("pruned overflow messages", "count", pruned, "keep", keep)
	}
	return pruned, nil
}
