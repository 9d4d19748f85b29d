package sqlite

import (
	"strings"

	"github.com/listenupapp/board-server/internal/store"
)

// likeEscaper escapes the LIKE metacharacters so user input matches literally
// under ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike returns a %term% pattern matching term as a literal substring.
func escapeLike(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// messageFilterSQL is the shared FROM/JOIN/WHERE fragment of the feed queries.
// The same fragment and args feed both the count and the page query so they
// always agree on what matches.
type messageFilterSQL struct {
	join  string
	where string
	args  []any
}

// buildMessageFilter composes the filter fragment for f. Messages are aliased m.
func buildMessageFilter(f store.MessageFilter) messageFilterSQL {
	var (
		out     messageFilterSQL
		clauses []string
	)

	if f.TagID != nil {
		out.join = " INNER JOIN message_tags mt ON mt.message_id = m.id"
		clauses = append(clauses, "mt.tag_id = ?")
		out.args = append(out.args, *f.TagID)
	}

	if f.Search != "" {
		clauses = append(clauses, `m.content LIKE ? ESCAPE '\'`)
		out.args = append(out.args, escapeLike(f.Search))
	}

	if len(clauses) > 0 {
		out.where = " WHERE " + strings.Join(clauses, " AND ")
	}
	return out
}

func (q messageFilterSQL) countSQL() string {
	return "SELECT COUNT(DISTINCT m.id) FROM messages m" + q.join + q.where
}

func (q messageFilterSQL) selectSQL() string {
	return "SELECT DISTINCT " + messageColumns + " FROM messages m" + q.join + q.where +
		" ORDER BY m.created_at DESC, m.id DESC LIMIT ? OFFSET ?"
}
