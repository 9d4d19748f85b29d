package sqlite

import (
	"strings"
	"testing"

	"github.com/listenupapp/board-server/internal/store"
)

func storeFilter() store.MessageFilter { return store.MessageFilter{} }

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello", "%hello%"},
		{"100%", `%100\%%`},
		{"snake_case", `%snake\_case%`},
		{`back\slash`, `%back\\slash%`},
		{`%_\`, `%\%\_\\%`},
	}
	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildMessageFilter(t *testing.T) {
	tagID := int64(4)

	none := buildMessageFilter(store.MessageFilter{})
	if none.join != "" || none.where != "" || len(none.args) != 0 {
		t.Errorf("empty filter should produce no SQL, got %+v", none)
	}

	both := buildMessageFilter(store.MessageFilter{Search: "go", TagID: &tagID})
	if !strings.Contains(both.join, "message_tags") {
		t.Errorf("expected message_tags join, got %q", both.join)
	}
	if !strings.Contains(both.where, "mt.tag_id = ?") || !strings.Contains(both.where, "LIKE ?") {
		t.Errorf("expected both clauses, got %q", both.where)
	}
	if !strings.Contains(both.where, " AND ") {
		t.Errorf("filters must combine with AND, got %q", both.where)
	}
	if len(both.args) != 2 || both.args[0] != tagID || both.args[1] != "%go%" {
		t.Errorf("unexpected args %v", both.args)
	}

	if !strings.HasPrefix(both.countSQL(), "SELECT COUNT(DISTINCT m.id)") {
		t.Errorf("unexpected count SQL %q", both.countSQL())
	}
}
