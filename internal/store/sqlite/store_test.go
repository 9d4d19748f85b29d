package sqlite

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/listenupapp/board-server/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// seedMessage inserts a message with a deterministic timestamp.
func seedMessage(t *testing.T, s *Store, content string, at time.Time) *domain.Message {
	t.Helper()
	m := &domain.Message{Content: content, CreatedAt: at}
	if err := s.CreateMessage(context.Background(), m); err != nil {
		t.Fatalf("create message %q: %v", content, err)
	}
	return m
}

func seedTag(t *testing.T, s *Store, name string) *domain.Tag {
	t.Helper()
	tag := &domain.Tag{Name: name, Color: "#3b82f6"}
	if err := s.CreateTag(context.Background(), tag); err != nil {
		t.Fatalf("create tag %q: %v", name, err)
	}
	return tag
}

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	// Verify WAL mode is set.
	var journalMode string
	err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode)
	if err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected wal, got %s", journalMode)
	}

	// Verify tables exist.
	tables := []string{"messages", "tags", "message_tags", "replies"}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestOpen_ForeignKeysOnEveryConnection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Hold several connections at once so the pool has to open fresh ones.
	var conns []interface{ Close() error }
	for i := 0; i < 3; i++ {
		conn, err := s.db.Conn(ctx)
		if err != nil {
			t.Fatalf("conn %d: %v", i, err)
		}
		conns = append(conns, conn)

		var fk int
		if err := conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk); err != nil {
			t.Fatalf("query foreign_keys: %v", err)
		}
		if fk != 1 {
			t.Errorf("conn %d: expected foreign_keys=1, got %d", i, fk)
		}
	}
	for _, c := range conns {
		c.Close()
	}
}

func TestOpenClose(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	seedMessage(t, s, "survives reopen", baseTime)

	if err := s.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	// Re-open should work (schema is idempotent).
	s2, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("re-open store: %v", err)
	}
	defer s2.Close()

	n, err := s2.CountMessages(context.Background(), storeFilter())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 message after reopen, got %d", n)
	}
}

func TestTimeFormatSortsLexically(t *testing.T) {
	earlier := formatTime(time.Date(2025, 1, 1, 9, 59, 59, 999_000_000, time.UTC))
	later := formatTime(time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC))
	if !(earlier < later) {
		t.Errorf("expected %q < %q", earlier, later)
	}
	if len(earlier) != len(later) {
		t.Errorf("timestamps must be fixed width: %q vs %q", earlier, later)
	}

	parsed, err := parseTime(later)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !parsed.Equal(time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("round trip mismatch: %v", parsed)
	}
}

func TestPlaceholders(t *testing.T) {
	cases := map[int]string{0: "", 1: "?", 3: "?, ?, ?"}
	for n, want := range cases {
		if got := placeholders(n); got != want {
			t.Errorf("placeholders(%d) = %q, want %q", n, got, want)
		}
	}
}
