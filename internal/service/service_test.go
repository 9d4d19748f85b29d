package service

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/listenupapp/board-server/internal/store/sqlite"
	"github.com/stretchr/testify/require"
)

// fixedColor always picks the same palette index.
type fixedColor int

func (f fixedColor) IntN(int) int { return int(f) }

// countingRecorder records events for assertions.
type countingRecorder struct {
	created, deleted, replies, replyDeletes, tags, skipped int
	pruned                                                 int64
}

func (r *countingRecorder) MessageCreated() { r.created++ }
func (r *countingRecorder) MessageDeleted() { r.deleted++ }
func (r *countingRecorder) Pruned(n int64)  { r.pruned += n }
func (r *countingRecorder) ReplyCreated()   { r.replies++ }
func (r *countingRecorder) ReplyDeleted()   { r.replyDeletes++ }
func (r *countingRecorder) TagCreated()     { r.tags++ }
func (r *countingRecorder) TagSkipped()     { r.skipped++ }

type testBoard struct {
	store    *sqlite.Store
	tags     *TagService
	messages *MessageService
	replies  *ReplyService
	metrics  *countingRecorder
	clock    *fakeClock
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func setupTestBoard(t *testing.T, limits BoardLimits) *testBoard {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	rec := &countingRecorder{}
	clock := &fakeClock{t: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)}

	tags := NewTagService(s, fixedColor(2), rec, logger)
	messages := NewMessageService(s, tags, limits, rec, logger)
	messages.SetClock(clock.Now)
	replies := NewReplyService(s, rec, logger)
	replies.SetClock(clock.Now)

	return &testBoard{
		store:    s,
		tags:     tags,
		messages: messages,
		replies:  replies,
		metrics:  rec,
		clock:    clock,
	}
}

func defaultLimits() BoardLimits {
	return BoardLimits{PageSize: 50, MaxMessages: 1024, MaxPages: 21}
}
