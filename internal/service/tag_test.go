package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/listenupapp/board-server/internal/color"
	"github.com/listenupapp/board-server/internal/domain"
	"github.com/listenupapp/board-server/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateTag_CreatesWithPaletteColor(t *testing.T) {
	b := setupTestBoard(t, defaultLimits())
	ctx := context.Background()

	tag, err := b.tags.GetOrCreateTag(ctx, "  golang ")
	require.NoError(t, err)
	require.NotNil(t, tag)
	assert.Equal(t, "golang", tag.Name)
	assert.Equal(t, color.TagPalette[2], tag.Color)
	assert.Equal(t, 1, b.metrics.tags)
}

func TestGetOrCreateTag_ExistingKeepsColor(t *testing.T) {
	b := setupTestBoard(t, defaultLimits())
	ctx := context.Background()

	first, err := b.tags.GetOrCreateTag(ctx, "go")
	require.NoError(t, err)

	// A service with a different color source must still see the original color.
	other := NewTagService(b.store, fixedColor(5), nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	second, err := other.GetOrCreateTag(ctx, "go")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Color, second.Color)
}

func TestNewTagService_NilColorsSafeForConcurrentUse(t *testing.T) {
	b := setupTestBoard(t, defaultLimits())
	svc := NewTagService(b.store, nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tag, err := svc.GetOrCreateTag(ctx, fmt.Sprintf("tag-%d", i))
			assert.NoError(t, err)
			if assert.NotNil(t, tag) {
				assert.True(t, color.InPalette(tag.Color), tag.Color)
			}
		}()
	}
	wg.Wait()
}

func TestGetOrCreateTag_EmptyName(t *testing.T) {
	b := setupTestBoard(t, defaultLimits())

	tag, err := b.tags.GetOrCreateTag(context.Background(), "   ")
	assert.NoError(t, err)
	assert.Nil(t, tag)
}

func TestGetOrCreateTag_CaseSensitive(t *testing.T) {
	b := setupTestBoard(t, defaultLimits())
	ctx := context.Background()

	upper, err := b.tags.GetOrCreateTag(ctx, "Go")
	require.NoError(t, err)
	lower, err := b.tags.GetOrCreateTag(ctx, "go")
	require.NoError(t, err)

	assert.NotEqual(t, upper.ID, lower.ID)
}

func TestGetOrCreateTag_Concurrent(t *testing.T) {
	b := setupTestBoard(t, defaultLimits())
	ctx := context.Background()

	const workers = 8
	ids := make([]int64, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tag, err := b.tags.GetOrCreateTag(ctx, "race")
			if assert.NoError(t, err) {
				ids[i] = tag.ID
			}
		}()
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}

	all, err := b.tags.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAddTagsToMessage_DedupesAndSkipsEmpty(t *testing.T) {
	b := setupTestBoard(t, defaultLimits())
	ctx := context.Background()

	m, err := b.messages.CreateMessage(ctx, "hello", nil)
	require.NoError(t, err)

	tags := b.tags.AddTagsToMessage(ctx, m.ID, []string{"a", "", "b", "a", "  "})
	require.Len(t, tags, 2)
	assert.Equal(t, "a", tags[0].Name)
	assert.Equal(t, "b", tags[1].Name)

	stored, err := b.tags.GetMessageTags(ctx, m.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

// flakyTagStore fails to attach one particular tag.
type flakyTagStore struct {
	store.TagStore
	failName string
	failID   int64
}

func (f *flakyTagStore) CreateTag(ctx context.Context, t *domain.Tag) error {
	if err := f.TagStore.CreateTag(ctx, t); err != nil {
		return err
	}
	if t.Name == f.failName {
		f.failID = t.ID
	}
	return nil
}

func (f *flakyTagStore) AttachTag(ctx context.Context, messageID, tagID int64) error {
	if tagID == f.failID {
		return errors.New("disk on fire")
	}
	return f.TagStore.AttachTag(ctx, messageID, tagID)
}

func TestAddTagsToMessage_PartialFailure(t *testing.T) {
	b := setupTestBoard(t, defaultLimits())
	ctx := context.Background()

	m, err := b.messages.CreateMessage(ctx, "hello", nil)
	require.NoError(t, err)

	flaky := &flakyTagStore{TagStore: b.store, failName: "bad"}
	svc := NewTagService(flaky, fixedColor(0), b.metrics, slog.New(slog.NewTextHandler(io.Discard, nil)))

	tags := svc.AddTagsToMessage(ctx, m.ID, []string{"good", "bad", "also-good"})
	require.Len(t, tags, 2)
	assert.Equal(t, "good", tags[0].Name)
	assert.Equal(t, "also-good", tags[1].Name)
	assert.Equal(t, 1, b.metrics.skipped)

	// The failing tag itself was still created.
	_, err = b.store.GetTagByName(ctx, "bad")
	assert.NoError(t, err)
}

func TestGetMessageTagsBatch_EmptyInput(t *testing.T) {
	b := setupTestBoard(t, defaultLimits())

	got, err := b.tags.GetMessageTagsBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListTags_CountsAndOrder(t *testing.T) {
	b := setupTestBoard(t, defaultLimits())
	ctx := context.Background()

	_, err := b.messages.CreateMessage(ctx, "one", []string{"x", "y"})
	require.NoError(t, err)
	_, err = b.messages.CreateMessage(ctx, "two", []string{"y"})
	require.NoError(t, err)

	tags, err := b.tags.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "y", tags[0].Name)
	assert.Equal(t, 2, tags[0].MessageCount)
	assert.Equal(t, "x", tags[1].Name)
	assert.Equal(t, 1, tags[1].MessageCount)
}

func TestRemoveMessageTags(t *testing.T) {
	b := setupTestBoard(t, defaultLimits())
	ctx := context.Background()

	m, err := b.messages.CreateMessage(ctx, "tagged", []string{"x"})
	require.NoError(t, err)

	require.NoError(t, b.tags.RemoveMessageTags(ctx, m.ID))

	got, err := b.tags.GetMessageTags(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}
