package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/board-server/internal/metrics"
	"github.com/listenupapp/board-server/internal/service"
	"github.com/listenupapp/board-server/internal/store/sqlite"
	"github.com/listenupapp/board-server/internal/web"
)

type testServer struct {
	server  *Server
	api     humatest.TestAPI
	store   *sqlite.Store
	metrics *metrics.Metrics
}

// fixedColor always picks the same palette index.
type fixedColor int

func (f fixedColor) IntN(int) int { return int(f) }

var testLimits = service.BoardLimits{PageSize: 2, MaxMessages: 10, MaxPages: 5}

// setupTestServer creates a server over a temp-dir database with the
// embedded templates.
func setupTestServer(t *testing.T, opts Options) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	m := metrics.New()

	clock := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	tick := func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	tags := service.NewTagService(st, fixedColor(0), m, logger)
	messages := service.NewMessageService(st, tags, testLimits, m, logger)
	messages.SetClock(tick)
	replies := service.NewReplyService(st, m, logger)
	replies.SetClock(tick)

	renderer, err := web.NewRenderer("", logger)
	require.NoError(t, err)

	server := NewServer(st, &Services{Message: messages, Tag: tags, Reply: replies}, renderer, m, opts, logger)
	t.Cleanup(server.Close)

	return &testServer{
		server:  server,
		api:     humatest.Wrap(t, server.api),
		store:   st,
		metrics: m,
	}
}

// do sends a raw request through the full middleware stack.
func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.server.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) get(path string) *httptest.ResponseRecorder {
	return ts.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (ts *testServer) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return ts.do(req)
}

// post creates a message through the service layer.
func (ts *testServer) post(t *testing.T, content string, tags ...string) int64 {
	t.Helper()
	m, err := ts.server.services.Message.CreateMessage(t.Context(), content, tags)
	require.NoError(t, err)
	return m.ID
}
