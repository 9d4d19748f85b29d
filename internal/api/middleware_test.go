package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	ts := setupTestServer(t, Options{})

	t.Run("generated", func(t *testing.T) {
		rec := ts.get("/health")
		reqID := rec.Header().Get(headerRequestID)
		assert.True(t, strings.HasPrefix(reqID, "req-"), reqID)
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(headerRequestID, "upstream-42")
		rec := ts.do(req)
		assert.Equal(t, "upstream-42", rec.Header().Get(headerRequestID))
	})

	t.Run("oversized is replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(headerRequestID, strings.Repeat("x", 100))
		rec := ts.do(req)
		assert.True(t, strings.HasPrefix(rec.Header().Get(headerRequestID), "req-"))
	})
}

func TestCORS_OnlyOnAPI(t *testing.T) {
	ts := setupTestServer(t, Options{CORSOrigins: []string{"https://example.com"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/messages", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := ts.do(req)
	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://example.com")
	rec = ts.do(req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit_Forms(t *testing.T) {
	ts := setupTestServer(t, Options{SubmitPerMinute: 1, SubmitBurst: 2})

	form := url.Values{"message": {"spam"}}
	assert.Equal(t, http.StatusFound, ts.postForm("/submit", form).Code)
	assert.Equal(t, http.StatusFound, ts.postForm("/submit", form).Code)

	rec := ts.postForm("/submit", form)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, retryAfterSeconds, rec.Header().Get("Retry-After"))

	// Reads are never limited.
	assert.Equal(t, http.StatusOK, ts.get("/").Code)

	total, err := ts.server.services.Message.TotalCount(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.InDelta(t, 1, testutil.ToFloat64(ts.metrics.SubmitsLimited), 0)
}

func TestRateLimit_API(t *testing.T) {
	ts := setupTestServer(t, Options{SubmitPerMinute: 1, SubmitBurst: 1})

	resp := ts.api.Post("/api/messages", map[string]any{"content": "first"})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = ts.api.Post("/api/messages", map[string]any{"content": "second"})
	require.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.Equal(t, retryAfterSeconds, resp.Header().Get("Retry-After"))

	var apiErr APIError
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "RATE_LIMITED", apiErr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		ts := setupTestServer(t, Options{ExposeMetrics: true})
		ts.post(t, "counted")

		rec := ts.get("/metrics")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "board_messages_created_total")
	})

	t.Run("disabled", func(t *testing.T) {
		ts := setupTestServer(t, Options{})
		assert.Equal(t, http.StatusNotFound, ts.get("/metrics").Code)
	})
}
