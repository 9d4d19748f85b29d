package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/board-server/internal/color"
	"github.com/listenupapp/board-server/internal/domain"
)

func TestListTags_API(t *testing.T) {
	ts := setupTestServer(t, Options{})

	ts.post(t, "one", "zeta", "alpha")
	ts.post(t, "two", "zeta")
	ts.post(t, "three", "beta")

	resp := ts.api.Get("/api/tags")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, CacheNoStore, resp.Header().Get("Cache-Control"))

	var body ListTagsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Tags, 3)

	assert.Equal(t, "zeta", body.Tags[0].Name)
	assert.Equal(t, 2, body.Tags[0].MessageCount)
	assert.Equal(t, "alpha", body.Tags[1].Name)
	assert.Equal(t, "beta", body.Tags[2].Name)
	for _, tag := range body.Tags {
		assert.True(t, color.InPalette(tag.Color), tag.Color)
	}
}

func TestListTags_EmptyIsArray(t *testing.T) {
	ts := setupTestServer(t, Options{})

	resp := ts.api.Get("/api/tags")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"tags":[]}`, resp.Body.String())
}

func TestGetTag_API(t *testing.T) {
	ts := setupTestServer(t, Options{})
	id := ts.post(t, "tagged", "news")

	m, err := ts.server.services.Message.GetMessage(t.Context(), id)
	require.NoError(t, err)
	require.Len(t, m.Tags, 1)

	resp := ts.api.Get(fmt.Sprintf("/api/tags/%d", m.Tags[0].ID))
	require.Equal(t, http.StatusOK, resp.Code)

	var tag domain.Tag
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &tag))
	assert.Equal(t, "news", tag.Name)

	resp = ts.api.Get("/api/tags/777")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHome_TagFilter(t *testing.T) {
	ts := setupTestServer(t, Options{})
	id := ts.post(t, "tagged message", "news")
	ts.post(t, "plain message")

	m, err := ts.server.services.Message.GetMessage(t.Context(), id)
	require.NoError(t, err)

	rec := ts.get(fmt.Sprintf("/?tag=%d", m.Tags[0].ID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tagged message")
	assert.NotContains(t, rec.Body.String(), "plain message")
}
