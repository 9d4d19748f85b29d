package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/board-server/internal/domain"
)

func TestReplies_API(t *testing.T) {
	ts := setupTestServer(t, Options{})
	id := ts.post(t, "parent")
	path := fmt.Sprintf("/api/messages/%d/replies", id)

	resp := ts.api.Post(path, map[string]any{"content": "first"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var reply domain.Reply
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &reply))
	assert.Equal(t, id, reply.MessageID)
	assert.Equal(t, "first", reply.Content)

	resp = ts.api.Post(path, map[string]any{"content": "second"})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = ts.api.Get(path)
	require.Equal(t, http.StatusOK, resp.Code)

	var list RepliesResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	assert.Equal(t, 2, list.Count)
	require.Len(t, list.Replies, 2)
	assert.Equal(t, "first", list.Replies[0].Content)
	assert.Equal(t, "second", list.Replies[1].Content)

	resp = ts.api.Delete(fmt.Sprintf("/api/replies/%d", reply.ID))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"deleted":true}`, resp.Body.String())
}

func TestCreateReply_Errors(t *testing.T) {
	ts := setupTestServer(t, Options{})
	id := ts.post(t, "parent")

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"empty content", fmt.Sprintf("/api/messages/%d/replies", id), "  ", http.StatusBadRequest, "EMPTY_CONTENT"},
		{"invalid id", "/api/messages/abc/replies", "hi", http.StatusBadRequest, "INVALID_ID"},
		{"missing parent", "/api/messages/9999/replies", "hi", http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Post(tt.path, map[string]any{"content": tt.body})
			require.Equal(t, tt.status, resp.Code, resp.Body.String())

			var apiErr APIError
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apiErr))
			assert.Equal(t, tt.code, apiErr.Code)
		})
	}
}

func TestListReplies_NonNumericIsEmpty(t *testing.T) {
	ts := setupTestServer(t, Options{})

	resp := ts.api.Get("/api/messages/xyz/replies")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"replies":[],"count":0}`, resp.Body.String())
}

func TestRepliesGoWithParent(t *testing.T) {
	ts := setupTestServer(t, Options{})
	id := ts.post(t, "parent")

	resp := ts.api.Post(fmt.Sprintf("/api/messages/%d/replies", id), map[string]any{"content": "child"})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = ts.api.Delete(fmt.Sprintf("/api/messages/%d", id))
	require.Equal(t, http.StatusOK, resp.Code)

	count, err := ts.server.services.Reply.ReplyCount(t.Context(), fmt.Sprint(id))
	require.NoError(t, err)
	assert.Zero(t, count)
}
