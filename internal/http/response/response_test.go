package response

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	domainerrors "github.com/listenupapp/board-server/internal/errors"
	"github.com/listenupapp/board-server/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHTML(t *testing.T) {
	w := httptest.NewRecorder()

	HTML(w, http.StatusOK, []byte("<h1>board</h1>"), discardLogger())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "<h1>board</h1>", w.Body.String())
}

func TestText(t *testing.T) {
	w := httptest.NewRecorder()

	Text(w, http.StatusTeapot, "short and stout")

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "short and stout", w.Body.String())
}

func TestRedirect(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/delete", nil)

	Redirect(w, r, "/?page=2&q=go")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/?page=2&q=go", w.Header().Get("Location"))
}

func TestNotFound(t *testing.T) {
	w := httptest.NewRecorder()

	NotFound(w)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "404 Not Found", w.Body.String())
}

func TestTooManyRequests(t *testing.T) {
	w := httptest.NewRecorder()

	TooManyRequests(w, "2")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"empty content", domainerrors.EmptyContent("empty"), http.StatusBadRequest},
		{"invalid id", domainerrors.InvalidID("bad id"), http.StatusBadRequest},
		{"domain not found", domainerrors.NotFound("message not found"), http.StatusNotFound},
		{"wrapped domain", fmt.Errorf("reply: %w", domainerrors.NotFound("gone")), http.StatusNotFound},
		{"store not found", store.ErrMessageNotFound, http.StatusNotFound},
		{"store conflict", store.ErrAlreadyExists, http.StatusConflict},
		{"body too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestHandleError_Validation(t *testing.T) {
	w := httptest.NewRecorder()

	HandleError(w, domainerrors.EmptyContent("message content is empty"), discardLogger())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "message content is empty", w.Body.String())
}

func TestHandleError_HidesInternalDetails(t *testing.T) {
	w := httptest.NewRecorder()

	HandleError(w, errors.New("sqlite: database is locked"), discardLogger())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "sqlite")
}

func TestHandleError_NotFound(t *testing.T) {
	w := httptest.NewRecorder()

	HandleError(w, store.ErrReplyNotFound, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "404 Not Found", w.Body.String())
}
