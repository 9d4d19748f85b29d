// Package response writes the non-JSON responses of the HTML board:
// rendered pages, plain-text errors and post/redirect/get redirects.
package response

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	domainerrors "github.com/listenupapp/board-server/internal/errors"
	"github.com/listenupapp/board-server/internal/store"
)

// Cache-Control value for responses that must always be refetched.
const CacheNoStore = "no-cache, no-store, must-revalidate"

// HTML writes an HTML body with the given status.
func HTML(w http.ResponseWriter, status int, body []byte, logger *slog.Logger) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil && logger != nil {
		logger.Debug("Failed to write HTML response", "error", err)
	}
}

// Text writes a plain-text response with the given status.
func Text(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, message)
}

// Redirect sends a 302 to location. Form posts redirect back to a listing page.
func Redirect(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusFound)
}

// BadRequest writes a 400 Bad Request response.
func BadRequest(w http.ResponseWriter, message string) {
	Text(w, http.StatusBadRequest, message)
}

// NotFound writes a 404 Not Found response.
func NotFound(w http.ResponseWriter) {
	Text(w, http.StatusNotFound, "404 Not Found")
}

// TooManyRequests writes a 429 response with a Retry-After hint.
func TooManyRequests(w http.ResponseWriter, retryAfterSeconds string) {
	if retryAfterSeconds != "" {
		w.Header().Set("Retry-After", retryAfterSeconds)
	}
	Text(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
}

// RequestTooLarge writes a 413 response.
func RequestTooLarge(w http.ResponseWriter) {
	Text(w, http.StatusRequestEntityTooLarge, "Request body too large")
}

// InternalError writes a 500 Internal Server Error response.
func InternalError(w http.ResponseWriter) {
	Text(w, http.StatusInternalServerError, "Internal server error")
}

// Status maps an error to an HTTP status code.
// Domain errors carry their own status, store errors their HTTP code,
// an oversized body is 413 and anything else is 500.
func Status(err error) int {
	var domainErr *domainerrors.Error
	if errors.As(err, &domainErr) {
		return domainErr.HTTPStatus()
	}

	var storeErr *store.Error
	if errors.As(err, &storeErr) {
		return storeErr.HTTPCode()
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return http.StatusRequestEntityTooLarge
	}

	return http.StatusInternalServerError
}

// HandleError writes an appropriate plain-text response for err.
// Unknown errors are logged and hidden behind a generic 500.
func HandleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	status := Status(err)

	if status >= http.StatusInternalServerError {
		if logger != nil {
			logger.Error("Request handling failed", "error", err)
		}
		InternalError(w)
		return
	}

	switch status {
	case http.StatusNotFound:
		NotFound(w)
	case http.StatusRequestEntityTooLarge:
		RequestTooLarge(w)
	case http.StatusTooManyRequests:
		TooManyRequests(w, "")
	default:
		Text(w, status, messageOf(err))
	}
}

func messageOf(err error) string {
	var domainErr *domainerrors.Error
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	var storeErr *store.Error
	if errors.As(err, &storeErr) {
		return storeErr.Message
	}
	return err.Error()
}
