package api

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	domainerrors "github.com/listenupapp/board-server/internal/errors"
	"github.com/listenupapp/board-server/internal/http/response"
	"github.com/listenupapp/board-server/internal/logger"
)

// limitWrites rate limits state-changing requests per client IP.
// Reads and CORS preflights pass through untouched.
func (s *Server) limitWrites(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.writeLimiter == nil || !isWrite(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		key := clientIP(r)
		if s.writeLimiter.Allow(key) {
			next.ServeHTTP(w, r)
			return
		}

		s.metrics.SubmitLimited()
		logger.FromContext(r.Context(), s.logger).Warn("Rate limit exceeded",
			"ip", key,
			"path", r.URL.Path,
		)

		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Retry-After", retryAfterSeconds)
			writeAPIError(w, domainerrors.ErrRateLimited.HTTPStatus(), domainerrors.ErrRateLimited)
			return
		}
		response.TooManyRequests(w, retryAfterSeconds)
	})
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

// clientIP returns the host part of RemoteAddr. middleware.RealIP has
// already replaced it with X-Real-IP / X-Forwarded-For when present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// writeAPIError writes an error in the same shape huma produces, for
// middleware that rejects a request before it reaches an operation.
func writeAPIError(w http.ResponseWriter, status int, err *domainerrors.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(&APIError{
		status:  status,
		Code:    string(err.Code),
		Message: err.Message,
		Details: err.Details,
	})
}
