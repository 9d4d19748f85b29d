package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/listenupapp/board-server/internal/id"
	"github.com/listenupapp/board-server/internal/logger"
)

// requestID tags each request with an id, echoes it in the response and
// stores a request-scoped logger in the context.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(headerRequestID)
		if reqID == "" || len(reqID) > 64 {
			generated, err := id.NewRequestID()
			if err != nil {
				s.logger.Warn("Failed to generate request id", "error", err)
			}
			reqID = generated
		}

		w.Header().Set(headerRequestID, reqID)
		ctx := logger.NewContext(r.Context(), s.logger.With("request_id", reqID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLogger logs one line per request with status and latency.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		log := logger.FromContext(r.Context(), s.logger)
		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"remote", r.RemoteAddr,
		}
		switch {
		case status >= http.StatusInternalServerError:
			log.Error("HTTP request", attrs...)
		case strings.HasPrefix(r.URL.Path, "/static/"), r.URL.Path == "/metrics", r.URL.Path == "/health":
			log.Debug("HTTP request", attrs...)
		default:
			log.Info("HTTP request", attrs...)
		}
	})
}

// limitBody caps request bodies. Form parsing surfaces the overflow as a
// *http.MaxBytesError, which handlers map to 413.
func (s *Server) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.MaxBodyBytes > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}

// apiCORS applies CORS headers to /api routes only; the HTML board is same-origin.
func (s *Server) apiCORS() func(http.Handler) http.Handler {
	origins := s.opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	withCORS := cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", headerRequestID},
		ExposedHeaders: []string{headerRequestID, "Retry-After"},
		MaxAge:         300,
	})

	return func(next http.Handler) http.Handler {
		api := withCORS(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/api/") {
				api.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
