// Package api provides the HTTP server for the message board: the HTML
// pages and form actions, and the JSON API served through huma.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/listenupapp/board-server/internal/metrics"
	"github.com/listenupapp/board-server/internal/ratelimit"
	"github.com/listenupapp/board-server/internal/store"
	"github.com/listenupapp/board-server/internal/web"
)

// Options tunes the HTTP surface.
type Options struct {
	MaxBodyBytes    int64    // Request bodies larger than this are rejected
	CORSOrigins     []string // Origins allowed on /api routes
	SubmitPerMinute int      // Write requests per minute per client IP; 0 disables limiting
	SubmitBurst     int
	ExposeMetrics   bool // Serve /metrics
	Version         string
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    store.Store
	services *Services
	renderer *web.Renderer
	metrics  *metrics.Metrics
	opts     Options

	router *chi.Mux
	api    huma.API
	logger *slog.Logger

	writeLimiter *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, renderer *web.Renderer, m *metrics.Metrics, opts Options, logger *slog.Logger) *Server {
	if opts.Version == "" {
		opts.Version = "dev"
	}

	s := &Server{
		store:    st,
		services: services,
		renderer: renderer,
		metrics:  m,
		opts:     opts,
		router:   chi.NewRouter(),
		logger:   logger,
	}
	if opts.SubmitPerMinute > 0 {
		s.writeLimiter = ratelimit.PerMinute(opts.SubmitPerMinute, max(opts.SubmitBurst, 1))
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Message Board API", opts.Version)
	// Plain bodies: polling clients expect {"messages": [...]} and nothing else.
	humaConfig.CreateHooks = nil
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases background resources held by the server.
func (s *Server) Close() {
	if s.writeLimiter != nil {
		s.writeLimiter.Stop()
	}
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(s.requestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.metrics.Middleware)
	s.router.Use(s.limitBody)
	s.router.Use(s.apiCORS())
	s.router.Use(s.limitWrites)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// HTML board.
	s.router.Get("/", s.handleHome)
	s.router.Post("/submit", s.handleSubmit)
	s.router.Post("/delete", s.handleDelete)
	s.router.Post("/reply", s.handleReply)
	s.router.Post("/reply/delete", s.handleReplyDelete)
	s.router.Handle("/static/*", http.StripPrefix("/static/", s.renderer.Static()))

	if s.opts.ExposeMetrics {
		s.router.Handle("/metrics", s.metrics.Handler())
	}

	// JSON API.
	s.registerHealthRoutes()
	s.registerMessageRoutes()
	s.registerTagRoutes()
	s.registerReplyRoutes()

	s.router.NotFound(s.handleNotFound)
}
