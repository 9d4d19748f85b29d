package providers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/samber/do/v2"
	"golang.org/x/net/netutil"

	"github.com/listenupapp/board-server/internal/api"
	"github.com/listenupapp/board-server/internal/config"
	"github.com/listenupapp/board-server/internal/logger"
	"github.com/listenupapp/board-server/internal/metrics"
	"github.com/listenupapp/board-server/internal/service"
)

// Version is reported by /health. Set at build time with -ldflags.
var Version = "dev"

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	handler *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := h.Server.Shutdown(ctx)
	h.handler.Close()
	return err
}

// ProvideHTTPServer provides the HTTP server. The listener is bound before
// returning so a taken port fails the bootstrap instead of a background
// goroutine.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	rendererHandle := do.MustInvoke[*RendererHandle](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Message: do.MustInvoke[*service.MessageService](i),
		Tag:     do.MustInvoke[*service.TagService](i),
		Reply:   do.MustInvoke[*service.ReplyService](i),
	}

	handler := api.NewServer(storeHandle.Store, services, rendererHandle.Renderer, m, api.Options{
		MaxBodyBytes:    cfg.Server.MaxBodyBytes,
		CORSOrigins:     cfg.Server.CORSOrigins,
		SubmitPerMinute: cfg.RateLimit.SubmitPerMinute,
		SubmitBurst:     cfg.RateLimit.Burst,
		ExposeMetrics:   cfg.Metrics.Enabled,
		Version:         Version,
	}, log.Logger)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		handler.Close()
		return nil, fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}
	if cfg.Server.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, cfg.Server.MaxConnections)
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr, "max_connections", cfg.Server.MaxConnections)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Message board running", "url", fmt.Sprintf("http://localhost:%d", cfg.Server.Port))

	return &HTTPServerHandle{Server: srv, handler: handler}, nil
}
