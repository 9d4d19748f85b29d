package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/listenupapp/board-server/internal/config"
	"github.com/listenupapp/board-server/internal/logger"
	"github.com/listenupapp/board-server/internal/web"
)

// RendererHandle wraps the template renderer with its reload watcher.
type RendererHandle struct {
	*web.Renderer
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *RendererHandle) Shutdown() error {
	h.cancel()
	return h.Close()
}

// ProvideRenderer provides the HTML renderer. With a template directory
// configured, templates are reloaded whenever they change on disk.
func ProvideRenderer(i do.Injector) (*RendererHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	renderer, err := web.NewRenderer(cfg.Web.TemplateDir, log.Logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := renderer.Watch(ctx); err != nil {
		// Non-fatal: the templates already loaded keep working.
		log.Warn("Template hot reload unavailable", "dir", cfg.Web.TemplateDir, "error", err)
	} else if cfg.Web.TemplateDir != "" {
		log.Info("Template hot reload enabled", "dir", cfg.Web.TemplateDir)
	}

	return &RendererHandle{Renderer: renderer, cancel: cancel}, nil
}
