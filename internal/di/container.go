// Package di provides dependency injection configuration for the message board server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/board-server/internal/config"
	"github.com/listenupapp/board-server/internal/di/providers"
	"github.com/listenupapp/board-server/internal/logger"
	"github.com/listenupapp/board-server/internal/metrics"
	"github.com/listenupapp/board-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
// args are the command-line flags for config.LoadConfig.
func NewContainer(args []string) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, providers.Args(args))
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideMetrics)

	// Business services
	do.Provide(injector, providers.ProvideTagService)
	do.Provide(injector, providers.ProvideMessageService)
	do.Provide(injector, providers.ProvideReplyService)

	// Server
	do.Provide(injector, providers.ProvideRenderer)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and starts the HTTP server.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Config errors are reported before anything else is built.
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)

	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*metrics.Metrics](injector)

	// Business services
	_ = do.MustInvoke[*service.TagService](injector)
	_ = do.MustInvoke[*service.MessageService](injector)
	_ = do.MustInvoke[*service.ReplyService](injector)

	// Server
	if _, err := do.Invoke[*providers.RendererHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}

	return nil
}
