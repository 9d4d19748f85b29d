package di

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"

	"github.com/listenupapp/board-server/internal/logger"
)

// Run builds the container, serves until ctx is cancelled and then shuts
// every service down in reverse dependency order.
func Run(ctx context.Context, args []string) error {
	injector := NewContainer(args)

	if err := Bootstrap(injector); err != nil {
		injector.Shutdown()
		return err
	}

	log := do.MustInvoke[*logger.Logger](injector)

	<-ctx.Done()

	log.Info("Shutting down server gracefully...")

	// The DI container handles shutdown order automatically.
	if errs := injector.Shutdown(); errs != nil {
		log.Error("Shutdown error", "error", errs)
		return fmt.Errorf("shutdown: %v", errs)
	}

	return nil
}
