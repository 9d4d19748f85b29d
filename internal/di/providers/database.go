package providers

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/samber/do/v2"

	"github.com/listenupapp/board-server/internal/config"
	"github.com/listenupapp/board-server/internal/logger"
	"github.com/listenupapp/board-server/internal/metrics"
	"github.com/listenupapp/board-server/internal/store"
	"github.com/listenupapp/board-server/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := cfg.Storage.DBPath()
	db, err := sqlite.Open(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// ProvideSlogLogger provides access to the underlying slog.Logger for packages that need it.
func ProvideSlogLogger(i do.Injector) (*slog.Logger, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return log.Logger, nil
}

// ProvideMetrics provides the Prometheus collectors, with the stored
// message gauge reading from the database at scrape time.
func ProvideMetrics(i do.Injector) (*metrics.Metrics, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	m := metrics.New()
	m.RegisterStoredMessages(func() float64 {
		ctx, cancel := context.WithTimeout(context.Background(), gaugeTimeout)
		defer cancel()

		n, err := storeHandle.CountMessages(ctx, store.MessageFilter{})
		if err != nil {
			log.Warn("Failed to count messages for metrics", "error", err)
			return 0
		}
		return float64(n)
	})

	return m, nil
}
