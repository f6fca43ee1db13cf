// Package cli is the interactive companion shell. It is the UI boundary:
// internal errors collapse here into user messages and fallback values,
// never inside the core services.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/salesfield/fieldsync/internal/client/api"
	"github.com/salesfield/fieldsync/internal/client/config"
	"github.com/salesfield/fieldsync/internal/client/netmon"
	"github.com/salesfield/fieldsync/internal/client/services"
	"github.com/salesfield/fieldsync/internal/client/store"
	"github.com/salesfield/fieldsync/internal/logging"
)

type App struct {
	config  *config.Config
	store   *store.Store
	monitor *netmon.Monitor
	watcher *netmon.Watcher
	sync    *services.SyncService
	price   *services.PriceService
	log     logging.Logger
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	st, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	baseURL := config.ResolveBaseURL(cfg.APIBaseURL)
	apiClient := api.NewHTTPClient(baseURL, nil)

	monitor := netmon.NewMonitor(false)
	watcher := netmon.NewWatcher(apiClient, monitor, cfg.OnlineCheckInterval, log)

	app := &App{
		config:  cfg,
		store:   st,
		monitor: monitor,
		watcher: watcher,
		sync:    services.NewSyncService(apiClient, st.Pending, monitor, log),
		price:   services.NewPriceService(apiClient, st.Prices, st.Reference, monitor, log),
		log:     log,
	}
	return app, nil
}

// Run starts the watcher, hooks the reconnect-triggered drain, and enters
// the command loop.
func (a *App) Run(ctx context.Context) {
	defer a.store.Close()

	go a.watcher.Run(ctx)

	// Reconnect triggers an automatic drain; the queue is also drainable
	// with the explicit "sync" command.
	unsubscribe := a.monitor.OnOnline(func() {
		go a.autoDrain(ctx)
	})
	defer unsubscribe()

	a.Root(ctx)
}

func (a *App) autoDrain(ctx context.Context) {
	n, err := a.sync.PendingCount(ctx)
	if err != nil {
		a.log.Warn(ctx, "failed to count pending notes", "error", err)
		return
	}
	if n == 0 {
		return
	}
	a.log.Info(ctx, "reconnected, draining queue", "pending", n)
	a.drain(ctx)
}
