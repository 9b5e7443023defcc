package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/uptake/internal/adoption"
	"github.com/papapumpkin/uptake/internal/catalog"
	"github.com/papapumpkin/uptake/internal/config"
	"github.com/papapumpkin/uptake/internal/logging"
	"github.com/papapumpkin/uptake/internal/telemetry"
	"github.com/papapumpkin/uptake/internal/ui"
)

// app bundles what every long-running command needs.
type app struct {
	cfg       config.Config
	logger    *slog.Logger
	printer   *ui.Printer
	telemetry *telemetry.Emitter
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	em, err := telemetry.Open(cfg.Telemetry.Path)
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if em != nil {
		logger.Debug("telemetry enabled", "file", cfg.Telemetry.Path, "run", em.Run())
	}
	return &app{
		cfg:       cfg,
		logger:    logger,
		printer:   ui.NewWithWriter(cmd.ErrOrStderr()),
		telemetry: em,
	}, nil
}

func (a *app) close() {
	if err := a.telemetry.Close(); err != nil {
		a.logger.Warn("closing telemetry", "err", err)
	}
}

func (a *app) options() adoption.Options {
	return adoption.Options{
		Step:    a.cfg.Simulation.Step,
		Horizon: a.cfg.Simulation.HorizonYears,
	}
}

// buildCache resolves the configured catalog and simulates it at now. Any
// error here is fatal to the command.
func (a *app) buildCache(now time.Time) (*adoption.Cache, error) {
	cat, err := catalog.Resolve(a.cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	cache, err := adoption.NewCache(cat, now, a.options())
	if err != nil {
		return nil, fmt.Errorf("building series cache: %w", err)
	}
	a.logger.Info("series cache built",
		"generation", cache.Generation(),
		"frameworks", cat.Len(),
		"samples", cache.TotalSamples(),
	)
	a.emit(telemetry.Event{
		Kind:       telemetry.KindCacheBuilt,
		Generation: cache.Generation(),
		Data:       map[string]int{"frameworks": cat.Len(), "samples": cache.TotalSamples()},
	})
	return cache, nil
}

// watchCatalog hot-reloads the catalog file into live until ctx is done.
// It is a no-op for the compiled-in catalog or when watching is disabled.
// The returned stop function is always safe to call.
func (a *app) watchCatalog(ctx context.Context, live *adoption.Live, then catalog.ReloadFunc) (func(), error) {
	path := a.cfg.Catalog.Path
	if path == "" || !a.cfg.Catalog.Watch {
		return func() {}, nil
	}
	w, err := catalog.NewWatcher(path)
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		return nil, err
	}
	r := catalog.NewReloader(catalog.ReloaderConfig{
		Watcher: w,
		Live:    live,
		Options: a.options(),
		Logger:  a.logger,
		OnReload: func(cache *adoption.Cache, err error) {
			a.reloaded(path, cache, err)
			if then != nil {
				then(cache, err)
			}
		},
	})
	go r.Run(ctx)
	a.logger.Debug("watching catalog", "file", path)
	return w.Stop, nil
}

func (a *app) reloaded(path string, cache *adoption.Cache, err error) {
	if err != nil {
		a.emit(telemetry.Event{Kind: telemetry.KindCatalogRejected, Data: map[string]string{"file": path, "error": err.Error()}})
		return
	}
	a.emit(telemetry.Event{
		Kind:       telemetry.KindCatalogReloaded,
		Generation: cache.Generation(),
		Data:       map[string]int{"frameworks": cache.Catalog().Len(), "samples": cache.TotalSamples()},
	})
}

func (a *app) emit(evt telemetry.Event) {
	if err := a.telemetry.Emit(evt); err != nil {
		a.logger.Warn("telemetry", "err", err)
	}
}

// setupSignalContext returns a context that is canceled on SIGINT or SIGTERM.
func setupSignalContext(printer *ui.Printer) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			printer.Info("\nshutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}

func isStderrTTY() bool {
	return logging.IsTerminal(os.Stderr)
}
