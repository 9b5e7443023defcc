package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/papapumpkin/uptake/internal/adoption"
)

// ReloadFunc is called after a reload attempt. On success err is nil and
// cache is the newly served cache; on failure cache is nil and the
// previous cache keeps serving.
type ReloadFunc func(cache *adoption.Cache, err error)

// ReloaderConfig holds the configuration for creating a Reloader.
type ReloaderConfig struct {
	Watcher  *Watcher
	Live     *adoption.Live
	Options  adoption.Options
	Clock    func() time.Time // defaults to time.Now
	OnReload ReloadFunc
	Logger   *slog.Logger
}

// Reloader rebuilds the series cache whenever the watched catalog file
// changes and swaps it into the live holder. An invalid file never
// replaces a valid cache.
type Reloader struct {
	watcher  *Watcher
	live     *adoption.Live
	opts     adoption.Options
	clock    func() time.Time
	onReload ReloadFunc
	logger   *slog.Logger
}

// NewReloader creates a Reloader with the given configuration.
func NewReloader(cfg ReloaderConfig) *Reloader {
	r := &Reloader{
		watcher:  cfg.Watcher,
		live:     cfg.Live,
		opts:     cfg.Options,
		clock:    cfg.Clock,
		onReload: cfg.OnReload,
		logger:   cfg.Logger,
	}
	if r.clock == nil {
		r.clock = time.Now
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	return r
}

// Run consumes watcher changes until ctx is done or the watcher stops.
func (r *Reloader) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-r.watcher.Changes:
			if !ok {
				return
			}
			r.handle(change)
		}
	}
}

func (r *Reloader) handle(change Change) {
	log := r.logger.With("file", change.File)
	if change.Kind == ChangeRemoved {
		log.Warn("catalog file removed; keeping current series")
		return
	}

	cache, err := r.Reload(change.File)
	if err != nil {
		log.Error("catalog reload rejected; keeping current series", "err", err)
	} else {
		log.Info("catalog reloaded",
			"frameworks", cache.Catalog().Len(),
			"samples", cache.TotalSamples(),
			"generation", cache.Generation())
	}
	if r.onReload != nil {
		r.onReload(cache, err)
	}
}

// Reload loads path, simulates the catalog and swaps the result in.
func (r *Reloader) Reload(path string) (*adoption.Cache, error) {
	cat, err := Load(path)
	if err != nil {
		return nil, err
	}
	cache, err := adoption.NewCache(cat, r.clock(), r.opts)
	if err != nil {
		return nil, err
	}
	r.live.Swap(cache)
	return cache, nil
}
