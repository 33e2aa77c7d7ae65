package scheduler

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MrSnakeDoc/linkvault/internal/logger"
	taxsource "github.com/MrSnakeDoc/linkvault/internal/sources/taxonomy"
	"github.com/MrSnakeDoc/linkvault/internal/taxonomy"
)

// DefaultWatchDebounce groups the burst of events an editor emits on save.
const DefaultWatchDebounce = 250 * time.Millisecond

// TaxonomyReloader keeps the registry in sync with the taxonomy file: on
// start, on every tick, on file change and on manual trigger.
// A file that fails to load leaves the current taxonomy in place.
type TaxonomyReloader struct {
	loader        *taxsource.Loader
	registry      *taxonomy.Registry
	logger        logger.Logger
	interval      time.Duration
	watch         bool
	debounce      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	started       atomic.Bool
	done          chan struct{}
	manualTrigger chan struct{}
}

// NewTaxonomyReloader creates a reloader for file. With watch set, changes
// to the file are picked up through fsnotify.
func NewTaxonomyReloader(
	file string,
	registry *taxonomy.Registry,
	log logger.Logger,
	interval time.Duration,
	watch bool,
	manualTrigger chan struct{},
) *TaxonomyReloader {
	return &TaxonomyReloader{
		loader:        taxsource.NewLoader(file),
		registry:      registry,
		logger:        log,
		interval:      interval,
		watch:         watch,
		debounce:      DefaultWatchDebounce,
		stopCh:        make(chan struct{}),
		done:          make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the file once and fails if it is unusable, then reloads in
// the background until Stop or ctx is done.
func (tr *TaxonomyReloader) Start(ctx context.Context) error {
	if err := tr.Reload(); err != nil {
		return fmt.Errorf("initial taxonomy load failed: %w", err)
	}

	var events <-chan fsnotify.Event
	var watchErrs <-chan error
	var watcher *fsnotify.Watcher
	if tr.watch {
		w, err := tr.newWatcher()
		if err != nil {
			// Periodic and manual reloads still work.
			tr.logger.Warn("taxonomy file watch disabled", logger.Error(err))
		} else {
			watcher, events, watchErrs = w, w.Events, w.Errors
		}
	}

	interval := tr.interval
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)

	tr.started.Store(true)
	go func() {
		defer close(tr.done)
		defer ticker.Stop()
		if watcher != nil {
			defer func() { _ = watcher.Close() }()
		}

		// debounce timer, armed by file events
		var pending <-chan time.Time
		for {
			select {
			case <-ticker.C:
				tr.reloadLogged("periodic")
			case <-tr.manualTrigger:
				tr.logger.Info("manual taxonomy reload triggered")
				tr.reloadLogged("manual")
			case ev, ok := <-events:
				if !ok {
					events = nil
					continue
				}
				if tr.relevant(ev) {
					pending = time.After(tr.debounce)
				}
			case err, ok := <-watchErrs:
				if !ok {
					watchErrs = nil
					continue
				}
				tr.logger.Warn("taxonomy watcher error", logger.Error(err))
			case <-pending:
				pending = nil
				tr.reloadLogged("file change")
			case <-tr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop ends the background loop and waits for it. Safe to call more than once.
func (tr *TaxonomyReloader) Stop() {
	tr.stopOnce.Do(func() { close(tr.stopCh) })
	if tr.started.Load() {
		<-tr.done
	}
}

// Reload loads the file and swaps it into the registry on success.
func (tr *TaxonomyReloader) Reload() error {
	tax, err := tr.loader.Load()
	if err != nil {
		return err
	}
	tr.registry.Swap(tax)
	tr.logger.Info("taxonomy loaded",
		logger.String("file", tr.loader.Path()),
		logger.Int("tags", len(tax.Tags)),
		logger.Int("categories", len(tax.Categories)))
	return nil
}

func (tr *TaxonomyReloader) reloadLogged(reason string) {
	if err := tr.Reload(); err != nil {
		tr.logger.Error("failed to reload taxonomy, keeping the current one",
			logger.String("reason", reason),
			logger.Error(err))
	}
}

// newWatcher watches the directory rather than the file so atomic
// replace-by-rename saves are seen.
func (tr *TaxonomyReloader) newWatcher() (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	dir := filepath.Dir(tr.loader.Path())
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	return w, nil
}

func (tr *TaxonomyReloader) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != filepath.Clean(tr.loader.Path()) {
		return false
	}
	return ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0
}
