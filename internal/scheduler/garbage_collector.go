package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrSnakeDoc/linkvault/internal/logger"
)

// DefaultGCInterval is used when no positive interval is configured.
const DefaultGCInterval = 10 * time.Minute

// Collectable is a store that reclaims disk space on demand.
type Collectable interface {
	CollectGarbage(ctx context.Context) error
}

// GarbageCollector periodically asks a store to reclaim space.
type GarbageCollector struct {
	target   Collectable
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	started  atomic.Bool
	done     chan struct{}
	runs     atomic.Int64
}

// NewGarbageCollector creates a new garbage collector
func NewGarbageCollector(target Collectable, log logger.Logger, interval time.Duration) *GarbageCollector {
	if interval <= 0 {
		interval = DefaultGCInterval
	}
	return &GarbageCollector{
		target:   target,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins the periodic garbage collection process. The first run
// happens after one interval; a freshly opened store has nothing to reclaim.
func (gc *GarbageCollector) Start(ctx context.Context) error {
	ticker := time.NewTicker(gc.interval)
	gc.started.Store(true)
	go func() {
		defer close(gc.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := gc.Collect(ctx); err != nil {
					gc.logger.Error("garbage collection failed",
						logger.Error(err))
				}
			case <-gc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the garbage collector and waits for a running collection.
func (gc *GarbageCollector) Stop() {
	gc.stopOnce.Do(func() { close(gc.stopCh) })
	if gc.started.Load() {
		<-gc.done
	}
}

// Collect runs one collection.
func (gc *GarbageCollector) Collect(ctx context.Context) error {
	start := time.Now()
	if err := gc.target.CollectGarbage(ctx); err != nil {
		return err
	}
	gc.runs.Add(1)
	gc.logger.Debug("garbage collection completed",
		logger.Duration("took", time.Since(start)))
	return nil
}

// Runs returns the number of successful collections.
func (gc *GarbageCollector) Runs() int64 { return gc.runs.Load() }
