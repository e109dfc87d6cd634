// Package worker runs background maintenance for the context cache.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/parley-labs/parley-core/internal/core/ports/driven"
	"github.com/parley-labs/parley-core/internal/core/ports/driving"
)

const sweepLockName = "context-sweep"

// Janitor periodically sweeps idle entries out of the context cache.
// With a distributed lock configured, only one instance sweeps per interval;
// without one, every instance sweeps its own store.
type Janitor struct {
	contexts driving.ContextService
	lock     driven.DistributedLock
	logger   *slog.Logger
	interval time.Duration

	// Internal state
	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// JanitorConfig holds configuration for the janitor.
type JanitorConfig struct {
	Contexts driving.ContextService
	Lock     driven.DistributedLock // optional
	Logger   *slog.Logger
	Interval time.Duration // defaults to 10 minutes
}

// NewJanitor creates a new context cache janitor.
func NewJanitor(cfg JanitorConfig) *Janitor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &Janitor{
		contexts: cfg.Contexts,
		lock:     cfg.Lock,
		logger:   logger,
		interval: interval,
	}
}

// Start begins the sweep loop.
// It runs until Stop is called or the context is cancelled.
func (j *Janitor) Start(ctx context.Context) error {
	j.mu.Lock()
	if j.running {
		j.mu.Unlock()
		return nil
	}
	j.running = true
	j.stopCh = make(chan struct{})
	j.doneCh = make(chan struct{})
	j.mu.Unlock()

	j.logger.Info("janitor starting", "interval", j.interval)

	go j.loop(ctx)
	return nil
}

// Stop gracefully stops the janitor.
func (j *Janitor) Stop() {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return
	}
	close(j.stopCh)
	j.mu.Unlock()

	<-j.doneCh

	j.mu.Lock()
	j.running = false
	j.mu.Unlock()

	j.logger.Info("janitor stopped")
}

func (j *Janitor) loop(ctx context.Context) {
	defer close(j.doneCh)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("janitor context cancelled")
			return
		case <-j.stopCh:
			return
		case <-ticker.C:
			j.Sweep(ctx)
		}
	}
}

// Sweep runs one sweep pass, coordinating through the distributed lock
// when one is configured.
func (j *Janitor) Sweep(ctx context.Context) {
	if j.lock != nil {
		acquired, err := j.lock.Acquire(ctx, sweepLockName, j.interval)
		if err != nil {
			j.logger.Warn("sweep lock acquire failed", "error", err)
			return
		}
		if !acquired {
			// Another instance is sweeping this interval.
			return
		}
		defer func() {
			if err := j.lock.Release(ctx, sweepLockName); err != nil {
				j.logger.Warn("sweep lock release failed", "error", err)
			}
		}()
	}

	removed, err := j.contexts.SweepExpired(ctx)
	if err != nil {
		j.logger.Error("context sweep failed", "error", err)
		return
	}
	if removed > 0 {
		j.logger.Info("context sweep complete", "removed", removed)
	}
}
