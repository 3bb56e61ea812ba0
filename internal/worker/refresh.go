// Package worker runs the optional background refresher that keeps the
// document cache warm between tool invocations.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/custodia-labs/reader-bridge/internal/core/ports/driving"
)

// Refresher periodically re-fetches a location so resource listings and
// prompts reflect recent remote changes without waiting for a tool call.
type Refresher struct {
	library   driving.LibraryService
	location  string
	interval  time.Duration
	onRefresh func()
	logger    *slog.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// RefresherConfig holds configuration for the refresher.
type RefresherConfig struct {
	Library  driving.LibraryService
	Location string // defaults to "new"
	Interval time.Duration
	Logger   *slog.Logger

	// OnRefresh runs after each successful fetch, never after a failed
	// one. The MCP server hooks it to republish resources.
	OnRefresh func()
}

// NewRefresher creates a new Refresher.
func NewRefresher(cfg RefresherConfig) *Refresher {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	location := cfg.Location
	if location == "" {
		location = "new"
	}
	return &Refresher{
		library:   cfg.Library,
		location:  location,
		interval:  cfg.Interval,
		onRefresh: cfg.OnRefresh,
		logger:    logger,
	}
}

// Start begins the refresh loop, running one refresh immediately.
// It runs until Stop is called or the context is cancelled.
func (r *Refresher) Start(ctx context.Context) error {
	if r.interval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %v", r.interval)
	}

	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = true
	r.stopCh = make(chan struct{})
	r.doneCh = make(chan struct{})
	r.mu.Unlock()

	r.logger.Info("refresher starting",
		"location", r.location,
		"interval", r.interval,
	)

	go r.loop(ctx)
	return nil
}

func (r *Refresher) loop(ctx context.Context) {
	defer close(r.doneCh)

	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

// refresh performs one fetch cycle. Errors are logged, never fatal: the
// next tick simply tries again.
func (r *Refresher) refresh(ctx context.Context) {
	docs, err := r.library.FetchDocuments(ctx, r.location, "", "")
	if err != nil {
		r.logger.Warn("refresh failed", "location", r.location, "error", err)
		return
	}
	r.logger.Info("refreshed documents", "location", r.location, "count", len(docs))
	if r.onRefresh != nil {
		r.onRefresh()
	}
}

// Stop gracefully stops the refresher and waits for the loop to exit.
func (r *Refresher) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	close(r.stopCh)
	r.mu.Unlock()

	<-r.doneCh
	r.logger.Info("refresher stopped")
}
