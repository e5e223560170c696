package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/megambeast/fincompare/internal/storage"
)

// Cleaner handles periodic cleanup of expired sessions
type Cleaner struct {
	store    storage.SessionStore
	interval time.Duration
}

// NewCleaner creates a new cleanup worker
func NewCleaner(store storage.SessionStore, interval time.Duration) *Cleaner {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &Cleaner{
		store:    store,
		interval: interval,
	}
}

// Start begins the cleanup worker in a goroutine
func (c *Cleaner) Start(ctx context.Context) {
	go c.run(ctx)
}

// run is the main loop for the cleanup worker
func (c *Cleaner) run(ctx context.Context) {
	slog.Info("cleanup worker started", "interval", c.interval)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	// Run immediately on start
	c.cleanup(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			c.cleanup(ctx)
		}
	}
}

// cleanup sweeps expired sessions from the store
func (c *Cleaner) cleanup(ctx context.Context) {
	slog.Debug("running cleanup cycle")

	removed, err := c.store.DeleteExpired(ctx)
	if err != nil {
		slog.Error("failed to delete expired sessions", "error", err)
		return
	}

	if len(removed) == 0 {
		slog.Debug("no expired sessions found")
		return
	}

	for _, id := range removed {
		slog.Info("expired session deleted", "id", id)
	}
}
