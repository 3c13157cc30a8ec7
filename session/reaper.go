package session

import (
	"context"
	"log/slog"
	"time"
)

// Clock abstracts time for the reaper so sweeps can be tested with a
// fake clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// Reaper garbage-collects sessions that have been idle longer than the
// configured TTL. Sessions mid-transition hold their per-id lock, so
// the reaper skips them and tries again on the next sweep.
type Reaper struct {
	store    *MemoryStore
	idleTTL  time.Duration
	interval time.Duration
	clock    Clock
	logger   *slog.Logger
}

// NewReaper builds a reaper sweeping at the given interval. A zero or
// negative interval defaults to one minute.
func NewReaper(store *MemoryStore, idleTTL, interval time.Duration, clock Clock, logger *slog.Logger) *Reaper {
	if interval <= 0 {
		interval = time.Minute
	}
	if clock == nil {
		clock = SystemClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reaper{
		store:    store,
		idleTTL:  idleTTL,
		interval: interval,
		clock:    clock,
		logger:   logger,
	}
}

// Run sweeps until the context is cancelled.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Info("reaped idle sessions", "count", n)
			}
		}
	}
}

// Sweep deletes idle sessions once and reports how many were removed.
func (r *Reaper) Sweep() int {
	cutoff := r.clock.Now().Add(-r.idleTTL)
	var reaped int
	for _, sess := range r.store.List() {
		if !sess.UpdatedAt.Before(cutoff) {
			continue
		}
		if err := r.store.Acquire(sess.ID); err != nil {
			continue
		}
		r.store.Delete(sess.ID)
		r.store.Release(sess.ID)
		reaped++
	}
	return reaped
}
