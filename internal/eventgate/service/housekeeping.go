package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/openvenue/eventgate/internal/eventgate/store"
)

// HousekeepingService periodically prunes accounts that signed up but never
// activated, so abandoned signups do not hold usernames and email addresses
// forever.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// PendingTTL is how long an inactive account survives before pruning.
	PendingTTL time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping worker. Interval defaults to
// 1 hour and PendingTTL to 7 days when unset.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval, pendingTTL time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if pendingTTL <= 0 {
		pendingTTL = 7 * 24 * time.Hour
	}

	return &HousekeepingService{
		Store:      st,
		Logger:     logger,
		Interval:   interval,
		PendingTTL: pendingTTL,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started",
		"interval", s.Interval,
		"pending_ttl", s.PendingTTL,
	)
}

// Stop shuts down the worker and blocks until any in-progress cleanup
// finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup deletes never-activated accounts older than PendingTTL. Exported
// so tests and one-shot maintenance commands can invoke it directly.
func (s *HousekeepingService) Cleanup(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-s.PendingTTL)
	return s.Store.Users().DeleteInactiveCreatedBefore(ctx, cutoff)
}

func (s *HousekeepingService) cleanup() {
	deleted, err := s.Cleanup(context.Background())
	if err != nil {
		s.Logger.Error("failed to prune pending accounts", "error", err)
		return
	}
	if deleted > 0 {
		s.Logger.Info("pruned pending accounts", "deleted", deleted)
	}
}
