package core

// sweeper.go runs background session cleanup.
//
// Import sessions live in memory only. The sweeper drops sessions that have
// not been touched for longer than the session TTL. It stops when its
// context is cancelled.

import (
	"context"
	"log/slog"
	"time"
)

// DefaultSweepInterval is used when StartSweeper gets a non-positive interval.
const DefaultSweepInterval = time.Minute

// StartSweeper periodically removes expired sessions until ctx is cancelled.
// It blocks; run it in its own goroutine.
func (s *Service) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	slog.Info("session sweeper started",
		"interval", interval.String(),
		"session_ttl", s.ttl.String(),
		"max_sessions", s.maxSessions,
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session sweeper stopped")
			return
		case <-ticker.C:
			s.runSweep()
		}
	}
}

// runSweep performs one cleanup cycle.
func (s *Service) runSweep() {
	start := time.Now()
	removed := s.Sweep()
	if removed == 0 {
		return
	}
	slog.Info("expired import sessions removed",
		"removed", removed,
		"remaining", s.ImportCount(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
