// Package tick provides the single cooperative tick source that drives a
// live brewing session. One scheduler serves exactly one session.
package tick

import (
	"context"
	"sync"
	"time"

	"brewflow/internal/logger"
)

// DefaultInterval is the recommended tick resolution.
const DefaultInterval = 100 * time.Millisecond

// Scheduler emits ticks on a channel at a fixed interval. Starting it while
// it is already running is a no-op; cancellation is observed within one
// tick interval.
type Scheduler struct {
	interval time.Duration
	log      *logger.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc

	ticks chan time.Time
}

// New creates a scheduler with the given tick interval. Non-positive
// intervals fall back to DefaultInterval.
func New(interval time.Duration, log *logger.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		interval: interval,
		log:      log,
		ticks:    make(chan time.Time, 1),
	}
}

// Interval returns the tick resolution.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Ticks returns the channel tick timestamps arrive on. A slow consumer
// drops ticks rather than blocking the loop.
func (s *Scheduler) Ticks() <-chan time.Time { return s.ticks }

// Start begins the tick loop. Returns false if a loop is already running,
// in which case nothing changes.
func (s *Scheduler) Start(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.log.Warn("tick loop already running, ignoring start")
		return false
	}

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	go s.loop(childCtx)

	s.log.Debug("tick loop started (interval=%s)", s.interval)
	return true
}

// Stop cancels the current loop. Safe to call when not running.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.cancel()
	s.running = false
	s.log.Debug("tick loop stopped")
}

// Running reports whether a loop is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) loop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			select {
			case s.ticks <- now:
			default:
				// consumer busy, skip this tick
			}
		}
	}
}
