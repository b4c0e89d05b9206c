// internal/humanoid/mocks_test.go
package humanoid

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

// testEpoch is the virtual start of every test session.
var testEpoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// constRandom always returns the same draw. With 0.5 every range yields its midpoint,
// every persona trait is ~1.0 and the final jitter is zero.
type constRandom float64

func (c constRandom) Float64() float64 { return float64(c) }

// seqRandom replays a fixed sequence of draws, repeating the last one when exhausted.
type seqRandom struct {
	mu   sync.Mutex
	vals []float64
	i    int
}

func (s *seqRandom) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.i >= len(s.vals) {
		return s.vals[len(s.vals)-1]
	}
	v := s.vals[s.i]
	s.i++
	return v
}

// cancellingScheduler cancels the context after a number of successful sleeps.
type cancellingScheduler struct {
	inner     *VirtualClock
	cancel    context.CancelFunc
	allowed   int
	callCount int
}

func (c *cancellingScheduler) Sleep(ctx context.Context, d time.Duration) error {
	c.callCount++
	if c.callCount > c.allowed {
		c.cancel()
	}
	return c.inner.Sleep(ctx, d)
}

// newFixedHumanoid builds an engine whose random source always returns r.
func newFixedHumanoid(t *testing.T, r float64) (*Humanoid, *VirtualClock) {
	t.Helper()
	vc := NewVirtualClock(testEpoch)
	cfg := DefaultConfig()
	cfg.Rng = constRandom(r)
	cfg.Clock = vc
	cfg.Scheduler = vc
	return New(cfg, zaptest.NewLogger(t)), vc
}

func sumDurations(ds []time.Duration) time.Duration {
	var total time.Duration
	for _, d := range ds {
		total += d
	}
	return total
}
