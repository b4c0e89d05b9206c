// internal/humanoid/clock.go
package humanoid

import (
	"context"
	"sync"
	"time"
)

type systemClock struct{}

// SystemClock reads wall-clock time.
func SystemClock() Clock { return systemClock{} }

func (systemClock) Now() time.Time { return time.Now() }

type realtimeScheduler struct{}

// RealtimeScheduler suspends on real timers and wakes early when ctx is done.
func RealtimeScheduler() Scheduler { return realtimeScheduler{} }

func (realtimeScheduler) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// VirtualClock is a Clock and Scheduler over simulated time. Sleep advances the
// clock by the requested duration and returns immediately.
type VirtualClock struct {
	mu    sync.Mutex
	now   time.Time
	slept []time.Duration
}

// NewVirtualClock starts simulated time at start.
func NewVirtualClock(start time.Time) *VirtualClock {
	return &VirtualClock{now: start}
}

// Now returns the simulated time.
func (v *VirtualClock) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

// Advance moves simulated time forward without recording a sleep.
func (v *VirtualClock) Advance(d time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.now = v.now.Add(d)
}

// Sleep advances simulated time by d unless ctx is already done.
func (v *VirtualClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if d > 0 {
		v.now = v.now.Add(d)
	}
	v.slept = append(v.slept, d)
	return nil
}

// Sleeps returns a copy of every duration passed to Sleep.
func (v *VirtualClock) Sleeps() []time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]time.Duration, len(v.slept))
	copy(out, v.slept)
	return out
}

// ResetSleeps clears the recorded sleeps.
func (v *VirtualClock) ResetSleeps() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.slept = nil
}
