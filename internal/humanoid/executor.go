// internal/humanoid/executor.go
package humanoid

import (
	"context"
	"time"
)

// PerformPause spends total through the scheduler. Long pauses are split into
// segments with occasional micro-interruptions; the nominal total is preserved.
// On completion the pause counter and the actual elapsed time are accumulated.
// When ctx is cancelled the pause stops at the next suspension point and nothing is accumulated.
func (h *Humanoid) PerformPause(ctx context.Context, total time.Duration) error {
	start := h.clock.Now()

	if err := h.spend(ctx, total); err != nil {
		return err
	}

	elapsed := h.clock.Now().Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}

	h.mu.Lock()
	h.metrics.totalPauses++
	h.metrics.totalPauseTime += elapsed
	h.mu.Unlock()
	return nil
}

func (h *Humanoid) spend(ctx context.Context, total time.Duration) error {
	if total <= h.config.SegmentThreshold {
		return h.scheduler.Sleep(ctx, total)
	}

	remaining := total
	for remaining > h.config.SegmentFloor {
		segment := h.randomDuration(h.config.SegmentMin, h.config.SegmentMax)
		if segment > remaining {
			segment = remaining
		}
		if err := h.scheduler.Sleep(ctx, segment); err != nil {
			return err
		}
		remaining -= segment

		if remaining > h.config.SegmentFloor && h.float() < h.config.MicroInterruptChance {
			micro := h.randomDuration(h.config.MicroInterruptMin, h.config.MicroInterruptMax)
			if micro > remaining {
				micro = remaining
			}
			if err := h.scheduler.Sleep(ctx, micro); err != nil {
				return err
			}
			remaining -= micro
		}
	}

	if remaining > 0 {
		return h.scheduler.Sleep(ctx, remaining)
	}
	return nil
}

// randomDuration draws a whole-millisecond duration from [min, max].
func (h *Humanoid) randomDuration(min, max time.Duration) time.Duration {
	ms := h.uniform(float64(min.Milliseconds()), float64(max.Milliseconds()))
	return msToDuration(ms)
}
