// internal/humanoid/pause.go
package humanoid

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"
)

// CalculatePauseTime derives a pause for the given context. The result is a whole
// number of milliseconds within [MinPause, MaxPause]. Unknown contexts use the
// decision range; fatigue is clamped to [0,1].
func (h *Humanoid) CalculatePauseTime(pauseCtx PauseContext, fatigueLevel float64, opts *PauseOptions) time.Duration {
	fatigueLevel = clamp01(fatigueLevel)
	elapsed := h.clock.Now().Sub(h.metrics.startTime)
	base := h.contexts.Lookup(pauseCtx)

	h.mu.Lock()
	value := uniform(h.rng, base.Min, base.Max)
	jitterDraw := h.rng.Float64()
	h.mu.Unlock()

	value *= fatigueMultiplier(pauseCtx, fatigueLevel)
	value *= h.profile.Speed
	value *= h.profile.contextFactor(pauseCtx)
	value *= h.sessionSlowdown(elapsed)

	if opts != nil {
		if opts.Urgency != nil {
			value *= 1 - clamp01(*opts.Urgency)*h.config.UrgencyWeight
		}
		if opts.Complexity != nil {
			value *= 1 + clamp01(*opts.Complexity)*h.config.ComplexityWeight
		}
	}

	value += (jitterDraw - 0.5) * h.config.JitterAmplitude * value

	return h.clampMs(value)
}

// fatigueMultiplier is 1 + fatigue*k with a per-context sensitivity k.
func fatigueMultiplier(c PauseContext, fatigueLevel float64) float64 {
	k, ok := fatigueSensitivity[c]
	if !ok {
		k = defaultFatigueSensitivity
	}
	return 1 + fatigueLevel*k
}

// sessionSlowdown grows linearly with the minutes past SlowdownAfter, capped at SlowdownCeiling.
func (h *Humanoid) sessionSlowdown(elapsed time.Duration) float64 {
	if elapsed <= h.config.SlowdownAfter {
		return 1.0
	}
	minutesPast := (elapsed - h.config.SlowdownAfter).Minutes()
	return math.Min(h.config.SlowdownCeiling, 1+minutesPast*h.config.SlowdownPerMin)
}

// HumanPause calculates a pause for the context, spends it, and records it.
// It returns the calculated duration. A cancelled pause is not recorded.
func (h *Humanoid) HumanPause(ctx context.Context, pauseCtx PauseContext, fatigueLevel float64, opts *PauseOptions) (time.Duration, error) {
	d := h.CalculatePauseTime(pauseCtx, fatigueLevel, opts)
	if err := h.PerformPause(ctx, d); err != nil {
		h.logger.Debug("Pause interrupted.",
			zap.String("context", string(pauseCtx)),
			zap.Duration("target", d),
			zap.Error(err))
		return d, err
	}
	h.Record(pauseCtx, d, clamp01(fatigueLevel))

	h.logger.Debug("Pause completed.",
		zap.String("context", string(pauseCtx)),
		zap.Duration("duration", d),
		zap.Float64("fatigue", fatigueLevel))
	return d, nil
}

// CalculatePageLoadWaitTime returns how long to wait for a page of the given weight.
// It does not suspend; the caller performs the wait.
func (h *Humanoid) CalculatePageLoadWaitTime(pageType PageType, fatigueLevel float64) time.Duration {
	r, ok := pageLoadRanges[pageType]
	if !ok {
		r = pageLoadRanges[PageMedium]
	}
	value := h.uniform(r.Min, r.Max)
	value *= 1 + clamp01(fatigueLevel)*0.5
	value *= h.profile.Patience
	return h.clampMs(value)
}

// SimulateThinkingTime suspends for a deliberation period before an action and returns it.
func (h *Humanoid) SimulateThinkingTime(ctx context.Context, action ActionType, complexity float64) (time.Duration, error) {
	r, ok := thinkingRanges[action]
	if !ok {
		r = thinkingRanges[ActionTypeClick]
	}
	value := h.uniform(r.Min, r.Max)
	value *= 1 + clamp01(complexity)*0.5
	value *= h.profile.Decisiveness
	d := h.clampMs(value)

	if err := h.scheduler.Sleep(ctx, d); err != nil {
		return d, err
	}
	return d, nil
}
