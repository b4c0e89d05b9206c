// internal/humanoid/evaluate.go
package humanoid

import (
	"math"
	"time"
)

const (
	baseHumanness         = 50
	varietyPointsPerCtx   = 3
	varietyPointsCap      = 20
	pauseFractionBonus    = 15
	averagePauseBonus     = 10
	roboticPenalty        = 20
	roboticConsistency    = 0.9
	consistencyWindow     = 10
	consistencyMinSamples = 3
)

// EvaluateTimingHumanness scores the recorded timing pattern from 0 (robotic) to 100.
func (h *Humanoid) EvaluateTimingHumanness() int {
	now := h.clock.Now()

	h.mu.Lock()
	stats := h.statsLocked(now)
	consistency := h.consistencyLocked()
	h.mu.Unlock()

	score := baseHumanness
	score += min(varietyPointsCap, len(stats.ContextBreakdown)*varietyPointsPerCtx)

	if stats.PauseTimePercentage > 15 && stats.PauseTimePercentage < 45 {
		score += pauseFractionBonus
	}
	if stats.AveragePause > 500*time.Millisecond && stats.AveragePause < 5000*time.Millisecond {
		score += averagePauseBonus
	}
	if consistency > roboticConsistency {
		score -= roboticPenalty
	}
	return max(0, min(100, score))
}

// CalculateTimingConsistency measures how uniform the latest pauses are: 1 minus the
// coefficient of variation of the last ten recorded durations, floored at 0. Fewer than
// three recorded pauses yield 0.
func (h *Humanoid) CalculateTimingConsistency() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.consistencyLocked()
}

func (h *Humanoid) consistencyLocked() float64 {
	hist := &h.metrics.history
	n := hist.len()
	if n < consistencyMinSamples {
		return 0
	}
	window := min(n, consistencyWindow)

	samples := make([]float64, 0, window)
	for i := n - window; i < n; i++ {
		samples = append(samples, float64(hist.at(i).Duration)/float64(time.Millisecond))
	}
	return 1 - math.Min(1, coefficientOfVariation(samples))
}

// coefficientOfVariation is the population standard deviation over the mean.
func coefficientOfVariation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean <= 0 {
		return 0
	}
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq/float64(len(values))) / mean
}
