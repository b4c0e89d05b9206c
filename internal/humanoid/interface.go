// internal/humanoid/interface.go
package humanoid

import (
	"context"
	"time"
)

// RandomSource yields uniform draws in [0.0, 1.0). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// Clock reads the current time of the session.
type Clock interface {
	Now() time.Time
}

// Scheduler suspends the calling task until d has elapsed or ctx is done.
type Scheduler interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// PauseOptions carries optional caller-supplied modifiers for a single pause.
// A nil field means the modifier is absent.
type PauseOptions struct {
	// Urgency in [0,1] shortens the pause.
	Urgency *float64
	// Complexity in [0,1] lengthens the pause.
	Complexity *float64
}

// Controller is the surface consumed by the navigation layer.
type Controller interface {
	HumanPause(ctx context.Context, pauseCtx PauseContext, fatigueLevel float64, opts *PauseOptions) (time.Duration, error)
	CalculatePageLoadWaitTime(pageType PageType, fatigueLevel float64) time.Duration
	SimulateThinkingTime(ctx context.Context, action ActionType, complexity float64) (time.Duration, error)

	CalculateMinimumNavigationTime(targetCount int, enforceMinimum bool) time.Duration
	DistributeTimeAcrossSites(total time.Duration, siteCount int) []SiteTimeAllocation
	CalculateSiteTransitionTime(siteIndex, totalSites int) time.Duration

	Stats() Stats
	EvaluateTimingHumanness() int
	CalculateTimingConsistency() float64
}

// Float is a convenience for building PauseOptions literals.
func Float(v float64) *float64 { return &v }
