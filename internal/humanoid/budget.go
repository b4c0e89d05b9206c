// internal/humanoid/budget.go
package humanoid

import (
	"math"
	"time"
)

// Priority ranks a site by its position in the visiting order.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// SiteTimeAllocation is the share of the session budget assigned to one site.
type SiteTimeAllocation struct {
	SiteIndex     int           `json:"site_index"`
	AllocatedTime time.Duration `json:"allocated_time"`
	Priority      Priority      `json:"priority"`
}

const (
	// referenceTargetCount targets are expected to take referenceNavigationTime.
	referenceTargetCount    = 2500
	referenceNavigationTime = time.Hour
	minNavigationTime       = 45 * time.Minute
	maxNavigationTime       = 3 * time.Hour
	fastModeMin             = 2 * time.Minute
	fastModeMax             = 5 * time.Minute

	minSiteAllocationMs = 30000.0
	maxSiteShare        = 0.6
	siteJitter          = 0.4

	highPriorityBand   = 0.3
	mediumPriorityBand = 0.7

	boundarySites = 3
)

// CalculateMinimumNavigationTime sizes the session budget for targetCount units.
// Without enforcement it returns a short random budget for fast test runs.
func (h *Humanoid) CalculateMinimumNavigationTime(targetCount int, enforceMinimum bool) time.Duration {
	if !enforceMinimum {
		return h.randomDuration(fastModeMin, fastModeMax)
	}
	if targetCount < 0 {
		targetCount = 0
	}
	ms := float64(referenceNavigationTime.Milliseconds()) * float64(targetCount) / referenceTargetCount
	ms = math.Max(float64(minNavigationTime.Milliseconds()), ms)
	ms = math.Min(float64(maxNavigationTime.Milliseconds()), ms)
	return msToDuration(ms)
}

// DistributeTimeAcrossSites splits total across siteCount sites in visiting order.
// Every site but the last gets a jittered even share of what remains, floored at 30s
// and capped at 60% of the remaining budget. The last site takes the rest, so the
// allocations always sum to total.
func (h *Humanoid) DistributeTimeAcrossSites(total time.Duration, siteCount int) []SiteTimeAllocation {
	if siteCount <= 0 {
		return []SiteTimeAllocation{}
	}
	if total < 0 {
		total = 0
	}

	allocations := make([]SiteTimeAllocation, 0, siteCount)
	remaining := total
	for i := 0; i < siteCount; i++ {
		var allocated time.Duration
		if i == siteCount-1 {
			allocated = remaining
		} else {
			remainingMs := float64(remaining) / float64(time.Millisecond)
			base := remainingMs / float64(siteCount-i)
			ms := base * (1 + (h.float()-0.5)*siteJitter)
			ms = math.Max(minSiteAllocationMs, ms)
			ms = math.Min(ms, remainingMs*maxSiteShare)
			allocated = time.Duration(math.Floor(ms)) * time.Millisecond
		}
		remaining -= allocated

		allocations = append(allocations, SiteTimeAllocation{
			SiteIndex:     i,
			AllocatedTime: allocated,
			Priority:      sitePriority(i, siteCount),
		})
	}
	return allocations
}

func sitePriority(index, count int) Priority {
	position := float64(index) / float64(count)
	switch {
	case position < highPriorityBand:
		return PriorityHigh
	case position < mediumPriorityBand:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// CalculateSiteTransitionTime returns the pause between two sites. Early sites are
// visited eagerly, the last few more slowly.
func (h *Humanoid) CalculateSiteTransitionTime(siteIndex, totalSites int) time.Duration {
	ms := h.uniform(1000, 3000)
	switch {
	case siteIndex < boundarySites:
		ms *= 0.7
	case siteIndex >= totalSites-boundarySites:
		ms *= 1.3
	}
	ms *= h.profile.Consistency
	return msToDuration(ms)
}
