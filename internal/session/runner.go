// internal/session/runner.go
package session

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/xkilldash9x/humanpace/internal/config"
	"github.com/xkilldash9x/humanpace/internal/humanoid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Pause modifiers applied by site priority.
const (
	lowPriorityUrgency     = 0.4
	highPriorityComplexity = 0.6
	thinkingComplexity     = 0.5
)

// action is one entry of the weighted action mix.
type action struct {
	weight  float64
	context humanoid.PauseContext
	// think, when set, runs a thinking-time suspension before the pause.
	think humanoid.ActionType
}

var actionMix = []action{
	{weight: 30, context: humanoid.ContextReading},
	{weight: 20, context: humanoid.ContextScrollPause, think: humanoid.ActionTypeScroll},
	{weight: 15, context: humanoid.ContextHover},
	{weight: 10, context: humanoid.ContextContentAnalysis},
	{weight: 15, context: humanoid.ContextClickHesitation, think: humanoid.ActionTypeClick},
	{weight: 5, context: humanoid.ContextDecision},
	{weight: 5, context: humanoid.ContextTypingDelay, think: humanoid.ActionTypeType},
}

// SiteReport summarizes the time spent on one site.
type SiteReport struct {
	Index     int               `json:"index"`
	Name      string            `json:"name"`
	Priority  humanoid.Priority `json:"priority"`
	Allocated time.Duration     `json:"allocated"`
	Spent     time.Duration     `json:"spent"`
	Actions   int               `json:"actions"`
	Breaks    int               `json:"fatigue_breaks"`
	PageType  humanoid.PageType `json:"page_type"`
	Contexts  map[string]int    `json:"contexts,omitempty"`
}

// Report is the outcome of a simulated session.
type Report struct {
	SessionID    string         `json:"session_id"`
	Budget       time.Duration  `json:"budget"`
	Sites        []SiteReport   `json:"sites"`
	Stats        humanoid.Stats `json:"stats"`
	Humanness    int            `json:"humanness"`
	Consistency  float64        `json:"consistency"`
	FinalFatigue float64        `json:"final_fatigue"`
	Elapsed      time.Duration  `json:"elapsed"`
	Completed    bool           `json:"completed"`
}

// Runner drives a timing engine through a browsing session, playing the part of the
// navigation layer.
type Runner struct {
	engine    humanoid.Controller
	cfg       config.SessionConfig
	logger    *zap.Logger
	clock     humanoid.Clock
	scheduler humanoid.Scheduler
	rng       humanoid.RandomSource
	progress  *rate.Limiter

	fatigue float64
}

// NewRunner wires a runner to an engine. clock and scheduler must be the ones the
// engine was built with so that site spending and pause accounting agree.
func NewRunner(engine humanoid.Controller, cfg config.SessionConfig, logger *zap.Logger,
	clock humanoid.Clock, scheduler humanoid.Scheduler, rng humanoid.RandomSource) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	interval := cfg.ProgressInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Runner{
		engine:    engine,
		cfg:       cfg,
		logger:    logger.Named("session"),
		clock:     clock,
		scheduler: scheduler,
		rng:       rng,
		progress:  rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Run plans the session budget across sites and visits them in order. On
// cancellation it returns the partial report together with the context error.
func (r *Runner) Run(ctx context.Context, sites []string) (*Report, error) {
	r.fatigue = 0
	start := r.clock.Now()
	budget := r.engine.CalculateMinimumNavigationTime(r.cfg.TargetCount, r.cfg.EnforceMinimum)
	plan := r.engine.DistributeTimeAcrossSites(budget, len(sites))

	report := &Report{
		Budget: budget,
		Sites:  make([]SiteReport, 0, len(sites)),
	}
	r.logger.Info("Session planned.",
		zap.Int("sites", len(sites)),
		zap.Duration("budget", budget),
		zap.Bool("enforce_minimum", r.cfg.EnforceMinimum))

	done := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(done)
		for _, alloc := range plan {
			site := SiteReport{
				Index:     alloc.SiteIndex,
				Name:      sites[alloc.SiteIndex],
				Priority:  alloc.Priority,
				Allocated: alloc.AllocatedTime,
				Contexts:  make(map[string]int),
			}
			err := r.visit(gctx, &site, len(sites))
			report.Sites = append(report.Sites, site)
			if err != nil {
				return fmt.Errorf("site %d (%s): %w", site.Index, site.Name, err)
			}
		}
		return nil
	})

	g.Go(func() error {
		r.report(gctx, done)
		return nil
	})

	err := g.Wait()

	report.Stats = r.engine.Stats()
	report.SessionID = report.Stats.SessionID
	report.Humanness = r.engine.EvaluateTimingHumanness()
	report.Consistency = r.engine.CalculateTimingConsistency()
	report.FinalFatigue = r.fatigue
	report.Elapsed = r.clock.Now().Sub(start)
	report.Completed = err == nil

	if err != nil {
		r.logger.Warn("Session interrupted.", zap.Error(err), zap.Int("sites_visited", len(report.Sites)))
		return report, err
	}
	r.logger.Info("Session complete.",
		zap.Duration("elapsed", report.Elapsed),
		zap.Int("humanness", report.Humanness),
		zap.Float64("consistency", report.Consistency))
	return report, nil
}

// visit spends a site's allocation on a transition, a page load and a stream of actions.
func (r *Runner) visit(ctx context.Context, site *SiteReport, totalSites int) error {
	siteStart := r.clock.Now()
	defer func() { site.Spent = r.clock.Now().Sub(siteStart) }()
	logger := r.logger.With(zap.Int("site_index", site.Index), zap.String("site", site.Name))

	if err := r.scheduler.Sleep(ctx, r.engine.CalculateSiteTransitionTime(site.Index, totalSites)); err != nil {
		return err
	}

	site.PageType = r.pageType()
	if err := r.scheduler.Sleep(ctx, r.engine.CalculatePageLoadWaitTime(site.PageType, r.fatigue)); err != nil {
		return err
	}

	opts := pauseOptions(site.Priority)
	for r.clock.Now().Sub(siteStart) < site.Allocated {
		pauseCtx, err := r.act(ctx, opts)
		if err != nil {
			return err
		}
		site.Actions++
		site.Contexts[string(pauseCtx)]++

		if r.fatigue > r.cfg.FatigueBreakThreshold {
			if err := r.takeBreak(ctx, logger); err != nil {
				return err
			}
			site.Breaks++
		}

		if r.progress.AllowN(r.clock.Now(), 1) {
			logger.Info("Navigation progress.",
				zap.Duration("spent", r.clock.Now().Sub(siteStart)),
				zap.Duration("allocated", site.Allocated),
				zap.Int("actions", site.Actions),
				zap.Float64("fatigue", r.fatigue))
		}
	}

	logger.Info("Site complete.",
		zap.String("priority", string(site.Priority)),
		zap.Duration("spent", r.clock.Now().Sub(siteStart)),
		zap.Int("actions", site.Actions))
	return nil
}

// act performs one simulated user action and raises fatigue.
func (r *Runner) act(ctx context.Context, opts *humanoid.PauseOptions) (humanoid.PauseContext, error) {
	var a action
	if r.rng.Float64() < r.cfg.DistractionChance {
		a = action{context: humanoid.ContextDistraction}
	} else {
		a = pickAction(r.rng.Float64())
	}

	if a.think != "" {
		if _, err := r.engine.SimulateThinkingTime(ctx, a.think, thinkingComplexity); err != nil {
			return a.context, err
		}
	}
	if _, err := r.engine.HumanPause(ctx, a.context, r.fatigue, opts); err != nil {
		return a.context, err
	}
	r.fatigue = min(1, r.fatigue+r.cfg.FatigueIncreaseRate)
	return a.context, nil
}

// takeBreak issues a fatigue break and recovers in proportion to its length.
func (r *Runner) takeBreak(ctx context.Context, logger *zap.Logger) error {
	d, err := r.engine.HumanPause(ctx, humanoid.ContextFatigueBreak, r.fatigue, nil)
	if err != nil {
		return err
	}
	before := r.fatigue
	r.fatigue = max(0, r.fatigue-r.cfg.FatigueRecoveryRate*d.Seconds())
	logger.Debug("Fatigue break.",
		zap.Duration("duration", d),
		zap.Float64("fatigue_before", before),
		zap.Float64("fatigue_after", r.fatigue))
	return nil
}

// report logs session stats on a wall-clock ticker until the driver finishes.
func (r *Runner) report(ctx context.Context, done <-chan struct{}) {
	interval := r.cfg.ReportInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := r.engine.Stats()
			r.logger.Info("Session stats.",
				zap.Int("total_pauses", stats.TotalPauses),
				zap.Duration("total_pause_time", stats.TotalPauseTime),
				zap.Duration("average_pause", stats.AveragePause),
				zap.Float64("pause_time_percentage", stats.PauseTimePercentage))
		}
	}
}

func (r *Runner) pageType() humanoid.PageType {
	u := r.rng.Float64()
	switch {
	case u < 0.3:
		return humanoid.PageLight
	case u < 0.8:
		return humanoid.PageMedium
	default:
		return humanoid.PageHeavy
	}
}

// pickAction maps a uniform draw onto the weighted action mix.
func pickAction(u float64) action {
	var total float64
	for _, a := range actionMix {
		total += a.weight
	}
	target := u * total
	for _, a := range actionMix {
		if target < a.weight {
			return a
		}
		target -= a.weight
	}
	return actionMix[len(actionMix)-1]
}

func pauseOptions(p humanoid.Priority) *humanoid.PauseOptions {
	switch p {
	case humanoid.PriorityLow:
		return &humanoid.PauseOptions{Urgency: humanoid.Float(lowPriorityUrgency)}
	case humanoid.PriorityHigh:
		return &humanoid.PauseOptions{Complexity: humanoid.Float(highPriorityComplexity)}
	default:
		return nil
	}
}
