// internal/humanoid/pause_test.go
package humanoid

import (
	"context"
	"testing"
	"time"

	fuzz "github.com/AdaLogics/go-fuzz-headers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCalculatePauseTime_Bounds(t *testing.T) {
	h, _ := NewTestHumanoid(42, testEpoch)
	fatigueLevels := []float64{0, 0.25, 0.5, 0.75, 1}

	for _, c := range AllContexts {
		for _, f := range fatigueLevels {
			for i := 0; i < 50; i++ {
				d := h.CalculatePauseTime(c, f, nil)
				assert.GreaterOrEqual(t, d, 50*time.Millisecond, "context %s fatigue %.2f", c, f)
				assert.LessOrEqual(t, d, 30*time.Second, "context %s fatigue %.2f", c, f)
				assert.Zero(t, d%time.Millisecond, "pause must be a whole number of milliseconds")
			}
		}
	}
}

func TestCalculatePauseTime_Deterministic(t *testing.T) {
	testCases := []struct {
		name     string
		context  PauseContext
		fatigue  float64
		opts     *PauseOptions
		expected time.Duration
	}{
		{"ReadingRested", ContextReading, 0, nil, 5000 * time.Millisecond},
		{"ReadingExhausted", ContextReading, 1, nil, 9000 * time.Millisecond},
		{"DecisionHalfFatigue", ContextDecision, 0.5, nil, 4000 * time.Millisecond},
		{"HoverExhausted", ContextHover, 1, nil, 975 * time.Millisecond},
		{"DistractionHalfFatigue", ContextDistraction, 0.5, nil, 18000 * time.Millisecond},
		{"DefaultSensitivity", ContextScrollPause, 1, nil, 1875 * time.Millisecond},
		{"Urgent", ContextDecision, 0, &PauseOptions{Urgency: Float(1)}, 1250 * time.Millisecond},
		{"Complex", ContextDecision, 0, &PauseOptions{Complexity: Float(1)}, 3250 * time.Millisecond},
		{"UrgentAndComplex", ContextDecision, 0, &PauseOptions{Urgency: Float(0.5), Complexity: Float(0.5)}, 2156 * time.Millisecond},
		{"EmptyOptions", ContextDecision, 0, &PauseOptions{}, 2500 * time.Millisecond},
		{"ClampedHigh", ContextDistraction, 1, &PauseOptions{Complexity: Float(1)}, 30 * time.Second},
		{"FatigueAboveOneIsClamped", ContextReading, 7, nil, 9000 * time.Millisecond},
		{"NegativeFatigueIsClamped", ContextReading, -3, nil, 5000 * time.Millisecond},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, _ := newFixedHumanoid(t, 0.5)
			assert.Equal(t, tc.expected, h.CalculatePauseTime(tc.context, tc.fatigue, tc.opts))
		})
	}
}

func TestCalculatePauseTime_UnknownContextFallsBackToDecision(t *testing.T) {
	a, _ := NewTestHumanoid(7, testEpoch)
	b, _ := NewTestHumanoid(7, testEpoch)

	for i := 0; i < 20; i++ {
		known := a.CalculatePauseTime(ContextDecision, 0.3, nil)
		unknown := b.CalculatePauseTime(PauseContext("staring_at_wall"), 0.3, nil)
		assert.Equal(t, known, unknown)
	}
}

func TestCalculatePauseTime_ClampedLow(t *testing.T) {
	vc := NewVirtualClock(testEpoch)
	cfg := DefaultConfig()
	cfg.Rng = constRandom(0.5)
	cfg.Clock = vc
	cfg.Scheduler = vc
	cfg.ContextRanges = map[PauseContext]Range{ContextTypingDelay: {10, 10}}
	h := New(cfg, zap.NewNop())

	assert.Equal(t, 50*time.Millisecond, h.CalculatePauseTime(ContextTypingDelay, 0, nil))
}

func TestCalculatePauseTime_SessionSlowdown(t *testing.T) {
	testCases := []struct {
		name     string
		elapsed  time.Duration
		expected time.Duration
	}{
		{"FreshSession", 0, 5000 * time.Millisecond},
		{"ExactlyThirtyMinutes", 30 * time.Minute, 5000 * time.Millisecond},
		{"FortyMinutes", 40 * time.Minute, 5500 * time.Millisecond},
		{"CappedAfterSixtyMinutes", 2 * time.Hour, 6500 * time.Millisecond},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, vc := newFixedHumanoid(t, 0.5)
			vc.Advance(tc.elapsed)
			assert.Equal(t, tc.expected, h.CalculatePauseTime(ContextReading, 0, nil))
		})
	}
}

func TestCalculatePauseTime_Jitter(t *testing.T) {
	// Base draw at the midpoint, then the jitter draw at its extremes.
	low := &seqRandom{vals: []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.0}}
	high := &seqRandom{vals: []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 1.0}}

	for _, tc := range []struct {
		name     string
		rng      RandomSource
		expected time.Duration
	}{
		{"MinusTenPercent", low, 4500 * time.Millisecond},
		{"PlusTenPercent", high, 5500 * time.Millisecond},
	} {
		t.Run(tc.name, func(t *testing.T) {
			vc := NewVirtualClock(testEpoch)
			cfg := DefaultConfig()
			cfg.Rng = tc.rng
			cfg.Clock = vc
			cfg.Scheduler = vc
			h := New(cfg, zap.NewNop())
			assert.Equal(t, tc.expected, h.CalculatePauseTime(ContextReading, 0, nil))
		})
	}
}

func TestHumanPause_EndToEnd(t *testing.T) {
	h, vc := NewTestHumanoid(2024, testEpoch)
	p := h.Profile()

	d, err := h.HumanPause(context.Background(), ContextReading, 0.0, nil)
	require.NoError(t, err)

	factor := p.Speed * p.ReadingPace
	lo := time.Duration(2000*factor*0.9) * time.Millisecond
	hi := time.Duration(8000*factor*1.1+1) * time.Millisecond
	assert.GreaterOrEqual(t, d, max(lo, 50*time.Millisecond))
	assert.LessOrEqual(t, d, min(hi, 30*time.Second))

	stats := h.Stats()
	assert.Equal(t, 1, stats.TotalPauses)
	assert.Equal(t, 1, stats.HistoryLen)
	assert.Equal(t, d, stats.TotalPauseTime, "virtual time elapses exactly the nominal pause")
	assert.Equal(t, d, sumDurations(vc.Sleeps()))

	history := h.History()
	require.Len(t, history, 1)
	assert.Equal(t, ContextReading, history[0].Context)
	assert.Equal(t, d, history[0].Duration)
}

func TestHumanPause_Cancelled(t *testing.T) {
	h, _ := newFixedHumanoid(t, 0.5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d, err := h.HumanPause(ctx, ContextReading, 0, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 5000*time.Millisecond, d)

	stats := h.Stats()
	assert.Zero(t, stats.TotalPauses)
	assert.Zero(t, stats.TotalPauseTime)
	assert.Zero(t, stats.HistoryLen)
}

func TestCalculatePageLoadWaitTime(t *testing.T) {
	testCases := []struct {
		name     string
		pageType PageType
		fatigue  float64
		expected time.Duration
	}{
		{"Light", PageLight, 0, 1400 * time.Millisecond},
		{"Medium", PageMedium, 0, 2750 * time.Millisecond},
		{"HeavyExhausted", PageHeavy, 1, 8250 * time.Millisecond},
		{"UnknownIsMedium", PageType("gigantic"), 0, 2750 * time.Millisecond},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, vc := newFixedHumanoid(t, 0.5)
			assert.Equal(t, tc.expected, h.CalculatePageLoadWaitTime(tc.pageType, tc.fatigue))
			assert.Empty(t, vc.Sleeps(), "page load wait calculation must not suspend")
		})
	}
}

func TestSimulateThinkingTime(t *testing.T) {
	h, vc := newFixedHumanoid(t, 0.5)

	d, err := h.SimulateThinkingTime(context.Background(), ActionTypeNavigate, 1)
	require.NoError(t, err)
	assert.Equal(t, 2850*time.Millisecond, d)
	assert.Equal(t, []time.Duration{d}, vc.Sleeps())

	vc.ResetSleeps()
	d, err = h.SimulateThinkingTime(context.Background(), ActionType("juggle"), 0)
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, d, "unknown actions use the click range")

	assert.Zero(t, h.Stats().TotalPauses, "thinking time is not a recorded pause")
}

func TestSimulateThinkingTime_Cancelled(t *testing.T) {
	h, _ := newFixedHumanoid(t, 0.5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.SimulateThinkingTime(ctx, ActionTypeClick, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

// fuzzPauseInput is populated from fuzzed bytes.
type fuzzPauseInput struct {
	Context       string
	Fatigue       float64
	Urgency       float64
	Complexity    float64
	UseUrgency    bool
	UseComplexity bool
	Seed          int64
}

func FuzzCalculatePauseTime(f *testing.F) {
	f.Add([]byte("reading"))
	f.Add([]byte{0x01, 0x02, 0x03, 0xff, 0x7f})

	f.Fuzz(func(t *testing.T, data []byte) {
		in := fuzzPauseInput{}
		if err := fuzz.NewConsumer(data).GenerateStruct(&in); err != nil {
			return
		}

		h, _ := NewTestHumanoid(in.Seed, testEpoch)
		opts := &PauseOptions{}
		if in.UseUrgency {
			opts.Urgency = Float(in.Urgency)
		}
		if in.UseComplexity {
			opts.Complexity = Float(in.Complexity)
		}

		d := h.CalculatePauseTime(PauseContext(in.Context), in.Fatigue, opts)
		if d < 50*time.Millisecond || d > 30*time.Second {
			t.Fatalf("pause %v out of bounds for input %+v", d, in)
		}
	})
}
