// internal/humanoid/config.go
package humanoid

import (
	"math/rand"
	"time"

	"github.com/xkilldash9x/humanpace/internal/config"
)

// Range is an inclusive-exclusive interval used for uniform draws.
type Range struct {
	Min float64
	Max float64
}

// PersonaRanges bounds each personality multiplier of a session persona.
type PersonaRanges struct {
	Speed        Range
	ReadingPace  Range
	Decisiveness Range
	Confidence   Range
	Focus        Range
	Patience     Range
	Consistency  Range
}

// Config holds the parameters and ports of a timing engine.
type Config struct {
	// Ports. Nil values are replaced by the system clock, a real-time scheduler
	// and a time-seeded random source.
	Rng       RandomSource
	Clock     Clock
	Scheduler Scheduler

	Persona PersonaRanges

	// ContextRanges overrides entries of the default pause table, in milliseconds.
	ContextRanges map[PauseContext]Range

	MinPause    time.Duration
	MaxPause    time.Duration
	HistorySize int

	// Pause executor segmentation.
	SegmentThreshold     time.Duration
	SegmentMin           time.Duration
	SegmentMax           time.Duration
	SegmentFloor         time.Duration
	MicroInterruptChance float64
	MicroInterruptMin    time.Duration
	MicroInterruptMax    time.Duration

	// Session slowdown after a long session.
	SlowdownAfter    time.Duration
	SlowdownPerMin   float64
	SlowdownCeiling  float64
	JitterAmplitude  float64
	UrgencyWeight    float64
	ComplexityWeight float64
}

// DefaultConfig returns the parameters of an average operator.
func DefaultConfig() Config {
	return Config{
		Persona: PersonaRanges{
			Speed:        Range{0.8, 1.2},
			ReadingPace:  Range{0.7, 1.3},
			Decisiveness: Range{0.6, 1.4},
			Confidence:   Range{0.8, 1.2},
			Focus:        Range{0.5, 1.5},
			Patience:     Range{0.6, 1.4},
			Consistency:  Range{0.7, 1.3},
		},
		MinPause:             50 * time.Millisecond,
		MaxPause:             30 * time.Second,
		HistorySize:          100,
		SegmentThreshold:     5 * time.Second,
		SegmentMin:           2 * time.Second,
		SegmentMax:           4 * time.Second,
		SegmentFloor:         time.Second,
		MicroInterruptChance: 0.2,
		MicroInterruptMin:    100 * time.Millisecond,
		MicroInterruptMax:    500 * time.Millisecond,
		SlowdownAfter:        30 * time.Minute,
		SlowdownPerMin:       0.01,
		SlowdownCeiling:      1.3,
		JitterAmplitude:      0.2,
		UrgencyWeight:        0.5,
		ComplexityWeight:     0.3,
	}
}

// normalize fills zero values with defaults so a partially populated Config is usable.
func (c *Config) normalize() {
	d := DefaultConfig()
	if c.Persona == (PersonaRanges{}) {
		c.Persona = d.Persona
	}
	if c.MinPause <= 0 {
		c.MinPause = d.MinPause
	}
	if c.MaxPause < c.MinPause {
		c.MaxPause = d.MaxPause
	}
	if c.HistorySize <= 0 {
		c.HistorySize = d.HistorySize
	}
	if c.SegmentThreshold <= 0 {
		c.SegmentThreshold = d.SegmentThreshold
	}
	if c.SegmentMin <= 0 || c.SegmentMax < c.SegmentMin {
		c.SegmentMin, c.SegmentMax = d.SegmentMin, d.SegmentMax
	}
	if c.SegmentFloor <= 0 {
		c.SegmentFloor = d.SegmentFloor
	}
	if c.MicroInterruptChance < 0 || c.MicroInterruptChance > 1 {
		c.MicroInterruptChance = d.MicroInterruptChance
	}
	if c.MicroInterruptMin <= 0 || c.MicroInterruptMax < c.MicroInterruptMin {
		c.MicroInterruptMin, c.MicroInterruptMax = d.MicroInterruptMin, d.MicroInterruptMax
	}
	if c.SlowdownAfter <= 0 {
		c.SlowdownAfter = d.SlowdownAfter
	}
	if c.SlowdownPerMin <= 0 {
		c.SlowdownPerMin = d.SlowdownPerMin
	}
	if c.SlowdownCeiling < 1 {
		c.SlowdownCeiling = d.SlowdownCeiling
	}
	if c.JitterAmplitude <= 0 {
		c.JitterAmplitude = d.JitterAmplitude
	}
	if c.UrgencyWeight <= 0 {
		c.UrgencyWeight = d.UrgencyWeight
	}
	if c.ComplexityWeight <= 0 {
		c.ComplexityWeight = d.ComplexityWeight
	}
}

// ConfigFromSettings maps the application settings onto an engine Config.
// A non-zero seed makes the persona and every draw reproducible.
func ConfigFromSettings(s config.HumanoidConfig) Config {
	c := DefaultConfig()
	if s.Seed != 0 {
		c.Rng = rand.New(rand.NewSource(s.Seed))
	}
	if s.MinPauseMs > 0 {
		c.MinPause = time.Duration(s.MinPauseMs) * time.Millisecond
	}
	if s.MaxPauseMs > 0 {
		c.MaxPause = time.Duration(s.MaxPauseMs) * time.Millisecond
	}
	if s.HistorySize > 0 {
		c.HistorySize = s.HistorySize
	}
	c.MicroInterruptChance = s.MicroInterruptChance
	if len(s.ContextRanges) > 0 {
		c.ContextRanges = make(map[PauseContext]Range, len(s.ContextRanges))
		for name, r := range s.ContextRanges {
			c.ContextRanges[PauseContext(name)] = Range{Min: r.MinMs, Max: r.MaxMs}
		}
	}
	return c
}
