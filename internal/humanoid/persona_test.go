// internal/humanoid/persona_test.go
package humanoid

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateProfile_Ranges(t *testing.T) {
	ranges := DefaultConfig().Persona
	for seed := int64(0); seed < 500; seed++ {
		p := GenerateProfile(rand.New(rand.NewSource(seed)), ranges)

		assert.True(t, p.Speed >= 0.8 && p.Speed <= 1.2, "speed %f", p.Speed)
		assert.True(t, p.ReadingPace >= 0.7 && p.ReadingPace <= 1.3, "reading pace %f", p.ReadingPace)
		assert.True(t, p.Decisiveness >= 0.6 && p.Decisiveness <= 1.4, "decisiveness %f", p.Decisiveness)
		assert.True(t, p.Confidence >= 0.8 && p.Confidence <= 1.2, "confidence %f", p.Confidence)
		assert.True(t, p.Focus >= 0.5 && p.Focus <= 1.5, "focus %f", p.Focus)
		assert.True(t, p.Patience >= 0.6 && p.Patience <= 1.4, "patience %f", p.Patience)
		assert.True(t, p.Consistency >= 0.7 && p.Consistency <= 1.3, "consistency %f", p.Consistency)
	}
}

func TestGenerateProfile_Extremes(t *testing.T) {
	ranges := DefaultConfig().Persona

	low := GenerateProfile(constRandom(0), ranges)
	assert.Equal(t, Profile{0.8, 0.7, 0.6, 0.8, 0.5, 0.6, 0.7}, low)

	mid := GenerateProfile(constRandom(0.5), ranges)
	assert.InDelta(t, 1.0, mid.Speed, 1e-9)
	assert.InDelta(t, 1.0, mid.Focus, 1e-9)
}

func TestProfile_FixedForSession(t *testing.T) {
	h, _ := NewTestHumanoid(3, testEpoch)
	before := h.Profile()

	for i := 0; i < 25; i++ {
		h.CalculatePauseTime(ContextReading, 0.4, nil)
		h.CalculateSiteTransitionTime(i, 25)
	}
	assert.Equal(t, before, h.Profile())
	assert.Equal(t, before, h.Stats().Profile)
}

func TestNew_SameSeedSamePersona(t *testing.T) {
	a, _ := NewTestHumanoid(77, testEpoch)
	b, _ := NewTestHumanoid(77, testEpoch)
	assert.Equal(t, a.Profile(), b.Profile())
	assert.NotEqual(t, a.SessionID(), b.SessionID())
}

func TestNew_DefaultsPorts(t *testing.T) {
	h := New(Config{}, nil)
	assert.NotNil(t, h.rng)
	assert.NotNil(t, h.clock)
	assert.NotNil(t, h.scheduler)
	assert.Equal(t, 100, h.config.HistorySize)
	assert.Equal(t, 50*time.Millisecond, h.config.MinPause)
	assert.Equal(t, 30*time.Second, h.config.MaxPause)
}

func TestContextTable(t *testing.T) {
	table := NewContextTable(map[PauseContext]Range{
		ContextHover:           {100, 200},
		ContextReading:         {500, 100}, // inverted, ignored
		PauseContext("custom"): {10, 20},
	})

	assert.Equal(t, Range{100, 200}, table.Lookup(ContextHover))
	assert.Equal(t, Range{2000, 8000}, table.Lookup(ContextReading))
	assert.Equal(t, Range{10, 20}, table.Lookup(PauseContext("custom")))
	assert.Equal(t, Range{1000, 4000}, table.Lookup(PauseContext("nope")))
	assert.True(t, table.Known(ContextScrollPause))
	assert.False(t, table.Known(PauseContext("nope")))

	for _, c := range AllContexts {
		assert.True(t, NewContextTable(nil).Known(c), "missing default for %s", c)
	}
}
