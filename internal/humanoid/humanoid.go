// internal/humanoid/humanoid.go
package humanoid

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Humanoid is the human timing engine for one logical browsing session.
type Humanoid struct {
	// mu protects the random source and the session metrics. It is never held
	// across a suspension so introspection stays available during long pauses.
	mu        sync.Mutex
	config    Config
	logger    *zap.Logger
	rng       RandomSource
	clock     Clock
	scheduler Scheduler
	contexts  ContextTable
	profile   Profile
	sessionID string
	metrics   sessionMetrics
}

var _ Controller = (*Humanoid)(nil)

// New creates an engine, fixing its persona and session clock origin.
func New(config Config, logger *zap.Logger) *Humanoid {
	if logger == nil {
		logger = zap.NewNop()
	}
	config.normalize()

	rng := config.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	clock := config.Clock
	if clock == nil {
		clock = SystemClock()
	}
	scheduler := config.Scheduler
	if scheduler == nil {
		scheduler = RealtimeScheduler()
	}

	h := &Humanoid{
		config:    config,
		rng:       rng,
		clock:     clock,
		scheduler: scheduler,
		contexts:  NewContextTable(config.ContextRanges),
		sessionID: uuid.NewString(),
	}
	h.profile = GenerateProfile(rng, config.Persona)
	h.metrics = newSessionMetrics(clock.Now(), config.HistorySize)
	h.logger = logger.Named("humanoid").With(zap.String("session_id", h.sessionID))

	h.logger.Debug("Session persona generated.",
		zap.Float64("speed", h.profile.Speed),
		zap.Float64("reading_pace", h.profile.ReadingPace),
		zap.Float64("decisiveness", h.profile.Decisiveness),
		zap.Float64("confidence", h.profile.Confidence),
		zap.Float64("focus", h.profile.Focus),
		zap.Float64("patience", h.profile.Patience),
		zap.Float64("consistency", h.profile.Consistency))
	return h
}

// NewTestHumanoid creates an engine with a seeded random source over a virtual clock.
func NewTestHumanoid(seed int64, start time.Time) (*Humanoid, *VirtualClock) {
	vc := NewVirtualClock(start)
	config := DefaultConfig()
	config.Rng = rand.New(rand.NewSource(seed))
	config.Clock = vc
	config.Scheduler = vc
	return New(config, zap.NewNop()), vc
}

// Profile returns the session persona.
func (h *Humanoid) Profile() Profile { return h.profile }

// SessionID identifies this engine instance in logs and stats.
func (h *Humanoid) SessionID() string { return h.sessionID }

// float draws a uniform value under the lock.
func (h *Humanoid) float() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rng.Float64()
}

// uniform draws from [min, max) under the lock.
func (h *Humanoid) uniform(min, max float64) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return uniform(h.rng, min, max)
}

// clampMs clamps a millisecond value into the configured pause bounds and rounds it.
func (h *Humanoid) clampMs(ms float64) time.Duration {
	lo := float64(h.config.MinPause.Milliseconds())
	hi := float64(h.config.MaxPause.Milliseconds())
	if ms < lo {
		ms = lo
	}
	if ms > hi {
		ms = hi
	}
	return msToDuration(ms)
}

func msToDuration(ms float64) time.Duration {
	return time.Duration(roundHalfUp(ms)) * time.Millisecond
}

func roundHalfUp(v float64) int64 {
	if v < 0 {
		return -int64(-v + 0.5)
	}
	return int64(v + 0.5)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
