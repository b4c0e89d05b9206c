// internal/humanoid/metrics.go
package humanoid

import (
	"time"
)

// ActionRecord is one recorded pause.
type ActionRecord struct {
	Timestamp    time.Time     `json:"timestamp"`
	Context      PauseContext  `json:"context"`
	Duration     time.Duration `json:"duration"`
	FatigueLevel float64       `json:"fatigue_level"`
}

// actionHistory is a fixed-capacity ring buffer that evicts the oldest record on overflow.
type actionHistory struct {
	buf  []ActionRecord
	head int // index of the oldest record
	size int
}

func newActionHistory(capacity int) actionHistory {
	return actionHistory{buf: make([]ActionRecord, capacity)}
}

func (a *actionHistory) push(r ActionRecord) {
	if len(a.buf) == 0 {
		return
	}
	if a.size < len(a.buf) {
		a.buf[(a.head+a.size)%len(a.buf)] = r
		a.size++
		return
	}
	a.buf[a.head] = r
	a.head = (a.head + 1) % len(a.buf)
}

func (a *actionHistory) len() int { return a.size }

// at returns the i-th oldest record.
func (a *actionHistory) at(i int) ActionRecord {
	return a.buf[(a.head+i)%len(a.buf)]
}

// snapshot copies the records oldest first.
func (a *actionHistory) snapshot() []ActionRecord {
	out := make([]ActionRecord, a.size)
	for i := 0; i < a.size; i++ {
		out[i] = a.at(i)
	}
	return out
}

// sessionMetrics is the mutable state of a session. Guarded by Humanoid.mu.
type sessionMetrics struct {
	startTime      time.Time
	totalPauses    int
	totalPauseTime time.Duration
	history        actionHistory
}

func newSessionMetrics(start time.Time, historySize int) sessionMetrics {
	return sessionMetrics{
		startTime: start,
		history:   newActionHistory(historySize),
	}
}

// ContextStats aggregates the recorded pauses of one context.
type ContextStats struct {
	Count     int           `json:"count"`
	TotalTime time.Duration `json:"total_time"`
	AvgTime   time.Duration `json:"avg_time"`
}

// Stats is a point-in-time snapshot of the session metrics.
type Stats struct {
	SessionID           string                        `json:"session_id"`
	SessionDuration     time.Duration                 `json:"session_duration"`
	TotalPauses         int                           `json:"total_pauses"`
	TotalPauseTime      time.Duration                 `json:"total_pause_time"`
	AveragePause        time.Duration                 `json:"average_pause"`
	ContextBreakdown    map[PauseContext]ContextStats `json:"context_breakdown"`
	Profile             Profile                       `json:"profile"`
	PauseTimePercentage float64                       `json:"pause_time_percentage"`
	HistoryLen          int                           `json:"history_len"`
}

// Record appends a pause to the action history.
func (h *Humanoid) Record(pauseCtx PauseContext, duration time.Duration, fatigueLevel float64) {
	now := h.clock.Now()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.metrics.history.push(ActionRecord{
		Timestamp:    now,
		Context:      pauseCtx,
		Duration:     duration,
		FatigueLevel: fatigueLevel,
	})
}

// History returns the retained action history, oldest first.
func (h *Humanoid) History() []ActionRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.metrics.history.snapshot()
}

// Stats computes the session statistics from the current metrics.
func (h *Humanoid) Stats() Stats {
	now := h.clock.Now()

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.statsLocked(now)
}

func (h *Humanoid) statsLocked(now time.Time) Stats {
	m := &h.metrics
	sessionDuration := now.Sub(m.startTime)
	if sessionDuration < 0 {
		sessionDuration = 0
	}

	var avg time.Duration
	if m.totalPauses > 0 {
		avg = m.totalPauseTime / time.Duration(m.totalPauses)
	}

	breakdown := make(map[PauseContext]ContextStats)
	for i := 0; i < m.history.len(); i++ {
		r := m.history.at(i)
		cs := breakdown[r.Context]
		cs.Count++
		cs.TotalTime += r.Duration
		breakdown[r.Context] = cs
	}
	for k, cs := range breakdown {
		cs.AvgTime = cs.TotalTime / time.Duration(cs.Count)
		breakdown[k] = cs
	}

	var pct float64
	if sessionDuration > 0 {
		pct = float64(m.totalPauseTime) / float64(sessionDuration) * 100
	}

	return Stats{
		SessionID:           h.sessionID,
		SessionDuration:     sessionDuration,
		TotalPauses:         m.totalPauses,
		TotalPauseTime:      m.totalPauseTime,
		AveragePause:        avg,
		ContextBreakdown:    breakdown,
		Profile:             h.profile,
		PauseTimePercentage: pct,
		HistoryLen:          m.history.len(),
	}
}
