// internal/humanoid/persona.go
package humanoid

// Profile is the session persona: personality multipliers fixed for the lifetime of an engine.
type Profile struct {
	Speed        float64 `json:"speed"`
	ReadingPace  float64 `json:"reading_pace"`
	Decisiveness float64 `json:"decisiveness"`
	Confidence   float64 `json:"confidence"`
	Focus        float64 `json:"focus"`
	Patience     float64 `json:"patience"`
	Consistency  float64 `json:"consistency"`
}

// GenerateProfile draws each multiplier independently and uniformly from its range.
func GenerateProfile(rng RandomSource, ranges PersonaRanges) Profile {
	return Profile{
		Speed:        uniform(rng, ranges.Speed.Min, ranges.Speed.Max),
		ReadingPace:  uniform(rng, ranges.ReadingPace.Min, ranges.ReadingPace.Max),
		Decisiveness: uniform(rng, ranges.Decisiveness.Min, ranges.Decisiveness.Max),
		Confidence:   uniform(rng, ranges.Confidence.Min, ranges.Confidence.Max),
		Focus:        uniform(rng, ranges.Focus.Min, ranges.Focus.Max),
		Patience:     uniform(rng, ranges.Patience.Min, ranges.Patience.Max),
		Consistency:  uniform(rng, ranges.Consistency.Min, ranges.Consistency.Max),
	}
}

// contextFactor returns the persona trait that scales pauses of the given context,
// or 1.0 when the context has no dedicated trait.
func (p Profile) contextFactor(c PauseContext) float64 {
	switch c {
	case ContextReading:
		return p.ReadingPace
	case ContextDecision:
		return p.Decisiveness
	case ContextClickHesitation:
		return p.Confidence
	case ContextDistraction:
		return p.Focus
	default:
		return 1.0
	}
}

// uniform draws from [min, max).
func uniform(rng RandomSource, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}
