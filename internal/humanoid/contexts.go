// internal/humanoid/contexts.go
package humanoid

// PauseContext labels the kind of interaction a pause belongs to.
type PauseContext string

const (
	ContextReading         PauseContext = "reading"
	ContextDecision        PauseContext = "decision"
	ContextClickHesitation PauseContext = "click_hesitation"
	ContextPageProcessing  PauseContext = "page_processing"
	ContextHover           PauseContext = "hover"
	ContextDistraction     PauseContext = "distraction"
	ContextFatigueBreak    PauseContext = "fatigue_break"
	ContextContentAnalysis PauseContext = "content_analysis"
	ContextTypingDelay     PauseContext = "typing_delay"
	ContextScrollPause     PauseContext = "scroll_pause"

	// FallbackContext supplies the range for any label missing from the table.
	FallbackContext = ContextDecision
)

// AllContexts lists the supported labels in table order.
var AllContexts = []PauseContext{
	ContextReading,
	ContextDecision,
	ContextClickHesitation,
	ContextPageProcessing,
	ContextHover,
	ContextDistraction,
	ContextFatigueBreak,
	ContextContentAnalysis,
	ContextTypingDelay,
	ContextScrollPause,
}

// defaultContextRanges are base pause ranges in milliseconds.
var defaultContextRanges = map[PauseContext]Range{
	ContextReading:         {2000, 8000},
	ContextDecision:        {1000, 4000},
	ContextClickHesitation: {200, 800},
	ContextPageProcessing:  {1000, 3000},
	ContextHover:           {300, 1200},
	ContextDistraction:     {3000, 15000},
	ContextFatigueBreak:    {5000, 20000},
	ContextContentAnalysis: {3000, 10000},
	ContextTypingDelay:     {100, 400},
	ContextScrollPause:     {500, 2000},
}

// fatigueSensitivity is k in the 1 + fatigue*k multiplier.
var fatigueSensitivity = map[PauseContext]float64{
	ContextReading:         0.8,
	ContextDecision:        1.2,
	ContextClickHesitation: 0.5,
	ContextPageProcessing:  0.6,
	ContextHover:           0.3,
	ContextDistraction:     2.0,
}

const defaultFatigueSensitivity = 0.5

// ContextTable is an immutable mapping from context label to its base range.
type ContextTable struct {
	ranges map[PauseContext]Range
}

// NewContextTable builds a table from the defaults with overrides applied.
// Overrides with an empty or inverted range are ignored.
func NewContextTable(overrides map[PauseContext]Range) ContextTable {
	ranges := make(map[PauseContext]Range, len(defaultContextRanges)+len(overrides))
	for k, v := range defaultContextRanges {
		ranges[k] = v
	}
	for k, v := range overrides {
		if v.Min < 0 || v.Max < v.Min {
			continue
		}
		ranges[k] = v
	}
	return ContextTable{ranges: ranges}
}

// Lookup returns the range for c, falling back to the decision range.
func (t ContextTable) Lookup(c PauseContext) Range {
	if r, ok := t.ranges[c]; ok {
		return r
	}
	return t.ranges[FallbackContext]
}

// Known reports whether c has its own entry.
func (t ContextTable) Known(c PauseContext) bool {
	_, ok := t.ranges[c]
	return ok
}

// PageType classifies how heavy a page is to load.
type PageType string

const (
	PageLight  PageType = "light"
	PageMedium PageType = "medium"
	PageHeavy  PageType = "heavy"
)

var pageLoadRanges = map[PageType]Range{
	PageLight:  {800, 2000},
	PageMedium: {1500, 4000},
	PageHeavy:  {3000, 8000},
}

// ActionType categorizes an upcoming action for thinking-time simulation.
type ActionType string

const (
	ActionTypeClick    ActionType = "click"
	ActionTypeType     ActionType = "type"
	ActionTypeNavigate ActionType = "navigate"
	ActionTypeScroll   ActionType = "scroll"
)

var thinkingRanges = map[ActionType]Range{
	ActionTypeClick:    {300, 1200},
	ActionTypeType:     {500, 2000},
	ActionTypeNavigate: {800, 3000},
	ActionTypeScroll:   {200, 800},
}
