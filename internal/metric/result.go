package metric

// ReasoningKey is the details entry every metric populates with a
// human-readable explanation of its score.
const ReasoningKey = "reasoning"

// Result is a single metric score with diagnostic details. Immutable
// once produced; callers must not modify the details map.
type Result struct {
	score   float64
	details map[string]any
}

// NewResult creates a metric result. Scores are clamped to [0, 1].
func NewResult(score float64, details map[string]any) Result {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return Result{score: score, details: details}
}

// Score returns the metric score in [0, 1].
func (r Result) Score() float64 { return r.score }

// Details returns the metric-specific diagnostic counters plus the
// reasoning string.
func (r Result) Details() map[string]any { return r.details }

// Reasoning returns the human-readable explanation of the score.
func (r Result) Reasoning() string {
	s, _ := r.details[ReasoningKey].(string)
	return s
}
