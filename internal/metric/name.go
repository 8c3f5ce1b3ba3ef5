// Package metric defines metric names, score results, and the scorer
// registry shared by all evaluation metrics.
package metric

// Name identifies an evaluation metric.
type Name string

// Built-in metric names.
const (
	// Faithfulness checks per-sentence grounding of the answer in context.
	Faithfulness Name = "faithfulness"
	// ContextPrecision checks term overlap of the answer with the ground truth.
	ContextPrecision Name = "context_precision"
	// Relevance checks weighted term overlap of the answer with query and context.
	Relevance Name = "relevance"
)

// IsValid reports whether the name is a built-in or registered metric.
func (n Name) IsValid() bool {
	switch n {
	case Faithfulness, ContextPrecision, Relevance:
		return true
	}
	return isRegistered(n)
}

// BuiltinNames returns the built-in metrics in declaration order.
func BuiltinNames() []Name {
	return []Name{Faithfulness, ContextPrecision, Relevance}
}
