// Package contextprecision scores how much of the answer's content
// comes from the ground truth reference.
package contextprecision

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/ragscore/internal/domain"
	"github.com/kailas-cloud/ragscore/internal/domain/record"
	"github.com/kailas-cloud/ragscore/internal/metric"
	"github.com/kailas-cloud/ragscore/internal/term"
)

// Metric checks term overlap of the answer against the ground truth.
type Metric struct {
	terms *term.Extractor
}

// New creates a context precision metric over the given extractor.
func New(terms *term.Extractor) *Metric {
	return &Metric{terms: terms}
}

// Name returns the metric name.
func (m *Metric) Name() metric.Name { return metric.ContextPrecision }

// Evaluate implements metric.Scorer. It fails with
// domain.ErrMissingGroundTruth when the record has no reference answer;
// the orchestrator excludes the metric instead of calling it in that
// state.
func (m *Metric) Evaluate(rec record.Record) (metric.Result, error) {
	gt, ok := rec.GroundTruth()
	if !ok {
		return metric.Result{}, domain.ErrMissingGroundTruth
	}
	return m.Score(rec.Answer(), gt)
}

// Score returns the fraction of answer terms found in the ground truth.
// An empty answer scores 0.0; an empty ground truth is an error.
func (m *Metric) Score(answer, groundTruth string) (metric.Result, error) {
	if strings.TrimSpace(groundTruth) == "" {
		return metric.Result{}, domain.ErrMissingGroundTruth
	}

	answerTerms := m.terms.Terms(answer)
	if answerTerms.Len() == 0 {
		return metric.NewResult(0, map[string]any{
			"answer_terms_count":   0,
			"ground_truth_overlap": 0,
			"precision_percentage": "0.0%",
			metric.ReasoningKey:    "answer has no terms to evaluate",
		}), nil
	}

	groundTruthTerms := m.terms.Terms(groundTruth)
	overlap := answerTerms.OverlapCount(groundTruthTerms)
	score := float64(overlap) / float64(answerTerms.Len())

	return metric.NewResult(score, map[string]any{
		"answer_terms_count":   answerTerms.Len(),
		"ground_truth_overlap": overlap,
		"precision_percentage": fmt.Sprintf("%.1f%%", score*100),
		metric.ReasoningKey: fmt.Sprintf(
			"%d out of %d answer terms found in ground truth (exact token match, no stemming)",
			overlap, answerTerms.Len()),
	}), nil
}
