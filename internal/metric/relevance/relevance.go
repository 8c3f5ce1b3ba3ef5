// Package relevance scores how well an answer addresses the query and
// uses the retrieved context.
package relevance

import (
	"fmt"

	"github.com/kailas-cloud/ragscore/internal/domain/record"
	"github.com/kailas-cloud/ragscore/internal/metric"
	"github.com/kailas-cloud/ragscore/internal/term"
)

// Score weights. Query relevance dominates: addressing the question
// matters more than echoing the context. Tunable, not derived.
const (
	QueryWeight   = 0.7
	ContextWeight = 0.3
)

// Metric checks weighted term overlap of the answer against the query
// and the context.
type Metric struct {
	terms *term.Extractor
}

// New creates a relevance metric over the given extractor.
func New(terms *term.Extractor) *Metric {
	return &Metric{terms: terms}
}

// Name returns the metric name.
func (m *Metric) Name() metric.Name { return metric.Relevance }

// Evaluate implements metric.Scorer.
func (m *Metric) Evaluate(rec record.Record) (metric.Result, error) {
	return m.Score(rec.Query(), rec.Answer(), rec.Context()), nil
}

// Score computes QueryWeight*qr + ContextWeight*cr, where qr is the
// fraction of query terms found in the answer and cr the fraction of
// context terms found in the answer. An empty query or context zeroes
// the corresponding sub-score instead of dividing by zero.
func (m *Metric) Score(query, answer, context string) metric.Result {
	queryTerms := m.terms.Terms(query)
	answerTerms := m.terms.Terms(answer)
	contextTerms := m.terms.Terms(context)

	queryOverlap := queryTerms.OverlapCount(answerTerms)
	contextOverlap := contextTerms.OverlapCount(answerTerms)

	queryRelevance := 0.0
	if queryTerms.Len() > 0 {
		queryRelevance = float64(queryOverlap) / float64(queryTerms.Len())
	}
	contextRelevance := 0.0
	if contextTerms.Len() > 0 {
		contextRelevance = float64(contextOverlap) / float64(contextTerms.Len())
	}

	score := QueryWeight*queryRelevance + ContextWeight*contextRelevance
	return metric.NewResult(score, map[string]any{
		"query_relevance":         queryRelevance,
		"context_relevance":       contextRelevance,
		"query_terms_in_answer":   queryOverlap,
		"total_query_terms":       queryTerms.Len(),
		"context_terms_in_answer": contextOverlap,
		"total_context_terms":     contextTerms.Len(),
		metric.ReasoningKey: fmt.Sprintf(
			"answer addresses %d/%d query terms and uses %d/%d context terms (exact token match, no stemming)",
			queryOverlap, queryTerms.Len(), contextOverlap, contextTerms.Len()),
	})
}
