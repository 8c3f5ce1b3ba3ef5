// Package faithfulness scores how well an answer is grounded in the
// retrieved context, sentence by sentence.
package faithfulness

import (
	"fmt"

	"github.com/kailas-cloud/ragscore/internal/domain/record"
	"github.com/kailas-cloud/ragscore/internal/metric"
	"github.com/kailas-cloud/ragscore/internal/term"
)

// SupportThreshold is the fraction of a sentence's terms that must be
// found in the context for the sentence to count as supported. The
// comparison is strict: more than half of the terms must match
// (majority rule). Tunable, not derived.
const SupportThreshold = 0.5

// Metric checks per-sentence grounding of the answer in the context.
type Metric struct {
	terms *term.Extractor
}

// New creates a faithfulness metric over the given extractor.
func New(terms *term.Extractor) *Metric {
	return &Metric{terms: terms}
}

// Name returns the metric name.
func (m *Metric) Name() metric.Name { return metric.Faithfulness }

// Evaluate implements metric.Scorer.
func (m *Metric) Evaluate(rec record.Record) (metric.Result, error) {
	return m.Score(rec.Answer(), rec.Context()), nil
}

// Score splits the answer into sentences and reports the fraction that
// are supported by the context's term set. A sentence is supported when
// the majority of its terms appear in the context; a sentence with no
// extractable terms has nothing to verify and counts as supported.
// An answer with no sentences scores 0.0.
func (m *Metric) Score(answer, context string) metric.Result {
	sentences := term.SplitSentences(answer)
	if len(sentences) == 0 {
		return metric.NewResult(0, map[string]any{
			"total_sentences":       0,
			"supported_sentences":   0,
			"unsupported_sentences": []string{},
			metric.ReasoningKey:     "answer has no content to evaluate",
		})
	}

	contextTerms := m.terms.Terms(context)

	supported := 0
	unsupported := make([]string, 0, len(sentences))
	for _, sentence := range sentences {
		if m.isSupported(sentence, contextTerms) {
			supported++
		} else {
			unsupported = append(unsupported, sentence)
		}
	}

	score := float64(supported) / float64(len(sentences))
	return metric.NewResult(score, map[string]any{
		"total_sentences":       len(sentences),
		"supported_sentences":   supported,
		"unsupported_sentences": unsupported,
		metric.ReasoningKey: fmt.Sprintf(
			"%d out of %d sentences are grounded in the context (exact token match, no stemming)",
			supported, len(sentences)),
	})
}

func (m *Metric) isSupported(sentence string, contextTerms term.Set) bool {
	sentenceTerms := m.terms.Terms(sentence)
	if sentenceTerms.Len() == 0 {
		// No meaningful terms to verify.
		return true
	}
	found := sentenceTerms.OverlapCount(contextTerms)
	return float64(found)/float64(sentenceTerms.Len()) > SupportThreshold
}
