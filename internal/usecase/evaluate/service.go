// Package evaluate orchestrates metric selection, input validation, and
// batch scoring.
package evaluate

import (
	"fmt"

	"github.com/kailas-cloud/ragscore/internal/domain"
	"github.com/kailas-cloud/ragscore/internal/domain/record"
	"github.com/kailas-cloud/ragscore/internal/metric"
	"github.com/kailas-cloud/ragscore/internal/metric/contextprecision"
	"github.com/kailas-cloud/ragscore/internal/metric/faithfulness"
	"github.com/kailas-cloud/ragscore/internal/metric/relevance"
	"github.com/kailas-cloud/ragscore/internal/term"
)

// Evaluation maps metric names to their results for one record. Keys
// present are exactly the requested metrics, minus context precision
// when the record carries no ground truth.
type Evaluation map[metric.Name]metric.Result

// builtins is the explicit dispatch table for the built-in metrics;
// anything else is resolved through the metric registry.
var builtins = map[metric.Name]metric.Constructor{
	metric.Faithfulness:     func(ex *term.Extractor) metric.Scorer { return faithfulness.New(ex) },
	metric.ContextPrecision: func(ex *term.Extractor) metric.Scorer { return contextprecision.New(ex) },
	metric.Relevance:        func(ex *term.Extractor) metric.Scorer { return relevance.New(ex) },
}

// Service runs a fixed selection of metrics over records. Stateless
// after construction and safe for concurrent use.
type Service struct {
	scorers []metric.Scorer
}

// New creates an evaluation service for the named metrics, defaulting
// to all built-in metrics in declaration order. Unknown names fail with
// domain.ErrUnknownMetric; duplicates are collapsed to their first
// occurrence.
func New(ex *term.Extractor, names []metric.Name) (*Service, error) {
	if ex == nil {
		ex = term.NewExtractor()
	}
	if len(names) == 0 {
		names = metric.BuiltinNames()
	}

	seen := make(map[metric.Name]struct{}, len(names))
	scorers := make([]metric.Scorer, 0, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		ctor, ok := builtins[name]
		if !ok {
			ctor, ok = metric.Lookup(name)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %q (available: %v)",
				domain.ErrUnknownMetric, name, metric.BuiltinNames())
		}
		scorers = append(scorers, ctor(ex))
	}

	return &Service{scorers: scorers}, nil
}

// Metrics returns the selected metric names in evaluation order.
func (s *Service) Metrics() []metric.Name {
	names := make([]metric.Name, len(s.scorers))
	for i, sc := range s.scorers {
		names[i] = sc.Name()
	}
	return names
}

// Evaluate scores one record with every selected metric. A metric that
// cannot run (context precision without a ground truth) is excluded
// from the result rather than reported as an error. Degenerate inputs
// never fail, they score 0.0 with reasoning.
func (s *Service) Evaluate(rec record.Record) Evaluation {
	out := make(Evaluation, len(s.scorers))
	for _, sc := range s.scorers {
		res, err := sc.Evaluate(rec)
		if err != nil {
			continue
		}
		out[sc.Name()] = res
	}
	return out
}

// EvaluateBatch scores records independently, preserving order: result
// i corresponds to record i.
func (s *Service) EvaluateBatch(recs []record.Record) []Evaluation {
	out := make([]Evaluation, len(recs))
	for i, rec := range recs {
		out[i] = s.Evaluate(rec)
	}
	return out
}

// EvaluateColumns scores parallel columns of inputs. All columns must
// have equal length; groundTruths may be nil (all absent) and empty
// cells mark the ground truth absent for that row only. Validation
// failures return domain.ErrLengthMismatch before any metric runs.
func (s *Service) EvaluateColumns(
	queries, contexts, answers, groundTruths []string,
) ([]Evaluation, error) {
	recs, err := RecordsFromColumns(queries, contexts, answers, groundTruths)
	if err != nil {
		return nil, err
	}
	return s.EvaluateBatch(recs), nil
}

// RecordsFromColumns assembles records from parallel columns, validating
// that all columns have equal length.
func RecordsFromColumns(
	queries, contexts, answers, groundTruths []string,
) ([]record.Record, error) {
	n := len(queries)
	if len(contexts) != n || len(answers) != n {
		return nil, fmt.Errorf(
			"%w: %d queries, %d contexts, %d answers",
			domain.ErrLengthMismatch, n, len(contexts), len(answers))
	}
	if groundTruths != nil && len(groundTruths) != n {
		return nil, fmt.Errorf(
			"%w: %d queries, %d ground truths",
			domain.ErrLengthMismatch, n, len(groundTruths))
	}

	recs := make([]record.Record, n)
	for i := 0; i < n; i++ {
		rec := record.New(queries[i], contexts[i], answers[i])
		if groundTruths != nil {
			rec = rec.WithGroundTruth(groundTruths[i])
		}
		recs[i] = rec
	}
	return recs, nil
}

// AverageScores averages each metric over only the evaluations that
// contain it; a metric missing from some records (context precision
// without ground truth) is averaged over the records that have it.
// Metrics present in no evaluation are omitted.
func AverageScores(batch []Evaluation) map[metric.Name]float64 {
	sums := map[metric.Name]float64{}
	counts := map[metric.Name]int{}
	for _, ev := range batch {
		for name, res := range ev {
			sums[name] += res.Score()
			counts[name]++
		}
	}

	out := make(map[metric.Name]float64, len(sums))
	for name, sum := range sums {
		out[name] = sum / float64(counts[name])
	}
	return out
}
