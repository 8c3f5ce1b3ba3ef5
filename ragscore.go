// Package ragscore scores RAG answers against their retrieved context
// with deterministic, rule-based metrics: faithfulness, context
// precision, and relevance. Scoring is pure term arithmetic; no LLM
// calls, no network access.
package ragscore

import (
	"github.com/kailas-cloud/ragscore/internal/domain"
	"github.com/kailas-cloud/ragscore/internal/domain/record"
	"github.com/kailas-cloud/ragscore/internal/metric"
	"github.com/kailas-cloud/ragscore/internal/usecase/evaluate"
)

// Metric names accepted by WithMetrics and returned as Evaluation keys.
const (
	MetricFaithfulness     = string(metric.Faithfulness)
	MetricContextPrecision = string(metric.ContextPrecision)
	MetricRelevance        = string(metric.Relevance)
)

// Sentinel errors surfaced by the public API.
var (
	ErrUnknownMetric     = domain.ErrUnknownMetric
	ErrLengthMismatch    = domain.ErrLengthMismatch
	ErrUnsupportedFormat = domain.ErrUnsupportedFormat
)

// Record is one query/context/answer triple to score. GroundTruth is
// optional; when nil or empty, context precision is omitted from the
// evaluation.
type Record struct {
	Query       string
	Context     string
	Answer      string
	GroundTruth *string
}

// MetricResult is one metric's score with its breakdown.
type MetricResult struct {
	Score   float64
	Details map[string]any
}

// Evaluation maps metric names to results for a single record.
// Metrics that could not run (context precision without ground truth)
// are absent from the map.
type Evaluation map[string]MetricResult

// Evaluator scores records with a fixed metric selection.
type Evaluator struct {
	svc *evaluate.Service
}

// New creates an Evaluator. Without options it runs all built-in
// metrics with the default stop-word list.
func New(opts ...Option) (*Evaluator, error) {
	cfg := &evaluatorConfig{}
	for _, o := range opts {
		o(cfg)
	}

	names := make([]metric.Name, len(cfg.metrics))
	for i, n := range cfg.metrics {
		names[i] = metric.Name(n)
	}

	svc, err := evaluate.New(cfg.extractor(), names)
	if err != nil {
		return nil, err
	}
	return &Evaluator{svc: svc}, nil
}

// Metrics returns the metric names this evaluator runs, in a stable order.
func (e *Evaluator) Metrics() []string {
	names := e.svc.Metrics()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return out
}

// Evaluate scores a single record.
func (e *Evaluator) Evaluate(rec Record) Evaluation {
	return toPublic(e.svc.Evaluate(toInternal(rec)))
}

// EvaluateBatch scores records in order.
func (e *Evaluator) EvaluateBatch(recs []Record) []Evaluation {
	internal := make([]record.Record, len(recs))
	for i, r := range recs {
		internal[i] = toInternal(r)
	}
	batch := e.svc.EvaluateBatch(internal)
	out := make([]Evaluation, len(batch))
	for i, ev := range batch {
		out[i] = toPublic(ev)
	}
	return out
}

// EvaluateColumns scores parallel columns of inputs. groundTruths may
// be nil (all absent); an empty cell marks the ground truth absent for
// that row. Returns ErrLengthMismatch if column lengths differ.
func (e *Evaluator) EvaluateColumns(
	queries, contexts, answers, groundTruths []string,
) ([]Evaluation, error) {
	batch, err := e.svc.EvaluateColumns(queries, contexts, answers, groundTruths)
	if err != nil {
		return nil, err
	}
	out := make([]Evaluation, len(batch))
	for i, ev := range batch {
		out[i] = toPublic(ev)
	}
	return out, nil
}

// AverageScores averages each metric over the evaluations that contain
// it. Metrics present in no evaluation are omitted.
func AverageScores(batch []Evaluation) map[string]float64 {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, ev := range batch {
		for name, res := range ev {
			sums[name] += res.Score
			counts[name]++
		}
	}
	out := make(map[string]float64, len(sums))
	for name, sum := range sums {
		out[name] = sum / float64(counts[name])
	}
	return out
}

func toInternal(r Record) record.Record {
	rec := record.New(r.Query, r.Context, r.Answer)
	if r.GroundTruth != nil {
		rec = rec.WithGroundTruth(*r.GroundTruth)
	}
	return rec
}

func toPublic(ev evaluate.Evaluation) Evaluation {
	out := make(Evaluation, len(ev))
	for name, res := range ev {
		out[string(name)] = MetricResult{Score: res.Score(), Details: res.Details()}
	}
	return out
}
