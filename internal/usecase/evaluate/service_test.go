package evaluate

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/kailas-cloud/ragscore/internal/domain"
	"github.com/kailas-cloud/ragscore/internal/domain/record"
	"github.com/kailas-cloud/ragscore/internal/metric"
	"github.com/kailas-cloud/ragscore/internal/term"
)

const tolerance = 1e-6

func newService(t *testing.T, names ...metric.Name) *Service {
	t.Helper()
	svc, err := New(term.NewExtractor(), names)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return svc
}

func TestNew_DefaultsToAllMetrics(t *testing.T) {
	svc := newService(t)

	want := []metric.Name{metric.Faithfulness, metric.ContextPrecision, metric.Relevance}
	if !reflect.DeepEqual(svc.Metrics(), want) {
		t.Errorf("Metrics() = %v, want %v", svc.Metrics(), want)
	}
}

func TestNew_UnknownMetric(t *testing.T) {
	_, err := New(term.NewExtractor(), []metric.Name{"faithfulness", "bleu"})
	if !errors.Is(err, domain.ErrUnknownMetric) {
		t.Errorf("New() error = %v, want ErrUnknownMetric", err)
	}
}

func TestNew_DuplicatesCollapsed(t *testing.T) {
	svc := newService(t, metric.Relevance, metric.Relevance)

	if got := svc.Metrics(); len(got) != 1 || got[0] != metric.Relevance {
		t.Errorf("Metrics() = %v, want [relevance]", got)
	}
}

func TestEvaluate_AllMetricsWithGroundTruth(t *testing.T) {
	svc := newService(t)

	rec := record.New(
		"What is machine learning?",
		"Machine learning is a subset of AI that enables systems to learn and improve from experience.",
		"Machine learning is a subset of artificial intelligence. It allows systems to learn from experience.",
	).WithGroundTruth(
		"Machine learning is a subset of AI that enables systems to learn and improve from experience.",
	)

	ev := svc.Evaluate(rec)

	if len(ev) != 3 {
		t.Fatalf("Evaluate() returned %d metrics, want 3: %v", len(ev), ev)
	}

	// Both answer sentences are grounded in the context.
	if got := ev[metric.Faithfulness].Score(); got != 1.0 {
		t.Errorf("faithfulness = %f, want 1.0", got)
	}

	// 6 of the 9 answer terms appear in the ground truth; "artificial"
	// and "intelligence" miss because the reference says "AI" (exact
	// token matching, no normalization of abbreviations).
	wantPrecision := 6.0 / 9.0
	if got := ev[metric.ContextPrecision].Score(); math.Abs(got-wantPrecision) > tolerance {
		t.Errorf("context_precision = %f, want %f", got, wantPrecision)
	}

	// qr = 2/2, cr = 6/8.
	wantRelevance := 0.7*1.0 + 0.3*(6.0/8.0)
	if got := ev[metric.Relevance].Score(); math.Abs(got-wantRelevance) > tolerance {
		t.Errorf("relevance = %f, want %f", got, wantRelevance)
	}
}

func TestEvaluate_ContextPrecisionSilentlyExcluded(t *testing.T) {
	svc := newService(t)

	ev := svc.Evaluate(record.New("query terms", "context terms", "answer terms"))

	if _, ok := ev[metric.ContextPrecision]; ok {
		t.Error("context_precision should be excluded without ground truth")
	}
	if _, ok := ev[metric.Faithfulness]; !ok {
		t.Error("faithfulness should be present")
	}
	if _, ok := ev[metric.Relevance]; !ok {
		t.Error("relevance should be present")
	}
}

func TestEvaluate_SubsetSelection(t *testing.T) {
	svc := newService(t, metric.Relevance)

	ev := svc.Evaluate(record.New("q terms", "c terms", "a terms").WithGroundTruth("gt"))

	if len(ev) != 1 {
		t.Fatalf("Evaluate() = %v, want exactly one key", ev)
	}
	if _, ok := ev[metric.Relevance]; !ok {
		t.Error("relevance should be the only key")
	}
}

func TestEvaluate_DegenerateInputsNeverFail(t *testing.T) {
	svc := newService(t)

	ev := svc.Evaluate(record.New("", "", ""))

	for name, res := range ev {
		if res.Score() != 0.0 {
			t.Errorf("%s = %f, want 0.0 on empty inputs", name, res.Score())
		}
		if res.Score() < 0 || res.Score() > 1 {
			t.Errorf("%s = %f, out of [0,1]", name, res.Score())
		}
	}
}

func TestEvaluateColumns_LengthMismatch(t *testing.T) {
	svc := newService(t)

	_, err := svc.EvaluateColumns(
		[]string{"q1", "q2", "q3"},
		[]string{"c1", "c2", "c3"},
		[]string{"a1", "a2"},
		nil,
	)
	if !errors.Is(err, domain.ErrLengthMismatch) {
		t.Errorf("EvaluateColumns() error = %v, want ErrLengthMismatch", err)
	}

	_, err = svc.EvaluateColumns(
		[]string{"q1", "q2"},
		[]string{"c1", "c2"},
		[]string{"a1", "a2"},
		[]string{"gt1"},
	)
	if !errors.Is(err, domain.ErrLengthMismatch) {
		t.Errorf("EvaluateColumns() ground truth error = %v, want ErrLengthMismatch", err)
	}
}

func TestEvaluateColumns_PerItemGroundTruth(t *testing.T) {
	svc := newService(t)

	batch, err := svc.EvaluateColumns(
		[]string{"query one", "query two"},
		[]string{"context one", "context two"},
		[]string{"answer one", "answer two"},
		[]string{"reference answer", ""},
	)
	if err != nil {
		t.Fatalf("EvaluateColumns() error: %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("len(batch) = %d, want 2", len(batch))
	}

	if _, ok := batch[0][metric.ContextPrecision]; !ok {
		t.Error("item 0 should include context_precision")
	}
	if _, ok := batch[1][metric.ContextPrecision]; ok {
		t.Error("item 1 should exclude context_precision")
	}
}

func TestEvaluateColumns_NilGroundTruths(t *testing.T) {
	svc := newService(t)

	batch, err := svc.EvaluateColumns(
		[]string{"one query"},
		[]string{"one context"},
		[]string{"one answer"},
		nil,
	)
	if err != nil {
		t.Fatalf("EvaluateColumns() error: %v", err)
	}
	if _, ok := batch[0][metric.ContextPrecision]; ok {
		t.Error("context_precision should be absent when ground truths are nil")
	}
}

func TestEvaluateBatch_OrderPreserved(t *testing.T) {
	svc := newService(t, metric.Faithfulness)

	recs := []record.Record{
		record.New("q", "systems learn experience", "Systems learn from experience."),
		record.New("q", "unrelated", "Completely different claim about badgers."),
	}
	batch := svc.EvaluateBatch(recs)

	if got := batch[0][metric.Faithfulness].Score(); got != 1.0 {
		t.Errorf("batch[0] = %f, want 1.0", got)
	}
	if got := batch[1][metric.Faithfulness].Score(); got != 0.0 {
		t.Errorf("batch[1] = %f, want 0.0", got)
	}
}

func TestAverageScores_PartialPresence(t *testing.T) {
	svc := newService(t)

	batch, err := svc.EvaluateColumns(
		[]string{"query one", "query two"},
		[]string{"shared context words", "shared context words"},
		[]string{"shared context words.", "shared context words."},
		[]string{"shared context words", ""},
	)
	if err != nil {
		t.Fatalf("EvaluateColumns() error: %v", err)
	}

	avg := AverageScores(batch)

	// context_precision exists only for item 0, so its average must be
	// item 0's score, not halved by the full batch size.
	want := batch[0][metric.ContextPrecision].Score()
	if got := avg[metric.ContextPrecision]; math.Abs(got-want) > tolerance {
		t.Errorf("avg context_precision = %f, want %f", got, want)
	}

	wantFaithfulness := (batch[0][metric.Faithfulness].Score() + batch[1][metric.Faithfulness].Score()) / 2
	if got := avg[metric.Faithfulness]; math.Abs(got-wantFaithfulness) > tolerance {
		t.Errorf("avg faithfulness = %f, want %f", got, wantFaithfulness)
	}
}

func TestAverageScores_EmptyBatch(t *testing.T) {
	if got := AverageScores(nil); len(got) != 0 {
		t.Errorf("AverageScores(nil) = %v, want empty", got)
	}
}
