package faithfulness

import (
	"reflect"
	"testing"

	"github.com/kailas-cloud/ragscore/internal/domain/record"
	"github.com/kailas-cloud/ragscore/internal/metric"
	"github.com/kailas-cloud/ragscore/internal/term"
)

func newMetric() *Metric {
	return New(term.NewExtractor())
}

func TestScore_FullyGrounded(t *testing.T) {
	m := newMetric()

	context := "Machine learning is a subset of AI that enables systems to learn and improve from experience."
	answer := "Machine learning is a subset of artificial intelligence. It allows systems to learn from experience."

	res := m.Score(answer, context)

	if res.Score() != 1.0 {
		t.Errorf("Score() = %f, want 1.0", res.Score())
	}
	if res.Details()["total_sentences"] != 2 {
		t.Errorf("total_sentences = %v, want 2", res.Details()["total_sentences"])
	}
	if res.Details()["supported_sentences"] != 2 {
		t.Errorf("supported_sentences = %v, want 2", res.Details()["supported_sentences"])
	}
}

func TestScore_TermsSubsetOfContext(t *testing.T) {
	m := newMetric()

	// Every answer term appears in the context.
	res := m.Score("Systems learn from experience.", "systems learn improve experience")

	if res.Score() != 1.0 {
		t.Errorf("Score() = %f, want 1.0", res.Score())
	}
}

func TestScore_EmptyAnswer(t *testing.T) {
	m := newMetric()

	for _, answer := range []string{"", "   ", "...", "!?"} {
		res := m.Score(answer, "some context")
		if res.Score() != 0.0 {
			t.Errorf("Score(%q) = %f, want 0.0", answer, res.Score())
		}
		if res.Reasoning() == "" {
			t.Errorf("Score(%q) should explain the zero score", answer)
		}
	}
}

func TestScore_UnsupportedSentencesListed(t *testing.T) {
	m := newMetric()

	context := "The capital of France is Paris."
	answer := "France has capital called Paris. Penguins live mostly inside volcanoes. Another falsehood entirely unrelated here."

	res := m.Score(answer, context)

	want := []string{
		"Penguins live mostly inside volcanoes",
		"Another falsehood entirely unrelated here",
	}
	got, ok := res.Details()["unsupported_sentences"].([]string)
	if !ok {
		t.Fatalf("unsupported_sentences has type %T", res.Details()["unsupported_sentences"])
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unsupported_sentences = %v, want %v", got, want)
	}
	if res.Score() != 1.0/3.0 {
		t.Errorf("Score() = %f, want %f", res.Score(), 1.0/3.0)
	}
}

func TestScore_MajorityRuleIsStrict(t *testing.T) {
	m := newMetric()

	// Sentence terms: {alpha, beta, gamma, delta}; exactly two in context.
	// 2/4 does not exceed the threshold, so the sentence is unsupported.
	res := m.Score("Alpha beta gamma delta.", "alpha beta something else")

	if res.Score() != 0.0 {
		t.Errorf("Score() = %f, want 0.0 for an exact half overlap", res.Score())
	}
}

func TestScore_SentenceWithoutTerms(t *testing.T) {
	m := newMetric()

	// Every token is a stop word or too short: nothing to verify.
	res := m.Score("Is it so.", "unrelated context entirely")
	if res.Score() != 1.0 {
		t.Errorf("Score() = %f, want 1.0 for a sentence with no extractable terms", res.Score())
	}
}

func TestScore_Bounds(t *testing.T) {
	m := newMetric()

	cases := [][2]string{
		{"", ""},
		{"Totally unrelated claim about quantum badgers.", "the context"},
		{"perfect overlap context words.", "perfect overlap context words"},
	}
	for _, c := range cases {
		res := m.Score(c[0], c[1])
		if res.Score() < 0 || res.Score() > 1 {
			t.Errorf("Score(%q, %q) = %f, out of [0,1]", c[0], c[1], res.Score())
		}
	}
}

func TestEvaluate_UsesAnswerAndContext(t *testing.T) {
	m := newMetric()

	rec := record.New("ignored query", "systems learn experience", "Systems learn from experience.")
	res, err := m.Evaluate(rec)
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	if res.Score() != 1.0 {
		t.Errorf("Score() = %f, want 1.0", res.Score())
	}
	if m.Name() != metric.Faithfulness {
		t.Errorf("Name() = %q", m.Name())
	}
}
