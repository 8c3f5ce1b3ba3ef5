package ragscore

import "github.com/kailas-cloud/ragscore/internal/term"

type evaluatorConfig struct {
	metrics        []string
	stopwords      []string
	extraStopwords []string
}

// Option configures an Evaluator.
type Option func(*evaluatorConfig)

// WithMetrics selects which metrics to run. Unknown names make New
// return ErrUnknownMetric; duplicates are ignored. Empty means all
// built-in metrics.
func WithMetrics(names ...string) Option {
	return func(c *evaluatorConfig) {
		c.metrics = names
	}
}

// WithStopwords replaces the built-in stop-word list.
func WithStopwords(words []string) Option {
	return func(c *evaluatorConfig) {
		c.stopwords = words
	}
}

// WithExtraStopwords extends the built-in stop-word list.
func WithExtraStopwords(words ...string) Option {
	return func(c *evaluatorConfig) {
		c.extraStopwords = append(c.extraStopwords, words...)
	}
}

func (c *evaluatorConfig) extractor() *term.Extractor {
	var opts []term.Option
	if c.stopwords != nil {
		opts = append(opts, term.WithStopwords(c.stopwords...))
	}
	if len(c.extraStopwords) > 0 {
		opts = append(opts, term.WithExtraStopwords(c.extraStopwords...))
	}
	return term.NewExtractor(opts...)
}
