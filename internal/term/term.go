// Package term normalizes raw text into comparable term sets.
package term

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// minTokenRunes is the minimum token length; shorter tokens carry too
// little signal for exact-match overlap ("a", "is", "ML").
const minTokenRunes = 3

// minSentenceRunes filters stray fragments left over from splitting on
// terminal punctuation (e.g. the "e" and "g" shards of "e.g.").
const minSentenceRunes = 3

// defaultStopwords are articles, prepositions, and common auxiliary verbs
// excluded from term extraction.
var defaultStopwords = []string{
	"the", "a", "an", "and", "or", "but", "in", "on", "at",
	"to", "for", "of", "with", "by", "from", "is", "are",
	"was", "were", "be", "been", "being", "this", "that",
	"these", "those", "it", "its", "they", "their", "have",
	"has", "had", "do", "does", "did", "will", "would", "could",
	"should", "may", "might", "can", "which", "who", "what",
	"where", "when", "why", "how",
}

// DefaultStopwords returns a copy of the built-in stop-word list.
func DefaultStopwords() []string {
	out := make([]string, len(defaultStopwords))
	copy(out, defaultStopwords)
	return out
}

// Set is a set of normalized terms.
type Set map[string]struct{}

// Has reports whether the term is in the set.
func (s Set) Has(t string) bool {
	_, ok := s[t]
	return ok
}

// Len returns the number of terms.
func (s Set) Len() int { return len(s) }

// OverlapCount returns the size of the intersection with other.
func (s Set) OverlapCount(other Set) int {
	// Iterate the smaller side.
	if len(other) < len(s) {
		s, other = other, s
	}
	n := 0
	for t := range s {
		if _, ok := other[t]; ok {
			n++
		}
	}
	return n
}

// Sorted returns the terms in lexicographic order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Extractor turns text into term sets. The stop-word set is fixed at
// construction and never mutated, so a single Extractor is safe to share
// across concurrent callers.
type Extractor struct {
	stopwords map[string]struct{}
}

// Option configures an Extractor.
type Option func(*extractorConfig)

type extractorConfig struct {
	stopwords []string
	extra     []string
}

// WithStopwords replaces the built-in stop-word list.
func WithStopwords(words ...string) Option {
	return func(c *extractorConfig) {
		c.stopwords = words
	}
}

// WithExtraStopwords extends the stop-word list.
func WithExtraStopwords(words ...string) Option {
	return func(c *extractorConfig) {
		c.extra = append(c.extra, words...)
	}
}

// NewExtractor creates an extractor with the built-in stop-word list
// unless overridden.
func NewExtractor(opts ...Option) *Extractor {
	cfg := &extractorConfig{stopwords: defaultStopwords}
	for _, o := range opts {
		o(cfg)
	}

	sw := make(map[string]struct{}, len(cfg.stopwords)+len(cfg.extra))
	for _, w := range cfg.stopwords {
		sw[strings.ToLower(w)] = struct{}{}
	}
	for _, w := range cfg.extra {
		sw[strings.ToLower(w)] = struct{}{}
	}
	return &Extractor{stopwords: sw}
}

// isTokenBoundary treats every rune outside letters, digits, and
// underscore as punctuation/whitespace.
func isTokenBoundary(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
}

// Terms extracts the normalized term set from text: lowercase, split on
// punctuation and whitespace, then drop stop words and tokens shorter
// than three runes. Empty or whitespace-only input yields an empty set.
// Extraction is exact-match only: no stemming or lemmatization.
func (e *Extractor) Terms(text string) Set {
	tokens := strings.FieldsFunc(strings.ToLower(text), isTokenBoundary)

	out := make(Set, len(tokens))
	for _, t := range tokens {
		if utf8.RuneCountInString(t) < minTokenRunes {
			continue
		}
		if _, stop := e.stopwords[t]; stop {
			continue
		}
		out[t] = struct{}{}
	}
	return out
}

// SplitSentences splits text on runs of sentence-terminal punctuation
// and drops fragments shorter than three runes.
func SplitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if utf8.RuneCountInString(p) >= minSentenceRunes {
			out = append(out, p)
		}
	}
	return out
}
