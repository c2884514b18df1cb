// Package similarity scores how closely two skill or expertise tokens match.
//
// Tokens are compared case-insensitively, then through a synonym table, and
// finally with a normalized Levenshtein ratio that only counts above a
// threshold.
package similarity

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Default matching parameters.
const (
	DefaultThreshold     = 0.8
	DefaultExactWeight   = 1.0
	DefaultSimilarWeight = 0.7
)

// defaultSynonyms maps abbreviations onto their canonical long form.
// Keys and values are lower case.
var defaultSynonyms = map[string]string{ //nolint:gochecknoglobals // read-only lookup table
	"js":     "javascript",
	"ts":     "typescript",
	"ui":     "user interface",
	"ux":     "user experience",
	"devops": "development operations",
	"ai":     "artificial intelligence",
	"ml":     "machine learning",
	"nlp":    "natural language processing",
	"k8s":    "kubernetes",
	"db":     "database",
	"aws":    "amazon web services",
	"gcp":    "google cloud platform",
	"bi":     "business intelligence",
	"qa":     "quality assurance",
	"pm":     "project management",
	"ci/cd":  "continuous integration and delivery",
	"etl":    "extract transform load",
}

// Option applies a configuration option to the Matcher.
type Option func(*Matcher)

// WithThreshold sets the minimum ratio for a fuzzy match to count.
func WithThreshold(threshold float64) Option {
	return func(m *Matcher) {
		if threshold > 0 && threshold <= 1 {
			m.threshold = threshold
		}
	}
}

// WithWeights sets the scores given to exact and fuzzy matches.
func WithWeights(exact, similar float64) Option {
	return func(m *Matcher) {
		if exact > 0 {
			m.exactWeight = exact
		}
		if similar > 0 {
			m.similarWeight = similar
		}
	}
}

// WithSynonyms adds entries to the synonym table. Keys and values are
// lower-cased; entries override the built-in table.
func WithSynonyms(synonyms map[string]string) Option {
	return func(m *Matcher) {
		for k, v := range synonyms {
			k = strings.ToLower(strings.TrimSpace(k))
			v = strings.ToLower(strings.TrimSpace(v))
			if k != "" && v != "" {
				m.synonyms[k] = v
			}
		}
	}
}

// Matcher compares tokens. It is immutable after New and safe for
// concurrent use.
type Matcher struct {
	threshold     float64
	exactWeight   float64
	similarWeight float64
	synonyms      map[string]string
}

// New creates a Matcher with the default table and weights.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		threshold:     DefaultThreshold,
		exactWeight:   DefaultExactWeight,
		similarWeight: DefaultSimilarWeight,
		synonyms:      make(map[string]string, len(defaultSynonyms)),
	}
	for k, v := range defaultSynonyms {
		m.synonyms[k] = v
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// WordSimilarity scores a against b in [0,1].
func (m *Matcher) WordSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return m.exactWeight
	}

	a, b = m.normalize(a), m.normalize(b)
	if a == b {
		return m.exactWeight
	}

	r := Ratio(a, b)
	if r >= m.threshold {
		return r * m.similarWeight
	}
	return 0
}

// BestMatch returns the highest similarity between required and any
// candidate token.
func (m *Matcher) BestMatch(candidates []string, required string) float64 {
	best := 0.0
	for _, c := range candidates {
		if s := m.WordSimilarity(c, required); s > best {
			best = s
		}
	}
	return best
}

// AverageBestMatch averages BestMatch over every required token.
func (m *Matcher) AverageBestMatch(candidates, required []string) float64 {
	total := 0.0
	for _, r := range required {
		total += m.BestMatch(candidates, r)
	}
	return total / float64(max(len(required), 1))
}

func (m *Matcher) normalize(s string) string {
	if long, ok := m.synonyms[s]; ok {
		return long
	}
	return s
}

// Ratio is 1 minus the Levenshtein distance divided by the longer rune
// length. Two empty strings are identical.
func Ratio(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}
