package scoring

import (
	"fmt"
	"slices"

	"github.com/okian/consultmatch/internal/domain/similarity"
)

// Strategy names accepted by StrategyFor.
const (
	StrategySemantic = "semantic"
	StrategyExact    = "exact"
)

// MatchStrategy scores candidate tokens against required tokens.
type MatchStrategy interface {
	AverageBestMatch(candidates, required []string) float64
}

// SemanticMatch uses fuzzy, synonym-aware similarity.
type SemanticMatch struct {
	Matcher *similarity.Matcher
}

// AverageBestMatch implements MatchStrategy.
func (s SemanticMatch) AverageBestMatch(candidates, required []string) float64 {
	return s.Matcher.AverageBestMatch(candidates, required)
}

// ExactTokenOverlap counts only verbatim, case-sensitive token matches.
type ExactTokenOverlap struct{}

// AverageBestMatch implements MatchStrategy.
func (ExactTokenOverlap) AverageBestMatch(candidates, required []string) float64 {
	hits := 0
	for _, r := range required {
		if slices.Contains(candidates, r) {
			hits++
		}
	}
	return float64(hits) / float64(max(len(required), 1))
}

// StrategyFor resolves a strategy by name. Semantic matching uses m.
func StrategyFor(name string, m *similarity.Matcher) (MatchStrategy, error) {
	switch name {
	case "", StrategySemantic:
		if m == nil {
			m = similarity.New()
		}
		return SemanticMatch{Matcher: m}, nil
	case StrategyExact:
		return ExactTokenOverlap{}, nil
	}
	return nil, fmt.Errorf("unknown match strategy %q", name)
}
