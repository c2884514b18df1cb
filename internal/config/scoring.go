package config

import (
	"fmt"
	"time"

	"github.com/okian/consultmatch/internal/domain/scoring"
	"github.com/okian/consultmatch/internal/domain/similarity"
)

const exactMatchScore = 1.0

// Engine builds the scoring engine described by s.
func (s Scoring) Engine() (*scoring.Engine, error) {
	matcher := similarity.New(
		similarity.WithThreshold(s.SimilarityThreshold),
		similarity.WithWeights(exactMatchScore, s.SimilarWeight),
		similarity.WithSynonyms(s.Synonyms),
	)
	strategy, err := scoring.StrategyFor(s.Strategy, matcher)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return scoring.NewEngine(
		scoring.WithWeights(s.Weights),
		scoring.WithStrategy(strategy),
		scoring.WithReleaseWindow(time.Duration(s.ReleaseWindowDays)*24*time.Hour),
	), nil
}
