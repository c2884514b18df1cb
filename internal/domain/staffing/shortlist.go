package staffing

import (
	"cmp"
	"slices"

	"github.com/okian/consultmatch/internal/domain/model"
	"github.com/okian/consultmatch/internal/domain/scoring"
)

// Ranked is one shortlist entry.
type Ranked struct {
	Rank       int
	Consultant model.Consultant
	Breakdown  scoring.Breakdown
}

// Shortlist ranks the consultants available for p by their score against an
// empty team, best first. Equal scores keep pool order. A non-positive limit
// returns every available consultant.
func Shortlist(scorer scoring.Scorer, p model.Project, pool []model.Consultant, limit int) ([]Ranked, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	ranked := make([]Ranked, 0, len(pool))
	for _, c := range pool {
		if !scorer.IsAvailableFor(c, p.Timeline) {
			continue
		}
		ranked = append(ranked, Ranked{
			Consultant: c.Clone(),
			Breakdown:  scorer.Score(nil, c, p),
		})
	}

	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		return cmp.Compare(b.Breakdown.Total, a.Breakdown.Total)
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}
