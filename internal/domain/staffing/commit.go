package staffing

import (
	"fmt"

	"github.com/okian/consultmatch/internal/domain/model"
)

// Commit applies transitions to a copy of pool. Every transition is checked
// before any is applied, so either all consultants move or none do.
func Commit(pool []model.Consultant, transitions []model.Transition) ([]model.Consultant, error) {
	index := make(map[string]int, len(pool))
	for i, c := range pool {
		index[c.ID] = i
	}

	for _, t := range transitions {
		i, ok := index[t.ConsultantID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownConsultant, t.ConsultantID)
		}
		if current := pool[i].Availability; !current.Equal(t.From) {
			return nil, fmt.Errorf("%w: %s is %s, expected %s", ErrStaleState, t.ConsultantID, current, t.From)
		}
	}

	out := make([]model.Consultant, len(pool))
	for i, c := range pool {
		out[i] = c.Clone()
	}
	for _, t := range transitions {
		out[index[t.ConsultantID]].Availability = t.To
	}
	return out, nil
}
