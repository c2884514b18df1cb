package staffing

import (
	"math"

	"github.com/okian/consultmatch/internal/domain/model"
)

// AdjustedTeamSize scales the requested team size by difficulty. Halves
// round to even, so Hard 3 gives 4 and Hard 5 gives 8.
func AdjustedTeamSize(p model.Project) int {
	switch p.Difficulty {
	case model.DifficultyHard:
		return int(math.RoundToEven(float64(p.TeamSize) * 1.5))
	case model.DifficultyEasy:
		return max(int(math.RoundToEven(float64(p.TeamSize)*0.8)), 1)
	default:
		return p.TeamSize
	}
}
