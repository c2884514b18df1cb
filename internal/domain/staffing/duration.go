package staffing

import (
	"math"
	"time"

	"github.com/okian/consultmatch/internal/domain/model"
)

type durationProfile struct {
	baseDays int
	modifier float64
	minDays  int
}

var durationProfiles = map[model.Difficulty]durationProfile{
	model.DifficultyEasy:   {baseDays: 45, modifier: 0.2, minDays: 30},
	model.DifficultyMedium: {baseDays: 90, modifier: 0.5, minDays: 75},
	model.DifficultyHard:   {baseDays: 180, modifier: 0.8, minDays: 120},
}

// EstimateDuration returns the number of days a team of teamSize needs for
// a project of the given difficulty. Larger teams finish sooner with
// logarithmically diminishing returns, down to a per-difficulty floor.
func EstimateDuration(d model.Difficulty, teamSize int) int {
	profile, ok := durationProfiles[d]
	if !ok {
		profile = durationProfiles[model.DifficultyMedium]
	}
	teamFactor := 1 / (1 + math.Log(float64(max(teamSize, 1)))/math.Log(3))
	days := int(math.Floor(float64(profile.baseDays) * (1 + profile.modifier) * teamFactor))
	return max(days, profile.minDays)
}

// EstimateCompletion returns the project start plus the estimated duration.
func EstimateCompletion(p model.Project, teamSize int) (int, time.Time) {
	days := EstimateDuration(p.Difficulty, teamSize)
	return days, p.Timeline.AddDate(0, 0, days)
}
