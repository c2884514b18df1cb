package staffing

import (
	"fmt"

	"github.com/okian/consultmatch/internal/domain/model"
)

// SkillBalance reports which share of the required skills the team has,
// by exact name, and how often each skill occurs across members.
func SkillBalance(team []model.Consultant, p model.Project) model.SkillBalanceNotes {
	counts := make(map[string]int)
	for _, member := range team {
		for _, s := range member.Skills {
			counts[s]++
		}
	}

	covered := 0
	for _, s := range p.RequiredSkills {
		if counts[s] > 0 {
			covered++
		}
	}

	return model.SkillBalanceNotes{
		Coverage: float64(covered) / float64(max(len(p.RequiredSkills), 1)),
		Counts:   counts,
	}
}

// Diversity counts team members per gender and ethnicity.
func Diversity(team []model.Consultant) model.DiversityNotes {
	notes := model.DiversityNotes{
		Gender:    make(map[string]int),
		Ethnicity: make(map[string]int),
	}
	for _, member := range team {
		notes.Gender[member.Gender]++
		notes.Ethnicity[member.Ethnicity]++
	}
	return notes
}

// ConflictNotes lists every unselected candidate that was kept out because
// of a conflict with a team member.
func ConflictNotes(team, candidates []model.Consultant) []string {
	selected := make(map[string]struct{}, len(team))
	for _, member := range team {
		selected[member.ID] = struct{}{}
	}

	var notes []string
	for _, c := range candidates {
		if _, ok := selected[c.ID]; ok {
			continue
		}
		if other := conflictingMember(team, c); other != "" {
			notes = append(notes, fmt.Sprintf("%s excluded: conflicts with team member %s", c.ID, other))
		}
	}
	return notes
}
