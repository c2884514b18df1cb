package staffing

import "github.com/okian/consultmatch/internal/domain/model"

// Admissible reports whether c can join team. Conflicts are symmetric:
// either side declaring the other is enough to exclude.
func Admissible(team []model.Consultant, c model.Consultant) bool {
	return conflictingMember(team, c) == ""
}

func conflictingMember(team []model.Consultant, c model.Consultant) string {
	for _, member := range team {
		if c.ConflictsWith(member.ID) || member.ConflictsWith(c.ID) {
			return member.ID
		}
	}
	return ""
}
