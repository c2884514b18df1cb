package model

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

// Outcome says whether assembly reached the adjusted team size.
type Outcome int

// Assembly outcomes.
const (
	OutcomeComplete Outcome = iota
	OutcomeExhausted
)

func (o Outcome) String() string {
	if o == OutcomeExhausted {
		return "exhausted"
	}
	return "complete"
}

// SkillBalanceNotes describes how the team covers the required skills.
type SkillBalanceNotes struct {
	Coverage float64        // fraction of required skills present, exact match
	Counts   map[string]int // occurrences of each skill across the team
}

func (n SkillBalanceNotes) String() string {
	return fmt.Sprintf("Team covers %.1f%% of required skills. Skill distribution: %s",
		n.Coverage*100, formatCounts(n.Counts))
}

// DiversityNotes counts team members per gender and ethnicity.
type DiversityNotes struct {
	Gender    map[string]int
	Ethnicity map[string]int
}

func (n DiversityNotes) String() string {
	return fmt.Sprintf("Gender distribution: %s, Ethnicity distribution: %s",
		formatCounts(n.Gender), formatCounts(n.Ethnicity))
}

// TeamAssignment is the immutable result of one assembly call.
type TeamAssignment struct {
	ID                  string
	Project             Project
	Consultants         []Consultant // selection order, state as selected
	AdjustedTeamSize    int
	Outcome             Outcome
	ConflictNotes       []string
	DiversityNotes      DiversityNotes
	SkillBalanceNotes   SkillBalanceNotes
	DurationDays        int
	EstimatedCompletion time.Time
}

// MemberIDs returns the consultant ids in selection order.
func (a TeamAssignment) MemberIDs() []string {
	ids := make([]string, len(a.Consultants))
	for i, c := range a.Consultants {
		ids[i] = c.ID
	}
	return ids
}

// Transition moves one consultant from one availability state to another.
// From is the state observed when the team was assembled; hosts must refuse
// to apply the transition if the stored state has changed since.
type Transition struct {
	ConsultantID string
	From         Availability
	To           Availability
}

func formatCounts(counts map[string]int) string {
	keys := slices.Sorted(maps.Keys(counts))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, counts[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
