package model

import (
	"slices"
	"strings"
	"time"
)

// Project is a staffing request.
type Project struct {
	ID                string
	Name              string
	RequiredSkills    []string
	RequiredExpertise []string
	Difficulty        Difficulty
	TeamSize          int       // nominal size before difficulty adjustment
	Timeline          time.Time // start date

	// Informational only; the engine never reads these.
	EstimatedDurationDays int
	ActualEndDate         time.Time
}

// Validate enforces the engine's input contract.
func (p Project) Validate() error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return invalid("id", "missing project id")
	case strings.TrimSpace(p.Name) == "":
		return invalid("name", "missing project name")
	case len(p.RequiredSkills) == 0:
		return invalid("required_skills", "must not be empty")
	case len(p.RequiredExpertise) == 0:
		return invalid("required_expertise", "must not be empty")
	case !p.Difficulty.Valid():
		return invalid("difficulty", "unknown difficulty")
	case p.TeamSize < 1:
		return invalid("team_size", "must be positive, got %d", p.TeamSize)
	case p.Timeline.IsZero():
		return invalid("timeline", "missing start date")
	}
	return nil
}

// Clone returns a copy that shares no slices with p.
func (p Project) Clone() Project {
	p.RequiredSkills = slices.Clone(p.RequiredSkills)
	p.RequiredExpertise = slices.Clone(p.RequiredExpertise)
	return p
}
