// Package model contains domain models passed between layers.
package model

import (
	"slices"
	"strings"
)

// Workload and rating bounds.
const (
	maxWorkload = 100
	minRating   = 1
	maxRating   = 10
)

// Consultant is a staffable member of the candidate pool.
type Consultant struct {
	ID                string
	Name              string
	Skills            []string // ordered, matched as a set
	Expertise         []string
	YearsExperience   int
	Preferences       []string
	Gender            string // diversity accounting only
	Ethnicity         string // diversity accounting only
	Conflicts         []string
	PerformanceRating int // 1-10, informational
	Workload          int // percent busy, 0-100
	Availability      Availability
}

// Validate checks the fields the engine relies on.
func (c Consultant) Validate() error {
	switch {
	case strings.TrimSpace(c.ID) == "":
		return invalid("id", "missing consultant id")
	case strings.TrimSpace(c.Name) == "":
		return invalid("name", "missing consultant name")
	case c.YearsExperience < 0:
		return invalid("years_experience", "must not be negative, got %d", c.YearsExperience)
	case c.Workload < 0 || c.Workload > maxWorkload:
		return invalid("current_workload", "must be within 0-100, got %d", c.Workload)
	case c.PerformanceRating != 0 && (c.PerformanceRating < minRating || c.PerformanceRating > maxRating):
		return invalid("performance_rating", "must be within 1-10, got %d", c.PerformanceRating)
	}
	if e, ok := c.Availability.Engagement(); ok {
		if strings.TrimSpace(e.ProjectID) == "" {
			return invalid("current_assignment", "missing project id")
		}
		if e.End.Before(e.Start) {
			return invalid("current_assignment", "end date precedes start date")
		}
	}
	return nil
}

// ConflictsWith reports whether id is listed in c's conflicts.
func (c Consultant) ConflictsWith(id string) bool {
	return slices.Contains(c.Conflicts, id)
}

// Clone returns a copy that shares no slices with c.
func (c Consultant) Clone() Consultant {
	c.Skills = slices.Clone(c.Skills)
	c.Expertise = slices.Clone(c.Expertise)
	c.Preferences = slices.Clone(c.Preferences)
	c.Conflicts = slices.Clone(c.Conflicts)
	return c
}
