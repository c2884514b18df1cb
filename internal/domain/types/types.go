// Package types contains the wire records exchanged over HTTP, in dataset
// files and in the job queue. Dates are YYYY-MM-DD strings.
package types

import (
	"errors"
	"slices"
	"time"

	"github.com/okian/consultmatch/internal/domain/model"
	"github.com/okian/consultmatch/internal/domain/scoring"
	"github.com/okian/consultmatch/internal/domain/staffing"
)

// Engagement is a consultant's current project.
type Engagement struct {
	ProjectID string `json:"project_id" yaml:"project_id"`
	StartDate string `json:"start_date" yaml:"start_date"`
	EndDate   string `json:"end_date" yaml:"end_date"`
}

// Consultant is the wire form of model.Consultant.
type Consultant struct {
	ID                string      `json:"id" yaml:"id"`
	Name              string      `json:"name" yaml:"name"`
	Skills            []string    `json:"skills" yaml:"skills"`
	Expertise         []string    `json:"expertise" yaml:"expertise"`
	YearsExperience   int         `json:"years_experience" yaml:"years_experience"`
	Preferences       []string    `json:"preferences" yaml:"preferences"`
	Gender            string      `json:"gender" yaml:"gender"`
	Ethnicity         string      `json:"ethnicity" yaml:"ethnicity"`
	Conflicts         []string    `json:"conflicts" yaml:"conflicts"`
	PerformanceRating int         `json:"performance_rating" yaml:"performance_rating"`
	CurrentWorkload   int         `json:"current_workload" yaml:"current_workload"`
	Status            string      `json:"status" yaml:"status"`
	CurrentAssignment *Engagement `json:"current_assignment,omitempty" yaml:"current_assignment,omitempty"`
}

// Project is the wire form of model.Project.
type Project struct {
	ID                    string   `json:"id" yaml:"id"`
	Name                  string   `json:"name" yaml:"name"`
	RequiredSkills        []string `json:"required_skills" yaml:"required_skills"`
	RequiredExpertise     []string `json:"required_expertise" yaml:"required_expertise"`
	Difficulty            string   `json:"difficulty" yaml:"difficulty"`
	TeamSize              int      `json:"team_size" yaml:"team_size"`
	Timeline              string   `json:"timeline" yaml:"timeline"`
	EstimatedDurationDays int      `json:"estimated_duration_days,omitempty" yaml:"estimated_duration_days,omitempty"`
	ActualEndDate         string   `json:"actual_end_date,omitempty" yaml:"actual_end_date,omitempty"`
}

// Assignment is the wire form of model.TeamAssignment.
type Assignment struct {
	ID                      string       `json:"id"`
	ProjectID               string       `json:"project_id"`
	Consultants             []Consultant `json:"consultants"`
	AdjustedTeamSize        int          `json:"adjusted_team_size"`
	Outcome                 string       `json:"outcome"`
	ConflictNotes           []string     `json:"conflict_notes"`
	DiversityNotes          string       `json:"diversity_notes"`
	SkillBalanceNotes       string       `json:"skill_balance_notes"`
	SkillCoverage           float64      `json:"skill_coverage"`
	DurationDays            int          `json:"duration_days"`
	EstimatedCompletionDate string       `json:"estimated_completion_date"`
	Committed               bool         `json:"committed"`
}

// ShortlistEntry is one ranked candidate.
type ShortlistEntry struct {
	Rank         int               `json:"rank"`
	ConsultantID string            `json:"consultant_id"`
	Name         string            `json:"name"`
	Score        float64           `json:"score"`
	Breakdown    scoring.Breakdown `json:"breakdown"`
}

// Job states.
const (
	JobPending   = "pending"
	JobSucceeded = "succeeded"
	JobFailed    = "failed"
)

// Job tracks an asynchronous staffing request.
type Job struct {
	ID          string      `json:"id"`
	ProjectID   string      `json:"project_id"`
	Status      string      `json:"status"`
	Assignment  *Assignment `json:"assignment,omitempty"`
	Error       string      `json:"error,omitempty"`
	SubmittedAt time.Time   `json:"submitted_at"`
	FinishedAt  *time.Time  `json:"finished_at,omitempty"`
}

// ErrAssignmentMismatch is returned when a consultant's status and current
// assignment disagree.
var ErrAssignmentMismatch = errors.New("current_assignment must be present exactly when status is assigned")

// FromConsultant converts a model consultant to its wire form.
func FromConsultant(c model.Consultant) Consultant {
	out := Consultant{
		ID:                c.ID,
		Name:              c.Name,
		Skills:            nonNil(c.Skills),
		Expertise:         nonNil(c.Expertise),
		YearsExperience:   c.YearsExperience,
		Preferences:       nonNil(c.Preferences),
		Gender:            c.Gender,
		Ethnicity:         c.Ethnicity,
		Conflicts:         nonNil(c.Conflicts),
		PerformanceRating: c.PerformanceRating,
		CurrentWorkload:   c.Workload,
		Status:            c.Availability.Status().String(),
	}
	if e, ok := c.Availability.Engagement(); ok {
		out.CurrentAssignment = &Engagement{
			ProjectID: e.ProjectID,
			StartDate: model.FormatDate(e.Start),
			EndDate:   model.FormatDate(e.End),
		}
	}
	return out
}

// ToModel converts and validates a wire consultant. An empty status means
// available.
func (c Consultant) ToModel() (model.Consultant, error) {
	status, err := model.ParseStatus(c.Status)
	if err != nil {
		return model.Consultant{}, err
	}

	var availability model.Availability
	switch {
	case status == model.StatusAssigned && c.CurrentAssignment != nil:
		start, err := model.ParseDate("current_assignment.start_date", c.CurrentAssignment.StartDate)
		if err != nil {
			return model.Consultant{}, err
		}
		end, err := model.ParseDate("current_assignment.end_date", c.CurrentAssignment.EndDate)
		if err != nil {
			return model.Consultant{}, err
		}
		availability = model.Assigned(model.Engagement{
			ProjectID: c.CurrentAssignment.ProjectID,
			Start:     start,
			End:       end,
		})
	case status == model.StatusAssigned || c.CurrentAssignment != nil:
		return model.Consultant{}, &model.ValidationError{Field: "current_assignment", Reason: ErrAssignmentMismatch.Error()}
	case status == model.StatusUnavailable:
		availability = model.Unavailable()
	default:
		availability = model.Available()
	}

	m := model.Consultant{
		ID:                c.ID,
		Name:              c.Name,
		Skills:            slices.Clone(c.Skills),
		Expertise:         slices.Clone(c.Expertise),
		YearsExperience:   c.YearsExperience,
		Preferences:       slices.Clone(c.Preferences),
		Gender:            c.Gender,
		Ethnicity:         c.Ethnicity,
		Conflicts:         slices.Clone(c.Conflicts),
		PerformanceRating: c.PerformanceRating,
		Workload:          c.CurrentWorkload,
		Availability:      availability,
	}
	if err := m.Validate(); err != nil {
		return model.Consultant{}, err
	}
	return m, nil
}

// FromProject converts a model project to its wire form.
func FromProject(p model.Project) Project {
	return Project{
		ID:                    p.ID,
		Name:                  p.Name,
		RequiredSkills:        nonNil(p.RequiredSkills),
		RequiredExpertise:     nonNil(p.RequiredExpertise),
		Difficulty:            p.Difficulty.String(),
		TeamSize:              p.TeamSize,
		Timeline:              model.FormatDate(p.Timeline),
		EstimatedDurationDays: p.EstimatedDurationDays,
		ActualEndDate:         model.FormatDate(p.ActualEndDate),
	}
}

// ToModel converts and validates a wire project.
func (p Project) ToModel() (model.Project, error) {
	difficulty, err := model.ParseDifficulty(p.Difficulty)
	if err != nil {
		return model.Project{}, err
	}
	timeline, err := model.ParseDate("timeline", p.Timeline)
	if err != nil {
		return model.Project{}, err
	}
	m := model.Project{
		ID:                    p.ID,
		Name:                  p.Name,
		RequiredSkills:        slices.Clone(p.RequiredSkills),
		RequiredExpertise:     slices.Clone(p.RequiredExpertise),
		Difficulty:            difficulty,
		TeamSize:              p.TeamSize,
		Timeline:              timeline,
		EstimatedDurationDays: p.EstimatedDurationDays,
	}
	if p.ActualEndDate != "" {
		if m.ActualEndDate, err = model.ParseDate("actual_end_date", p.ActualEndDate); err != nil {
			return model.Project{}, err
		}
	}
	if err := m.Validate(); err != nil {
		return model.Project{}, err
	}
	return m, nil
}

// FromAssignment converts an assignment to its wire form.
func FromAssignment(a model.TeamAssignment, committed bool) Assignment {
	consultants := make([]Consultant, len(a.Consultants))
	for i, c := range a.Consultants {
		consultants[i] = FromConsultant(c)
	}
	return Assignment{
		ID:                      a.ID,
		ProjectID:               a.Project.ID,
		Consultants:             consultants,
		AdjustedTeamSize:        a.AdjustedTeamSize,
		Outcome:                 a.Outcome.String(),
		ConflictNotes:           nonNil(a.ConflictNotes),
		DiversityNotes:          a.DiversityNotes.String(),
		SkillBalanceNotes:       a.SkillBalanceNotes.String(),
		SkillCoverage:           a.SkillBalanceNotes.Coverage,
		DurationDays:            a.DurationDays,
		EstimatedCompletionDate: model.FormatDate(a.EstimatedCompletion),
		Committed:               committed,
	}
}

// FromShortlist converts ranked candidates to wire entries.
func FromShortlist(ranked []staffing.Ranked) []ShortlistEntry {
	out := make([]ShortlistEntry, len(ranked))
	for i, r := range ranked {
		out[i] = ShortlistEntry{
			Rank:         r.Rank,
			ConsultantID: r.Consultant.ID,
			Name:         r.Consultant.Name,
			Score:        r.Breakdown.Total,
			Breakdown:    r.Breakdown,
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
