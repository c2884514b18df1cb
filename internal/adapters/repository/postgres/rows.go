package postgres

import (
	"database/sql"

	"github.com/lib/pq"

	"github.com/okian/consultmatch/internal/domain/model"
)

type availabilityRow struct {
	Status              string         `db:"status"`
	AssignmentProjectID sql.NullString `db:"assignment_project_id"`
	AssignmentStart     sql.NullTime   `db:"assignment_start"`
	AssignmentEnd       sql.NullTime   `db:"assignment_end"`
}

type consultantRow struct {
	ID                string         `db:"id"`
	Name              string         `db:"name"`
	Skills            pq.StringArray `db:"skills"`
	Expertise         pq.StringArray `db:"expertise"`
	YearsExperience   int            `db:"years_experience"`
	Preferences       pq.StringArray `db:"preferences"`
	Gender            string         `db:"gender"`
	Ethnicity         string         `db:"ethnicity"`
	Conflicts         pq.StringArray `db:"conflicts"`
	PerformanceRating int            `db:"performance_rating"`
	CurrentWorkload   int            `db:"current_workload"`
	availabilityRow
}

type projectRow struct {
	ID                    string         `db:"id"`
	Name                  string         `db:"name"`
	RequiredSkills        pq.StringArray `db:"required_skills"`
	RequiredExpertise     pq.StringArray `db:"required_expertise"`
	Difficulty            string         `db:"difficulty"`
	TeamSize              int            `db:"team_size"`
	Timeline              sql.NullTime   `db:"timeline"`
	EstimatedDurationDays int            `db:"estimated_duration_days"`
	ActualEndDate         sql.NullTime   `db:"actual_end_date"`
}

func fromAvailability(a model.Availability) availabilityRow {
	row := availabilityRow{Status: a.Status().String()}
	if e, ok := a.Engagement(); ok {
		row.AssignmentProjectID = sql.NullString{String: e.ProjectID, Valid: true}
		row.AssignmentStart = sql.NullTime{Time: e.Start, Valid: true}
		row.AssignmentEnd = sql.NullTime{Time: e.End, Valid: true}
	}
	return row
}

func (r availabilityRow) toModel() (model.Availability, error) {
	status, err := model.ParseStatus(r.Status)
	if err != nil {
		return model.Availability{}, err
	}
	switch status {
	case model.StatusAssigned:
		if !r.AssignmentProjectID.Valid || !r.AssignmentStart.Valid || !r.AssignmentEnd.Valid {
			return model.Availability{}, &model.ValidationError{Field: "current_assignment", Reason: "assigned without engagement"}
		}
		return model.Assigned(model.Engagement{
			ProjectID: r.AssignmentProjectID.String,
			Start:     r.AssignmentStart.Time.UTC(),
			End:       r.AssignmentEnd.Time.UTC(),
		}), nil
	case model.StatusUnavailable:
		return model.Unavailable(), nil
	default:
		return model.Available(), nil
	}
}

func fromConsultant(c model.Consultant) consultantRow {
	return consultantRow{
		ID:                c.ID,
		Name:              c.Name,
		Skills:            array(c.Skills),
		Expertise:         array(c.Expertise),
		YearsExperience:   c.YearsExperience,
		Preferences:       array(c.Preferences),
		Gender:            c.Gender,
		Ethnicity:         c.Ethnicity,
		Conflicts:         array(c.Conflicts),
		PerformanceRating: c.PerformanceRating,
		CurrentWorkload:   c.Workload,
		availabilityRow:   fromAvailability(c.Availability),
	}
}

func (r consultantRow) toModel() (model.Consultant, error) {
	availability, err := r.availabilityRow.toModel()
	if err != nil {
		return model.Consultant{}, err
	}
	return model.Consultant{
		ID:                r.ID,
		Name:              r.Name,
		Skills:            []string(r.Skills),
		Expertise:         []string(r.Expertise),
		YearsExperience:   r.YearsExperience,
		Preferences:       []string(r.Preferences),
		Gender:            r.Gender,
		Ethnicity:         r.Ethnicity,
		Conflicts:         []string(r.Conflicts),
		PerformanceRating: r.PerformanceRating,
		Workload:          r.CurrentWorkload,
		Availability:      availability,
	}, nil
}

func fromProject(p model.Project) projectRow {
	return projectRow{
		ID:                    p.ID,
		Name:                  p.Name,
		RequiredSkills:        array(p.RequiredSkills),
		RequiredExpertise:     array(p.RequiredExpertise),
		Difficulty:            p.Difficulty.String(),
		TeamSize:              p.TeamSize,
		Timeline:              sql.NullTime{Time: p.Timeline, Valid: !p.Timeline.IsZero()},
		EstimatedDurationDays: p.EstimatedDurationDays,
		ActualEndDate:         sql.NullTime{Time: p.ActualEndDate, Valid: !p.ActualEndDate.IsZero()},
	}
}

func (r projectRow) toModel() (model.Project, error) {
	difficulty, err := model.ParseDifficulty(r.Difficulty)
	if err != nil {
		return model.Project{}, err
	}
	p := model.Project{
		ID:                    r.ID,
		Name:                  r.Name,
		RequiredSkills:        []string(r.RequiredSkills),
		RequiredExpertise:     []string(r.RequiredExpertise),
		Difficulty:            difficulty,
		TeamSize:              r.TeamSize,
		Timeline:              r.Timeline.Time.UTC(),
		EstimatedDurationDays: r.EstimatedDurationDays,
	}
	if r.ActualEndDate.Valid {
		p.ActualEndDate = r.ActualEndDate.Time.UTC()
	}
	return p, nil
}

// array keeps NOT NULL text[] columns happy for nil slices.
func array(s []string) pq.StringArray {
	if s == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(s)
}
