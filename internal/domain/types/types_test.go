package types_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/okian/consultmatch/internal/domain/model"
	"github.com/okian/consultmatch/internal/domain/scoring"
	"github.com/okian/consultmatch/internal/domain/staffing"
	"github.com/okian/consultmatch/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestConsultantToModel(t *testing.T) {
	Convey("Given a wire consultant", t, func() {
		c := types.Consultant{
			ID: "C1", Name: "Alice", Skills: []string{"Python"},
			YearsExperience: 8, CurrentWorkload: 30, PerformanceRating: 9,
		}

		Convey("When the status is empty", func() {
			m, err := c.ToModel()

			Convey("Then the consultant is available", func() {
				So(err, ShouldBeNil)
				So(m.Availability.Status(), ShouldEqual, model.StatusAvailable)
				So(m.Workload, ShouldEqual, 30)
			})
		})

		Convey("When the consultant is assigned with an engagement", func() {
			c.Status = "Assigned"
			c.CurrentAssignment = &types.Engagement{ProjectID: "P0", StartDate: "2025-01-01", EndDate: "2025-03-01"}
			m, err := c.ToModel()

			Convey("Then the engagement is carried over", func() {
				So(err, ShouldBeNil)
				e, ok := m.Availability.Engagement()
				So(ok, ShouldBeTrue)
				So(e.ProjectID, ShouldEqual, "P0")
				So(model.FormatDate(e.End), ShouldEqual, "2025-03-01")
			})

			Convey("Then converting back yields the same record", func() {
				So(types.FromConsultant(m).CurrentAssignment, ShouldResemble, c.CurrentAssignment)
				So(types.FromConsultant(m).Status, ShouldEqual, "assigned")
			})
		})

		Convey("When status and engagement disagree", func() {
			c.Status = "assigned"
			_, errMissing := c.ToModel()

			c.Status = "available"
			c.CurrentAssignment = &types.Engagement{ProjectID: "P0", StartDate: "2025-01-01", EndDate: "2025-03-01"}
			_, errExtra := c.ToModel()

			Convey("Then both are rejected", func() {
				So(errors.Is(errMissing, model.ErrValidation), ShouldBeTrue)
				So(errors.Is(errExtra, model.ErrValidation), ShouldBeTrue)
			})
		})

		Convey("When dates or ranges are malformed", func() {
			bad := c
			bad.Status = "assigned"
			bad.CurrentAssignment = &types.Engagement{ProjectID: "P0", StartDate: "01/01/2025", EndDate: "2025-03-01"}
			_, errDate := bad.ToModel()

			workload := c
			workload.CurrentWorkload = 120
			_, errWorkload := workload.ToModel()

			status := c
			status.Status = "on-leave"
			_, errStatus := status.ToModel()

			Convey("Then validation errors are returned", func() {
				So(errors.Is(errDate, model.ErrValidation), ShouldBeTrue)
				So(errors.Is(errWorkload, model.ErrValidation), ShouldBeTrue)
				So(errors.Is(errStatus, model.ErrValidation), ShouldBeTrue)
			})
		})
	})
}

func TestProjectToModel(t *testing.T) {
	Convey("Given a wire project", t, func() {
		p := types.Project{
			ID: "P1", Name: "AI Implementation",
			RequiredSkills: []string{"Python"}, RequiredExpertise: []string{"AI"},
			Difficulty: "hard", TeamSize: 2, Timeline: "2024-12-31",
		}

		Convey("Valid input converts", func() {
			m, err := p.ToModel()
			So(err, ShouldBeNil)
			So(m.Difficulty, ShouldEqual, model.DifficultyHard)
			So(types.FromProject(m).Difficulty, ShouldEqual, "Hard")
			So(types.FromProject(m).Timeline, ShouldEqual, "2024-12-31")
		})

		Convey("Unknown difficulty is rejected", func() {
			p.Difficulty = "extreme"
			_, err := p.ToModel()
			var verr *model.ValidationError
			So(errors.As(err, &verr), ShouldBeTrue)
			So(verr.Field, ShouldEqual, "difficulty")
		})

		Convey("Missing timeline is rejected", func() {
			p.Timeline = ""
			_, err := p.ToModel()
			So(errors.Is(err, model.ErrValidation), ShouldBeTrue)
		})
	})
}

func TestAssignmentJSON(t *testing.T) {
	Convey("Given an assembled empty team", t, func() {
		p, err := types.Project{
			ID: "P1", Name: "X", RequiredSkills: []string{"Go"}, RequiredExpertise: []string{"Backend"},
			Difficulty: "medium", TeamSize: 1, Timeline: "2025-01-01",
		}.ToModel()
		So(err, ShouldBeNil)

		asm := staffing.NewAssembler(scoring.NewEngine(), staffing.WithIDGenerator(func() string { return "A-1" }))
		res, err := asm.Assemble(p, nil)
		So(err, ShouldBeNil)

		Convey("The wire form uses empty lists and calendar dates", func() {
			raw, err := json.Marshal(types.FromAssignment(res.Assignment, false))
			So(err, ShouldBeNil)
			s := string(raw)
			So(s, ShouldContainSubstring, `"consultants":[]`)
			So(s, ShouldContainSubstring, `"conflict_notes":[]`)
			So(s, ShouldContainSubstring, `"outcome":"exhausted"`)
			So(s, ShouldContainSubstring, `"estimated_completion_date":"2025-05-16"`)
		})
	})

	Convey("Shortlist entries expose the total score", t, func() {
		entries := types.FromShortlist([]staffing.Ranked{{
			Rank: 1, Consultant: model.Consultant{ID: "C1", Name: "Alice"},
			Breakdown: scoring.Breakdown{Total: 0.7},
		}})
		So(entries, ShouldHaveLength, 1)
		So(entries[0].Score, ShouldEqual, 0.7)
		So(entries[0].ConsultantID, ShouldEqual, "C1")
	})
}
