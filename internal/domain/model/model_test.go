package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/consultmatch/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func date(s string) time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseDifficulty(t *testing.T) {
	Convey("Given difficulty names", t, func() {
		Convey("When the name is known in any case", func() {
			for in, want := range map[string]model.Difficulty{
				"easy":     model.DifficultyEasy,
				"MEDIUM":   model.DifficultyMedium,
				" Hard ":   model.DifficultyHard,
				"hArD":     model.DifficultyHard,
				"Easy":     model.DifficultyEasy,
				"medium\n": model.DifficultyMedium,
			} {
				got, err := model.ParseDifficulty(in)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, want)
			}
		})

		Convey("When the name is unknown", func() {
			_, err := model.ParseDifficulty("expert")

			Convey("Then it is rejected instead of defaulting to Medium", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, model.ErrValidation), ShouldBeTrue)
				var ve *model.ValidationError
				So(errors.As(err, &ve), ShouldBeTrue)
				So(ve.Field, ShouldEqual, "difficulty")
			})
		})
	})
}

func TestParseDate(t *testing.T) {
	Convey("Given date strings", t, func() {
		Convey("A calendar date parses", func() {
			d, err := model.ParseDate("timeline", "2024-12-31")
			So(err, ShouldBeNil)
			So(model.FormatDate(d), ShouldEqual, "2024-12-31")
		})

		Convey("An impossible date is a validation error", func() {
			_, err := model.ParseDate("timeline", "2024-02-30")
			So(errors.Is(err, model.ErrValidation), ShouldBeTrue)
		})

		Convey("An empty date is a validation error", func() {
			_, err := model.ParseDate("timeline", "")
			So(errors.Is(err, model.ErrValidation), ShouldBeTrue)
		})
	})
}

func TestAvailability(t *testing.T) {
	Convey("Given availability states", t, func() {
		engagement := model.Engagement{ProjectID: "P1", Start: date("2024-01-01"), End: date("2024-03-01")}

		Convey("The zero value is available without an engagement", func() {
			var a model.Availability
			_, ok := a.Engagement()
			So(a.Status(), ShouldEqual, model.StatusAvailable)
			So(ok, ShouldBeFalse)
		})

		Convey("Only the assigned state carries an engagement", func() {
			a := model.Assigned(engagement)
			e, ok := a.Engagement()
			So(ok, ShouldBeTrue)
			So(e.ProjectID, ShouldEqual, "P1")

			_, ok = model.Unavailable().Engagement()
			So(ok, ShouldBeFalse)
		})

		Convey("Equality compares engagement dates", func() {
			other := engagement
			other.End = date("2024-03-02")
			So(model.Assigned(engagement).Equal(model.Assigned(engagement)), ShouldBeTrue)
			So(model.Assigned(engagement).Equal(model.Assigned(other)), ShouldBeFalse)
			So(model.Available().Equal(model.Unavailable()), ShouldBeFalse)
		})
	})
}

func TestProjectValidate(t *testing.T) {
	Convey("Given a well-formed project", t, func() {
		p := model.Project{
			ID:                "P1",
			Name:              "AI Implementation",
			RequiredSkills:    []string{"Python"},
			RequiredExpertise: []string{"AI"},
			Difficulty:        model.DifficultyHard,
			TeamSize:          2,
			Timeline:          date("2024-12-31"),
		}
		So(p.Validate(), ShouldBeNil)

		Convey("Empty required skills are rejected", func() {
			p.RequiredSkills = nil
			So(errors.Is(p.Validate(), model.ErrValidation), ShouldBeTrue)
		})

		Convey("Empty required expertise is rejected", func() {
			p.RequiredExpertise = []string{}
			So(errors.Is(p.Validate(), model.ErrValidation), ShouldBeTrue)
		})

		Convey("An unknown difficulty is rejected", func() {
			p.Difficulty = model.DifficultyUnknown
			So(errors.Is(p.Validate(), model.ErrValidation), ShouldBeTrue)
		})

		Convey("A non-positive team size is rejected", func() {
			p.TeamSize = 0
			So(errors.Is(p.Validate(), model.ErrValidation), ShouldBeTrue)
		})
	})
}

func TestConsultantValidate(t *testing.T) {
	Convey("Given a consultant", t, func() {
		c := model.Consultant{ID: "C1", Name: "Alice", Workload: 30, PerformanceRating: 9}
		So(c.Validate(), ShouldBeNil)

		Convey("Workload outside 0-100 is rejected", func() {
			c.Workload = 120
			So(errors.Is(c.Validate(), model.ErrValidation), ShouldBeTrue)
		})

		Convey("An engagement ending before it starts is rejected", func() {
			c.Availability = model.Assigned(model.Engagement{ProjectID: "P9", Start: date("2024-05-01"), End: date("2024-04-01")})
			So(errors.Is(c.Validate(), model.ErrValidation), ShouldBeTrue)
		})

		Convey("Clone does not share slices", func() {
			c.Skills = []string{"Go"}
			clone := c.Clone()
			clone.Skills[0] = "Rust"
			So(c.Skills[0], ShouldEqual, "Go")
		})
	})
}

func TestNotesFormatting(t *testing.T) {
	Convey("Given derived notes", t, func() {
		Convey("Skill balance lists counts in key order", func() {
			n := model.SkillBalanceNotes{Coverage: 0.5, Counts: map[string]int{"Python": 2, "Java": 1}}
			So(n.String(), ShouldEqual, "Team covers 50.0% of required skills. Skill distribution: {Java=1, Python=2}")
		})

		Convey("Diversity notes list both distributions", func() {
			n := model.DiversityNotes{Gender: map[string]int{"Female": 1}, Ethnicity: map[string]int{"Asian": 1}}
			So(n.String(), ShouldEqual, "Gender distribution: {Female=1}, Ethnicity distribution: {Asian=1}")
		})
	})
}
