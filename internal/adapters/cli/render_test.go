package cli_test

import (
	"testing"

	"github.com/okian/consultmatch/internal/adapters/cli"
	"github.com/okian/consultmatch/internal/domain/scoring"
	"github.com/okian/consultmatch/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRenderAssignment(t *testing.T) {
	Convey("Given an exhausted assignment with a conflict", t, func() {
		a := types.Assignment{
			ID:                      "A1",
			ProjectID:               "P1",
			Consultants:             []types.Consultant{{ID: "C1", Name: "Alice Johnson", YearsExperience: 8}},
			AdjustedTeamSize:        3,
			Outcome:                 "exhausted",
			ConflictNotes:           []string{"C2 excluded: conflicts with team member C1"},
			DurationDays:            198,
			EstimatedCompletionDate: "2025-07-17",
		}

		out := cli.RenderAssignment(a)

		Convey("The summary names the project, members and conflicts", func() {
			So(out, ShouldContainSubstring, "Proposed team for P1")
			So(out, ShouldContainSubstring, "1 of 3")
			So(out, ShouldContainSubstring, "Alice Johnson")
			So(out, ShouldContainSubstring, "exhausted")
			So(out, ShouldContainSubstring, "C2 excluded")
		})

		Convey("A committed assignment says so", func() {
			a.Committed = true
			So(cli.RenderAssignment(a), ShouldContainSubstring, "Committed team for P1")
		})
	})
}

func TestRenderShortlist(t *testing.T) {
	Convey("Shortlists list every entry in rank order", t, func() {
		out := cli.RenderShortlist("P1", []types.ShortlistEntry{
			{Rank: 1, ConsultantID: "C1", Name: "Alice", Score: 0.75, Breakdown: scoring.Breakdown{Total: 0.75}},
			{Rank: 2, ConsultantID: "C3", Name: "Carlos", Score: 0.5},
		})
		So(out, ShouldContainSubstring, "Shortlist for P1")
		So(out, ShouldContainSubstring, "0.750")
		So(out, ShouldContainSubstring, "C3")
	})

	Convey("An empty shortlist says so", t, func() {
		So(cli.RenderShortlist("P1", nil), ShouldContainSubstring, "no available consultants")
	})
}

func TestAutoConfirm(t *testing.T) {
	Convey("AutoConfirm returns its value", t, func() {
		ok, err := cli.AutoConfirm(true).Confirm("commit?")
		So(err, ShouldBeNil)
		So(ok, ShouldBeTrue)

		ok, err = cli.AutoConfirm(false).Confirm("commit?")
		So(err, ShouldBeNil)
		So(ok, ShouldBeFalse)
	})
}
