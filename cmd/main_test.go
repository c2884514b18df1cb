package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/consultmatch/internal/adapters/cli"
	"github.com/okian/consultmatch/internal/adapters/dataset"
	"github.com/okian/consultmatch/internal/config"
	"github.com/okian/consultmatch/internal/domain/types"
	"github.com/okian/consultmatch/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func fixture() dataset.File {
	return dataset.File{
		Consultants: []types.Consultant{
			{
				ID: "C1", Name: "Alice Johnson",
				Skills: []string{"Python", "Data Analysis", "Machine Learning"}, Expertise: []string{"AI", "Big Data"},
				YearsExperience: 8, Preferences: []string{"AI Projects"}, Gender: "Female", Ethnicity: "Asian",
				Conflicts: []string{"C2"}, PerformanceRating: 9, CurrentWorkload: 30, Status: "available",
			},
			{
				ID: "C2", Name: "Bob Smith",
				Skills: []string{"Java", "Project Management", "Cloud Computing"}, Expertise: []string{"AWS"},
				YearsExperience: 12, Preferences: []string{"Cloud Projects"}, Gender: "Male", Ethnicity: "Caucasian",
				Conflicts: []string{"C1"}, PerformanceRating: 8, CurrentWorkload: 50, Status: "available",
			},
			{
				ID: "C3", Name: "Carlos Rodriguez",
				Skills: []string{"Python", "DevOps", "Cloud Computing"}, Expertise: []string{"Azure", "CI/CD"},
				YearsExperience: 5, Preferences: []string{"DevOps"}, Gender: "Male", Ethnicity: "Hispanic",
				PerformanceRating: 7, CurrentWorkload: 40, Status: "available",
			},
		},
		Projects: []types.Project{{
			ID: "P1", Name: "AI Implementation",
			RequiredSkills: []string{"Python", "Machine Learning"}, RequiredExpertise: []string{"AI", "Data Analysis"},
			Difficulty: "hard", TeamSize: 2, Timeline: "2025-03-01",
		}},
	}
}

func run(args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func statuses(f dataset.File) map[string]string {
	m := make(map[string]string, len(f.Consultants))
	for _, c := range f.Consultants {
		m[c.ID] = c.Status
	}
	return m
}

func TestVersionCommand(t *testing.T) {
	Convey("version prints the build version", t, func() {
		out, err := run("version")
		So(err, ShouldBeNil)
		So(out, ShouldContainSubstring, appName+" version: "+version)
	})
}

func TestSeedCommand(t *testing.T) {
	Convey("Given a seed command writing to a file", t, func() {
		path := filepath.Join(t.TempDir(), "pool.yaml")

		_, err := run("seed", "--consultants", "12", "--projects", "3", "--seed", "7", "--out", path)
		So(err, ShouldBeNil)

		Convey("The file holds the requested dataset", func() {
			f, err := dataset.Load(path)
			So(err, ShouldBeNil)
			So(f.Consultants, ShouldHaveLength, 12)
			So(f.Projects, ShouldHaveLength, 3)

			_, _, err = f.Models()
			So(err, ShouldBeNil)
		})

		Convey("An invalid start date is rejected", func() {
			_, err := run("seed", "--out", "", "--start", "March")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestAssignCommand(t *testing.T) {
	Convey("Given a dataset file", t, func() {
		path := filepath.Join(t.TempDir(), "pool.yaml")
		So(dataset.Save(path, fixture()), ShouldBeNil)

		Convey("assign --yes --write commits the team and saves it", func() {
			out, err := run("assign", "--data", path, "--project", "P1", "--yes", "--write", "--shortlist", "3")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "Committed team for P1")
			So(out, ShouldContainSubstring, "Saved "+path)

			f, err := dataset.Load(path)
			So(err, ShouldBeNil)
			So(statuses(f), ShouldResemble, map[string]string{
				"C1": "assigned",
				"C2": "available",
				"C3": "assigned",
			})
		})

		Convey("Declining leaves the dataset untouched", func() {
			var out bytes.Buffer
			err := assign(context.Background(), &out, config.New(), &assignOptions{
				dataFile:  path,
				projectID: "P1",
				write:     true,
				confirmer: cli.AutoConfirm(false),
			})
			So(err, ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "Not committed.")

			f, err := dataset.Load(path)
			So(err, ShouldBeNil)
			So(statuses(f), ShouldResemble, statuses(fixture()))
		})

		Convey("An unknown project fails", func() {
			_, err := run("assign", "--data", path, "--project", "P9", "--yes")
			So(err, ShouldNotBeNil)
		})

		Convey("Missing required flags fail", func() {
			_, err := run("assign", "--data", path)
			So(err, ShouldNotBeNil)
		})
	})
}
