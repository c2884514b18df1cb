package staffing_test

import (
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/okian/consultmatch/internal/domain/model"
	"github.com/okian/consultmatch/internal/domain/scoring"
	"github.com/okian/consultmatch/internal/domain/similarity"
	"github.com/okian/consultmatch/internal/domain/staffing"
	. "github.com/smartystreets/goconvey/convey"
)

func day(s string) time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func pool() []model.Consultant {
	return []model.Consultant{
		{
			ID: "C1", Name: "Alice Johnson",
			Skills:          []string{"Python", "Data Analysis", "Machine Learning"},
			Expertise:       []string{"AI", "Big Data"},
			YearsExperience: 8, Preferences: []string{"AI Projects", "Data Science"},
			Gender: "Female", Ethnicity: "Asian", Conflicts: []string{"C2"},
			PerformanceRating: 9, Workload: 30, Availability: model.Available(),
		},
		{
			ID: "C2", Name: "Bob Smith",
			Skills:          []string{"Java", "Project Management", "Cloud Computing"},
			Expertise:       []string{"AWS", "Team Leadership"},
			YearsExperience: 12, Preferences: []string{"Cloud Projects", "Team Lead"},
			Gender: "Male", Ethnicity: "Caucasian", Conflicts: []string{"C1"},
			PerformanceRating: 8, Workload: 50, Availability: model.Available(),
		},
		{
			ID: "C3", Name: "Carlos Rodriguez",
			Skills:          []string{"Python", "DevOps", "Cloud Computing"},
			Expertise:       []string{"Azure", "CI/CD"},
			YearsExperience: 5, Preferences: []string{"DevOps", "Cloud Projects"},
			Gender: "Male", Ethnicity: "Hispanic",
			PerformanceRating: 7, Workload: 40, Availability: model.Available(),
		},
		{
			ID: "C4", Name: "Diana Chen",
			Skills:          []string{"Java", "Mobile Development", "UI/UX"},
			Expertise:       []string{"Android", "iOS"},
			YearsExperience: 6, Preferences: []string{"Mobile Apps", "UI Design"},
			Gender: "Female", Ethnicity: "Asian", Conflicts: []string{"C5"},
			PerformanceRating: 8, Workload: 60, Availability: model.Available(),
		},
		{
			ID: "C5", Name: "Eric Williams",
			Skills:          []string{"JavaScript", "React", "Node.js"},
			Expertise:       []string{"Frontend", "Full Stack"},
			YearsExperience: 4, Preferences: []string{"Web Development", "Frontend"},
			Gender: "Male", Ethnicity: "African American", Conflicts: []string{"C4"},
			PerformanceRating: 7, Workload: 20, Availability: model.Available(),
		},
	}
}

func aiProject() model.Project {
	return model.Project{
		ID:                "P1",
		Name:              "AI Implementation",
		RequiredSkills:    []string{"Python", "Machine Learning"},
		RequiredExpertise: []string{"AI", "Data Analysis"},
		Difficulty:        model.DifficultyHard,
		TeamSize:          2,
		Timeline:          day("2024-12-31"),
	}
}

func mobileProject() model.Project {
	return model.Project{
		ID:                "P2",
		Name:              "Mobile App Development",
		RequiredSkills:    []string{"Java", "Mobile Development", "UI/UX"},
		RequiredExpertise: []string{"Android", "iOS"},
		Difficulty:        model.DifficultyMedium,
		TeamSize:          2,
		Timeline:          day("2024-10-15"),
	}
}

func subset(all []model.Consultant, ids ...string) []model.Consultant {
	var out []model.Consultant
	for _, c := range all {
		if slices.Contains(ids, c.ID) {
			out = append(out, c)
		}
	}
	return out
}

func fixedID(id string) staffing.Option {
	return staffing.WithIDGenerator(func() string { return id })
}

func TestAdjustedTeamSize(t *testing.T) {
	Convey("Team size scales with difficulty", t, func() {
		p := model.Project{TeamSize: 2, Difficulty: model.DifficultyHard}
		So(staffing.AdjustedTeamSize(p), ShouldEqual, 3)

		p.TeamSize = 3
		So(staffing.AdjustedTeamSize(p), ShouldEqual, 4)

		p.Difficulty = model.DifficultyMedium
		So(staffing.AdjustedTeamSize(p), ShouldEqual, 3)

		p.Difficulty = model.DifficultyEasy
		So(staffing.AdjustedTeamSize(p), ShouldEqual, 2)

		p.TeamSize = 1
		So(staffing.AdjustedTeamSize(p), ShouldEqual, 1)
	})

	Convey("Halves round to even", t, func() {
		hard := map[int]int{1: 2, 3: 4, 5: 8, 7: 10, 11: 16}
		for n, want := range hard {
			p := model.Project{TeamSize: n, Difficulty: model.DifficultyHard}
			So(staffing.AdjustedTeamSize(p), ShouldEqual, want)
		}

		easy := map[int]int{5: 4, 2: 2, 10: 8}
		for n, want := range easy {
			p := model.Project{TeamSize: n, Difficulty: model.DifficultyEasy}
			So(staffing.AdjustedTeamSize(p), ShouldEqual, want)
		}
	})
}

func TestEstimateDuration(t *testing.T) {
	Convey("Duration shrinks with team size down to a floor", t, func() {
		So(staffing.EstimateDuration(model.DifficultyMedium, 1), ShouldEqual, 135)
		So(staffing.EstimateDuration(model.DifficultyHard, 3), ShouldEqual, 162)
		So(staffing.EstimateDuration(model.DifficultyHard, 0), ShouldEqual, 324)
		So(staffing.EstimateDuration(model.DifficultyMedium, 9), ShouldEqual, 75)
		So(staffing.EstimateDuration(model.DifficultyEasy, 27), ShouldEqual, 30)
	})

	Convey("Duration never grows with team size and never drops below the floor", t, func() {
		floors := map[model.Difficulty]int{
			model.DifficultyEasy:   30,
			model.DifficultyMedium: 75,
			model.DifficultyHard:   120,
		}
		for d, floor := range floors {
			prev := staffing.EstimateDuration(d, 0)
			for n := 0; n <= 50; n++ {
				days := staffing.EstimateDuration(d, n)
				So(days, ShouldBeLessThanOrEqualTo, prev)
				So(days, ShouldBeGreaterThanOrEqualTo, floor)
				prev = days
			}
		}
	})

	Convey("Completion is the start plus the duration", t, func() {
		days, end := staffing.EstimateCompletion(aiProject(), 3)
		So(days, ShouldEqual, 162)
		So(end, ShouldEqual, day("2025-06-11"))
	})
}

func TestAdmissible(t *testing.T) {
	Convey("Conflicts exclude in both directions", t, func() {
		team := []model.Consultant{{ID: "A", Conflicts: []string{"B"}}}
		So(staffing.Admissible(team, model.Consultant{ID: "B"}), ShouldBeFalse)
		So(staffing.Admissible(team, model.Consultant{ID: "C", Conflicts: []string{"A"}}), ShouldBeFalse)
		So(staffing.Admissible(team, model.Consultant{ID: "C"}), ShouldBeTrue)
		So(staffing.Admissible(nil, model.Consultant{ID: "B", Conflicts: []string{"A"}}), ShouldBeTrue)
	})
}

func TestAssemble(t *testing.T) {
	Convey("Given a semantic assembler", t, func() {
		asm := staffing.NewAssembler(scoring.NewEngine(), fixedID("A-1"))

		Convey("When staffing a hard AI project from the full pool", func() {
			consultants := pool()
			res, err := asm.Assemble(aiProject(), consultants)
			So(err, ShouldBeNil)
			ids := res.Assignment.MemberIDs()

			Convey("Then the team is scaled up and complete", func() {
				So(res.Assignment.ID, ShouldEqual, "A-1")
				So(res.Assignment.AdjustedTeamSize, ShouldEqual, 3)
				So(ids, ShouldHaveLength, 3)
				So(res.Assignment.Outcome, ShouldEqual, model.OutcomeComplete)
				So(res.Considered, ShouldEqual, 5)
			})

			Convey("Then conflicting consultants are never together", func() {
				So(slices.Contains(ids, "C1") && slices.Contains(ids, "C2"), ShouldBeFalse)
				So(slices.Contains(ids, "C4") && slices.Contains(ids, "C5"), ShouldBeFalse)
				So(res.Assignment.ConflictNotes, ShouldHaveLength, 2)
				So(res.Assignment.ConflictNotes[0], ShouldEqual, "C2 excluded: conflicts with team member C1")
			})

			Convey("Then the team covers the AI expertise", func() {
				m := similarity.New()
				best := 0.0
				for _, c := range res.Assignment.Consultants {
					best = max(best, m.BestMatch(c.Expertise, "AI"))
				}
				So(best, ShouldBeGreaterThanOrEqualTo, 0.8)
				So(ids[0], ShouldEqual, "C1")
			})

			Convey("Then duration and notes are derived from the final team", func() {
				a := res.Assignment
				So(a.DurationDays, ShouldEqual, 162)
				So(a.EstimatedCompletion, ShouldEqual, day("2025-06-11"))
				So(a.DiversityNotes.Gender["Female"]+a.DiversityNotes.Gender["Male"], ShouldEqual, 3)
				So(a.SkillBalanceNotes.Coverage, ShouldEqual, 1.0)
				So(a.SkillBalanceNotes.Counts["Python"], ShouldBeGreaterThanOrEqualTo, 1)
			})

			Convey("Then one transition per member targets the project", func() {
				So(res.Transitions, ShouldHaveLength, 3)
				for i, tr := range res.Transitions {
					So(tr.ConsultantID, ShouldEqual, ids[i])
					So(tr.From.Equal(model.Available()), ShouldBeTrue)
					e, ok := tr.To.Engagement()
					So(ok, ShouldBeTrue)
					So(e.ProjectID, ShouldEqual, "P1")
					So(e.Start, ShouldEqual, day("2024-12-31"))
					So(e.End, ShouldEqual, res.Assignment.EstimatedCompletion)
				}
			})

			Convey("Then the pool is left untouched", func() {
				So(consultants, ShouldResemble, pool())
			})
		})

		Convey("When only mutually conflicting consultants are offered", func() {
			res, err := asm.Assemble(mobileProject(), subset(pool(), "C4", "C5"))
			So(err, ShouldBeNil)

			Convey("Then assembly stops early with one member", func() {
				So(res.Assignment.Consultants, ShouldHaveLength, 1)
				So(res.Assignment.Outcome, ShouldEqual, model.OutcomeExhausted)
				So(res.Assignment.ConflictNotes, ShouldHaveLength, 1)
			})
		})

		Convey("When the pool is empty", func() {
			res, err := asm.Assemble(aiProject(), nil)
			So(err, ShouldBeNil)

			Convey("Then an empty exhausted team is returned", func() {
				So(res.Assignment.Consultants, ShouldBeEmpty)
				So(res.Assignment.Outcome, ShouldEqual, model.OutcomeExhausted)
				So(res.Transitions, ShouldBeEmpty)
				So(res.Assignment.DurationDays, ShouldEqual, 324)
				So(res.Assignment.EstimatedCompletion, ShouldEqual, day("2024-12-31").AddDate(0, 0, 324))
				So(res.Assignment.SkillBalanceNotes.Coverage, ShouldEqual, 0.0)
			})
		})

		Convey("When candidates are unavailable", func() {
			consultants := pool()
			for i := range consultants {
				if consultants[i].ID != "C3" {
					consultants[i].Availability = model.Unavailable()
				}
			}
			res, err := asm.Assemble(aiProject(), consultants)
			So(err, ShouldBeNil)
			So(res.Considered, ShouldEqual, 1)
			So(res.Assignment.MemberIDs(), ShouldResemble, []string{"C3"})
		})

		Convey("When candidates score identically", func() {
			twin := func(id string) model.Consultant {
				return model.Consultant{ID: id, Name: id, Skills: []string{"Python"}, Availability: model.Available()}
			}
			p := aiProject()
			p.Difficulty = model.DifficultyMedium
			p.TeamSize = 1
			res, err := asm.Assemble(p, []model.Consultant{twin("Z"), twin("A"), twin("M")})
			So(err, ShouldBeNil)
			So(res.Assignment.MemberIDs(), ShouldResemble, []string{"Z"})
		})

		Convey("When the project is malformed", func() {
			p := aiProject()
			p.RequiredExpertise = nil
			_, err := asm.Assemble(p, pool())
			So(errors.Is(err, model.ErrValidation), ShouldBeTrue)
		})
	})

	Convey("Given assemblers with generated ids", t, func() {
		asm := staffing.NewAssembler(scoring.NewEngine())
		a, _ := asm.Assemble(aiProject(), nil)
		b, _ := asm.Assemble(aiProject(), nil)
		So(a.Assignment.ID, ShouldNotBeBlank)
		So(a.Assignment.ID, ShouldNotEqual, b.Assignment.ID)
	})
}

func TestCommit(t *testing.T) {
	Convey("Given an assembled AI team", t, func() {
		asm := staffing.NewAssembler(scoring.NewEngine(), fixedID("A-1"))
		consultants := pool()
		res, err := asm.Assemble(aiProject(), consultants)
		So(err, ShouldBeNil)

		Convey("The committed view carries each member's new state", func() {
			committed := res.Committed()
			So(committed.ID, ShouldEqual, "A-1")
			So(len(committed.Consultants), ShouldEqual, len(res.Assignment.Consultants))
			for i, member := range committed.Consultants {
				So(member.ID, ShouldEqual, res.Assignment.Consultants[i].ID)
				So(member.Availability.Status(), ShouldEqual, model.StatusAssigned)
				e, ok := member.Availability.Engagement()
				So(ok, ShouldBeTrue)
				So(e.ProjectID, ShouldEqual, "P1")
				So(e.End.Equal(committed.EstimatedCompletion), ShouldBeTrue)

				So(res.Assignment.Consultants[i].Availability.Status(), ShouldEqual, model.StatusAvailable)
			}
		})

		Convey("When the transitions are committed", func() {
			updated, err := staffing.Commit(consultants, res.Transitions)
			So(err, ShouldBeNil)

			Convey("Then every member is assigned until the estimated completion", func() {
				members := res.Assignment.MemberIDs()
				for _, c := range updated {
					if !slices.Contains(members, c.ID) {
						So(c.Availability.Status(), ShouldEqual, model.StatusAvailable)
						continue
					}
					So(c.Availability.Status(), ShouldEqual, model.StatusAssigned)
					e, _ := c.Availability.Engagement()
					So(e.ProjectID, ShouldEqual, "P1")
					So(e.End, ShouldEqual, res.Assignment.EstimatedCompletion)
				}
			})

			Convey("Then the input pool is unchanged", func() {
				So(consultants, ShouldResemble, pool())
			})

			Convey("Then committing again is refused as stale", func() {
				_, err := staffing.Commit(updated, res.Transitions)
				So(errors.Is(err, staffing.ErrStaleState), ShouldBeTrue)
			})
		})

		Convey("When one member changed in the meantime", func() {
			changed := pool()
			for i := range changed {
				if changed[i].ID == res.Transitions[len(res.Transitions)-1].ConsultantID {
					changed[i].Availability = model.Unavailable()
				}
			}
			updated, err := staffing.Commit(changed, res.Transitions)

			Convey("Then nothing is committed", func() {
				So(errors.Is(err, staffing.ErrStaleState), ShouldBeTrue)
				So(updated, ShouldBeNil)
			})
		})

		Convey("When a member is missing from the pool", func() {
			_, err := staffing.Commit(subset(pool(), "C2"), res.Transitions)
			So(errors.Is(err, staffing.ErrUnknownConsultant), ShouldBeTrue)
		})
	})
}

func TestShortlist(t *testing.T) {
	Convey("Given the full pool", t, func() {
		engine := scoring.NewEngine()

		Convey("The shortlist is ranked best first", func() {
			ranked, err := staffing.Shortlist(engine, aiProject(), pool(), 0)
			So(err, ShouldBeNil)
			So(ranked, ShouldHaveLength, 5)
			So(ranked[0].Consultant.ID, ShouldEqual, "C1")
			for i := 1; i < len(ranked); i++ {
				So(ranked[i].Rank, ShouldEqual, i+1)
				So(ranked[i-1].Breakdown.Total, ShouldBeGreaterThanOrEqualTo, ranked[i].Breakdown.Total)
			}
		})

		Convey("The limit truncates the list", func() {
			ranked, err := staffing.Shortlist(engine, aiProject(), pool(), 2)
			So(err, ShouldBeNil)
			So(ranked, ShouldHaveLength, 2)
			So(ranked[1].Rank, ShouldEqual, 2)
		})

		Convey("Unavailable consultants are left out", func() {
			consultants := pool()
			consultants[0].Availability = model.Unavailable()
			ranked, err := staffing.Shortlist(engine, aiProject(), consultants, 10)
			So(err, ShouldBeNil)
			So(ranked, ShouldHaveLength, 4)
			for _, r := range ranked {
				So(r.Consultant.ID, ShouldNotEqual, "C1")
			}
		})
	})
}

func TestReports(t *testing.T) {
	Convey("Notes summarize the team", t, func() {
		team := subset(pool(), "C1", "C3")
		balance := staffing.SkillBalance(team, aiProject())
		So(balance.Coverage, ShouldEqual, 1.0)
		So(balance.Counts["Python"], ShouldEqual, 2)
		So(balance.String(), ShouldStartWith, "Team covers 100.0% of required skills.")

		Convey("Every occurrence counts, including repeats", func() {
			team := []model.Consultant{
				{ID: "A", Skills: []string{"Go", "Go", "SQL"}},
				{ID: "B", Skills: []string{"Go"}},
			}
			p := model.Project{RequiredSkills: []string{"Go", "Go", "Rust"}}
			balance := staffing.SkillBalance(team, p)
			So(balance.Counts["Go"], ShouldEqual, 3)
			So(balance.Counts["SQL"], ShouldEqual, 1)
			So(balance.Coverage, ShouldAlmostEqual, 2.0/3.0)
		})

		diversity := staffing.Diversity(team)
		So(diversity.String(), ShouldEqual, fmt.Sprintf(
			"Gender distribution: %s, Ethnicity distribution: %s",
			"{Female=1, Male=1}", "{Asian=1, Hispanic=1}"))
	})
}
