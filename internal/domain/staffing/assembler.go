// Package staffing assembles consultant teams for projects.
//
// The Assembler is a greedy selector: each round it scores every admissible
// candidate against the team built so far and appends the best one. It never
// mutates the pool; it returns the state transitions a host must apply to
// commit the team.
package staffing

import (
	"github.com/google/uuid"

	"github.com/okian/consultmatch/internal/domain/model"
	"github.com/okian/consultmatch/internal/domain/scoring"
)

// Option applies a configuration option to the Assembler.
type Option func(*Assembler)

// WithIDGenerator sets the function used to name new assignments.
func WithIDGenerator(gen func() string) Option {
	return func(a *Assembler) {
		if gen != nil {
			a.newID = gen
		}
	}
}

// Result is the outcome of one assembly.
type Result struct {
	Assignment  model.TeamAssignment
	Transitions []model.Transition
	// Considered is the number of pool members available for the project.
	Considered int
}

// Committed returns the assignment as it reads once the transitions are
// applied: every member carries its new availability. The result shares
// no member slices with r.
func (r Result) Committed() model.TeamAssignment {
	to := make(map[string]model.Availability, len(r.Transitions))
	for _, t := range r.Transitions {
		to[t.ConsultantID] = t.To
	}
	out := r.Assignment
	out.Consultants = make([]model.Consultant, len(r.Assignment.Consultants))
	for i, member := range r.Assignment.Consultants {
		member = member.Clone()
		if next, ok := to[member.ID]; ok {
			member.Availability = next
		}
		out.Consultants[i] = member
	}
	return out
}

// Assembler builds teams with a scoring engine.
type Assembler struct {
	scorer scoring.Scorer
	newID  func() string
}

// NewAssembler creates an assembler backed by scorer.
func NewAssembler(scorer scoring.Scorer, opts ...Option) *Assembler {
	a := &Assembler{
		scorer: scorer,
		newID:  uuid.NewString,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Assemble greedily selects a team for p from pool. Ties go to the
// candidate that appears first in pool. An empty or fully conflicting pool
// yields an exhausted, possibly empty, team rather than an error; only an
// invalid project is rejected.
func (a *Assembler) Assemble(p model.Project, pool []model.Consultant) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	candidates := make([]model.Consultant, 0, len(pool))
	for _, c := range pool {
		if a.scorer.IsAvailableFor(c, p.Timeline) {
			candidates = append(candidates, c.Clone())
		}
	}
	considered := len(candidates)

	target := AdjustedTeamSize(p)
	team := make([]model.Consultant, 0, target)
	remaining := candidates
	for len(team) < target && len(remaining) > 0 {
		best, bestScore := -1, 0.0
		for i, c := range remaining {
			if !Admissible(team, c) {
				continue
			}
			score := a.scorer.Score(team, c, p).Total
			if best < 0 || score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			break
		}
		team = append(team, remaining[best])
		remaining = append(remaining[:best:best], remaining[best+1:]...)
	}

	outcome := model.OutcomeComplete
	if len(team) < target {
		outcome = model.OutcomeExhausted
	}

	days, completion := EstimateCompletion(p, len(team))
	assigned := model.Assigned(model.Engagement{
		ProjectID: p.ID,
		Start:     p.Timeline,
		End:       completion,
	})

	transitions := make([]model.Transition, len(team))
	for i, member := range team {
		transitions[i] = model.Transition{
			ConsultantID: member.ID,
			From:         member.Availability,
			To:           assigned,
		}
	}

	return Result{
		Assignment: model.TeamAssignment{
			ID:                  a.newID(),
			Project:             p.Clone(),
			Consultants:         team,
			AdjustedTeamSize:    target,
			Outcome:             outcome,
			ConflictNotes:       ConflictNotes(team, candidates),
			DiversityNotes:      Diversity(team),
			SkillBalanceNotes:   SkillBalance(team, p),
			DurationDays:        days,
			EstimatedCompletion: completion,
		},
		Transitions: transitions,
		Considered:  considered,
	}, nil
}
