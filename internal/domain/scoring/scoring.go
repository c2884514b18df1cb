// Package scoring computes how well a candidate consultant fits a project
// given the team assembled so far.
//
// Five independent sub-scores in [0,1] are combined with immutable weights.
// All functions are pure: they never mutate their inputs.
package scoring

import (
	"time"

	"github.com/okian/consultmatch/internal/domain/model"
	"github.com/okian/consultmatch/internal/domain/similarity"
)

// Default scoring configuration constants.
const (
	defaultReleaseWindow = 14 * 24 * time.Hour
	experienceCapYears   = 10.0
	maxWorkloadPercent   = 100.0

	skillShare      = 0.4
	expertiseShare  = 0.4
	seniorityShare  = 0.2
	maxDemographics = 2.0
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithWeights sets the weights combining the sub-scores.
func WithWeights(w Weights) Option {
	return func(e *Engine) {
		e.weights = w
	}
}

// WithStrategy sets how candidate tokens are matched against requirements.
func WithStrategy(s MatchStrategy) Option {
	return func(e *Engine) {
		if s != nil {
			e.strategy = s
		}
	}
}

// WithReleaseWindow sets how long before the end of an engagement a
// consultant becomes available for a new project.
func WithReleaseWindow(window time.Duration) Option {
	return func(e *Engine) {
		if window >= 0 {
			e.releaseWindow = window
		}
	}
}

// Breakdown holds every sub-score and their weighted total.
type Breakdown struct {
	Experience   float64 `json:"experience"`
	Diversity    float64 `json:"diversity"`
	Demographic  float64 `json:"demographic"`
	Availability float64 `json:"availability"`
	Preference   float64 `json:"preference"`
	Total        float64 `json:"total"`
}

// Scorer is what the team assembler needs from a scoring engine.
type Scorer interface {
	// Score rates candidate c for project p given the current team.
	Score(team []model.Consultant, c model.Consultant, p model.Project) Breakdown
	// IsAvailableFor reports whether c can start on a project at start.
	IsAvailableFor(c model.Consultant, start time.Time) bool
}

// Engine implements Scorer. It is immutable after NewEngine.
type Engine struct {
	weights       Weights
	strategy      MatchStrategy
	releaseWindow time.Duration
}

// NewEngine creates a scoring engine using semantic matching and the
// default weights unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		weights:       DefaultWeights(),
		strategy:      SemanticMatch{Matcher: similarity.New()},
		releaseWindow: defaultReleaseWindow,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Weights returns the weights in use.
func (e *Engine) Weights() Weights { return e.weights }

// Score computes every sub-score for c and their weighted total.
func (e *Engine) Score(team []model.Consultant, c model.Consultant, p model.Project) Breakdown {
	b := Breakdown{
		Experience:   e.Experience(c, p),
		Diversity:    Diversity(team, c),
		Demographic:  Demographic(team, c),
		Availability: e.Availability(c, p.Timeline),
		Preference:   Preference(c, p),
	}
	b.Total = e.weights.Combine(b)
	return b
}

// Experience blends skill fit, expertise fit and seniority.
func (e *Engine) Experience(c model.Consultant, p model.Project) float64 {
	skills := e.strategy.AverageBestMatch(c.Skills, p.RequiredSkills)
	expertise := e.strategy.AverageBestMatch(c.Expertise, p.RequiredExpertise)
	seniority := min(float64(c.YearsExperience)/experienceCapYears, 1)
	return skillShare*skills + expertiseShare*expertise + seniorityShare*seniority
}

// Diversity is the fraction of c's skills that the team does not have yet.
func Diversity(team []model.Consultant, c model.Consultant) float64 {
	if len(team) == 0 {
		return 1
	}
	teamSkills := make(map[string]struct{})
	for _, member := range team {
		for _, s := range member.Skills {
			teamSkills[s] = struct{}{}
		}
	}
	own := setOf(c.Skills)
	fresh := 0
	for s := range own {
		if _, ok := teamSkills[s]; !ok {
			fresh++
		}
	}
	return float64(fresh) / float64(max(len(own), 1))
}

// Demographic rewards candidates whose gender and ethnicity are less
// represented on the team.
func Demographic(team []model.Consultant, c model.Consultant) float64 {
	if len(team) == 0 {
		return 1
	}
	sameGender, sameEthnicity := 0, 0
	for _, member := range team {
		if member.Gender == c.Gender {
			sameGender++
		}
		if member.Ethnicity == c.Ethnicity {
			sameEthnicity++
		}
	}
	size := float64(len(team))
	return ((1 - float64(sameGender)/size) + (1 - float64(sameEthnicity)/size)) / maxDemographics
}

// Availability is zero for consultants who cannot start at start, and
// otherwise their spare capacity.
func (e *Engine) Availability(c model.Consultant, start time.Time) float64 {
	if !e.IsAvailableFor(c, start) {
		return 0
	}
	return 1 - float64(c.Workload)/maxWorkloadPercent
}

// IsAvailableFor reports whether c can start a project on start. Assigned
// consultants are releasable once start falls inside the release window
// before their engagement ends.
func (e *Engine) IsAvailableFor(c model.Consultant, start time.Time) bool {
	switch c.Availability.Status() {
	case model.StatusUnavailable:
		return false
	case model.StatusAssigned:
		engagement, _ := c.Availability.Engagement()
		return !start.Before(engagement.End.Add(-e.releaseWindow))
	default:
		return true
	}
}

// Preference is the share of c's preferences named by the project, either
// as its name or one of its required skills.
func Preference(c model.Consultant, p model.Project) float64 {
	prefs := setOf(c.Preferences)
	wanted := setOf(p.RequiredSkills)
	wanted[p.Name] = struct{}{}
	hits := 0
	for pref := range prefs {
		if _, ok := wanted[pref]; ok {
			hits++
		}
	}
	return float64(hits) / float64(max(len(prefs), 1))
}

func setOf(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}
