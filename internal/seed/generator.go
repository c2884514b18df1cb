package seed

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/okian/consultmatch/internal/adapters/dataset"
	"github.com/okian/consultmatch/internal/domain/model"
)

var (
	firstNames = []string{
		"Alice", "Bob", "Carlos", "Diana", "Eric", "Fatima", "George", "Hana",
		"Ivan", "Julia", "Kwame", "Lena", "Mohammed", "Nora", "Oscar", "Priya",
	}
	lastNames = []string{
		"Johnson", "Smith", "Rodriguez", "Chen", "Williams", "Khan", "Müller",
		"Tanaka", "Okafor", "Rossi", "Novak", "Silva", "Nguyen", "Patel",
	}
	genders    = []string{"Female", "Male", "Non-binary"}
	ethnicities = []string{"Asian", "Caucasian", "Hispanic", "African American", "Middle Eastern", "Mixed"}
	skills     = []string{
		"Python", "Java", "JavaScript", "React", "Node.js", "Go", "SQL",
		"Machine Learning", "Data Analysis", "Cloud Computing", "DevOps",
		"Project Management", "Mobile Development", "UI/UX", "Cybersecurity",
	}
	expertise = []string{
		"AI", "Big Data", "AWS", "Azure", "GCP", "CI/CD", "Android", "iOS",
		"Frontend", "Full Stack", "Team Leadership", "Fintech", "Healthcare",
	}
	projectKinds = []string{
		"AI Implementation", "Cloud Migration", "Mobile App Development",
		"Data Platform", "Web Portal", "Security Audit", "DevOps Pipeline",
	}
	clients = []string{"Acme", "Globex", "Initech", "Umbrella", "Stark", "Wayne"}
)

// Generate builds a dataset from cfg. It is a pure function of cfg.
func Generate(cfg Config) dataset.File {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	consultants := make([]model.Consultant, cfg.Consultants)
	for i := range consultants {
		consultants[i] = generateConsultant(rng, cfg, i)
	}
	addConflicts(rng, consultants, cfg.ConflictRate)

	projects := make([]model.Project, cfg.Projects)
	for i := range projects {
		projects[i] = generateProject(rng, cfg, i)
	}

	return dataset.FromModels(consultants, projects)
}

func generateConsultant(rng *rand.Rand, cfg Config, i int) model.Consultant {
	years := rng.IntN(21)
	c := model.Consultant{
		ID:                consultantID(i),
		Name:              pick(rng, firstNames) + " " + pick(rng, lastNames),
		Skills:            sample(rng, skills, 2+rng.IntN(3)),
		Expertise:         sample(rng, expertise, 1+rng.IntN(3)),
		YearsExperience:   years,
		Preferences:       sample(rng, append(append([]string{}, projectKinds...), skills...), 1+rng.IntN(3)),
		Gender:            pick(rng, genders),
		Ethnicity:         pick(rng, ethnicities),
		PerformanceRating: 1 + rng.IntN(10),
		Workload:          rng.IntN(11) * 10,
		Availability:      model.Available(),
	}

	switch roll := rng.Float64(); {
	case roll < cfg.UnavailableRate:
		c.Availability = model.Unavailable()
	case roll < cfg.UnavailableRate+cfg.AssignedRate:
		start := cfg.Start.AddDate(0, 0, -rng.IntN(120))
		c.Availability = model.Assigned(model.Engagement{
			ProjectID: fmt.Sprintf("EXT-%03d", rng.IntN(1000)),
			Start:     start,
			End:       start.AddDate(0, 0, 30+rng.IntN(180)),
		})
	}
	return c
}

func generateProject(rng *rand.Rand, cfg Config, i int) model.Project {
	difficulty := []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard}
	return model.Project{
		ID:                projectID(i),
		Name:              pick(rng, clients) + " " + pick(rng, projectKinds),
		RequiredSkills:    sample(rng, skills, 2+rng.IntN(2)),
		RequiredExpertise: sample(rng, expertise, 1+rng.IntN(2)),
		Difficulty:        difficulty[rng.IntN(len(difficulty))],
		TeamSize:          1 + rng.IntN(5),
		Timeline:          cfg.Start.AddDate(0, 0, rng.IntN(180)).Truncate(24 * time.Hour),
	}
}

// addConflicts marks random pairs as mutually conflicting.
func addConflicts(rng *rand.Rand, consultants []model.Consultant, rate float64) {
	if rate <= 0 {
		return
	}
	for i := range consultants {
		for j := i + 1; j < len(consultants); j++ {
			if rng.Float64() < rate {
				consultants[i].Conflicts = append(consultants[i].Conflicts, consultants[j].ID)
				consultants[j].Conflicts = append(consultants[j].Conflicts, consultants[i].ID)
			}
		}
	}
}

func consultantID(i int) string { return fmt.Sprintf("C%04d", i+1) }
func projectID(i int) string    { return fmt.Sprintf("P%04d", i+1) }

func pick(rng *rand.Rand, from []string) string {
	return from[rng.IntN(len(from))]
}

// sample returns n distinct items of from in random order.
func sample(rng *rand.Rand, from []string, n int) []string {
	idx := rng.Perm(len(from))
	n = min(n, len(from))
	out := make([]string, n)
	for i := range n {
		out[i] = from[idx[i]]
	}
	return out
}
