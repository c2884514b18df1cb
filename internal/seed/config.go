// Package seed generates synthetic consultant datasets and pushes them to a
// running server.
package seed

import (
	"runtime"
	"time"
)

// Config holds generator and push settings.
type Config struct {
	Consultants int    // number of consultants to generate
	Projects    int    // number of projects to generate
	Seed        uint64 // same seed, same dataset
	Start       time.Time

	// ConflictRate is the chance that any two consultants refuse to work
	// together.
	ConflictRate float64
	// AssignedRate and UnavailableRate split the pool by status.
	AssignedRate    float64
	UnavailableRate float64

	BaseURL string        // server to push to
	Workers int           // concurrent requests
	Timeout time.Duration // per request
	Staff   bool          // request a team for every pushed project
}

// DefaultConfig returns a small, mostly available pool.
func DefaultConfig() Config {
	return Config{
		Consultants:     50,
		Projects:        10,
		Seed:            1,
		Start:           time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		ConflictRate:    0.02,
		AssignedRate:    0.2,
		UnavailableRate: 0.05,
		BaseURL:         "http://localhost:8080",
		Workers:         runtime.NumCPU() * 2,
		Timeout:         30 * time.Second,
	}
}

// Stats holds push counters.
type Stats struct {
	ConsultantsPushed int
	ProjectsPushed    int
	TeamsRequested    int
	TeamsCommitted    int
	TeamsRejected     int
	Failed            int
	Duration          time.Duration
}
