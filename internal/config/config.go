// Package config defines service configuration structures and loading hooks.
package config

import (
	"fmt"
	"runtime"
	"slices"

	"github.com/okian/consultmatch/internal/domain/scoring"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogJSON switches log output to JSON.
	LogJSON bool `koanf:"log_json"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Store selects the persistence backend: memory or postgres.
	Store string `koanf:"store"`

	// DatabaseURL is the postgres connection string.
	DatabaseURL string `koanf:"database_url"`

	// DataFile optionally preloads the memory store from a YAML dataset.
	DataFile string `koanf:"data_file"`

	// QueueSize bounds the async staffing queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of staffing workers.
	WorkerCount int `koanf:"worker_count"`

	// IdempotencySize bounds the number of remembered Idempotency-Key values.
	IdempotencySize int `koanf:"idempotency_size"`

	// MaxShortlistLimit caps GET /projects/{id}/shortlist?limit.
	MaxShortlistLimit int `koanf:"max_shortlist_limit"`

	// CORSOrigins lists the origins allowed to call the API.
	CORSOrigins []string `koanf:"cors_origins"`

	Scoring Scoring `koanf:"scoring"`
}

// Scoring configures the scoring engine.
type Scoring struct {
	// Strategy is semantic or exact.
	Strategy string `koanf:"strategy"`

	// ReleaseWindowDays is how long before an engagement ends its consultant
	// can be staffed again.
	ReleaseWindowDays int `koanf:"release_window_days"`

	// SimilarityThreshold is the minimum edit-distance ratio for a fuzzy match.
	SimilarityThreshold float64 `koanf:"similarity_threshold"`

	// SimilarWeight scales fuzzy matches below an exact match.
	SimilarWeight float64 `koanf:"similar_weight"`

	// Synonyms adds abbreviation expansions, e.g. golang: go.
	Synonyms map[string]string `koanf:"synonyms"`

	Weights scoring.Weights `koanf:"weights"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":8080",
		Store:             StoreMemory,
		QueueSize:         1024,
		WorkerCount:       runtime.NumCPU(),
		IdempotencySize:   10_000,
		MaxShortlistLimit: 50,
		CORSOrigins:       []string{"*"},
		Scoring: Scoring{
			Strategy:            scoring.StrategySemantic,
			ReleaseWindowDays:   14,
			SimilarityThreshold: 0.8,
			SimilarWeight:       0.7,
			Weights:             scoring.DefaultWeights(),
		},
	}
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case !slices.Contains([]string{StoreMemory, StorePostgres}, c.Store):
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.Store)
	case c.Store == StorePostgres && c.DatabaseURL == "":
		return fmt.Errorf("%w: database_url is required for the postgres store", ErrInvalidConfig)
	case c.QueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.MaxShortlistLimit <= 0:
		return fmt.Errorf("%w: max_shortlist_limit must be positive", ErrInvalidConfig)
	case c.Scoring.ReleaseWindowDays < 0:
		return fmt.Errorf("%w: release_window_days must not be negative", ErrInvalidConfig)
	case c.Scoring.SimilarityThreshold <= 0 || c.Scoring.SimilarityThreshold > 1:
		return fmt.Errorf("%w: similarity_threshold must be within (0, 1]", ErrInvalidConfig)
	case !slices.Contains([]string{scoring.StrategySemantic, scoring.StrategyExact}, c.Scoring.Strategy):
		return fmt.Errorf("%w: unknown scoring strategy %q", ErrInvalidConfig, c.Scoring.Strategy)
	}
	if err := c.Scoring.Weights.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
