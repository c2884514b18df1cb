// Package repository defines the consultant and project store and its
// in-memory implementation.
package repository

import (
	"context"

	"github.com/okian/consultmatch/internal/domain/model"
	"github.com/okian/consultmatch/internal/domain/types"
)

// Store provides read/write access to consultants, projects and committed
// assignments.
type Store interface {
	// Consultants returns the pool in insertion order. The order is the
	// assembler's tie-break, so implementations must keep it stable.
	Consultants(ctx context.Context) ([]model.Consultant, error)
	// Consultant returns ErrNotFound if id is unknown.
	Consultant(ctx context.Context, id string) (model.Consultant, error)
	// SaveConsultant inserts or replaces a consultant, keeping its position.
	SaveConsultant(ctx context.Context, c model.Consultant) error

	Projects(ctx context.Context) ([]model.Project, error)
	// Project returns ErrNotFound if id is unknown.
	Project(ctx context.Context, id string) (model.Project, error)
	SaveProject(ctx context.Context, p model.Project) error

	// Commit applies transitions and records the assignment atomically. It
	// fails with staffing.ErrStaleState if any consultant changed since the
	// transitions were computed, and with staffing.ErrUnknownConsultant if
	// one no longer exists. Nothing is written on failure.
	Commit(ctx context.Context, a types.Assignment, transitions []model.Transition) error
	// Assignment returns ErrNotFound if id is unknown.
	Assignment(ctx context.Context, id string) (types.Assignment, error)

	Close() error
}
