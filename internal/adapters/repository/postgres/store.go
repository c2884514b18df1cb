// Package postgres implements repository.Store on PostgreSQL with sqlx.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver

	"github.com/okian/consultmatch/internal/adapters/repository"
	"github.com/okian/consultmatch/internal/domain/model"
	"github.com/okian/consultmatch/internal/domain/staffing"
	"github.com/okian/consultmatch/internal/domain/types"
	"github.com/okian/consultmatch/pkg/metrics"
)

// Store is a repository.Store backed by PostgreSQL.
type Store struct {
	db *sqlx.DB
}

var _ repository.Store = (*Store)(nil)

// Open connects to url and verifies the connection.
func Open(ctx context.Context, url string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return New(db), nil
}

// New wraps an existing connection pool.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func observe(operation string, start time.Time) {
	metrics.RecordRepositoryLatency(operation, float64(time.Since(start).Microseconds())/1000)
}

// Consultants implements repository.Store.
func (s *Store) Consultants(ctx context.Context) ([]model.Consultant, error) {
	defer observe("consultants", time.Now())

	var rows []consultantRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT `+consultantColumns+` FROM consultants ORDER BY seq`); err != nil {
		return nil, fmt.Errorf("list consultants: %w", err)
	}
	out := make([]model.Consultant, 0, len(rows))
	for _, r := range rows {
		c, err := r.toModel()
		if err != nil {
			return nil, fmt.Errorf("consultant %s: %w", r.ID, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// Consultant implements repository.Store.
func (s *Store) Consultant(ctx context.Context, id string) (model.Consultant, error) {
	defer observe("consultant", time.Now())

	var row consultantRow
	err := s.db.GetContext(ctx, &row, `SELECT `+consultantColumns+` FROM consultants WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Consultant{}, fmt.Errorf("consultant %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return model.Consultant{}, fmt.Errorf("get consultant: %w", err)
	}
	return row.toModel()
}

// SaveConsultant implements repository.Store.
func (s *Store) SaveConsultant(ctx context.Context, c model.Consultant) error {
	defer observe("save_consultant", time.Now())

	if _, err := s.db.NamedExecContext(ctx, upsertConsultant, fromConsultant(c)); err != nil {
		return fmt.Errorf("save consultant: %w", err)
	}
	return nil
}

// Projects implements repository.Store.
func (s *Store) Projects(ctx context.Context) ([]model.Project, error) {
	defer observe("projects", time.Now())

	var rows []projectRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT `+projectColumns+` FROM projects ORDER BY seq`); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	out := make([]model.Project, 0, len(rows))
	for _, r := range rows {
		p, err := r.toModel()
		if err != nil {
			return nil, fmt.Errorf("project %s: %w", r.ID, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// Project implements repository.Store.
func (s *Store) Project(ctx context.Context, id string) (model.Project, error) {
	defer observe("project", time.Now())

	var row projectRow
	err := s.db.GetContext(ctx, &row, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Project{}, fmt.Errorf("project %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("get project: %w", err)
	}
	return row.toModel()
}

// SaveProject implements repository.Store.
func (s *Store) SaveProject(ctx context.Context, p model.Project) error {
	defer observe("save_project", time.Now())

	if _, err := s.db.NamedExecContext(ctx, upsertProject, fromProject(p)); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

// Commit implements repository.Store. Each consultant row is locked and
// compared with the transition's From state before anything is written.
func (s *Store) Commit(ctx context.Context, a types.Assignment, transitions []model.Transition) (err error) {
	defer observe("commit", time.Now())

	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode assignment: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin commit: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, t := range transitions {
		var current availabilityRow
		if err = tx.GetContext(ctx, &current, lockAvailability, t.ConsultantID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: %s", staffing.ErrUnknownConsultant, t.ConsultantID)
			}
			return fmt.Errorf("lock consultant: %w", err)
		}
		state, convErr := current.toModel()
		if convErr != nil {
			return convErr
		}
		if !state.Equal(t.From) {
			return fmt.Errorf("%w: %s is %s, expected %s", staffing.ErrStaleState, t.ConsultantID, state, t.From)
		}

		next := fromAvailability(t.To)
		if _, err = tx.ExecContext(ctx, updateAvailability, t.ConsultantID,
			next.Status, next.AssignmentProjectID, next.AssignmentStart, next.AssignmentEnd); err != nil {
			return fmt.Errorf("update consultant: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx, insertAssignment, a.ID, a.ProjectID, payload); err != nil {
		return fmt.Errorf("record assignment: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Assignment implements repository.Store.
func (s *Store) Assignment(ctx context.Context, id string) (types.Assignment, error) {
	defer observe("assignment", time.Now())

	var payload []byte
	err := s.db.GetContext(ctx, &payload, `SELECT payload FROM assignments WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Assignment{}, fmt.Errorf("assignment %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return types.Assignment{}, fmt.Errorf("get assignment: %w", err)
	}
	var a types.Assignment
	if err := json.Unmarshal(payload, &a); err != nil {
		return types.Assignment{}, fmt.Errorf("decode assignment: %w", err)
	}
	return a, nil
}

// Close implements repository.Store.
func (s *Store) Close() error {
	return s.db.Close()
}
