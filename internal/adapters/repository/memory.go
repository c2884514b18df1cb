package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/consultmatch/internal/domain/model"
	"github.com/okian/consultmatch/internal/domain/staffing"
	"github.com/okian/consultmatch/internal/domain/types"
	"github.com/okian/consultmatch/pkg/metrics"
)

// MemoryStore keeps everything in process memory. Reads return copies.
type MemoryStore struct {
	mu            sync.RWMutex
	consultants   []model.Consultant
	consultantIdx map[string]int
	projects      []model.Project
	projectIdx    map[string]int
	assignments   map[string]types.Assignment
	closed        bool
}

// NewMemoryStore constructs an empty store with configuration options.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		consultantIdx: make(map[string]int),
		projectIdx:    make(map[string]int),
		assignments:   make(map[string]types.Assignment),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *MemoryStore) putConsultant(c model.Consultant) {
	if i, ok := s.consultantIdx[c.ID]; ok {
		s.consultants[i] = c.Clone()
		return
	}
	s.consultantIdx[c.ID] = len(s.consultants)
	s.consultants = append(s.consultants, c.Clone())
}

func (s *MemoryStore) putProject(p model.Project) {
	if i, ok := s.projectIdx[p.ID]; ok {
		s.projects[i] = p.Clone()
		return
	}
	s.projectIdx[p.ID] = len(s.projects)
	s.projects = append(s.projects, p.Clone())
}

// Consultants implements Store.
func (s *MemoryStore) Consultants(_ context.Context) ([]model.Consultant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	out := make([]model.Consultant, len(s.consultants))
	for i, c := range s.consultants {
		out[i] = c.Clone()
	}
	return out, nil
}

// Consultant implements Store.
func (s *MemoryStore) Consultant(_ context.Context, id string) (model.Consultant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return model.Consultant{}, ErrClosed
	}

	i, ok := s.consultantIdx[id]
	if !ok {
		return model.Consultant{}, fmt.Errorf("consultant %s: %w", id, ErrNotFound)
	}
	return s.consultants[i].Clone(), nil
}

// SaveConsultant implements Store.
func (s *MemoryStore) SaveConsultant(_ context.Context, c model.Consultant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	s.putConsultant(c)
	return nil
}

// Projects implements Store.
func (s *MemoryStore) Projects(_ context.Context) ([]model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	out := make([]model.Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.Clone()
	}
	return out, nil
}

// Project implements Store.
func (s *MemoryStore) Project(_ context.Context, id string) (model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return model.Project{}, ErrClosed
	}

	i, ok := s.projectIdx[id]
	if !ok {
		return model.Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return s.projects[i].Clone(), nil
}

// SaveProject implements Store.
func (s *MemoryStore) SaveProject(_ context.Context, p model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	s.putProject(p)
	return nil
}

// Commit implements Store.
func (s *MemoryStore) Commit(_ context.Context, a types.Assignment, transitions []model.Transition) error {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryLatency("commit", float64(time.Since(start).Microseconds())/1000)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	updated, err := staffing.Commit(s.consultants, transitions)
	if err != nil {
		return err
	}
	s.consultants = updated
	s.assignments[a.ID] = a
	return nil
}

// Assignment implements Store.
func (s *MemoryStore) Assignment(_ context.Context, id string) (types.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return types.Assignment{}, ErrClosed
	}

	a, ok := s.assignments[id]
	if !ok {
		return types.Assignment{}, fmt.Errorf("assignment %s: %w", id, ErrNotFound)
	}
	return a, nil
}

// Close implements Store. Further calls fail with ErrClosed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
