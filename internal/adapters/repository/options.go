package repository

import "github.com/okian/consultmatch/internal/domain/model"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithConsultants preloads consultants in the given order.
func WithConsultants(cs ...model.Consultant) Option {
	return func(s *MemoryStore) {
		for _, c := range cs {
			s.putConsultant(c)
		}
	}
}

// WithProjects preloads projects in the given order.
func WithProjects(ps ...model.Project) Option {
	return func(s *MemoryStore) {
		for _, p := range ps {
			s.putProject(p)
		}
	}
}
