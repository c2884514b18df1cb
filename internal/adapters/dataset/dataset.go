// Package dataset reads and writes YAML files holding consultants and
// projects.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okian/consultmatch/internal/adapters/repository"
	"github.com/okian/consultmatch/internal/domain/model"
	"github.com/okian/consultmatch/internal/domain/types"
)

// ErrDuplicateID is returned when a file names the same id twice.
var ErrDuplicateID = errors.New("duplicate id")

// File is the document layout:
//
//	consultants: [...]
//	projects: [...]
type File struct {
	Consultants []types.Consultant `yaml:"consultants"`
	Projects    []types.Project    `yaml:"projects"`
}

// Load reads a dataset file.
func Load(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a dataset. Unknown keys are rejected.
func Read(r io.Reader) (File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var out File
	if err := dec.Decode(&out); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("decode dataset: %w", err)
	}
	return out, nil
}

// Save writes a dataset file, replacing any existing one.
func Save(path string, f File) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	if err := Write(out, f); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close dataset: %w", err)
	}
	return nil
}

// Write encodes a dataset.
func Write(w io.Writer, f File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return enc.Close()
}

// FromModels builds a file from domain values.
func FromModels(consultants []model.Consultant, projects []model.Project) File {
	out := File{
		Consultants: make([]types.Consultant, len(consultants)),
		Projects:    make([]types.Project, len(projects)),
	}
	for i, c := range consultants {
		out.Consultants[i] = types.FromConsultant(c)
	}
	for i, p := range projects {
		out.Projects[i] = types.FromProject(p)
	}
	return out
}

// Models validates and converts the file, keeping file order.
func (f File) Models() ([]model.Consultant, []model.Project, error) {
	consultants := make([]model.Consultant, 0, len(f.Consultants))
	seen := make(map[string]struct{}, len(f.Consultants))
	for i, in := range f.Consultants {
		c, err := in.ToModel()
		if err != nil {
			return nil, nil, fmt.Errorf("consultants[%d]: %w", i, err)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, nil, fmt.Errorf("consultants[%d] %s: %w", i, c.ID, ErrDuplicateID)
		}
		seen[c.ID] = struct{}{}
		consultants = append(consultants, c)
	}

	projects := make([]model.Project, 0, len(f.Projects))
	seen = make(map[string]struct{}, len(f.Projects))
	for i, in := range f.Projects {
		p, err := in.ToModel()
		if err != nil {
			return nil, nil, fmt.Errorf("projects[%d]: %w", i, err)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, nil, fmt.Errorf("projects[%d] %s: %w", i, p.ID, ErrDuplicateID)
		}
		seen[p.ID] = struct{}{}
		projects = append(projects, p)
	}
	return consultants, projects, nil
}

// Import saves every record of f into store in file order.
func Import(ctx context.Context, store repository.Store, f File) error {
	consultants, projects, err := f.Models()
	if err != nil {
		return err
	}
	for _, c := range consultants {
		if err := store.SaveConsultant(ctx, c); err != nil {
			return fmt.Errorf("import consultant %s: %w", c.ID, err)
		}
	}
	for _, p := range projects {
		if err := store.SaveProject(ctx, p); err != nil {
			return fmt.Errorf("import project %s: %w", p.ID, err)
		}
	}
	return nil
}

// Export reads the whole store into a file.
func Export(ctx context.Context, store repository.Store) (File, error) {
	consultants, err := store.Consultants(ctx)
	if err != nil {
		return File{}, fmt.Errorf("export consultants: %w", err)
	}
	projects, err := store.Projects(ctx)
	if err != nil {
		return File{}, fmt.Errorf("export projects: %w", err)
	}
	return FromModels(consultants, projects), nil
}
