package skills

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrSkillNotFound is returned by sources that support lookups by name.
var ErrSkillNotFound = errors.New("skill not found")

// Source yields a snapshot of skill records. An empty snapshot is valid;
// failures are reported as errors and never replaced by cached data.
type Source interface {
	Fetch(ctx context.Context) ([]Skill, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) ([]Skill, error)

func (f SourceFunc) Fetch(ctx context.Context) ([]Skill, error) {
	return f(ctx)
}

// StaticSource serves a fixed snapshot. Each Fetch returns a fresh copy.
type StaticSource []Skill

func (s StaticSource) Fetch(ctx context.Context) ([]Skill, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]Skill, len(s))
	copy(out, s)
	return out, nil
}

// File is the on-disk layout read by FileSource.
type File struct {
	Skills     []Skill     `yaml:"skills"`
	Categories CategoryMap `yaml:"categories,omitempty"`
}

// FileSource reads skills from a YAML file on every Fetch. The file's
// categories block, if any, is kept from the last successful Fetch.
type FileSource struct {
	Path string

	mu         sync.Mutex
	categories CategoryMap
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (f *FileSource) Fetch(ctx context.Context) ([]Skill, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := LoadFile(f.Path)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.categories = file.Categories
	f.mu.Unlock()
	return file.Skills, nil
}

// CategoryMap returns the categories declared in the file, or the ones
// derived from each skill's Category when the file declares none.
func (f *FileSource) CategoryMap(all []Skill) CategoryMap {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.categories) == 0 {
		return CategoriesFromSkills(all)
	}
	m := make(CategoryMap, len(f.categories))
	for topic, names := range f.categories {
		m[topic] = append([]string(nil), names...)
	}
	return m
}

// LoadFile parses and validates a skills YAML file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read skills file: %w", err)
	}
	return ParseFile(data)
}

// ParseFile decodes a skills YAML document. Names must be unique.
func ParseFile(data []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse skills file: %w", err)
	}

	seen := make(map[string]bool, len(file.Skills))
	for i := range file.Skills {
		s := &file.Skills[i]
		if s.ID == "" {
			s.ID = s.Name
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate skill name %q", s.Name)
		}
		seen[s.Name] = true
	}
	return &file, nil
}
