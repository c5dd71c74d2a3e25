package skills

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFile = `
skills:
  - id: sk-1
    name: Go
    category: programming
    lectures: 4
    practice_hours: 12.5
  - name: Piano
    category: music
    videos: 2
categories:
  programming: [Go]
  music: [Piano]
`

func TestParseFile(t *testing.T) {
	f, err := ParseFile([]byte(sampleFile))
	require.NoError(t, err)
	require.Len(t, f.Skills, 2)

	assert.Equal(t, "sk-1", f.Skills[0].ID)
	assert.Equal(t, 12.5, f.Skills[0].PracticeHours)
	assert.Equal(t, "Piano", f.Skills[1].ID, "missing id defaults to name")
	assert.Equal(t, []string{"Go"}, f.Categories["programming"])
}

func TestParseFile_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"duplicate names", "skills:\n  - name: a\n  - name: a\n"},
		{"missing name", "skills:\n  - id: x\n"},
		{"negative counter", "skills:\n  - name: a\n    films: -1\n"},
		{"bad yaml", "skills: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFile([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestFileSource_Fetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleFile), 0o644))

	got, err := NewFileSource(path).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = NewFileSource(filepath.Join(t.TempDir(), "missing.yaml")).Fetch(context.Background())
	assert.Error(t, err)
}

func TestFileSource_CategoryMap(t *testing.T) {
	dir := t.TempDir()
	declared := filepath.Join(dir, "declared.yaml")
	require.NoError(t, os.WriteFile(declared, []byte(`
skills:
  - name: Go
    category: programming
  - name: Rust
    category: programming
categories:
  systems: [Go, Rust]
`), 0o644))

	src := NewFileSource(declared)
	all, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CategoryMap{"systems": {"Go", "Rust"}}, src.CategoryMap(all))

	undeclared := filepath.Join(dir, "undeclared.yaml")
	require.NoError(t, os.WriteFile(undeclared, []byte("skills:\n  - name: Go\n    category: programming\n"), 0o644))

	src = NewFileSource(undeclared)
	all, err = src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CategoryMap{"programming": {"Go"}}, src.CategoryMap(all))
}

func TestStaticSource_CopiesSnapshot(t *testing.T) {
	src := StaticSource{{Name: "a"}}
	got, err := src.Fetch(context.Background())
	require.NoError(t, err)
	got[0].Name = "changed"
	assert.Equal(t, "a", src[0].Name)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCategoryMap_Group(t *testing.T) {
	snapshot := []Skill{
		{Name: "Go"},
		{Name: "Rust", Lectures: 10, PracticeHours: 20, Videos: 5, Films: 3, ExpertTalks: 5},
		{Name: "Piano"},
		{Name: "Orphan"},
	}
	m := CategoryMap{
		"programming": {"Go", "Rust"},
		"music":       {"Piano", "Violin"},
		"empty":       {"Rust"},
	}

	groups := m.Group(snapshot, func(s Skill) bool { return !IsComplete(s) })
	assert.Len(t, groups, 2)
	assert.Equal(t, "Go", groups["programming"][0].Name)
	assert.Len(t, groups["programming"], 1)
	assert.Equal(t, "Piano", groups["music"][0].Name)

	assert.Equal(t, []string{"empty", "music", "programming"}, m.Names())
}

func TestCategoriesFromSkills(t *testing.T) {
	m := CategoriesFromSkills([]Skill{
		{Name: "Go", Category: "programming"},
		{Name: "Rust", Category: "programming"},
		{Name: "Loose"},
	})
	assert.Equal(t, CategoryMap{"programming": {"Go", "Rust"}}, m)
}
