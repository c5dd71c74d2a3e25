package skills

import (
	"math"
	"testing"
	"time"
)

func full() Skill {
	return Skill{Name: "full", Lectures: 10, PracticeHours: 20, Videos: 5, Films: 3, ExpertTalks: 5}
}

type fakeCooldown map[string]bool

func (f fakeCooldown) WasRecommendedWithin(skillName string, dim Dimension, _ time.Duration) bool {
	return f[skillName+"/"+string(dim)]
}

func TestIsComplete(t *testing.T) {
	tests := []struct {
		name  string
		skill Skill
		want  bool
	}{
		{"all at max", full(), true},
		{"all above max", Skill{Lectures: 11, PracticeHours: 25, Videos: 6, Films: 4, ExpertTalks: 9}, true},
		{"empty", Skill{}, false},
		{"one short", full().WithCount(DimensionFilms, 2.9), false},
		{"practice hours short", full().WithCount(DimensionPracticeHours, 19), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsComplete(tt.skill); got != tt.want {
				t.Errorf("IsComplete = %v, want %v", got, tt.want)
			}
			every := true
			for _, d := range AllDimensions() {
				if tt.skill.Count(d) < d.Max() {
					every = false
				}
			}
			if every != IsComplete(tt.skill) {
				t.Errorf("IsComplete disagrees with per-dimension check")
			}
		})
	}
}

func TestIsActive(t *testing.T) {
	if IsActive(Skill{Name: "x"}) {
		t.Error("empty skill should not be active")
	}
	if !IsActive(Skill{Name: "x", Films: 1}) {
		t.Error("skill with a film should be active")
	}
}

func TestPercentages(t *testing.T) {
	s := Skill{Lectures: 5, PracticeHours: 30, Videos: 1, Films: 0, ExpertTalks: 5}
	got := Percentages(s)

	want := map[Dimension]float64{
		DimensionLectures:      50,
		DimensionPracticeHours: 150, // overshoot is allowed
		DimensionVideos:        20,
		DimensionFilms:         0,
		DimensionExpertTalks:   100,
	}
	for d, w := range want {
		if math.Abs(got[d]-w) > 1e-9 {
			t.Errorf("%s = %v, want %v", d, got[d], w)
		}
	}
}

func TestOverallCompletionPercent(t *testing.T) {
	s := Skill{Lectures: 10, PracticeHours: 10, Videos: 5}
	// (10+10+5) / (10+20+5+3+5) = 25/43
	want := 25.0 / 43.0 * 100
	if got := OverallCompletionPercent(s); math.Abs(got-want) > 1e-9 {
		t.Errorf("OverallCompletionPercent = %v, want %v", got, want)
	}
	if got := OverallCompletionPercent(full()); got != 100 {
		t.Errorf("full skill = %v, want 100", got)
	}
}

func TestWeakestDimension(t *testing.T) {
	tests := []struct {
		name    string
		skill   Skill
		wantDim Dimension
		wantPct float64
	}{
		{"lowest wins", full().WithCount(DimensionVideos, 1).WithCount(DimensionLectures, 5), DimensionVideos, 20},
		{"tie goes to enumeration order", Skill{}, DimensionLectures, 0},
		{"tie between films and talks", full().WithCount(DimensionFilms, 0).WithCount(DimensionExpertTalks, 0), DimensionFilms, 0},
		{"complete", full(), DimensionNone, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, p := WeakestDimension(tt.skill)
			if d != tt.wantDim {
				t.Errorf("dimension = %q, want %q", d, tt.wantDim)
			}
			if math.Abs(p-tt.wantPct) > 1e-9 {
				t.Errorf("percent = %v, want %v", p, tt.wantPct)
			}
		})
	}
}

func TestNextSequentialDimension(t *testing.T) {
	s := Skill{Name: "go"}

	if got := NextSequentialDimension(s, nil, 48*time.Hour); got != DimensionLectures {
		t.Errorf("empty skill = %q, want lectures", got)
	}

	// Lectures done: next in curriculum order is videos, not practice hours.
	s.Lectures = 10
	if got := NextSequentialDimension(s, nil, 48*time.Hour); got != DimensionVideos {
		t.Errorf("after lectures = %q, want videos", got)
	}

	// Videos cooling down: skip to expert talks.
	cd := fakeCooldown{"go/videos": true}
	if got := NextSequentialDimension(s, cd, 48*time.Hour); got != DimensionExpertTalks {
		t.Errorf("videos cooling = %q, want expert_talks", got)
	}

	// Everything incomplete is cooling down: cooldown is relaxed.
	cd = fakeCooldown{
		"go/videos":         true,
		"go/expert_talks":   true,
		"go/films":          true,
		"go/practice_hours": true,
	}
	if got := NextSequentialDimension(s, cd, 48*time.Hour); got != DimensionVideos {
		t.Errorf("all cooling = %q, want videos", got)
	}

	if got := NextSequentialDimension(full(), nil, 0); got != DimensionNone {
		t.Errorf("complete = %q, want none", got)
	}
}

func TestIncomplete(t *testing.T) {
	a := Skill{Name: "a"}
	b := full()
	c := Skill{Name: "c", Films: 3}
	got := Incomplete([]Skill{a, b, c})
	if len(got) != 2 || got[0].Name != "a" || got[1].Name != "c" {
		t.Errorf("Incomplete = %+v", got)
	}
}

func TestParseDimension(t *testing.T) {
	tests := map[string]Dimension{
		"lectures":       DimensionLectures,
		"practice_hours": DimensionPracticeHours,
		"Practice-Hours": DimensionPracticeHours,
		"PracticeHours":  DimensionPracticeHours,
		"video":          DimensionVideos,
		"films":          DimensionFilms,
		"expert talks":   DimensionExpertTalks,
	}
	for in, want := range tests {
		got, err := ParseDimension(in)
		if err != nil {
			t.Errorf("ParseDimension(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseDimension(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseDimension("podcasts"); err == nil {
		t.Error("expected error for unknown dimension")
	}
}
