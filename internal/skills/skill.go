package skills

import "fmt"

// Dimension is one of the five content categories tracked per skill.
type Dimension string

const (
	DimensionNone          Dimension = ""
	DimensionLectures      Dimension = "lectures"
	DimensionPracticeHours Dimension = "practice_hours"
	DimensionVideos        Dimension = "videos"
	DimensionFilms         Dimension = "films"
	DimensionExpertTalks   Dimension = "expert_talks"
)

// AllDimensions returns the dimensions in enumeration order. Weakest-dimension
// ties are broken by this order.
func AllDimensions() []Dimension {
	return []Dimension{
		DimensionLectures,
		DimensionPracticeHours,
		DimensionVideos,
		DimensionFilms,
		DimensionExpertTalks,
	}
}

// CurriculumOrder returns the fixed order used when advancing a skill
// sequentially.
func CurriculumOrder() []Dimension {
	return []Dimension{
		DimensionLectures,
		DimensionVideos,
		DimensionExpertTalks,
		DimensionFilms,
		DimensionPracticeHours,
	}
}

// Max returns the completion target for a dimension.
func (d Dimension) Max() float64 {
	switch d {
	case DimensionLectures:
		return 10
	case DimensionPracticeHours:
		return 20
	case DimensionVideos:
		return 5
	case DimensionFilms:
		return 3
	case DimensionExpertTalks:
		return 5
	default:
		return 0
	}
}

// DisplayName returns a human-readable label.
func (d Dimension) DisplayName() string {
	switch d {
	case DimensionLectures:
		return "Lectures"
	case DimensionPracticeHours:
		return "Practice Hours"
	case DimensionVideos:
		return "Videos"
	case DimensionFilms:
		return "Films"
	case DimensionExpertTalks:
		return "Expert Talks"
	case DimensionNone:
		return "none"
	default:
		return string(d)
	}
}

// Valid reports whether d is one of the five tracked dimensions.
func (d Dimension) Valid() bool {
	return d.Max() > 0
}

// ParseDimension accepts the stable key ("practice_hours") or a loose form
// ("practice-hours", "PracticeHours").
func ParseDimension(s string) (Dimension, error) {
	switch normalizeKey(s) {
	case "lectures", "lecture":
		return DimensionLectures, nil
	case "practicehours", "practice", "hours":
		return DimensionPracticeHours, nil
	case "videos", "video":
		return DimensionVideos, nil
	case "films", "film":
		return DimensionFilms, nil
	case "experttalks", "talks", "talk":
		return DimensionExpertTalks, nil
	}
	return DimensionNone, fmt.Errorf("unknown dimension %q", s)
}

func normalizeKey(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			out = append(out, c+('a'-'A'))
		case c == '_' || c == '-' || c == ' ':
		default:
			out = append(out, c)
		}
	}
	return string(out)
}

// Skill is one learning topic as held by the external data provider.
// A fetched batch is treated as an immutable snapshot for one decision.
type Skill struct {
	ID            string  `yaml:"id" json:"id"`
	Name          string  `yaml:"name" json:"name"`
	Category      string  `yaml:"category" json:"category"`
	Lectures      float64 `yaml:"lectures" json:"lectures"`
	PracticeHours float64 `yaml:"practice_hours" json:"practice_hours"`
	Videos        float64 `yaml:"videos" json:"videos"`
	Films         float64 `yaml:"films" json:"films"`
	ExpertTalks   float64 `yaml:"expert_talks" json:"expert_talks"`
}

// Count returns the current counter for a dimension.
func (s Skill) Count(d Dimension) float64 {
	switch d {
	case DimensionLectures:
		return s.Lectures
	case DimensionPracticeHours:
		return s.PracticeHours
	case DimensionVideos:
		return s.Videos
	case DimensionFilms:
		return s.Films
	case DimensionExpertTalks:
		return s.ExpertTalks
	default:
		return 0
	}
}

// WithCount returns a copy of s with the counter for d set to v.
func (s Skill) WithCount(d Dimension, v float64) Skill {
	switch d {
	case DimensionLectures:
		s.Lectures = v
	case DimensionPracticeHours:
		s.PracticeHours = v
	case DimensionVideos:
		s.Videos = v
	case DimensionFilms:
		s.Films = v
	case DimensionExpertTalks:
		s.ExpertTalks = v
	}
	return s
}

// Validate checks the invariants a snapshot record must satisfy.
func (s Skill) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("skill %q: name is required", s.ID)
	}
	for _, d := range AllDimensions() {
		if s.Count(d) < 0 {
			return fmt.Errorf("skill %q: %s must be non-negative", s.Name, d)
		}
	}
	return nil
}
