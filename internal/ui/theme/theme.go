package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/practica/internal/skills"
)

// Color palette
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// dimensionColors keep each dimension recognizable across views.
var dimensionColors = map[skills.Dimension]lipgloss.Style{
	skills.DimensionLectures:      lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA")),
	skills.DimensionPracticeHours: lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399")),
	skills.DimensionVideos:        lipgloss.NewStyle().Foreground(lipgloss.Color("#F472B6")),
	skills.DimensionFilms:         lipgloss.NewStyle().Foreground(lipgloss.Color("#FBBF24")),
	skills.DimensionExpertTalks:   lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA")),
}

// Dimension renders a dimension label in its color.
func Dimension(d skills.Dimension) string {
	if s, ok := dimensionColors[d]; ok {
		return s.Render(d.DisplayName())
	}
	return Hint.Render(d.DisplayName())
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Warning = lipgloss.NewStyle().
		Foreground(Accent)

	Failure = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Disabled = lipgloss.NewStyle().
			Foreground(TextDim)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressComplete = lipgloss.NewStyle().
				Background(Success)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
