package app

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/practica/internal/skills"
	"github.com/abhisek/practica/internal/ui/components"
	"github.com/abhisek/practica/internal/ui/theme"
)

type skillsMsg struct {
	all []skills.Skill
	err error
}

type statusScreen struct {
	ctx    context.Context
	svc    *Service
	loaded bool
	all    []skills.Skill
	err    error
}

func newStatusScreen(ctx context.Context, svc *Service) *statusScreen {
	return &statusScreen{ctx: ctx, svc: svc}
}

func (s *statusScreen) Init() tea.Cmd {
	return func() tea.Msg {
		all, err := s.svc.Skills(s.ctx)
		return skillsMsg{all: all, err: err}
	}
}

func (s *statusScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	if msg, ok := msg.(skillsMsg); ok {
		s.loaded, s.all, s.err = true, msg.all, msg.err
	}
	return s, nil
}

func (s *statusScreen) View(width, height int) string {
	switch {
	case !s.loaded:
		return theme.Hint.Render("Loading skills...")
	case s.err != nil:
		return theme.Failure.Render("Error: ") + theme.Body.Render(s.err.Error())
	case len(s.all) == 0:
		return theme.Hint.Render("No skills yet. Add one with: practica skill add")
	}
	return RenderProgress(s.all, width, height)
}

func (s *statusScreen) Title() string { return "Progress" }

// RenderProgress draws one bar per skill with its weakest dimension. At
// most maxRows skills are shown when maxRows > 0.
func RenderProgress(all []skills.Skill, width, maxRows int) string {
	labelWidth := 0
	for _, sk := range all {
		labelWidth = max(labelWidth, len(sk.Name))
	}
	labelWidth = min(labelWidth, 24)
	barWidth := min(width-20, 70)

	var b strings.Builder
	for i, sk := range all {
		if maxRows > 0 && i >= maxRows {
			b.WriteString(theme.Hint.Render("..."))
			break
		}
		bar := components.NewProgressBar(sk.Name, skills.OverallCompletionPercent(sk), barWidth)
		bar.LabelWidth = labelWidth
		b.WriteString(bar.View())
		if dim, _ := skills.WeakestDimension(sk); dim != skills.DimensionNone {
			b.WriteString("  " + theme.Dimension(dim))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
