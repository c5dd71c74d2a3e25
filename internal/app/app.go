// Package app holds the practice service shared by the CLI commands and
// the interactive dashboard built on it.
package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/practica/internal/energy"
	"github.com/abhisek/practica/internal/ui/layout"
)

// Screen is one view on the dashboard's navigation stack.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	// View renders the content area, excluding header and footer.
	View(width, height int) string
	Title() string
}

// keyHinter lets a screen replace the default footer hints.
type keyHinter interface {
	KeyHints() []layout.KeyHint
}

type pushScreenMsg struct{ screen Screen }

type popScreenMsg struct{}

func push(s Screen) tea.Cmd {
	return func() tea.Msg { return pushScreenMsg{screen: s} }
}

func pop() tea.Msg { return popScreenMsg{} }

// DashboardOptions configures the dashboard.
type DashboardOptions struct {
	Service         *Service
	Energy          energy.Level
	InterleaveCount int
	BlockMinutes    int
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx    context.Context
	opts   DashboardOptions
	stack  []Screen
	width  int
	height int
}

// NewModel creates the dashboard model with the home screen on top.
func NewModel(ctx context.Context, opts DashboardOptions) Model {
	return Model{
		ctx:   ctx,
		opts:  opts,
		stack: []Screen{newHomeScreen(ctx, opts)},
	}
}

func (m Model) active() Screen {
	return m.stack[len(m.stack)-1]
}

func (m Model) Init() tea.Cmd {
	return m.active().Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if len(m.stack) == 1 {
				return m, tea.Quit
			}
		case "esc":
			if len(m.stack) > 1 {
				return m, pop
			}
			return m, nil
		}

	case pushScreenMsg:
		m.stack = append(m.stack, msg.screen)
		return m, msg.screen.Init()

	case popScreenMsg:
		if len(m.stack) > 1 {
			m.stack = m.stack[:len(m.stack)-1]
		}
		return m, nil
	}

	// Copy before replacing the top so earlier Model values keep their stack.
	stack := append([]Screen(nil), m.stack...)
	updated, cmd := stack[len(stack)-1].Update(msg)
	stack[len(stack)-1] = updated
	m.stack = stack
	return m, cmd
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.active()
	header := layout.RenderHeader(active.Title(), "energy: "+m.opts.Energy.String(), m.width)
	footer := layout.RenderFooter(m.hints(active), m.width)
	content := active.View(m.width-2, layout.ContentHeight(header, footer, m.height))

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m Model) hints(active Screen) []layout.KeyHint {
	if h, ok := active.(keyHinter); ok {
		return h.KeyHints()
	}
	if len(m.stack) > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "q", Description: "Quit"},
	}
}

// Run starts the dashboard and blocks until it exits.
func Run(ctx context.Context, opts DashboardOptions) error {
	_, err := tea.NewProgram(NewModel(ctx, opts), tea.WithContext(ctx)).Run()
	return err
}
