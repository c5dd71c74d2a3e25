package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/practica/internal/ui/theme"
)

type resultMsg struct {
	res *Result
	err error
}

// resultScreen runs one service call and shows its text.
type resultScreen struct {
	title string
	run   func() (*Result, error)

	done bool
	res  *Result
	err  error
}

func newResultScreen(title string, run func() (*Result, error)) *resultScreen {
	return &resultScreen{title: title, run: run}
}

func (r *resultScreen) Init() tea.Cmd {
	return func() tea.Msg {
		res, err := r.run()
		return resultMsg{res: res, err: err}
	}
}

func (r *resultScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	if msg, ok := msg.(resultMsg); ok {
		r.done, r.res, r.err = true, msg.res, msg.err
	}
	return r, nil
}

func (r *resultScreen) View(width, _ int) string {
	switch {
	case !r.done:
		return theme.Hint.Render("Working on it...")
	case r.err != nil:
		return theme.Failure.Render("Error: ") + theme.Body.Render(r.err.Error())
	}
	return theme.Card.Width(min(width, 80)).Render(lipgloss.NewStyle().Foreground(theme.Text).Render(r.res.Text))
}

func (r *resultScreen) Title() string { return r.title }
