package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/practica/internal/ui/components"
	"github.com/abhisek/practica/internal/ui/theme"
)

type homeScreen struct {
	menu components.Menu
}

func newHomeScreen(ctx context.Context, opts DashboardOptions) *homeScreen {
	svc := opts.Service
	resting := !opts.Energy.Allow()

	items := []components.MenuItem{
		{
			Label:    "Today's task",
			Hint:     "one skill, one dimension",
			Disabled: resting,
			Action: func() tea.Cmd {
				return push(newResultScreen("Today", func() (*Result, error) {
					return svc.Today(ctx, opts.Energy)
				}))
			},
		},
		{
			Label:    "Mix it up",
			Hint:     fmt.Sprintf("%d categories, interleaved", opts.InterleaveCount),
			Disabled: resting,
			Action: func() tea.Cmd {
				return push(newResultScreen("Mix", func() (*Result, error) {
					return svc.Mix(ctx, opts.InterleaveCount, opts.Energy)
				}))
			},
		},
		{
			Label:    "Deep practice block",
			Hint:     "split time across three skills",
			Disabled: resting,
			Action: func() tea.Cmd {
				return push(newBlockScreen(ctx, opts))
			},
		},
		{
			Label: "Progress",
			Hint:  "all skills",
			Action: func() tea.Cmd {
				return push(newStatusScreen(ctx, svc))
			},
		},
	}
	return &homeScreen{menu: components.NewMenu(items)}
}

func (h *homeScreen) Init() tea.Cmd { return nil }

func (h *homeScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *homeScreen) View(int, int) string {
	out := theme.Title.Render("What should I practice?") + "\n\n" + h.menu.View()
	if h.menu.Items[0].Disabled {
		out += "\n" + theme.Warning.Render(RestDayMessage)
	}
	return out
}

func (h *homeScreen) Title() string { return "Home" }
