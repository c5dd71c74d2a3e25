package app

import (
	"context"
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/practica/internal/energy"
	"github.com/abhisek/practica/internal/ui/components"
	"github.com/abhisek/practica/internal/ui/layout"
	"github.com/abhisek/practica/internal/ui/theme"
)

// blockScreen asks for the session length before building a block.
type blockScreen struct {
	ctx   context.Context
	opts  DashboardOptions
	input components.NumberInput
	err   string
}

func newBlockScreen(ctx context.Context, opts DashboardOptions) *blockScreen {
	return &blockScreen{
		ctx:   ctx,
		opts:  opts,
		input: components.NewNumberInput("minutes", strconv.Itoa(opts.BlockMinutes), 4),
	}
}

func (b *blockScreen) Init() tea.Cmd { return b.input.Init() }

func (b *blockScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.String() == "enter" {
		minutes, err := b.input.Int()
		if err != nil || minutes <= 0 {
			b.err = "Enter a number of minutes greater than zero."
			return b, nil
		}
		svc, level := b.opts.Service, b.opts.Energy
		return b, push(newResultScreen("Block", func() (*Result, error) {
			return svc.Block(b.ctx, minutes, level)
		}))
	}

	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return b, cmd
}

func (b *blockScreen) View(int, int) string {
	out := theme.Title.Render("How long is the block?") + "\n\n" + b.input.View() + " min\n"
	if b.opts.Energy == energy.Medium {
		out += "\n" + theme.Hint.Render(fmt.Sprintf("Medium energy: the block is shortened to %.0f%%.", b.opts.Service.opts.MediumScale*100))
	}
	if b.err != "" {
		out += "\n" + theme.Failure.Render(b.err)
	}
	return out
}

func (b *blockScreen) Title() string { return "Deep practice" }

func (b *blockScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Build"},
		{Key: "Esc", Description: "Back"},
	}
}
