package components

import (
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// NumberInput wraps bubbles/textinput and accepts only digits.
type NumberInput struct {
	Model textinput.Model
}

func NewNumberInput(placeholder, initial string, limit int) NumberInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.SetValue(initial)
	ti.Focus()
	return NumberInput{Model: ti}
}

func (t NumberInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update drops non-digit key presses before the model sees them.
func (t NumberInput) Update(msg tea.Msg) (NumberInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		if key := kmsg.String(); len(key) == 1 && (key[0] < '0' || key[0] > '9') {
			return t, nil
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t NumberInput) View() string {
	return t.Model.View()
}

// Int returns the entered value.
func (t NumberInput) Int() (int, error) {
	return strconv.Atoi(t.Model.Value())
}
