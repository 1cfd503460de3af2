package components

import (
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashmath/internal/ui/theme"
)

// AnswerInput wraps bubbles/textinput for typing integer answers. It
// accepts digits plus a single leading minus sign, since subtraction
// answers can be negative.
type AnswerInput struct {
	Model     textinput.Model
	submitted bool
	valid     bool
}

// NewAnswerInput creates a new styled answer input. Four characters is
// enough for any answer in range ("-999" through "999" never needs more).
func NewAnswerInput(placeholder string) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 4
	ti.Focus()

	return AnswerInput{Model: ti}
}

// Init returns the initial command.
func (t AnswerInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages, filtering out characters that can never form
// a valid integer.
func (t AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if len(key) == 1 {
			c := key[0]
			digit := c >= '0' && c <= '9'
			minus := c == '-' && t.Model.Position() == 0 && !containsMinus(t.Model.Value())
			if !digit && !minus {
				return t, nil
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func containsMinus(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '-' {
			return true
		}
	}
	return false
}

// View renders the input with a result marker after submission.
func (t AnswerInput) View() string {
	view := t.Model.View()
	if t.submitted {
		if t.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (t AnswerInput) Value() string {
	return t.Model.Value()
}

// NumericValue returns the input value as an integer.
func (t AnswerInput) NumericValue() (int, error) {
	return strconv.Atoi(t.Model.Value())
}

// Submit marks the input as submitted with a correctness result.
func (t *AnswerInput) Submit(valid bool) {
	t.submitted = true
	t.valid = valid
}

// Clear resets the input for the next question.
func (t *AnswerInput) Clear() {
	t.Model.SetValue("")
	t.submitted = false
	t.valid = false
}
