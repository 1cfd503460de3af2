package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashmath/internal/ui/theme"
)

// Stepper is a bounded numeric picker adjusted with left/right keys.
type Stepper struct {
	Label   string
	Value   int
	Min     int
	Max     int
	Suffix  string
	Focused bool
}

// NewStepper creates a stepper clamped to [min, max].
func NewStepper(label string, value, min, max int, suffix string) Stepper {
	if value < min {
		value = min
	}
	if value > max {
		value = max
	}
	return Stepper{
		Label:  label,
		Value:  value,
		Min:    min,
		Max:    max,
		Suffix: suffix,
	}
}

// Update handles left/right adjustment while focused.
func (s Stepper) Update(msg tea.Msg) (Stepper, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || !s.Focused {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h":
		if s.Value > s.Min {
			s.Value--
		}
	case "right", "l":
		if s.Value < s.Max {
			s.Value++
		}
	}

	return s, nil
}

// View renders the stepper as "Label  ◂ 10 ▸".
func (s Stepper) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.Text)
	valueStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	arrowStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if s.Focused {
		labelStyle = theme.StepperActive
		valueStyle = theme.StepperActive
		arrowStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	}

	marker := "    "
	if s.Focused {
		marker = "  ▸ "
	}

	value := fmt.Sprintf("%d", s.Value)
	if s.Suffix != "" {
		value += s.Suffix
	}

	return marker +
		labelStyle.Render(s.Label) + "  " +
		arrowStyle.Render("◂ ") +
		valueStyle.Render(value) +
		arrowStyle.Render(" ▸")
}
