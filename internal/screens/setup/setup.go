package setup

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashmath/internal/game"
	"github.com/abhisek/flashmath/internal/screen"
	"github.com/abhisek/flashmath/internal/ui/components"
	"github.com/abhisek/flashmath/internal/ui/layout"
	"github.com/abhisek/flashmath/internal/ui/theme"
)

// StartMsg is emitted when the player confirms their settings. The app
// model catches it and swaps in the play screen.
type StartMsg struct {
	Settings game.Settings
}

// Focusable fields, top to bottom.
const (
	focusOperation = iota
	focusQuestions
	focusTime
	focusStart
	focusCount
)

// SetupScreen lets the player pick operation, question count, and the
// per-question time limit before starting a round.
type SetupScreen struct {
	operations []game.Operation
	opIndex    int
	questions  components.Stepper
	timeLimit  components.Stepper
	focus      int
	errMsg     string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a setup screen seeded with the given defaults.
func New(defaults game.Settings) *SetupScreen {
	ops := game.Operations()
	opIndex := 0
	for i, op := range ops {
		if op == defaults.Operation {
			opIndex = i
		}
	}

	s := &SetupScreen{
		operations: ops,
		opIndex:    opIndex,
		questions: components.NewStepper("Questions ",
			defaults.QuestionCount, game.MinQuestions, game.MaxQuestions, ""),
		timeLimit: components.NewStepper("Time limit",
			defaults.TimeLimit, game.MinTimeLimit, game.MaxTimeLimit, "s"),
	}
	s.setFocus(focusOperation)
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Title() string {
	return "New Round"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Adjust"},
		{Key: "Enter", Description: "Start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *SetupScreen) setFocus(f int) {
	s.focus = f
	s.questions.Focused = f == focusQuestions
	s.timeLimit.Focused = f == focusTime
}

func (s *SetupScreen) settings() game.Settings {
	return game.Settings{
		Operation:     s.operations[s.opIndex],
		QuestionCount: s.questions.Value,
		TimeLimit:     s.timeLimit.Value,
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		s.setFocus((s.focus - 1 + focusCount) % focusCount)
		return s, nil
	case "down", "j", "tab":
		s.setFocus((s.focus + 1) % focusCount)
		return s, nil
	case "left", "h":
		if s.focus == focusOperation {
			s.opIndex = (s.opIndex - 1 + len(s.operations)) % len(s.operations)
			return s, nil
		}
	case "right", "l":
		if s.focus == focusOperation {
			s.opIndex = (s.opIndex + 1) % len(s.operations)
			return s, nil
		}
	case "enter":
		return s.start()
	}

	var cmd tea.Cmd
	switch s.focus {
	case focusQuestions:
		s.questions, cmd = s.questions.Update(msg)
	case focusTime:
		s.timeLimit, cmd = s.timeLimit.Update(msg)
	}
	return s, cmd
}

func (s *SetupScreen) start() (screen.Screen, tea.Cmd) {
	settings := s.settings()
	if err := settings.Validate(); err != nil {
		var cfgErr *game.ConfigError
		if errors.As(err, &cfgErr) {
			s.errMsg = cfgErr.Message
		} else {
			s.errMsg = err.Error()
		}
		return s, nil
	}

	s.errMsg = ""
	return s, func() tea.Msg {
		return StartMsg{Settings: settings}
	}
}

func (s *SetupScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Ready to race the clock?"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Two-digit mental arithmetic, one timer per question"))
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderForm()))

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.errMsg))
	}

	return b.String()
}

func (s *SetupScreen) renderForm() string {
	var b strings.Builder

	b.WriteString(s.renderOperation())
	b.WriteString("\n\n")
	b.WriteString(s.questions.View())
	b.WriteString("\n\n")
	b.WriteString(s.timeLimit.View())
	b.WriteString("\n\n\n")

	startStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	start := "    Start"
	if s.focus == focusStart {
		startStyle = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
		start = "  ▸ Start"
	}
	b.WriteString(startStyle.Render(start))

	return b.String()
}

func (s *SetupScreen) renderOperation() string {
	marker := "    "
	labelStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if s.focus == focusOperation {
		marker = "  ▸ "
		labelStyle = theme.StepperActive
	}

	var choices []string
	for i, op := range s.operations {
		label := op.Label()
		if i == s.opIndex {
			choices = append(choices, theme.Selected.Render("["+label+"]"))
		} else {
			choices = append(choices, lipgloss.NewStyle().Foreground(theme.TextDim).Render(" "+label+" "))
		}
	}

	return marker + labelStyle.Render("Operation ") + "  " + strings.Join(choices, " ")
}
