package play

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashmath/internal/game"
	"github.com/abhisek/flashmath/internal/screen"
	"github.com/abhisek/flashmath/internal/ui/components"
	"github.com/abhisek/flashmath/internal/ui/layout"
	"github.com/abhisek/flashmath/internal/ui/theme"
)

const (
	tickInterval  = 100 * time.Millisecond
	feedbackDelay = 1200 * time.Millisecond
)

// FinishedMsg is emitted when the round is over. The app model catches
// it and swaps in the summary screen.
type FinishedMsg struct {
	Results game.Results
}

// timerTickMsg drives the countdown display and timeout detection.
type timerTickMsg time.Time

// feedbackDoneMsg ends the feedback pause and advances to the next question.
type feedbackDoneMsg struct{}

// PlayScreen runs one timed round.
type PlayScreen struct {
	session   *game.Session
	input     components.AnswerInput
	feedback  *game.Outcome
	inputErr  string
	startErr  string
	answering bool
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.StatusProvider = (*PlayScreen)(nil)

// New creates a play screen and starts a session with the given settings.
func New(gen *game.Generator, settings game.Settings) *PlayScreen {
	s := &PlayScreen{
		session: game.NewSession(gen),
		input:   components.NewAnswerInput("?"),
	}
	if err := s.session.Start(settings); err != nil {
		s.startErr = err.Error()
		return s
	}
	s.answering = true
	return s
}

func (s *PlayScreen) Init() tea.Cmd {
	if s.startErr != "" {
		return nil
	}
	return tea.Batch(s.input.Init(), tickCmd())
}

func (s *PlayScreen) Title() string {
	if s.session.State() != game.StateActive {
		return "Round"
	}
	return fmt.Sprintf("Question %d of %d",
		s.session.QuestionNumber(), s.session.TotalQuestions())
}

func (s *PlayScreen) Status() layout.Status {
	return layout.Status{
		Correct: s.session.CorrectCount(),
		Total:   s.session.TotalQuestions(),
		Streak:  s.session.CurrentStreak(),
	}
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	if s.feedback != nil {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTick()

	case feedbackDoneMsg:
		return s.advance()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.answering {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PlayScreen) handleTick() (screen.Screen, tea.Cmd) {
	// The chain stops during the feedback pause; advance() restarts it
	// for the next question.
	if s.session.State() != game.StateActive || s.feedback != nil {
		return s, nil
	}

	// The clock only forces a submit once the window has fully closed.
	// Whatever is typed still counts if it lands exactly on the limit.
	if s.answering && s.session.TimeRemaining() == 0 {
		return s.submit()
	}

	return s, tickCmd()
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.startErr != "" {
		return s, nil
	}

	// Feedback pause — any key skips ahead.
	if s.feedback != nil {
		return s.advance()
	}

	if !s.answering {
		return s, nil
	}

	if msg.String() == "enter" {
		return s.submit()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *PlayScreen) submit() (screen.Screen, tea.Cmd) {
	outcome, err := s.session.SubmitAnswer(s.input.Value())
	if err != nil {
		return s, nil
	}

	if outcome.Kind == game.OutcomeInvalid {
		// Not recorded: the question stays open unless the clock ran out.
		// The running tick chain keeps the countdown going.
		if s.session.TimeRemaining() > 0 {
			s.inputErr = "Whole numbers only (-999 to 999)"
			s.input.Clear()
			return s, nil
		}
		// Expired with unparseable input: treat it as a pass.
		timeout, terr := s.session.SubmitAnswer("")
		if terr != nil {
			return s, nil
		}
		outcome = timeout
		if outcome.Kind == game.OutcomeInvalid {
			// Clock sits exactly on the limit; wait for it to pass.
			return s, tickCmd()
		}
	}

	s.inputErr = ""
	s.answering = false
	s.feedback = &outcome
	s.input.Submit(outcome.Kind == game.OutcomeCorrect)

	return s, tea.Tick(feedbackDelay, func(time.Time) tea.Msg {
		return feedbackDoneMsg{}
	})
}

func (s *PlayScreen) advance() (screen.Screen, tea.Cmd) {
	if s.feedback == nil {
		return s, nil
	}
	s.feedback = nil

	s.session.Advance()
	if s.session.State() == game.StateFinished {
		results, err := s.session.FinalResults()
		if err != nil {
			return s, nil
		}
		return s, func() tea.Msg {
			return FinishedMsg{Results: results}
		}
	}

	s.answering = true
	s.input.Clear()
	return s, tea.Batch(s.input.Init(), tickCmd())
}

func (s *PlayScreen) View(width, height int) string {
	if s.startErr != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\n  " + s.startErr)
	}

	if s.feedback != nil {
		return s.renderFeedback(width)
	}
	return s.renderQuestion(width)
}

func (s *PlayScreen) renderQuestion(width int) string {
	q := s.session.CurrentQuestion()
	if q == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")

	// Round progress: questions answered out of the batch.
	answered := s.session.QuestionNumber() - 1
	total := s.session.TotalQuestions()
	progress := components.NewProgressBar("Round", float64(answered)/float64(total), true, min(width-8, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, progress.View()))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d correct · %.0f%% so far", s.session.CorrectCount(), s.session.RunningAccuracy())))
	b.WriteString("\n\n")

	// Countdown bar.
	limit := time.Duration(s.session.Settings().TimeLimit) * time.Second
	remaining := s.session.TimeRemaining()
	frac := 0.0
	if limit > 0 {
		frac = float64(remaining) / float64(limit)
	}
	bar := components.NewTimerBar(frac, min(width-8, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")

	timerStyle := theme.TimerOK
	if frac < 0.25 {
		timerStyle = theme.TimerLow
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(timerStyle.Render(fmt.Sprintf("%.1fs", remaining.Seconds()))))
	b.WriteString("\n\n")

	b.WriteString(theme.Question.Width(width).Render(q.String()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("Answer: " + s.input.View()))

	if s.inputErr != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.inputErr))
	}

	return b.String()
}

func (s *PlayScreen) renderFeedback(width int) string {
	q := s.session.CurrentQuestion()
	out := s.feedback

	var b strings.Builder
	b.WriteString("\n\n")

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	switch out.Kind {
	case game.OutcomeCorrect:
		b.WriteString(center.Render(theme.Correct.Render("Correct!")))
		if out.StreakMilestone > 0 {
			b.WriteString("\n\n")
			b.WriteString(center.Foreground(theme.Accent).Bold(true).
				Render(fmt.Sprintf("🔥 %d in a row!", out.StreakMilestone)))
		}
	case game.OutcomeTimeout:
		b.WriteString(center.Render(theme.Timeout.Render("Time's up!")))
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).
			Render(fmt.Sprintf("The answer was %d", out.CorrectAnswer)))
	default:
		b.WriteString(center.Render(theme.Incorrect.Render("Not quite")))
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).
			Render(fmt.Sprintf("The answer was %d", out.CorrectAnswer)))
	}

	if q != nil {
		b.WriteString("\n\n")
		b.WriteString(center.Foreground(theme.TextDim).Render(q.String()))
	}

	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Press any key to continue..."))

	return b.String()
}

// tickCmd returns the countdown tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
