package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashmath/internal/coach"
	"github.com/abhisek/flashmath/internal/game"
	"github.com/abhisek/flashmath/internal/history"
	"github.com/abhisek/flashmath/internal/score"
	"github.com/abhisek/flashmath/internal/screen"
	"github.com/abhisek/flashmath/internal/ui/layout"
	"github.com/abhisek/flashmath/internal/ui/theme"
)

const statsTimeout = 15 * time.Second

// PlayAgainMsg is emitted when the player wants another round with the
// same settings. The app model catches it and swaps the setup screen in.
type PlayAgainMsg struct{}

// statsMsg carries the rank and global aggregate plus the save status.
// The population is fetched before the new result is appended, so a
// game is never ranked against itself.
type statsMsg struct {
	Percentile float64
	HasRank    bool
	Agg        score.Aggregate
	HasAgg     bool
	Status     history.SaveStatus
}

// coachMsg carries the one-line encouragement, if a coach is configured.
type coachMsg struct {
	Line string
}

// SummaryScreen shows the round results, the performance tier, the
// standing against the shared log, and where the result was saved.
type SummaryScreen struct {
	results  game.Results
	tier     score.Tier
	display  score.Display
	recorder *history.Recorder
	coach    *coach.Service

	stats     *statsMsg
	coachLine string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen. recorder and coachSvc may be nil.
func New(results game.Results, recorder *history.Recorder, coachSvc *coach.Service) *SummaryScreen {
	tier := score.Classify(results.Accuracy)
	return &SummaryScreen{
		results:  results,
		tier:     tier,
		display:  score.DisplayFor(tier),
		recorder: recorder,
		coach:    coachSvc,
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.loadStats()}
	if s.coach != nil {
		cmds = append(cmds, s.askCoach())
	}
	return tea.Batch(cmds...)
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Play again"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// loadStats ranks the result against history, then appends it.
func (s *SummaryScreen) loadStats() tea.Cmd {
	recorder := s.recorder
	results := s.results
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), statsTimeout)
		defer cancel()

		var msg statsMsg
		if recorder == nil {
			return msg
		}

		// Rank against the population as it stood before this game.
		if accs, err := recorder.Accuracies(ctx); err == nil && len(accs) > 0 {
			if pct, err := score.PercentileRank(results.Accuracy, accs); err == nil {
				msg.Percentile = pct
				msg.HasRank = true
			}
			if agg, err := score.Summarize(accs); err == nil {
				msg.Agg = agg
				msg.HasAgg = true
			}
		}

		msg.Status = recorder.Append(ctx, history.NewRecord(results, time.Now()))
		return msg
	}
}

// askCoach fetches the one-line encouragement.
func (s *SummaryScreen) askCoach() tea.Cmd {
	coachSvc := s.coach
	results := s.results
	tier := s.tier
	return func() tea.Msg {
		line, err := coachSvc.Encourage(context.Background(), results, tier)
		if err != nil {
			return coachMsg{}
		}
		return coachMsg{Line: line}
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsMsg:
		s.stats = &msg
		return s, nil

	case coachMsg:
		s.coachLine = msg.Line
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return s, func() tea.Msg { return PlayAgainMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) severityStyle() lipgloss.Style {
	switch s.display.Severity {
	case score.SeveritySuccess:
		return theme.TierSuccess
	case score.SeverityInfo:
		return theme.TierInfo
	case score.SeverityWarning:
		return theme.TierWarning
	default:
		return theme.TierError
	}
}

func (s *SummaryScreen) View(width, height int) string {
	var b strings.Builder
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	b.WriteString("\n")
	b.WriteString(center.Render(s.severityStyle().Render(
		fmt.Sprintf("%s %s", s.display.Icon, s.display.Message))))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.Text).Bold(true).Render(
		fmt.Sprintf("%d / %d correct — %.1f%%",
			s.results.CorrectCount, s.results.TotalQuestions, s.results.Accuracy)))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render(
		fmt.Sprintf("%s · %ds per question · %.1fs total · best streak %d",
			s.results.Operation.Label(), s.results.TimeLimit,
			s.results.Elapsed.Seconds(), s.results.BestStreak)))
	b.WriteString("\n\n")

	b.WriteString(s.renderStats(center, width))

	if s.coachLine != "" {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Secondary).Italic(true).
			Render("“" + s.coachLine + "”"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Press Enter to play again"))

	return b.String()
}

func (s *SummaryScreen) renderStats(center lipgloss.Style, width int) string {
	if s.stats == nil {
		return center.Foreground(theme.TextDim).Render("Saving result...") + "\n"
	}

	var b strings.Builder

	if s.stats.HasRank {
		b.WriteString(center.Foreground(theme.Accent).Bold(true).Render(
			fmt.Sprintf("You're in the top %.1f%% of all games played!", s.stats.Percentile)))
		b.WriteString("\n")
	} else {
		b.WriteString(center.Foreground(theme.TextDim).Render(
			"First recorded game — no ranking yet"))
		b.WriteString("\n")
	}

	if s.stats.HasAgg {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf(
			"%d games on record · average %.1f%%",
			s.stats.Agg.Games, s.stats.Agg.MeanAccuracy)))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderTierTable()))
	}

	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render(s.saveLine()))
	b.WriteString("\n")

	return b.String()
}

func (s *SummaryScreen) renderTierTable() string {
	var b strings.Builder
	for _, t := range score.Tiers() {
		tally := s.stats.Agg.ByTier[t]
		d := score.DisplayFor(t)
		b.WriteString(fmt.Sprintf("%s %-8s %4d games  %5.1f%%\n",
			d.Icon, t.String(), tally.Count, tally.Rate))
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(b.String())
}

func (s *SummaryScreen) saveLine() string {
	st := s.stats.Status
	switch {
	case st.Shared():
		return "Result saved to the shared log"
	case st.Local && st.RemoteErr != nil:
		return "Saved locally — shared log unreachable"
	case st.Local:
		return "Result saved locally"
	case st.LocalErr != nil:
		return "Could not save this result"
	default:
		return ""
	}
}
