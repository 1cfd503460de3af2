package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette — high contrast for fast reading under a countdown
var (
	Primary   = lipgloss.Color("#3B82F6") // Blue
	Secondary = lipgloss.Color("#06B6D4") // Cyan
	Accent    = lipgloss.Color("#FBBF24") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Warn      = lipgloss.Color("#F97316") // Orange
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	// Question is the big "34 + 57 = ?" line.
	Question = lipgloss.NewStyle().
			Bold(true).
			Foreground(Text).
			Align(lipgloss.Center)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Timeout = lipgloss.NewStyle().
		Foreground(Warn).
		Bold(true)
)

// Result tiers
var (
	TierSuccess = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	TierInfo = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	TierWarning = lipgloss.NewStyle().
			Foreground(Warn).
			Bold(true)

	TierError = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	TimerOK = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	TimerLow = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	StepperActive = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)
)
