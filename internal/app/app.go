package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashmath/internal/coach"
	"github.com/abhisek/flashmath/internal/game"
	"github.com/abhisek/flashmath/internal/history"
	"github.com/abhisek/flashmath/internal/router"
	"github.com/abhisek/flashmath/internal/screen"
	"github.com/abhisek/flashmath/internal/screens/play"
	"github.com/abhisek/flashmath/internal/screens/setup"
	"github.com/abhisek/flashmath/internal/screens/summary"
	"github.com/abhisek/flashmath/internal/ui/layout"
)

// Deps are the services the screens draw on. Recorder and Coach may be
// nil; the quiz itself runs without them.
type Deps struct {
	Generator *game.Generator
	Recorder  *history.Recorder
	Coach     *coach.Service
	Defaults  game.Settings
}

// AppModel is the root Bubble Tea model. It owns the screen router and
// swaps screens through the setup → play → summary cycle.
type AppModel struct {
	router   *router.Router
	deps     Deps
	settings game.Settings
	width    int
	height   int
}

// newAppModel creates a new AppModel on the setup screen.
func newAppModel(deps Deps) AppModel {
	return AppModel{
		router:   router.New(setup.New(deps.Defaults)),
		deps:     deps,
		settings: deps.Defaults,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case setup.StartMsg:
		m.settings = msg.Settings
		cmd := m.router.Replace(play.New(m.deps.Generator, msg.Settings))
		return m, cmd

	case play.FinishedMsg:
		cmd := m.router.Replace(summary.New(msg.Results, m.deps.Recorder, m.deps.Coach))
		return m, cmd

	case summary.PlayAgainMsg:
		cmd := m.router.Replace(setup.New(m.settings))
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()

	title := ""
	if active != nil {
		title = active.Title()
	}

	var status layout.Status
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}
	header := layout.RenderHeader(title, status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
