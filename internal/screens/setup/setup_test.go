package setup

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashmath/internal/game"
)

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestDefaultsSeedForm(t *testing.T) {
	defaults := game.DefaultSettings()
	s := New(defaults)

	got := s.settings()
	if got != defaults {
		t.Errorf("expected form seeded with %+v, got %+v", defaults, got)
	}
}

func TestOutOfRangeDefaultsClamped(t *testing.T) {
	s := New(game.Settings{
		Operation:     game.OpAddition,
		QuestionCount: 50,
		TimeLimit:     1,
	})

	got := s.settings()
	if got.QuestionCount != game.MaxQuestions {
		t.Errorf("expected question count clamped to %d, got %d", game.MaxQuestions, got.QuestionCount)
	}
	if got.TimeLimit != game.MinTimeLimit {
		t.Errorf("expected time limit clamped to %d, got %d", game.MinTimeLimit, got.TimeLimit)
	}
}

func TestOperationSelectionCycles(t *testing.T) {
	s := New(game.DefaultSettings())
	if s.focus != focusOperation {
		t.Fatalf("expected initial focus on operation, got %d", s.focus)
	}

	start := s.opIndex
	s.Update(key(tea.KeyRight))
	if s.opIndex == start {
		t.Error("right key should change the selected operation")
	}

	for range s.operations {
		s.Update(key(tea.KeyRight))
	}
	if s.opIndex < 0 || s.opIndex >= len(s.operations) {
		t.Errorf("operation index out of range: %d", s.opIndex)
	}
}

func TestStepperAdjustment(t *testing.T) {
	s := New(game.DefaultSettings())

	s.Update(key(tea.KeyDown)) // questions
	if s.focus != focusQuestions {
		t.Fatalf("expected focus on questions, got %d", s.focus)
	}

	before := s.questions.Value
	s.Update(key(tea.KeyRight))
	if s.questions.Value != before+1 {
		t.Errorf("expected questions %d, got %d", before+1, s.questions.Value)
	}

	s.Update(key(tea.KeyDown)) // time limit
	before = s.timeLimit.Value
	s.Update(key(tea.KeyLeft))
	if s.timeLimit.Value != before-1 {
		t.Errorf("expected time limit %d, got %d", before-1, s.timeLimit.Value)
	}
}

func TestStepperStopsAtBounds(t *testing.T) {
	s := New(game.DefaultSettings())
	s.setFocus(focusQuestions)

	for i := 0; i < 50; i++ {
		s.Update(key(tea.KeyRight))
	}
	if s.questions.Value != game.MaxQuestions {
		t.Errorf("expected questions capped at %d, got %d", game.MaxQuestions, s.questions.Value)
	}

	for i := 0; i < 50; i++ {
		s.Update(key(tea.KeyLeft))
	}
	if s.questions.Value != game.MinQuestions {
		t.Errorf("expected questions floored at %d, got %d", game.MinQuestions, s.questions.Value)
	}
}

func TestEnterEmitsStartMsg(t *testing.T) {
	defaults := game.DefaultSettings()
	s := New(defaults)

	_, cmd := s.Update(key(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command from enter")
	}

	msg := cmd()
	start, ok := msg.(StartMsg)
	if !ok {
		t.Fatalf("expected StartMsg, got %T", msg)
	}
	if start.Settings != defaults {
		t.Errorf("expected settings %+v, got %+v", defaults, start.Settings)
	}
}

func TestInvalidSettingsShowError(t *testing.T) {
	s := New(game.DefaultSettings())
	s.questions.Value = 99 // past what the stepper allows

	_, cmd := s.Update(key(tea.KeyEnter))
	if cmd != nil {
		t.Fatal("expected no command for invalid settings")
	}
	if s.errMsg == "" {
		t.Error("expected a validation message")
	}
}
