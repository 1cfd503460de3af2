package coach

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/flashmath/internal/game"
	"github.com/abhisek/flashmath/internal/score"
)

func testResults() game.Results {
	return game.Results{
		TotalQuestions: 10,
		CorrectCount:   9,
		Accuracy:       90,
		Operation:      game.OpMixed,
		TimeLimit:      5,
		BestStreak:     6,
	}
}

func TestEncourage_PromptCarriesGameFacts(t *testing.T) {
	mock := NewMockProvider("Nice pace, keep that streak going!")
	svc := NewService(mock)

	line, err := svc.Encourage(context.Background(), testResults(), score.TierGreat)
	if err != nil {
		t.Fatalf("Encourage: %v", err)
	}
	if line != "Nice pace, keep that streak going!" {
		t.Errorf("line = %q", line)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(mock.Calls))
	}
	user := mock.Calls[0].User
	for _, want := range []string{"90.0%", "mixed", "streak: 6", "great"} {
		if !strings.Contains(user, want) {
			t.Errorf("prompt missing %q: %q", want, user)
		}
	}
}

func TestEncourage_TrimsToOneLine(t *testing.T) {
	mock := NewMockProvider("  Great job!\nAnd another line that should be dropped.")
	svc := NewService(mock)

	line, err := svc.Encourage(context.Background(), testResults(), score.TierGreat)
	if err != nil {
		t.Fatalf("Encourage: %v", err)
	}
	if line != "Great job!" {
		t.Errorf("line = %q, want first line only", line)
	}
}

func TestEncourage_ProviderFailure(t *testing.T) {
	mock := NewMockProvider()
	mock.Fail(errors.New("boom"))
	svc := NewService(mock)

	if _, err := svc.Encourage(context.Background(), testResults(), score.TierGreat); err == nil {
		t.Fatal("expected error from failing provider")
	}
}

func TestEncourage_EmptyReply(t *testing.T) {
	svc := NewService(NewMockProvider("   \n  "))
	if _, err := svc.Encourage(context.Background(), testResults(), score.TierGreat); err == nil {
		t.Fatal("expected error on empty reply")
	}
}
