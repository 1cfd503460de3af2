package coach

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/flashmath/internal/game"
	"github.com/abhisek/flashmath/internal/score"
)

const requestTimeout = 10 * time.Second

const systemPrompt = "You are a friendly mental-math coach. " +
	"Reply with one short encouraging sentence about the player's game. " +
	"Plain text, no emoji, no quotes."

// Service produces the post-game coach line.
type Service struct {
	provider Provider
}

// NewService creates a Service with the given provider.
func NewService(p Provider) *Service {
	return &Service{provider: p}
}

// NewServiceFromEnv builds a Service from OPENAI_API_KEY and
// FLASHMATH_COACH_MODEL. Returns (nil, false) when no key is set.
func NewServiceFromEnv() (*Service, bool) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, false
	}
	p, err := NewOpenAIProvider(OpenAIConfig{
		APIKey: key,
		Model:  os.Getenv("FLASHMATH_COACH_MODEL"),
	})
	if err != nil {
		return nil, false
	}
	return NewService(p), true
}

// Encourage asks for a one-line reaction to the finished game.
func (s *Service) Encourage(ctx context.Context, res game.Results, tier score.Tier) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	user := fmt.Sprintf(
		"Operation: %s. Questions: %d. Correct: %d. Accuracy: %.1f%%. Best streak: %d. Tier: %s.",
		res.Operation,
		res.TotalQuestions,
		res.CorrectCount,
		res.Accuracy,
		res.BestStreak,
		tier,
	)

	reply, err := s.provider.Complete(ctx, systemPrompt, user)
	if err != nil {
		return "", err
	}

	// Keep it to a single display line.
	line := strings.TrimSpace(reply)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	if line == "" {
		return "", fmt.Errorf("empty coach reply")
	}
	return line, nil
}
