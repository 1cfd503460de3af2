// Package history persists finished game results and serves the
// historical accuracy population used for ranking. Results go to a local
// SQLite store and, when configured, to a shared remote result log; the
// remote being unreachable degrades the experience but never fails a game.
package history

import (
	"context"
	"time"

	"github.com/abhisek/flashmath/internal/game"
)

// Record is one finished game as persisted.
type Record struct {
	SessionID      string
	PlayedAt       time.Time
	TotalQuestions int
	CorrectCount   int
	Accuracy       float64
	Operation      string
	TimeLimit      int
	Elapsed        time.Duration
	BestStreak     int
}

// NewRecord builds a Record from final game results, stamped with the
// given wall time.
func NewRecord(res game.Results, playedAt time.Time) Record {
	return Record{
		SessionID:      res.SessionID,
		PlayedAt:       playedAt,
		TotalQuestions: res.TotalQuestions,
		CorrectCount:   res.CorrectCount,
		Accuracy:       res.Accuracy,
		Operation:      string(res.Operation),
		TimeLimit:      res.TimeLimit,
		Elapsed:        res.Elapsed,
		BestStreak:     res.BestStreak,
	}
}

// Source serves the historical accuracy population, one entry per
// completed game, each in [0, 100].
type Source interface {
	Accuracies(ctx context.Context) ([]float64, error)
}

// Sink accepts finished game results, append-only.
type Sink interface {
	Append(ctx context.Context, rec Record) error
}
