package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store is the local SQLite result log. It implements both Source and Sink.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies recommended
// pragmas and creates the schema if needed.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY,
		session_id TEXT NOT NULL,
		played_at TEXT NOT NULL,
		total_questions INTEGER NOT NULL,
		correct_count INTEGER NOT NULL,
		accuracy REAL NOT NULL,
		operation TEXT NOT NULL,
		time_limit_secs INTEGER NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		best_streak INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_results_played_at ON results(played_at);`)
	return err
}

// Append stores one finished game.
func (s *Store) Append(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results (session_id, played_at, total_questions, correct_count, accuracy, operation, time_limit_secs, elapsed_ms, best_streak)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID,
		rec.PlayedAt.Format(time.RFC3339Nano),
		rec.TotalQuestions,
		rec.CorrectCount,
		rec.Accuracy,
		rec.Operation,
		rec.TimeLimit,
		rec.Elapsed.Milliseconds(),
		rec.BestStreak,
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

// Accuracies returns the accuracy of every stored game.
func (s *Store) Accuracies(ctx context.Context) ([]float64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT accuracy FROM results`)
	if err != nil {
		return nil, fmt.Errorf("query accuracies: %w", err)
	}
	defer rows.Close()

	var out []float64
	for rows.Next() {
		var acc float64
		if err := rows.Scan(&acc); err != nil {
			return nil, err
		}
		out = append(out, acc)
	}
	return out, rows.Err()
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. FLASHMATH_DB environment variable
// 2. $XDG_DATA_HOME/flashmath/flashmath.db
// 3. ~/.local/share/flashmath/flashmath.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("FLASHMATH_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "flashmath", "flashmath.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
