package game

// Question count bounds.
const (
	MinQuestions     = 5
	MaxQuestions     = 20
	DefaultQuestions = 10
)

// Per-question time limit bounds, in seconds.
const (
	MinTimeLimit     = 3
	MaxTimeLimit     = 10
	DefaultTimeLimit = 5
)

// Operand range for generated problems.
const (
	MinOperand = 10
	MaxOperand = 99
)

// Accepted range for a submitted answer. Anything outside is rejected
// as invalid input before comparison.
const (
	MinAnswer = -999
	MaxAnswer = 999
)

// Settings configures a single game.
type Settings struct {
	// Operation selects how operators are chosen per question.
	Operation Operation

	// QuestionCount is the number of questions, within [MinQuestions, MaxQuestions].
	QuestionCount int

	// TimeLimit is the per-question limit in seconds, within [MinTimeLimit, MaxTimeLimit].
	TimeLimit int
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Operation:     OpAddition,
		QuestionCount: DefaultQuestions,
		TimeLimit:     DefaultTimeLimit,
	}
}

// Validate checks the settings against the configured bounds.
// Returns a *ConfigError naming the violated constraint, or nil.
func (s Settings) Validate() error {
	if !s.Operation.Valid() {
		return &ConfigError{
			Field:   "operation",
			Message: "unknown operation type: " + string(s.Operation),
		}
	}
	if s.QuestionCount < MinQuestions || s.QuestionCount > MaxQuestions {
		return &ConfigError{
			Field:   "question_count",
			Message: fmtBound("question count", s.QuestionCount, MinQuestions, MaxQuestions),
		}
	}
	if s.TimeLimit < MinTimeLimit || s.TimeLimit > MaxTimeLimit {
		return &ConfigError{
			Field:   "time_limit",
			Message: fmtBound("time limit", s.TimeLimit, MinTimeLimit, MaxTimeLimit),
		}
	}
	return nil
}
