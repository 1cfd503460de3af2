package game

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle state of a Session.
type State int

const (
	// StateIdle is the initial state, and the state after Reset.
	StateIdle State = iota

	// StateActive means questions are being served.
	StateActive

	// StateFinished means the last question was advanced past. Results
	// are queryable and question data is retained until the next Start.
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// answerPattern accepts an optional leading minus followed by digits.
var answerPattern = regexp.MustCompile(`^-?[0-9]+$`)

// Session runs one game: a fixed-length ordered question sequence with
// per-question timing, scoring and streak bookkeeping. A Session is owned
// by a single interaction flow; it is not safe for concurrent use.
//
// Time-limit expiry is detected lazily by comparing against the recorded
// question start at the moment of the next SubmitAnswer or TimeRemaining
// call. There are no background timers.
type Session struct {
	gen *Generator
	now func() time.Time

	state    State
	id       string
	settings Settings

	questions []Question
	index     int
	correct   int

	currentStreak int
	bestStreak    int
	nextMilestone int

	startedAt     time.Time
	questionStart time.Time
	finishedAt    time.Time
}

// NewSession creates an idle session using the given generator.
// A nil generator gets a time-seeded default.
func NewSession(gen *Generator) *Session {
	if gen == nil {
		gen = NewGenerator()
	}
	return &Session{
		gen: gen,
		now: time.Now,
	}
}

// Start validates the settings and begins a new game. On a *ConfigError
// the session is left unchanged (Idle or retaining the previous finished
// game). On success the full question sequence is pre-generated, which
// keeps the progress display deterministic for the whole game.
func (s *Session) Start(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	now := s.now()
	s.id = uuid.NewString()
	s.settings = settings
	s.questions = s.gen.GenerateSet(settings.Operation, settings.QuestionCount)
	s.index = 0
	s.correct = 0
	s.currentStreak = 0
	s.bestStreak = 0
	s.nextMilestone = BaseStreakMilestone
	s.startedAt = now
	s.questionStart = now
	s.finishedAt = time.Time{}
	s.state = StateActive
	return nil
}

// Reset discards all question data and counters and returns to Idle.
func (s *Session) Reset() {
	s.state = StateIdle
	s.id = ""
	s.questions = nil
	s.index = 0
	s.correct = 0
	s.currentStreak = 0
	s.bestStreak = 0
	s.nextMilestone = BaseStreakMilestone
	s.startedAt = time.Time{}
	s.questionStart = time.Time{}
	s.finishedAt = time.Time{}
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// ID returns the UUID assigned at Start, empty when Idle.
func (s *Session) ID() string { return s.id }

// Settings returns the settings the session was started with.
func (s *Session) Settings() Settings { return s.settings }

// CurrentQuestion returns the question at the current index, or nil when
// the session is not active.
func (s *Session) CurrentQuestion() *Question {
	if s.state != StateActive || s.index >= len(s.questions) {
		return nil
	}
	return &s.questions[s.index]
}

// Questions returns the full question sequence for review. The slice is
// owned by the session.
func (s *Session) Questions() []Question { return s.questions }

// QuestionNumber returns the 1-based number of the current question.
func (s *Session) QuestionNumber() int { return s.index + 1 }

// TotalQuestions returns the configured question count.
func (s *Session) TotalQuestions() int { return len(s.questions) }

// CorrectCount returns the number of correct answers so far.
func (s *Session) CorrectCount() int { return s.correct }

// CurrentStreak returns the length of the running correct streak.
func (s *Session) CurrentStreak() int { return s.currentStreak }

// BestStreak returns the longest streak of this game.
func (s *Session) BestStreak() int { return s.bestStreak }

// RunningAccuracy returns the accuracy over questions attempted so far,
// as a percentage. Zero before any question is attempted.
func (s *Session) RunningAccuracy() float64 {
	if s.index == 0 {
		return 0
	}
	return float64(s.correct) / float64(s.index) * 100
}

// TimeRemaining returns how much of the current question's limit is left.
// Never negative; zero when the session is not active.
func (s *Session) TimeRemaining() time.Duration {
	if s.state != StateActive {
		return 0
	}
	limit := time.Duration(s.settings.TimeLimit) * time.Second
	remaining := limit - s.now().Sub(s.questionStart)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SubmitAnswer scores a submission against the current question.
//
// The timeout check runs first: a submission whose elapsed time strictly
// exceeds the limit is a Timeout — elapsed exactly equal to the limit
// still counts. A timeout records nothing on the question and does not
// advance it; the caller is expected to call Advance.
//
// Input that is not an optional minus followed by digits, or parses
// outside [MinAnswer, MaxAnswer], is an InvalidInput outcome. Both
// timeouts and invalid input reset the streak.
func (s *Session) SubmitAnswer(raw string) (Outcome, error) {
	q := s.CurrentQuestion()
	if q == nil {
		return Outcome{}, ErrNotActive
	}
	if q.Answered {
		return Outcome{}, ErrAlreadyAnswered
	}

	elapsed := s.now().Sub(s.questionStart)
	limit := time.Duration(s.settings.TimeLimit) * time.Second
	if elapsed > limit {
		s.breakStreak()
		return Outcome{Kind: OutcomeTimeout, CorrectAnswer: q.Answer}, nil
	}

	submitted, ok := parseAnswer(raw)
	if !ok {
		s.breakStreak()
		return Outcome{Kind: OutcomeInvalid}, nil
	}

	q.record(submitted, elapsed)

	out := Outcome{CorrectAnswer: q.Answer}
	if q.Correct {
		out.Kind = OutcomeCorrect
		s.correct++
		s.currentStreak++
		if s.currentStreak > s.bestStreak {
			s.bestStreak = s.currentStreak
		}
		if s.currentStreak >= s.nextMilestone {
			out.StreakMilestone = s.currentStreak
			s.nextMilestone = NextStreakMilestone(s.currentStreak)
		}
	} else {
		out.Kind = OutcomeIncorrect
		s.breakStreak()
	}
	return out, nil
}

// Advance moves to the next question and restarts the question clock.
// Reaching the end of the sequence finishes the session. Advancing and
// submitting are deliberately separate so the caller controls the pacing
// between feedback and the next question.
func (s *Session) Advance() {
	if s.state != StateActive {
		return
	}
	s.index++
	s.questionStart = s.now()
	if s.index >= len(s.questions) {
		s.state = StateFinished
		s.finishedAt = s.now()
	}
}

// Results holds the final outcome of a finished game.
type Results struct {
	SessionID      string
	TotalQuestions int
	CorrectCount   int

	// Accuracy is 100 * correct / total.
	Accuracy float64

	// Elapsed is the wall time from Start to the finishing Advance.
	Elapsed time.Duration

	Operation  Operation
	TimeLimit  int
	BestStreak int
}

// FinalResults returns the game results. Valid only once Finished; the
// question-count lower bound keeps the accuracy division safe.
func (s *Session) FinalResults() (Results, error) {
	if s.state != StateFinished {
		return Results{}, ErrNotFinished
	}
	total := len(s.questions)
	return Results{
		SessionID:      s.id,
		TotalQuestions: total,
		CorrectCount:   s.correct,
		Accuracy:       float64(s.correct) / float64(total) * 100,
		Elapsed:        s.finishedAt.Sub(s.startedAt),
		Operation:      s.settings.Operation,
		TimeLimit:      s.settings.TimeLimit,
		BestStreak:     s.bestStreak,
	}, nil
}

func (s *Session) breakStreak() {
	s.currentStreak = 0
	s.nextMilestone = BaseStreakMilestone
}

// parseAnswer parses a submitted answer: optional leading minus, digits
// only, within the accepted answer range.
func parseAnswer(raw string) (int, bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" || !answerPattern.MatchString(cleaned) {
		return 0, false
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, false
	}
	if n < MinAnswer || n > MaxAnswer {
		return 0, false
	}
	return n, true
}
