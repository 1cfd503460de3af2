package game

import (
	"errors"
	"math/rand"
	"strconv"
	"testing"
	"time"
)

// fakeClock is a manually advanced clock for deterministic timing tests.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func testSession(clock *fakeClock) *Session {
	s := NewSession(NewGeneratorWithSource(rand.NewSource(42)))
	if clock != nil {
		s.now = clock.Now
	}
	return s
}

func mustStart(t *testing.T, s *Session, settings Settings) {
	t.Helper()
	if err := s.Start(settings); err != nil {
		t.Fatalf("Start: %v", err)
	}
}

func answerCurrent(t *testing.T, s *Session, correct bool) Outcome {
	t.Helper()
	q := s.CurrentQuestion()
	if q == nil {
		t.Fatal("no current question")
	}
	answer := q.Answer
	if !correct {
		answer++
	}
	out, err := s.SubmitAnswer(strconv.Itoa(answer))
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	return out
}

func TestStart_Bounds(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		limit     int
		op        Operation
		wantField string
	}{
		{"count below min", 4, 5, OpAddition, "question_count"},
		{"count above max", 21, 5, OpAddition, "question_count"},
		{"count at min", 5, 5, OpAddition, ""},
		{"count at max", 20, 5, OpAddition, ""},
		{"limit below min", 10, 2, OpAddition, "time_limit"},
		{"limit above max", 10, 11, OpAddition, "time_limit"},
		{"limit at min", 10, 3, OpAddition, ""},
		{"limit at max", 10, 10, OpAddition, ""},
		{"unknown operation", 10, 5, Operation("modulo"), "operation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSession(nil)
			err := s.Start(Settings{Operation: tt.op, QuestionCount: tt.count, TimeLimit: tt.limit})
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if s.State() != StateActive {
					t.Errorf("state = %v, want active", s.State())
				}
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error = %v, want *ConfigError", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", cfgErr.Field, tt.wantField)
			}
			if s.State() != StateIdle {
				t.Errorf("state = %v, want idle after rejected start", s.State())
			}
		})
	}
}

func TestStart_PreGeneratesAllQuestions(t *testing.T) {
	s := testSession(nil)
	mustStart(t, s, Settings{Operation: OpMixed, QuestionCount: 7, TimeLimit: 5})

	if got := s.TotalQuestions(); got != 7 {
		t.Fatalf("TotalQuestions = %d, want 7", got)
	}
	if s.ID() == "" {
		t.Error("expected a session ID after start")
	}
	if q := s.CurrentQuestion(); q == nil {
		t.Error("expected a current question after start")
	}
}

func TestSubmitAnswer_CorrectIncrementsCount(t *testing.T) {
	clock := newFakeClock()
	s := testSession(clock)
	mustStart(t, s, Settings{Operation: OpAddition, QuestionCount: 5, TimeLimit: 5})

	out := answerCurrent(t, s, true)
	if out.Kind != OutcomeCorrect {
		t.Fatalf("outcome = %v, want correct", out.Kind)
	}
	if s.CorrectCount() != 1 {
		t.Errorf("CorrectCount = %d, want 1", s.CorrectCount())
	}

	q := s.CurrentQuestion()
	if !q.Answered || !q.Correct {
		t.Error("question not recorded as answered correct")
	}
	if out.CorrectAnswer != q.Answer {
		t.Errorf("outcome answer = %d, want %d", out.CorrectAnswer, q.Answer)
	}
}

func TestSubmitAnswer_SingleAssignment(t *testing.T) {
	s := testSession(newFakeClock())
	mustStart(t, s, Settings{Operation: OpAddition, QuestionCount: 5, TimeLimit: 5})

	answerCurrent(t, s, true)
	if _, err := s.SubmitAnswer("1"); !errors.Is(err, ErrAlreadyAnswered) {
		t.Errorf("second submit error = %v, want ErrAlreadyAnswered", err)
	}
	if s.CorrectCount() != 1 {
		t.Errorf("CorrectCount = %d, want 1", s.CorrectCount())
	}
}

func TestSubmitAnswer_Streaks(t *testing.T) {
	s := testSession(newFakeClock())
	mustStart(t, s, Settings{Operation: OpAddition, QuestionCount: 10, TimeLimit: 5})

	for i := 0; i < 3; i++ {
		answerCurrent(t, s, true)
		s.Advance()
	}
	if s.CurrentStreak() != 3 {
		t.Fatalf("CurrentStreak = %d, want 3", s.CurrentStreak())
	}

	answerCurrent(t, s, false)
	if s.CurrentStreak() != 0 {
		t.Errorf("CurrentStreak = %d, want 0 after wrong answer", s.CurrentStreak())
	}
	if s.BestStreak() != 3 {
		t.Errorf("BestStreak = %d, want 3", s.BestStreak())
	}
}

func TestSubmitAnswer_StreakMilestone(t *testing.T) {
	s := testSession(newFakeClock())
	mustStart(t, s, Settings{Operation: OpAddition, QuestionCount: 10, TimeLimit: 5})

	var milestones []int
	for i := 0; i < 10; i++ {
		out := answerCurrent(t, s, true)
		if out.StreakMilestone != 0 {
			milestones = append(milestones, out.StreakMilestone)
		}
		s.Advance()
	}
	if len(milestones) != 2 || milestones[0] != 5 || milestones[1] != 10 {
		t.Errorf("milestones = %v, want [5 10]", milestones)
	}
}

func TestSubmitAnswer_InvalidInput(t *testing.T) {
	tests := []string{"", "  ", "abc", "12a", "1.5", "--3", "+3", "4 2", "1000", "-1000"}

	for _, raw := range tests {
		s := testSession(newFakeClock())
		mustStart(t, s, Settings{Operation: OpAddition, QuestionCount: 5, TimeLimit: 5})
		answerCurrent(t, s, true)
		s.Advance()

		out, err := s.SubmitAnswer(raw)
		if err != nil {
			t.Fatalf("SubmitAnswer(%q): %v", raw, err)
		}
		if out.Kind != OutcomeInvalid {
			t.Errorf("SubmitAnswer(%q) = %v, want invalid", raw, out.Kind)
		}
		if s.CorrectCount() != 1 {
			t.Errorf("CorrectCount changed on invalid input %q", raw)
		}
		if s.CurrentStreak() != 0 {
			t.Errorf("streak survived invalid input %q", raw)
		}
		if s.CurrentQuestion().Answered {
			t.Errorf("question scored on invalid input %q", raw)
		}
	}
}

func TestSubmitAnswer_AcceptsNegativeAndPadded(t *testing.T) {
	for _, raw := range []string{"-12", " 42 ", "007"} {
		if _, ok := parseAnswer(raw); !ok {
			t.Errorf("parseAnswer(%q) rejected", raw)
		}
	}
}

func TestSubmitAnswer_TimeoutBoundary(t *testing.T) {
	clock := newFakeClock()
	s := testSession(clock)
	mustStart(t, s, Settings{Operation: OpAddition, QuestionCount: 5, TimeLimit: 5})

	// Exactly at the limit is not a timeout.
	clock.Advance(5 * time.Second)
	out := answerCurrent(t, s, true)
	if out.Kind != OutcomeCorrect {
		t.Fatalf("outcome at exact limit = %v, want correct", out.Kind)
	}
	s.Advance()

	answerCurrent(t, s, true)
	s.Advance()
	if s.CurrentStreak() != 2 {
		t.Fatalf("CurrentStreak = %d, want 2", s.CurrentStreak())
	}

	// Past the limit is a timeout: nothing recorded, streak broken, no advance.
	clock.Advance(5*time.Second + time.Millisecond)
	before := s.QuestionNumber()
	out, err := s.SubmitAnswer("1")
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if out.Kind != OutcomeTimeout {
		t.Fatalf("outcome past limit = %v, want timeout", out.Kind)
	}
	if s.CurrentQuestion().Answered {
		t.Error("question recorded on timeout")
	}
	if s.CurrentStreak() != 0 {
		t.Error("streak survived timeout")
	}
	if s.QuestionNumber() != before {
		t.Error("timeout advanced the question")
	}
}

func TestTimeRemaining_NeverNegative(t *testing.T) {
	clock := newFakeClock()
	s := testSession(clock)
	mustStart(t, s, Settings{Operation: OpAddition, QuestionCount: 5, TimeLimit: 3})

	if got := s.TimeRemaining(); got != 3*time.Second {
		t.Errorf("TimeRemaining = %v, want 3s", got)
	}
	clock.Advance(10 * time.Second)
	if got := s.TimeRemaining(); got != 0 {
		t.Errorf("TimeRemaining = %v, want 0", got)
	}
}

func TestAdvance_FinishesAfterLastQuestion(t *testing.T) {
	clock := newFakeClock()
	s := testSession(clock)
	mustStart(t, s, Settings{Operation: OpAddition, QuestionCount: 5, TimeLimit: 5})

	for i := 0; i < 5; i++ {
		if s.State() != StateActive {
			t.Fatalf("state = %v before question %d", s.State(), i+1)
		}
		answerCurrent(t, s, true)
		clock.Advance(time.Second)
		s.Advance()
	}

	if s.State() != StateFinished {
		t.Fatalf("state = %v, want finished", s.State())
	}
	if q := s.CurrentQuestion(); q != nil {
		t.Error("expected no current question after finish")
	}

	// Advancing past the end stays finished.
	s.Advance()
	if s.State() != StateFinished {
		t.Error("advance past game over changed state")
	}
}

func TestFinalResults(t *testing.T) {
	clock := newFakeClock()
	s := testSession(clock)
	mustStart(t, s, Settings{Operation: OpSubtraction, QuestionCount: 10, TimeLimit: 4})

	if _, err := s.FinalResults(); !errors.Is(err, ErrNotFinished) {
		t.Fatalf("FinalResults before finish = %v, want ErrNotFinished", err)
	}

	for i := 0; i < 10; i++ {
		answerCurrent(t, s, i < 7) // 7 correct, 3 wrong
		clock.Advance(2 * time.Second)
		s.Advance()
	}

	res, err := s.FinalResults()
	if err != nil {
		t.Fatalf("FinalResults: %v", err)
	}
	if res.TotalQuestions != 10 || res.CorrectCount != 7 {
		t.Errorf("totals = %d/%d, want 7/10", res.CorrectCount, res.TotalQuestions)
	}
	if res.Accuracy != 70.0 {
		t.Errorf("Accuracy = %v, want exactly 70.0", res.Accuracy)
	}
	if res.Operation != OpSubtraction || res.TimeLimit != 4 {
		t.Errorf("settings not carried: %v / %d", res.Operation, res.TimeLimit)
	}
	if res.BestStreak != 7 {
		t.Errorf("BestStreak = %d, want 7", res.BestStreak)
	}
	if res.Elapsed != 20*time.Second {
		t.Errorf("Elapsed = %v, want 20s", res.Elapsed)
	}
	if res.SessionID == "" {
		t.Error("missing session ID")
	}
}

func TestReset_ReturnsToIdle(t *testing.T) {
	s := testSession(newFakeClock())
	mustStart(t, s, Settings{Operation: OpAddition, QuestionCount: 5, TimeLimit: 5})
	answerCurrent(t, s, true)

	s.Reset()
	if s.State() != StateIdle {
		t.Fatalf("state = %v, want idle", s.State())
	}
	if s.CurrentQuestion() != nil {
		t.Error("question survived reset")
	}
	if s.CorrectCount() != 0 || s.CurrentStreak() != 0 || s.BestStreak() != 0 {
		t.Error("counters survived reset")
	}
	if _, err := s.SubmitAnswer("1"); !errors.Is(err, ErrNotActive) {
		t.Errorf("SubmitAnswer after reset = %v, want ErrNotActive", err)
	}
}

func TestFullGame_PerfectRun(t *testing.T) {
	s := testSession(newFakeClock())
	mustStart(t, s, Settings{Operation: OpAddition, QuestionCount: 5, TimeLimit: 5})

	for s.State() == StateActive {
		answerCurrent(t, s, true)
		s.Advance()
	}

	res, err := s.FinalResults()
	if err != nil {
		t.Fatalf("FinalResults: %v", err)
	}
	if res.CorrectCount != 5 || res.Accuracy != 100.0 {
		t.Errorf("results = %d correct, %.1f%%, want 5 and 100.0", res.CorrectCount, res.Accuracy)
	}
}
