package game

// OutcomeKind classifies the result of a submission attempt.
type OutcomeKind int

const (
	// OutcomeCorrect means the parsed answer matched within the time limit.
	OutcomeCorrect OutcomeKind = iota

	// OutcomeIncorrect means the parsed answer did not match.
	OutcomeIncorrect

	// OutcomeTimeout means the time limit had already expired when the
	// submission arrived. Nothing is recorded on the question; the caller
	// is expected to Advance.
	OutcomeTimeout

	// OutcomeInvalid means the input did not parse as an in-range signed
	// integer. The question is not scored and not advanced.
	OutcomeInvalid
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCorrect:
		return "correct"
	case OutcomeIncorrect:
		return "incorrect"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeInvalid:
		return "invalid"
	}
	return "unknown"
}

// Outcome is the result of Session.SubmitAnswer. Timeouts and wrong
// answers are ordinary outcomes, not errors.
type Outcome struct {
	Kind OutcomeKind

	// CorrectAnswer carries the expected result for display. Set on all
	// outcomes except Invalid, which never reveals the answer.
	CorrectAnswer int

	// StreakMilestone is a reached streak milestone (5, 10, ...) when the
	// answer was correct and crossed one, 0 otherwise.
	StreakMilestone int
}
