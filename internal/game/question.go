package game

import (
	"fmt"
	"time"
)

// Operator is the arithmetic operator of a question.
type Operator string

const (
	OperatorAdd Operator = "+"
	OperatorSub Operator = "-"
)

// Question is a single two-digit arithmetic problem. The operands,
// operator and answer are fixed at generation time; the submission
// fields are set at most once, when the player answers.
type Question struct {
	// First and Second are the operands, each in [MinOperand, MaxOperand].
	// For subtraction First >= Second, so Answer is never negative.
	First  int
	Second int

	// Op is the operator applied to the operands.
	Op Operator

	// Answer is the correct result.
	Answer int

	// Submitted is the parsed answer the player gave, valid only when
	// Answered is true.
	Submitted int

	// Correct records whether Submitted matched Answer.
	Correct bool

	// Answered is true once a submission has been scored for this question.
	Answered bool

	// ResponseTime is how long the player took, valid only when Answered.
	ResponseTime time.Duration
}

// String renders the problem for display, e.g. "34 + 57 = ?".
func (q *Question) String() string {
	return fmt.Sprintf("%d %s %d = ?", q.First, q.Op, q.Second)
}

// record scores a submission. A question is scored at most once per game.
func (q *Question) record(submitted int, elapsed time.Duration) {
	q.Submitted = submitted
	q.Correct = submitted == q.Answer
	q.Answered = true
	q.ResponseTime = elapsed
}
