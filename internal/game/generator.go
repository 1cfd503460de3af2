package game

import (
	"math/rand"
	"time"
)

// Operation selects how operators are chosen for generated questions.
type Operation string

const (
	// OpAddition generates only addition problems.
	OpAddition Operation = "addition"

	// OpSubtraction generates only subtraction problems, with operands
	// ordered so the answer is non-negative.
	OpSubtraction Operation = "subtraction"

	// OpMixed picks addition or subtraction with equal probability per question.
	OpMixed Operation = "mixed"
)

// Operations lists the recognized operation types in display order.
func Operations() []Operation {
	return []Operation{OpAddition, OpSubtraction, OpMixed}
}

// Valid reports whether op is a recognized operation type.
func (op Operation) Valid() bool {
	switch op {
	case OpAddition, OpSubtraction, OpMixed:
		return true
	}
	return false
}

// Label returns the operation name for display.
func (op Operation) Label() string {
	switch op {
	case OpAddition:
		return "Addition"
	case OpSubtraction:
		return "Subtraction"
	case OpMixed:
		return "Mixed (+ and -)"
	}
	return string(op)
}

// ParseOperation maps a config or flag value to an Operation.
func ParseOperation(s string) (Operation, bool) {
	op := Operation(s)
	return op, op.Valid()
}

// Generator produces random two-digit arithmetic questions.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator seeded from the current time.
func NewGenerator() *Generator {
	return NewGeneratorWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewGeneratorWithSource creates a Generator with an explicit random
// source, for deterministic tests.
func NewGeneratorWithSource(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// Generate draws one question for the given operation type. Operands are
// drawn independently and uniformly from [MinOperand, MaxOperand].
func (g *Generator) Generate(op Operation) Question {
	first := g.operand()
	second := g.operand()

	useAdd := op == OpAddition
	if op == OpMixed {
		useAdd = g.rng.Intn(2) == 0
	}

	if useAdd {
		return Question{
			First:  first,
			Second: second,
			Op:     OperatorAdd,
			Answer: first + second,
		}
	}

	// Subtraction keeps the answer non-negative.
	if first < second {
		first, second = second, first
	}
	return Question{
		First:  first,
		Second: second,
		Op:     OperatorSub,
		Answer: first - second,
	}
}

// GenerateSet draws count independent questions. Duplicate problems are
// permitted; there is no deduplication.
func (g *Generator) GenerateSet(op Operation, count int) []Question {
	questions := make([]Question, count)
	for i := range questions {
		questions[i] = g.Generate(op)
	}
	return questions
}

func (g *Generator) operand() int {
	return MinOperand + g.rng.Intn(MaxOperand-MinOperand+1)
}
