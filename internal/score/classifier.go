// Package score maps game accuracy to performance tiers and ranks a
// result against the historical accuracy population.
package score

// Tier is a qualitative performance band derived from accuracy.
type Tier int

const (
	TierPerfect Tier = iota
	TierGreat
	TierGood
	TierOkay
	TierPoor
)

// Tier boundaries, in accuracy percent.
const (
	perfectScore = 100
	greatScore   = 90
	goodScore    = 80
	okayScore    = 70
)

func (t Tier) String() string {
	switch t {
	case TierPerfect:
		return "perfect"
	case TierGreat:
		return "great"
	case TierGood:
		return "good"
	case TierOkay:
		return "okay"
	case TierPoor:
		return "poor"
	}
	return "unknown"
}

// Tiers lists all tiers from best to worst.
func Tiers() []Tier {
	return []Tier{TierPerfect, TierGreat, TierGood, TierOkay, TierPoor}
}

// Classify maps an accuracy percentage to its tier. Total over [0, 100]:
// 100 is Perfect, [90,100) Great, [80,90) Good, [70,80) Okay, below Poor.
func Classify(accuracy float64) Tier {
	switch {
	case accuracy >= perfectScore:
		return TierPerfect
	case accuracy >= greatScore:
		return TierGreat
	case accuracy >= goodScore:
		return TierGood
	case accuracy >= okayScore:
		return TierOkay
	default:
		return TierPoor
	}
}

// Severity is the display register of a tier message.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Display is the fixed icon/message/severity triple shown for a tier.
type Display struct {
	Icon     string
	Message  string
	Severity Severity
}

var tierDisplays = map[Tier]Display{
	TierPerfect: {Icon: "🏆", Message: "Perfect! You're a genius!", Severity: SeveritySuccess},
	TierGreat:   {Icon: "🌟", Message: "Great work!", Severity: SeveritySuccess},
	TierGood:    {Icon: "👍", Message: "Well done!", Severity: SeverityInfo},
	TierOkay:    {Icon: "💪", Message: "A little more practice and you'll nail it!", Severity: SeverityWarning},
	TierPoor:    {Icon: "📚", Message: "Keep practicing!", Severity: SeverityError},
}

// DisplayFor returns the display triple for a tier.
func DisplayFor(t Tier) Display {
	return tierDisplays[t]
}
