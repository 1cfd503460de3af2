package score

import "errors"

// ErrNoData is returned when no historical accuracies are available to
// rank or aggregate against.
var ErrNoData = errors.New("no historical data")

// PercentileRank computes the standing of an accuracy against the
// historical population, as "top X%" where lower is better.
//
// A result tied with N others occupies the average of the ranks that
// group spans: rank = better + (tied+1)/2, percentile = 100*rank/n.
// The half-tie adjustment is load-bearing — historical displayed values
// were computed this way.
//
// The history passed in must not include the game being ranked; rank is
// computed against the population fetched before the result is appended.
func PercentileRank(accuracy float64, history []float64) (float64, error) {
	if len(history) == 0 {
		return 0, ErrNoData
	}

	var better, tied int
	for _, h := range history {
		switch {
		case h > accuracy:
			better++
		case h == accuracy:
			tied++
		}
	}

	rank := float64(better) + float64(tied+1)/2
	return rank / float64(len(history)) * 100, nil
}

// TierTally is the count and share of historical games in one tier.
type TierTally struct {
	Count int
	Rate  float64 // percent of all games
}

// Aggregate summarizes the historical population for reporting.
type Aggregate struct {
	Games        int
	MeanAccuracy float64
	ByTier       map[Tier]TierTally
}

// Summarize computes per-tier tallies and the mean accuracy over the
// historical population.
func Summarize(history []float64) (Aggregate, error) {
	if len(history) == 0 {
		return Aggregate{}, ErrNoData
	}

	agg := Aggregate{
		Games:  len(history),
		ByTier: make(map[Tier]TierTally, len(Tiers())),
	}

	var sum float64
	counts := make(map[Tier]int)
	for _, h := range history {
		sum += h
		counts[Classify(h)]++
	}
	agg.MeanAccuracy = sum / float64(len(history))

	for _, t := range Tiers() {
		agg.ByTier[t] = TierTally{
			Count: counts[t],
			Rate:  float64(counts[t]) / float64(len(history)) * 100,
		}
	}
	return agg, nil
}
