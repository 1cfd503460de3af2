package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/abhisek/flashmath/internal/score"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the historical accuracy distribution",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := resolveSettings(cmd)
		if err != nil {
			return err
		}
		recorder, closeStore, err := buildRecorder(cmd, settings)
		if err != nil {
			return err
		}
		defer closeStore()

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		accs, err := recorder.Accuracies(ctx)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}

		return writeStats(cmd.OutOrStdout(), accs)
	},
}

// writeStats renders the per-tier distribution report.
func writeStats(w io.Writer, accs []float64) error {
	agg, err := score.Summarize(accs)
	if err != nil {
		fmt.Fprintln(w, "No games on record yet. Play a round first!")
		return nil
	}

	fmt.Fprintf(w, "Games played:     %d\n", agg.Games)
	fmt.Fprintf(w, "Average accuracy: %.1f%%\n\n", agg.MeanAccuracy)

	for _, t := range score.Tiers() {
		tally := agg.ByTier[t]
		d := score.DisplayFor(t)
		fmt.Fprintf(w, "%s %-8s %5d games  %5.1f%%\n",
			d.Icon, t.String(), tally.Count, tally.Rate)
	}
	return nil
}
