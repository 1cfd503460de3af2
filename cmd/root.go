package cmd

import (
	"github.com/abhisek/flashmath/internal/history"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flashmath",
	Short: "Timed mental arithmetic in the terminal",
	Long:  "Flashmath — race the clock through two-digit addition and subtraction, and see how you rank against every game on record.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FLASHMATH_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: $XDG_CONFIG_HOME/flashmath/config.toml)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then FLASHMATH_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, history.EnsureDir(p)
	}
	return history.DefaultDBPath()
}
