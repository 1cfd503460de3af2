package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/flashmath/internal/app"
	"github.com/abhisek/flashmath/internal/coach"
	"github.com/abhisek/flashmath/internal/config"
	"github.com/abhisek/flashmath/internal/game"
	"github.com/abhisek/flashmath/internal/history"
	"github.com/spf13/cobra"
)

// runApp resolves configuration, opens the history store, and launches
// the TUI.
func runApp(cmd *cobra.Command) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	recorder, closeStore, err := buildRecorder(cmd, settings)
	if err != nil {
		fmt.Fprintln(os.Stderr, "History unavailable:", err)
		fmt.Fprintln(os.Stderr, "Results will not be saved or ranked.")
	}
	if closeStore != nil {
		defer closeStore()
	}

	deps := app.Deps{
		Generator: game.NewGenerator(),
		Recorder:  recorder,
		Defaults:  settings.Defaults,
	}

	// Coach is optional; the round runs fine without an API key.
	if svc, ok := coach.NewServiceFromEnv(); ok {
		deps.Coach = svc
	}

	return app.Run(deps)
}

// resolveSettings loads the config file (--config flag or XDG default)
// and applies environment overrides.
func resolveSettings(cmd *cobra.Command) (config.Settings, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}
	file, err := config.Load(path)
	if err != nil {
		return config.Settings{}, fmt.Errorf("load config: %w", err)
	}
	return config.Resolve(file), nil
}

// buildRecorder opens the local store and wires the remote log when one
// is configured. The returned close func is nil when the store failed.
func buildRecorder(cmd *cobra.Command, settings config.Settings) (*history.Recorder, func(), error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	store, err := history.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	var remote *history.Client
	if settings.LogURL != "" {
		remote = history.NewClient(settings.LogURL, settings.LogToken)
	}

	return history.NewRecorder(store, remote), func() { store.Close() }, nil
}
