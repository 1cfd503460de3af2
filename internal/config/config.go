// Package config provides TOML configuration and XDG path helpers.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/abhisek/flashmath/internal/game"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game Game `toml:"game"`
	Log  Log  `toml:"log"`
}

// Game maps default game settings.
type Game struct {
	Operation *string `toml:"operation"`
	Questions *int    `toml:"questions"`
	TimeLimit *int    `toml:"time-limit"`
}

// Log maps the remote result-log endpoint settings.
type Log struct {
	URL   *string `toml:"url"`
	Token *string `toml:"token"`
}

// Load reads a TOML config from the given path. A missing file is not an
// error; the zero FileConfig falls through to built-in defaults.
func Load(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Settings holds the resolved effective configuration.
type Settings struct {
	// Defaults are the initial game settings shown on the setup screen.
	// They may be out of bounds when the config file says so; Session.Start
	// still validates.
	Defaults game.Settings

	// LogURL is the remote result-log endpoint, empty when unset.
	LogURL string

	// LogToken authenticates against the result log, empty when unset.
	LogToken string
}

// Resolve merges the file config with environment overrides
// (FLASHMATH_LOG_URL, FLASHMATH_LOG_TOKEN) on top of built-in defaults.
func Resolve(file FileConfig) Settings {
	s := Settings{Defaults: game.DefaultSettings()}

	if file.Game.Operation != nil {
		if op, ok := game.ParseOperation(*file.Game.Operation); ok {
			s.Defaults.Operation = op
		}
	}
	if file.Game.Questions != nil {
		s.Defaults.QuestionCount = *file.Game.Questions
	}
	if file.Game.TimeLimit != nil {
		s.Defaults.TimeLimit = *file.Game.TimeLimit
	}

	if file.Log.URL != nil {
		s.LogURL = *file.Log.URL
	}
	if file.Log.Token != nil {
		s.LogToken = *file.Log.Token
	}
	if v := os.Getenv("FLASHMATH_LOG_URL"); v != "" {
		s.LogURL = v
	}
	if v := os.Getenv("FLASHMATH_LOG_TOKEN"); v != "" {
		s.LogToken = v
	}
	return s
}
