// Package config loads the settings of the liarsdice command from the
// environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cbodonnell/liarsdice/pkg/log"
)

// Config holds the table settings. Command-line flags override the values
// loaded here.
type Config struct {
	// Seed seeds the dice. Zero means draw a fresh seed at startup.
	Seed         uint64   `env:"LIARSDICE_SEED"`
	StartingDice int      `env:"LIARSDICE_STARTING_DICE" envDefault:"5"`
	Players      []string `env:"LIARSDICE_PLAYERS" envSeparator:"," envDefault:"alice,bob,carol"`
	LogLevel     string   `env:"LIARSDICE_LOG_LEVEL" envDefault:"info"`
	EventBuffer  int      `env:"LIARSDICE_EVENT_BUFFER" envDefault:"1024"`
}

// Load reads Config from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings the game engine does not check itself.
func (c Config) Validate() error {
	if _, err := log.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.EventBuffer <= 0 {
		return fmt.Errorf("event buffer must be positive, got %d", c.EventBuffer)
	}
	seen := make(map[string]bool, len(c.Players))
	for _, name := range c.Players {
		name = strings.TrimSpace(name)
		if name == "" {
			return errors.New("player names must not be empty")
		}
		if seen[name] {
			return fmt.Errorf("player %q is listed twice", name)
		}
		seen[name] = true
	}
	return nil
}
