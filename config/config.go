// Package config loads runtime settings: built-in defaults, then an
// optional YAML file, then PUPPLAY_* environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Save backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Front ends.
const (
	FrontendTUI   = "tui"
	FrontendPlain = "plain"
)

type Config struct {
	Save    SaveConfig    `yaml:"save"`
	Content ContentConfig `yaml:"content"`
	Game    GameConfig    `yaml:"game"`
	UI      UIConfig      `yaml:"ui"`
}

type SaveConfig struct {
	Backend    string `yaml:"backend" env:"PUPPLAY_SAVE_BACKEND"`
	Dir        string `yaml:"dir" env:"PUPPLAY_SAVE_DIR"`
	SQLitePath string `yaml:"sqlite_path" env:"PUPPLAY_SQLITE_PATH"`
}

// ContentConfig points at a directory of Lua content. Empty means the
// embedded pack.
type ContentConfig struct {
	Dir string `yaml:"dir" env:"PUPPLAY_CONTENT_DIR"`
}

type GameConfig struct {
	TickInterval time.Duration `yaml:"tick_interval" env:"PUPPLAY_TICK_INTERVAL"`
	Seed         int64         `yaml:"seed" env:"PUPPLAY_SEED"` // 0 = time-seeded
}

type UIConfig struct {
	Frontend string `yaml:"frontend" env:"PUPPLAY_FRONTEND"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Save: SaveConfig{
			Backend:    BackendFile,
			Dir:        "saves",
			SQLitePath: "pupplay.db",
		},
		Game: GameConfig{
			TickInterval: 30 * time.Second,
		},
		UI: UIConfig{
			Frontend: FrontendTUI,
		},
	}
}

// Load builds the configuration. An empty path skips the file layer; a
// path that cannot be read is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the binary cannot act on.
func (c *Config) Validate() error {
	switch c.Save.Backend {
	case BackendFile:
		if c.Save.Dir == "" {
			return fmt.Errorf("config: save.dir is required for the file backend")
		}
	case BackendSQLite:
		if c.Save.SQLitePath == "" {
			return fmt.Errorf("config: save.sqlite_path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("config: unknown save backend %q (want %s or %s)", c.Save.Backend, BackendFile, BackendSQLite)
	}

	switch c.UI.Frontend {
	case FrontendTUI, FrontendPlain:
	default:
		return fmt.Errorf("config: unknown frontend %q (want %s or %s)", c.UI.Frontend, FrontendTUI, FrontendPlain)
	}

	if c.Game.TickInterval <= 0 {
		return fmt.Errorf("config: game.tick_interval must be positive, got %s", c.Game.TickInterval)
	}
	return nil
}
