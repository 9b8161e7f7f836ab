// Package config loads the server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Store backends selectable via WALL_STORE_BACKEND.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config is the full server configuration, bound from WALL_* environment
// variables.
type Config struct {
	Port      string `envconfig:"PORT" default:"8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`

	// StoreBackend selects the message store: sqlite or memory.
	StoreBackend string `envconfig:"STORE_BACKEND" default:"sqlite"`
	SQLitePath   string `envconfig:"SQLITE_PATH" default:"data/wall.db"`
	BoltPath     string `envconfig:"BOLT_PATH" default:"data/wall-meta.db"`

	// DisplayDuration is the window an approved message stays on screen.
	DisplayDuration time.Duration `envconfig:"DISPLAY_DURATION" default:"45s"`
	MaxTextLength   int           `envconfig:"MAX_TEXT_LENGTH" default:"280"`

	// TermsPath optionally overrides the built-in banned-term list with a
	// JSON word list.
	TermsPath string `envconfig:"TERMS_PATH"`

	AdminToken     string `envconfig:"ADMIN_TOKEN"`
	ModeratorToken string `envconfig:"MODERATOR_TOKEN"`
	ScreenToken    string `envconfig:"SCREEN_TOKEN"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173"`
}

// Load binds and validates the configuration from WALL_* variables.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("wall", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if cfg.StoreBackend != BackendSQLite && cfg.StoreBackend != BackendMemory {
		return Config{}, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
	if cfg.DisplayDuration <= 0 {
		return Config{}, fmt.Errorf("display duration must be positive, got %s", cfg.DisplayDuration)
	}
	if cfg.MaxTextLength <= 0 {
		return Config{}, fmt.Errorf("max text length must be positive, got %d", cfg.MaxTextLength)
	}
	return cfg, nil
}
