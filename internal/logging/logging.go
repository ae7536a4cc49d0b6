// Package logging builds the process logger from the environment.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds logging settings read from LAPORAN_* variables.
type Config struct {
	Format string `envconfig:"LOG_FORMAT" default:"text"`
	Level  string `envconfig:"LOG_LEVEL" default:"warn"`
}

// LoadConfig reads the environment, after loading an optional .env file
// from the working directory.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("laporan", &cfg); err != nil {
		return nil, fmt.Errorf("reading logging environment: %w", err)
	}
	return &cfg, nil
}

// ParseLevel accepts debug, info, warn and error, case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}

// New returns a logger writing to w. An unknown level falls back to warn.
func New(w io.Writer, cfg *Config) *slog.Logger {
	format, level := "text", "warn"
	if cfg != nil {
		format, level = cfg.Format, cfg.Level
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		lvl = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
