package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/BurntSushi/toml"
)

// config holds the settings of one invocation. Values come from an optional TOML file and are
// then overridden by command-line flags.
type config struct {
	Schemas     []string `toml:"schemas"`
	Format      string   `toml:"format"`
	LogLevel    string   `toml:"log_level"`
	LogFormat   string   `toml:"log_format"`
	Suggestions *int     `toml:"suggestions"`
}

func defaultConfig() config {
	return config{
		Format:    "text",
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

func loadConfig(path string, cfg *config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("failed to load config %s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

func (c *config) validate() error {
	if !slices.Contains([]string{"text", "json", "yaml"}, c.Format) {
		return fmt.Errorf("invalid format %q: must be one of text, json, yaml", c.Format)
	}
	if !slices.Contains([]string{"text", "json"}, c.LogFormat) {
		return fmt.Errorf("invalid log format %q: must be text or json", c.LogFormat)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Suggestions != nil && *c.Suggestions < 0 {
		return errors.New("suggestions must not be negative")
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", s)
}

// newLogger creates a logger writing to w. It does not set the global logger.
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	level, err := parseLevel(levelStr)
	if err != nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
