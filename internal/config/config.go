// Package config loads user settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"ofekazarya/resplit/internal/export"
	"ofekazarya/resplit/internal/pattern"
)

// Config holds settings that flags can override
type Config struct {
	Engine       string   `toml:"engine"`
	Delimiter    string   `toml:"delimiter"`
	StripANSI    bool     `toml:"strip_ansi"`
	StartEditing bool     `toml:"start_editing"`
	QuitKey      string   `toml:"quit_key"`
	EditKey      string   `toml:"edit_key"`
	Highlight    []string `toml:"highlight"`
	MatchTimeout Duration `toml:"match_timeout"`
	LogFile      string   `toml:"log_file"`
}

// Duration decodes TOML strings such as "250ms"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Engine:       string(pattern.EngineRE2),
		QuitKey:      "q",
		EditKey:      "e",
		Highlight:    []string{"yellow", "blue", "red"},
		MatchTimeout: Duration{pattern.DefaultMatchTimeout},
	}
}

// DefaultPath returns the config file location under the user config dir
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "resplit", "config.toml")
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that flags and the file can both set
func (c Config) Validate() error {
	if _, err := pattern.ParseEngine(c.Engine); err != nil {
		return err
	}
	if c.Delimiter != "" {
		if _, err := export.ParseFormat(c.Delimiter); err != nil {
			return err
		}
	}
	if utf8.RuneCountInString(c.QuitKey) != 1 {
		return fmt.Errorf("quit_key must be a single character, got %q", c.QuitKey)
	}
	if utf8.RuneCountInString(c.EditKey) != 1 {
		return fmt.Errorf("edit_key must be a single character, got %q", c.EditKey)
	}
	if c.QuitKey == c.EditKey {
		return fmt.Errorf("quit_key and edit_key must differ")
	}
	if c.MatchTimeout.Duration < 0 {
		return fmt.Errorf("match_timeout must not be negative")
	}
	return nil
}

// QuitRune returns the quit key as a rune
func (c Config) QuitRune() rune {
	r, _ := utf8.DecodeRuneInString(c.QuitKey)
	return r
}

// EditRune returns the edit key as a rune
func (c Config) EditRune() rune {
	r, _ := utf8.DecodeRuneInString(c.EditKey)
	return r
}
