package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
engine = "regexp2"
delimiter = "tsv"
strip_ansi = true
start_editing = true
quit_key = "x"
edit_key = "i"
highlight = ["green", "magenta"]
match_timeout = "1s"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Engine != "regexp2" || cfg.Delimiter != "tsv" || !cfg.StripANSI || !cfg.StartEditing {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if cfg.QuitRune() != 'x' || cfg.EditRune() != 'i' {
		t.Errorf("Unexpected keys %q %q", cfg.QuitKey, cfg.EditKey)
	}
	if !reflect.DeepEqual(cfg.Highlight, []string{"green", "magenta"}) {
		t.Errorf("Unexpected highlight %v", cfg.Highlight)
	}
	if cfg.MatchTimeout.Duration != time.Second {
		t.Errorf("Expected 1s timeout, got %v", cfg.MatchTimeout)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `strip_ansi = true`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Engine != "re2" || cfg.QuitKey != "q" || len(cfg.Highlight) != 3 {
		t.Errorf("Defaults lost: %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":        `engine = `,
		"engine":        `engine = "pcre"`,
		"delimiter":     `delimiter = "pipe"`,
		"quit key":      `quit_key = "qq"`,
		"same keys":     "quit_key = \"e\"\nedit_key = \"e\"",
		"timeout":       `match_timeout = "soon"`,
		"neg timeout":   `match_timeout = "-1s"`,
		"empty editkey": `edit_key = ""`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, content)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil || !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Expected defaults, got %+v, %v", cfg, err)
	}
}
