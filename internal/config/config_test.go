package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/listcraft/internal/doctree"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "listcraft.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Debounce() != 500*time.Millisecond {
		t.Errorf("debounce = %v, want default 500ms", cfg.Debounce())
	}
	if cfg.NestedOrdinalStyle() != doctree.Disc {
		t.Errorf("nested style = %v, want disc", cfg.NestedOrdinalStyle())
	}
	if !cfg.Policy.OutdentReconvert {
		t.Error("outdent reconvert should default on")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[numbering]
levels = ["upper-roman", "decimal"]

[schedule]
debounce_ms = 250

[policy]
nested_ordinal_style = "circle"
outdent_reconvert = false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Debounce() != 250*time.Millisecond {
		t.Errorf("debounce = %v", cfg.Debounce())
	}
	styles := cfg.LevelStyles()
	if len(styles) != 2 || styles[0] != doctree.UpperRoman || styles[1] != doctree.Decimal {
		t.Errorf("levels = %v", styles)
	}
	if cfg.NestedOrdinalStyle() != doctree.Circle {
		t.Errorf("nested style = %v", cfg.NestedOrdinalStyle())
	}
	if cfg.Policy.OutdentReconvert {
		t.Error("outdent_reconvert = false not honored")
	}
}

func TestLoadRejectsUnknownStyle(t *testing.T) {
	path := writeConfig(t, `
[numbering]
levels = ["fancy-dots"]
`)
	if _, err := Load(path); err == nil {
		t.Fatal("unknown style name must fail validation")
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := writeConfig(t, "numbering = [broken")
	if _, err := Load(path); err == nil {
		t.Fatal("syntax error must be reported")
	}
}

func TestValidateNegativeDebounce(t *testing.T) {
	cfg := Default()
	cfg.Schedule.DebounceMS = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("negative debounce must fail validation")
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, "[schedule]\ndebounce_ms = 100\n")

	reloaded := make(chan Config, 4)
	w, err := NewWatcher(path, func(c Config) { reloaded <- c })
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[schedule]\ndebounce_ms = 321\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Schedule.DebounceMS != 321 {
			t.Errorf("debounce_ms = %d, want 321", cfg.Schedule.DebounceMS)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload observed")
	}
}

func TestWatcherSkipsInvalidConfig(t *testing.T) {
	path := writeConfig(t, "[schedule]\ndebounce_ms = 100\n")

	reloaded := make(chan Config, 4)
	w, err := NewWatcher(path, func(c Config) { reloaded <- c })
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("broken = ["), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
		t.Fatal("invalid config must not reach the handler")
	case <-time.After(300 * time.Millisecond):
	}
}
