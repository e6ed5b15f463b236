package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally", "config.yaml")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Look.TrueChr != "+" || cfg.Colors.Reached != "cyan" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected defaults persisted: %v", err)
	}
	if !strings.Contains(string(data), "true_chr") {
		t.Fatalf("expected look settings in written file:\n%s", data)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "look:\n  true_chr: \"✓✓\"\n  missing_chr: \"\"\ncolors:\n  todo: \"#ff8800\"\npaths:\n  data_dir: /tmp/habits\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Look.TrueChr != "✓" {
		t.Fatalf("expected glyph trimmed to one rune, got %q", cfg.Look.TrueChr)
	}
	if cfg.Look.MissingChr != baseChr {
		t.Fatalf("expected empty glyph to fall back to %q, got %q", baseChr, cfg.Look.MissingChr)
	}
	if cfg.Look.FalseChr != "-" {
		t.Fatalf("expected unset keys to keep defaults, got %q", cfg.Look.FalseChr)
	}
	if cfg.Colors.Todo != "#ff8800" {
		t.Fatalf("expected todo colour override, got %q", cfg.Colors.Todo)
	}
	dir, err := cfg.DataDir()
	if err != nil || dir != "/tmp/habits" {
		t.Fatalf("DataDir = %q, %v", dir, err)
	}
	archive, err := cfg.ArchiveDir()
	if err != nil || archive != filepath.Join("/tmp/habits", "archive") {
		t.Fatalf("ArchiveDir = %q, %v", archive, err)
	}
}

func TestLoadFileRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("look: [unterminated"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected error for a corrupt config file")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("TALLY_COLORS_REACHED", "green")
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Colors.Reached != "green" {
		t.Fatalf("expected env override, got %q", cfg.Colors.Reached)
	}
}
