package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TickIntervalMs != 100 || cfg.OutputDir != "." {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.TickInterval() != 100*time.Millisecond {
		t.Fatalf("TickInterval = %v; want 100ms", cfg.TickInterval())
	}
}

func TestLoad_OverlayAndNormalize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "babelplayer.yaml")
	data := []byte("mpris_service: org.mpris.MediaPlayer2.spotify\ntick_interval_ms: -5\ncolors:\n  active: \"201\"\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MprisService != "org.mpris.MediaPlayer2.spotify" {
		t.Errorf("MprisService = %q", cfg.MprisService)
	}
	// invalid interval falls back to the default
	if cfg.TickIntervalMs != 100 {
		t.Errorf("TickIntervalMs = %d; want 100", cfg.TickIntervalMs)
	}
	if cfg.Colors.Active != "201" {
		t.Errorf("Colors.Active = %q; want 201", cfg.Colors.Active)
	}
	// untouched fields keep their defaults
	if cfg.Colors.Dim != "245" {
		t.Errorf("Colors.Dim = %q; want default 245", cfg.Colors.Dim)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- {"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error on malformed yaml")
	}
}
