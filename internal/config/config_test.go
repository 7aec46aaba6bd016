package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load missing: %v", err)
	}
	if cfg.Pan.Step != 0.015 || cfg.Pan.RevealDelay != 300*time.Millisecond {
		t.Fatalf("defaults not applied: %+v", cfg.Pan)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	data := []byte(`
pan:
  step: 0.02
  reveal_delay: 450ms
camera:
  zoomed_position: [0.5, 1.2, 0.7]
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Pan.Step != 0.02 {
		t.Fatalf("step=%v, want 0.02", cfg.Pan.Step)
	}
	if cfg.Pan.RevealDelay != 450*time.Millisecond {
		t.Fatalf("reveal_delay=%v, want 450ms", cfg.Pan.RevealDelay)
	}
	if cfg.Camera.ZoomedPosition != (mgl32.Vec3{0.5, 1.2, 0.7}) {
		t.Fatalf("zoomed_position=%v", cfg.Camera.ZoomedPosition)
	}
	if cfg.Camera.HomePosition != (mgl32.Vec3{1.4, 1.1, 1.8}) {
		t.Fatalf("home_position lost its default: %v", cfg.Camera.HomePosition)
	}
	if cfg.Pan.DriftAmplitude != 0.001 {
		t.Fatalf("drift_amplitude lost its default: %v", cfg.Pan.DriftAmplitude)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "pan: [unterminated"},
		{"zero step", "pan:\n  step: 0\n"},
		{"step above one", "pan:\n  step: 1.5\n"},
		{"pixel factor", "window:\n  pixel_factor: 0\n"},
	}
	for _, c := range tests {
		path := filepath.Join(t.TempDir(), "portfolio.yaml")
		if err := os.WriteFile(path, []byte(c.body), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: Load succeeded, want error", c.name)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "portfolio.yaml")
	cfg := Default()
	cfg.ShowFPS = true
	cfg.Pan.RevealDelay = time.Second
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.ShowFPS || got.Pan.RevealDelay != time.Second || got.Anchor != cfg.Anchor {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORTFOLIO_ASSET_BASE", "https://example.com/site/")
	t.Setenv("PORTFOLIO_FULLSCREEN", "true")
	t.Setenv("PORTFOLIO_SHOW_FPS", "not-a-bool")
	cfg := Default()
	cfg.ApplyEnv()
	if cfg.Assets.Base != "https://example.com/site/" {
		t.Fatalf("base=%q", cfg.Assets.Base)
	}
	if !cfg.Window.Fullscreen {
		t.Fatalf("fullscreen not applied")
	}
	if cfg.ShowFPS {
		t.Fatalf("invalid bool applied")
	}
}
