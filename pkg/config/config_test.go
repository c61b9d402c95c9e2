package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Effects.Gradient.Frames != cfg.Window.FrameRate {
		t.Fatalf("gradient frames = %d, want framerate %d", cfg.Effects.Gradient.Frames, cfg.Window.FrameRate)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	cfg := DefaultConfig()
	cfg.Effects.Active = []string{"wave", "noise"}
	cfg.Effects.CanShake = true
	cfg.Editor.FontSize = 48
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(cfg, loaded) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoadConfigKeepsDefaultsForOmittedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	data := []byte("effects:\n  active: [blur, shake]\n  wave:\n    amplitude: 9\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got := cfg.Effects.Active; !reflect.DeepEqual(got, []string{"blur", "shake"}) {
		t.Errorf("active = %v", got)
	}
	if cfg.Effects.Wave.Amplitude != 9 {
		t.Errorf("wave amplitude = %v, want 9", cfg.Effects.Wave.Amplitude)
	}
	if cfg.Effects.Wave.Frequency != 0.05 {
		t.Errorf("wave frequency = %v, want default 0.05", cfg.Effects.Wave.Frequency)
	}
	if cfg.Window.FrameRate != 60 {
		t.Errorf("framerate = %d, want default 60", cfg.Window.FrameRate)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !IsNotFound(err) {
		t.Fatalf("IsNotFound(%v) = false", err)
	}
	if cfg == nil || cfg.Window.Width != 1200 {
		t.Fatalf("expected defaults alongside the error, got %+v", cfg)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("window:\n  width: -4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if IsNotFound(err) {
		t.Fatal("validation error reported as not-found")
	}
	if cfg.Window.Width != 1200 {
		t.Fatalf("expected defaults on invalid config, got width %d", cfg.Window.Width)
	}
}

func TestShippedSettingsLoad(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "settings.yaml"))
	if err != nil {
		t.Fatalf("shipped settings.yaml: %v", err)
	}
	if len(cfg.Effects.Active) != 3 || cfg.Effects.Active[0] != "particles" {
		t.Errorf("active effects = %v", cfg.Effects.Active)
	}
	if cfg.Effects.Gradient.Frames != cfg.Window.FrameRate {
		t.Errorf("gradient frames = %d, want framerate %d", cfg.Effects.Gradient.Frames, cfg.Window.FrameRate)
	}
}
