package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parsePlatformer(GetDefaultYAML("platformer"))
	if err != nil {
		t.Fatalf("embedded defaults failed to parse: %v", err)
	}
	if cfg != DefaultPlatformerConfig() {
		t.Errorf("embedded YAML differs from DefaultPlatformerConfig:\n%+v\n%+v", cfg, DefaultPlatformerConfig())
	}
}

func TestLoadPlatformerCustomPathOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "platformer.yaml")
	data := []byte("physics:\n  gravity: 1.2\nsession:\n  lives: 7\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadPlatformer(path)
	if err != nil {
		t.Fatalf("LoadPlatformer: %v", err)
	}
	if cfg.Physics.Gravity != 1.2 {
		t.Errorf("Gravity = %v, expected 1.2", cfg.Physics.Gravity)
	}
	if cfg.Session.Lives != 7 {
		t.Errorf("Lives = %d, expected 7", cfg.Session.Lives)
	}
	// Untouched keys keep their defaults
	if cfg.Physics.JumpImpulse != -18 {
		t.Errorf("JumpImpulse = %v, expected default -18", cfg.Physics.JumpImpulse)
	}
	if cfg.Clouds.Count != 12 {
		t.Errorf("Clouds.Count = %d, expected default 12", cfg.Clouds.Count)
	}
}

func TestLoadPlatformerErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadPlatformer(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPlatformer(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("session:\n  lives: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPlatformer(invalid); err == nil {
		t.Error("expected validation error for zero lives")
	}
}

func TestApplyPlatformerPreset(t *testing.T) {
	tests := []struct {
		preset     DifficultyPreset
		lives      int
		speedScale float64
	}{
		{DifficultyEasy, 5, 0.8},
		{DifficultyNormal, 3, 1.0},
		{DifficultyHard, 2, 1.25},
		{DifficultyFixed, 3, 1.0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultPlatformerConfig()
			ApplyPlatformerPreset(&cfg, tc.preset)
			if cfg.Session.Lives != tc.lives {
				t.Errorf("Lives = %d, expected %d", cfg.Session.Lives, tc.lives)
			}
			if cfg.Enemy.SpeedScale != tc.speedScale {
				t.Errorf("SpeedScale = %v, expected %v", cfg.Enemy.SpeedScale, tc.speedScale)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset("hard"); !ok || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %v, %v", p, ok)
	}
	if p, ok := ParsePreset(""); !ok || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %v, %v", p, ok)
	}
	if _, ok := ParsePreset("nightmare"); ok {
		t.Error("ParsePreset should reject unknown presets")
	}
}
