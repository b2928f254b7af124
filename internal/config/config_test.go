package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultAsteroidsConfig()
	if err := yaml.Unmarshal(GetDefaultYAML("asteroids"), &cfg); err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	if cfg != DefaultAsteroidsConfig() {
		t.Errorf("embedded defaults drifted from DefaultAsteroidsConfig:\n got %+v\nwant %+v", cfg, DefaultAsteroidsConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestGetDefaultYAMLUnknown(t *testing.T) {
	if GetDefaultYAML("pong") != nil {
		t.Error("unknown game should have no embedded yaml")
	}
}

func TestLoadAsteroidsCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "ship:\n  lives: 7\nwaves:\n  delay: 500ms\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAsteroids(path)
	if err != nil {
		t.Fatalf("LoadAsteroids: %v", err)
	}
	if cfg.Ship.Lives != 7 {
		t.Errorf("Ship.Lives = %d, expected 7", cfg.Ship.Lives)
	}
	if cfg.Waves.Delay != 500*time.Millisecond {
		t.Errorf("Waves.Delay = %v, expected 500ms", cfg.Waves.Delay)
	}
	if cfg.World.Width != 800 {
		t.Errorf("unset keys should keep defaults, World.Width = %v", cfg.World.Width)
	}
}

func TestLoadAsteroidsErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadAsteroids(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing explicit config should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("ship: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAsteroids(bad); err == nil {
		t.Error("malformed yaml should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("ship:\n  drag: 1.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadAsteroids(invalid)
	if err == nil || !strings.Contains(err.Error(), "drag") {
		t.Errorf("expected drag validation error, got %v", err)
	}
}

func TestLoadAsteroidsFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadAsteroids("")
	if err != nil {
		t.Fatalf("LoadAsteroids: %v", err)
	}
	if cfg != DefaultAsteroidsConfig() {
		t.Error("expected embedded defaults when no config files exist")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AsteroidsConfig)
		field  string
	}{
		{"zero world", func(c *AsteroidsConfig) { c.World.Width = 0 }, "world"},
		{"zero drag", func(c *AsteroidsConfig) { c.Ship.Drag = 0 }, "drag"},
		{"inverted radius", func(c *AsteroidsConfig) { c.Asteroids.MinRadius = 60 }, "radius range"},
		{"inverted saucer spawn", func(c *AsteroidsConfig) { c.Saucer.SpawnMin = time.Minute }, "spawn interval"},
		{"huge safe radius", func(c *AsteroidsConfig) { c.Asteroids.SafeRadius = 400 }, "safe_radius"},
		{"unknown progression", func(c *AsteroidsConfig) { c.Difficulty.Progression.Type = "level" }, "progression"},
		{"no lives", func(c *AsteroidsConfig) { c.Ship.Lives = 0 }, "lives"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultAsteroidsConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q should mention %q", err, tt.field)
			}
		})
	}
}

func TestApplyAsteroidsPreset(t *testing.T) {
	tests := []struct {
		preset       DifficultyPreset
		lives        int
		enabled      bool
		initialLevel float64
	}{
		{DifficultyEasy, 5, true, 0.0},
		{DifficultyNormal, 3, true, 0.3},
		{DifficultyHard, 2, true, 0.7},
		{DifficultyFixed, 3, false, 0.0},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultAsteroidsConfig()
			ApplyAsteroidsPreset(&cfg, tt.preset)
			if cfg.Ship.Lives != tt.lives {
				t.Errorf("Lives = %d, expected %d", cfg.Ship.Lives, tt.lives)
			}
			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tt.enabled)
			}
			if cfg.Difficulty.InitialLevel != tt.initialLevel {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tt.initialLevel)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset(""); !ok || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, ok)
	}
	if p, ok := ParsePreset("hard"); !ok || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, ok)
	}
	if _, ok := ParsePreset("insane"); ok {
		t.Error("unknown preset should not parse")
	}
}

func TestDifficultyLevel(t *testing.T) {
	tests := []struct {
		name     string
		cfg      DifficultyConfig
		progress Progress
		expected float64
	}{
		{"wave start", DifficultyConfig{Enabled: true, Progression: ProgressionConfig{Type: "wave", MaxAt: 10}}, Progress{Wave: 1}, 0.0},
		{"wave midway", DifficultyConfig{Enabled: true, Progression: ProgressionConfig{Type: "wave", MaxAt: 10}}, Progress{Wave: 6}, 0.5},
		{"wave capped", DifficultyConfig{Enabled: true, Progression: ProgressionConfig{Type: "wave", MaxAt: 10}}, Progress{Wave: 40}, 1.0},
		{"score with initial", DifficultyConfig{Enabled: true, InitialLevel: 0.5, Progression: ProgressionConfig{Type: "score", MaxAt: 1000}}, Progress{Score: 500}, 0.75},
		{"time", DifficultyConfig{Enabled: true, Progression: ProgressionConfig{Type: "time", MaxAt: 100}}, Progress{Ticks: 25}, 0.25},
		{"disabled", DifficultyConfig{Enabled: false, InitialLevel: 0.3, Progression: ProgressionConfig{Type: "wave", MaxAt: 10}}, Progress{Wave: 10}, 0.3},
		{"none", DifficultyConfig{Enabled: true, InitialLevel: 0.2, Progression: ProgressionConfig{Type: "none"}}, Progress{Wave: 10}, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dm := NewDifficultyManager(tt.cfg)
			if got := dm.Level(tt.progress); got != tt.expected {
				t.Errorf("Level = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestDifficultyScaling(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "wave", MaxAt: 2},
		Scaling:     ScalingConfig{SpeedMultiplier: 1.0, SaucerInterval: 0.5},
	})

	if got := dm.Speed(1.0, Progress{Wave: 1}); got != 1.0 {
		t.Errorf("Speed at wave 1 = %v, expected 1.0", got)
	}
	if got := dm.Speed(1.0, Progress{Wave: 3}); got != 2.0 {
		t.Errorf("Speed at max = %v, expected 2.0", got)
	}
	if got := dm.SaucerInterval(20*time.Second, Progress{Wave: 3}); got != 10*time.Second {
		t.Errorf("SaucerInterval at max = %v, expected 10s", got)
	}

	dm.SetEnabled(false)
	if dm.IsEnabled() {
		t.Error("SetEnabled(false) should disable progression")
	}
	dm.SetInitialLevel(2)
	if got := dm.Level(Progress{}); got != 1.0 {
		t.Errorf("initial level should clamp to 1.0, got %v", got)
	}
}
