package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadAsteroids loads asteroids configuration.
// Search order: customPath -> ~/.asteroids/configs/asteroids.yaml -> ./configs/asteroids.yaml -> embedded default.
// Files are layered over the defaults, so a partial file only overrides the keys it names.
func LoadAsteroids(customPath string) (AsteroidsConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadAsteroidsFile(customPath)
		if err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath("asteroids.yaml"), filepath.Join("configs", "asteroids.yaml")} {
		if path == "" {
			continue
		}
		if cfg, err := loadAsteroidsFile(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultAsteroidsConfig()
	if err := yaml.Unmarshal(defaultAsteroidsYAML, &cfg); err != nil {
		return DefaultAsteroidsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func loadAsteroidsFile(path string) (AsteroidsConfig, error) {
	cfg := DefaultAsteroidsConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".asteroids", "configs", filename)
}

// ApplyAsteroidsPreset modifies the config based on a difficulty preset.
func ApplyAsteroidsPreset(cfg *AsteroidsConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Ship.Lives = 5
		cfg.Saucer.AimError *= 2
		cfg.Saucer.SpawnMin *= 2
		cfg.Saucer.SpawnMax *= 2
	case DifficultyHard:
		cfg.Ship.Lives = 2
		cfg.Saucer.AimError /= 2
		cfg.Saucer.FireMax = max(cfg.Saucer.FireMin, cfg.Saucer.FireMax*3/4)
	}
}

// Validate rejects configurations the simulation cannot run with.
func (c AsteroidsConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.World.Width > 0 && c.World.Height > 0, "world: extent must be positive, got %vx%v", c.World.Width, c.World.Height)
	check(c.Ship.Radius > 0, "ship: radius must be positive")
	check(c.Ship.Drag > 0 && c.Ship.Drag <= 1, "ship: drag must be in (0, 1], got %v", c.Ship.Drag)
	check(c.Ship.Lives > 0, "ship: lives must be positive")
	check(c.Ship.InvulnerableTicks >= 0, "ship: invulnerable_ticks must not be negative")
	check(c.Bullets.Speed > 0 && c.Bullets.MaxRange > 0, "bullets: speed and max_range must be positive")
	check(c.Bullets.MaxLive > 0, "bullets: max_live must be positive")
	check(c.Asteroids.MinRadius > 0 && c.Asteroids.MinRadius <= c.Asteroids.MaxRadius,
		"asteroids: radius range [%v, %v] is invalid", c.Asteroids.MinRadius, c.Asteroids.MaxRadius)
	check(c.Asteroids.SplitThreshold >= 0, "asteroids: split_threshold must not be negative")
	check(c.Asteroids.MinSpeed >= 0 && c.Asteroids.MinSpeed <= c.Asteroids.MaxSpeed, "asteroids: speed range is inverted")
	check(c.Asteroids.SplitMinSpeed >= 0 && c.Asteroids.SplitMinSpeed <= c.Asteroids.SplitMaxSpeed, "asteroids: split speed range is inverted")
	check(c.Asteroids.SafeRadius >= 0 && c.Asteroids.SafeRadius < min(c.World.Width, c.World.Height)/2,
		"asteroids: safe_radius %v leaves no room to spawn", c.Asteroids.SafeRadius)
	check(c.Saucer.SpawnMin > 0 && c.Saucer.SpawnMin <= c.Saucer.SpawnMax, "saucer: spawn interval is invalid")
	check(c.Saucer.FireMin > 0 && c.Saucer.FireMin <= c.Saucer.FireMax, "saucer: fire interval is invalid")
	check(c.Saucer.MinSpeed > 0 && c.Saucer.MinSpeed <= c.Saucer.MaxSpeed, "saucer: speed range is invalid")
	check(c.Saucer.MinY >= 0 && c.Saucer.MinY <= c.Saucer.MaxY && c.Saucer.MaxY <= 1, "saucer: min_y/max_y must be fractions with min <= max")
	check(c.Saucer.Radius > 0, "saucer: radius must be positive")
	check(c.Saucer.AimError >= 0, "saucer: aim_error must not be negative")
	check(c.Saucer.Margin >= 0, "saucer: margin must not be negative")
	check(c.Saucer.MaxAlive >= 0, "saucer: max_alive must not be negative")
	check(c.Saucer.BulletSpeed > 0 && c.Saucer.BulletRange > 0, "saucer: bullet_speed and bullet_range must be positive")
	check(c.Particles.Count >= 0 && c.Particles.Life >= 0, "particles: count and life must not be negative")
	check(c.Particles.MinSpeed <= c.Particles.MaxSpeed, "particles: speed range is inverted")
	check(c.Waves.Delay >= 0, "waves: delay must not be negative")
	check(c.Waves.BaseCount > 0 && c.Waves.PerWave >= 0, "waves: base_count must be positive and per_wave not negative")

	switch c.Difficulty.Progression.Type {
	case "", "none", "wave", "score", "time":
	default:
		errs = append(errs, fmt.Errorf("difficulty: unknown progression type %q", c.Difficulty.Progression.Type))
	}
	check(c.Difficulty.Scaling.SaucerInterval >= 0 && c.Difficulty.Scaling.SaucerInterval < 1,
		"difficulty: saucer_interval must be in [0, 1)")

	return errors.Join(errs...)
}
