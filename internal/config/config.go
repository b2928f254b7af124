// Package config provides YAML-based game configuration loading and
// difficulty management for the asteroids game.
package config

import "time"

// AsteroidsConfig contains all tunables for the asteroids simulation.
type AsteroidsConfig struct {
	World      WorldConfig      `yaml:"world"`
	Ship       ShipConfig       `yaml:"ship"`
	Bullets    BulletConfig     `yaml:"bullets"`
	Asteroids  AsteroidConfig   `yaml:"asteroids"`
	Saucer     SaucerConfig     `yaml:"saucer"`
	Particles  ParticleConfig   `yaml:"particles"`
	Waves      WaveConfig       `yaml:"waves"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// WorldConfig defines the fixed simulation extent in world units.
// It is independent of the terminal size.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ShipConfig defines the player craft.
type ShipConfig struct {
	Radius            float64 `yaml:"radius"`
	TurnSpeed         float64 `yaml:"turn_speed"`   // radians per tick
	ThrustAccel       float64 `yaml:"thrust_accel"` // units per tick^2
	Drag              float64 `yaml:"drag"`         // velocity multiplier per tick, in (0, 1]
	Lives             int     `yaml:"lives"`
	InvulnerableTicks int     `yaml:"invulnerable_ticks"`
}

// BulletConfig defines player bullets.
type BulletConfig struct {
	Speed    float64 `yaml:"speed"`
	MaxRange float64 `yaml:"max_range"`
	MaxLive  int     `yaml:"max_live"`
}

// AsteroidConfig defines wave asteroids and their fragments.
type AsteroidConfig struct {
	MinRadius      float64 `yaml:"min_radius"`
	MaxRadius      float64 `yaml:"max_radius"`
	SplitThreshold float64 `yaml:"split_threshold"`
	MinSpeed       float64 `yaml:"min_speed"`
	MaxSpeed       float64 `yaml:"max_speed"`
	SplitMinSpeed  float64 `yaml:"split_min_speed"`
	SplitMaxSpeed  float64 `yaml:"split_max_speed"`
	SafeRadius     float64 `yaml:"safe_radius"` // no wave spawns this close to the world center
}

// SaucerConfig defines the hostile flyer.
type SaucerConfig struct {
	SpawnMin    time.Duration `yaml:"spawn_min"`
	SpawnMax    time.Duration `yaml:"spawn_max"`
	MinSpeed    float64       `yaml:"min_speed"` // units per second
	MaxSpeed    float64       `yaml:"max_speed"`
	MinY        float64       `yaml:"min_y"` // fraction of world height
	MaxY        float64       `yaml:"max_y"`
	Radius      float64       `yaml:"radius"`
	FireMin     time.Duration `yaml:"fire_min"`
	FireMax     time.Duration `yaml:"fire_max"`
	AimError    float64       `yaml:"aim_error"` // max angular error in radians, either side
	Margin      float64       `yaml:"margin"`    // distance past the far edge before despawn
	MaxAlive    int           `yaml:"max_alive"`
	BulletSpeed float64       `yaml:"bullet_speed"`
	BulletRange float64       `yaml:"bullet_range"`
}

// ParticleConfig defines cosmetic explosion debris.
type ParticleConfig struct {
	Count    int     `yaml:"count"`
	Life     int     `yaml:"life"` // ticks
	MinSpeed float64 `yaml:"min_speed"`
	MaxSpeed float64 `yaml:"max_speed"`
}

// WaveConfig defines asteroid wave pacing.
type WaveConfig struct {
	Delay     time.Duration `yaml:"delay"`
	BaseCount int           `yaml:"base_count"` // asteroids in wave 1
	PerWave   int           `yaml:"per_wave"`   // extra asteroids per later wave
}

// ScoringConfig defines points awarded per kill.
type ScoringConfig struct {
	Asteroid int `yaml:"asteroid"`
	Saucer   int `yaml:"saucer"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a session.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "wave", "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // wave/score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to asteroid speed at max difficulty
	SaucerInterval  float64 `yaml:"saucer_interval"`  // Fraction cut from saucer spawn delay at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
