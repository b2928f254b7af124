package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/asteroids.yaml
var defaultAsteroidsYAML []byte

// DefaultAsteroidsConfig returns the hardcoded asteroids configuration.
// It mirrors defaults/asteroids.yaml and is used if the embedded file fails to parse.
func DefaultAsteroidsConfig() AsteroidsConfig {
	return AsteroidsConfig{
		World: WorldConfig{
			Width:  800,
			Height: 600,
		},
		Ship: ShipConfig{
			Radius:            12,
			TurnSpeed:         0.08,
			ThrustAccel:       0.12,
			Drag:              0.99,
			Lives:             3,
			InvulnerableTicks: 120,
		},
		Bullets: BulletConfig{
			Speed:    7,
			MaxRange: 500,
			MaxLive:  10,
		},
		Asteroids: AsteroidConfig{
			MinRadius:      30,
			MaxRadius:      50,
			SplitThreshold: 15,
			MinSpeed:       0.5,
			MaxSpeed:       1.5,
			SplitMinSpeed:  0.5,
			SplitMaxSpeed:  2.0,
			SafeRadius:     120,
		},
		Saucer: SaucerConfig{
			SpawnMin:    15 * time.Second,
			SpawnMax:    30 * time.Second,
			MinSpeed:    60,
			MaxSpeed:    120,
			MinY:        0.1,
			MaxY:        0.9,
			Radius:      15,
			FireMin:     500 * time.Millisecond,
			FireMax:     2 * time.Second,
			AimError:    0.2,
			Margin:      40,
			MaxAlive:    1,
			BulletSpeed: 4,
			BulletRange: 400,
		},
		Particles: ParticleConfig{
			Count:    12,
			Life:     30,
			MinSpeed: 0.5,
			MaxSpeed: 2.5,
		},
		Waves: WaveConfig{
			Delay:     2 * time.Second,
			BaseCount: 5,
			PerWave:   1,
		},
		Scoring: ScoringConfig{
			Asteroid: 100,
			Saucer:   1000,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "wave",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				SaucerInterval:  0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "asteroids":
		return defaultAsteroidsYAML
	default:
		return nil
	}
}
