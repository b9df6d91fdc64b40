package config

import (
	_ "embed"
)

//go:embed defaults/neon.yaml
var defaultNeonYAML []byte

// Default returns the default Neon Ascent configuration.
// Must stay in sync with defaults/neon.yaml; used as a last-resort
// fallback if the embedded YAML cannot be parsed.
func Default() Config {
	return Config{
		Physics: PhysicsConfig{
			MoveSpeed:       0.45,
			Accel:           0.06,
			Decel:           0.08,
			Gravity:         0.035,
			JumpImpulse:     -0.62,
			MaxFallSpeed:    0.95,
			CoyoteTicks:     6,
			JumpBufferTicks: 8,
			DashSpeed:       1.4,
			DashCooldown:    54,
		},
		Player: PlayerConfig{
			Width:        0.8,
			Height:       1.6,
			CameraOffset: 12,
		},
		Generator: GeneratorConfig{
			SegmentWidth:      24,
			GridHeight:        22,
			BaseFloor:         16,
			MinPlatformRun:    3,
			MaxPlatformRun:    8,
			MinGap:            2,
			MaxGap:            5,
			MaxRise:           3,
			MaxDrop:           4,
			CollectibleChance: 0.3,
			LedgeChance:       0.45,
			PowerUpChance:     0.6,
			FieldPeriodTicks:  90,
			WarmupSegments:    5,
		},
		PowerUps: PowerUpConfig{
			DoubleJumpTicks:   720, // 12s at 60 tps
			DoubleJumpCharges: 1,
			DashTicks:         480, // 8s
			ShieldTicks:       900, // 15s cap; consumed on first hit regardless
			MagnetTicks:       570, // 9.5s
			MagnetRadius:      6.5,
			MagnetPull:        0.2,
			PickupRadius:      0.9,
		},
		Combo: ComboConfig{
			Step:        0.25,
			Max:         10.0,
			WindowTicks: 180, // 3s
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "distance",
				MaxAt: 3000,
			},
			Scaling: ScalingConfig{
				GapWiden:         3,
				HazardDensity:    0.12,
				FieldPeriodScale: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultNeonYAML
}
