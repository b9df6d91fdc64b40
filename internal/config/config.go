// Package config provides YAML-based game configuration loading and
// difficulty management for the neon platformer.
package config

// Config contains all tunable parameters for a run.
type Config struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Generator  GeneratorConfig  `yaml:"generator"`
	PowerUps   PowerUpConfig    `yaml:"powerups"`
	Combo      ComboConfig      `yaml:"combo"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PhysicsConfig defines the fixed-tick movement model.
// Units are tiles per tick (velocities) and tiles per tick^2 (gravity).
type PhysicsConfig struct {
	MoveSpeed       float64 `yaml:"move_speed"`
	Accel           float64 `yaml:"accel"`
	Decel           float64 `yaml:"decel"`
	Gravity         float64 `yaml:"gravity"`
	JumpImpulse     float64 `yaml:"jump_impulse"`
	MaxFallSpeed    float64 `yaml:"max_fall_speed"`
	CoyoteTicks     int     `yaml:"coyote_ticks"`
	JumpBufferTicks int     `yaml:"jump_buffer_ticks"`
	DashSpeed       float64 `yaml:"dash_speed"`
	DashCooldown    int     `yaml:"dash_cooldown_ticks"`
}

// PlayerConfig defines the player actor's dimensions and camera anchor.
type PlayerConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	CameraOffset int     `yaml:"camera_offset"` // columns from the view's left edge to the actor
}

// GeneratorConfig defines segment generation parameters.
// MaxGap and MaxRise form the base reachability envelope: the generator
// never emits a gap or a climb that exceeds them, so every segment is
// traversable without power-ups.
type GeneratorConfig struct {
	SegmentWidth      int     `yaml:"segment_width"`
	GridHeight        int     `yaml:"grid_height"`
	BaseFloor         int     `yaml:"base_floor"` // starting platform surface row
	MinPlatformRun    int     `yaml:"min_platform_run"`
	MaxPlatformRun    int     `yaml:"max_platform_run"`
	MinGap            int     `yaml:"min_gap"`
	MaxGap            int     `yaml:"max_gap"`
	MaxRise           int     `yaml:"max_rise"`
	MaxDrop           int     `yaml:"max_drop"`
	CollectibleChance float64 `yaml:"collectible_chance"`
	LedgeChance       float64 `yaml:"ledge_chance"` // chance of a floating bonus ledge per segment
	PowerUpChance     float64 `yaml:"powerup_chance"`
	FieldPeriodTicks  int     `yaml:"field_period_ticks"` // base on/off half-period of field hazards
	WarmupSegments    int     `yaml:"warmup_segments"`    // segments guaranteed hazard-free at run start
}

// PowerUpConfig defines power-up durations (in ticks), charges, and
// effect parameters.
type PowerUpConfig struct {
	DoubleJumpTicks   int     `yaml:"double_jump_ticks"`
	DoubleJumpCharges int     `yaml:"double_jump_charges"`
	DashTicks         int     `yaml:"dash_ticks"`
	ShieldTicks       int     `yaml:"shield_ticks"`
	MagnetTicks       int     `yaml:"magnet_ticks"`
	MagnetRadius      float64 `yaml:"magnet_radius"`
	MagnetPull        float64 `yaml:"magnet_pull"`
	PickupRadius      float64 `yaml:"pickup_radius"`
}

// ComboConfig defines the score combo multiplier behavior.
type ComboConfig struct {
	Step        float64 `yaml:"step"`         // multiplier gained per crystal
	Max         float64 `yaml:"max"`          // multiplier cap
	WindowTicks int     `yaml:"window_ticks"` // ticks before the multiplier resets
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "distance", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Distance (tiles) or ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	GapWiden         int     `yaml:"gap_widen"`          // extra gap width at max difficulty
	HazardDensity    float64 `yaml:"hazard_density"`     // per-column hazard chance at max difficulty
	FieldPeriodScale float64 `yaml:"field_period_scale"` // fraction shaved off the field period at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

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
