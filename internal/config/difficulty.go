package config

import "math"

// DifficultyManager calculates dynamic generation parameters based on
// elapsed distance or time. All outputs are monotonic in the level and
// clamped so the level stays theoretically completable.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on
// distance travelled (tiles) and elapsed ticks.
func (d *DifficultyManager) Level(distance int, ticks int) float64 {
	if !d.cfg.Enabled || d.cfg.Progression.Type == "none" {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "distance":
		progress = float64(distance) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// MaxGap returns the widest gap the generator may emit at the current
// difficulty. Grows from minGap toward minGap+GapWiden, never exceeding
// the base envelope cap.
func (d *DifficultyManager) MaxGap(minGap, envelopeCap int, distance, ticks int) int {
	level := d.Level(distance, ticks)
	gap := minGap + int(level*float64(d.cfg.Scaling.GapWiden))
	if gap > envelopeCap {
		gap = envelopeCap
	}
	if gap < 1 {
		gap = 1
	}
	return gap
}

// HazardDensity returns the per-column hazard spawn chance at the
// current difficulty. Zero at level zero (the difficulty floor).
func (d *DifficultyManager) HazardDensity(distance, ticks int) float64 {
	level := d.Level(distance, ticks)
	return level * d.cfg.Scaling.HazardDensity
}

// FieldPeriod returns the on/off half-period (ticks) of energized field
// hazards. Shrinks with difficulty so fields cycle faster, clamped to a
// playable minimum.
func (d *DifficultyManager) FieldPeriod(basePeriod int, distance, ticks int) int {
	level := d.Level(distance, ticks)
	period := int(float64(basePeriod) * (1.0 - level*d.cfg.Scaling.FieldPeriodScale))
	if period < 20 { // Minimum reactable half-period
		period = 20
	}
	return period
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
