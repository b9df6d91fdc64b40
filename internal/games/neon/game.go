package neon

import (
	"fmt"

	"github.com/neonmask/neon-ascent/internal/config"
	"github.com/neonmask/neon-ascent/internal/core"
	"github.com/neonmask/neon-ascent/internal/registry"
)

const (
	GameID    = "neon"
	GameTitle = "Neon Ascent"
)

// End reasons reported through core.GameState once a run terminates.
const (
	EndDeath     = "death"
	EndAbandoned = "abandoned"
	EndAborted   = "aborted" // internal failure, e.g. the level stream broke
)

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets a custom config file path used by subsequent
// Reset calls.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset applies a named difficulty preset on Reset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// Game is the Neon Ascent run controller. It owns the generator, the
// physics engine, the power-up set and the score state, and advances
// them in a fixed order each tick.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.Config

	difficulty *config.DifficultyManager
	gen        *Generator
	window     *Window
	engine     *Engine
	actor      Actor
	powers     *Set
	particles  *ParticleField

	score      int
	distance   int
	crystals   int
	combo      float64
	comboTimer int
	tick       int
	cameraX    float64
	fieldPhase float64

	paused    bool
	gameOver  bool
	endReason string
	runErr    error
}

// New creates an uninitialized game; Reset must be called before Step.
func New() *Game {
	return &Game{}
}

func (g *Game) ID() string {
	return GameID
}

func (g *Game) Title() string {
	return GameTitle
}

// Reset starts a fresh run from the runtime seed. The previous run's
// state is discarded entirely.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg

	loaded, err := config.Load(configPath)
	if err != nil {
		loaded = config.Default()
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&loaded, difficultyPreset)
	}
	g.cfg = loaded

	g.difficulty = config.NewDifficultyManager(loaded.Difficulty)
	g.gen = NewGenerator(cfg.Seed, loaded.Generator, g.difficulty)
	g.window = NewWindow(loaded.Generator.GridHeight)
	g.engine = NewEngine(loaded.Physics)
	g.powers = NewSet(loaded.PowerUps)
	g.particles = NewParticleField(cfg.Seed + 1)
	g.actor = NewActor(loaded.Player, 1.0, loaded.Generator.BaseFloor)

	g.score = 0
	g.distance = 0
	g.crystals = 0
	g.combo = 1.0
	g.comboTimer = 0
	g.tick = 0
	g.cameraX = 0
	g.fieldPhase = 0
	g.paused = false
	g.gameOver = false
	g.endReason = ""
	g.runErr = nil

	g.ensureGenerated()
}

// Err returns the failure that aborted the run, if any.
func (g *Game) Err() error {
	return g.runErr
}

// Seed returns the level seed of the current run.
func (g *Game) Seed() int64 {
	return g.runtime.Seed
}

// Step advances the simulation by one tick. Once the run has ended the
// state is frozen and further input is ignored.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.gameState()}
	}
	// Abandoning must work from the pause screen too, so terminate is
	// checked before the paused early-out.
	if in.Has(core.ActionTerminate) {
		g.endRun(EndAbandoned)
		return core.StepResult{State: g.gameState()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.gameState()}
	}

	g.tick++
	g.ensureGenerated()
	if g.gameOver {
		return core.StepResult{State: g.gameState()}
	}

	mods := g.powers.Modifiers()
	// Field cycles accumulate fractional progress per tick, so a period
	// shrinking with difficulty speeds the cycle up without flipping a
	// field mid-phase.
	period := g.difficulty.FieldPeriod(g.cfg.Generator.FieldPeriodTicks, g.distance, g.tick)
	if period > 0 {
		g.fieldPhase += 1.0 / float64(period)
	}
	ev := g.engine.Step(&g.actor, in, g.window, mods, fieldOn(g.fieldPhase))

	g.applyEvents(ev)
	if g.gameOver {
		return core.StepResult{State: g.gameState()}
	}

	g.powers.Tick()
	g.tickCombo()
	g.advanceProgress()
	g.particles.Update()
	return core.StepResult{State: g.gameState()}
}

// applyEvents folds one tick's physics events into the run. Hazards are
// resolved before anything else: a tick that both kills and collects
// kills.
func (g *Game) applyEvents(ev Events) {
	if len(ev.Hazards) > 0 {
		if g.powers.AbsorbHazard() {
			g.particles.Burst(g.actor.Rect().Center(), core.ColorBrightCyan, 12)
		} else {
			g.particles.Burst(g.actor.Rect().Center(), core.ColorBrightRed, 16)
			g.endRun(EndDeath)
			return
		}
	}
	if ev.FellOut {
		g.endRun(EndDeath)
		return
	}

	if ev.AirJumped {
		g.powers.ConsumeAirJump()
		g.particles.Burst(core.Vec2{X: g.actor.Pos.X + g.actor.W/2, Y: g.actor.Pos.Y + g.actor.H}, core.ColorBrightBlue, 6)
	}
	if ev.Dashed {
		g.particles.Burst(g.actor.Rect().Center(), core.ColorBrightMagenta, 8)
	}

	for _, c := range ev.Collectibles {
		c.Collected = true
		g.crystals++
		gained := int(float64(c.Value) * g.combo)
		g.score += gained
		g.combo = core.ClampF(g.combo+g.cfg.Combo.Step, 1.0, g.cfg.Combo.Max)
		g.comboTimer = g.cfg.Combo.WindowTicks
		g.particles.Burst(c.Pos, core.ColorBrightYellow, 8)
		g.particles.Pop(c.Pos, fmt.Sprintf("+%d", gained))
	}
	for _, p := range ev.PowerUps {
		p.Taken = true
		g.powers.Activate(p.Kind)
		g.particles.Burst(p.Pos, core.ColorBrightGreen, 10)
	}
}

// tickCombo counts the combo window down and resets the multiplier when
// it lapses.
func (g *Game) tickCombo() {
	if g.comboTimer > 0 {
		g.comboTimer--
		if g.comboTimer == 0 {
			g.combo = 1.0
		}
	}
}

// advanceProgress tracks distance, awards distance score, scrolls the
// camera and drops segments behind it.
func (g *Game) advanceProgress() {
	reached := int(g.actor.Pos.X)
	if reached > g.distance {
		g.score += reached - g.distance
		g.distance = reached
	}

	target := g.actor.Pos.X - float64(g.cfg.Player.CameraOffset)
	if target < 0 {
		target = 0
	}
	if target > g.cameraX {
		g.cameraX = target
	}
	g.window.PruneBefore(int(g.cameraX) - g.cfg.Generator.SegmentWidth)

	if g.actor.Vel.X > g.cfg.Physics.MoveSpeed || g.actor.Vel.X < -g.cfg.Physics.MoveSpeed {
		g.particles.EmitTrail(g.actor.Rect().Center())
	} else if !g.actor.Grounded {
		g.particles.EmitTrail(core.Vec2{X: g.actor.Pos.X + g.actor.W/2, Y: g.actor.Pos.Y + g.actor.H})
	}
}

// ensureGenerated keeps the level stream one segment ahead of the view.
// A generator failure is fatal for the run.
func (g *Game) ensureGenerated() {
	needed := int(g.cameraX) + g.runtime.ScreenW + g.cfg.Generator.SegmentWidth
	for g.window.FrontierX() < needed {
		seg, err := g.gen.Next(g.window.FrontierX())
		if err != nil {
			g.runErr = err
			g.endRun(EndAborted)
			return
		}
		g.window.Append(seg)
	}
}

func (g *Game) endRun(reason string) {
	g.gameOver = true
	g.endReason = reason
}

func (g *Game) gameState() core.GameState {
	return core.GameState{
		Score:     g.score,
		Distance:  g.distance,
		Crystals:  g.crystals,
		Combo:     g.combo,
		GameOver:  g.gameOver,
		Paused:    g.paused,
		EndReason: g.endReason,
	}
}

// State returns the current run state.
func (g *Game) State() core.GameState {
	return g.gameState()
}
