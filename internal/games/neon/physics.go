package neon

import (
	"math"

	"github.com/neonmask/neon-ascent/internal/config"
	"github.com/neonmask/neon-ascent/internal/core"
)

const contactEpsilon = 1e-6

// Actor is the player body: an axis-aligned box in world tile units,
// positioned by its top-left corner.
type Actor struct {
	Pos core.Vec2
	Vel core.Vec2
	W   float64
	H   float64

	Grounded    bool
	FacingRight bool

	coyote       int
	jumpBuffer   int
	dashCooldown int
}

// NewActor creates an actor sized per the player config, standing with
// its feet on floorRow.
func NewActor(cfg config.PlayerConfig, x float64, floorRow int) Actor {
	return Actor{
		Pos:         core.Vec2{X: x, Y: float64(floorRow) - cfg.Height},
		W:           cfg.Width,
		H:           cfg.Height,
		Grounded:    true,
		FacingRight: true,
	}
}

// Rect returns the actor's bounding box.
func (a *Actor) Rect() core.Rect {
	return core.Rect{X: a.Pos.X, Y: a.Pos.Y, W: a.W, H: a.H}
}

// DashCooldown returns the ticks left before the next dash may fire.
func (a *Actor) DashCooldown() int {
	return a.dashCooldown
}

// Modifiers are the power-up effects the engine honors this tick.
type Modifiers struct {
	AirJumps     int // extra mid-air jumps available
	DashEnabled  bool
	MagnetRadius float64 // zero disables attraction
	MagnetPull   float64 // tiles per tick toward the actor
	PickupRadius float64
}

// Engine advances actors through the level one fixed tick at a time.
// Collision resolution runs per axis, vertical first, so landing on a
// platform edge cannot be converted into a wall hit. The engine never
// mutates run state: deaths, pickups and scoring are reported as Events
// for the caller to apply.
type Engine struct {
	cfg config.PhysicsConfig
}

func NewEngine(cfg config.PhysicsConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Step advances the actor one tick against the window. fieldLit tells
// whether energized field hazards are in their harmful phase this tick;
// the caller tracks the cycle.
func (e *Engine) Step(a *Actor, in core.InputFrame, w *Window, mods Modifiers, fieldLit bool) Events {
	var ev Events

	e.applyMovement(a, in)
	e.applyJump(a, in, mods, &ev)
	e.applyDash(a, in, mods, &ev)

	a.Vel.Y += e.cfg.Gravity
	if a.Vel.Y > e.cfg.MaxFallSpeed {
		a.Vel.Y = e.cfg.MaxFallSpeed
	}

	e.moveVertical(a, w, &ev)
	e.moveHorizontal(a, w)

	e.checkHazards(a, w, fieldLit, &ev)
	e.checkCollectibles(a, w, mods, &ev)
	e.checkPowerUps(a, w, mods, &ev)

	if a.Pos.Y > float64(w.GridHeight()+2) {
		ev.FellOut = true
	}
	return ev
}

// applyMovement accelerates toward the held direction and decelerates
// toward rest otherwise.
func (e *Engine) applyMovement(a *Actor, in core.InputFrame) {
	var dir float64
	if in.Has(core.ActionLeft) {
		dir -= 1
	}
	if in.Has(core.ActionRight) {
		dir += 1
	}
	if dir != 0 {
		a.FacingRight = dir > 0
		target := dir * e.cfg.MoveSpeed
		a.Vel.X = approach(a.Vel.X, target, e.cfg.Accel)
	} else {
		a.Vel.X = approach(a.Vel.X, 0, e.cfg.Decel)
	}
}

// applyJump handles buffered jumps with coyote time, falling back to an
// air jump when the double-jump power-up has charges left.
func (e *Engine) applyJump(a *Actor, in core.InputFrame, mods Modifiers, ev *Events) {
	if in.Has(core.ActionJump) {
		a.jumpBuffer = e.cfg.JumpBufferTicks
	}
	if a.Grounded {
		a.coyote = e.cfg.CoyoteTicks
	} else if a.coyote > 0 {
		a.coyote--
	}

	if a.jumpBuffer > 0 {
		switch {
		case a.Grounded || a.coyote > 0:
			a.Vel.Y = e.cfg.JumpImpulse
			a.Grounded = false
			a.coyote = 0
			a.jumpBuffer = 0
			ev.Jumped = true
		case mods.AirJumps > 0:
			a.Vel.Y = e.cfg.JumpImpulse
			a.jumpBuffer = 0
			ev.AirJumped = true
		}
	}
	if a.jumpBuffer > 0 {
		a.jumpBuffer--
	}
}

// applyDash fires a horizontal burst in the facing direction, gated by
// the per-use cooldown. Dashing is only possible while the dash
// power-up is active, but a burst already underway keeps its velocity
// after expiry.
func (e *Engine) applyDash(a *Actor, in core.InputFrame, mods Modifiers, ev *Events) {
	if a.dashCooldown > 0 {
		a.dashCooldown--
	}
	if !in.Has(core.ActionDash) || !mods.DashEnabled || a.dashCooldown > 0 {
		return
	}
	dir := 1.0
	if !a.FacingRight {
		dir = -1.0
	}
	a.Vel.X = dir * e.cfg.DashSpeed
	a.dashCooldown = e.cfg.DashCooldown
	ev.Dashed = true
}

// moveVertical sweeps the actor cell row by cell row so a full-speed
// fall cannot pass through a one-tile platform.
func (e *Engine) moveVertical(a *Actor, w *Window, ev *Events) {
	next := a.Pos.Y + a.Vel.Y
	switch {
	case a.Vel.Y > 0:
		oldBottom := a.Pos.Y + a.H
		newBottom := next + a.H
		for row := int(math.Floor(oldBottom)); row <= int(math.Floor(newBottom)); row++ {
			if float64(row) < oldBottom-contactEpsilon {
				continue
			}
			if e.solidAcross(w, a.Pos.X, a.W, row) {
				a.Pos.Y = float64(row) - a.H
				a.Vel.Y = 0
				if !a.Grounded {
					ev.Landed = true
				}
				a.Grounded = true
				return
			}
		}
		a.Pos.Y = next
		a.Grounded = false
	case a.Vel.Y < 0:
		oldTop := a.Pos.Y
		newTop := next
		for row := int(math.Floor(oldTop)); row >= int(math.Floor(newTop)); row-- {
			if float64(row+1) > oldTop+contactEpsilon {
				continue
			}
			if e.solidAcross(w, a.Pos.X, a.W, row) {
				a.Pos.Y = float64(row + 1)
				a.Vel.Y = 0
				a.Grounded = false
				return
			}
		}
		a.Pos.Y = next
		a.Grounded = false
	default:
		a.Grounded = e.supported(a, w)
	}
}

// moveHorizontal resolves walls after the vertical pass.
func (e *Engine) moveHorizontal(a *Actor, w *Window) {
	next := a.Pos.X + a.Vel.X
	switch {
	case a.Vel.X > 0:
		oldRight := a.Pos.X + a.W
		newRight := next + a.W
		for col := int(math.Floor(oldRight)); col <= int(math.Floor(newRight)); col++ {
			if float64(col) < oldRight-contactEpsilon {
				continue
			}
			if e.solidDown(w, col, a.Pos.Y, a.H) {
				a.Pos.X = float64(col) - a.W
				a.Vel.X = 0
				return
			}
		}
		a.Pos.X = next
	case a.Vel.X < 0:
		oldLeft := a.Pos.X
		newLeft := next
		for col := int(math.Floor(oldLeft)); col >= int(math.Floor(newLeft)); col-- {
			if float64(col+1) > oldLeft+contactEpsilon {
				continue
			}
			if e.solidDown(w, col, a.Pos.Y, a.H) {
				a.Pos.X = float64(col + 1)
				a.Vel.X = 0
				return
			}
		}
		a.Pos.X = next
	}
}

// supported reports whether the actor's feet rest exactly on a solid
// row.
func (e *Engine) supported(a *Actor, w *Window) bool {
	bottom := a.Pos.Y + a.H
	row := int(math.Round(bottom))
	if math.Abs(float64(row)-bottom) > contactEpsilon {
		return false
	}
	return e.solidAcross(w, a.Pos.X, a.W, row)
}

// solidAcross reports a solid cell anywhere along the actor's width at
// the given row.
func (e *Engine) solidAcross(w *Window, x, width float64, row int) bool {
	first := int(math.Floor(x + contactEpsilon))
	last := int(math.Floor(x + width - contactEpsilon))
	for col := first; col <= last; col++ {
		if w.Solid(col, row) {
			return true
		}
	}
	return false
}

// solidDown reports a solid cell anywhere along the actor's height at
// the given column.
func (e *Engine) solidDown(w *Window, col int, y, height float64) bool {
	first := int(math.Floor(y + contactEpsilon))
	last := int(math.Floor(y + height - contactEpsilon))
	for row := first; row <= last; row++ {
		if w.Solid(col, row) {
			return true
		}
	}
	return false
}

// checkHazards reports every hazard cell overlapping the actor. Lasers
// always harm; fields only during their on phase. Detection only: the
// run controller decides between shield absorb and death.
func (e *Engine) checkHazards(a *Actor, w *Window, fieldLit bool, ev *Events) {
	firstCol := int(math.Floor(a.Pos.X + contactEpsilon))
	lastCol := int(math.Floor(a.Pos.X + a.W - contactEpsilon))
	firstRow := int(math.Floor(a.Pos.Y + contactEpsilon))
	lastRow := int(math.Floor(a.Pos.Y + a.H - contactEpsilon))
	for col := firstCol; col <= lastCol; col++ {
		for row := firstRow; row <= lastRow; row++ {
			kind := w.Kind(col, row)
			if !kind.IsHazard() {
				continue
			}
			if kind == TileField && !fieldLit {
				continue
			}
			ev.Hazards = append(ev.Hazards, HazardContact{Kind: kind, Col: col, Row: row})
		}
	}
}

// fieldOn reports whether energized fields are in their harmful phase.
// The phase counts whole on/off half-cycles: even half-cycles harm, odd
// ones rest.
func fieldOn(phase float64) bool {
	return int(phase)%2 == 0
}

// checkCollectibles picks up crystals within the pickup radius and, when
// the magnet is active, drags crystals inside the magnet radius toward
// the actor center.
func (e *Engine) checkCollectibles(a *Actor, w *Window, mods Modifiers, ev *Events) {
	center := a.Rect().Center()
	for _, seg := range w.Segments() {
		for _, c := range seg.Collectibles {
			if c.Collected {
				continue
			}
			d := c.Pos.Sub(center)
			dist := d.Len()
			switch {
			case dist <= mods.PickupRadius:
				ev.Collectibles = append(ev.Collectibles, c)
			case mods.MagnetRadius > 0 && dist <= mods.MagnetRadius:
				c.Pos = c.Pos.Sub(d.Norm().Scale(mods.MagnetPull))
			}
		}
	}
}

// checkPowerUps reports untaken power-up spawns within pickup range.
func (e *Engine) checkPowerUps(a *Actor, w *Window, mods Modifiers, ev *Events) {
	center := a.Rect().Center()
	for _, seg := range w.Segments() {
		p := seg.PowerUp
		if p == nil || p.Taken {
			continue
		}
		if p.Pos.Sub(center).Len() <= mods.PickupRadius+0.3 {
			ev.PowerUps = append(ev.PowerUps, p)
		}
	}
}

// approach moves cur toward target by at most step.
func approach(cur, target, step float64) float64 {
	if cur < target {
		return math.Min(cur+step, target)
	}
	if cur > target {
		return math.Max(cur-step, target)
	}
	return cur
}
