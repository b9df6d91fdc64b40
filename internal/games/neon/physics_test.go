package neon

import (
	"math/rand"
	"testing"

	"github.com/neonmask/neon-ascent/internal/config"
	"github.com/neonmask/neon-ascent/internal/core"
)

// flatWindow builds a window with a single hand-made segment: a flat
// floor at the given row spanning the full width.
func flatWindow(width, height, floor int) (*Window, *Segment) {
	w := NewWindow(height)
	seg := newSegment(0, width, height)
	seg.EntryFloor = floor
	seg.ExitFloor = floor
	for col := 0; col < width; col++ {
		for row := floor; row < height; row++ {
			seg.setKind(col, row, TileSolid)
		}
	}
	w.Append(seg)
	return w, seg
}

func testEngine() (*Engine, config.Config) {
	cfg := config.Default()
	return NewEngine(cfg.Physics), cfg
}

func standingActor(cfg config.Config, x float64, floor int) Actor {
	return NewActor(cfg.Player, x, floor)
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestActorStaysGroundedAtRest(t *testing.T) {
	e, cfg := testEngine()
	w, _ := flatWindow(60, 22, 16)
	a := standingActor(cfg, 5, 16)

	for i := 0; i < 30; i++ {
		e.Step(&a, frame(), w, Modifiers{}, true)
	}
	if !a.Grounded {
		t.Fatal("actor left the ground without input")
	}
	if bottom := a.Pos.Y + a.H; bottom != 16 {
		t.Fatalf("actor feet at %f, want 16", bottom)
	}
}

func TestJumpAndLand(t *testing.T) {
	e, cfg := testEngine()
	w, _ := flatWindow(60, 22, 16)
	a := standingActor(cfg, 5, 16)

	e.Step(&a, frame(core.ActionJump), w, Modifiers{}, true)
	if a.Grounded {
		t.Fatal("actor still grounded after jump")
	}

	landed := false
	for i := 1; i < 240 && !landed; i++ {
		ev := e.Step(&a, frame(), w, Modifiers{}, true)
		landed = ev.Landed
	}
	if !landed {
		t.Fatal("actor never landed")
	}
	if bottom := a.Pos.Y + a.H; bottom != 16 {
		t.Fatalf("landed with feet at %f, want 16", bottom)
	}
}

func TestLandOnPlatformEdge(t *testing.T) {
	e, cfg := testEngine()
	w, seg := flatWindow(60, 22, 16)
	// A one-tile step up at column 20.
	for row := 15; row < 22; row++ {
		seg.setKind(20, row, TileSolid)
	}

	// Falling past the step's top corner while drifting right: the
	// vertical pass runs first, so this lands on the step instead of
	// registering a wall hit.
	a := standingActor(cfg, 19.3, 16)
	a.Pos.Y = 15 - a.H - 0.4
	a.Vel = core.Vec2{X: cfg.Physics.MoveSpeed, Y: 0.5}
	a.Grounded = false

	for i := 0; i < 10; i++ {
		e.Step(&a, frame(core.ActionRight), w, Modifiers{}, true)
		if a.Grounded {
			break
		}
	}
	if !a.Grounded {
		t.Fatal("actor never landed on the step")
	}
	if bottom := a.Pos.Y + a.H; bottom != 15 {
		t.Fatalf("feet at %f, want the step surface 15", bottom)
	}
}

func TestWallStopsActor(t *testing.T) {
	e, cfg := testEngine()
	w, seg := flatWindow(60, 22, 16)
	// A two-tile wall at column 10.
	seg.setKind(10, 15, TileSolid)
	seg.setKind(10, 14, TileSolid)

	a := standingActor(cfg, 7, 16)
	for i := 0; i < 60; i++ {
		e.Step(&a, frame(core.ActionRight), w, Modifiers{}, true)
	}
	if right := a.Pos.X + a.W; right > 10+contactEpsilon {
		t.Fatalf("actor passed through the wall: right edge %f", right)
	}
	if a.Vel.X != 0 {
		t.Fatalf("velocity not cancelled at the wall: %f", a.Vel.X)
	}
}

func TestNoTunnelingThroughThinPlatform(t *testing.T) {
	// Randomized drops onto a one-tile-thick ledge: the sweep must
	// catch it at any fall speed the clamp allows.
	e, cfg := testEngine()
	w := NewWindow(40)
	seg := newSegment(0, 24, 40)
	for col := 0; col < 24; col++ {
		seg.setKind(col, 20, TileSolid)
	}
	w.Append(seg)

	rng := rand.New(rand.NewSource(99))
	for trial := 0; trial < 10000; trial++ {
		a := NewActor(cfg.Player, 10, 20)
		a.Pos.Y = rng.Float64() * 15
		a.Vel.Y = rng.Float64() * cfg.Physics.MaxFallSpeed
		a.Grounded = false

		for i := 0; i < 200; i++ {
			e.Step(&a, frame(), w, Modifiers{}, true)
			if a.Grounded {
				break
			}
		}
		if !a.Grounded {
			t.Fatalf("trial %d: actor fell through the platform to y=%f", trial, a.Pos.Y)
		}
		if bottom := a.Pos.Y + a.H; bottom != 20 {
			t.Fatalf("trial %d: feet at %f, want 20", trial, bottom)
		}
	}
}

func TestFallOutOfWorld(t *testing.T) {
	e, cfg := testEngine()
	w := NewWindow(22)
	seg := newSegment(0, 24, 22) // all pit
	w.Append(seg)

	a := standingActor(cfg, 5, 16)
	a.Grounded = false

	fell := false
	for i := 0; i < 300 && !fell; i++ {
		ev := e.Step(&a, frame(), w, Modifiers{}, true)
		fell = ev.FellOut
	}
	if !fell {
		t.Fatal("falling into a pit never reported FellOut")
	}
}

func TestCoyoteJump(t *testing.T) {
	e, cfg := testEngine()
	w := NewWindow(22)
	seg := newSegment(0, 40, 22)
	for col := 0; col < 10; col++ {
		for row := 16; row < 22; row++ {
			seg.setKind(col, row, TileSolid)
		}
	}
	w.Append(seg)

	a := standingActor(cfg, 8, 16)
	// Walk off the edge, then jump within the coyote window.
	for i := 0; i < 60 && a.Grounded; i++ {
		e.Step(&a, frame(core.ActionRight), w, Modifiers{}, true)
	}
	if a.Grounded {
		t.Fatal("actor never walked off the edge")
	}
	ev := e.Step(&a, frame(core.ActionJump), w, Modifiers{}, true)
	if !ev.Jumped {
		t.Fatal("coyote jump did not fire")
	}
	if a.Vel.Y >= 0 {
		t.Fatalf("jump impulse not applied: vy=%f", a.Vel.Y)
	}
}

func TestAirJumpNeedsCharges(t *testing.T) {
	e, cfg := testEngine()
	w, _ := flatWindow(60, 22, 16)

	a := standingActor(cfg, 5, 16)
	a.Pos.Y = 8
	a.Grounded = false
	a.coyote = 0

	ev := e.Step(&a, frame(core.ActionJump), w, Modifiers{}, true)
	if ev.AirJumped || ev.Jumped {
		t.Fatal("jumped mid-air without charges")
	}

	a = standingActor(cfg, 5, 16)
	a.Pos.Y = 8
	a.Grounded = false
	a.coyote = 0
	a.jumpBuffer = 0

	ev = e.Step(&a, frame(core.ActionJump), w, Modifiers{AirJumps: 1}, true)
	if !ev.AirJumped {
		t.Fatal("air jump with a charge did not fire")
	}
}

func TestDashGatedByCooldownAndPower(t *testing.T) {
	e, cfg := testEngine()
	w, _ := flatWindow(200, 22, 16)

	a := standingActor(cfg, 5, 16)
	ev := e.Step(&a, frame(core.ActionDash), w, Modifiers{}, true)
	if ev.Dashed {
		t.Fatal("dashed without the power-up")
	}

	ev = e.Step(&a, frame(core.ActionDash), w, Modifiers{DashEnabled: true}, true)
	if !ev.Dashed {
		t.Fatal("dash did not fire")
	}
	if a.Vel.X != cfg.Physics.DashSpeed {
		t.Fatalf("dash velocity %f, want %f", a.Vel.X, cfg.Physics.DashSpeed)
	}

	ev = e.Step(&a, frame(core.ActionDash), w, Modifiers{DashEnabled: true}, true)
	if ev.Dashed {
		t.Fatal("dash fired during its cooldown")
	}
}

func TestHazardContactAndFieldPhase(t *testing.T) {
	e, cfg := testEngine()
	w, seg := flatWindow(60, 22, 16)
	seg.setKind(6, 15, TileLaser)
	seg.setKind(12, 15, TileField)

	a := standingActor(cfg, 6, 16)
	ev := e.Step(&a, frame(), w, Modifiers{}, true)
	if len(ev.Hazards) == 0 || ev.Hazards[0].Kind != TileLaser {
		t.Fatalf("laser overlap not reported: %+v", ev.Hazards)
	}

	// Field hazards only harm while lit.
	b := standingActor(cfg, 12, 16)
	ev = e.Step(&b, frame(), w, Modifiers{}, true)
	if len(ev.Hazards) == 0 || ev.Hazards[0].Kind != TileField {
		t.Fatalf("field on-phase overlap not reported: %+v", ev.Hazards)
	}
	ev = e.Step(&b, frame(), w, Modifiers{}, false)
	if len(ev.Hazards) != 0 {
		t.Fatalf("field harmed during its off phase: %+v", ev.Hazards)
	}
}

func TestCollectiblePickupAndMagnet(t *testing.T) {
	e, cfg := testEngine()
	w, seg := flatWindow(60, 22, 16)
	near := &Collectible{Pos: core.Vec2{X: 5.5, Y: 14.8}, Value: 50}
	far := &Collectible{Pos: core.Vec2{X: 9.5, Y: 14.8}, Value: 50}
	seg.Collectibles = []*Collectible{near, far}

	a := standingActor(cfg, 5, 16)
	mods := Modifiers{PickupRadius: cfg.PowerUps.PickupRadius}
	ev := e.Step(&a, frame(), w, mods, true)
	if len(ev.Collectibles) != 1 || ev.Collectibles[0] != near {
		t.Fatalf("expected only the near crystal, got %d", len(ev.Collectibles))
	}

	// With the magnet on, the far crystal is dragged in and eventually
	// picked up.
	mods.MagnetRadius = cfg.PowerUps.MagnetRadius
	mods.MagnetPull = cfg.PowerUps.MagnetPull
	picked := false
	for i := 0; i < 120 && !picked; i++ {
		ev = e.Step(&a, frame(), w, mods, true)
		for _, c := range ev.Collectibles {
			if c == far {
				picked = true
			}
		}
	}
	if !picked {
		t.Fatal("magnet never pulled the far crystal into pickup range")
	}
}

func TestFieldCycleContinuousWhenPeriodShrinks(t *testing.T) {
	// Half a cycle at the base period, then the period halves. The
	// field must finish the current half-cycle at the faster rate
	// instead of flipping the moment the period changes.
	phase := 0.0
	for i := 0; i < 45; i++ {
		phase += 1.0 / 90
	}
	if !fieldOn(phase) {
		t.Fatal("field flipped before completing its half-cycle")
	}
	ticks := 0
	for fieldOn(phase) && ticks < 60 {
		phase += 1.0 / 45
		ticks++
	}
	if ticks < 20 || ticks > 25 {
		t.Fatalf("half-cycle finished after %d ticks at the faster rate, want ~23", ticks)
	}
}
