package neon

import (
	"errors"
	"math"
	"testing"

	"github.com/neonmask/neon-ascent/internal/config"
	"github.com/neonmask/neon-ascent/internal/core"
)

func testGenerator(seed int64) *Generator {
	cfg := config.Default()
	return NewGenerator(seed, cfg.Generator, config.NewDifficultyManager(cfg.Difficulty))
}

// surfaceFloor returns the main floor row for a column, or -1 over a
// pit. Floating ledges do not count: the floor is the top of the solid
// run that reaches the bottom of the grid.
func surfaceFloor(s *Segment, col int) int {
	if s.Kind(col, s.Height-1) != TileSolid {
		return -1
	}
	row := s.Height - 1
	for row > 0 && s.Kind(col, row-1) == TileSolid {
		row--
	}
	return row
}

func TestParseSeed(t *testing.T) {
	if v, err := ParseSeed("12345"); err != nil || v != 12345 {
		t.Fatalf("decimal seed: got %d, %v", v, err)
	}
	if v, err := ParseSeed(" -7 "); err != nil || v != -7 {
		t.Fatalf("trimmed negative seed: got %d, %v", v, err)
	}
	if _, err := ParseSeed("   "); !errors.Is(err, ErrInvalidSeed) {
		t.Fatalf("blank seed: expected ErrInvalidSeed, got %v", err)
	}
	a, err := ParseSeed("neon-run")
	if err != nil {
		t.Fatalf("string seed: %v", err)
	}
	b, _ := ParseSeed("neon-run")
	if a != b {
		t.Fatalf("string seed not stable: %d vs %d", a, b)
	}
	if c, _ := ParseSeed("neon-run2"); c == a {
		t.Fatal("distinct seed strings hashed to the same value")
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	g1 := testGenerator(42)
	g2 := testGenerator(42)
	for i := 0; i < 10; i++ {
		s1, err := g1.Next(g1.FrontierX())
		if err != nil {
			t.Fatalf("segment %d: %v", i, err)
		}
		s2, _ := g2.Next(g2.FrontierX())
		for row := 0; row < s1.Height; row++ {
			for col := s1.StartX; col < s1.EndX(); col++ {
				if s1.Tile(col, row) != s2.Tile(col, row) {
					t.Fatalf("segment %d: tile (%d,%d) differs", i, col, row)
				}
			}
		}
		if len(s1.Collectibles) != len(s2.Collectibles) {
			t.Fatalf("segment %d: collectible counts differ", i)
		}
		for j := range s1.Collectibles {
			if *s1.Collectibles[j] != *s2.Collectibles[j] {
				t.Fatalf("segment %d: collectible %d differs", i, j)
			}
		}
	}
}

func TestGeneratorOutOfOrder(t *testing.T) {
	g := testGenerator(1)
	if _, err := g.Next(g.FrontierX() + 5); !errors.Is(err, ErrOutOfOrder) {
		t.Fatalf("expected ErrOutOfOrder, got %v", err)
	}
	if _, err := g.Next(-1); !errors.Is(err, ErrOutOfOrder) {
		t.Fatalf("expected ErrOutOfOrder for negative frontier, got %v", err)
	}
	// A rejected request must not corrupt the stream.
	if _, err := g.Next(g.FrontierX()); err != nil {
		t.Fatalf("valid request after rejection failed: %v", err)
	}
	// Repeating an already-generated frontier is also out of order.
	if _, err := g.Next(0); !errors.Is(err, ErrOutOfOrder) {
		t.Fatalf("expected ErrOutOfOrder for replayed frontier, got %v", err)
	}
}

func TestGeneratorTraversable(t *testing.T) {
	cfg := config.Default()
	for seed := int64(0); seed < 200; seed++ {
		g := testGenerator(seed)
		prevExit := -1
		for i := 0; i < 30; i++ {
			seg, err := g.Next(g.FrontierX())
			if err != nil {
				t.Fatalf("seed %d segment %d: %v", seed, i, err)
			}

			first := surfaceFloor(seg, seg.StartX)
			last := surfaceFloor(seg, seg.EndX()-1)
			if first < 0 || last < 0 {
				t.Fatalf("seed %d segment %d: edge column over a pit", seed, i)
			}
			if prevExit >= 0 && first != prevExit {
				t.Fatalf("seed %d segment %d: entry floor %d does not continue exit floor %d",
					seed, i, first, prevExit)
			}
			prevExit = last

			gapStart := -1
			lastFloor := first
			for col := seg.StartX; col < seg.EndX(); col++ {
				f := surfaceFloor(seg, col)
				if f < 0 {
					if gapStart < 0 {
						gapStart = col
					}
					continue
				}
				if gapStart >= 0 {
					gap := col - gapStart
					if gap > cfg.Generator.MaxGap {
						t.Fatalf("seed %d segment %d: gap of %d exceeds envelope %d",
							seed, i, gap, cfg.Generator.MaxGap)
					}
					if rise := lastFloor - f; rise > cfg.Generator.MaxRise {
						t.Fatalf("seed %d segment %d: rise of %d exceeds envelope %d",
							seed, i, rise, cfg.Generator.MaxRise)
					}
					if drop := f - lastFloor; drop > cfg.Generator.MaxDrop {
						t.Fatalf("seed %d segment %d: drop of %d exceeds envelope %d",
							seed, i, drop, cfg.Generator.MaxDrop)
					}
					gapStart = -1
				}
				lastFloor = f
			}
			if gapStart >= 0 {
				t.Fatalf("seed %d segment %d: segment ends mid-gap", seed, i)
			}
		}
	}
}

func TestGeneratorWarmupHazardFree(t *testing.T) {
	cfg := config.Default()
	cfg.Difficulty.InitialLevel = 1.0 // hazards at full density from the start
	diff := config.NewDifficultyManager(cfg.Difficulty)
	g := NewGenerator(42, cfg.Generator, diff)

	for i := 0; i < cfg.Generator.WarmupSegments; i++ {
		seg, err := g.Next(g.FrontierX())
		if err != nil {
			t.Fatal(err)
		}
		for row := 0; row < seg.Height; row++ {
			for col := seg.StartX; col < seg.EndX(); col++ {
				if seg.Kind(col, row).IsHazard() {
					t.Fatalf("warmup segment %d has a hazard at (%d,%d)", i, col, row)
				}
			}
		}
	}
}

func TestGeneratorHazardPlacementRules(t *testing.T) {
	cfg := config.Default()
	cfg.Difficulty.InitialLevel = 1.0
	cfg.Difficulty.Scaling.HazardDensity = 0.9
	diff := config.NewDifficultyManager(cfg.Difficulty)
	g := NewGenerator(7, cfg.Generator, diff)

	for i := 0; i < 40; i++ {
		seg, err := g.Next(g.FrontierX())
		if err != nil {
			t.Fatal(err)
		}
		if i < cfg.Generator.WarmupSegments {
			continue
		}
		prevHazard := false
		for col := seg.StartX; col < seg.EndX(); col++ {
			f := surfaceFloor(seg, col)
			hazard := f > 0 && seg.Kind(col, f-1).IsHazard()
			if hazard {
				if prevHazard {
					t.Fatalf("segment %d: adjacent hazards at column %d", i, col)
				}
				left := surfaceFloor(seg, col-1)
				right := surfaceFloor(seg, col+1)
				if col > seg.StartX && left < 0 {
					t.Fatalf("segment %d: hazard on landing column %d", i, col)
				}
				if col < seg.EndX()-1 && right < 0 {
					t.Fatalf("segment %d: hazard on takeoff column %d", i, col)
				}
			}
			prevHazard = hazard
		}
	}
}

func TestGeneratorVariantsAssigned(t *testing.T) {
	g := testGenerator(3)
	seg, err := g.Next(0)
	if err != nil {
		t.Fatal(err)
	}
	checked := 0
	for row := 0; row < seg.Height; row++ {
		for col := seg.StartX; col < seg.EndX(); col++ {
			tile := seg.Tile(col, row)
			if tile.Kind != TileSolid {
				continue
			}
			checked++
			// Bottom-row tiles always have solid support below.
			if row == seg.Height-1 && tile.Variant.Mask()&MaskS == 0 {
				t.Fatalf("bottom tile (%d,%d) lacks south neighbor bit", col, row)
			}
		}
	}
	if checked == 0 {
		t.Fatal("segment has no solid tiles")
	}
}

// groundRow returns the highest solid row of a column, or -1 for a pit.
func groundRow(w *Window, col int) int {
	for row := 0; row < w.GridHeight(); row++ {
		if w.Solid(col, row) {
			return row
		}
	}
	return -1
}

// baseRunner pilots the actor with the base moveset only: run right,
// jump from gap edges, and steer mid-air toward the next landing.
type baseRunner struct {
	targetX  float64
	steering bool
}

func (r *baseRunner) frame(a *Actor, w *Window) core.InputFrame {
	f := core.NewInputFrame()
	if a.Grounded {
		r.steering = false
		lead := int(math.Floor(a.Pos.X + a.W + 0.1))
		if groundRow(w, lead) >= 0 {
			f.Set(core.ActionRight)
			return f
		}
		land := lead + 1
		for land < lead+8 && groundRow(w, land) < 0 {
			land++
		}
		r.targetX = float64(land) + 0.5
		r.steering = true
		f.Set(core.ActionJump)
		f.Set(core.ActionRight)
		return f
	}
	// Push toward the landing target, then let drag settle the actor on
	// the platform. Dropping off a ledge steers nowhere and falls
	// straight down.
	if r.steering && a.Pos.X+a.W/2 < r.targetX-0.1 {
		f.Set(core.ActionRight)
	}
	return f
}

// A scripted pilot with the base jump envelope (no power-ups) must be
// able to cross the generated stream under the real physics engine, at
// the easiest and the hardest difficulty. Hazard contacts are not fatal
// here: the property under test is that the terrain itself stays
// crossable.
func TestGeneratorTraversableWithBaseMoveset(t *testing.T) {
	cfg := config.Default()
	goal := float64(15 * cfg.Generator.SegmentWidth)

	for _, level := range []float64{0.0, 1.0} {
		for seed := int64(1); seed <= 60; seed++ {
			diff := config.NewDifficultyManager(cfg.Difficulty)
			diff.SetInitialLevel(level)
			gen := NewGenerator(seed, cfg.Generator, diff)
			w := NewWindow(cfg.Generator.GridHeight)
			e := NewEngine(cfg.Physics)
			a := NewActor(cfg.Player, 1.0, cfg.Generator.BaseFloor)

			runner := &baseRunner{}
			bestX, stale := a.Pos.X, 0
			for tick := 0; a.Pos.X < goal; tick++ {
				for gen.FrontierX() < int(a.Pos.X)+2*cfg.Generator.SegmentWidth {
					seg, err := gen.Next(gen.FrontierX())
					if err != nil {
						t.Fatalf("level %.1f seed %d: %v", level, seed, err)
					}
					w.Append(seg)
				}
				ev := e.Step(&a, runner.frame(&a, w), w, Modifiers{}, true)
				if ev.FellOut {
					t.Fatalf("level %.1f seed %d: fell out at x=%.2f (tick %d)",
						level, seed, a.Pos.X, tick)
				}
				if a.Pos.X > bestX {
					bestX, stale = a.Pos.X, 0
				} else if stale++; stale > 900 {
					t.Fatalf("level %.1f seed %d: stuck at x=%.2f (tick %d)",
						level, seed, a.Pos.X, tick)
				}
			}
		}
	}
}

func TestLedgesStayOverPlatforms(t *testing.T) {
	cfg := config.Default()
	cfg.Generator.LedgeChance = 1.0
	for seed := int64(0); seed < 40; seed++ {
		g := NewGenerator(seed, cfg.Generator, config.NewDifficultyManager(cfg.Difficulty))
		for i := 0; i < 20; i++ {
			seg, err := g.Next(g.FrontierX())
			if err != nil {
				t.Fatalf("seed %d segment %d: %v", seed, i, err)
			}
			for col := seg.StartX; col < seg.EndX(); col++ {
				for row := 0; row < seg.Height-1; row++ {
					if seg.Kind(col, row) != TileSolid || seg.Kind(col, row+1) == TileSolid {
						continue
					}
					// A floating ledge cell: the columns beneath and
					// beside it must all be platform, with clearance to
					// walk under.
					for d := -1; d <= 2; d++ {
						fl := surfaceFloor(seg, col+d)
						if fl < 0 {
							t.Fatalf("seed %d segment %d: ledge at (%d,%d) hangs next to a pit",
								seed, i, col, row)
						}
						if fl-row < 5 {
							t.Fatalf("seed %d segment %d: ledge at (%d,%d) leaves no clearance above floor %d",
								seed, i, col, row, fl)
						}
					}
				}
			}
		}
	}
}
