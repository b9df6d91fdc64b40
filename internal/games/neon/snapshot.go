package neon

import "github.com/neonmask/neon-ascent/internal/core"

// Snapshot is a render-agnostic view of one simulation tick: everything
// a frontend needs to draw the run without reaching into the simulation.
type Snapshot struct {
	Tick    int
	CameraX float64

	Actor        ActorView
	Tiles        []TileView
	Collectibles []CollectibleView
	PowerUps     []PowerUpView
	Powers       []PowerStatus
	Particles    []Particle
	Trail        []TrailDot
	Popups       []Popup

	State core.GameState
}

// ActorView is the player pose for rendering.
type ActorView struct {
	Pos         core.Vec2
	Vel         core.Vec2
	W, H        float64
	Grounded    bool
	FacingRight bool
}

// TileView is one visible occupied cell with its resolved variant. Lit
// is false for field hazards in their off phase.
type TileView struct {
	Col, Row int
	Kind     TileKind
	Variant  Variant
	Lit      bool
}

// CollectibleView is one uncollected crystal in view.
type CollectibleView struct {
	Pos   core.Vec2
	Value int
}

// PowerUpView is one untaken power-up spawn in view.
type PowerUpView struct {
	Pos  core.Vec2
	Kind Kind
}

// PowerStatus reports one active power-up for the HUD.
type PowerStatus struct {
	Kind      Kind
	Remaining int
	Charges   int
}

// Snapshot captures the current tick for rendering. Only cells within
// viewWidth columns of the camera are included.
func (g *Game) Snapshot(viewWidth int) Snapshot {
	snap := Snapshot{
		Tick:    g.tick,
		CameraX: g.cameraX,
		Actor: ActorView{
			Pos:         g.actor.Pos,
			Vel:         g.actor.Vel,
			W:           g.actor.W,
			H:           g.actor.H,
			Grounded:    g.actor.Grounded,
			FacingRight: g.actor.FacingRight,
		},
		Particles: g.particles.Particles(),
		Trail:     g.particles.Trail(),
		Popups:    g.particles.Popups(),
		State:     g.gameState(),
	}

	firstCol := int(g.cameraX)
	lastCol := firstCol + viewWidth

	for _, seg := range g.window.Segments() {
		if seg.EndX() <= firstCol || seg.StartX >= lastCol {
			continue
		}
		lo := core.Max(firstCol, seg.StartX)
		hi := core.Min(lastCol, seg.EndX())
		for col := lo; col < hi; col++ {
			for row := 0; row < seg.Height; row++ {
				t := seg.Tile(col, row)
				if t.Kind == TileEmpty {
					continue
				}
				lit := t.Kind != TileField || fieldOn(g.fieldPhase)
				snap.Tiles = append(snap.Tiles, TileView{
					Col: col, Row: row, Kind: t.Kind, Variant: t.Variant, Lit: lit,
				})
			}
		}
		for _, c := range seg.Collectibles {
			if !c.Collected && c.Pos.X >= float64(firstCol) && c.Pos.X < float64(lastCol) {
				snap.Collectibles = append(snap.Collectibles, CollectibleView{Pos: c.Pos, Value: c.Value})
			}
		}
		if p := seg.PowerUp; p != nil && !p.Taken && p.Pos.X >= float64(firstCol) && p.Pos.X < float64(lastCol) {
			snap.PowerUps = append(snap.PowerUps, PowerUpView{Pos: p.Pos, Kind: p.Kind})
		}
	}

	for k := Kind(0); k < KindCount; k++ {
		if g.powers.Active(k) {
			snap.Powers = append(snap.Powers, PowerStatus{
				Kind:      k,
				Remaining: g.powers.Remaining(k),
				Charges:   g.powers.Charges(k),
			})
		}
	}
	return snap
}
