package neon

import (
	"fmt"

	"github.com/neonmask/neon-ascent/internal/core"
)

var solidGlyphs = [SubVariants]rune{'█', '█', '▓', '▓'}
var solidColors = [SubVariants]core.Color{
	core.ColorBrightCyan,
	core.ColorCyan,
	core.ColorBrightBlue,
	core.ColorCyan,
}

// Render draws the current tick onto the screen: level tiles, pickups,
// effects, the actor, a HUD line, and run-over / paused overlays.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	width := dst.Width()
	snap := g.Snapshot(width + 1)

	// The playfield is bottom-aligned; anything above it is HUD space.
	yOff := dst.Height() - g.cfg.Generator.GridHeight
	toScreen := func(wx, wy float64) (int, int) {
		return int(wx - snap.CameraX), int(wy) + yOff
	}

	for _, t := range snap.Tiles {
		sx := t.Col - int(snap.CameraX)
		sy := t.Row + yOff
		switch t.Kind {
		case TileSolid:
			sub := t.Variant.Sub()
			glyph := solidGlyphs[sub]
			color := solidColors[sub]
			if !t.Variant.Surface() {
				glyph = '▒'
				color = core.ColorBlue
			}
			dst.SetColored(sx, sy, glyph, color)
		case TileLaser:
			dst.SetColored(sx, sy, '▲', core.ColorBrightRed)
		case TileField:
			if t.Lit {
				dst.SetColored(sx, sy, '≋', core.ColorBrightMagenta)
			} else {
				dst.SetColored(sx, sy, '∙', core.ColorGray)
			}
		}
	}

	for _, d := range snap.Trail {
		sx, sy := toScreen(d.Pos.X, d.Pos.Y)
		dst.SetColored(sx, sy, '·', core.ColorGray)
	}
	for _, p := range snap.Particles {
		sx, sy := toScreen(p.Pos.X, p.Pos.Y)
		dst.SetColored(sx, sy, '•', p.Color)
	}

	for _, c := range snap.Collectibles {
		sx, sy := toScreen(c.Pos.X, c.Pos.Y)
		glyph := '◇'
		if c.Value > 50 {
			glyph = '◆'
		}
		dst.SetColored(sx, sy, glyph, core.ColorBrightYellow)
	}
	for _, p := range snap.PowerUps {
		sx, sy := toScreen(p.Pos.X, p.Pos.Y)
		dst.SetColored(sx, sy, p.Kind.Glyph(), core.ColorBrightGreen)
	}

	for _, pop := range snap.Popups {
		sx, sy := toScreen(pop.Pos.X, pop.Pos.Y)
		dst.DrawTextColored(sx, sy, pop.Text, core.ColorBrightYellow)
	}

	// Actor: head over body.
	ax, ay := toScreen(snap.Actor.Pos.X+snap.Actor.W/2, snap.Actor.Pos.Y)
	dst.SetColored(ax, ay, '◆', core.ColorBrightWhite)
	dst.SetColored(ax, ay+1, '█', core.ColorWhite)

	g.renderHUD(dst, snap)

	switch {
	case snap.State.GameOver:
		g.renderGameOver(dst, snap)
	case snap.State.Paused:
		drawCenteredBox(dst, []string{"PAUSED", "press p to resume"})
	}
}

func (g *Game) renderHUD(dst *core.Screen, snap Snapshot) {
	hud := fmt.Sprintf(" SCORE %d  DIST %dm  ◆%d", snap.State.Score, snap.State.Distance, snap.State.Crystals)
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)
	if snap.State.Combo > 1.0 {
		dst.DrawTextColored(len(hud)+2, 0, fmt.Sprintf("x%.2f", snap.State.Combo), core.ColorBrightYellow)
	}

	x := dst.Width() - 1
	rate := g.runtime.TickRate
	if rate <= 0 {
		rate = 60
	}
	for i := len(snap.Powers) - 1; i >= 0; i-- {
		p := snap.Powers[i]
		label := fmt.Sprintf("%c%d", p.Kind.Glyph(), (p.Remaining+rate-1)/rate)
		x -= len(label) + 1
		dst.DrawTextColored(x, 0, label, core.ColorBrightGreen)
	}
}

func (g *Game) renderGameOver(dst *core.Screen, snap Snapshot) {
	title := "RUN OVER"
	if snap.State.EndReason == EndAbandoned {
		title = "RUN ABANDONED"
	}
	drawCenteredBox(dst, []string{
		title,
		fmt.Sprintf("score %d  distance %dm", snap.State.Score, snap.State.Distance),
		"press r to restart",
	})
}

// drawCenteredBox draws a bordered message box in the middle of the
// screen, the way the arcade frontends expect overlays.
func drawCenteredBox(dst *core.Screen, lines []string) {
	width := 0
	for _, l := range lines {
		if len(l) > width {
			width = len(l)
		}
	}
	width += 4
	height := len(lines) + 2
	x := (dst.Width() - width) / 2
	y := (dst.Height() - height) / 2
	dst.DrawRect(x, y, width, height, ' ')
	dst.DrawBox(x, y, width, height)
	for i, l := range lines {
		dst.DrawText(x+(width-len(l))/2, y+1+i, l)
	}
}
