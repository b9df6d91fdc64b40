package neon

import (
	"math/rand"

	"github.com/neonmask/neon-ascent/internal/core"
)

// Particle is one short-lived burst fragment in world coordinates.
type Particle struct {
	Pos   core.Vec2
	Vel   core.Vec2
	Life  int
	Color core.Color
}

// TrailDot is one fading glow-trail sample left behind the actor.
type TrailDot struct {
	Pos  core.Vec2
	Life int
}

// Popup is a floating score cue ("+125") drifting up from a pickup.
type Popup struct {
	Pos  core.Vec2
	Text string
	Life int
}

const (
	burstLife    = 18
	trailLife    = 10
	popupLife    = 45
	maxParticles = 256
	maxTrail     = 48
	maxPopups    = 16
)

// ParticleField owns the purely cosmetic effects: pickup bursts and the
// actor's glow trail. It uses its own random stream so visuals never
// perturb level generation.
type ParticleField struct {
	rng       *rand.Rand
	particles []Particle
	trail     []TrailDot
	popups    []Popup
}

func NewParticleField(seed int64) *ParticleField {
	return &ParticleField{rng: rand.New(rand.NewSource(seed))}
}

// Burst spawns n fragments radiating from a point.
func (p *ParticleField) Burst(at core.Vec2, color core.Color, n int) {
	for i := 0; i < n && len(p.particles) < maxParticles; i++ {
		p.particles = append(p.particles, Particle{
			Pos:   at,
			Vel:   core.Vec2{X: p.rng.Float64()*0.6 - 0.3, Y: p.rng.Float64()*0.6 - 0.4},
			Life:  burstLife - p.rng.Intn(6),
			Color: color,
		})
	}
}

// EmitTrail drops one glow sample at the given point.
func (p *ParticleField) EmitTrail(at core.Vec2) {
	if len(p.trail) >= maxTrail {
		copy(p.trail, p.trail[1:])
		p.trail = p.trail[:len(p.trail)-1]
	}
	p.trail = append(p.trail, TrailDot{Pos: at, Life: trailLife})
}

// Pop floats a score cue up from a point.
func (p *ParticleField) Pop(at core.Vec2, text string) {
	if len(p.popups) >= maxPopups {
		copy(p.popups, p.popups[1:])
		p.popups = p.popups[:len(p.popups)-1]
	}
	p.popups = append(p.popups, Popup{Pos: at, Text: text, Life: popupLife})
}

// Update advances and expires all effects by one tick.
func (p *ParticleField) Update() {
	live := p.particles[:0]
	for _, pt := range p.particles {
		pt.Life--
		if pt.Life <= 0 {
			continue
		}
		pt.Pos = pt.Pos.Add(pt.Vel)
		pt.Vel.Y += 0.015
		live = append(live, pt)
	}
	p.particles = live

	dots := p.trail[:0]
	for _, d := range p.trail {
		d.Life--
		if d.Life <= 0 {
			continue
		}
		dots = append(dots, d)
	}
	p.trail = dots

	pops := p.popups[:0]
	for _, pop := range p.popups {
		pop.Life--
		if pop.Life <= 0 {
			continue
		}
		pop.Pos.Y -= 0.06
		pops = append(pops, pop)
	}
	p.popups = pops
}

// Particles returns the live burst fragments.
func (p *ParticleField) Particles() []Particle {
	return p.particles
}

// Trail returns the live glow-trail samples, oldest first.
func (p *ParticleField) Trail() []TrailDot {
	return p.trail
}

// Popups returns the live score cues.
func (p *ParticleField) Popups() []Popup {
	return p.popups
}
