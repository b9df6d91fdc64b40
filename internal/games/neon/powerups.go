package neon

import "github.com/neonmask/neon-ascent/internal/config"

// Kind identifies a power-up.
type Kind int

const (
	KindDoubleJump Kind = iota
	KindDash
	KindShield
	KindMagnet
	KindCount
)

func (k Kind) String() string {
	switch k {
	case KindDoubleJump:
		return "double-jump"
	case KindDash:
		return "dash"
	case KindShield:
		return "shield"
	case KindMagnet:
		return "magnet"
	default:
		return "unknown"
	}
}

// Glyph returns the single-rune HUD marker for the kind.
func (k Kind) Glyph() rune {
	switch k {
	case KindDoubleJump:
		return '⇈'
	case KindDash:
		return '»'
	case KindShield:
		return '◉'
	case KindMagnet:
		return 'Ω'
	default:
		return '?'
	}
}

type powerState struct {
	active    bool
	remaining int // ticks until expiry
	charges   int // uses left, charge-based kinds only
}

// Set tracks the independent activation state of every power-up kind.
// Picking up a kind that is already active refreshes it back to full;
// effects never stack. Each kind runs its own timer, so any combination
// can be active at once.
type Set struct {
	cfg    config.PowerUpConfig
	states [KindCount]powerState
}

func NewSet(cfg config.PowerUpConfig) *Set {
	return &Set{cfg: cfg}
}

// Activate switches the kind to active with a full duration and charge
// count, whether or not it was active already.
func (s *Set) Activate(k Kind) {
	if k < 0 || k >= KindCount {
		return
	}
	st := powerState{active: true}
	switch k {
	case KindDoubleJump:
		st.remaining = s.cfg.DoubleJumpTicks
		st.charges = s.cfg.DoubleJumpCharges
	case KindDash:
		st.remaining = s.cfg.DashTicks
	case KindShield:
		st.remaining = s.cfg.ShieldTicks
	case KindMagnet:
		st.remaining = s.cfg.MagnetTicks
	}
	s.states[k] = st
}

// Tick advances every active timer by one tick, expiring kinds whose
// remaining duration hits zero.
func (s *Set) Tick() {
	for k := range s.states {
		st := &s.states[k]
		if !st.active {
			continue
		}
		st.remaining--
		if st.remaining <= 0 {
			*st = powerState{}
		}
	}
}

// Active reports whether the kind is currently active.
func (s *Set) Active(k Kind) bool {
	return k >= 0 && k < KindCount && s.states[k].active
}

// Remaining returns the ticks left before the kind expires, zero when
// inactive.
func (s *Set) Remaining(k Kind) int {
	if !s.Active(k) {
		return 0
	}
	return s.states[k].remaining
}

// Charges returns the uses left for charge-based kinds.
func (s *Set) Charges(k Kind) int {
	if !s.Active(k) {
		return 0
	}
	return s.states[k].charges
}

// ConsumeAirJump spends one double-jump charge, expiring the kind when
// the last charge goes.
func (s *Set) ConsumeAirJump() {
	st := &s.states[KindDoubleJump]
	if !st.active || st.charges <= 0 {
		return
	}
	st.charges--
	if st.charges == 0 {
		*st = powerState{}
	}
}

// AbsorbHazard consumes the shield if it is active. Returns true when
// the hit was absorbed; the shield is single-use and expires on absorb
// regardless of its remaining duration.
func (s *Set) AbsorbHazard() bool {
	st := &s.states[KindShield]
	if !st.active {
		return false
	}
	*st = powerState{}
	return true
}

// Modifiers projects the active kinds onto the physics engine's
// per-tick inputs.
func (s *Set) Modifiers() Modifiers {
	m := Modifiers{PickupRadius: s.cfg.PickupRadius}
	if s.Active(KindDoubleJump) {
		m.AirJumps = s.states[KindDoubleJump].charges
	}
	if s.Active(KindDash) {
		m.DashEnabled = true
	}
	if s.Active(KindMagnet) {
		m.MagnetRadius = s.cfg.MagnetRadius
		m.MagnetPull = s.cfg.MagnetPull
		// The magnet also widens the direct pickup window.
		m.PickupRadius = s.cfg.PickupRadius * 1.5
	}
	return m
}
