package neon

import (
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strconv"
	"strings"

	"github.com/neonmask/neon-ascent/internal/config"
	"github.com/neonmask/neon-ascent/internal/core"
)

var (
	// ErrOutOfOrder is returned when a segment is requested at a frontier
	// that does not match the next ungenerated column. Segments are
	// produced strictly left to right and never regenerated.
	ErrOutOfOrder = errors.New("neon: out-of-order segment request")

	// ErrInvalidSeed is returned for seed strings that cannot be turned
	// into a level seed.
	ErrInvalidSeed = errors.New("neon: invalid seed")
)

// ParseSeed turns a seed string into a level seed. Decimal integers are
// used directly so runs can be replayed from a numeric seed; any other
// non-blank string is hashed. Blank input is rejected.
func ParseSeed(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: blank seed string", ErrInvalidSeed)
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64()), nil
}

// Generator produces level segments from a single seeded random stream.
// All placement randomness (terrain, hazards, collectibles, power-ups)
// is drawn from that one stream, so a seed fully determines the level.
type Generator struct {
	cfg  config.GeneratorConfig
	diff *config.DifficultyManager
	seed int64
	rng  *rand.Rand

	nextX       int
	exitFloor   int
	segmentsOut int
}

// NewGenerator creates a generator for the given seed. The difficulty
// manager shapes gap width and hazard density as the run progresses.
func NewGenerator(seed int64, cfg config.GeneratorConfig, diff *config.DifficultyManager) *Generator {
	return &Generator{
		cfg:       cfg,
		diff:      diff,
		seed:      seed,
		rng:       rand.New(rand.NewSource(seed)),
		exitFloor: cfg.BaseFloor,
	}
}

// Seed returns the level seed the generator was created with.
func (g *Generator) Seed() int64 {
	return g.seed
}

// FrontierX returns the first column the generator has not produced yet.
func (g *Generator) FrontierX() int {
	return g.nextX
}

// Next generates the segment starting at frontierX, which must equal the
// generator's own frontier. Any other value means the caller lost track
// of the stream and gets ErrOutOfOrder; the generator state is untouched.
func (g *Generator) Next(frontierX int) (*Segment, error) {
	if frontierX != g.nextX {
		return nil, fmt.Errorf("%w: got frontier %d, expected %d", ErrOutOfOrder, frontierX, g.nextX)
	}

	width := g.cfg.SegmentWidth
	height := g.cfg.GridHeight
	seg := newSegment(g.nextX, width, height)
	seg.EntryFloor = g.exitFloor

	floors := g.layoutTerrain(seg)
	g.placeLedges(seg, floors)
	hazards := g.placeHazards(seg, floors)
	g.placeCollectibles(seg, floors, hazards)
	g.resolveVariants(seg)

	seg.ExitFloor = floors[width-1]
	g.exitFloor = seg.ExitFloor
	g.nextX = seg.EndX()
	g.segmentsOut++
	return seg, nil
}

// layoutTerrain walks the segment left to right alternating platform
// runs with gaps, filling solid tiles from each surface row down. The
// returned slice holds the surface row per column, -1 over gaps. Every
// gap stays within the jump envelope: width at most the difficulty's
// current maximum (itself capped by the configured envelope), rise at
// most MaxRise, drop at most MaxDrop. Segments always begin and end on
// a platform at the entry/exit floor so the stream stays traversable
// across segment boundaries.
func (g *Generator) layoutTerrain(seg *Segment) []int {
	width := seg.Width
	floors := make([]int, width)
	for i := range floors {
		floors[i] = -1
	}

	maxGap := g.diff.MaxGap(g.cfg.MinGap, g.cfg.MaxGap, g.nextX, 0)
	floor := seg.EntryFloor
	widestLanding := -1
	x := 0
	for x < width {
		run := g.cfg.MinPlatformRun + g.rng.Intn(g.cfg.MaxPlatformRun-g.cfg.MinPlatformRun+1)
		if x+run > width {
			run = width - x
		}
		for i := 0; i < run; i++ {
			floors[x+i] = floor
		}
		x += run
		if x >= width {
			break
		}

		gap := g.cfg.MinGap
		if maxGap > g.cfg.MinGap {
			gap += g.rng.Intn(maxGap - g.cfg.MinGap + 1)
		}
		if x+gap+g.cfg.MinPlatformRun > width {
			// No room for another jump; extend the platform to the edge.
			for ; x < width; x++ {
				floors[x] = floor
			}
			break
		}
		x += gap
		if gap >= maxGap {
			widestLanding = x
		}

		// Clamping only ever shrinks the step, so rise and drop limits hold.
		delta := g.rng.Intn(g.cfg.MaxRise+g.cfg.MaxDrop+1) - g.cfg.MaxRise
		floor = core.Clamp(floor+delta, 4, seg.Height-3)
	}

	for col, f := range floors {
		if f < 0 {
			continue
		}
		for row := f; row < seg.Height; row++ {
			seg.setKind(col, row, TileSolid)
		}
	}

	g.placePowerUp(seg, floors, widestLanding)
	return floors
}

// placeLedges occasionally hangs a short floating platform above the
// main surface, a route for bonus crystals.
func (g *Generator) placeLedges(seg *Segment, floors []int) {
	if g.rng.Float64() >= g.cfg.LedgeChance {
		return
	}
	start := 2 + g.rng.Intn(seg.Width-8)
	length := 3 + g.rng.Intn(3)

	// A ledge only hangs over an unbroken platform stretch, with spare
	// floored columns on both sides, so it never blocks the jump arc
	// across a gap and dropping off its right end always has ground
	// underneath.
	if start+length+2 >= seg.Width {
		return
	}
	lowest := seg.Height
	for c := start - 1; c <= start+length+2; c++ {
		if floors[c] < 0 {
			return
		}
		if floors[c] < lowest {
			lowest = floors[c]
		}
	}
	row := lowest - 5
	if row < 2 {
		return
	}
	for c := start; c < start+length; c++ {
		seg.setKind(c, row, TileSolid)
		if g.rng.Float64() < 0.6 {
			g.addCollectible(seg, c, row)
		}
	}
}

// placeHazards rolls per-column hazards at the current difficulty's
// density. Landing and takeoff columns around gaps stay clear, hazards
// never sit on adjacent columns, and the warmup stretch at the start of
// a run has none at all.
func (g *Generator) placeHazards(seg *Segment, floors []int) map[int]bool {
	hazards := make(map[int]bool)
	if g.segmentsOut < g.cfg.WarmupSegments {
		return hazards
	}
	density := g.diff.HazardDensity(g.nextX, 0)
	if density <= 0 {
		return hazards
	}
	for c := 1; c < seg.Width-1; c++ {
		if floors[c] < 0 || floors[c-1] < 0 || floors[c+1] < 0 {
			continue
		}
		if hazards[c-1] {
			continue
		}
		if seg.kindLocal(c, floors[c]-1) != TileEmpty {
			continue
		}
		if g.rng.Float64() >= density {
			continue
		}
		kind := TileLaser
		if g.rng.Float64() < 0.5 {
			kind = TileField
		}
		seg.setKind(c, floors[c]-1, kind)
		hazards[c] = true
	}
	return hazards
}

// placeCollectibles scatters crystals just above the walking surface.
func (g *Generator) placeCollectibles(seg *Segment, floors []int, hazards map[int]bool) {
	for c := 0; c < seg.Width; c++ {
		if floors[c] < 0 || hazards[c] {
			continue
		}
		if g.rng.Float64() >= g.cfg.CollectibleChance {
			continue
		}
		g.addCollectible(seg, c, floors[c])
	}
}

// addCollectible places a crystal centered above the surface row. Value
// scales with a weighted tier roll, commoner tiers worth less.
func (g *Generator) addCollectible(seg *Segment, localCol, surfaceRow int) {
	tier := 1
	switch g.rng.Intn(6) {
	case 3, 4:
		tier = 2
	case 5:
		tier = 3
	}
	seg.Collectibles = append(seg.Collectibles, &Collectible{
		Pos:   core.Vec2{X: float64(seg.StartX+localCol) + 0.5, Y: float64(surfaceRow) - 1.5},
		Value: 50 * tier,
	})
}

// placePowerUp hangs at most one power-up per segment, gated on the
// segment having emitted a widest-allowed gap: the reward sits past the
// hardest jump.
func (g *Generator) placePowerUp(seg *Segment, floors []int, landing int) {
	if landing < 0 || g.rng.Float64() >= g.cfg.PowerUpChance {
		return
	}
	seg.PowerUp = &PowerUpSpawn{
		Pos:  core.Vec2{X: float64(seg.StartX+landing) + 0.5, Y: float64(floors[landing]) - 2.5},
		Kind: Kind(g.rng.Intn(int(KindCount))),
	}
}

// resolveVariants computes the cached visual variant for every occupied
// cell. The occupancy probe extends past the segment edges using the
// entry/exit floors, which is exactly what the neighbor segments provide
// at the boundary.
func (g *Generator) resolveVariants(seg *Segment) {
	occupied := func(col, row int) bool {
		if row >= seg.Height {
			return true
		}
		if row < 0 {
			return false
		}
		local := col - seg.StartX
		switch {
		case local < 0:
			return row >= seg.EntryFloor
		case local >= seg.Width:
			return row >= seg.ExitFloor
		default:
			return seg.tiles[row][local].Kind == TileSolid
		}
	}
	for row := 0; row < seg.Height; row++ {
		for local := 0; local < seg.Width; local++ {
			if seg.tiles[row][local].Kind == TileEmpty {
				continue
			}
			col := seg.StartX + local
			mask := neighborMaskAt(occupied, col, row)
			seg.tiles[row][local].Variant = ResolveVariant(mask, g.seed, col, row)
		}
	}
}
