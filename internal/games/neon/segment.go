// Package neon implements the Neon Ascent endless platformer: a seeded
// procedural level stream, fixed-tick physics with power-up modifiers,
// and a combo-based run score.
package neon

import (
	"github.com/neonmask/neon-ascent/internal/core"
)

// TileKind classifies a grid cell.
type TileKind uint8

const (
	TileEmpty TileKind = iota
	TileSolid
	TileLaser // static beam hazard sitting on a surface
	TileField // energized field hazard, phases on and off
)

// IsHazard returns true for hazard tile kinds.
func (k TileKind) IsHazard() bool {
	return k == TileLaser || k == TileField
}

// Tile is a single level cell. The visual variant is derived once at
// generation time from the tile's neighborhood and cached here.
type Tile struct {
	Kind    TileKind
	Variant Variant
}

// Collectible is a crystal placed in a segment. Once collected it stops
// participating in pickup checks and scoring.
type Collectible struct {
	Pos       core.Vec2 // center, world tiles
	Value     int
	Collected bool
}

// PowerUpSpawn is a power-up placement. At most one per segment.
type PowerUpSpawn struct {
	Pos   core.Vec2 // center, world tiles
	Kind  Kind
	Taken bool
}

// Segment is a contiguous horizontal slice of the level: a tile grid,
// collectible placements, and at most one power-up spawn. Segments are
// generated in strictly increasing horizontal order and never
// regenerated.
type Segment struct {
	StartX int // world column of the segment's left edge
	Width  int
	Height int

	tiles [][]Tile // [row][localCol]

	Collectibles []*Collectible
	PowerUp      *PowerUpSpawn

	EntryFloor int // platform surface row at the left edge
	ExitFloor  int // platform surface row at the right edge
}

func newSegment(startX, width, height int) *Segment {
	s := &Segment{
		StartX: startX,
		Width:  width,
		Height: height,
	}
	s.tiles = make([][]Tile, height)
	for row := range s.tiles {
		s.tiles[row] = make([]Tile, width)
	}
	return s
}

// EndX returns the world column one past the segment's right edge.
func (s *Segment) EndX() int {
	return s.StartX + s.Width
}

// Contains reports whether the world column lies inside this segment.
func (s *Segment) Contains(col int) bool {
	return col >= s.StartX && col < s.EndX()
}

// Kind returns the tile kind at world coordinates.
// Out-of-bounds cells are empty.
func (s *Segment) Kind(col, row int) TileKind {
	return s.Tile(col, row).Kind
}

// Tile returns the tile at world coordinates.
// Out-of-bounds cells are empty.
func (s *Segment) Tile(col, row int) Tile {
	local := col - s.StartX
	if local < 0 || local >= s.Width || row < 0 || row >= s.Height {
		return Tile{}
	}
	return s.tiles[row][local]
}

func (s *Segment) setKind(local, row int, kind TileKind) {
	if local < 0 || local >= s.Width || row < 0 || row >= s.Height {
		return
	}
	s.tiles[row][local].Kind = kind
}

func (s *Segment) kindLocal(local, row int) TileKind {
	if local < 0 || local >= s.Width || row < 0 || row >= s.Height {
		return TileEmpty
	}
	return s.tiles[row][local].Kind
}
