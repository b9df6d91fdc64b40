package neon

// Window is the sliding set of live segments around the player. Segments
// behind the camera are pruned; new ones are appended at the frontier.
type Window struct {
	segments   []*Segment
	gridHeight int
}

func NewWindow(gridHeight int) *Window {
	return &Window{gridHeight: gridHeight}
}

func (w *Window) GridHeight() int {
	return w.gridHeight
}

// FrontierX returns the first world column not yet covered by a segment.
func (w *Window) FrontierX() int {
	if len(w.segments) == 0 {
		return 0
	}
	return w.segments[len(w.segments)-1].EndX()
}

// Append adds a segment at the frontier.
func (w *Window) Append(s *Segment) {
	w.segments = append(w.segments, s)
}

// Segments returns the live segments in ascending StartX order.
func (w *Window) Segments() []*Segment {
	return w.segments
}

func (w *Window) segmentAt(col int) *Segment {
	for _, s := range w.segments {
		if s.Contains(col) {
			return s
		}
	}
	return nil
}

// Kind returns the tile kind at world coordinates, TileEmpty outside any
// live segment. Columns left of zero count as solid so the run cannot be
// escaped backwards off the start pad.
func (w *Window) Kind(col, row int) TileKind {
	if col < 0 {
		return TileSolid
	}
	if s := w.segmentAt(col); s != nil {
		return s.Kind(col, row)
	}
	return TileEmpty
}

// Solid reports whether the cell blocks movement.
func (w *Window) Solid(col, row int) bool {
	return w.Kind(col, row) == TileSolid
}

// PruneBefore drops segments that end at or before the given column.
func (w *Window) PruneBefore(col int) {
	keep := w.segments[:0]
	for _, s := range w.segments {
		if s.EndX() > col {
			keep = append(keep, s)
		}
	}
	// zero the tail so pruned segments can be collected
	for i := len(keep); i < len(w.segments); i++ {
		w.segments[i] = nil
	}
	w.segments = keep
}
