// Package puzzlegrid derives the slot (Line) layout of a crossword grid
// from an arbitrary set of occupied cell coordinates: rectangular,
// circular, diamond, or otherwise. Grid-shape generation itself (deciding
// which coordinates are occupied) is an external collaborator's concern;
// this package only turns a coordinate set into across/down slots.
package puzzlegrid

import "sort"

// Coord is one occupied grid coordinate.
type Coord struct {
	X, Y int
}

// SlotDir is the direction of a derived slot.
type SlotDir int

const (
	Across SlotDir = iota
	Down
)

// Slot is a maximal run of contiguous occupied coordinates in one
// direction.
type Slot struct {
	Dir    SlotDir
	Coords []Coord // in traversal order, length == slot length
}

// Len returns the number of cells in the slot.
func (s Slot) Len() int {
	return len(s.Coords)
}

// Layout is the derived slot structure of a grid: every occupied
// coordinate's owning across/down slot (either may be absent, for cells
// that belong to only one axis, as in circle/diamond grids), and the
// full slot list.
type Layout struct {
	Slots []Slot

	// AcrossOf and DownOf map a coordinate to the index into Slots of its
	// across/down slot, or -1 if the cell has no slot on that axis
	// (either because the axis run has length 1, or the grid never
	// extends it).
	AcrossOf map[Coord]int
	DownOf   map[Coord]int
}

// Build derives the slot layout from a set of occupied coordinates. An
// across slot begins at a coordinate where no occupied cell exists
// immediately to the left, and extends while occupied cells continue to
// the right; symmetrically for down slots. Single-cell runs are excluded
// (they carry no constraint and cannot be a slot).
func Build(occupied map[Coord]bool) Layout {
	layout := Layout{
		AcrossOf: make(map[Coord]int),
		DownOf:   make(map[Coord]int),
	}

	coords := make([]Coord, 0, len(occupied))
	for c := range occupied {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})

	for _, c := range coords {
		if occupied[Coord{c.X - 1, c.Y}] {
			continue // not the start of an across run
		}
		var run []Coord
		for x := c.X; occupied[Coord{x, c.Y}]; x++ {
			run = append(run, Coord{x, c.Y})
		}
		if len(run) < 2 {
			continue
		}
		idx := len(layout.Slots)
		layout.Slots = append(layout.Slots, Slot{Dir: Across, Coords: run})
		for _, rc := range run {
			layout.AcrossOf[rc] = idx
		}
	}

	// Re-sort column-major for down runs so traversal order matches the
	// builder's stated column-then-row scan.
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].X != coords[j].X {
			return coords[i].X < coords[j].X
		}
		return coords[i].Y < coords[j].Y
	})

	for _, c := range coords {
		if occupied[Coord{c.X, c.Y - 1}] {
			continue // not the start of a down run
		}
		var run []Coord
		for y := c.Y; occupied[Coord{c.X, y}]; y++ {
			run = append(run, Coord{c.X, y})
		}
		if len(run) < 2 {
			continue
		}
		idx := len(layout.Slots)
		layout.Slots = append(layout.Slots, Slot{Dir: Down, Coords: run})
		for _, rc := range run {
			layout.DownOf[rc] = idx
		}
	}

	for c := range occupied {
		if _, ok := layout.AcrossOf[c]; !ok {
			layout.AcrossOf[c] = -1
		}
		if _, ok := layout.DownOf[c]; !ok {
			layout.DownOf[c] = -1
		}
	}

	return layout
}

// Rectangle returns the occupied-coordinate set for a w x h rectangle
// with the given black-square coordinates removed. It is a convenience
// helper for building test fixtures and CLI grid files; real grid-shape
// generation (rectangle/circle/diamond factories) is out of scope for
// this package.
func Rectangle(w, h int, black map[Coord]bool) map[Coord]bool {
	occupied := make(map[Coord]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := Coord{x, y}
			if !black[c] {
				occupied[c] = true
			}
		}
	}
	return occupied
}
