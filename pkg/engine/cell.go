package engine

import "github.com/crossplay/xwordsolve/pkg/letters"

// CellID identifies one grid cell.
type CellID int

const noLine LineID = -1

// Cell is one grid square: its two crossing slots (either may be absent,
// noLine, for a cell on only one axis), its optional committed letter,
// and its cached joint letter distribution.
type Cell struct {
	id       CellID
	row, col int

	lineA, lineB     LineID
	offsetA, offsetB int

	choice   *letters.Index
	charDist letters.Inventory

	heapIndex int // position in the MRV heap, -1 when not queued
	seq       int64
}

// recomputeCharDist recomputes charDist from the current state of the
// cell's crossing lines, per spec.md §4.4 and the single-axis rule of
// §4.10/§9.
func (c *Cell) recomputeCharDist(lines []*Line) {
	var invA, invB *letters.Inventory
	if c.lineA != noLine {
		invA = &lines[c.lineA].inventories[c.offsetA]
	}
	if c.lineB != noLine {
		invB = &lines[c.lineB].inventories[c.offsetB]
	}

	switch {
	case invA != nil && invB != nil:
		c.charDist = letters.Product(*invA, *invB)
	case invA != nil:
		c.charDist = *invA
	case invB != nil:
		c.charDist = *invB
	default:
		c.charDist = letters.Inventory{}
	}
}
