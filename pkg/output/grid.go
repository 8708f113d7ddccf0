// Package output renders a solved (or partially solved) engine snapshot
// into the wire formats downstream solvers and viewers expect: ipuz,
// .puz, and a plain JSON grid. It only reads from pkg/engine and
// pkg/puzzlegrid; it never drives a search itself.
package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/crossplay/xwordsolve/pkg/engine"
	"github.com/crossplay/xwordsolve/pkg/puzzlegrid"
)

// Meta carries the export-time metadata an engine snapshot has no notion
// of: title/author come from the PuzzleDefinition that produced the
// grid, not from the solver itself.
type Meta struct {
	Title, Author string
	Width, Height int
}

// GridCell is one exported cell: black, or a letter (possibly still
// unsolved) with an optional clue number.
type GridCell struct {
	Black  bool
	Letter byte // 0 if unsolved
	Number int  // 0 if this cell starts no slot
}

// Entry is one across/down word, rendered from the engine's current
// per-cell choices. An unsolved cell within the entry renders as '?'.
type Entry struct {
	Number int
	Dir    string // "across" or "down"
	Answer string
}

// Grid is the export-ready rendering of one engine snapshot against the
// puzzlegrid.Layout that built it.
type Grid struct {
	Meta
	Cells  [][]GridCell // [y][x]
	Across []Entry
	Down   []Entry
}

// BuildGrid renders an engine snapshot into export form. It is read-only:
// nothing here mutates the engine or infers an occupied-cell set on its
// own behalf, both of which remain the caller's concern (puzzlegrid.Build
// and engine.Engine.Snapshot).
func BuildGrid(meta Meta, layout puzzlegrid.Layout, snap engine.Snapshot) (*Grid, error) {
	if meta.Width <= 0 || meta.Height <= 0 {
		return nil, fmt.Errorf("invalid grid dimensions: %dx%d", meta.Width, meta.Height)
	}

	choiceAt := make(map[puzzlegrid.Coord]*byte, len(snap.Cells))
	occupied := make(map[puzzlegrid.Coord]bool, len(snap.Cells))
	for _, c := range snap.Cells {
		coord := puzzlegrid.Coord{X: c.Col, Y: c.Row}
		occupied[coord] = true
		choiceAt[coord] = c.Choice
	}

	startsAcross := make(map[puzzlegrid.Coord]bool)
	startsDown := make(map[puzzlegrid.Coord]bool)
	for _, slot := range layout.Slots {
		if len(slot.Coords) == 0 {
			continue
		}
		start := slot.Coords[0]
		if slot.Dir == puzzlegrid.Across {
			startsAcross[start] = true
		} else {
			startsDown[start] = true
		}
	}

	cells := make([][]GridCell, meta.Height)
	numbered := make(map[puzzlegrid.Coord]int)
	number := 0
	for y := 0; y < meta.Height; y++ {
		cells[y] = make([]GridCell, meta.Width)
		for x := 0; x < meta.Width; x++ {
			coord := puzzlegrid.Coord{X: x, Y: y}
			if !occupied[coord] {
				cells[y][x] = GridCell{Black: true}
				continue
			}
			cell := GridCell{}
			if choice := choiceAt[coord]; choice != nil {
				cell.Letter = *choice
			}
			if startsAcross[coord] || startsDown[coord] {
				number++
				numbered[coord] = number
				cell.Number = number
			}
			cells[y][x] = cell
		}
	}

	var across, down []Entry
	for _, slot := range layout.Slots {
		if len(slot.Coords) == 0 {
			continue
		}
		num, ok := numbered[slot.Coords[0]]
		if !ok {
			continue
		}
		var sb strings.Builder
		for _, c := range slot.Coords {
			if choice := choiceAt[c]; choice != nil {
				sb.WriteByte(*choice)
			} else {
				sb.WriteByte('?')
			}
		}
		entry := Entry{Number: num, Answer: sb.String()}
		if slot.Dir == puzzlegrid.Across {
			entry.Dir = "across"
			across = append(across, entry)
		} else {
			entry.Dir = "down"
			down = append(down, entry)
		}
	}
	sort.Slice(across, func(i, j int) bool { return across[i].Number < across[j].Number })
	sort.Slice(down, func(i, j int) bool { return down[i].Number < down[j].Number })

	return &Grid{Meta: meta, Cells: cells, Across: across, Down: down}, nil
}
