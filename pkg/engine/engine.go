// Package engine implements the interactive constraint-propagation and
// backtracking crossword solver: the word-index-driven slot candidate
// sets, the per-cell joint letter distribution, the MRV variable
// ordering, frequency-weighted value ordering, the no-reuse claimed-word
// registry, and the reversible commit/undo search.
package engine

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/crossplay/xwordsolve/pkg/dictionary"
	"github.com/crossplay/xwordsolve/pkg/idset"
	"github.com/crossplay/xwordsolve/pkg/letters"
	"github.com/crossplay/xwordsolve/pkg/puzzlegrid"
)

// Engine owns the full solver state for one puzzle: the dictionary
// indices, the derived lines and cells, the MRV queue, and the undo
// stack. It is strictly single-threaded and synchronous, per spec §5.
type Engine struct {
	dict    *dictionary.Dictionary
	indices *dictionary.WordIndices

	lines []*Line
	cells []*Cell

	coordIndex map[puzzlegrid.Coord]CellID

	queue     *mrvQueue
	undoStack []*undoFrame

	// rng selects §4.5's optional weighted-random value ordering. Nil
	// (the default) keeps value ordering at the deterministic
	// descending-frequency fallback.
	rng *rand.Rand
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithSeed makes value ordering draw letters by a weighted-random
// permutation (weights = per-letter counts in the cell's joint
// distribution) instead of strict descending frequency, per spec.md
// §4.5. The same seed always produces the same draw order, so Solve
// stays reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

type slotUndo struct {
	lineID       LineID
	snap         lineSnapshot
	claimedAdded *idset.ID
}

type undoFrame struct {
	cellID  CellID
	slots   []slotUndo
	touched []CellID
}

// UndoToken is returned by Commit and consumed by Undo. It is only valid
// while it refers to the top of the undo stack; Commit/Undo otherwise
// behave as a strict LIFO stack, matching §5's single-writer model.
type UndoToken struct {
	idx int
}

// New builds an Engine from an occupied-coordinate layout and a
// dictionary, optionally pinning fixed letters. Construction fails with
// ErrInvalidGrid if any slot's length has no dictionary words at all, or
// if a pinned coordinate is not part of the grid or its letter is not
// A-Z. A pinned letter that the cell cannot take fails with Pin's own
// error (ErrInvalidLetter or ErrDeadEnd), wrapped.
func New(layout puzzlegrid.Layout, indices *dictionary.WordIndices, pinned map[puzzlegrid.Coord]byte, opts ...Option) (*Engine, error) {
	dict := indices.Dictionary()

	acrossInfo := make(map[puzzlegrid.Coord]struct {
		line   LineID
		offset int
	})
	downInfo := make(map[puzzlegrid.Coord]struct {
		line   LineID
		offset int
	})
	for idx, slot := range layout.Slots {
		for off, coord := range slot.Coords {
			if slot.Dir == puzzlegrid.Across {
				acrossInfo[coord] = struct {
					line   LineID
					offset int
				}{LineID(idx), off}
			} else {
				downInfo[coord] = struct {
					line   LineID
					offset int
				}{LineID(idx), off}
			}
		}
	}

	coords := make([]puzzlegrid.Coord, 0, len(layout.AcrossOf))
	for c := range layout.AcrossOf {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})

	e := &Engine{
		dict:       dict,
		indices:    indices,
		coordIndex: make(map[puzzlegrid.Coord]CellID, len(coords)),
		queue:      newMRVQueue(),
	}
	for _, opt := range opts {
		opt(e)
	}

	for _, coord := range coords {
		cell := &Cell{
			id:        CellID(len(e.cells)),
			row:       coord.Y,
			col:       coord.X,
			lineA:     noLine,
			lineB:     noLine,
			heapIndex: -1,
		}
		if info, ok := acrossInfo[coord]; ok {
			cell.lineA, cell.offsetA = info.line, info.offset
		}
		if info, ok := downInfo[coord]; ok {
			cell.lineB, cell.offsetB = info.line, info.offset
		}
		e.coordIndex[coord] = cell.id
		e.cells = append(e.cells, cell)
	}

	for idx, slot := range layout.Slots {
		length := slot.Len()
		initial := indices.ByLength(length)
		if len(initial) == 0 {
			return nil, fmt.Errorf("%w: no words of length %d for slot %d", ErrInvalidGrid, length, idx)
		}
		cellIDs := make([]CellID, len(slot.Coords))
		for off, coord := range slot.Coords {
			cellIDs[off] = e.coordIndex[coord]
		}
		e.lines = append(e.lines, newLine(LineID(idx), length, cellIDs, initial, dict))
	}

	for _, c := range e.cells {
		c.recomputeCharDist(e.lines)
		// A cell belonging to no slot at all (possible at the degenerate
		// single-cell-grid boundary) carries no constraint and is never
		// part of the search; it is vacuously already determined.
		if c.lineA != noLine || c.lineB != noLine {
			e.queue.push(c)
		}
	}

	for coord, letter := range pinned {
		cellID, ok := e.coordIndex[coord]
		if !ok {
			return nil, fmt.Errorf("%w: pinned coordinate %v is not part of the grid", ErrInvalidGrid, coord)
		}
		li, ok := letters.IndexOf(letter)
		if !ok {
			return nil, fmt.Errorf("%w: pinned letter %q is not A-Z", ErrInvalidGrid, letter)
		}
		if err := e.Pin(cellID, li); err != nil {
			return nil, fmt.Errorf("pinning %v=%q: %w", coord, letter, err)
		}
	}

	return e, nil
}

// CellAt returns the CellID for a grid coordinate, if it is part of the
// puzzle.
func (e *Engine) CellAt(coord puzzlegrid.Coord) (CellID, bool) {
	id, ok := e.coordIndex[coord]
	return id, ok
}

// commitInternal performs the commit procedure of spec.md §4.6. On
// success it returns the undo frame without pushing it anywhere; the
// caller decides whether to keep it (Commit), discard it (Pin), or use
// it for recursive backtracking (the search engine).
func (e *Engine) commitInternal(cellID CellID, letter letters.Index) (*undoFrame, error) {
	cell := e.cells[cellID]
	if cell.choice != nil {
		return nil, ErrAlreadyChosen
	}
	if cell.charDist.Count(letter) == 0 {
		return nil, ErrInvalidLetter
	}

	e.queue.remove(cell)
	cell.choice = &letter

	frame := &undoFrame{cellID: cellID}
	touched := make(map[CellID]bool)

	type crossing struct {
		line   LineID
		offset int
	}
	var crossings []crossing
	if cell.lineA != noLine {
		crossings = append(crossings, crossing{cell.lineA, cell.offsetA})
	}
	if cell.lineB != noLine {
		crossings = append(crossings, crossing{cell.lineB, cell.offsetB})
	}

	failed := false
	for _, cr := range crossings {
		line := e.lines[cr.line]
		snap := line.snapshot()
		filterIDs := e.indices.ByLengthPosLetter(line.length, cr.offset, letter)
		claimedIDs := e.indices.Claimed(line.length)

		result, uniqueID := line.constrain(filterIDs, claimedIDs, e.dict)
		if result == constrainFailed {
			failed = true
			break
		}

		su := slotUndo{lineID: cr.line, snap: snap}
		if result == constrainUnique {
			if err := e.indices.Claim(line.length, uniqueID); err != nil {
				failed = true
				line.restore(snap)
				break
			}
			id := uniqueID
			line.claimedWord = &id
			su.claimedAdded = &id
		}
		frame.slots = append(frame.slots, su)
		for _, cid := range line.cellIDs {
			touched[cid] = true
		}
	}

	if failed {
		for i := len(frame.slots) - 1; i >= 0; i-- {
			su := frame.slots[i]
			line := e.lines[su.lineID]
			if su.claimedAdded != nil {
				e.indices.Unclaim(line.length, *su.claimedAdded)
			}
			line.restore(su.snap)
		}
		cell.choice = nil
		e.queue.push(cell)
		return nil, ErrDeadEnd
	}

	delete(touched, cellID)
	frame.touched = make([]CellID, 0, len(touched))
	for cid := range touched {
		frame.touched = append(frame.touched, cid)
	}
	sort.Slice(frame.touched, func(i, j int) bool { return frame.touched[i] < frame.touched[j] })

	for _, cid := range frame.touched {
		c := e.cells[cid]
		c.recomputeCharDist(e.lines)
		if c.choice != nil {
			continue
		}
		if e.queue.contains(c) {
			e.queue.fix(c)
		} else {
			e.queue.push(c)
		}
	}

	return frame, nil
}

// Pin commits a fixed letter that is not tracked on the undo stack: it
// cannot later be undone via Undo. Used for user-supplied starting
// letters.
func (e *Engine) Pin(cellID CellID, letter letters.Index) error {
	_, err := e.commitInternal(cellID, letter)
	return err
}

// Commit commits a letter and returns a token the caller can later pass
// to Undo to reverse exactly this commit, provided no other commit has
// happened since (Commit/Undo form a strict LIFO stack).
func (e *Engine) Commit(cellID CellID, letter letters.Index) (*UndoToken, error) {
	frame, err := e.commitInternal(cellID, letter)
	if err != nil {
		return nil, err
	}
	e.undoStack = append(e.undoStack, frame)
	return &UndoToken{idx: len(e.undoStack) - 1}, nil
}

// Undo reverses the commit identified by token, provided it is still the
// top of the undo stack.
func (e *Engine) Undo(token UndoToken) error {
	if token.idx != len(e.undoStack)-1 {
		return ErrUnknownToken
	}
	frame := e.undoStack[token.idx]
	e.undoStack = e.undoStack[:token.idx]
	e.applyUndo(frame)
	return nil
}

// applyUndo restores engine state from frame, per spec.md §4.7. Used both
// by the public Undo and by the recursive search's backtracking.
func (e *Engine) applyUndo(frame *undoFrame) {
	cell := e.cells[frame.cellID]
	cell.choice = nil

	for i := len(frame.slots) - 1; i >= 0; i-- {
		su := frame.slots[i]
		line := e.lines[su.lineID]
		if su.claimedAdded != nil {
			e.indices.Unclaim(line.length, *su.claimedAdded)
		}
		line.restore(su.snap)
	}

	for _, cid := range frame.touched {
		c := e.cells[cid]
		c.recomputeCharDist(e.lines)
		if c.choice != nil {
			continue
		}
		if e.queue.contains(c) {
			e.queue.fix(c)
		} else {
			e.queue.push(c)
		}
	}

	cell.recomputeCharDist(e.lines)
	e.queue.push(cell)
}

// Prefilter runs the fixed-point reducer of spec.md §4.9: words
// inconsistent with every crossing candidate at some position are
// discarded. It returns the ratio of total candidate words before to
// after (>= 1.0).
func (e *Engine) Prefilter() float64 {
	before := e.totalWords()

	changed := true
	for changed {
		changed = false
		for _, l := range e.lines {
			kept := l.words[:0:0]
			for _, id := range l.words {
				word := e.dict.Word(id)
				if e.wordConsistent(l, word) {
					kept = append(kept, id)
				}
			}
			if len(kept) != len(l.words) {
				l.words = kept
				l.rebuildInventories(e.dict)
				changed = true
			}
		}
	}

	for _, c := range e.cells {
		if c.choice != nil {
			continue
		}
		c.recomputeCharDist(e.lines)
		if e.queue.contains(c) {
			e.queue.fix(c)
		}
	}

	after := e.totalWords()
	if after == before {
		return 1.0
	}
	if after == 0 {
		return float64(before)
	}
	return float64(before) / float64(after)
}

func (e *Engine) wordConsistent(l *Line, word string) bool {
	for p := 0; p < l.length; p++ {
		cell := e.cells[l.cellIDs[p]]
		var otherInv *letters.Inventory
		switch {
		case cell.lineA == l.id && cell.lineB != noLine:
			otherInv = &e.lines[cell.lineB].inventories[cell.offsetB]
		case cell.lineB == l.id && cell.lineA != noLine:
			otherInv = &e.lines[cell.lineA].inventories[cell.offsetA]
		default:
			continue // single-axis cell: no crossing constraint
		}
		li, ok := letters.IndexOf(word[p])
		if !ok || otherInv.Count(li) == 0 {
			return false
		}
	}
	return true
}

func (e *Engine) totalWords() int {
	total := 0
	for _, l := range e.lines {
		total += len(l.words)
	}
	return total
}
