package engine

import "github.com/crossplay/xwordsolve/pkg/letters"

// CellView is the read-only view of one cell for the presentation
// collaborator of spec.md §6.
type CellView struct {
	ID       CellID
	Row, Col int
	Choice   *byte
	CharDist []letters.Entry
}

// LineView is the read-only view of one slot.
type LineView struct {
	ID             LineID
	Length         int
	WordsRemaining int
	Claimed        bool
}

// Snapshot is a read-only view of the engine suitable for a UI
// collaborator to render. The core emits no side effects to the
// presentation layer beyond what the caller reads here.
type Snapshot struct {
	Cells []CellView
	Lines []LineView
}

// Snapshot returns a point-in-time read-only view of the engine.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Cells: make([]CellView, len(e.cells)),
		Lines: make([]LineView, len(e.lines)),
	}
	for i, c := range e.cells {
		var choice *byte
		if c.choice != nil {
			b := c.choice.Letter()
			choice = &b
		}
		snap.Cells[i] = CellView{
			ID:       c.id,
			Row:      c.row,
			Col:      c.col,
			Choice:   choice,
			CharDist: c.charDist.Entries(),
		}
	}
	for i, l := range e.lines {
		snap.Lines[i] = LineView{
			ID:             l.id,
			Length:         l.length,
			WordsRemaining: len(l.words),
			Claimed:        l.claimedWord != nil,
		}
	}
	return snap
}
