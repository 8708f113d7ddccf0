package engine

import (
	"github.com/crossplay/xwordsolve/pkg/dictionary"
	"github.com/crossplay/xwordsolve/pkg/idset"
	"github.com/crossplay/xwordsolve/pkg/letters"
)

// LineID identifies one slot.
type LineID int

// Line is the mutable state of one across/down slot: its candidate
// word-id set, a per-position letter histogram derived from that set,
// and (once reduced to size 1) the word it has claimed.
type Line struct {
	id      LineID
	length  int
	cellIDs []CellID // owned cells, in slot order

	words       []idset.ID        // sorted ascending, subset of ByLength(length)
	inventories []letters.Inventory // len == length

	claimedWord *idset.ID
}

func newLine(id LineID, length int, cellIDs []CellID, initialWords []idset.ID, dict *dictionary.Dictionary) *Line {
	l := &Line{
		id:          id,
		length:      length,
		cellIDs:     append([]CellID(nil), cellIDs...),
		words:       append([]idset.ID(nil), initialWords...),
		inventories: make([]letters.Inventory, length),
	}
	l.rebuildInventories(dict)
	return l
}

func (l *Line) rebuildInventories(dict *dictionary.Dictionary) {
	for p := range l.inventories {
		l.inventories[p] = letters.Inventory{}
	}
	for _, id := range l.words {
		word := dict.Word(id)
		for p := 0; p < l.length; p++ {
			li, ok := letters.IndexOf(word[p])
			if !ok {
				continue
			}
			l.inventories[p].Add(li, 1)
		}
	}
}

// constrainResult is the outcome of Line.constrain.
type constrainResult int

const (
	constrainOK constrainResult = iota
	constrainUnique
	constrainFailed
)

// constrain replaces l.words with (words ∩ filterIDs) − (claimedIDs −
// l.claimedWord), per spec.md §4.3, and rebuilds position inventories
// from the result.
func (l *Line) constrain(filterIDs, claimedIDs []idset.ID, dict *dictionary.Dictionary) (constrainResult, idset.ID) {
	candidates := idset.Collect(idset.And(idset.Leaf(l.words), idset.Leaf(filterIDs)))

	var selfClaimed []idset.ID
	if l.claimedWord != nil {
		selfClaimed = []idset.ID{*l.claimedWord}
	}
	toExclude := idset.Collect(idset.Diff(idset.Leaf(claimedIDs), idset.Leaf(selfClaimed)))

	newWords := idset.Collect(idset.Diff(idset.Leaf(candidates), idset.Leaf(toExclude)))

	if len(newWords) == 0 {
		return constrainFailed, 0
	}

	alreadyClaimed := l.claimedWord != nil

	l.words = newWords
	l.rebuildInventories(dict)

	// constrainUnique reports a size-1 result on a Line that holds no
	// claim yet: a Line already reduced (and claimed) stays constrainOK on
	// every later constrain so its caller doesn't re-Claim the same
	// word it already holds (spec.md §4.3). A Line whose candidate set
	// started at a single word reports constrainUnique on its first
	// constrain, so that word is claimed too.
	if len(newWords) == 1 && !alreadyClaimed {
		return constrainUnique, newWords[0]
	}
	return constrainOK, 0
}

// snapshot returns a value copy of l's mutable fields, sufficient to
// restore it on undo. cellIDs and length never change after
// construction and are not copied.
type lineSnapshot struct {
	words       []idset.ID
	inventories []letters.Inventory
	claimedWord *idset.ID
}

func (l *Line) snapshot() lineSnapshot {
	var claimed *idset.ID
	if l.claimedWord != nil {
		v := *l.claimedWord
		claimed = &v
	}
	return lineSnapshot{
		words:       append([]idset.ID(nil), l.words...),
		inventories: append([]letters.Inventory(nil), l.inventories...),
		claimedWord: claimed,
	}
}

func (l *Line) restore(s lineSnapshot) {
	l.words = s.words
	l.inventories = s.inventories
	l.claimedWord = s.claimedWord
}
