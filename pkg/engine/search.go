package engine

import (
	"math"
	"math/rand"
	"sort"

	"github.com/crossplay/xwordsolve/pkg/letters"
)

// Status is the outcome of Solve.
type Status int

const (
	Unsolvable Status = iota
	Solved
	Incomplete
)

func (s Status) String() string {
	switch s {
	case Solved:
		return "solved"
	case Incomplete:
		return "incomplete"
	default:
		return "unsolvable"
	}
}

// Outcome is the result of a Solve call.
type Outcome struct {
	Status     Status
	Assignment map[CellID]byte // cell -> committed letter
	Steps      int
}

type choiceKind int

const (
	choiceSuccess choiceKind = iota
	choiceFailure
	choiceSingle
	choiceMany
)

type choiceStep struct {
	kind    choiceKind
	cell    *Cell
	options []letters.Index
}

// nextChoice implements spec.md §4.5: peek the MRV queue and classify.
func (e *Engine) nextChoice() choiceStep {
	top, ok := e.queue.peek()
	if !ok {
		return choiceStep{kind: choiceSuccess}
	}
	support := top.charDist.LetterSet()
	switch support.Size() {
	case 0:
		return choiceStep{kind: choiceFailure, cell: top}
	case 1:
		return choiceStep{kind: choiceSingle, cell: top, options: support.Letters()}
	default:
		if e.rng != nil {
			return choiceStep{kind: choiceMany, cell: top, options: weightedRandomOrder(e.rng, top.charDist, support)}
		}
		return choiceStep{kind: choiceMany, cell: top, options: byFrequencyDesc(top.charDist, support)}
	}
}

// byFrequencyDesc orders support by descending frequency in dist, with a
// deterministic tie-break by ascending letter index (support.Letters()
// already yields ascending index order, and sort.SliceStable preserves
// that order among equal-frequency letters).
func byFrequencyDesc(dist letters.Inventory, support letters.Set) []letters.Index {
	idxs := support.Letters()
	sort.SliceStable(idxs, func(i, j int) bool {
		return dist.Count(idxs[i]) > dist.Count(idxs[j])
	})
	return idxs
}

// weightedRandomOrder draws support without replacement, weighted by
// each letter's count in dist, via the standard exponential-key trick
// (key = ln(U)/-weight, ascending sort): a letter with twice the count
// of another is, on expectation, twice as likely to be drawn earlier.
// Grounded on the original solver's get_next_choices (crossword.rs),
// which drew letters the same way against rand::thread_rng; here rng is
// caller-seeded so the draw order is reproducible (spec.md §4.5).
func weightedRandomOrder(rng *rand.Rand, dist letters.Inventory, support letters.Set) []letters.Index {
	idxs := support.Letters()
	var keys [letters.NumLetters]float64
	for _, li := range idxs {
		keys[li] = math.Log(rng.Float64()) / -float64(dist.Count(li))
	}
	sort.SliceStable(idxs, func(i, j int) bool {
		return keys[idxs[i]] < keys[idxs[j]]
	})
	return idxs
}

type searchStatus int

const (
	searchSolved searchStatus = iota
	searchDeadEnd
	searchIncomplete
)

// rec is the recursive backtracking procedure of spec.md §4.8. steps
// counts dead ends encountered so far; once it exceeds ceiling, the
// search returns Incomplete immediately, leaving whatever is currently
// committed in place as the partial solution.
func (e *Engine) rec(steps *int, ceiling int) searchStatus {
	if *steps > ceiling {
		return searchIncomplete
	}

	step := e.nextChoice()
	switch step.kind {
	case choiceSuccess:
		return searchSolved

	case choiceFailure:
		*steps++
		return searchDeadEnd

	case choiceSingle:
		frame, err := e.commitInternal(step.cell.id, step.options[0])
		if err != nil {
			*steps++
			return searchDeadEnd
		}
		switch status := e.rec(steps, ceiling); status {
		case searchSolved:
			e.undoStack = append(e.undoStack, frame)
			return searchSolved
		case searchIncomplete:
			return searchIncomplete
		default:
			e.applyUndo(frame)
			return searchDeadEnd
		}

	case choiceMany:
		for _, letter := range step.options {
			frame, err := e.commitInternal(step.cell.id, letter)
			if err != nil {
				continue
			}
			switch status := e.rec(steps, ceiling); status {
			case searchSolved:
				e.undoStack = append(e.undoStack, frame)
				return searchSolved
			case searchIncomplete:
				return searchIncomplete
			default:
				e.applyUndo(frame)
			}
		}
		return searchDeadEnd
	}

	return searchDeadEnd
}

// Solve runs the recursive search under the given step budget (the
// maximum number of dead ends to tolerate before giving up) and reports
// Solved, Incomplete (with whatever cells are uniquely determined), or
// Unsolvable.
func (e *Engine) Solve(budget int) *Outcome {
	steps := 0
	switch e.rec(&steps, budget) {
	case searchSolved:
		return &Outcome{Status: Solved, Assignment: e.fullAssignment(), Steps: steps}
	case searchIncomplete:
		return &Outcome{Status: Incomplete, Assignment: e.partialAssignment(), Steps: steps}
	default:
		return &Outcome{Status: Unsolvable, Steps: steps}
	}
}

func (e *Engine) fullAssignment() map[CellID]byte {
	out := make(map[CellID]byte, len(e.cells))
	for _, c := range e.cells {
		if c.choice != nil {
			out[c.id] = c.choice.Letter()
		}
	}
	return out
}

// partialAssignment returns every cell whose letter is already
// determined, whether committed or merely forced to a single remaining
// candidate.
func (e *Engine) partialAssignment() map[CellID]byte {
	out := make(map[CellID]byte, len(e.cells))
	for _, c := range e.cells {
		if c.choice != nil {
			out[c.id] = c.choice.Letter()
			continue
		}
		support := c.charDist.LetterSet()
		if support.Size() == 1 {
			out[c.id] = support.Letters()[0].Letter()
		}
	}
	return out
}
