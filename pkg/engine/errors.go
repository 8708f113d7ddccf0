package engine

import "errors"

// Error taxonomy for the engine's external surface.
var (
	// ErrInvalidLetter is returned by Commit/Pin when the letter is
	// outside A-Z or not currently possible for the cell.
	ErrInvalidLetter = errors.New("invalid letter for cell")
	// ErrAlreadyChosen is returned by Commit/Pin when the cell already
	// carries a committed letter.
	ErrAlreadyChosen = errors.New("cell already chosen")
	// ErrDeadEnd is returned by Commit/Pin when propagation empties a
	// crossing slot's candidate set; the engine is left exactly as
	// before the call.
	ErrDeadEnd = errors.New("dead end")
	// ErrInvalidGrid is returned by New when the grid is malformed: a
	// slot whose length has no dictionary words, a pinned coordinate
	// outside the grid, or a pinned letter outside A-Z.
	ErrInvalidGrid = errors.New("invalid grid")
	// ErrUnknownToken is returned by Undo when the token does not refer
	// to the top of the undo stack.
	ErrUnknownToken = errors.New("undo token is not the top of the undo stack")
)
