package output

import (
	"encoding/json"
	"fmt"
)

// IPuzDimensions represents the puzzle dimensions
type IPuzDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// IPuzClue represents a clue in ipuz format [number, "clue text"]
type IPuzClue []interface{}

// IPuzClues represents the clues section with Across and Down
type IPuzClues struct {
	Across []IPuzClue `json:"Across"`
	Down   []IPuzClue `json:"Down"`
}

// IPuzPuzzle represents the complete ipuz format structure
type IPuzPuzzle struct {
	Version    string          `json:"version"`
	Kind       []string        `json:"kind"`
	Title      string          `json:"title,omitempty"`
	Author     string          `json:"author,omitempty"`
	Copyright  string          `json:"copyright,omitempty"`
	Dimensions IPuzDimensions  `json:"dimensions"`
	Puzzle     [][]interface{} `json:"puzzle"`
	Solution   [][]interface{} `json:"solution"`
	Clues      IPuzClues       `json:"clues"`
}

// FormatIPuz renders a Grid into the ipuz structure. The "clues" section
// carries the solved answer as its text, since clue authoring is not
// this engine's concern (http://ipuz.org/v2).
func FormatIPuz(g *Grid) (*IPuzPuzzle, error) {
	if g == nil {
		return nil, fmt.Errorf("grid cannot be nil")
	}

	puzzleGrid := make([][]interface{}, g.Height)
	solutionGrid := make([][]interface{}, g.Height)
	for y := 0; y < g.Height; y++ {
		puzzleGrid[y] = make([]interface{}, g.Width)
		solutionGrid[y] = make([]interface{}, g.Width)
		for x := 0; x < g.Width; x++ {
			cell := g.Cells[y][x]
			if cell.Black {
				puzzleGrid[y][x] = "#"
				solutionGrid[y][x] = "#"
				continue
			}
			if cell.Number > 0 {
				puzzleGrid[y][x] = cell.Number
			} else {
				puzzleGrid[y][x] = 0
			}
			if cell.Letter != 0 {
				solutionGrid[y][x] = string(cell.Letter)
			} else {
				solutionGrid[y][x] = "?"
			}
		}
	}

	across := make([]IPuzClue, len(g.Across))
	for i, e := range g.Across {
		across[i] = IPuzClue{e.Number, e.Answer}
	}
	down := make([]IPuzClue, len(g.Down))
	for i, e := range g.Down {
		down[i] = IPuzClue{e.Number, e.Answer}
	}

	copyright := ""
	if g.Author != "" {
		copyright = fmt.Sprintf("© %s", g.Author)
	}

	return &IPuzPuzzle{
		Version:   "http://ipuz.org/v2",
		Kind:      []string{"http://ipuz.org/crossword#1"},
		Title:     g.Title,
		Author:    g.Author,
		Copyright: copyright,
		Dimensions: IPuzDimensions{
			Width:  g.Width,
			Height: g.Height,
		},
		Puzzle:   puzzleGrid,
		Solution: solutionGrid,
		Clues: IPuzClues{
			Across: across,
			Down:   down,
		},
	}, nil
}

// ToIPuz renders a Grid as ipuz JSON bytes.
func ToIPuz(g *Grid) ([]byte, error) {
	ipuzPuzzle, err := FormatIPuz(g)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(ipuzPuzzle, "", "  ")
}

// ValidateIPuz checks that a Grid has everything ipuz export needs.
func ValidateIPuz(g *Grid) error {
	if g == nil {
		return fmt.Errorf("grid cannot be nil")
	}
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("invalid grid dimensions: %dx%d", g.Width, g.Height)
	}
	if len(g.Cells) != g.Height {
		return fmt.Errorf("grid height mismatch: expected %d, got %d", g.Height, len(g.Cells))
	}
	for y, row := range g.Cells {
		if len(row) != g.Width {
			return fmt.Errorf("grid width mismatch at row %d: expected %d, got %d", y, g.Width, len(row))
		}
	}
	if len(g.Across) == 0 && len(g.Down) == 0 {
		return fmt.Errorf("grid must have at least one slot")
	}
	return nil
}
