package output

import "encoding/json"

// EntryJSON represents one across/down entry in the JSON export format
type EntryJSON struct {
	Number int    `json:"number"`
	Answer string `json:"answer"`
}

// GridJSON represents a Grid in the plain JSON export format
type GridJSON struct {
	Title  string     `json:"title,omitempty"`
	Author string     `json:"author,omitempty"`
	Grid   [][]string `json:"grid"` // 2D array with letters, '?' for unsolved, '#' for black cells
	Across []EntryJSON `json:"across"`
	Down   []EntryJSON `json:"down"`
}

// FormatJSON converts a Grid to the GridJSON export shape.
func FormatJSON(g *Grid) *GridJSON {
	grid := make([][]string, g.Height)
	for y := 0; y < g.Height; y++ {
		grid[y] = make([]string, g.Width)
		for x := 0; x < g.Width; x++ {
			cell := g.Cells[y][x]
			switch {
			case cell.Black:
				grid[y][x] = "#"
			case cell.Letter != 0:
				grid[y][x] = string(cell.Letter)
			default:
				grid[y][x] = "?"
			}
		}
	}

	across := make([]EntryJSON, len(g.Across))
	for i, e := range g.Across {
		across[i] = EntryJSON{Number: e.Number, Answer: e.Answer}
	}
	down := make([]EntryJSON, len(g.Down))
	for i, e := range g.Down {
		down[i] = EntryJSON{Number: e.Number, Answer: e.Answer}
	}

	return &GridJSON{
		Title:  g.Title,
		Author: g.Author,
		Grid:   grid,
		Across: across,
		Down:   down,
	}
}

// ToJSON converts a Grid to indented JSON bytes.
func ToJSON(g *Grid) ([]byte, error) {
	return json.MarshalIndent(FormatJSON(g), "", "  ")
}
