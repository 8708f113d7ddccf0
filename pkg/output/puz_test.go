package output

import (
	"strings"
	"testing"
)

func TestFormatPuzEmbedsSolutionAndTitle(t *testing.T) {
	g := buildSolvedGrid(t)

	data, err := FormatPuz(g)
	if err != nil {
		t.Fatalf("FormatPuz: %v", err)
	}
	if !strings.Contains(string(data), "ACROSS&DOWN") {
		t.Error("missing .puz file magic")
	}
	if !strings.Contains(string(data), "CAT") {
		t.Error(".puz bytes should contain the solved row CAT")
	}
	if !strings.Contains(string(data), "Test Grid\x00") {
		t.Error(".puz bytes should contain the null-terminated title")
	}
}

func TestBuildSolutionStringUsesDashForUnsolved(t *testing.T) {
	g := &Grid{
		Meta: Meta{Width: 2, Height: 1},
		Cells: [][]GridCell{
			{{Letter: 0}, {Black: true}},
		},
	}
	got := buildSolutionString(g)
	if got != "-." {
		t.Errorf("buildSolutionString = %q, want %q", got, "-.")
	}
}

func TestBuildClueStringsOrdersAcrossBeforeDownAtSameNumber(t *testing.T) {
	g := &Grid{
		Across: []Entry{{Number: 1, Answer: "CAT"}},
		Down:   []Entry{{Number: 1, Answer: "CAR"}},
	}
	clues := buildClueStrings(g)
	if len(clues) != 2 || clues[0] != "CAT" || clues[1] != "CAR" {
		t.Errorf("buildClueStrings = %v, want [CAT CAR]", clues)
	}
}
