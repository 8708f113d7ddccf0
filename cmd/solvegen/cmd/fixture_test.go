package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/crossplay/xwordsolve/pkg/puzzlegrid"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grid.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadGridFixtureRectangle(t *testing.T) {
	path := writeFixture(t, `
width: 3
height: 2
black:
  - {x: 1, y: 1}
pinned:
  - {x: 0, y: 0, letter: "C"}
dictionary: words.txt
`)

	f, err := loadGridFixture(path)
	if err != nil {
		t.Fatalf("loadGridFixture: %v", err)
	}
	if f.Width != 3 || f.Height != 2 {
		t.Fatalf("dims = %dx%d, want 3x2", f.Width, f.Height)
	}

	occ := f.occupiedSet()
	if occ[puzzlegrid.Coord{X: 1, Y: 1}] {
		t.Error("black cell (1,1) should not be occupied")
	}
	if !occ[puzzlegrid.Coord{X: 0, Y: 0}] {
		t.Error("(0,0) should be occupied")
	}

	pinned, err := f.pinnedMap()
	if err != nil {
		t.Fatalf("pinnedMap: %v", err)
	}
	if pinned[puzzlegrid.Coord{X: 0, Y: 0}] != 'C' {
		t.Errorf("pinned[(0,0)] = %c, want C", pinned[puzzlegrid.Coord{X: 0, Y: 0}])
	}
}

func TestLoadGridFixtureExplicitOccupied(t *testing.T) {
	path := writeFixture(t, `
occupied:
  - {x: 0, y: 0}
  - {x: 1, y: 0}
  - {x: 0, y: 1}
dictionary: words.txt
`)

	f, err := loadGridFixture(path)
	if err != nil {
		t.Fatalf("loadGridFixture: %v", err)
	}
	occ := f.occupiedSet()
	if len(occ) != 3 {
		t.Fatalf("got %d occupied cells, want 3", len(occ))
	}
	if occ[puzzlegrid.Coord{X: 5, Y: 5}] {
		t.Error("unrelated coordinate should not be occupied")
	}
}

func TestPinnedMapRejectsMultiCharLetter(t *testing.T) {
	f := &gridFixture{Pinned: []prefillYAML{{X: 0, Y: 0, Letter: "AB"}}}
	if _, err := f.pinnedMap(); err == nil {
		t.Error("expected an error for a multi-character pinned letter")
	}
}

func TestBuildEngineFromFixtureRequiresADictionary(t *testing.T) {
	path := writeFixture(t, `
width: 2
height: 2
`)
	if _, _, err := buildEngineFromFixture(path, ""); err == nil {
		t.Error("expected an error when no dictionary is given anywhere")
	}
}

func TestBuildEngineFromFixtureSolvableGrid(t *testing.T) {
	dictPath := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(dictPath, []byte("CAT\nCAR\nCAB\nDOG\nDOT\nDAB\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	gridPath := writeFixture(t, `
width: 3
height: 1
`)

	e, resolvedDict, err := buildEngineFromFixture(gridPath, dictPath)
	if err != nil {
		t.Fatalf("buildEngineFromFixture: %v", err)
	}
	if resolvedDict != dictPath {
		t.Errorf("resolvedDict = %s, want %s", resolvedDict, dictPath)
	}
	if e == nil {
		t.Fatal("expected a non-nil engine")
	}
}
