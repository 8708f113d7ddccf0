package cmd

import (
	"fmt"
	"os"

	"github.com/crossplay/xwordsolve/pkg/puzzlegrid"
	"gopkg.in/yaml.v3"
)

// coordYAML is the wire shape of a puzzlegrid.Coord in a grid fixture
// file; puzzlegrid.Coord itself carries no yaml tags since pkg/puzzlegrid
// stays free of file-format concerns.
type coordYAML struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type prefillYAML struct {
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Letter string `yaml:"letter"`
}

// gridFixture is the on-disk description of a grid to solve: either a
// rectangle with black-cell holes, or an explicit occupied-coordinate
// set for non-rectangular shapes (spec.md §4.10's circle/diamond case).
type gridFixture struct {
	Width      int           `yaml:"width"`
	Height     int           `yaml:"height"`
	Black      []coordYAML   `yaml:"black"`
	Occupied   []coordYAML   `yaml:"occupied"`
	Pinned     []prefillYAML `yaml:"pinned"`
	Dictionary string        `yaml:"dictionary"`
}

func loadGridFixture(path string) (*gridFixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read grid fixture %s: %w", path, err)
	}
	var f gridFixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse grid fixture %s: %w", path, err)
	}
	return &f, nil
}

// occupiedSet returns the fixture's occupied coordinates, preferring an
// explicit list over the rectangle-minus-black derivation.
func (f *gridFixture) occupiedSet() map[puzzlegrid.Coord]bool {
	if len(f.Occupied) > 0 {
		occ := make(map[puzzlegrid.Coord]bool, len(f.Occupied))
		for _, c := range f.Occupied {
			occ[puzzlegrid.Coord{X: c.X, Y: c.Y}] = true
		}
		return occ
	}

	black := make(map[puzzlegrid.Coord]bool, len(f.Black))
	for _, c := range f.Black {
		black[puzzlegrid.Coord{X: c.X, Y: c.Y}] = true
	}
	return puzzlegrid.Rectangle(f.Width, f.Height, black)
}

func (f *gridFixture) pinnedMap() (map[puzzlegrid.Coord]byte, error) {
	pinned := make(map[puzzlegrid.Coord]byte, len(f.Pinned))
	for _, p := range f.Pinned {
		if len(p.Letter) != 1 {
			return nil, fmt.Errorf("pinned letter at (%d,%d) must be a single character, got %q", p.X, p.Y, p.Letter)
		}
		pinned[puzzlegrid.Coord{X: p.X, Y: p.Y}] = p.Letter[0]
	}
	return pinned, nil
}
