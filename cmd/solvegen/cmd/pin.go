package cmd

import (
	"fmt"
	"os"

	"github.com/crossplay/xwordsolve/pkg/letters"
	"github.com/crossplay/xwordsolve/pkg/puzzlegrid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	pinGrid       string
	pinDictionary string
	pinMoves      string
)

var pinCmd = &cobra.Command{
	Use:   "pin",
	Short: "Apply a sequence of fixed letters from a moves file via Engine.Commit",
	Long: `pin builds an Engine the same way solve does, then replays a file of
(x, y, letter) moves through Engine.Commit in order, printing one status
line per move and stopping at the first ErrDeadEnd/ErrInvalidLetter.

This exercises the reversible commit path directly, as a collaborative
session's websocket handler would one message at a time.

Example:
  solvegen pin --grid testdata/grid5x5.yaml --dictionary testdata/words.txt --moves testdata/moves.yaml`,
	RunE: runPin,
}

func init() {
	rootCmd.AddCommand(pinCmd)

	pinCmd.Flags().StringVarP(&pinGrid, "grid", "g", "", "path to a grid fixture YAML file (required)")
	pinCmd.Flags().StringVarP(&pinDictionary, "dictionary", "d", "", "path to a newline-delimited word list (required unless the fixture names one)")
	pinCmd.Flags().StringVarP(&pinMoves, "moves", "m", "", "path to a moves YAML file (required)")
	pinCmd.MarkFlagRequired("grid")
	pinCmd.MarkFlagRequired("moves")
}

type moveYAML struct {
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Letter string `yaml:"letter"`
}

func loadMoves(path string) ([]moveYAML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read moves file %s: %w", path, err)
	}
	var moves []moveYAML
	if err := yaml.Unmarshal(data, &moves); err != nil {
		return nil, fmt.Errorf("failed to parse moves file %s: %w", path, err)
	}
	return moves, nil
}

func runPin(cmd *cobra.Command, args []string) error {
	e, _, err := buildEngineFromFixture(pinGrid, pinDictionary)
	if err != nil {
		return err
	}

	moves, err := loadMoves(pinMoves)
	if err != nil {
		return err
	}

	for i, m := range moves {
		if len(m.Letter) != 1 {
			return fmt.Errorf("move %d: letter must be a single character, got %q", i, m.Letter)
		}
		cellID, ok := e.CellAt(puzzlegrid.Coord{X: m.X, Y: m.Y})
		if !ok {
			return fmt.Errorf("move %d: (%d,%d) is not an occupied cell", i, m.X, m.Y)
		}

		idx, ok := letters.IndexOf(m.Letter[0])
		if !ok {
			return fmt.Errorf("move %d: %q is not a letter A-Z", i, m.Letter)
		}

		if _, err := e.Commit(cellID, idx); err != nil {
			fmt.Printf("move %d (%d,%d)=%c: failed: %v\n", i, m.X, m.Y, m.Letter[0], err)
			return err
		}
		fmt.Printf("move %d (%d,%d)=%c: committed\n", i, m.X, m.Y, m.Letter[0])
	}

	fmt.Printf("applied %d moves successfully\n", len(moves))
	return nil
}
