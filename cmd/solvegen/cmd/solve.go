package cmd

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/crossplay/xwordsolve/internal/localstore"
	"github.com/crossplay/xwordsolve/pkg/dictionary"
	"github.com/crossplay/xwordsolve/pkg/engine"
	"github.com/crossplay/xwordsolve/pkg/puzzlegrid"
	"github.com/spf13/cobra"
)

var (
	solveGrid       string
	solveDictionary string
	solveBudget     int
	solveNoHistory  bool
	solveSeed       int64
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Load a grid and dictionary, run Engine.Solve, and print the result",
	Long: `solve builds an Engine from a grid fixture and a word list, then runs
a full search to completion (or until the step budget is exhausted).

Examples:
  solvegen solve --grid testdata/grid5x5.yaml --dictionary testdata/words.txt
  solvegen solve --grid testdata/grid5x5.yaml --dictionary testdata/words.txt --budget 5000`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVarP(&solveGrid, "grid", "g", "", "path to a grid fixture YAML file (required)")
	solveCmd.Flags().StringVarP(&solveDictionary, "dictionary", "d", "", "path to a newline-delimited word list (required unless the fixture names one)")
	solveCmd.Flags().IntVarP(&solveBudget, "budget", "b", 100000, "maximum search steps before giving up with Incomplete")
	solveCmd.Flags().BoolVar(&solveNoHistory, "no-history", false, "skip recording this run in the local attempt log")
	solveCmd.Flags().Int64Var(&solveSeed, "seed", 0, "draw tied letter choices by a seeded weighted-random permutation instead of descending frequency")
	solveCmd.MarkFlagRequired("grid")
}

func runSolve(cmd *cobra.Command, args []string) error {
	var opts []engine.Option
	if cmd.Flags().Changed("seed") {
		opts = append(opts, engine.WithSeed(solveSeed))
	}
	e, dictPath, err := buildEngineFromFixture(solveGrid, solveDictionary, opts...)
	if err != nil {
		return err
	}

	reduction := e.Prefilter()
	if verbosity > 0 {
		fmt.Printf("prefilter reduction: %.2fx\n", reduction)
	}

	start := time.Now()
	outcome := e.Solve(solveBudget)
	elapsed := time.Since(start)

	fmt.Printf("status: %s\n", outcome.Status)
	fmt.Printf("steps: %d\n", outcome.Steps)
	fmt.Printf("elapsed: %s\n", elapsed)
	if outcome.Status == engine.Solved {
		printAssignment(outcome.Assignment)
	}

	if !solveNoHistory {
		if err := recordAttempt(solveGrid, dictPath, outcome, reduction, elapsed); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record attempt: %v\n", err)
		}
	}

	if outcome.Status == engine.Unsolvable {
		return fmt.Errorf("grid is unsolvable against the given dictionary")
	}
	return nil
}

// buildEngineFromFixture loads a grid fixture and the dictionary it (or
// an override flag) names, and constructs the Engine — the shared
// first step of solve, pin, and validate.
func buildEngineFromFixture(gridPath, dictOverride string, opts ...engine.Option) (*engine.Engine, string, error) {
	e, _, _, dictPath, err := buildFromFixture(gridPath, dictOverride, opts...)
	return e, dictPath, err
}

// buildFromFixture is buildEngineFromFixture plus the puzzlegrid.Layout
// and gridFixture it derived the Engine from, for callers (export) that
// need the slot structure alongside the Engine itself.
func buildFromFixture(gridPath, dictOverride string, opts ...engine.Option) (*engine.Engine, puzzlegrid.Layout, *gridFixture, string, error) {
	fixture, err := loadGridFixture(gridPath)
	if err != nil {
		return nil, puzzlegrid.Layout{}, nil, "", err
	}

	dictPath := dictOverride
	if dictPath == "" {
		dictPath = fixture.Dictionary
	}
	if dictPath == "" {
		return nil, puzzlegrid.Layout{}, nil, "", fmt.Errorf("no dictionary given: pass --dictionary or set 'dictionary:' in the grid fixture")
	}

	f, err := os.Open(dictPath)
	if err != nil {
		return nil, puzzlegrid.Layout{}, nil, "", fmt.Errorf("failed to open dictionary %s: %w", dictPath, err)
	}
	defer f.Close()

	dict, err := dictionary.Load(f)
	if err != nil {
		return nil, puzzlegrid.Layout{}, nil, "", fmt.Errorf("failed to load dictionary %s: %w", dictPath, err)
	}
	indices := dictionary.Build(dict)

	occupied := fixture.occupiedSet()
	layout := puzzlegrid.Build(occupied)

	pinned, err := fixture.pinnedMap()
	if err != nil {
		return nil, puzzlegrid.Layout{}, nil, "", err
	}

	e, err := engine.New(layout, indices, pinned, opts...)
	if err != nil {
		return nil, puzzlegrid.Layout{}, nil, "", fmt.Errorf("failed to build engine for %s: %w", gridPath, err)
	}
	return e, layout, fixture, dictPath, nil
}

func printAssignment(assignment map[engine.CellID]byte) {
	var b strings.Builder
	for id := 0; id < len(assignment); id++ {
		if letter, ok := assignment[engine.CellID(id)]; ok {
			b.WriteByte(letter)
		}
	}
	fmt.Printf("assignment: %s\n", b.String())
}

func recordAttempt(gridPath, dictPath string, outcome *engine.Outcome, reduction float64, elapsed time.Duration) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	hash, err := hashFile(dictPath)
	if err != nil {
		return err
	}

	return store.RecordAttempt(localstore.Attempt{
		GridPath:           gridPath,
		DictionaryHash:     hash,
		Status:             outcome.Status.String(),
		Steps:              outcome.Steps,
		PrefilterReduction: reduction,
		DurationMS:         elapsed.Milliseconds(),
		CreatedAt:          time.Now(),
	})
}

func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8]), nil
}
