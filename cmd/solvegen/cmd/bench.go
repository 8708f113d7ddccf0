package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/crossplay/xwordsolve/internal/localstore"
	"github.com/crossplay/xwordsolve/pkg/engine"
	"github.com/spf13/cobra"
)

var (
	benchInput      string
	benchDictionary string
	benchBudget     int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run prefilter and solve over a directory of grids, reporting reduction and step counts",
	Long: `bench runs Engine.Prefilter followed by Engine.Solve over every grid
fixture in a directory and prints a table with one row per grid plus a
one-line aggregate count, recording every attempt in the local attempt log.

Example:
  solvegen bench --input testdata/grids/ --dictionary testdata/words.txt`,
	RunE: runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().StringVarP(&benchInput, "input", "i", "", "directory of grid fixture YAML files (required)")
	benchCmd.Flags().StringVarP(&benchDictionary, "dictionary", "d", "", "path to a newline-delimited word list (required unless each fixture names one)")
	benchCmd.Flags().IntVarP(&benchBudget, "budget", "b", 100000, "maximum search steps per grid before giving up with Incomplete")
	benchCmd.MarkFlagRequired("input")
}

type benchResult struct {
	path      string
	status    engine.Status
	steps     int
	reduction float64
	elapsed   time.Duration
	err       error
}

func runBench(cmd *cobra.Command, args []string) error {
	files, err := filepath.Glob(filepath.Join(benchInput, "*.yaml"))
	if err != nil {
		return fmt.Errorf("failed to list directory: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no .yaml grid fixtures found in directory: %s", benchInput)
	}

	store, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open local attempt log: %w", err)
	}
	defer store.Close()

	results := make([]benchResult, 0, len(files))
	for _, path := range files {
		results = append(results, benchOne(store, path))
	}

	fmt.Printf("\n%-30s %-12s %8s %10s %10s\n", "grid", "status", "steps", "reduction", "elapsed")
	var solved, incomplete, unsolvable, failed int
	for _, r := range results {
		if r.err != nil {
			fmt.Printf("%-30s %-12s %8s %10s %10s\n", filepath.Base(r.path), "error", "-", "-", "-")
			failed++
			continue
		}
		fmt.Printf("%-30s %-12s %8d %9.2fx %10s\n", filepath.Base(r.path), r.status, r.steps, r.reduction, r.elapsed)
		switch r.status {
		case engine.Solved:
			solved++
		case engine.Incomplete:
			incomplete++
		default:
			unsolvable++
		}
	}

	fmt.Printf("\n%d solved, %d incomplete, %d unsolvable, %d errored (of %d)\n",
		solved, incomplete, unsolvable, failed, len(results))

	if failed > 0 {
		return fmt.Errorf("%d grid(s) failed to build", failed)
	}
	return nil
}

func benchOne(store *localstore.Store, path string) benchResult {
	e, dictPath, err := buildEngineFromFixture(path, benchDictionary)
	if err != nil {
		return benchResult{path: path, err: err}
	}

	reduction := e.Prefilter()
	start := time.Now()
	outcome := e.Solve(benchBudget)
	elapsed := time.Since(start)

	hash, hashErr := hashFile(dictPath)
	if hashErr == nil {
		if err := store.RecordAttempt(localstore.Attempt{
			GridPath:           path,
			DictionaryHash:     hash,
			Status:             outcome.Status.String(),
			Steps:              outcome.Steps,
			PrefilterReduction: reduction,
			DurationMS:         elapsed.Milliseconds(),
			CreatedAt:          time.Now(),
		}); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record attempt for %s: %v\n", path, err)
		}
	}

	return benchResult{
		path:      path,
		status:    outcome.Status,
		steps:     outcome.Steps,
		reduction: reduction,
		elapsed:   elapsed,
	}
}
