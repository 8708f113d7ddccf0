package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/crossplay/xwordsolve/pkg/engine"
	"github.com/spf13/cobra"
)

var validateInput string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load a dictionary and grid, reporting ErrInvalidGrid before solving",
	Long: `validate builds an Engine from each grid fixture under the given path
without running a search, surfacing ErrInvalidGrid (a slot whose length
has no dictionary words, a malformed coordinate set, and the like) so a
bad grid/dictionary pairing is caught before spending a solve budget on it.

Examples:
  solvegen validate --input testdata/grid5x5.yaml
  solvegen validate --input testdata/grids/`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "grid fixture file or directory to validate (required)")
	validateCmd.Flags().StringVarP(&solveDictionary, "dictionary", "d", "", "path to a newline-delimited word list (required unless each fixture names one)")
	validateCmd.MarkFlagRequired("input")
}

func runValidate(cmd *cobra.Command, args []string) error {
	info, err := os.Stat(validateInput)
	if err != nil {
		return fmt.Errorf("failed to access input path: %w", err)
	}

	var gridPaths []string
	if info.IsDir() {
		files, err := filepath.Glob(filepath.Join(validateInput, "*.yaml"))
		if err != nil {
			return fmt.Errorf("failed to list directory: %w", err)
		}
		if len(files) == 0 {
			return fmt.Errorf("no .yaml grid fixtures found in directory: %s", validateInput)
		}
		gridPaths = files
	} else {
		gridPaths = []string{validateInput}
	}

	var failures int
	for _, path := range gridPaths {
		_, _, err := buildEngineFromFixture(path, solveDictionary)
		if err != nil {
			failures++
			if errors.Is(err, engine.ErrInvalidGrid) {
				fmt.Printf("%s: INVALID — %v\n", path, err)
			} else {
				fmt.Printf("%s: ERROR — %v\n", path, err)
			}
			continue
		}
		fmt.Printf("%s: OK\n", path)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d grid fixtures failed validation", failures, len(gridPaths))
	}
	return nil
}
