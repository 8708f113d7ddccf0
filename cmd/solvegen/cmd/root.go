package cmd

import (
	"fmt"
	"os"

	"github.com/crossplay/xwordsolve/internal/localstore"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	cfgFile   string
	storePath string
	verbosity int
)

var rootCmd = &cobra.Command{
	Use:   "solvegen",
	Short: "Interactive crossword grid solver CLI",
	Long: `solvegen drives the constraint-propagation/backtracking solver engine
against grid fixtures from the command line: solve a grid outright, apply
pinned letters, validate a grid before committing to a solve, or benchmark
prefilter reduction across a directory of fixtures.`,
	Version: version,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (reported on stderr; its contents are not read)")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "solvegen.db", "path to the local sqlite attempt log")
	rootCmd.PersistentFlags().IntVarP(&verbosity, "verbosity", "v", 0, "verbosity level (0=errors only, 1=info, 2=debug)")
}

func initConfig() {
	if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "using config file: %s\n", cfgFile)
	}
}

// openStore opens the shared local attempt log; commands that write
// history call this directly rather than threading a *Store through
// cobra's command-building machinery.
func openStore() (*localstore.Store, error) {
	return localstore.Open(storePath)
}
