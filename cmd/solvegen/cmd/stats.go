package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	statsGrid  string
	statsLimit int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report solve attempt history from the local attempt log",
	Long: `stats prints per-status aggregate counts and, optionally, the most
recent individual attempts recorded by solve/bench against the local
sqlite attempt log.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsGrid, "grid", "g", "", "only show attempts against this grid fixture path")
	statsCmd.Flags().IntVarP(&statsLimit, "limit", "l", 20, "number of recent attempts to list")
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open local attempt log: %w", err)
	}
	defer store.Close()

	summary, err := store.SummaryByStatus()
	if err != nil {
		return fmt.Errorf("failed to summarize attempts: %w", err)
	}
	if len(summary) == 0 {
		fmt.Println("no recorded attempts yet")
		return nil
	}

	fmt.Printf("%-12s %8s %10s %12s\n", "status", "count", "avg steps", "avg ms")
	for _, s := range summary {
		fmt.Printf("%-12s %8d %10.1f %12.1f\n", s.Status, s.Count, s.AvgSteps, s.AvgMillis)
	}

	attempts, err := store.Attempts(statsGrid, statsLimit)
	if err != nil {
		return fmt.Errorf("failed to list attempts: %w", err)
	}
	fmt.Printf("\nrecent attempts (%d):\n", len(attempts))
	for _, a := range attempts {
		fmt.Printf("  %s  %-30s %-12s steps=%-6d %.2fx  %s\n",
			a.CreatedAt.Format("2006-01-02 15:04:05"), a.GridPath, a.Status, a.Steps, a.PrefilterReduction, a.DictionaryHash)
	}
	return nil
}
