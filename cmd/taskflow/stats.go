package main

import (
	"github.com/spf13/cobra"

	"github.com/MihkelHunter/taskflow/internal/analytics"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completion and progress statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var statsJSON bool

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	summary := analytics.Summarize(a.svc.Tasks(), a.svc.Todos())
	if statsJSON {
		return writeJSON(cmd.OutOrStdout(), summary)
	}
	printSummary(cmd.OutOrStdout(), summary)
	return nil
}
