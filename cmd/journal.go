package cmd

import (
	"fmt"

	"storelisting/feature/journal"

	"github.com/spf13/cobra"
)

var (
	journalBackend string
	journalLimit   int
)

// journalCmd is the parent command for the run journal.
var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect recorded reconciliation runs",
}

var journalRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Print recent runs with their outcomes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.log.Sync()

		if rt.journal == nil {
			return fmt.Errorf("journal is disabled (set JOURNAL_ENABLED=true)")
		}
		runs, err := rt.journal.Recent(cmd.Context(), journalBackend, journalLimit)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), runs)
	},
}

func init() {
	journalRunsCmd.Flags().StringVar(&journalBackend, "backend", "", "Only runs of this backend (appstore, play)")
	journalRunsCmd.Flags().IntVar(&journalLimit, "limit", journal.DefaultLimit, "Maximum number of runs")

	journalCmd.AddCommand(journalRunsCmd)
	RootCmd.AddCommand(journalCmd)
}
