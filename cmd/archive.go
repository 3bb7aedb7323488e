package cmd

import (
	"github.com/spf13/cobra"
)

// archiveCmd is the parent command for the snapshot archive.
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Browse archived metadata snapshots",
}

var archiveListCmd = &cobra.Command{
	Use:   "list [prefix]",
	Short: "List snapshot objects, optionally under a prefix such as play/com.example.app",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.log.Sync()

		archive, err := rt.requireArchive()
		if err != nil {
			return err
		}
		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}
		keys, err := archive.List(cmd.Context(), prefix)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), keys)
	},
}

func init() {
	archiveCmd.AddCommand(archiveListCmd)
	RootCmd.AddCommand(archiveCmd)
}
