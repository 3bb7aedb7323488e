package cmd

import (
	"context"
	"fmt"

	"storelisting/core/locale"
	"storelisting/feature/play"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	playLocales string
	playArchive bool
	playFile    string
	playObject  string
	playDryRun  bool
)

// playCmd is the parent command for Google Play operations.
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Read and update Google Play store listings",
}

var playGetCmd = &cobra.Command{
	Use:   "get <package>",
	Short: "Print the store listings of a package",
	Long: `Reads details and listings inside a throwaway edit, which is discarded.

Examples:
  storelisting play get com.example.app
  storelisting play get com.example.app --locale en-US --archive`,
	Args: cobra.ExactArgs(1),
	RunE: runPlayGet,
}

var playSetCmd = &cobra.Command{
	Use:   "set <package>",
	Short: "Reconcile a package against a listings document",
	Long: `Applies every listing change inside one edit and commits it only when all
of them succeed. A failure leaves the published listing untouched.

Examples:
  storelisting play set com.example.app --file listings.json --dry-run
  storelisting play set com.example.app --object play/com.example.app/20260101T000000Z.json`,
	Args: cobra.ExactArgs(1),
	RunE: runPlaySet,
}

func init() {
	playGetCmd.Flags().StringVar(&playLocales, "locale", "", "Comma separated languages to include")
	playGetCmd.Flags().BoolVar(&playArchive, "archive", false, "Also store the snapshot in the archive bucket")

	playSetCmd.Flags().StringVar(&playFile, "file", "", "Document to apply (- for stdin)")
	playSetCmd.Flags().StringVar(&playObject, "object", "", "Archived snapshot to apply")
	playSetCmd.Flags().BoolVar(&playDryRun, "dry-run", false, "Plan without mutating (the edit is discarded)")

	playCmd.AddCommand(playGetCmd, playSetCmd)
	RootCmd.AddCommand(playCmd)
}

func requirePlay(ctx context.Context, rt *runtime) (*play.Service, error) {
	svc, err := rt.playService(ctx)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, fmt.Errorf("no Google Play service account is configured")
	}
	return svc, nil
}

func runPlayGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	locales, err := locale.ParseList(playLocales)
	if err != nil {
		return err
	}

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.log.Sync()

	svc, err := requirePlay(ctx, rt)
	if err != nil {
		return err
	}

	snapshot, err := svc.GetMetadata(ctx, args[0], locales)
	if err != nil {
		return err
	}

	if playArchive {
		archive, err := rt.requireArchive()
		if err != nil {
			return err
		}
		key, err := archiveSnapshot(ctx, archive, "play", args[0], snapshot)
		if err != nil {
			return err
		}
		rt.log.Info("Snapshot archived", zap.String("object", key))
	}

	return writeJSON(cmd.OutOrStdout(), snapshot)
}

func runPlaySet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.log.Sync()

	data, err := readDocument(ctx, cmd.InOrStdin(), playFile, playObject, rt.requireArchive)
	if err != nil {
		return err
	}
	records, err := play.ParseDocument(data)
	if err != nil {
		return err
	}

	svc, err := requirePlay(ctx, rt)
	if err != nil {
		return err
	}

	summary, err := svc.SetMetadata(ctx, args[0], records, playDryRun)
	return reportRun(cmd.OutOrStdout(), rt.log, summary, err)
}
