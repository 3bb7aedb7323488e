package cmd

import (
	"fmt"

	"storelisting/core/locale"
	"storelisting/core/reconcile"
	"storelisting/feature/appstore"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	appStoreFrom    string
	appStoreLocales string
	appStoreArchive bool
	appStoreFile    string
	appStoreObject  string
	appStoreDryRun  bool
)

// appStoreCmd is the parent command for App Store Connect operations.
var appStoreCmd = &cobra.Command{
	Use:   "appstore",
	Short: "Read and update App Store Connect localizations",
}

var appStoreGetCmd = &cobra.Command{
	Use:   "get <app-id>",
	Short: "Print the unified metadata document of an app",
	Long: `Reads app info and version localizations and prints them merged per locale.

Examples:
  storelisting appstore get 1234567890
  storelisting appstore get 1234567890 --from editable --locale en-US,fr-FR
  storelisting appstore get 1234567890 --archive`,
	Args: cobra.ExactArgs(1),
	RunE: runAppStoreGet,
}

var appStoreSetCmd = &cobra.Command{
	Use:   "set <app-id>",
	Short: "Reconcile an app against a metadata document",
	Long: `Creates missing localizations and patches existing ones so the editable
app info and version match the document. Fields absent from the document are
left untouched; fields set to "" are cleared.

Examples:
  storelisting appstore set 1234567890 --file metadata.json --dry-run
  cat metadata.json | storelisting appstore set 1234567890 --file -
  storelisting appstore set 1234567890 --object appstore/1234567890/20260101T000000Z.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAppStoreSet,
}

func init() {
	appStoreGetCmd.Flags().StringVar(&appStoreFrom, "from", string(reconcile.PreferLive), "Version category to read first (live, editable)")
	appStoreGetCmd.Flags().StringVar(&appStoreLocales, "locale", "", "Comma separated locales to include")
	appStoreGetCmd.Flags().BoolVar(&appStoreArchive, "archive", false, "Also store the snapshot in the archive bucket")

	appStoreSetCmd.Flags().StringVar(&appStoreFile, "file", "", "Document to apply (- for stdin)")
	appStoreSetCmd.Flags().StringVar(&appStoreObject, "object", "", "Archived snapshot to apply")
	appStoreSetCmd.Flags().BoolVar(&appStoreDryRun, "dry-run", false, "Plan without mutating")

	appStoreCmd.AddCommand(appStoreGetCmd, appStoreSetCmd)
	RootCmd.AddCommand(appStoreCmd)
}

func requireAppStore(rt *runtime) (*appstore.Service, error) {
	svc, err := rt.appStoreService()
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, fmt.Errorf("credentials for App Store Connect are not configured")
	}
	return svc, nil
}

func runAppStoreGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	from, err := reconcile.ParsePreference(appStoreFrom)
	if err != nil {
		return err
	}
	locales, err := locale.ParseList(appStoreLocales)
	if err != nil {
		return err
	}

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.log.Sync()

	svc, err := requireAppStore(rt)
	if err != nil {
		return err
	}

	snapshot, err := svc.GetMetadata(ctx, args[0], from, locales)
	if err != nil {
		return err
	}

	if appStoreArchive {
		archive, err := rt.requireArchive()
		if err != nil {
			return err
		}
		key, err := archiveSnapshot(ctx, archive, "appstore", args[0], snapshot)
		if err != nil {
			return err
		}
		rt.log.Info("Snapshot archived", zap.String("object", key))
	}

	return writeJSON(cmd.OutOrStdout(), snapshot)
}

func runAppStoreSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.log.Sync()

	data, err := readDocument(ctx, cmd.InOrStdin(), appStoreFile, appStoreObject, rt.requireArchive)
	if err != nil {
		return err
	}
	records, err := appstore.ParseDocument(data)
	if err != nil {
		return err
	}

	svc, err := requireAppStore(rt)
	if err != nil {
		return err
	}

	summary, err := svc.SetMetadata(ctx, args[0], records, appStoreDryRun)
	return reportRun(cmd.OutOrStdout(), rt.log, summary, err)
}
