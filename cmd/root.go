package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"storelisting/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configDir is where config.toml and .env are looked up.
var configDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "storelisting",
	Short: "Store listing metadata reconciler",
	Long: `storelisting reads and updates localized store listing metadata on
App Store Connect and Google Play from a single JSON document per app.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	// Ctrl-C cancels in-flight calls; edit sessions are still discarded
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		stop()
		// Use the application's standard logger for error reporting
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "Directory holding config.toml and .env")
}
