// Package cli implements counselctl, the operator tool for the intake service.
package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"counsel/internal/app"
	"counsel/internal/platform/config"
	"counsel/internal/platform/logger"
)

// RootCmd returns the counselctl command tree.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "counselctl",
		Short: "Operate the counsel intake service",
		Long: `counselctl applies the schema, seeds demo data, inspects pending
applications, issues bearer tokens for testing and tails the audit stream.
It reads the same configuration as the server (config.yaml, .env, COUNSEL_*).`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(MigrateCmd())
	rootCmd.AddCommand(SeedCmd())
	rootCmd.AddCommand(PendingCmd())
	rootCmd.AddCommand(TokenCmd())
	rootCmd.AddCommand(AuditCmd())
	return rootCmd
}

// withApp loads configuration, wires the application without metrics and
// hands it to fn.
func withApp(ctx context.Context, fn func(a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Logging.Level, "console")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	a, err := app.New(ctx, cfg, log.WithOptions(zap.IncreaseLevel(zap.WarnLevel)), nil)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
