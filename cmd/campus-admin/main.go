// Command campus-admin runs operational tasks against a campus-hub database:
// schema migrations, pre-student pruning, recommendation inspection, row
// level security checks, directory seeding and event tailing.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"campus-hub/pkg/config"
	applog "campus-hub/pkg/logger"
	"campus-hub/pkg/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags
	logLevel string
	timeout  time.Duration

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "campus-admin",
	Short:         "Administrative tasks for campus-hub",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		level := logLevel
		if level == "" {
			level = cfg.Logger.Level
		}
		if logger, err = applog.New(level); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (default: LOG_LEVEL)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Operation timeout")

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd, pruneCmd, peersCmd, rlsCheckCmd, seedCmd, watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// commandContext bounds a command by --timeout.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

func connect(ctx context.Context) (*pgxpool.Pool, error) {
	return postgres.NewPool(ctx, &cfg.Database, logger)
}
