// Package cmd is the trackerctl operator CLI.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/raidledger/raidledger/tracker"
	"github.com/raidledger/raidledger/tracker/database"
	"github.com/raidledger/raidledger/tracker/logger"
)

var (
	configPath string
	cfg        *tracker.Config
)

var rootCmd = &cobra.Command{
	Use:           "trackerctl",
	Short:         "Operator tools for the RaidLedger tracker",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = tracker.LoadConfig(configPath); err != nil {
			return err
		}
		logger.Setup("trackerctl", cfg.Log.Options())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config")
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openDB connects to Postgres and makes sure the schema exists.
func openDB(ctx context.Context) (*database.DB, error) {
	start := time.Now()
	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.InitializeSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	logger.LogSystem("Database connected", logger.Since(start))
	return db, nil
}
