package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/raidledger/raidledger/tracker/logger"
	"github.com/raidledger/raidledger/tracker/migration"
)

var migrateOpts struct {
	from      string
	reset     bool
	useCopy   bool
	batchSize int
	reportDir string
}

var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "Import users, progress and teams from a legacy sqlite database",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		start := time.Now()

		src, err := migration.OpenSource(migrateOpts.from)
		if err != nil {
			return err
		}
		defer src.Close()

		data, err := src.Load(ctx)
		if err != nil {
			return err
		}

		db, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		if migrateOpts.reset {
			slog.Warn("Truncating application tables", slog.String("type", "db"))
			if err := db.ResetAppTables(ctx); err != nil {
				return fmt.Errorf("failed to reset tables: %w", err)
			}
		}

		migrator := migration.NewMigrator(db.BunDB())
		migrator.SetBatchSize(migrateOpts.batchSize)
		if migrateOpts.useCopy {
			migrator.UseCopy(db.Pool())
		}

		err = migrator.MigrateAll(ctx, data)
		logger.LogCommand("migrate", time.Since(start), err)
		if err != nil {
			return err
		}

		reportFile := filepath.Join(migrateOpts.reportDir, fmt.Sprintf("migration_report_%s.json", time.Now().Format("20060102_150405")))
		file, err := os.Create(reportFile)
		if err != nil {
			return fmt.Errorf("failed to create migration report file: %w", err)
		}
		defer file.Close()
		if err := migrator.WriteReport(file); err != nil {
			return err
		}

		stats := migrator.Stats()
		written := 0
		for _, t := range stats.Tables {
			written += t.Successful
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d records (%d skipped, %d errors). Report: %s\n",
			written, stats.TotalSkipped, stats.TotalErrors, reportFile)
		return nil
	},
}

func init() {
	f := migrateCMD.Flags()
	f.StringVar(&migrateOpts.from, "from", "tarkov-tracker.db", "legacy sqlite database file")
	f.BoolVar(&migrateOpts.reset, "reset", false, "truncate application tables before importing")
	f.BoolVar(&migrateOpts.useCopy, "copy", false, "use COPY FROM for progress tables")
	f.IntVar(&migrateOpts.batchSize, "batch-size", 500, "rows per insert statement")
	f.StringVar(&migrateOpts.reportDir, "report-dir", ".", "directory for the JSON report")
	rootCmd.AddCommand(migrateCMD)
}
