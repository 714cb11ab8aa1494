package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/raidledger/raidledger/internal/domain/catalog"
	"github.com/raidledger/raidledger/tracker"
	"github.com/raidledger/raidledger/tracker/logger"
)

var showSkips bool

var catalogCMD = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the quest and hideout catalog",
}

var catalogRefreshCMD = &cobra.Command{
	Use:   "refresh",
	Short: "Refetch the catalog from the API and rewrite the local cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		start := time.Now()
		snap, err := tracker.NewCatalogProvider(ctx, *cfg).Refresh(ctx)
		logger.LogCommand("catalog refresh", time.Since(start), err)
		if err != nil {
			return err
		}
		printSnapshot(cmd, snap)
		return nil
	},
}

var catalogCheckCMD = &cobra.Command{
	Use:   "check",
	Short: "Load the catalog the way the services do and report problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		snap, err := tracker.NewCatalogProvider(ctx, *cfg).Snapshot(ctx)
		if err != nil {
			return err
		}
		printSnapshot(cmd, snap)
		if cycles := catalog.Cycles(snap.Quests); len(cycles) > 0 {
			return fmt.Errorf("%d prerequisite cycles found", len(cycles))
		}
		return nil
	},
}

func printSnapshot(cmd *cobra.Command, snap *catalog.Snapshot) {
	out := cmd.OutOrStdout()
	state := "fresh"
	if snap.Stale {
		state = "stale"
	}
	fmt.Fprintf(out, "Catalog fetched %s (%s)\n", snap.FetchedAt.Format(time.RFC3339), state)
	fmt.Fprintf(out, "  quests:   %d\n", len(snap.Quests))
	fmt.Fprintf(out, "  stations: %d\n", len(snap.Stations))
	fmt.Fprintf(out, "  skipped:  %d\n", len(snap.Skips))
	if showSkips {
		for _, s := range snap.Skips {
			fmt.Fprintf(out, "    - %s\n", s)
		}
	}
	for _, cycle := range catalog.Cycles(snap.Quests) {
		fmt.Fprintf(out, "  cycle: %s\n", strings.Join(cycle, " -> "))
	}
}

func init() {
	catalogCMD.PersistentFlags().BoolVar(&showSkips, "show-skips", false, "list every skipped catalog record")
	catalogCMD.AddCommand(catalogRefreshCMD, catalogCheckCMD)
	rootCmd.AddCommand(catalogCMD)
}
