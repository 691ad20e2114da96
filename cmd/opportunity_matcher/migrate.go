package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the profiles and opportunities tables",
	Long:  "Applies the embedded SQL schema to the --sqlite file or DATABASE_URL. The schema is idempotent and safe to re-run.",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = rt.logger.Sync() }()

	store, err := connect(cmd.Context(), rt)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Schema applied")
	return nil
}
