package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"provider-registry/internal/platform/config"
	"provider-registry/internal/platform/postgres"
	"provider-registry/internal/provider/store"
)

func newMigrateCommand(rootOpts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the registry schema to the configured database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(rootOpts)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			switch cfg.Storage.Driver {
			case config.DriverPostgres:
				db, err := postgres.Open(ctx, cfg.Storage.DatabaseURL)
				if err != nil {
					return err
				}
				defer db.Close()
				if err := store.MigratePostgres(ctx, db); err != nil {
					return err
				}
			case config.DriverSQLite:
				db, err := store.OpenSQLite(ctx, cfg.Storage.SQLitePath)
				if err != nil {
					return err
				}
				defer db.Close()
			default:
				return fmt.Errorf("storage driver %q has no schema to migrate", cfg.Storage.Driver)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema applied (%s)\n", cfg.Storage.Driver)
			return nil
		},
	}
}
