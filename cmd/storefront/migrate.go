package main

import (
	"context"
	"time"

	"github.com/deppfellow/storefront/internal/database"
	"github.com/spf13/cobra"
)

var migrateTimeout time.Duration

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, loggerService, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
		defer cancel()

		if err := database.Migrate(ctx, &log, cfg); err != nil {
			log.Error().Err(err).Msg("migration failed")
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().DurationVar(&migrateTimeout, "timeout", time.Minute, "abort the migration after this long")
}
