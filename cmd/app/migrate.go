package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/tasklists/internal/config"
	"github.com/BuzzLyutic/tasklists/migrations"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			pool, err := connect(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			applied, err := migrations.Apply(cmd.Context(), pool, logger)
			if err != nil {
				return err
			}
			logger.Info("migrations complete", zap.Int("applied", len(applied)))
			return nil
		},
	}
}
