package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskflow-service/adapters/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		log := mustMakeLogger(cfg.LogLevel)

		storage, err := db.New(log, cfg.DBAddress)
		if err != nil {
			return fmt.Errorf("failed to connect to db: %w", err)
		}
		defer func() { _ = storage.Close() }()

		if err := storage.Migrate(); err != nil {
			return fmt.Errorf("failed to migrate db: %w", err)
		}

		log.Info("migrations applied")
		return nil
	},
}
