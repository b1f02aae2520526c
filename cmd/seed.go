package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskflow-service/adapters/db"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Reset priorities to the protected system defaults",
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

		if err := storage.Seed(cmd.Context()); err != nil {
			return fmt.Errorf("failed to seed db: %w", err)
		}

		log.Info("default priorities seeded")
		return nil
	},
}
