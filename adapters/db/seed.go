package db

import (
	"context"
	"fmt"
)

// Seed resets priorities to the protected system defaults.
func (db *DB) Seed(ctx context.Context) error {
	db.log.Debug("seeding default priorities")

	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM priorities`); err != nil {
		return fmt.Errorf("clear priorities: %w", err)
	}

	for _, level := range []string{"alta", "média", "baixa"} {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO priorities(level, is_default) VALUES ($1, true)`, level); err != nil {
			return fmt.Errorf("seed priority %q: %w", level, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}

	db.log.Debug("seeding finished")
	return nil
}
