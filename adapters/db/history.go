package db

import (
	"context"
	"fmt"

	"taskflow-service/core"
)

func (db *DB) CreateHistory(ctx context.Context, taskID int64, action string) (core.History, error) {
	const q = `
		INSERT INTO history(task_id, action)
		VALUES ($1, $2)
		RETURNING id, task_id, action, created_at;
	`

	var h core.History
	err := db.conn.QueryRowxContext(ctx, q, taskID, action).
		Scan(&h.ID, &h.TaskID, &h.Action, &h.CreatedAt)
	if err != nil {
		if _, ok := foreignKeyConstraint(err); ok {
			return core.History{}, core.ErrTaskNotFound
		}
		return core.History{}, fmt.Errorf("insert history: %w", err)
	}
	return h, nil
}

func (db *DB) ListHistoryByTask(ctx context.Context, taskID int64) ([]core.History, error) {
	const q = `
		SELECT id, task_id, action, created_at
		FROM history
		WHERE task_id = $1
		ORDER BY created_at DESC;
	`

	var out []core.History
	if err := db.conn.SelectContext(ctx, &out, q, taskID); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return out, nil
}
