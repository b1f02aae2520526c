package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taskflow-service/core"
)

func (db *DB) CreatePriority(ctx context.Context, level string, isDefault bool) (core.Priority, error) {
	const q = `
		INSERT INTO priorities(level, is_default)
		VALUES ($1, $2)
		RETURNING id;
	`

	p := core.Priority{Level: level, Default: isDefault}
	if err := db.conn.QueryRowxContext(ctx, q, p.Level, p.Default).Scan(&p.ID); err != nil {
		return core.Priority{}, fmt.Errorf("insert priority: %w", err)
	}
	return p, nil
}

func (db *DB) GetPriority(ctx context.Context, id int64) (core.Priority, error) {
	const q = `SELECT id, level, is_default FROM priorities WHERE id = $1`

	var p core.Priority
	if err := db.conn.GetContext(ctx, &p, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Priority{}, core.ErrPriorityNotFound
		}
		return core.Priority{}, fmt.Errorf("get priority: %w", err)
	}
	return p, nil
}

func (db *DB) ListPriorities(ctx context.Context) ([]core.Priority, error) {
	const q = `SELECT id, level, is_default FROM priorities ORDER BY id ASC`

	var out []core.Priority
	if err := db.conn.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("list priorities: %w", err)
	}
	return out, nil
}

func (db *DB) UpdatePriority(ctx context.Context, p core.Priority) (core.Priority, error) {
	const q = `
		UPDATE priorities
		SET level = $2,
		    is_default = $3
		WHERE id = $1
		RETURNING id, level, is_default;
	`

	var out core.Priority
	if err := db.conn.GetContext(ctx, &out, q, p.ID, p.Level, p.Default); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Priority{}, core.ErrPriorityNotFound
		}
		return core.Priority{}, fmt.Errorf("update priority: %w", err)
	}
	return out, nil
}

func (db *DB) DeletePriority(ctx context.Context, id int64) error {
	const q = `DELETE FROM priorities WHERE id = $1`

	res, err := db.conn.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete priority: %w", err)
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return core.ErrPriorityNotFound
	}
	return nil
}
