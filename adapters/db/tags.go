package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taskflow-service/core"
)

func (db *DB) CreateTag(ctx context.Context, name string, color *string) (core.Tag, error) {
	const q = `
		INSERT INTO tags(name, color)
		VALUES ($1, $2)
		RETURNING id;
	`

	t := core.Tag{Name: name, Color: color}
	if err := db.conn.QueryRowxContext(ctx, q, t.Name, t.Color).Scan(&t.ID); err != nil {
		if isUniqueViolation(err) {
			return core.Tag{}, core.ErrTagExists
		}
		return core.Tag{}, fmt.Errorf("insert tag: %w", err)
	}
	return t, nil
}

func (db *DB) GetTag(ctx context.Context, id int64) (core.Tag, error) {
	const q = `SELECT id, name, color FROM tags WHERE id = $1`

	var t core.Tag
	if err := db.conn.GetContext(ctx, &t, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Tag{}, core.ErrTagNotFound
		}
		return core.Tag{}, fmt.Errorf("get tag: %w", err)
	}
	return t, nil
}

func (db *DB) GetTagByName(ctx context.Context, name string) (core.Tag, error) {
	const q = `SELECT id, name, color FROM tags WHERE name = $1`

	var t core.Tag
	if err := db.conn.GetContext(ctx, &t, q, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Tag{}, core.ErrTagNotFound
		}
		return core.Tag{}, fmt.Errorf("get tag by name: %w", err)
	}
	return t, nil
}

func (db *DB) ListTags(ctx context.Context) ([]core.Tag, error) {
	const q = `SELECT id, name, color FROM tags ORDER BY id ASC`

	var out []core.Tag
	if err := db.conn.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return out, nil
}

func (db *DB) UpdateTag(ctx context.Context, t core.Tag) (core.Tag, error) {
	const q = `
		UPDATE tags
		SET name = $2,
		    color = $3
		WHERE id = $1
		RETURNING id, name, color;
	`

	var out core.Tag
	if err := db.conn.GetContext(ctx, &out, q, t.ID, t.Name, t.Color); err != nil {
		if isUniqueViolation(err) {
			return core.Tag{}, core.ErrTagExists
		}
		if errors.Is(err, sql.ErrNoRows) {
			return core.Tag{}, core.ErrTagNotFound
		}
		return core.Tag{}, fmt.Errorf("update tag: %w", err)
	}
	return out, nil
}

func (db *DB) DeleteTag(ctx context.Context, id int64) error {
	const q = `DELETE FROM tags WHERE id = $1`

	res, err := db.conn.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return core.ErrTagNotFound
	}
	return nil
}
