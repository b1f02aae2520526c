package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taskflow-service/core"
)

func (db *DB) CreateUser(ctx context.Context, u core.User) (core.User, error) {
	const q = `
		INSERT INTO users(name, email, password_hash, avatar)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at;
	`

	err := db.conn.QueryRowxContext(ctx, q, u.Name, u.Email, u.PasswordHash, u.Avatar).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return core.User{}, core.ErrUserExists
		}
		return core.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (db *DB) GetUser(ctx context.Context, id int64) (core.User, error) {
	const q = `
		SELECT id, name, email, password_hash, avatar, created_at, updated_at
		FROM users
		WHERE id = $1;
	`

	var u core.User
	if err := db.conn.GetContext(ctx, &u, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.User{}, core.ErrUserNotFound
		}
		return core.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (db *DB) GetUserByEmail(ctx context.Context, email string) (core.User, error) {
	const q = `
		SELECT id, name, email, password_hash, avatar, created_at, updated_at
		FROM users
		WHERE email = $1;
	`

	var u core.User
	if err := db.conn.GetContext(ctx, &u, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.User{}, core.ErrUserNotFound
		}
		return core.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

type taskSummaryRow struct {
	core.TaskSummary
	PriorityID      int64  `db:"priority_id"`
	PriorityLevel   string `db:"priority_level"`
	PriorityDefault bool   `db:"priority_default"`
}

func (r taskSummaryRow) toSummary() core.TaskSummary {
	out := r.TaskSummary
	out.Priority = &core.Priority{ID: r.PriorityID, Level: r.PriorityLevel, Default: r.PriorityDefault}
	return out
}

func (db *DB) GetUserProfile(ctx context.Context, id int64) (core.UserProfile, error) {
	const userQ = `
		SELECT id, name, email, avatar, created_at, updated_at
		FROM users
		WHERE id = $1;
	`

	var profile core.UserProfile
	if err := db.conn.GetContext(ctx, &profile.User, userQ, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.UserProfile{}, core.ErrUserNotFound
		}
		return core.UserProfile{}, fmt.Errorf("get user profile: %w", err)
	}

	const tasksQ = `
		SELECT t.id, t.title, COALESCE(t.description, '') AS description, t.status,
		       t.created_at, t.updated_at,
		       p.id AS priority_id, p.level AS priority_level, p.is_default AS priority_default
		FROM tasks t
		JOIN priorities p ON p.id = t.priority_id
		WHERE t.%s = $1
		ORDER BY t.created_at DESC;
	`

	var created []taskSummaryRow
	if err := db.conn.SelectContext(ctx, &created, fmt.Sprintf(tasksQ, "creator_id"), id); err != nil {
		return core.UserProfile{}, fmt.Errorf("get user tasks: %w", err)
	}

	var responsible []taskSummaryRow
	if err := db.conn.SelectContext(ctx, &responsible, fmt.Sprintf(tasksQ, "responsible_id"), id); err != nil {
		return core.UserProfile{}, fmt.Errorf("get user responsible tasks: %w", err)
	}

	const commentsQ = `
		SELECT id, content, task_id, author_id, created_at
		FROM comments
		WHERE author_id = $1
		ORDER BY created_at DESC;
	`

	if err := db.conn.SelectContext(ctx, &profile.Comments, commentsQ, id); err != nil {
		return core.UserProfile{}, fmt.Errorf("get user comments: %w", err)
	}

	profile.Tasks = make([]core.TaskSummary, 0, len(created))
	for _, r := range created {
		profile.Tasks = append(profile.Tasks, r.toSummary())
	}
	profile.ResponsibleFor = make([]core.TaskSummary, 0, len(responsible))
	for _, r := range responsible {
		profile.ResponsibleFor = append(profile.ResponsibleFor, r.toSummary())
	}
	if profile.Comments == nil {
		profile.Comments = []core.Comment{}
	}

	return profile, nil
}

func (db *DB) ListUsers(ctx context.Context) ([]core.User, error) {
	const q = `
		SELECT id, name, email, avatar, created_at, updated_at
		FROM users
		ORDER BY id ASC;
	`

	var out []core.User
	if err := db.conn.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (db *DB) UpdateUser(ctx context.Context, u core.User) (core.User, error) {
	const q = `
		UPDATE users
		SET name = $2,
		    email = $3,
		    password_hash = $4,
		    avatar = $5,
		    updated_at = now()
		WHERE id = $1
		RETURNING id, name, email, password_hash, avatar, created_at, updated_at;
	`

	var out core.User
	if err := db.conn.GetContext(ctx, &out, q, u.ID, u.Name, u.Email, u.PasswordHash, u.Avatar); err != nil {
		if isUniqueViolation(err) {
			return core.User{}, core.ErrUserExists
		}
		if errors.Is(err, sql.ErrNoRows) {
			return core.User{}, core.ErrUserNotFound
		}
		return core.User{}, fmt.Errorf("update user: %w", err)
	}
	return out, nil
}

func (db *DB) DeleteUser(ctx context.Context, id int64) error {
	const q = `DELETE FROM users WHERE id = $1`

	res, err := db.conn.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return core.ErrUserNotFound
	}
	return nil
}
