package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"taskflow-service/core"
)

var taskColumns = []string{
	"t.id",
	"t.title",
	"COALESCE(t.description, '') AS description",
	"t.status",
	"t.priority_id",
	"t.creator_id",
	"t.responsible_id",
	"t.created_at",
	"t.updated_at",
	"p.level AS priority_level",
	"p.is_default AS priority_default",
	"c.name AS creator_name",
	"c.email AS creator_email",
	"r.name AS responsible_name",
	"r.email AS responsible_email",
}

type taskRow struct {
	core.Task
	PriorityLevel    string  `db:"priority_level"`
	PriorityDefault  bool    `db:"priority_default"`
	CreatorName      string  `db:"creator_name"`
	CreatorEmail     string  `db:"creator_email"`
	ResponsibleName  *string `db:"responsible_name"`
	ResponsibleEmail *string `db:"responsible_email"`
}

func (r taskRow) toTask() core.Task {
	t := r.Task
	t.Priority = &core.Priority{ID: t.PriorityID, Level: r.PriorityLevel, Default: r.PriorityDefault}
	t.Creator = &core.UserRef{ID: t.CreatorID, Name: r.CreatorName, Email: r.CreatorEmail}
	if t.ResponsibleID != nil && r.ResponsibleName != nil && r.ResponsibleEmail != nil {
		t.Responsible = &core.UserRef{ID: *t.ResponsibleID, Name: *r.ResponsibleName, Email: *r.ResponsibleEmail}
	}
	return t
}

func taskQuery() squirrel.SelectBuilder {
	return qb.Select(taskColumns...).
		From("tasks t").
		Join("priorities p ON p.id = t.priority_id").
		Join("users c ON c.id = t.creator_id").
		LeftJoin("users r ON r.id = t.responsible_id")
}

func (db *DB) CreateTask(ctx context.Context, t core.Task) (core.Task, error) {
	const q = `
		INSERT INTO tasks(title, description, status, priority_id, creator_id, responsible_id)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6)
		RETURNING id;
	`

	var id int64
	err := db.conn.QueryRowxContext(ctx, q,
		t.Title, strings.TrimSpace(t.Description), string(t.Status),
		t.PriorityID, t.CreatorID, t.ResponsibleID,
	).Scan(&id)
	if err != nil {
		return core.Task{}, translateTaskWriteErr(err, "insert task")
	}

	return db.GetTask(ctx, id)
}

func (db *DB) GetTask(ctx context.Context, id int64) (core.Task, error) {
	query, args, err := taskQuery().Where("t.id = ?", id).ToSql()
	if err != nil {
		return core.Task{}, fmt.Errorf("build task query: %w", err)
	}

	var row taskRow
	if err := db.conn.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Task{}, core.ErrTaskNotFound
		}
		return core.Task{}, fmt.Errorf("get task: %w", err)
	}

	task := row.toTask()

	tasks := []core.Task{task}
	if err := db.loadTags(ctx, tasks); err != nil {
		return core.Task{}, err
	}
	task = tasks[0]

	comments, err := db.listTaskComments(ctx, id)
	if err != nil {
		return core.Task{}, err
	}
	task.Comments = comments

	return task, nil
}

func (db *DB) ListTasks(ctx context.Context, f core.TaskFilter) ([]core.Task, error) {
	b := taskQuery().OrderBy("t.created_at DESC")

	if f.PriorityID != nil {
		b = b.Where("t.priority_id = ?", *f.PriorityID)
	}
	if f.CreatorID != nil {
		b = b.Where("t.creator_id = ?", *f.CreatorID)
	}
	if f.ResponsibleID != nil {
		b = b.Where("t.responsible_id = ?", *f.ResponsibleID)
	}
	if f.TagID != nil {
		b = b.Join("task_tags tt ON tt.task_id = t.id").Where("tt.tag_id = ?", *f.TagID)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build tasks query: %w", err)
	}

	var rows []taskRow
	if err := db.conn.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	out := make([]core.Task, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toTask())
	}

	if err := db.loadTags(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (db *DB) UpdateTask(ctx context.Context, t core.Task) (core.Task, error) {
	const q = `
		UPDATE tasks
		SET title = $2,
		    description = NULLIF($3, ''),
		    status = $4,
		    priority_id = $5,
		    responsible_id = $6,
		    updated_at = now()
		WHERE id = $1
		RETURNING id;
	`

	var id int64
	err := db.conn.QueryRowxContext(ctx, q,
		t.ID, t.Title, strings.TrimSpace(t.Description), string(t.Status),
		t.PriorityID, t.ResponsibleID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Task{}, core.ErrTaskNotFound
		}
		return core.Task{}, translateTaskWriteErr(err, "update task")
	}

	return db.GetTask(ctx, id)
}

func (db *DB) DeleteTask(ctx context.Context, id int64) error {
	const q = `DELETE FROM tasks WHERE id = $1`

	res, err := db.conn.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return core.ErrTaskNotFound
	}
	return nil
}

// SetTaskTags replaces the tag set of a task.
func (db *DB) SetTaskTags(ctx context.Context, taskID int64, tagIDs []int64) error {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM task_tags WHERE task_id = $1`, taskID); err != nil {
		return fmt.Errorf("clear task tags: %w", err)
	}

	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO task_tags(task_id, tag_id) VALUES ($1, $2)`, taskID, tagID); err != nil {
			if name, ok := foreignKeyConstraint(err); ok {
				if strings.Contains(name, "tag") {
					return core.ErrTagNotFound
				}
				return core.ErrTaskNotFound
			}
			return fmt.Errorf("insert task tag: %w", err)
		}
	}

	return tx.Commit()
}

type taskTagRow struct {
	core.Tag
	TaskID int64 `db:"task_id"`
}

func (db *DB) loadTags(ctx context.Context, tasks []core.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}

	query, args, err := sqlx.In(`
		SELECT tt.task_id, tg.id, tg.name, tg.color
		FROM task_tags tt
		JOIN tags tg ON tg.id = tt.tag_id
		WHERE tt.task_id IN (?)
		ORDER BY tg.id ASC;
	`, ids)
	if err != nil {
		return fmt.Errorf("build tags query: %w", err)
	}

	var rows []taskTagRow
	if err := db.conn.SelectContext(ctx, &rows, db.conn.Rebind(query), args...); err != nil {
		return fmt.Errorf("load task tags: %w", err)
	}

	byTask := make(map[int64][]core.Tag, len(tasks))
	for _, r := range rows {
		byTask[r.TaskID] = append(byTask[r.TaskID], r.Tag)
	}
	for i := range tasks {
		tasks[i].Tags = byTask[tasks[i].ID]
	}
	return nil
}

type commentRow struct {
	core.Comment
	AuthorName  string `db:"author_name"`
	AuthorEmail string `db:"author_email"`
}

func (db *DB) listTaskComments(ctx context.Context, taskID int64) ([]core.Comment, error) {
	const q = `
		SELECT cm.id, cm.content, cm.task_id, cm.author_id, cm.created_at,
		       u.name AS author_name, u.email AS author_email
		FROM comments cm
		JOIN users u ON u.id = cm.author_id
		WHERE cm.task_id = $1
		ORDER BY cm.created_at ASC;
	`

	var rows []commentRow
	if err := db.conn.SelectContext(ctx, &rows, q, taskID); err != nil {
		return nil, fmt.Errorf("list task comments: %w", err)
	}

	out := make([]core.Comment, 0, len(rows))
	for _, r := range rows {
		c := r.Comment
		c.Author = &core.UserRef{ID: c.AuthorID, Name: r.AuthorName, Email: r.AuthorEmail}
		out = append(out, c)
	}
	return out, nil
}

func translateTaskWriteErr(err error, op string) error {
	if name, ok := foreignKeyConstraint(err); ok {
		if strings.Contains(name, "priority") {
			return core.ErrPriorityNotFound
		}
		return core.ErrUserNotFound
	}
	if isCheckViolation(err) {
		return core.ErrBadArguments
	}
	return fmt.Errorf("%s: %w", op, err)
}
