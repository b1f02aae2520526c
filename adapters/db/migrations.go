package db

import (
	_ "embed"
	"fmt"
)

//go:embed migrations/01_create_users.up.sql
var createUsersUp string

//go:embed migrations/02_create_priorities.up.sql
var createPrioritiesUp string

//go:embed migrations/03_create_tags.up.sql
var createTagsUp string

//go:embed migrations/04_create_tasks.up.sql
var createTasksUp string

//go:embed migrations/05_create_task_tags.up.sql
var createTaskTagsUp string

//go:embed migrations/06_create_comments.up.sql
var createCommentsUp string

//go:embed migrations/07_create_history.up.sql
var createHistoryUp string

// Migrate applies the schema migrations in order.
func (db *DB) Migrate() error {
	db.log.Debug("running migrations")

	steps := []struct {
		name string
		sql  string
	}{
		{"users", createUsersUp},
		{"priorities", createPrioritiesUp},
		{"tags", createTagsUp},
		{"tasks", createTasksUp},
		{"task_tags", createTaskTagsUp},
		{"comments", createCommentsUp},
		{"history", createHistoryUp},
	}

	for _, step := range steps {
		if _, err := db.conn.Exec(step.sql); err != nil {
			return fmt.Errorf("apply %s migration: %w", step.name, err)
		}
	}

	db.log.Debug("migrations finished")
	return nil
}
