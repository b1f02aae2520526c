package core

import "time"

type TaskStatus string

const (
	StatusPendente    TaskStatus = "PENDENTE"
	StatusEmProgresso TaskStatus = "EM_PROGRESSO"
	StatusConcluido   TaskStatus = "CONCLUIDO"
)

func ValidStatus(st TaskStatus) bool {
	switch st {
	case StatusPendente, StatusEmProgresso, StatusConcluido:
		return true
	}
	return false
}

type User struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Avatar       *string   `db:"avatar" json:"avatar,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// UserRef is the projection embedded in tasks and comments. Never carries secrets.
type UserRef struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}

func (u User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

type Priority struct {
	ID      int64  `db:"id" json:"id"`
	Level   string `db:"level" json:"level"`
	Default bool   `db:"is_default" json:"default"`
}

type Tag struct {
	ID    int64   `db:"id" json:"id"`
	Name  string  `db:"name" json:"name"`
	Color *string `db:"color" json:"color,omitempty"`
}

type Task struct {
	ID          int64      `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Status      TaskStatus `db:"status" json:"status"`
	PriorityID  int64      `db:"priority_id" json:"priority_id"`
	Priority    *Priority  `db:"-" json:"priority,omitempty"`
	CreatorID   int64      `db:"creator_id" json:"creator_id"`
	Creator     *UserRef   `db:"-" json:"creator,omitempty"`
	// Nil when nobody is assigned yet.
	ResponsibleID *int64    `db:"responsible_id" json:"responsible_id,omitempty"`
	Responsible   *UserRef  `db:"-" json:"responsible,omitempty"`
	Tags          []Tag     `db:"-" json:"tags,omitempty"`
	Comments      []Comment `db:"-" json:"comments,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

type Comment struct {
	ID        int64     `db:"id" json:"id"`
	Content   string    `db:"content" json:"content"`
	TaskID    int64     `db:"task_id" json:"task_id"`
	AuthorID  int64     `db:"author_id" json:"author_id"`
	Author    *UserRef  `db:"-" json:"author,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// History rows are append-only; the API never updates or deletes them.
type History struct {
	ID        int64     `db:"id" json:"id"`
	TaskID    int64     `db:"task_id" json:"task_id"`
	Action    string    `db:"action" json:"action"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TaskSummary is the projection of a task nested inside a user payload.
type TaskSummary struct {
	ID          int64      `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Status      TaskStatus `db:"status" json:"status"`
	Priority    *Priority  `db:"-" json:"priority,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// UserProfile is the detailed user projection with related tasks and comments.
type UserProfile struct {
	User
	Tasks          []TaskSummary `json:"tasks"`
	ResponsibleFor []TaskSummary `json:"responsible_for"`
	Comments       []Comment     `json:"comments"`
}
