package core

import "context"

// TaskFilter narrows task listings. Nil fields are ignored.
type TaskFilter struct {
	PriorityID    *int64
	CreatorID     *int64
	ResponsibleID *int64
	TagID         *int64
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Store is the persistence port. Implementations translate storage failures
// into the sentinel errors from errors.go: unique violations become the
// matching conflict error, missing rows become the matching not-found error.
type Store interface {
	Ping(ctx context.Context) error

	// users
	CreateUser(ctx context.Context, u User) (User, error)
	GetUser(ctx context.Context, id int64) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserProfile(ctx context.Context, id int64) (UserProfile, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, u User) (User, error)
	DeleteUser(ctx context.Context, id int64) error

	// priorities
	CreatePriority(ctx context.Context, level string, isDefault bool) (Priority, error)
	GetPriority(ctx context.Context, id int64) (Priority, error)
	ListPriorities(ctx context.Context) ([]Priority, error)
	UpdatePriority(ctx context.Context, p Priority) (Priority, error)
	DeletePriority(ctx context.Context, id int64) error

	// tags
	CreateTag(ctx context.Context, name string, color *string) (Tag, error)
	GetTag(ctx context.Context, id int64) (Tag, error)
	GetTagByName(ctx context.Context, name string) (Tag, error)
	ListTags(ctx context.Context) ([]Tag, error)
	UpdateTag(ctx context.Context, t Tag) (Tag, error)
	DeleteTag(ctx context.Context, id int64) error

	// tasks
	CreateTask(ctx context.Context, t Task) (Task, error)
	GetTask(ctx context.Context, id int64) (Task, error)
	ListTasks(ctx context.Context, f TaskFilter) ([]Task, error)
	UpdateTask(ctx context.Context, t Task) (Task, error)
	DeleteTask(ctx context.Context, id int64) error
	SetTaskTags(ctx context.Context, taskID int64, tagIDs []int64) error

	// history
	CreateHistory(ctx context.Context, taskID int64, action string) (History, error)
	ListHistoryByTask(ctx context.Context, taskID int64) ([]History, error)
}

// Hasher hides the password hashing primitive.
type Hasher interface {
	Hash(password string) (string, error)
	// Compare returns a non-nil error when the password does not match.
	Compare(hash, password string) error
}

// TokenIssuer signs authentication tokens carrying the user identity.
type TokenIssuer interface {
	Issue(userID int64, email string) (string, error)
}
