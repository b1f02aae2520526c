// Package memstore provides an in-memory core.Store used by tests and local
// development. It mirrors the error mapping of the Postgres adapter.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"taskflow-service/core"
)

type Store struct {
	mu sync.RWMutex

	nextUserID     int64
	nextPriorityID int64
	nextTagID      int64
	nextTaskID     int64
	nextCommentID  int64
	nextHistoryID  int64

	users      map[int64]core.User
	priorities map[int64]core.Priority
	tags       map[int64]core.Tag
	tasks      map[int64]core.Task
	taskTags   map[int64][]int64
	comments   map[int64]core.Comment
	history    map[int64]core.History
}

func New() *Store {
	return &Store{
		nextUserID:     1,
		nextPriorityID: 1,
		nextTagID:      1,
		nextTaskID:     1,
		nextCommentID:  1,
		nextHistoryID:  1,
		users:          make(map[int64]core.User),
		priorities:     make(map[int64]core.Priority),
		tags:           make(map[int64]core.Tag),
		tasks:          make(map[int64]core.Task),
		taskTags:       make(map[int64][]int64),
		comments:       make(map[int64]core.Comment),
		history:        make(map[int64]core.History),
	}
}

func (s *Store) Ping(context.Context) error {
	return nil
}

func cloneTask(t core.Task) core.Task {
	out := t
	if t.ResponsibleID != nil {
		rid := *t.ResponsibleID
		out.ResponsibleID = &rid
	}
	out.Priority = nil
	out.Creator = nil
	out.Responsible = nil
	out.Tags = nil
	out.Comments = nil
	return out
}

// users

func (s *Store) CreateUser(_ context.Context, u core.User) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return core.User{}, core.ErrUserExists
		}
	}

	u.ID = s.nextUserID
	s.nextUserID++

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = u

	return u, nil
}

func (s *Store) GetUser(_ context.Context, id int64) (core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return core.User{}, core.ErrUserNotFound
	}
	return u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return core.User{}, core.ErrUserNotFound
}

func (s *Store) GetUserProfile(ctx context.Context, id int64) (core.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return core.UserProfile{}, core.ErrUserNotFound
	}

	profile := core.UserProfile{
		User:           u,
		Tasks:          []core.TaskSummary{},
		ResponsibleFor: []core.TaskSummary{},
		Comments:       []core.Comment{},
	}
	profile.PasswordHash = ""

	for _, t := range s.tasks {
		summary := core.TaskSummary{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Status:      t.Status,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		}
		if p, ok := s.priorities[t.PriorityID]; ok {
			summary.Priority = &p
		}
		if t.CreatorID == id {
			profile.Tasks = append(profile.Tasks, summary)
		}
		if t.ResponsibleID != nil && *t.ResponsibleID == id {
			profile.ResponsibleFor = append(profile.ResponsibleFor, summary)
		}
	}
	sort.Slice(profile.Tasks, func(i, j int) bool { return profile.Tasks[i].ID < profile.Tasks[j].ID })
	sort.Slice(profile.ResponsibleFor, func(i, j int) bool { return profile.ResponsibleFor[i].ID < profile.ResponsibleFor[j].ID })

	for _, c := range s.comments {
		if c.AuthorID == id {
			profile.Comments = append(profile.Comments, c)
		}
	}
	sort.Slice(profile.Comments, func(i, j int) bool { return profile.Comments[i].ID < profile.Comments[j].ID })

	return profile, nil
}

func (s *Store) ListUsers(context.Context) ([]core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.User, 0, len(s.users))
	for _, u := range s.users {
		u.PasswordHash = ""
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) UpdateUser(_ context.Context, u core.User) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.users[u.ID]
	if !ok {
		return core.User{}, core.ErrUserNotFound
	}

	for _, existing := range s.users {
		if existing.ID != u.ID && existing.Email == u.Email {
			return core.User{}, core.ErrUserExists
		}
	}

	u.CreatedAt = cur.CreatedAt
	u.UpdatedAt = time.Now()
	s.users[u.ID] = u

	return u, nil
}

func (s *Store) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return core.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

// priorities

func (s *Store) CreatePriority(_ context.Context, level string, isDefault bool) (core.Priority, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := core.Priority{ID: s.nextPriorityID, Level: level, Default: isDefault}
	s.nextPriorityID++
	s.priorities[p.ID] = p
	return p, nil
}

func (s *Store) GetPriority(_ context.Context, id int64) (core.Priority, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.priorities[id]
	if !ok {
		return core.Priority{}, core.ErrPriorityNotFound
	}
	return p, nil
}

func (s *Store) ListPriorities(context.Context) ([]core.Priority, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Priority, 0, len(s.priorities))
	for _, p := range s.priorities {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) UpdatePriority(_ context.Context, p core.Priority) (core.Priority, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.priorities[p.ID]; !ok {
		return core.Priority{}, core.ErrPriorityNotFound
	}
	s.priorities[p.ID] = p
	return p, nil
}

func (s *Store) DeletePriority(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.priorities[id]; !ok {
		return core.ErrPriorityNotFound
	}
	delete(s.priorities, id)
	return nil
}

// tags

func (s *Store) CreateTag(_ context.Context, name string, color *string) (core.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.tags {
		if existing.Name == name {
			return core.Tag{}, core.ErrTagExists
		}
	}

	t := core.Tag{ID: s.nextTagID, Name: name, Color: color}
	s.nextTagID++
	s.tags[t.ID] = t
	return t, nil
}

func (s *Store) GetTag(_ context.Context, id int64) (core.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tags[id]
	if !ok {
		return core.Tag{}, core.ErrTagNotFound
	}
	return t, nil
}

func (s *Store) GetTagByName(_ context.Context, name string) (core.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tags {
		if t.Name == name {
			return t, nil
		}
	}
	return core.Tag{}, core.ErrTagNotFound
}

func (s *Store) ListTags(context.Context) ([]core.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Tag, 0, len(s.tags))
	for _, t := range s.tags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) UpdateTag(_ context.Context, t core.Tag) (core.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tags[t.ID]; !ok {
		return core.Tag{}, core.ErrTagNotFound
	}
	for _, existing := range s.tags {
		if existing.ID != t.ID && existing.Name == t.Name {
			return core.Tag{}, core.ErrTagExists
		}
	}
	s.tags[t.ID] = t
	return t, nil
}

func (s *Store) DeleteTag(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tags[id]; !ok {
		return core.ErrTagNotFound
	}
	delete(s.tags, id)
	for taskID, ids := range s.taskTags {
		s.taskTags[taskID] = removeID(ids, id)
	}
	return nil
}

func removeID(ids []int64, id int64) []int64 {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// tasks

func (s *Store) CreateTask(_ context.Context, t core.Task) (core.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.priorities[t.PriorityID]; !ok {
		return core.Task{}, core.ErrPriorityNotFound
	}
	if _, ok := s.users[t.CreatorID]; !ok {
		return core.Task{}, core.ErrUserNotFound
	}
	if t.ResponsibleID != nil {
		if _, ok := s.users[*t.ResponsibleID]; !ok {
			return core.Task{}, core.ErrUserNotFound
		}
	}

	t.ID = s.nextTaskID
	s.nextTaskID++

	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	t.Title = strings.TrimSpace(t.Title)

	s.tasks[t.ID] = cloneTask(t)
	return s.hydrateTask(s.tasks[t.ID]), nil
}

func (s *Store) GetTask(_ context.Context, id int64) (core.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return core.Task{}, core.ErrTaskNotFound
	}
	return s.hydrateTask(t), nil
}

func (s *Store) ListTasks(_ context.Context, f core.TaskFilter) ([]core.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if f.PriorityID != nil && t.PriorityID != *f.PriorityID {
			continue
		}
		if f.CreatorID != nil && t.CreatorID != *f.CreatorID {
			continue
		}
		if f.ResponsibleID != nil {
			if t.ResponsibleID == nil || *t.ResponsibleID != *f.ResponsibleID {
				continue
			}
		}
		if f.TagID != nil && !containsID(s.taskTags[t.ID], *f.TagID) {
			continue
		}
		out = append(out, s.hydrateTask(t))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func (s *Store) UpdateTask(_ context.Context, t core.Task) (core.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.tasks[t.ID]
	if !ok {
		return core.Task{}, core.ErrTaskNotFound
	}
	if _, ok := s.priorities[t.PriorityID]; !ok {
		return core.Task{}, core.ErrPriorityNotFound
	}
	if t.ResponsibleID != nil {
		if _, ok := s.users[*t.ResponsibleID]; !ok {
			return core.Task{}, core.ErrUserNotFound
		}
	}

	t.CreatedAt = cur.CreatedAt
	t.UpdatedAt = time.Now()
	s.tasks[t.ID] = cloneTask(t)

	return s.hydrateTask(s.tasks[t.ID]), nil
}

func (s *Store) DeleteTask(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return core.ErrTaskNotFound
	}
	delete(s.tasks, id)
	delete(s.taskTags, id)
	for hid, h := range s.history {
		if h.TaskID == id {
			delete(s.history, hid)
		}
	}
	return nil
}

func (s *Store) SetTaskTags(_ context.Context, taskID int64, tagIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[taskID]; !ok {
		return core.ErrTaskNotFound
	}
	for _, tagID := range tagIDs {
		if _, ok := s.tags[tagID]; !ok {
			return core.ErrTagNotFound
		}
	}
	s.taskTags[taskID] = append([]int64(nil), tagIDs...)
	return nil
}

func (s *Store) hydrateTask(t core.Task) core.Task {
	out := cloneTask(t)

	if p, ok := s.priorities[t.PriorityID]; ok {
		out.Priority = &p
	}
	if c, ok := s.users[t.CreatorID]; ok {
		ref := c.Ref()
		out.Creator = &ref
	}
	if t.ResponsibleID != nil {
		if r, ok := s.users[*t.ResponsibleID]; ok {
			ref := r.Ref()
			out.Responsible = &ref
		}
	}

	for _, tagID := range s.taskTags[t.ID] {
		if tag, ok := s.tags[tagID]; ok {
			out.Tags = append(out.Tags, tag)
		}
	}
	sort.Slice(out.Tags, func(i, j int) bool { return out.Tags[i].ID < out.Tags[j].ID })

	return out
}

// history

func (s *Store) CreateHistory(_ context.Context, taskID int64, action string) (core.History, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[taskID]; !ok {
		return core.History{}, core.ErrTaskNotFound
	}

	h := core.History{
		ID:        s.nextHistoryID,
		TaskID:    taskID,
		Action:    action,
		CreatedAt: time.Now(),
	}
	s.nextHistoryID++
	s.history[h.ID] = h
	return h, nil
}

func (s *Store) ListHistoryByTask(_ context.Context, taskID int64) ([]core.History, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.History, 0)
	for _, h := range s.history {
		if h.TaskID == taskID {
			out = append(out, h)
		}
	}
	// newest first
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// AddComment seeds a comment, used by tests.
func (s *Store) AddComment(taskID, authorID int64, content string) (core.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[taskID]; !ok {
		return core.Comment{}, core.ErrTaskNotFound
	}
	if _, ok := s.users[authorID]; !ok {
		return core.Comment{}, core.ErrUserNotFound
	}

	c := core.Comment{
		ID:        s.nextCommentID,
		Content:   content,
		TaskID:    taskID,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	}
	s.nextCommentID++
	s.comments[c.ID] = c
	return c, nil
}
