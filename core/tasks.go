package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

type TaskService struct {
	store    Store
	notifier Notifier[Task]
}

func NewTaskService(log *slog.Logger, store Store) *TaskService {
	s := &TaskService{store: store}
	s.notifier.Subscribe(LogObserver[Task](log))
	return s
}

func (s *TaskService) Subscribe(o Observer[Task]) {
	s.notifier.Subscribe(o)
}

type CreateTaskInput struct {
	Title         string
	Description   string
	PriorityID    int64
	CreatorID     int64
	ResponsibleID *int64
	Status        TaskStatus
	TagIDs        []int64
}

func (s *TaskService) Create(ctx context.Context, in CreateTaskInput) (Task, error) {
	if emptyTrimmed(in.Title) || in.PriorityID <= 0 || in.CreatorID <= 0 {
		return Task{}, ErrBadArguments
	}
	if in.ResponsibleID != nil && *in.ResponsibleID <= 0 {
		return Task{}, ErrBadArguments
	}
	for _, tagID := range in.TagIDs {
		if tagID <= 0 {
			return Task{}, ErrBadArguments
		}
	}
	status := in.Status
	if status == "" {
		status = StatusPendente
	}
	if !ValidStatus(status) {
		return Task{}, ErrBadArguments
	}

	t, err := s.store.CreateTask(ctx, Task{
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		Status:        status,
		PriorityID:    in.PriorityID,
		CreatorID:     in.CreatorID,
		ResponsibleID: in.ResponsibleID,
	})
	if err != nil {
		return Task{}, err
	}

	if len(in.TagIDs) > 0 {
		if err := s.store.SetTaskTags(ctx, t.ID, in.TagIDs); err != nil {
			return Task{}, err
		}
		if t, err = s.store.GetTask(ctx, t.ID); err != nil {
			return Task{}, err
		}
	}

	s.recordHistory(ctx, t.ID, "Task created")
	s.notifier.Publish("Task Created", t)
	return t, nil
}

func (s *TaskService) GetByID(ctx context.Context, id int64) (Task, error) {
	if id <= 0 {
		return Task{}, ErrBadArguments
	}
	return s.store.GetTask(ctx, id)
}

func (s *TaskService) GetAll(ctx context.Context) ([]Task, error) {
	return s.store.ListTasks(ctx, TaskFilter{})
}

func (s *TaskService) GetByPriority(ctx context.Context, priorityID int64) ([]Task, error) {
	if priorityID <= 0 {
		return nil, ErrBadArguments
	}
	return s.store.ListTasks(ctx, TaskFilter{PriorityID: &priorityID})
}

func (s *TaskService) GetByResponsible(ctx context.Context, responsibleID int64) ([]Task, error) {
	if responsibleID <= 0 {
		return nil, ErrBadArguments
	}
	return s.store.ListTasks(ctx, TaskFilter{ResponsibleID: &responsibleID})
}

func (s *TaskService) GetByCreator(ctx context.Context, creatorID int64) ([]Task, error) {
	if creatorID <= 0 {
		return nil, ErrBadArguments
	}
	return s.store.ListTasks(ctx, TaskFilter{CreatorID: &creatorID})
}

func (s *TaskService) GetByTag(ctx context.Context, tagID int64) ([]Task, error) {
	if tagID <= 0 {
		return nil, ErrBadArguments
	}
	return s.store.ListTasks(ctx, TaskFilter{TagID: &tagID})
}

type TaskPatch struct {
	Title       *string
	Description *string
	PriorityID  *int64
	Status      *TaskStatus
	// Non-nil replaces the whole tag set; an empty slice clears it.
	TagIDs *[]int64
}

func (s *TaskService) Update(ctx context.Context, id int64, patch TaskPatch) (Task, error) {
	if id <= 0 {
		return Task{}, ErrBadArguments
	}
	if patch.Title == nil && patch.Description == nil && patch.PriorityID == nil &&
		patch.Status == nil && patch.TagIDs == nil {
		return Task{}, ErrBadArguments
	}
	if patch.Title != nil && emptyTrimmed(*patch.Title) {
		return Task{}, ErrBadArguments
	}
	if patch.PriorityID != nil && *patch.PriorityID <= 0 {
		return Task{}, ErrBadArguments
	}
	if patch.Status != nil && !ValidStatus(*patch.Status) {
		return Task{}, ErrBadArguments
	}
	if patch.TagIDs != nil {
		for _, tagID := range *patch.TagIDs {
			if tagID <= 0 {
				return Task{}, ErrBadArguments
			}
		}
	}

	cur, err := s.store.GetTask(ctx, id)
	if err != nil {
		return Task{}, err
	}

	statusChanged := false
	if patch.Title != nil {
		cur.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		cur.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.PriorityID != nil {
		if _, err := s.store.GetPriority(ctx, *patch.PriorityID); err != nil {
			return Task{}, err
		}
		cur.PriorityID = *patch.PriorityID
	}
	if patch.Status != nil && cur.Status != *patch.Status {
		cur.Status = *patch.Status
		statusChanged = true
	}

	t, err := s.store.UpdateTask(ctx, cur)
	if err != nil {
		return Task{}, err
	}

	if patch.TagIDs != nil {
		if err := s.store.SetTaskTags(ctx, t.ID, *patch.TagIDs); err != nil {
			return Task{}, err
		}
		if t, err = s.store.GetTask(ctx, t.ID); err != nil {
			return Task{}, err
		}
	}

	if statusChanged {
		s.recordHistory(ctx, t.ID, fmt.Sprintf("Status changed to %s", t.Status))
	}
	s.notifier.Publish("Task Updated", t)
	return t, nil
}

// AssignResponsible sets the responsible user and always moves the task to
// EM_PROGRESSO, whatever its current status.
func (s *TaskService) AssignResponsible(ctx context.Context, taskID, responsibleID int64) (Task, error) {
	if taskID <= 0 || responsibleID <= 0 {
		return Task{}, ErrBadArguments
	}

	cur, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return Task{}, err
	}
	if _, err := s.store.GetUser(ctx, responsibleID); err != nil {
		return Task{}, err
	}

	cur.ResponsibleID = &responsibleID
	cur.Status = StatusEmProgresso

	t, err := s.store.UpdateTask(ctx, cur)
	if err != nil {
		return Task{}, err
	}

	s.recordHistory(ctx, t.ID, "Responsible assigned")
	s.notifier.Publish("Task Assigned", t)
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrBadArguments
	}

	cur, err := s.store.GetTask(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteTask(ctx, id); err != nil {
		return err
	}

	s.notifier.Publish("Task Deleted", cur)
	return nil
}

// recordHistory is best effort: a failed audit write never fails the mutation.
func (s *TaskService) recordHistory(ctx context.Context, taskID int64, action string) {
	_, _ = s.store.CreateHistory(ctx, taskID, action)
}
