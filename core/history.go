package core

import (
	"context"
	"log/slog"
)

type HistoryService struct {
	store    Store
	notifier Notifier[History]
}

func NewHistoryService(log *slog.Logger, store Store) *HistoryService {
	s := &HistoryService{store: store}
	s.notifier.Subscribe(LogObserver[History](log))
	return s
}

func (s *HistoryService) Subscribe(o Observer[History]) {
	s.notifier.Subscribe(o)
}

func (s *HistoryService) Create(ctx context.Context, taskID int64, action string) (History, error) {
	if taskID <= 0 || emptyTrimmed(action) {
		return History{}, ErrBadArguments
	}

	if _, err := s.store.GetTask(ctx, taskID); err != nil {
		return History{}, err
	}

	h, err := s.store.CreateHistory(ctx, taskID, action)
	if err != nil {
		return History{}, err
	}

	s.notifier.Publish("History Created", h)
	return h, nil
}

// GetByTask returns the audit trail for a task, newest first.
func (s *HistoryService) GetByTask(ctx context.Context, taskID int64) ([]History, error) {
	if taskID <= 0 {
		return nil, ErrBadArguments
	}
	return s.store.ListHistoryByTask(ctx, taskID)
}
