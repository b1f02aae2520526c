package core

import (
	"context"
	"log/slog"
	"strings"
)

type PriorityService struct {
	store    Store
	notifier Notifier[Priority]
}

func NewPriorityService(log *slog.Logger, store Store) *PriorityService {
	s := &PriorityService{store: store}
	s.notifier.Subscribe(LogObserver[Priority](log))
	return s
}

func (s *PriorityService) Subscribe(o Observer[Priority]) {
	s.notifier.Subscribe(o)
}

func (s *PriorityService) Create(ctx context.Context, level string, isDefault bool) (Priority, error) {
	if emptyTrimmed(level) {
		return Priority{}, ErrBadArguments
	}

	p, err := s.store.CreatePriority(ctx, strings.TrimSpace(level), isDefault)
	if err != nil {
		return Priority{}, err
	}

	s.notifier.Publish("Priority Created", p)
	return p, nil
}

func (s *PriorityService) GetByID(ctx context.Context, id int64) (Priority, error) {
	if id <= 0 {
		return Priority{}, ErrBadArguments
	}
	return s.store.GetPriority(ctx, id)
}

func (s *PriorityService) GetAll(ctx context.Context) ([]Priority, error) {
	return s.store.ListPriorities(ctx)
}

type PriorityPatch struct {
	Level   *string
	Default *bool
}

func (s *PriorityService) Update(ctx context.Context, id int64, patch PriorityPatch) (Priority, error) {
	if id <= 0 {
		return Priority{}, ErrBadArguments
	}
	// at least one of level or default must be present
	if patch.Level == nil && patch.Default == nil {
		return Priority{}, ErrBadArguments
	}
	if patch.Level != nil && emptyTrimmed(*patch.Level) {
		return Priority{}, ErrBadArguments
	}

	cur, err := s.store.GetPriority(ctx, id)
	if err != nil {
		return Priority{}, err
	}
	if cur.Default {
		return Priority{}, ErrPriorityProtected
	}

	if patch.Level != nil {
		cur.Level = strings.TrimSpace(*patch.Level)
	}
	if patch.Default != nil {
		cur.Default = *patch.Default
	}

	p, err := s.store.UpdatePriority(ctx, cur)
	if err != nil {
		return Priority{}, err
	}

	s.notifier.Publish("Priority Updated", p)
	return p, nil
}

func (s *PriorityService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrBadArguments
	}

	cur, err := s.store.GetPriority(ctx, id)
	if err != nil {
		return err
	}
	if cur.Default {
		return ErrPriorityProtected
	}

	if err := s.store.DeletePriority(ctx, id); err != nil {
		return err
	}

	s.notifier.Publish("Priority Deleted", cur)
	return nil
}
