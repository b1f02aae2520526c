package core

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

type TagService struct {
	store    Store
	notifier Notifier[Tag]
}

func NewTagService(log *slog.Logger, store Store) *TagService {
	s := &TagService{store: store}
	s.notifier.Subscribe(LogObserver[Tag](log))
	return s
}

func (s *TagService) Subscribe(o Observer[Tag]) {
	s.notifier.Subscribe(o)
}

func (s *TagService) Create(ctx context.Context, name string, color *string) (Tag, error) {
	if emptyTrimmed(name) {
		return Tag{}, ErrBadArguments
	}
	if color != nil && !ValidHexColor(*color) {
		return Tag{}, ErrBadArguments
	}

	name = strings.TrimSpace(name)

	// fast-path check; the unique constraint in the store is the authoritative guard
	if _, err := s.store.GetTagByName(ctx, name); err == nil {
		return Tag{}, ErrTagExists
	} else if !errors.Is(err, ErrTagNotFound) {
		return Tag{}, err
	}

	t, err := s.store.CreateTag(ctx, name, color)
	if err != nil {
		return Tag{}, err
	}

	s.notifier.Publish("Tag Created", t)
	return t, nil
}

func (s *TagService) GetByID(ctx context.Context, id int64) (Tag, error) {
	if id <= 0 {
		return Tag{}, ErrBadArguments
	}
	return s.store.GetTag(ctx, id)
}

func (s *TagService) GetAll(ctx context.Context) ([]Tag, error) {
	return s.store.ListTags(ctx)
}

type TagPatch struct {
	Name  *string
	Color *string
}

func (s *TagService) Update(ctx context.Context, id int64, patch TagPatch) (Tag, error) {
	if id <= 0 {
		return Tag{}, ErrBadArguments
	}
	if patch.Name == nil && patch.Color == nil {
		return Tag{}, ErrBadArguments
	}
	if patch.Name != nil && emptyTrimmed(*patch.Name) {
		return Tag{}, ErrBadArguments
	}
	if patch.Color != nil && !ValidHexColor(*patch.Color) {
		return Tag{}, ErrBadArguments
	}

	cur, err := s.store.GetTag(ctx, id)
	if err != nil {
		return Tag{}, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		// uniqueness excluding self
		if other, err := s.store.GetTagByName(ctx, name); err == nil {
			if other.ID != id {
				return Tag{}, ErrTagExists
			}
		} else if !errors.Is(err, ErrTagNotFound) {
			return Tag{}, err
		}
		cur.Name = name
	}
	if patch.Color != nil {
		cur.Color = patch.Color
	}

	t, err := s.store.UpdateTag(ctx, cur)
	if err != nil {
		return Tag{}, err
	}

	s.notifier.Publish("Tag Updated", t)
	return t, nil
}

func (s *TagService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrBadArguments
	}

	cur, err := s.store.GetTag(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteTag(ctx, id); err != nil {
		return err
	}

	s.notifier.Publish("Tag Deleted", cur)
	return nil
}
