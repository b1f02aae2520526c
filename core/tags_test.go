package core_test

import (
	"context"
	"errors"
	"testing"

	"taskflow-service/adapters/memstore"
	"taskflow-service/core"
)

func newTagService() (*memstore.Store, *core.TagService) {
	store := memstore.New()
	return store, core.NewTagService(discardLogger(), store)
}

func TestTagCreate_EmptyName(t *testing.T) {
	t.Parallel()

	_, svc := newTagService()

	_, err := svc.Create(context.Background(), "  ", nil)
	if !errors.Is(err, core.ErrBadArguments) {
		t.Fatalf("expected ErrBadArguments, got %v", err)
	}
}

func TestTagCreate_InvalidColor(t *testing.T) {
	t.Parallel()

	_, svc := newTagService()

	color := "not-a-color"
	_, err := svc.Create(context.Background(), "bug", &color)
	if !errors.Is(err, core.ErrBadArguments) {
		t.Fatalf("expected ErrBadArguments, got %v", err)
	}
}

func TestTagCreate_DuplicateName(t *testing.T) {
	t.Parallel()

	store, svc := newTagService()
	mustCreateTag(t, store, "bug")

	// a different color does not make the name available
	color := "#FF0000"
	_, err := svc.Create(context.Background(), "bug", &color)
	if !errors.Is(err, core.ErrTagExists) {
		t.Fatalf("expected ErrTagExists, got %v", err)
	}
}

func TestTagCreate_WithColor(t *testing.T) {
	t.Parallel()

	_, svc := newTagService()

	color := "#00FF00"
	tag, err := svc.Create(context.Background(), "feature", &color)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if tag.Color == nil || *tag.Color != color {
		t.Fatalf("expected color %q, got %v", color, tag.Color)
	}
}

func TestTagUpdate_RenameToExistingName(t *testing.T) {
	t.Parallel()

	store, svc := newTagService()
	mustCreateTag(t, store, "bug")
	other := mustCreateTag(t, store, "feature")

	name := "bug"
	_, err := svc.Update(context.Background(), other.ID, core.TagPatch{Name: &name})
	if !errors.Is(err, core.ErrTagExists) {
		t.Fatalf("expected ErrTagExists, got %v", err)
	}
}

func TestTagUpdate_KeepOwnNameChangeColor(t *testing.T) {
	t.Parallel()

	store, svc := newTagService()
	tag := mustCreateTag(t, store, "bug")

	// resubmitting the tag's own name is not a conflict
	name := "bug"
	color := "#123ABC"
	updated, err := svc.Update(context.Background(), tag.ID, core.TagPatch{Name: &name, Color: &color})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Color == nil || *updated.Color != color {
		t.Fatalf("expected color %q, got %v", color, updated.Color)
	}
}

func TestTagDelete_NotFound(t *testing.T) {
	t.Parallel()

	_, svc := newTagService()

	if err := svc.Delete(context.Background(), 999); !errors.Is(err, core.ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}
}
