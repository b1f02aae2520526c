package core_test

import (
	"context"
	"errors"
	"testing"

	"taskflow-service/adapters/memstore"
	"taskflow-service/core"
)

func newHistoryService(t *testing.T) (*memstore.Store, *core.HistoryService, core.Task) {
	t.Helper()

	store := memstore.New()
	user := mustCreateUser(t, store, "Ana", "ana@example.com")
	priority := mustCreatePriority(t, store, "alta", true)
	task := mustCreateTask(t, store, priority.ID, user.ID)

	return store, core.NewHistoryService(discardLogger(), store), task
}

func TestHistoryCreate_EmptyAction(t *testing.T) {
	t.Parallel()

	_, svc, task := newHistoryService(t)

	_, err := svc.Create(context.Background(), task.ID, "  ")
	if !errors.Is(err, core.ErrBadArguments) {
		t.Fatalf("expected ErrBadArguments, got %v", err)
	}
}

func TestHistoryCreate_TaskNotFound(t *testing.T) {
	t.Parallel()

	_, svc, _ := newHistoryService(t)

	_, err := svc.Create(context.Background(), 999, "Task created")
	if !errors.Is(err, core.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestHistoryGetByTask_NewestFirst(t *testing.T) {
	t.Parallel()

	_, svc, task := newHistoryService(t)

	for _, action := range []string{"first", "second", "third"} {
		if _, err := svc.Create(context.Background(), task.ID, action); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	entries, err := svc.GetByTask(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("GetByTask returned error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	want := []string{"third", "second", "first"}
	for i := range want {
		if entries[i].Action != want[i] {
			t.Fatalf("expected action %q at %d, got %q", want[i], i, entries[i].Action)
		}
	}
}

func TestHistoryGetByTask_EmptyTrail(t *testing.T) {
	t.Parallel()

	_, svc, task := newHistoryService(t)

	entries, err := svc.GetByTask(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("GetByTask returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty trail, got %d entries", len(entries))
	}
}
