package core_test

import (
	"context"
	"testing"

	"taskflow-service/adapters/memstore"
	"taskflow-service/core"
)

func TestNotifierPublishesInRegistrationOrder(t *testing.T) {
	t.Parallel()

	var n core.Notifier[int]
	var seen []string

	n.Subscribe(func(event string, payload int) {
		seen = append(seen, "first:"+event)
	})
	n.Subscribe(func(event string, payload int) {
		seen = append(seen, "second:"+event)
	})

	n.Publish("Created", 1)

	if len(seen) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(seen))
	}
	if seen[0] != "first:Created" || seen[1] != "second:Created" {
		t.Fatalf("unexpected delivery order: %v", seen)
	}
}

func TestNotifierWithoutObserversIsNoop(t *testing.T) {
	t.Parallel()

	var n core.Notifier[string]
	n.Publish("Created", "payload")
}

func TestServiceDeliversEventsToSubscribers(t *testing.T) {
	t.Parallel()

	svc := core.NewPriorityService(discardLogger(), memstore.New())

	var events []string
	svc.Subscribe(func(event string, _ core.Priority) {
		events = append(events, event)
	})

	p, err := svc.Create(context.Background(), "urgente", false)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), p.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	want := []string{"Priority Created", "Priority Deleted"}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %v", len(want), events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("expected event %q at %d, got %q", want[i], i, events[i])
		}
	}
}
