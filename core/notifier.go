package core

import "log/slog"

// Observer receives an event name and the post-mutation snapshot. Observers
// cannot fail the mutation that triggered them.
type Observer[T any] func(event string, payload T)

// Notifier invokes registered observers synchronously, in registration order.
// The registry is filled at service construction and read-only afterwards,
// so concurrent Publish calls are safe.
type Notifier[T any] struct {
	observers []Observer[T]
}

func (n *Notifier[T]) Subscribe(o Observer[T]) {
	n.observers = append(n.observers, o)
}

func (n *Notifier[T]) Publish(event string, payload T) {
	for _, o := range n.observers {
		o(event, payload)
	}
}

// LogObserver writes every event to the service log.
func LogObserver[T any](log *slog.Logger) Observer[T] {
	return func(event string, payload T) {
		log.Info("event", "name", event, "payload", payload)
	}
}
