package core_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"taskflow-service/adapters/memstore"
	"taskflow-service/core"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeHasher makes hashes predictable so tests can assert on them.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("hash mismatch")
	}
	return nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(userID int64, email string) (string, error) {
	return fmt.Sprintf("token-%d-%s", userID, email), nil
}

func mustCreateUser(t *testing.T, store *memstore.Store, name, email string) core.User {
	t.Helper()

	u, err := store.CreateUser(context.Background(), core.User{
		Name:         name,
		Email:        email,
		PasswordHash: "hashed:secret123",
	})
	if err != nil {
		t.Fatalf("failed to prepare user: %v", err)
	}
	return u
}

func mustCreatePriority(t *testing.T, store *memstore.Store, level string, isDefault bool) core.Priority {
	t.Helper()

	p, err := store.CreatePriority(context.Background(), level, isDefault)
	if err != nil {
		t.Fatalf("failed to prepare priority: %v", err)
	}
	return p
}

func mustCreateTag(t *testing.T, store *memstore.Store, name string) core.Tag {
	t.Helper()

	tag, err := store.CreateTag(context.Background(), name, nil)
	if err != nil {
		t.Fatalf("failed to prepare tag: %v", err)
	}
	return tag
}

func mustCreateTask(t *testing.T, store *memstore.Store, priorityID, creatorID int64) core.Task {
	t.Helper()

	task, err := store.CreateTask(context.Background(), core.Task{
		Title:      "task",
		Status:     core.StatusPendente,
		PriorityID: priorityID,
		CreatorID:  creatorID,
	})
	if err != nil {
		t.Fatalf("failed to prepare task: %v", err)
	}
	return task
}
