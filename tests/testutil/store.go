// Package testutil provides shared helpers for store-backed tests.
package testutil

import (
	"context"
	"testing"

	"taskboard/internal/model"
	"taskboard/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// SeedUser inserts a user with the given ID and name and returns it.
func SeedUser(t *testing.T, s *store.SQLiteStore, id, name string) *model.User {
	t.Helper()

	user, err := s.CreateUser(context.Background(), model.User{ID: id, Name: name})
	if err != nil {
		t.Fatalf("seeding user %s: %v", id, err)
	}
	return user
}
