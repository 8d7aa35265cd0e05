package testutil

import (
	"context"
	"testing"

	"github.com/wanderlog/expenseclient/internal/storage"
	"github.com/wanderlog/expenseclient/internal/storage/memory"
	"github.com/wanderlog/expenseclient/internal/storage/sqlite"
)

// SetupTestStore returns a seeded in-memory store. Every test gets a fresh
// copy of the fixture data.
func SetupTestStore(t *testing.T) storage.Store {
	t.Helper()

	store := memory.New()

	if err := store.ApplyMigrations(context.Background(), TestLogger(t)); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	if err := store.SeedFixtures(context.Background()); err != nil {
		t.Fatalf("Failed to seed fixtures: %v", err)
	}

	return store
}

// SetupTestSQLiteStore returns a seeded sqlite store backed by an in-memory
// database.
func SetupTestSQLiteStore(t *testing.T) storage.Store {
	t.Helper()

	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err = store.ApplyMigrations(context.Background(), TestLogger(t)); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	if err = store.SeedFixtures(context.Background()); err != nil {
		t.Fatalf("Failed to seed fixtures: %v", err)
	}

	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})

	return store
}
