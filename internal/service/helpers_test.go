package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/divvly/divvly/internal/models"
	"github.com/divvly/divvly/internal/storage"
	"github.com/divvly/divvly/internal/storage/sqlite"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "divvly-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// createTestGroup creates a group with members A (creator), B, C.
func createTestGroup(t *testing.T, store storage.Store) *models.Group {
	t.Helper()

	svc := NewGroupService(store, 10)
	group, err := svc.CreateGroup(context.Background(), "Trip", "USDC",
		[]string{"Alice", "Bob", "Carol"},
		[]string{"A", "B", "C"},
	)
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return group
}
