package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/cantineo/internal/storage/sqlite"
)

// setupTestStore creates an initialized SQLite store in a temp directory.
func setupTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// addEmployees creates one employee per name and returns their IDs in order.
func addEmployees(t *testing.T, svc *EmployeeService, names ...string) []string {
	t.Helper()

	ids := make([]string, len(names))
	for i, name := range names {
		e, err := svc.Add(context.Background(), name)
		if err != nil {
			t.Fatalf("Add(%s) failed: %v", name, err)
		}
		ids[i] = e.ID
	}
	return ids
}
