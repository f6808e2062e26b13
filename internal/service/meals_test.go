package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/cantineo/internal/metrics"
	"github.com/mmynk/cantineo/internal/storage"
)

func TestSetMealsForDate(t *testing.T) {
	store := setupTestStore(t)
	employees := NewEmployeeService(store, nil)
	svc := NewMealService(store, metrics.New(prometheus.NewRegistry()))
	ctx := context.Background()

	ids := addEmployees(t, employees, "Alice", "Bob", "Chloé")

	t.Run("selects employees", func(t *testing.T) {
		meals, err := svc.SetMealsForDate(ctx, "2024-03-04", ids[:2])
		if err != nil {
			t.Fatalf("SetMealsForDate failed: %v", err)
		}
		if len(meals) != 2 {
			t.Fatalf("expected 2 meals, got %d", len(meals))
		}
		for _, m := range meals {
			if m.Paid {
				t.Errorf("new meal %s should be unpaid", m.ID)
			}
		}
	})

	t.Run("toggling keeps one meal per employee and day", func(t *testing.T) {
		before, _ := svc.ListForDate(ctx, "2024-03-04")

		meals, err := svc.SetMealsForDate(ctx, "2024-03-04", []string{ids[1], ids[2], ids[2]})
		if err != nil {
			t.Fatalf("SetMealsForDate failed: %v", err)
		}
		if len(meals) != 2 {
			t.Fatalf("expected 2 meals, got %d", len(meals))
		}

		// Bob's meal survived unchanged, Alice's is gone, Chloé got one.
		var bobBefore string
		for _, m := range before {
			if m.EmployeeID == ids[1] {
				bobBefore = m.ID
			}
		}
		owners := map[string]string{}
		for _, m := range meals {
			owners[m.EmployeeID] = m.ID
		}
		if _, ok := owners[ids[0]]; ok {
			t.Error("expected Alice's meal to be removed")
		}
		if owners[ids[1]] != bobBefore {
			t.Error("expected Bob's meal to be kept as is")
		}
		if _, ok := owners[ids[2]]; !ok {
			t.Error("expected Chloé to get a meal")
		}
	})

	t.Run("empty selection clears the day", func(t *testing.T) {
		meals, err := svc.SetMealsForDate(ctx, "2024-03-04", nil)
		if err != nil {
			t.Fatalf("SetMealsForDate failed: %v", err)
		}
		if len(meals) != 0 {
			t.Errorf("expected no meals, got %d", len(meals))
		}
	})

	t.Run("other days are untouched", func(t *testing.T) {
		svc.SetMealsForDate(ctx, "2024-03-05", ids)
		svc.SetMealsForDate(ctx, "2024-03-06", ids[:1])

		meals, _ := svc.ListForDate(ctx, "2024-03-05")
		if len(meals) != 3 {
			t.Errorf("expected 3 meals on 2024-03-05, got %d", len(meals))
		}
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := svc.SetMealsForDate(ctx, "04/03/2024", ids)
		if !errors.Is(err, storage.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("unknown employee changes nothing", func(t *testing.T) {
		_, err := svc.SetMealsForDate(ctx, "2024-03-05", []string{"nonexistent-id"})
		if !errors.Is(err, storage.ErrEmployeeNotFound) {
			t.Errorf("expected ErrEmployeeNotFound, got %v", err)
		}
		meals, _ := svc.ListForDate(ctx, "2024-03-05")
		if len(meals) != 3 {
			t.Errorf("expected 3 meals to remain, got %d", len(meals))
		}
	})
}
