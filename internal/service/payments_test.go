package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/cantineo/internal/calculator"
	"github.com/mmynk/cantineo/internal/models"
	"github.com/mmynk/cantineo/internal/storage"
)

// failingStore rejects every RecordPayment call.
type failingStore struct {
	storage.Store
}

func (failingStore) RecordPayment(context.Context, *models.PaymentRecord, decimal.Decimal) ([]*models.MealRecord, error) {
	return nil, fmt.Errorf("%w: disk full", storage.ErrTransactionFailed)
}

func setupPaymentTest(t *testing.T, days ...string) (storage.Store, *PaymentService, string) {
	t.Helper()

	store := setupTestStore(t)
	ids := addEmployees(t, NewEmployeeService(store, nil), "Alice")
	meals := NewMealService(store, nil)
	for _, day := range days {
		if _, err := meals.SetMealsForDate(context.Background(), day, ids); err != nil {
			t.Fatalf("SetMealsForDate(%s) failed: %v", day, err)
		}
	}
	return store, NewPaymentService(store, nil), ids[0]
}

func paidDates(t *testing.T, store storage.Store, employeeID string) []string {
	t.Helper()

	meals, err := store.ListMealsForEmployee(context.Background(), employeeID)
	if err != nil {
		t.Fatalf("ListMealsForEmployee failed: %v", err)
	}
	var dates []string
	for _, m := range meals {
		if m.Paid {
			dates = append(dates, m.Date)
		}
	}
	return dates
}

func TestRecordPaymentAndAllocate(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		wantPaid  []string
		wantOwed  string
		wantCount int
	}{
		{
			name:      "covers the two oldest meals",
			amount:    "12",
			wantPaid:  []string{"2024-01-01", "2024-01-02"},
			wantOwed:  "3",
			wantCount: 2,
		},
		{
			name:      "less than a meal marks nothing",
			amount:    "4",
			wantOwed:  "11",
			wantCount: 0,
		},
		{
			name:      "exact multiple",
			amount:    "15",
			wantPaid:  []string{"2024-01-01", "2024-01-02", "2024-01-03"},
			wantOwed:  "0",
			wantCount: 3,
		},
		{
			name:      "overpayment caps at unpaid meals",
			amount:    "100",
			wantPaid:  []string{"2024-01-01", "2024-01-02", "2024-01-03"},
			wantOwed:  "-85",
			wantCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Created out of order on purpose.
			store, svc, employeeID := setupPaymentTest(t, "2024-01-03", "2024-01-01", "2024-01-02")
			ctx := context.Background()

			payment, allocated, err := svc.RecordPaymentAndAllocate(ctx, employeeID, dec(tt.amount), "2024-01-10", dec("5"))
			if err != nil {
				t.Fatalf("RecordPaymentAndAllocate failed: %v", err)
			}
			if !payment.Amount.Equal(dec(tt.amount)) {
				t.Errorf("amount: expected %s, got %s", tt.amount, payment.Amount)
			}
			if len(allocated) != tt.wantCount {
				t.Errorf("allocated: expected %d meals, got %d", tt.wantCount, len(allocated))
			}

			got := paidDates(t, store, employeeID)
			if len(got) != len(tt.wantPaid) {
				t.Fatalf("paid dates: expected %v, got %v", tt.wantPaid, got)
			}
			for i := range got {
				if got[i] != tt.wantPaid[i] {
					t.Errorf("paid dates: expected %v, got %v", tt.wantPaid, got)
					break
				}
			}

			payments, _ := store.ListPaymentsForEmployee(ctx, employeeID)
			if len(payments) != 1 {
				t.Fatalf("expected payment to be stored, got %d payments", len(payments))
			}
			meals, _ := store.ListMealsForEmployee(ctx, employeeID)
			owed := calculator.Balance(employeeID, meals, payments, dec("5"))
			if !owed.Equal(dec(tt.wantOwed)) {
				t.Errorf("balance: expected %s, got %s", tt.wantOwed, owed)
			}
		})
	}
}

func TestRecordPaymentAndAllocate_SkipsPaidMeals(t *testing.T) {
	store, svc, employeeID := setupPaymentTest(t, "2024-01-01", "2024-01-02", "2024-01-03")
	ctx := context.Background()

	if _, _, err := svc.RecordPaymentAndAllocate(ctx, employeeID, dec("5"), "2024-01-04", dec("5")); err != nil {
		t.Fatalf("first payment failed: %v", err)
	}
	_, allocated, err := svc.RecordPaymentAndAllocate(ctx, employeeID, dec("5"), "2024-01-05", dec("5"))
	if err != nil {
		t.Fatalf("second payment failed: %v", err)
	}
	if len(allocated) != 1 || allocated[0].Date != "2024-01-02" {
		t.Errorf("expected the second payment to cover 2024-01-02, got %+v", allocated)
	}
	if got := paidDates(t, store, employeeID); len(got) != 2 {
		t.Errorf("expected 2 paid meals, got %v", got)
	}
}

func TestRecordPaymentAndAllocate_Invalid(t *testing.T) {
	_, svc, employeeID := setupPaymentTest(t, "2024-01-01")
	ctx := context.Background()

	tests := []struct {
		name       string
		employeeID string
		amount     string
		date       string
		wantErr    error
	}{
		{"zero amount", employeeID, "0", "2024-01-02", storage.ErrInvalidArgument},
		{"negative amount", employeeID, "-5", "2024-01-02", storage.ErrInvalidArgument},
		{"bad date", employeeID, "5", "2024-1-2", storage.ErrInvalidArgument},
		{"missing employee id", "", "5", "2024-01-02", storage.ErrInvalidArgument},
		{"unknown employee", "nonexistent-id", "5", "2024-01-02", storage.ErrEmployeeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.RecordPaymentAndAllocate(ctx, tt.employeeID, dec(tt.amount), tt.date, dec("5"))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRecordPaymentAndAllocate_StoreFailure(t *testing.T) {
	store, _, employeeID := setupPaymentTest(t, "2024-01-01")
	svc := NewPaymentService(failingStore{Store: store}, nil)
	ctx := context.Background()

	_, _, err := svc.RecordPaymentAndAllocate(ctx, employeeID, dec("5"), "2024-01-02", dec("5"))
	if !errors.Is(err, storage.ErrTransactionFailed) {
		t.Fatalf("expected ErrTransactionFailed, got %v", err)
	}
	if !storage.IsRetryable(err) {
		t.Error("expected failure to be retryable")
	}

	payments, _ := store.ListPaymentsForEmployee(ctx, employeeID)
	if len(payments) != 0 {
		t.Errorf("expected no payment, got %d", len(payments))
	}
	if got := paidDates(t, store, employeeID); len(got) != 0 {
		t.Errorf("expected no paid meals, got %v", got)
	}
}

func TestRecordPaymentAndAllocate_Concurrent(t *testing.T) {
	store, svc, employeeID := setupPaymentTest(t, "2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04")
	ctx := context.Background()

	const payers = 4
	var wg sync.WaitGroup
	allocated := make([][]*models.MealRecord, payers)
	errs := make([]error, payers)
	for i := 0; i < payers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, allocated[i], errs[i] = svc.RecordPaymentAndAllocate(ctx, employeeID, dec("5"), "2024-01-05", dec("5"))
		}(i)
	}
	wg.Wait()

	claimed := map[string]int{}
	for i := 0; i < payers; i++ {
		if errs[i] != nil {
			t.Fatalf("payment %d failed: %v", i, errs[i])
		}
		for _, m := range allocated[i] {
			claimed[m.ID]++
		}
	}
	if len(claimed) != payers {
		t.Errorf("expected %d distinct meals claimed, got %v", payers, claimed)
	}
	for id, n := range claimed {
		if n != 1 {
			t.Errorf("meal %s claimed %d times", id, n)
		}
	}
	if got := paidDates(t, store, employeeID); len(got) != payers {
		t.Errorf("expected %d paid meals, got %v", payers, got)
	}
}

func TestListPaymentsForDate(t *testing.T) {
	_, svc, employeeID := setupPaymentTest(t, "2024-01-01")
	ctx := context.Background()

	svc.RecordPaymentAndAllocate(ctx, employeeID, dec("5"), "2024-01-02", dec("5"))
	svc.RecordPaymentAndAllocate(ctx, employeeID, dec("3"), "2024-01-03", dec("5"))

	payments, err := svc.ListForDate(ctx, "2024-01-03")
	if err != nil {
		t.Fatalf("ListForDate failed: %v", err)
	}
	if len(payments) != 1 || !payments[0].Amount.Equal(dec("3")) {
		t.Errorf("unexpected payments: %+v", payments)
	}

	if _, err := svc.ListForDate(ctx, "03/01/2024"); !errors.Is(err, storage.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}
