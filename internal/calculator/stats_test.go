package calculator

import (
	"testing"
	"time"

	"github.com/mmynk/cantineo/internal/models"
)

func TestLastDays(t *testing.T) {
	end := time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC)
	got := LastDays(end, 4)
	want := []string{"2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}
	if len(got) != len(want) {
		t.Fatalf("LastDays() returned %d days, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("day %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestMonthDays(t *testing.T) {
	tests := []struct {
		t     time.Time
		count int
		last  string
	}{
		{time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), 29, "2024-02-29"},
		{time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC), 28, "2023-02-28"},
		{time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC), 31, "2024-12-31"},
	}
	for _, tt := range tests {
		t.Run(tt.last, func(t *testing.T) {
			days := MonthDays(tt.t)
			if len(days) != tt.count {
				t.Fatalf("MonthDays() returned %d days, want %d", len(days), tt.count)
			}
			if days[len(days)-1] != tt.last {
				t.Errorf("last day = %s, want %s", days[len(days)-1], tt.last)
			}
		})
	}
}

func TestDailyTotals(t *testing.T) {
	meals := []*models.MealRecord{
		meal("m1", "alice", "2024-03-04", false),
		meal("m2", "bob", "2024-03-04", false),
		meal("m3", "alice", "2024-03-06", false),
	}
	totals := DailyTotals(meals, []string{"2024-03-04", "2024-03-05", "2024-03-06"}, d("5"))

	wantCounts := []int{2, 0, 1}
	for i, total := range totals {
		if total.Count != wantCounts[i] {
			t.Errorf("%s count = %d, want %d", total.Date, total.Count, wantCounts[i])
		}
	}
	if !totals[0].Value.Equal(d("10")) {
		t.Errorf("value = %s, want 10", totals[0].Value)
	}
}

func TestEmployeeTotals(t *testing.T) {
	employees := []*models.Employee{{ID: "a", Name: "Alice"}, {ID: "b", Name: "Bob"}, {ID: "c", Name: "Chloé"}}
	meals := []*models.MealRecord{
		meal("m1", "b", "2024-03-04", false),
		meal("m2", "b", "2024-03-05", false),
		meal("m3", "c", "2024-03-05", false),
		meal("m4", "a", "2024-03-05", false),
	}

	totals := EmployeeTotals(employees, meals, d("5"))
	wantOrder := []string{"Bob", "Alice", "Chloé"}
	for i, total := range totals {
		if total.Name != wantOrder[i] {
			t.Errorf("position %d = %s, want %s", i, total.Name, wantOrder[i])
		}
	}
	if totals[0].Count != 2 || !totals[0].Value.Equal(d("10")) {
		t.Errorf("Bob = %d meals / %s, want 2 / 10", totals[0].Count, totals[0].Value)
	}
}

func TestSummarize(t *testing.T) {
	employees := []*models.Employee{{ID: "a", Name: "Alice"}, {ID: "b", Name: "Bob"}}
	meals := []*models.MealRecord{
		meal("m1", "a", "2024-03-04", false),
		meal("m2", "b", "2024-03-04", true),
		meal("m3", "b", "2024-03-05", false),
	}
	payments := []*models.PaymentRecord{
		payment("p1", "b", "2024-03-05", "7.5"),
	}

	summary := Summarize(employees, meals, payments, d("5"))
	if summary.EmployeeCount != 2 || summary.TotalMeals != 3 {
		t.Errorf("counts = %d employees / %d meals, want 2 / 3", summary.EmployeeCount, summary.TotalMeals)
	}
	if !summary.TotalValue.Equal(d("15")) || !summary.TotalPayments.Equal(d("7.5")) {
		t.Errorf("value/payments = %s/%s, want 15/7.5", summary.TotalValue, summary.TotalPayments)
	}
	if !summary.OutstandingBalance.Equal(AggregateBalance(employees, meals, payments, d("5"))) {
		t.Errorf("outstanding %s does not match AggregateBalance", summary.OutstandingBalance)
	}
}
