package calculator

import (
	"testing"

	"github.com/mmynk/cantineo/internal/models"
)

func TestSelectMealsToAllocate(t *testing.T) {
	tests := []struct {
		name    string
		meals   []*models.MealRecord
		amount  string
		price   string
		wantIDs []string
	}{
		{
			name: "12 at 5 covers two of three meals",
			meals: []*models.MealRecord{
				meal("m1", "alice", "2024-03-04", false),
				meal("m2", "alice", "2024-03-05", false),
				meal("m3", "alice", "2024-03-06", false),
			},
			amount:  "12",
			price:   "5",
			wantIDs: []string{"m1", "m2"},
		},
		{
			name: "less than one price covers nothing",
			meals: []*models.MealRecord{
				meal("m1", "alice", "2024-03-04", false),
			},
			amount:  "4",
			price:   "5",
			wantIDs: nil,
		},
		{
			name: "oldest unpaid meals first regardless of input order",
			meals: []*models.MealRecord{
				meal("m3", "alice", "2024-03-06", false),
				meal("m1", "alice", "2024-03-04", false),
				meal("m2", "alice", "2024-03-05", false),
			},
			amount:  "10",
			price:   "5",
			wantIDs: []string{"m1", "m2"},
		},
		{
			name: "paid meals are skipped",
			meals: []*models.MealRecord{
				meal("m1", "alice", "2024-03-04", true),
				meal("m2", "alice", "2024-03-05", false),
			},
			amount:  "10",
			price:   "5",
			wantIDs: []string{"m2"},
		},
		{
			name: "exact multiple covers every meal it can",
			meals: []*models.MealRecord{
				meal("m1", "alice", "2024-03-04", false),
				meal("m2", "alice", "2024-03-05", false),
			},
			amount:  "9.00",
			price:   "4.50",
			wantIDs: []string{"m1", "m2"},
		},
		{
			name: "zero price selects nothing",
			meals: []*models.MealRecord{
				meal("m1", "alice", "2024-03-04", false),
			},
			amount:  "10",
			price:   "0",
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectMealsToAllocate(tt.meals, d(tt.amount), d(tt.price))
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("selected %d meals, want %d", len(got), len(tt.wantIDs))
			}
			for i, m := range got {
				if m.ID != tt.wantIDs[i] {
					t.Errorf("meal %d = %s, want %s", i, m.ID, tt.wantIDs[i])
				}
				if !m.Paid {
					t.Errorf("meal %s should be marked paid", m.ID)
				}
			}
		})
	}
}

func TestSelectMealsToAllocateDoesNotMutateInput(t *testing.T) {
	meals := []*models.MealRecord{meal("m1", "alice", "2024-03-04", false)}
	SelectMealsToAllocate(meals, d("5"), d("5"))
	if meals[0].Paid {
		t.Error("input meal was modified")
	}
}
