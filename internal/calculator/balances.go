// Package calculator derives balances, payment allocations and statistics
// from already-loaded records. It performs no I/O.
package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/cantineo/internal/models"
)

// EmployeeBalance represents the balance information for one employee.
type EmployeeBalance struct {
	EmployeeID      string
	Name            string
	MealCount       int
	UnpaidMealCount int
	MealsCost       decimal.Decimal // MealCount × price
	TotalPaid       decimal.Decimal // Sum of payments
	Balance         decimal.Decimal // Positive = owes money
}

// Owes reports whether the employee still has money to pay.
func (b EmployeeBalance) Owes() bool {
	return b.Balance.IsPositive()
}

// Balance computes what one employee owes:
//
//	count(meals of employee) × mealPrice − Σ payments of employee
//
// Records of other employees are ignored, so callers may pass whole
// collections. Zero or negative means paid in full or overpaid.
func Balance(employeeID string, meals []*models.MealRecord, payments []*models.PaymentRecord, mealPrice decimal.Decimal) decimal.Decimal {
	mealCount := 0
	for _, m := range meals {
		if m.EmployeeID == employeeID {
			mealCount++
		}
	}

	paid := decimal.Zero
	for _, p := range payments {
		if p.EmployeeID == employeeID {
			paid = paid.Add(p.Amount)
		}
	}

	return mealPrice.Mul(decimal.NewFromInt(int64(mealCount))).Sub(paid)
}

// AggregateBalance sums Balance across employees. Records of employees not
// in the list do not contribute.
func AggregateBalance(employees []*models.Employee, meals []*models.MealRecord, payments []*models.PaymentRecord, mealPrice decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, e := range employees {
		total = total.Add(Balance(e.ID, meals, payments, mealPrice))
	}
	return total
}

// EmployeeBalances computes the per-employee breakdown shown next to each
// employee, sorted by name then ID.
func EmployeeBalances(employees []*models.Employee, meals []*models.MealRecord, payments []*models.PaymentRecord, mealPrice decimal.Decimal) []EmployeeBalance {
	byID := make(map[string]*EmployeeBalance, len(employees))
	balances := make([]*EmployeeBalance, 0, len(employees))
	for _, e := range employees {
		b := &EmployeeBalance{
			EmployeeID: e.ID,
			Name:       e.Name,
			MealsCost:  decimal.Zero,
			TotalPaid:  decimal.Zero,
		}
		byID[e.ID] = b
		balances = append(balances, b)
	}

	for _, m := range meals {
		if b, ok := byID[m.EmployeeID]; ok {
			b.MealCount++
			if !m.Paid {
				b.UnpaidMealCount++
			}
		}
	}
	for _, p := range payments {
		if b, ok := byID[p.EmployeeID]; ok {
			b.TotalPaid = b.TotalPaid.Add(p.Amount)
		}
	}

	result := make([]EmployeeBalance, len(balances))
	for i, b := range balances {
		b.MealsCost = mealPrice.Mul(decimal.NewFromInt(int64(b.MealCount)))
		b.Balance = b.MealsCost.Sub(b.TotalPaid)
		result[i] = *b
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].EmployeeID < result[j].EmployeeID
	})
	return result
}
