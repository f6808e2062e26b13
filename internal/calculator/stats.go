package calculator

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/cantineo/internal/models"
)

// DayTotal is the number and value of meals taken on one day.
type DayTotal struct {
	Date  string
	Count int
	Value decimal.Decimal
}

// EmployeeTotal is the number and value of meals taken by one employee.
type EmployeeTotal struct {
	EmployeeID string
	Name       string
	Count      int
	Value      decimal.Decimal
}

// Summary holds the cafeteria-wide totals.
type Summary struct {
	EmployeeCount      int
	TotalMeals         int
	TotalValue         decimal.Decimal
	TotalPayments      decimal.Decimal
	OutstandingBalance decimal.Decimal
}

// LastDays returns the n calendar days ending with end's day, oldest first.
func LastDays(end time.Time, n int) []string {
	days := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		days = append(days, models.FormatDate(end.AddDate(0, 0, -i)))
	}
	return days
}

// MonthDays returns every calendar day of t's month, in order.
func MonthDays(t time.Time) []string {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	var days []string
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		days = append(days, models.FormatDate(d))
	}
	return days
}

// DailyTotals counts the meals of each requested day. Days without meals
// are reported with a zero count.
func DailyTotals(meals []*models.MealRecord, days []string, mealPrice decimal.Decimal) []DayTotal {
	counts := make(map[string]int, len(days))
	for _, m := range meals {
		counts[m.Date]++
	}

	totals := make([]DayTotal, len(days))
	for i, day := range days {
		totals[i] = DayTotal{
			Date:  day,
			Count: counts[day],
			Value: mealPrice.Mul(decimal.NewFromInt(int64(counts[day]))),
		}
	}
	return totals
}

// EmployeeTotals counts the meals of each employee, most meals first.
// Ties are broken by name.
func EmployeeTotals(employees []*models.Employee, meals []*models.MealRecord, mealPrice decimal.Decimal) []EmployeeTotal {
	counts := make(map[string]int, len(employees))
	for _, m := range meals {
		counts[m.EmployeeID]++
	}

	totals := make([]EmployeeTotal, len(employees))
	for i, e := range employees {
		totals[i] = EmployeeTotal{
			EmployeeID: e.ID,
			Name:       e.Name,
			Count:      counts[e.ID],
			Value:      mealPrice.Mul(decimal.NewFromInt(int64(counts[e.ID]))),
		}
	}

	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].Count != totals[j].Count {
			return totals[i].Count > totals[j].Count
		}
		return totals[i].Name < totals[j].Name
	})
	return totals
}

// Summarize computes the cafeteria-wide totals. Only records of listed
// employees are counted, so the outstanding balance equals AggregateBalance.
func Summarize(employees []*models.Employee, meals []*models.MealRecord, payments []*models.PaymentRecord, mealPrice decimal.Decimal) Summary {
	known := make(map[string]bool, len(employees))
	for _, e := range employees {
		known[e.ID] = true
	}

	summary := Summary{
		EmployeeCount: len(employees),
		TotalPayments: decimal.Zero,
	}
	for _, m := range meals {
		if known[m.EmployeeID] {
			summary.TotalMeals++
		}
	}
	for _, p := range payments {
		if known[p.EmployeeID] {
			summary.TotalPayments = summary.TotalPayments.Add(p.Amount)
		}
	}
	summary.TotalValue = mealPrice.Mul(decimal.NewFromInt(int64(summary.TotalMeals)))
	summary.OutstandingBalance = summary.TotalValue.Sub(summary.TotalPayments)

	return summary
}
