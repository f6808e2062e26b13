package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/cantineo/internal/calculator"
	"github.com/mmynk/cantineo/internal/metrics"
	"github.com/mmynk/cantineo/internal/models"
	"github.com/mmynk/cantineo/internal/storage"
)

// Dashboard is the overview shown on the home page.
type Dashboard struct {
	Date               string
	EmployeeCount      int
	MealsToday         int
	OutstandingBalance decimal.Decimal
	MealPrice          decimal.Decimal
}

// Statistics is the detailed report of the statistics page.
type Statistics struct {
	Summary   calculator.Summary
	MealPrice decimal.Decimal
	LastWeek  []calculator.DayTotal
	Month     []calculator.DayTotal
	Employees []calculator.EmployeeTotal
}

// ReportService builds read-only reports from the store.
type ReportService struct {
	store    storage.Store
	settings *SettingsService
	metrics  *metrics.Metrics
}

// NewReportService creates a new ReportService. m may be nil.
func NewReportService(store storage.Store, settings *SettingsService, m *metrics.Metrics) *ReportService {
	return &ReportService{store: store, settings: settings, metrics: m}
}

type snapshot struct {
	employees []*models.Employee
	meals     []*models.MealRecord
	payments  []*models.PaymentRecord
	price     decimal.Decimal
}

func (s *ReportService) load(ctx context.Context) (*snapshot, error) {
	price, err := s.settings.GetMealPrice(ctx)
	if err != nil {
		return nil, err
	}
	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	meals, err := s.store.ListMeals(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.ListPayments(ctx)
	if err != nil {
		return nil, err
	}
	return &snapshot{employees: employees, meals: meals, payments: payments, price: price}, nil
}

// Dashboard summarizes the day containing today.
func (s *ReportService) Dashboard(ctx context.Context, today time.Time) (*Dashboard, error) {
	snap, err := s.load(ctx)
	if err != nil {
		slog.Error("Dashboard failed", "error", err)
		return nil, err
	}

	date := models.FormatDate(today)
	mealsToday := 0
	for _, m := range snap.meals {
		if m.Date == date {
			mealsToday++
		}
	}

	outstanding := calculator.AggregateBalance(snap.employees, snap.meals, snap.payments, snap.price)
	s.metrics.SetOutstandingBalance(outstanding)

	return &Dashboard{
		Date:               date,
		EmployeeCount:      len(snap.employees),
		MealsToday:         mealsToday,
		OutstandingBalance: outstanding,
		MealPrice:          snap.price,
	}, nil
}

// Statistics reports the last seven days, the month of now and the
// per-employee distribution.
func (s *ReportService) Statistics(ctx context.Context, now time.Time) (*Statistics, error) {
	snap, err := s.load(ctx)
	if err != nil {
		slog.Error("Statistics failed", "error", err)
		return nil, err
	}

	summary := calculator.Summarize(snap.employees, snap.meals, snap.payments, snap.price)
	s.metrics.SetOutstandingBalance(summary.OutstandingBalance)

	return &Statistics{
		Summary:   summary,
		MealPrice: snap.price,
		LastWeek:  calculator.DailyTotals(snap.meals, calculator.LastDays(now, 7), snap.price),
		Month:     calculator.DailyTotals(snap.meals, calculator.MonthDays(now), snap.price),
		Employees: calculator.EmployeeTotals(snap.employees, snap.meals, snap.price),
	}, nil
}
