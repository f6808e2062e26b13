package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mmynk/cantineo/internal/metrics"
	"github.com/mmynk/cantineo/internal/models"
	"github.com/mmynk/cantineo/internal/storage"
)

// MealService records which employees ate on which day.
type MealService struct {
	store   storage.Store
	metrics *metrics.Metrics
}

// NewMealService creates a new MealService. m may be nil.
func NewMealService(store storage.Store, m *metrics.Metrics) *MealService {
	return &MealService{store: store, metrics: m}
}

// SetMealsForDate makes the meals of date match the selected employees:
// newly selected employees get an unpaid meal, unselected ones lose theirs,
// and meals that stay selected are left untouched so their paid flag
// survives. It returns the meals of the day afterwards.
func (s *MealService) SetMealsForDate(ctx context.Context, date string, employeeIDs []string) ([]*models.MealRecord, error) {
	if err := models.ValidateDate(date); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrInvalidArgument, err)
	}

	selected := make(map[string]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		if selected[id] {
			continue
		}
		employee, err := s.store.GetEmployee(ctx, id)
		if err != nil {
			return nil, err
		}
		if employee == nil {
			return nil, fmt.Errorf("%w: %s", storage.ErrEmployeeNotFound, id)
		}
		selected[id] = true
	}

	existing, err := s.store.ListMealsForDate(ctx, date)
	if err != nil {
		slog.Error("SetMealsForDate failed to load meals", "date", date, "error", err)
		return nil, err
	}

	present := make(map[string]bool, len(existing))
	removed := 0
	for _, meal := range existing {
		if selected[meal.EmployeeID] {
			present[meal.EmployeeID] = true
			continue
		}
		if err := s.store.DeleteMeal(ctx, meal.ID); err != nil {
			slog.Error("SetMealsForDate failed to delete meal", "meal_id", meal.ID, "error", err)
			s.metrics.Failure("set_meals")
			return nil, err
		}
		removed++
	}

	added := 0
	for _, id := range employeeIDs {
		if present[id] {
			continue
		}
		meal := &models.MealRecord{
			ID:         uuid.New().String(),
			EmployeeID: id,
			Date:       date,
		}
		if err := s.store.PutMeal(ctx, meal); err != nil {
			slog.Error("SetMealsForDate failed to record meal", "employee_id", id, "error", err)
			s.metrics.Failure("set_meals")
			return nil, err
		}
		present[id] = true
		added++
	}

	s.metrics.MealsChanged(added, removed)
	slog.Info("Meals saved", "date", date, "added", added, "removed", removed, "meals_count", len(present))

	return s.store.ListMealsForDate(ctx, date)
}

// ListForDate returns the meals of one day.
func (s *MealService) ListForDate(ctx context.Context, date string) ([]*models.MealRecord, error) {
	if err := models.ValidateDate(date); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrInvalidArgument, err)
	}
	return s.store.ListMealsForDate(ctx, date)
}

// ListForEmployee returns the meals of one employee.
func (s *MealService) ListForEmployee(ctx context.Context, employeeID string) ([]*models.MealRecord, error) {
	return s.store.ListMealsForEmployee(ctx, employeeID)
}
