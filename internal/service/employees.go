package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/cantineo/internal/calculator"
	"github.com/mmynk/cantineo/internal/metrics"
	"github.com/mmynk/cantineo/internal/models"
	"github.com/mmynk/cantineo/internal/storage"
)

// EmployeeService manages employees and their per-employee views.
type EmployeeService struct {
	store   storage.Store
	metrics *metrics.Metrics
}

// NewEmployeeService creates a new EmployeeService. m may be nil.
func NewEmployeeService(store storage.Store, m *metrics.Metrics) *EmployeeService {
	return &EmployeeService{store: store, metrics: m}
}

// Add creates an employee with a fresh ID.
func (s *EmployeeService) Add(ctx context.Context, name string) (*models.Employee, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	employee := &models.Employee{ID: uuid.New().String(), Name: name}
	if err := s.store.PutEmployee(ctx, employee); err != nil {
		slog.Error("Add employee failed", "error", err)
		s.metrics.Failure("add_employee")
		return nil, err
	}

	slog.Info("Employee added", "employee_id", employee.ID)
	return employee, nil
}

// Rename changes the display name of an existing employee.
func (s *EmployeeService) Rename(ctx context.Context, id, name string) (*models.Employee, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	employee, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		slog.Error("Rename employee failed", "employee_id", id, "error", err)
		return nil, err
	}
	if employee == nil {
		return nil, fmt.Errorf("%w: %s", storage.ErrEmployeeNotFound, id)
	}

	employee.Name = name
	if err := s.store.PutEmployee(ctx, employee); err != nil {
		slog.Error("Rename employee failed", "employee_id", id, "error", err)
		s.metrics.Failure("rename_employee")
		return nil, err
	}

	slog.Info("Employee renamed", "employee_id", id)
	return employee, nil
}

// Delete removes an employee together with all of its meals and payments.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteEmployee(ctx, id); err != nil {
		slog.Error("Delete employee failed", "employee_id", id, "error", err)
		s.metrics.Failure("delete_employee")
		return err
	}

	s.metrics.EmployeeDeleted()
	slog.Info("Employee deleted", "employee_id", id)
	return nil
}

// Get returns an employee with its meals and payments, or nil if unknown.
func (s *EmployeeService) Get(ctx context.Context, id string) (*models.EmployeeWithRecords, error) {
	employee, err := s.store.GetEmployee(ctx, id)
	if err != nil || employee == nil {
		return nil, err
	}

	meals, err := s.store.ListMealsForEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.ListPaymentsForEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.EmployeeWithRecords{
		Employee: *employee,
		Meals:    meals,
		Payments: payments,
	}, nil
}

// ListWithBalances returns the balance breakdown at price of every employee
// whose name contains query, ignoring case. An empty query matches everyone.
func (s *EmployeeService) ListWithBalances(ctx context.Context, price decimal.Decimal, query string) ([]calculator.EmployeeBalance, error) {
	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		slog.Error("List employees failed", "error", err)
		return nil, err
	}
	employees = filterByName(employees, query)
	meals, err := s.store.ListMeals(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.ListPayments(ctx)
	if err != nil {
		return nil, err
	}

	return calculator.EmployeeBalances(employees, meals, payments, price), nil
}

func filterByName(employees []*models.Employee, query string) []*models.Employee {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return employees
	}

	var matched []*models.Employee
	for _, e := range employees {
		if strings.Contains(strings.ToLower(e.Name), query) {
			matched = append(matched, e)
		}
	}
	return matched
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: employee name is required", storage.ErrInvalidArgument)
	}
	return name, nil
}
