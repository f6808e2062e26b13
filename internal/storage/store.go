// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mmynk/cantineo/internal/models"
)

// Store defines the interface for cafeteria bookkeeping storage.
// This abstraction allows swapping storage backends without changing the
// service layer.
//
// Single-key lookups return (nil, nil) when the record does not exist.
// Returned records are fresh copies; callers may mutate them freely.
type Store interface {
	// Initialize ensures the schema exists and seeds the settings singleton
	// with the default meal price if none is stored. It is idempotent.
	Initialize(ctx context.Context) error

	// ListEmployees returns every employee. Order is unspecified.
	ListEmployees(ctx context.Context) ([]*models.Employee, error)

	// GetEmployee retrieves an employee by ID.
	GetEmployee(ctx context.Context, id string) (*models.Employee, error)

	// PutEmployee inserts or replaces an employee by ID.
	PutEmployee(ctx context.Context, employee *models.Employee) error

	// DeleteEmployee removes the employee together with all of its meals and
	// payments. Either everything is removed or nothing is.
	DeleteEmployee(ctx context.Context, id string) error

	// ListMeals returns every meal record.
	ListMeals(ctx context.Context) ([]*models.MealRecord, error)

	// ListMealsForEmployee returns the meals of one employee.
	ListMealsForEmployee(ctx context.Context, employeeID string) ([]*models.MealRecord, error)

	// ListMealsForDate returns the meals whose date equals date exactly.
	ListMealsForDate(ctx context.Context, date string) ([]*models.MealRecord, error)

	// PutMeal inserts or replaces a meal by ID. A second meal for the same
	// employee and day is rejected with ErrDuplicateMeal.
	PutMeal(ctx context.Context, meal *models.MealRecord) error

	// DeleteMeal removes a meal by ID.
	DeleteMeal(ctx context.Context, id string) error

	// ListPayments returns every payment record.
	ListPayments(ctx context.Context) ([]*models.PaymentRecord, error)

	// ListPaymentsForEmployee returns the payments of one employee.
	ListPaymentsForEmployee(ctx context.Context, employeeID string) ([]*models.PaymentRecord, error)

	// ListPaymentsForDate returns the payments whose date equals date exactly.
	ListPaymentsForDate(ctx context.Context, date string) ([]*models.PaymentRecord, error)

	// PutPayment inserts or replaces a payment by ID.
	PutPayment(ctx context.Context, payment *models.PaymentRecord) error

	// RecordPayment inserts a payment and, in the same transaction, marks
	// the employee's oldest unpaid meals as paid, one per full mealPrice of
	// the amount. It returns the meals it marked.
	RecordPayment(ctx context.Context, payment *models.PaymentRecord, mealPrice decimal.Decimal) ([]*models.MealRecord, error)

	// GetSettings returns the settings singleton.
	GetSettings(ctx context.Context) (*models.AppSettings, error)

	// PutSettings replaces the settings singleton.
	PutSettings(ctx context.Context, settings *models.AppSettings) error

	// Ping checks that the underlying medium is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
