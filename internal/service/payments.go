package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/cantineo/internal/metrics"
	"github.com/mmynk/cantineo/internal/models"
	"github.com/mmynk/cantineo/internal/storage"
)

// PaymentService records payments and allocates them to unpaid meals.
type PaymentService struct {
	store   storage.Store
	metrics *metrics.Metrics
}

// NewPaymentService creates a new PaymentService. m may be nil.
func NewPaymentService(store storage.Store, m *metrics.Metrics) *PaymentService {
	return &PaymentService{store: store, metrics: m}
}

// RecordPaymentAndAllocate stores a payment of amount on date and marks the
// employee's oldest unpaid meals as paid, one per full mealPrice of amount.
// Meal selection and both writes happen in one store transaction. It
// returns the payment and the meals that were marked paid.
func (s *PaymentService) RecordPaymentAndAllocate(ctx context.Context, employeeID string, amount decimal.Decimal, date string, mealPrice decimal.Decimal) (*models.PaymentRecord, []*models.MealRecord, error) {
	if employeeID == "" {
		return nil, nil, fmt.Errorf("%w: employee id is required", storage.ErrInvalidArgument)
	}
	if !amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: payment amount must be positive, got %s", storage.ErrInvalidArgument, amount)
	}
	if err := models.ValidateDate(date); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", storage.ErrInvalidArgument, err)
	}

	payment := &models.PaymentRecord{
		ID:         uuid.New().String(),
		EmployeeID: employeeID,
		Date:       date,
		Amount:     amount,
	}
	allocated, err := s.store.RecordPayment(ctx, payment, mealPrice)
	if err != nil {
		slog.Error("RecordPayment failed", "employee_id", employeeID, "error", err)
		s.metrics.Failure("record_payment")
		return nil, nil, err
	}

	s.metrics.PaymentRecorded(amount, len(allocated))
	slog.Info("Payment recorded",
		"employee_id", employeeID,
		"payment_id", payment.ID,
		"amount", amount.String(),
		"meals_paid", len(allocated),
	)

	return payment, allocated, nil
}

// ListForEmployee returns the payments of one employee.
func (s *PaymentService) ListForEmployee(ctx context.Context, employeeID string) ([]*models.PaymentRecord, error) {
	return s.store.ListPaymentsForEmployee(ctx, employeeID)
}

// ListForDate returns the payments received on date.
func (s *PaymentService) ListForDate(ctx context.Context, date string) ([]*models.PaymentRecord, error) {
	if err := models.ValidateDate(date); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrInvalidArgument, err)
	}
	return s.store.ListPaymentsForDate(ctx, date)
}
