package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/cantineo/internal/calculator"
	"github.com/mmynk/cantineo/internal/models"
	"github.com/mmynk/cantineo/internal/storage"
)

const paymentColumns = "id, employee_id, date, amount"

// ListPayments retrieves every payment record.
func (s *Store) ListPayments(ctx context.Context) ([]*models.PaymentRecord, error) {
	return s.queryPayments(ctx, "SELECT "+paymentColumns+" FROM payments ORDER BY date, id")
}

// ListPaymentsForEmployee retrieves the payments of one employee using idx_payments_employee_id.
func (s *Store) ListPaymentsForEmployee(ctx context.Context, employeeID string) ([]*models.PaymentRecord, error) {
	return s.queryPayments(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE employee_id = ? ORDER BY date, id",
		employeeID,
	)
}

// ListPaymentsForDate retrieves the payments of one day using idx_payments_date.
func (s *Store) ListPaymentsForDate(ctx context.Context, date string) ([]*models.PaymentRecord, error) {
	return s.queryPayments(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE date = ? ORDER BY rowid",
		date,
	)
}

func (s *Store) queryPayments(ctx context.Context, query string, args ...any) ([]*models.PaymentRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.PaymentRecord
	for rows.Next() {
		payment := &models.PaymentRecord{}
		if err := rows.Scan(&payment.ID, &payment.EmployeeID, &payment.Date, &payment.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return payments, nil
}

// PutPayment inserts the payment or replaces the one with the same ID.
func (s *Store) PutPayment(ctx context.Context, payment *models.PaymentRecord) error {
	if err := validatePayment(payment); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return insertPayment(ctx, tx, payment)
	})
}

// RecordPayment inserts a payment and allocates it to the employee's unpaid
// meals inside the same transaction, so concurrent payments never claim the
// same meal.
func (s *Store) RecordPayment(ctx context.Context, payment *models.PaymentRecord, mealPrice decimal.Decimal) ([]*models.MealRecord, error) {
	if err := validatePayment(payment); err != nil {
		return nil, err
	}

	var allocated []*models.MealRecord
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := insertPayment(ctx, tx, payment); err != nil {
			return err
		}
		if err := s.step("record_payment.payment"); err != nil {
			return err
		}

		unpaid, err := queryMeals(ctx, tx,
			"SELECT "+mealColumns+" FROM meals WHERE employee_id = ? AND paid = 0 ORDER BY date, id",
			payment.EmployeeID,
		)
		if err != nil {
			return err
		}
		allocated = calculator.SelectMealsToAllocate(unpaid, payment.Amount, mealPrice)

		for _, meal := range allocated {
			res, err := tx.ExecContext(ctx,
				"UPDATE meals SET paid = 1 WHERE id = ? AND employee_id = ? AND paid = 0",
				meal.ID, payment.EmployeeID,
			)
			if err != nil {
				return fmt.Errorf("failed to mark meal paid: %w", err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to mark meal paid: %w", err)
			}
			if n == 0 {
				return fmt.Errorf("meal %s is no longer unpaid", meal.ID)
			}
		}
		return s.step("record_payment.meals")
	})
	if errors.Is(err, storage.ErrEmployeeNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
	}

	return allocated, nil
}

func insertPayment(ctx context.Context, tx *sql.Tx, payment *models.PaymentRecord) error {
	exists, err := employeeExists(ctx, tx, payment.EmployeeID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", storage.ErrEmployeeNotFound, payment.EmployeeID)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO payments (id, employee_id, date, amount) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		     employee_id = excluded.employee_id,
		     date = excluded.date,
		     amount = excluded.amount`,
		payment.ID, payment.EmployeeID, payment.Date, payment.Amount.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to put payment: %w", err)
	}
	return nil
}

func validatePayment(payment *models.PaymentRecord) error {
	if payment == nil || payment.ID == "" {
		return fmt.Errorf("%w: payment id is required", storage.ErrInvalidArgument)
	}
	if payment.EmployeeID == "" {
		return fmt.Errorf("%w: payment employee id is required", storage.ErrInvalidArgument)
	}
	if err := models.ValidateDate(payment.Date); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrInvalidArgument, err)
	}
	if !payment.Amount.IsPositive() {
		return fmt.Errorf("%w: payment amount must be positive, got %s", storage.ErrInvalidArgument, payment.Amount)
	}
	return nil
}
