package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/cantineo/internal/models"
	"github.com/mmynk/cantineo/internal/storage"
)

// ListEmployees retrieves all employees in insertion order.
func (s *Store) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM employees ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		employee := &models.Employee{}
		if err := rows.Scan(&employee.ID, &employee.Name); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

// GetEmployee retrieves an employee by ID.
func (s *Store) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	employee := &models.Employee{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name FROM employees WHERE id = ?",
		id,
	).Scan(&employee.ID, &employee.Name)
	if err == sql.ErrNoRows {
		return nil, nil // Employee not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	return employee, nil
}

// PutEmployee inserts the employee or replaces the one with the same ID.
func (s *Store) PutEmployee(ctx context.Context, employee *models.Employee) error {
	if employee == nil || employee.ID == "" {
		return fmt.Errorf("%w: employee id is required", storage.ErrInvalidArgument)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO employees (id, name) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		employee.ID, employee.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to put employee: %w", err)
	}

	return nil
}

// DeleteEmployee removes an employee and cascades to its meals and payments.
// The three deletions share one transaction: on any failure nothing is removed.
func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM meals WHERE employee_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete meals: %w", err)
		}
		if err := s.step("delete_employee.meals"); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM payments WHERE employee_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete payments: %w", err)
		}
		if err := s.step("delete_employee.payments"); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to delete employee: %w", err)
		}
		return s.step("delete_employee.employee")
	})
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
	}

	return nil
}
