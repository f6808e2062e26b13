package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/cantineo/internal/models"
	"github.com/mmynk/cantineo/internal/storage"
)

const mealColumns = "id, employee_id, date, paid"

// ListMeals retrieves every meal record.
func (s *Store) ListMeals(ctx context.Context) ([]*models.MealRecord, error) {
	return queryMeals(ctx, s.db, "SELECT "+mealColumns+" FROM meals ORDER BY date, id")
}

// ListMealsForEmployee retrieves the meals of one employee using idx_meals_employee_id.
func (s *Store) ListMealsForEmployee(ctx context.Context, employeeID string) ([]*models.MealRecord, error) {
	return queryMeals(ctx, s.db,
		"SELECT "+mealColumns+" FROM meals WHERE employee_id = ? ORDER BY date, id",
		employeeID,
	)
}

// ListMealsForDate retrieves the meals of one day using idx_meals_date.
func (s *Store) ListMealsForDate(ctx context.Context, date string) ([]*models.MealRecord, error) {
	return queryMeals(ctx, s.db,
		"SELECT "+mealColumns+" FROM meals WHERE date = ? ORDER BY rowid",
		date,
	)
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func queryMeals(ctx context.Context, q queryer, query string, args ...any) ([]*models.MealRecord, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	defer rows.Close()

	var meals []*models.MealRecord
	for rows.Next() {
		meal := &models.MealRecord{}
		if err := rows.Scan(&meal.ID, &meal.EmployeeID, &meal.Date, &meal.Paid); err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		meals = append(meals, meal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meals: %w", err)
	}

	return meals, nil
}

// PutMeal inserts the meal or replaces the one with the same ID.
// It refuses a second meal for the same employee and day, and meals for
// employees that do not exist.
func (s *Store) PutMeal(ctx context.Context, meal *models.MealRecord) error {
	if err := validateMeal(meal); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		exists, err := employeeExists(ctx, tx, meal.EmployeeID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: %s", storage.ErrEmployeeNotFound, meal.EmployeeID)
		}

		var otherID string
		err = tx.QueryRowContext(ctx,
			"SELECT id FROM meals WHERE employee_id = ? AND date = ? AND id <> ?",
			meal.EmployeeID, meal.Date, meal.ID,
		).Scan(&otherID)
		if err == nil {
			return fmt.Errorf("%w: employee %s on %s", storage.ErrDuplicateMeal, meal.EmployeeID, meal.Date)
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("failed to check existing meal: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO meals (id, employee_id, date, paid) VALUES (?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
			     employee_id = excluded.employee_id,
			     date = excluded.date,
			     paid = excluded.paid`,
			meal.ID, meal.EmployeeID, meal.Date, meal.Paid,
		)
		if isConstraintViolation(err) {
			return fmt.Errorf("%w: employee %s on %s", storage.ErrDuplicateMeal, meal.EmployeeID, meal.Date)
		}
		if err != nil {
			return fmt.Errorf("failed to put meal: %w", err)
		}
		return nil
	})
}

// DeleteMeal removes a meal by ID. Deleting an unknown ID is a no-op.
func (s *Store) DeleteMeal(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM meals WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}
	return nil
}

func validateMeal(meal *models.MealRecord) error {
	if meal == nil || meal.ID == "" {
		return fmt.Errorf("%w: meal id is required", storage.ErrInvalidArgument)
	}
	if meal.EmployeeID == "" {
		return fmt.Errorf("%w: meal employee id is required", storage.ErrInvalidArgument)
	}
	if err := models.ValidateDate(meal.Date); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrInvalidArgument, err)
	}
	return nil
}
