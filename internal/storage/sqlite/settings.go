package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/cantineo/internal/models"
	"github.com/mmynk/cantineo/internal/storage"
)

// GetSettings retrieves the settings singleton.
// Returns nil, nil if Initialize has not seeded it yet.
func (s *Store) GetSettings(ctx context.Context) (*models.AppSettings, error) {
	var price string
	err := s.db.QueryRowContext(ctx,
		"SELECT meal_price FROM settings WHERE key = ?",
		settingsKey,
	).Scan(&price)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	mealPrice, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored meal price %q: %w", price, err)
	}

	return &models.AppSettings{MealPrice: mealPrice}, nil
}

// PutSettings replaces the settings singleton.
func (s *Store) PutSettings(ctx context.Context, settings *models.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are required", storage.ErrInvalidArgument)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, meal_price) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET meal_price = excluded.meal_price`,
		settingsKey, settings.MealPrice.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to put settings: %w", err)
	}

	return nil
}
