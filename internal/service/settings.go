package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/mmynk/cantineo/internal/models"
	"github.com/mmynk/cantineo/internal/storage"
)

// SettingsService reads and updates the meal price.
type SettingsService struct {
	store storage.Store
}

// NewSettingsService creates a new SettingsService with the given storage backend.
func NewSettingsService(store storage.Store) *SettingsService {
	return &SettingsService{store: store}
}

// GetMealPrice returns the configured meal price, or models.DefaultMealPrice
// when the store has not been initialized yet.
func (s *SettingsService) GetMealPrice(ctx context.Context) (decimal.Decimal, error) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		slog.Error("GetMealPrice failed", "error", err)
		return decimal.Zero, err
	}
	if settings == nil {
		return models.DefaultMealPrice, nil
	}
	return settings.MealPrice, nil
}

// SetMealPrice replaces the meal price. Non-positive prices are rejected.
func (s *SettingsService) SetMealPrice(ctx context.Context, price decimal.Decimal) error {
	if !price.IsPositive() {
		return fmt.Errorf("%w: meal price must be positive, got %s", storage.ErrInvalidArgument, price)
	}

	if err := s.store.PutSettings(ctx, &models.AppSettings{MealPrice: price}); err != nil {
		slog.Error("SetMealPrice failed", "price", price.String(), "error", err)
		return err
	}

	slog.Info("Meal price updated", "price", price.String())
	return nil
}
