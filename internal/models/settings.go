package models

import "github.com/shopspring/decimal"

// DefaultMealPrice is the price used until the operator configures one.
var DefaultMealPrice = decimal.NewFromInt(5)

// AppSettings holds the process-wide configuration. Exactly one instance
// exists once the store has been initialized.
type AppSettings struct {
	// MealPrice is the positive price charged per meal.
	MealPrice decimal.Decimal `json:"mealPrice"`
}

// DefaultSettings returns the settings seeded into a fresh store.
func DefaultSettings() *AppSettings {
	return &AppSettings{MealPrice: DefaultMealPrice}
}
