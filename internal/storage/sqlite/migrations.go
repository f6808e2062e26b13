package sqlite

import (
	"context"
	"database/sql"

	"github.com/mmynk/cantineo/internal/models"
)

// settingsKey is the fixed key of the settings singleton row.
const settingsKey = "app-settings"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Meals and payments reference employees only by convention: the cascade on
// employee deletion is done by the store inside a transaction.
const schema = `
CREATE TABLE IF NOT EXISTS employees (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS meals (
    id TEXT PRIMARY KEY,
    employee_id TEXT NOT NULL,
    date TEXT NOT NULL,
    paid INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS payments (
    id TEXT PRIMARY KEY,
    employee_id TEXT NOT NULL,
    date TEXT NOT NULL,
    amount TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    meal_price TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_meals_employee_id ON meals(employee_id);
CREATE INDEX IF NOT EXISTS idx_meals_date ON meals(date);
CREATE UNIQUE INDEX IF NOT EXISTS idx_meals_employee_date ON meals(employee_id, date);
CREATE INDEX IF NOT EXISTS idx_payments_employee_id ON payments(employee_id);
CREATE INDEX IF NOT EXISTS idx_payments_date ON payments(date);
`

// runMigrations executes the schema setup.
func runMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

// seedSettings stores the default settings unless a row already exists.
func seedSettings(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx,
		"INSERT INTO settings (key, meal_price) VALUES (?, ?) ON CONFLICT(key) DO NOTHING",
		settingsKey, models.DefaultSettings().MealPrice.String(),
	)
	return err
}
