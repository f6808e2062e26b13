// Package models defines the core domain models for Cantineo.
//
// # Entities
//
// Four record kinds are persisted:
//   - Employee: a person who eats at the cafeteria (the root entity)
//   - MealRecord: one meal taken by an employee on a calendar day
//   - PaymentRecord: money received from an employee
//   - AppSettings: the singleton holding the current meal price
//
// Meals and payments reference their employee by ID string. Deleting an
// employee removes its meals and payments; the storage layer enforces that.
//
// # Dates and money
//
// Dates are calendar days in "YYYY-MM-DD" form and are always compared as
// exact strings. Use FormatDate and ValidateDate at the edges so nothing else
// ever reaches storage.
//
// Amounts and prices are decimal.Decimal values in a single implicit currency.
package models
