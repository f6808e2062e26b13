package models

// MealRecord represents one meal taken by an employee on a given day.
// At most one MealRecord exists per (EmployeeID, Date) pair.
type MealRecord struct {
	// ID is the unique identifier for the meal (UUID format).
	ID string `json:"id"`

	// EmployeeID references the Employee who took the meal.
	EmployeeID string `json:"employeeId"`

	// Date is the calendar day of the meal in YYYY-MM-DD form.
	Date string `json:"date"`

	// Paid is set once a payment has been allocated to this meal.
	// It is never reset by allocation.
	Paid bool `json:"paid"`
}
