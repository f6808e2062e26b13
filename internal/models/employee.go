package models

// Employee represents a person whose meals and payments are tracked.
type Employee struct {
	// ID is the unique identifier for the employee (UUID format).
	// Generated by the caller, never by the store.
	ID string `json:"id"`

	// Name is the display name of the employee.
	// The store does not validate it; workflows reject blank names.
	Name string `json:"name"`
}

// EmployeeWithRecords nests an employee's meals and payments for display.
// It is never persisted as such.
type EmployeeWithRecords struct {
	Employee
	Meals    []*MealRecord    `json:"meals"`
	Payments []*PaymentRecord `json:"payments"`
}
