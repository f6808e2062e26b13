package models

import "github.com/shopspring/decimal"

// PaymentRecord represents money received from an employee.
// Payments are immutable once created; they are only removed together with
// their employee.
type PaymentRecord struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string `json:"id"`

	// EmployeeID references the Employee who paid.
	EmployeeID string `json:"employeeId"`

	// Date is the calendar day of the payment in YYYY-MM-DD form.
	Date string `json:"date"`

	// Amount is the positive amount received.
	Amount decimal.Decimal `json:"amount"`
}
