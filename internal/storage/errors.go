package storage

import "errors"

// Sentinel errors shared by every Store implementation and the services
// built on top of it. Check them with errors.Is.
var (
	// ErrStorageUnavailable means the storage medium could not be opened or
	// its schema could not be created.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrTransactionFailed means a multi-record operation was rolled back.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrInvalidArgument means the caller supplied a value that must never
	// reach storage (non-positive price or amount, malformed date, blank name).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDuplicateMeal means the employee already has a meal on that day.
	ErrDuplicateMeal = errors.New("meal already recorded for employee on this date")

	// ErrEmployeeNotFound means a record referenced an unknown employee.
	ErrEmployeeNotFound = errors.New("employee not found")
)

// IsRetryable returns true if the operation failed without side effects and
// can be retried as is.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransactionFailed)
}
