package httpapi

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/cantineo/internal/storage"
)

// connectError maps a service error onto a Connect error code. Unexpected
// errors are logged here and reach the client as "internal error".
func connectError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	switch {
	case errors.Is(err, storage.ErrInvalidArgument):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrDuplicateMeal):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, storage.ErrEmployeeNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrTransactionFailed), errors.Is(err, storage.ErrStorageUnavailable):
		// Retryable.
		return connect.NewError(connect.CodeUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	default:
		slog.Error("Unexpected error", "error", err)
		return connect.NewError(connect.CodeInternal, errors.New("internal error"))
	}
}
