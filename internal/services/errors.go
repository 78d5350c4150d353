package services

import (
	"errors"
	"fmt"

	"shift_manager_backend/internal/repositories"
)

// Error kinds. Handlers map these to HTTP statuses; every service error wraps exactly one.
var (
	ErrValidation     = errors.New("validation error")
	ErrDuplicateShift = errors.New("employee already has this shift on the selected date")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal error")
)

var (
	ErrShiftNotFound    = fmt.Errorf("%w: shift", ErrNotFound)
	ErrEmployeeNotFound = fmt.Errorf("%w: employee", ErrNotFound)
	ErrTaskNotFound     = fmt.Errorf("%w: task", ErrNotFound)

	ErrEmployeeCodeExists      = fmt.Errorf("%w: employee code is already in use", ErrConflict)
	ErrInvalidStatusTransition = fmt.Errorf("%w: shift status cannot change from its current value", ErrConflict)

	ErrIncorrectPassword = fmt.Errorf("%w: current password is incorrect", ErrValidation)

	ErrInvalidCredentials = errors.New("invalid employee code or password")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

// validationError builds an ErrValidation carrying a readable reason.
func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// internalError wraps an unexpected failure as ErrInternal, keeping the cause in the message.
func internalError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}

// translateRepoError maps repository sentinels onto service kinds.
// notFound is returned for repositories.ErrNotFound.
func translateRepoError(op string, err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return notFound
	default:
		return internalError(op, err)
	}
}
