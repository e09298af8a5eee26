package service

import (
	"alcyxob/fitness-tracker/internal/repository"
	"errors"
	"fmt"
)

var (
	ErrProgramNotFound    = errors.New("program not found")
	ErrEnrollmentNotFound = errors.New("program enrollment not found")
	// ErrConflict reports a write that lost a race with a concurrent request
	// for the same user. The request can be re-issued.
	ErrConflict          = errors.New("conflicting concurrent update")
	ErrInvalidTransition = errors.New("invalid program status transition")
)

// ValidationError rejects malformed input before any store access.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsRetryable reports whether re-issuing the failed request may succeed.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict)
}

// storeError wraps a failure from inside a user transaction. Storage
// conflicts additionally match ErrConflict.
func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrConflict) && !errors.Is(err, ErrConflict) {
		return fmt.Errorf("%s: %w: %w", op, ErrConflict, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
