package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error kinds. Every error returned by the services wraps exactly one of them
// so callers can map failures with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrRejected           = errors.New("rejected")
	ErrConflict           = errors.New("conflict")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Not found errors
var (
	ErrCardNotFound        = fmt.Errorf("card %w", ErrNotFound)
	ErrUserNotFound        = fmt.Errorf("user %w", ErrNotFound)
	ErrTransactionNotFound = fmt.Errorf("transaction %w", ErrNotFound)
)

// Transfer errors
var (
	ErrTransferForbidden = fmt.Errorf("%w: only the card owner may operate on it", ErrForbidden)
	ErrCrossUserTransfer = fmt.Errorf("%w: cross-user transfer", ErrRejected)
	ErrInactiveCard      = fmt.Errorf("%w: inactive card", ErrRejected)
	ErrInvalidAmount     = fmt.Errorf("%w: amount must be positive", ErrRejected)
	ErrInsufficientFunds = fmt.Errorf("%w: insufficient funds", ErrRejected)
	ErrSelfTransfer      = fmt.Errorf("%w: self-transfer", ErrRejected)
)

// Card and user errors
var (
	ErrTopUpForbidden         = fmt.Errorf("%w: only the card owner may top up its balance", ErrForbidden)
	ErrUserAlreadyExists      = fmt.Errorf("%w: username already exists", ErrConflict)
	ErrCardNumberGeneration   = errors.New("failed to generate a unique card number")
	ErrTransactionPersistence = errors.New("failed to persist transfer")
)

// cardNotFound names the missing card in the error message.
func cardNotFound(id uuid.UUID) error {
	return fmt.Errorf("%w: %s", ErrCardNotFound, id)
}

// userNotFound names the missing user in the error message.
func userNotFound(id uuid.UUID) error {
	return fmt.Errorf("%w: %s", ErrUserNotFound, id)
}

// validationError wraps ErrValidation with a field specific message.
func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
