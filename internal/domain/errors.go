package domain

import (
	"errors"
	"strings"
)

var (
	// Account errors
	ErrUserNotFound          = errors.New("user not found")
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	ErrUserAlreadyExists     = errors.New("user with this username or email already exists")

	// Money movement errors
	ErrInsufficientBalance = errors.New("insufficient balance")

	// Ledger errors
	ErrInvalidDraft           = errors.New("invalid transaction draft")
	ErrUnknownTransactionType = errors.New("unknown transaction type")

	// ErrValidation is the sentinel every *ValidationError unwraps to.
	ErrValidation = errors.New("validation failed")
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries every field-level problem found in one input.
type ValidationError struct {
	Fields []FieldError
}

// Error implements error.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}

	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}

	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Add records a problem with field.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// ErrOrNil returns e when at least one field failed, nil otherwise.
func (e *ValidationError) ErrOrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}
