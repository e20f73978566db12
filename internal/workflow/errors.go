package workflow

import "errors"

var (
	// Creation validation.
	ErrNonPositiveAmount = errors.New("amount must be greater than 0")
	ErrBelowMinimum      = errors.New("minimum amount is 0.01")

	// Transition failures.
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("transaction not found")
	ErrInvalidTransition = errors.New("transaction is not pending")
)
