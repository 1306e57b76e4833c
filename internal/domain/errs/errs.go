package errs

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationError: bad input. Surfaced verbatim, never retried.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// StateConflictError: the entity is not in the state the operation
// expects (loan no longer pending, duplicate active loan, self-funding).
// The caller must re-fetch state before deciding what to do next.
type StateConflictError struct{ Msg string }

func (e *StateConflictError) Error() string { return e.Msg }

func Conflict(format string, args ...any) error {
	return &StateConflictError{Msg: fmt.Sprintf(format, args...)}
}

// InsufficientBalanceError carries both sides of the failed check.
type InsufficientBalanceError struct {
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: required %s, available %s",
		e.Required.StringFixed(2), e.Available.StringFixed(2))
}

// GatewayTransferError: the external wallet transfer failed or timed out.
// Guaranteed: no local balance or status mutation has been applied, so the
// caller may retry the whole operation.
type GatewayTransferError struct {
	Step   string
	Reason string
}

func (e *GatewayTransferError) Error() string {
	return fmt.Sprintf("wallet transfer failed (%s): %s", e.Step, e.Reason)
}

type NotFoundError struct{ What string }

func (e *NotFoundError) Error() string { return e.What + " not found" }

func NotFound(what string) error { return &NotFoundError{What: what} }
