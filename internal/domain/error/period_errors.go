// Package error defines domain-specific errors for the Budget Ledger application.
package error

import "errors"

// Period domain errors.
var (
	// ErrPeriodNotFound is returned when a period is not found in the system.
	ErrPeriodNotFound = errors.New("period not found")

	// ErrPeriodNameExists is returned when attempting to create a period with an existing name.
	ErrPeriodNameExists = errors.New("period name already exists")

	// ErrPeriodInUse is returned when a period still has budget items or entries referencing it.
	ErrPeriodInUse = errors.New("period is referenced by budget items or realizations")

	// ErrPeriodClosed is returned when posting against a period that is not active.
	ErrPeriodClosed = errors.New("period is not active")

	// ErrDateOutOfRange is returned when a date falls outside the period's date range.
	ErrDateOutOfRange = errors.New("date is outside the period's date range")

	// ErrInvalidPeriodStatus is returned when an unknown period status is requested.
	ErrInvalidPeriodStatus = errors.New("invalid period status")

	// ErrInvalidPeriodDates is returned when a period's end date is not after its start date.
	ErrInvalidPeriodDates = errors.New("period end date must not be before start date")
)

// PeriodErrorCode defines error codes for period errors.
// Format: PER-XXYYYY where XX is category and YYYY is specific error.
type PeriodErrorCode string

const (
	ErrCodePeriodNotFound      PeriodErrorCode = "PER-010001"
	ErrCodePeriodNameExists    PeriodErrorCode = "PER-010002"
	ErrCodePeriodInUse         PeriodErrorCode = "PER-010003"
	ErrCodePeriodClosed        PeriodErrorCode = "PER-010004"
	ErrCodeDateOutOfRange      PeriodErrorCode = "PER-010005"
	ErrCodeInvalidPeriodStatus PeriodErrorCode = "PER-010006"
	ErrCodeInvalidPeriodDates  PeriodErrorCode = "PER-010007"
	ErrCodeMissingPeriodFields PeriodErrorCode = "PER-010008"
)

// PeriodError represents a period error with code and message.
type PeriodError struct {
	Code    PeriodErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PeriodError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PeriodError) Unwrap() error {
	return e.Err
}

// NewPeriodError creates a new PeriodError with the given code and message.
func NewPeriodError(code PeriodErrorCode, message string, err error) *PeriodError {
	return &PeriodError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
