// Package error defines domain-specific errors for the Budget Ledger application.
package error

import (
	"errors"
	"fmt"
)

// Realization domain errors.
var (
	// ErrRealizationNotFound is returned when a realization entry is not found in the system.
	ErrRealizationNotFound = errors.New("realization entry not found")

	// ErrPeriodMismatch is returned when an entry's period differs from the
	// period of the referenced budget item.
	ErrPeriodMismatch = errors.New("entry period does not match the item's period")

	// ErrInvalidAmount is returned when a realization amount is negative.
	ErrInvalidAmount = errors.New("amount must not be negative")

	// ErrDuplicatePeriodKey is returned by bulk import when the combination
	// of item, year, month and week already holds an entry.
	ErrDuplicatePeriodKey = errors.New("duplicate realization period key")

	// ErrUnknownItem is returned by bulk import when a referenced budget item
	// does not exist.
	ErrUnknownItem = errors.New("unknown budget item")
)

// RealizationErrorCode defines error codes for realization errors.
// Format: RLZ-XXYYYY where XX is category and YYYY is specific error.
type RealizationErrorCode string

const (
	ErrCodeRealizationNotFound      RealizationErrorCode = "RLZ-010001"
	ErrCodePeriodMismatch           RealizationErrorCode = "RLZ-010002"
	ErrCodeInvalidAmount            RealizationErrorCode = "RLZ-010003"
	ErrCodeMissingRealizationFields RealizationErrorCode = "RLZ-010004"

	// Bulk import errors (02XXXX)
	ErrCodeDuplicatePeriodKey RealizationErrorCode = "RLZ-020001"
	ErrCodeUnknownItem        RealizationErrorCode = "RLZ-020002"
	ErrCodeBulkImportRejected RealizationErrorCode = "RLZ-020003"
	ErrCodeBulkImportConflict RealizationErrorCode = "RLZ-020004"
)

// RealizationError represents a realization error with code and message.
type RealizationError struct {
	Code    RealizationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RealizationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RealizationError) Unwrap() error {
	return e.Err
}

// NewRealizationError creates a new RealizationError with the given code and message.
func NewRealizationError(code RealizationErrorCode, message string, err error) *RealizationError {
	return &RealizationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// BulkRowError describes why a single row of a bulk import batch was rejected.
type BulkRowError struct {
	Index   int
	Code    RealizationErrorCode
	Message string
}

// BulkImportError rejects a whole import batch with a per-index error list,
// so callers can show exactly which rows failed.
type BulkImportError struct {
	Rows []BulkRowError
}

// Error implements the error interface.
func (e *BulkImportError) Error() string {
	return fmt.Sprintf("bulk import rejected: %d invalid rows", len(e.Rows))
}
