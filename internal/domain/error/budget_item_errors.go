// Package error defines domain-specific errors for the Budget Ledger application.
package error

import "errors"

// Budget item domain errors.
var (
	// ErrBudgetItemNotFound is returned when a budget item is not found in the system.
	ErrBudgetItemNotFound = errors.New("budget item not found")

	// ErrInvalidParent is returned when the parent item is missing, inactive,
	// or belongs to a different category or period.
	ErrInvalidParent = errors.New("invalid parent item")

	// ErrDuplicateItemCode is returned when an item code already exists within
	// the same category and period.
	ErrDuplicateItemCode = errors.New("item code already exists for this category and period")

	// ErrBudgetItemInUse is returned when an item still has active children or
	// realization entries referencing it.
	ErrBudgetItemInUse = errors.New("budget item has active children or realizations")
)

// BudgetItemErrorCode defines error codes for budget item errors.
// Format: BDG-XXYYYY where XX is category and YYYY is specific error.
type BudgetItemErrorCode string

const (
	ErrCodeBudgetItemNotFound BudgetItemErrorCode = "BDG-010001"
	ErrCodeInvalidParent      BudgetItemErrorCode = "BDG-010002"
	ErrCodeDuplicateItemCode  BudgetItemErrorCode = "BDG-010003"
	ErrCodeBudgetItemInUse    BudgetItemErrorCode = "BDG-010004"
	ErrCodeMissingItemFields  BudgetItemErrorCode = "BDG-010005"

	// Concurrency errors (02XXXX)
	ErrCodeItemSequenceConflict BudgetItemErrorCode = "BDG-020001"
)

// BudgetItemError represents a budget item error with code and message.
type BudgetItemError struct {
	Code    BudgetItemErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetItemError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetItemError) Unwrap() error {
	return e.Err
}

// NewBudgetItemError creates a new BudgetItemError with the given code and message.
func NewBudgetItemError(code BudgetItemErrorCode, message string, err error) *BudgetItemError {
	return &BudgetItemError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
