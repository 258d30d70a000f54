// Package error defines domain-specific errors for the Budget Ledger application.
package error

import "errors"

// ErrConflict is returned when a serializable read-modify-write sequence
// (code/order assignment, duplicate period-key check) still conflicts after
// the storage layer's retry. Use cases wrap it with an area-specific code.
var ErrConflict = errors.New("concurrent update conflict")
