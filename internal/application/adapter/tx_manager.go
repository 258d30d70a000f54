// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// TxManager runs a function inside a storage transaction. Repositories
// participate through the context the function receives.
type TxManager interface {
	// RunSerializable executes fn inside a transaction with serializable
	// isolation (where the backend supports choosing one). Serialization
	// and unique-constraint conflicts are retried once with a fresh
	// transaction; if the retry conflicts again, the returned error wraps
	// domain ErrConflict.
	RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}
