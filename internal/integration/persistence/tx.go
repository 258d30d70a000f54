// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"gorm.io/gorm"
)

// txKey is the context key under which an open transaction travels.
type txKey struct{}

// withTx stores a transaction handle in the context so repositories called
// inside TxManager.RunSerializable participate in it.
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// dbFromContext returns the transaction from the context when one is open,
// or the repository's own handle otherwise.
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback
}
