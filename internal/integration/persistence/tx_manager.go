// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/budget-ledger/backend/internal/application/adapter"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
)

// txManager implements the adapter.TxManager interface.
type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a new transaction manager instance.
func NewTxManager(db *gorm.DB) adapter.TxManager {
	return &txManager{
		db: db,
	}
}

// RunSerializable executes fn inside a transaction. On Postgres the
// transaction runs at serializable isolation; sqlite transactions are
// serializable by nature and reject explicit isolation options, so they use
// the driver default. Serialization and unique-violation conflicts are
// retried once with a fresh transaction before surfacing ErrConflict.
func (m *txManager) RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{}
	if m.db.Dialector.Name() == "postgres" {
		opts.Isolation = sql.LevelSerializable
	}

	var err error
	for attempt := 0; attempt < 2; attempt++ {
		err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(withTx(ctx, tx))
		}, opts)
		if err == nil || !isRetryableConflict(err) {
			return err
		}
	}
	return fmt.Errorf("transaction conflicted after retry: %w", domainerror.ErrConflict)
}

// isRetryableConflict reports whether the error is a serialization failure
// or unique-constraint violation worth one more attempt. Both lib/pq and
// pgx surface the SQLSTATE; sqlite reports a constraint message.
func isRetryableConflict(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 40001") ||
		strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
