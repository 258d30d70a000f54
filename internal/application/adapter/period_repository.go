// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-ledger/backend/internal/domain/entity"
)

// PeriodRepository defines the interface for fiscal period persistence operations.
type PeriodRepository interface {
	// Create creates a new period in the database.
	Create(ctx context.Context, period *entity.Period) error

	// FindByID retrieves a period by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Period, error)

	// FindAll retrieves all periods, optionally restricted to active ones,
	// ordered by year then start date descending.
	FindAll(ctx context.Context, activeOnly bool) ([]*entity.Period, error)

	// ExistsByName checks if a period with the given name exists.
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Update updates an existing period in the database.
	Update(ctx context.Context, period *entity.Period) error
}
