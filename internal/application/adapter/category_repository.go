// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-ledger/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByIDs retrieves categories by ID, keyed by ID. Missing IDs are
	// simply absent from the result.
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Category, error)

	// FindAll retrieves all categories, optionally restricted to active ones.
	FindAll(ctx context.Context, activeOnly bool) ([]*entity.Category, error)

	// ExistsByName checks if a category with the given name exists.
	ExistsByName(ctx context.Context, name string) (bool, error)

	// ExistsByShortCode checks if a category with the given short code exists.
	ExistsByShortCode(ctx context.Context, shortCode string) (bool, error)

	// Update updates an existing category in the database.
	Update(ctx context.Context, category *entity.Category) error
}
