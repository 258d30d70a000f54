// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-ledger/backend/internal/domain/entity"
)

// BudgetItemFilter holds the filter criteria for listing budget items.
type BudgetItemFilter struct {
	PeriodID   uuid.UUID
	CategoryID *uuid.UUID
	ParentID   *uuid.UUID
	Level      *int
	// Search matches case-insensitively against name, code and description.
	Search          string
	IncludeInactive bool
}

// BudgetItemRepository defines the interface for budget item persistence operations.
type BudgetItemRepository interface {
	// Create creates a new budget item in the database.
	Create(ctx context.Context, item *entity.BudgetItem) error

	// FindByID retrieves a budget item by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BudgetItem, error)

	// FindByIDs retrieves budget items by ID, keyed by ID. Missing IDs are
	// simply absent from the result.
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.BudgetItem, error)

	// FindActiveByPeriod retrieves every active item of a period, unfiltered.
	// The rollup engine always starts from this full set.
	FindActiveByPeriod(ctx context.Context, periodID uuid.UUID) ([]*entity.BudgetItem, error)

	// FindByFilter retrieves items matching the filter together with their
	// active direct-child counts, ordered by level then sort order.
	FindByFilter(ctx context.Context, filter BudgetItemFilter) ([]*entity.BudgetItemWithChildCount, error)

	// CountSiblings counts the active items sharing the same parent,
	// category, period and level. Feeds generated code suffixes.
	CountSiblings(ctx context.Context, parentID *uuid.UUID, categoryID, periodID uuid.UUID, level int) (int, error)

	// MaxSiblingOrder returns the highest sort order among items sharing the
	// same parent and level within a period, or 0 when there are none.
	MaxSiblingOrder(ctx context.Context, parentID *uuid.UUID, periodID uuid.UUID, level int) (int, error)

	// ExistsByCode checks if an item code exists within a category and period.
	ExistsByCode(ctx context.Context, categoryID, periodID uuid.UUID, code string) (bool, error)

	// CountActiveChildren counts the active direct children of an item.
	CountActiveChildren(ctx context.Context, itemID uuid.UUID) (int, error)

	// CountByCategory counts the active items referencing a category.
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error)

	// CountByPeriod counts the active items referencing a period.
	CountByPeriod(ctx context.Context, periodID uuid.UUID) (int, error)

	// Update updates an existing budget item in the database.
	Update(ctx context.Context, item *entity.BudgetItem) error
}
