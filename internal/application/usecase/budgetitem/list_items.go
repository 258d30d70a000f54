// Package budgetitem contains budget item tree-related use cases.
package budgetitem

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
)

// ListItemsInput represents the input for listing budget items.
type ListItemsInput struct {
	PeriodID        uuid.UUID
	CategoryID      *uuid.UUID
	ParentID        *uuid.UUID
	Level           *int
	Search          string
	IncludeInactive bool
}

// ListItemsOutput represents the output of listing budget items.
type ListItemsOutput struct {
	Items []*entity.BudgetItemWithChildCount
}

// ListItemsUseCase handles budget item listing logic.
type ListItemsUseCase struct {
	itemRepo   adapter.BudgetItemRepository
	periodRepo adapter.PeriodRepository
}

// NewListItemsUseCase creates a new ListItemsUseCase instance.
func NewListItemsUseCase(itemRepo adapter.BudgetItemRepository, periodRepo adapter.PeriodRepository) *ListItemsUseCase {
	return &ListItemsUseCase{
		itemRepo:   itemRepo,
		periodRepo: periodRepo,
	}
}

// Execute retrieves items matching the filter, each with its active
// direct-child count.
func (uc *ListItemsUseCase) Execute(ctx context.Context, input ListItemsInput) (*ListItemsOutput, error) {
	if _, err := uc.periodRepo.FindByID(ctx, input.PeriodID); err != nil {
		return nil, domainerror.NewPeriodError(
			domainerror.ErrCodePeriodNotFound,
			"period not found",
			domainerror.ErrPeriodNotFound,
		)
	}

	items, err := uc.itemRepo.FindByFilter(ctx, adapter.BudgetItemFilter{
		PeriodID:        input.PeriodID,
		CategoryID:      input.CategoryID,
		ParentID:        input.ParentID,
		Level:           input.Level,
		Search:          input.Search,
		IncludeInactive: input.IncludeInactive,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list budget items: %w", err)
	}

	return &ListItemsOutput{
		Items: items,
	}, nil
}
