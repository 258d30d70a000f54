// Package budgetitem contains budget item tree-related use cases.
package budgetitem

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budget-ledger/backend/internal/application/adapter"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
)

// DeactivateItemInput represents the input for budget item deactivation.
type DeactivateItemInput struct {
	ItemID uuid.UUID
}

// DeactivateItemOutput represents the output of budget item deactivation.
type DeactivateItemOutput struct{}

// DeactivateItemUseCase handles the soft delete of a budget item. Items are
// never hard-deleted while anything references them, and never resurrected
// automatically.
type DeactivateItemUseCase struct {
	itemRepo        adapter.BudgetItemRepository
	realizationRepo adapter.RealizationRepository
}

// NewDeactivateItemUseCase creates a new DeactivateItemUseCase instance.
func NewDeactivateItemUseCase(itemRepo adapter.BudgetItemRepository, realizationRepo adapter.RealizationRepository) *DeactivateItemUseCase {
	return &DeactivateItemUseCase{
		itemRepo:        itemRepo,
		realizationRepo: realizationRepo,
	}
}

// Execute deactivates a budget item. Rejected while the item has active
// children or any realization entry references it.
func (uc *DeactivateItemUseCase) Execute(ctx context.Context, input DeactivateItemInput) (*DeactivateItemOutput, error) {
	item, err := uc.itemRepo.FindByID(ctx, input.ItemID)
	if err != nil {
		return nil, domainerror.NewBudgetItemError(
			domainerror.ErrCodeBudgetItemNotFound,
			"budget item not found",
			domainerror.ErrBudgetItemNotFound,
		)
	}

	childCount, err := uc.itemRepo.CountActiveChildren(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count children: %w", err)
	}
	if childCount > 0 {
		return nil, domainerror.NewBudgetItemError(
			domainerror.ErrCodeBudgetItemInUse,
			fmt.Sprintf("item has %d active children", childCount),
			domainerror.ErrBudgetItemInUse,
		)
	}

	entryCount, err := uc.realizationRepo.CountByItem(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count realizations: %w", err)
	}
	if entryCount > 0 {
		return nil, domainerror.NewBudgetItemError(
			domainerror.ErrCodeBudgetItemInUse,
			fmt.Sprintf("item has %d realization entries", entryCount),
			domainerror.ErrBudgetItemInUse,
		)
	}

	item.Active = false
	item.UpdatedAt = time.Now().UTC()

	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to deactivate budget item: %w", err)
	}

	return &DeactivateItemOutput{}, nil
}
