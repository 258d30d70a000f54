// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budget-ledger/backend/internal/application/adapter"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
)

// DeactivateCategoryInput represents the input for category deactivation.
type DeactivateCategoryInput struct {
	CategoryID uuid.UUID
}

// DeactivateCategoryOutput represents the output of category deactivation.
type DeactivateCategoryOutput struct{}

// DeactivateCategoryUseCase handles category deactivation logic.
type DeactivateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	itemRepo     adapter.BudgetItemRepository
}

// NewDeactivateCategoryUseCase creates a new DeactivateCategoryUseCase instance.
func NewDeactivateCategoryUseCase(categoryRepo adapter.CategoryRepository, itemRepo adapter.BudgetItemRepository) *DeactivateCategoryUseCase {
	return &DeactivateCategoryUseCase{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
	}
}

// Execute deactivates a category. Rejected while any budget item still
// references it.
func (uc *DeactivateCategoryUseCase) Execute(ctx context.Context, input DeactivateCategoryInput) (*DeactivateCategoryOutput, error) {
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}

	count, err := uc.itemRepo.CountByCategory(ctx, category.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count items for category: %w", err)
	}
	if count > 0 {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryInUse,
			fmt.Sprintf("category is referenced by %d budget items", count),
			domainerror.ErrCategoryInUse,
		)
	}

	category.Active = false
	category.UpdatedAt = time.Now().UTC()

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to deactivate category: %w", err)
	}

	return &DeactivateCategoryOutput{}, nil
}
