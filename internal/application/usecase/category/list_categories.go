// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"

	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/domain/entity"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	ActiveOnly bool
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*entity.Category
}

// ListCategoriesUseCase handles category listing logic.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute retrieves the categories.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	categories, err := uc.categoryRepo.FindAll(ctx, input.ActiveOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return &ListCategoriesOutput{
		Categories: categories,
	}, nil
}
