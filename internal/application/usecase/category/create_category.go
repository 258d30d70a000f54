// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
)

const (
	// MaxCategoryNameLength is the maximum allowed length for category names.
	MaxCategoryNameLength = 100
	// MaxShortCodeLength is the maximum allowed length for category short codes.
	MaxShortCodeLength = 10
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	Name      string
	ShortCode string
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	name := strings.TrimSpace(input.Name)
	shortCode := strings.TrimSpace(input.ShortCode)

	if name == "" || shortCode == "" {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			"name and short code are required",
			nil,
		)
	}
	if len(name) > MaxCategoryNameLength {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			nil,
		)
	}
	if len(shortCode) > MaxShortCodeLength {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			fmt.Sprintf("short code must not exceed %d characters", MaxShortCodeLength),
			nil,
		)
	}

	exists, err := uc.categoryRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameExists,
			"a category with this name already exists",
			domainerror.ErrCategoryNameExists,
		)
	}

	exists, err = uc.categoryRepo.ExistsByShortCode(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("failed to check category short code existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryCodeExists,
			"a category with this short code already exists",
			domainerror.ErrCategoryCodeExists,
		)
	}

	category := entity.NewCategory(name, shortCode)

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{
		Category: category,
	}, nil
}
