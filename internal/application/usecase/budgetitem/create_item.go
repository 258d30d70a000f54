// Package budgetitem contains budget item tree-related use cases.
package budgetitem

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
)

// MaxItemCodeLength is the maximum allowed length for item codes.
const MaxItemCodeLength = 50

// CreateItemInput represents the input for budget item creation.
type CreateItemInput struct {
	CategoryID  uuid.UUID
	PeriodID    uuid.UUID
	ParentID    *uuid.UUID
	Name        string
	Description string
	// Code is optional; when empty it is generated from the category short
	// code (level 1) or the parent code plus a sibling-count suffix.
	Code string

	TargetFrequency *int
	FrequencyUnit   string
	UnitAmount      *decimal.Decimal
	TotalTarget     *decimal.Decimal
}

// CreateItemOutput represents the output of budget item creation.
type CreateItemOutput struct {
	Item *entity.BudgetItem
}

// CreateItemUseCase handles budget item creation, including hierarchical
// code generation and sort order assignment.
type CreateItemUseCase struct {
	itemRepo     adapter.BudgetItemRepository
	categoryRepo adapter.CategoryRepository
	periodRepo   adapter.PeriodRepository
	txManager    adapter.TxManager
}

// NewCreateItemUseCase creates a new CreateItemUseCase instance.
func NewCreateItemUseCase(
	itemRepo adapter.BudgetItemRepository,
	categoryRepo adapter.CategoryRepository,
	periodRepo adapter.PeriodRepository,
	txManager adapter.TxManager,
) *CreateItemUseCase {
	return &CreateItemUseCase{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		periodRepo:   periodRepo,
		txManager:    txManager,
	}
}

// Execute performs the budget item creation. The sibling-count and order
// reads plus the insert run inside one serializable transaction so two
// concurrent creators cannot be assigned the same generated code or order.
func (uc *CreateItemUseCase) Execute(ctx context.Context, input CreateItemInput) (*CreateItemOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewBudgetItemError(
			domainerror.ErrCodeMissingItemFields,
			"name is required",
			nil,
		)
	}
	if len(input.Code) > MaxItemCodeLength {
		return nil, domainerror.NewBudgetItemError(
			domainerror.ErrCodeMissingItemFields,
			fmt.Sprintf("item code must not exceed %d characters", MaxItemCodeLength),
			nil,
		)
	}
	if input.UnitAmount != nil && input.UnitAmount.IsNegative() {
		return nil, domainerror.NewBudgetItemError(
			domainerror.ErrCodeMissingItemFields,
			"unit amount must not be negative",
			nil,
		)
	}
	if input.TotalTarget != nil && input.TotalTarget.IsNegative() {
		return nil, domainerror.NewBudgetItemError(
			domainerror.ErrCodeMissingItemFields,
			"total target must not be negative",
			nil,
		)
	}

	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, domainerror.NewBudgetItemError(
			domainerror.ErrCodeBudgetItemNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}
	if _, err := uc.periodRepo.FindByID(ctx, input.PeriodID); err != nil {
		return nil, domainerror.NewBudgetItemError(
			domainerror.ErrCodeBudgetItemNotFound,
			"period not found",
			domainerror.ErrPeriodNotFound,
		)
	}

	item := entity.NewBudgetItem(input.CategoryID, input.PeriodID, input.ParentID, name, strings.TrimSpace(input.Description))
	item.TargetFrequency = input.TargetFrequency
	item.FrequencyUnit = strings.TrimSpace(input.FrequencyUnit)
	item.UnitAmount = input.UnitAmount
	item.TotalTarget = input.TotalTarget

	err = uc.txManager.RunSerializable(ctx, func(ctx context.Context) error {
		return uc.placeInTree(ctx, item, category, input.Code)
	})
	if err != nil {
		if errors.Is(err, domainerror.ErrConflict) {
			return nil, domainerror.NewBudgetItemError(
				domainerror.ErrCodeItemSequenceConflict,
				"concurrent item creation conflict, please retry",
				err,
			)
		}
		return nil, err
	}

	return &CreateItemOutput{
		Item: item,
	}, nil
}

// placeInTree assigns level, code and order from live sibling state and
// inserts the item. Runs inside the serializable transaction.
func (uc *CreateItemUseCase) placeInTree(ctx context.Context, item *entity.BudgetItem, category *entity.Category, suppliedCode string) error {
	var parentCode string

	if item.ParentID != nil {
		parent, err := uc.itemRepo.FindByID(ctx, *item.ParentID)
		if err != nil || !parent.Active {
			return domainerror.NewBudgetItemError(
				domainerror.ErrCodeInvalidParent,
				"parent item not found",
				domainerror.ErrInvalidParent,
			)
		}
		// A parent and its children always share the same category and period.
		if parent.CategoryID != item.CategoryID || parent.PeriodID != item.PeriodID {
			return domainerror.NewBudgetItemError(
				domainerror.ErrCodeInvalidParent,
				"parent item belongs to a different category or period",
				domainerror.ErrInvalidParent,
			)
		}
		item.Level = parent.Level + 1
		parentCode = parent.Code
	} else {
		item.Level = 1
	}

	code := strings.TrimSpace(suppliedCode)
	if code == "" {
		generated, err := uc.generateCode(ctx, item, category, parentCode)
		if err != nil {
			return err
		}
		code = generated
	}

	exists, err := uc.itemRepo.ExistsByCode(ctx, item.CategoryID, item.PeriodID, code)
	if err != nil {
		return fmt.Errorf("failed to check item code existence: %w", err)
	}
	if exists {
		return domainerror.NewBudgetItemError(
			domainerror.ErrCodeDuplicateItemCode,
			fmt.Sprintf("item code %q already exists for this category and period", code),
			domainerror.ErrDuplicateItemCode,
		)
	}
	item.Code = code

	maxOrder, err := uc.itemRepo.MaxSiblingOrder(ctx, item.ParentID, item.PeriodID, item.Level)
	if err != nil {
		return fmt.Errorf("failed to determine sibling order: %w", err)
	}
	item.Order = maxOrder + 1

	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return fmt.Errorf("failed to create budget item: %w", err)
	}
	return nil
}

// generateCode derives the item code. Level-1 items reuse the category
// short code verbatim; deeper items append the next sibling ordinal to the
// parent code, producing dotted codes such as "A.1.2".
func (uc *CreateItemUseCase) generateCode(ctx context.Context, item *entity.BudgetItem, category *entity.Category, parentCode string) (string, error) {
	if item.Level == 1 {
		return category.ShortCode, nil
	}

	siblings, err := uc.itemRepo.CountSiblings(ctx, item.ParentID, item.CategoryID, item.PeriodID, item.Level)
	if err != nil {
		return "", fmt.Errorf("failed to count siblings: %w", err)
	}
	return parentCode + "." + strconv.Itoa(siblings+1), nil
}
