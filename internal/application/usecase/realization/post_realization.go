// Package realization contains realization ledger-related use cases.
package realization

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
)

// PostRealizationInput represents the input for posting a realization entry.
type PostRealizationInput struct {
	BudgetItemID uuid.UUID
	PeriodID     uuid.UUID
	Date         time.Time
	Amount       decimal.Decimal
	Note         string
}

// PostRealizationOutput represents the output of posting a realization entry.
type PostRealizationOutput struct {
	Entry *entity.RealizationEntry
}

// PostRealizationUseCase handles realization posting. There is no
// uniqueness constraint on entries: each actual event is one entry, and the
// entries are the source of truth for every aggregate.
type PostRealizationUseCase struct {
	realizationRepo adapter.RealizationRepository
	itemRepo        adapter.BudgetItemRepository
	periodRepo      adapter.PeriodRepository
}

// NewPostRealizationUseCase creates a new PostRealizationUseCase instance.
func NewPostRealizationUseCase(
	realizationRepo adapter.RealizationRepository,
	itemRepo adapter.BudgetItemRepository,
	periodRepo adapter.PeriodRepository,
) *PostRealizationUseCase {
	return &PostRealizationUseCase{
		realizationRepo: realizationRepo,
		itemRepo:        itemRepo,
		periodRepo:      periodRepo,
	}
}

// Execute validates the posting against the item and period fences and
// stores the entry.
func (uc *PostRealizationUseCase) Execute(ctx context.Context, input PostRealizationInput) (*PostRealizationOutput, error) {
	if input.Amount.IsNegative() {
		return nil, domainerror.NewRealizationError(
			domainerror.ErrCodeInvalidAmount,
			"amount must not be negative",
			domainerror.ErrInvalidAmount,
		)
	}

	item, err := uc.itemRepo.FindByID(ctx, input.BudgetItemID)
	if err != nil || !item.Active {
		return nil, domainerror.NewRealizationError(
			domainerror.ErrCodeRealizationNotFound,
			"budget item not found",
			domainerror.ErrBudgetItemNotFound,
		)
	}

	// An entry can never be posted against an item from a different period.
	if item.PeriodID != input.PeriodID {
		return nil, domainerror.NewRealizationError(
			domainerror.ErrCodePeriodMismatch,
			"entry period does not match the item's period",
			domainerror.ErrPeriodMismatch,
		)
	}

	period, err := uc.periodRepo.FindByID(ctx, input.PeriodID)
	if err != nil {
		return nil, domainerror.NewRealizationError(
			domainerror.ErrCodeRealizationNotFound,
			"period not found",
			domainerror.ErrPeriodNotFound,
		)
	}
	if err := checkPeriodFences(period, input.Date); err != nil {
		return nil, err
	}

	entry := entity.NewRealizationEntry(input.BudgetItemID, input.PeriodID, input.Date, input.Amount, strings.TrimSpace(input.Note))

	if err := uc.realizationRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create realization entry: %w", err)
	}

	return &PostRealizationOutput{
		Entry: entry,
	}, nil
}

// checkPeriodFences enforces that the period is active and the date falls
// within its range.
func checkPeriodFences(period *entity.Period, date time.Time) error {
	if period.Status != entity.PeriodStatusActive {
		return domainerror.NewPeriodError(
			domainerror.ErrCodePeriodClosed,
			fmt.Sprintf("period %q is %s, not active", period.Name, period.Status),
			domainerror.ErrPeriodClosed,
		)
	}
	if !period.ContainsDate(date) {
		return domainerror.NewPeriodError(
			domainerror.ErrCodeDateOutOfRange,
			fmt.Sprintf("date %s is outside the period range %s to %s",
				date.Format("2006-01-02"),
				period.StartDate.Format("2006-01-02"),
				period.EndDate.Format("2006-01-02")),
			domainerror.ErrDateOutOfRange,
		)
	}
	return nil
}
