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

// UpdateRealizationInput represents the input for updating a realization
// entry. Nil fields are left unchanged.
type UpdateRealizationInput struct {
	EntryID uuid.UUID
	Date    *time.Time
	Amount  *decimal.Decimal
	Note    *string
}

// UpdateRealizationOutput represents the output of updating a realization entry.
type UpdateRealizationOutput struct {
	Entry *entity.RealizationEntry
}

// UpdateRealizationUseCase handles realization updates. Changed dates and
// amounts go through the same fences as posting.
type UpdateRealizationUseCase struct {
	realizationRepo adapter.RealizationRepository
	periodRepo      adapter.PeriodRepository
}

// NewUpdateRealizationUseCase creates a new UpdateRealizationUseCase instance.
func NewUpdateRealizationUseCase(realizationRepo adapter.RealizationRepository, periodRepo adapter.PeriodRepository) *UpdateRealizationUseCase {
	return &UpdateRealizationUseCase{
		realizationRepo: realizationRepo,
		periodRepo:      periodRepo,
	}
}

// Execute applies the requested field changes.
func (uc *UpdateRealizationUseCase) Execute(ctx context.Context, input UpdateRealizationInput) (*UpdateRealizationOutput, error) {
	entry, err := uc.realizationRepo.FindByID(ctx, input.EntryID)
	if err != nil {
		return nil, domainerror.NewRealizationError(
			domainerror.ErrCodeRealizationNotFound,
			"realization entry not found",
			domainerror.ErrRealizationNotFound,
		)
	}

	if input.Amount != nil {
		if input.Amount.IsNegative() {
			return nil, domainerror.NewRealizationError(
				domainerror.ErrCodeInvalidAmount,
				"amount must not be negative",
				domainerror.ErrInvalidAmount,
			)
		}
		entry.Amount = *input.Amount
	}

	if input.Date != nil {
		period, err := uc.periodRepo.FindByID(ctx, entry.PeriodID)
		if err != nil {
			return nil, fmt.Errorf("failed to load period: %w", err)
		}
		if err := checkPeriodFences(period, *input.Date); err != nil {
			return nil, err
		}
		entry.Date = *input.Date
	}

	if input.Note != nil {
		entry.Note = strings.TrimSpace(*input.Note)
	}

	entry.UpdatedAt = time.Now().UTC()

	if err := uc.realizationRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update realization entry: %w", err)
	}

	return &UpdateRealizationOutput{
		Entry: entry,
	}, nil
}
