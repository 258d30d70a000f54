// Package period contains fiscal period-related use cases.
package period

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budget-ledger/backend/internal/application/adapter"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
)

// DeactivatePeriodInput represents the input for period deactivation.
type DeactivatePeriodInput struct {
	PeriodID uuid.UUID
}

// DeactivatePeriodOutput represents the output of period deactivation.
type DeactivatePeriodOutput struct{}

// DeactivatePeriodUseCase handles period deactivation logic.
type DeactivatePeriodUseCase struct {
	periodRepo      adapter.PeriodRepository
	itemRepo        adapter.BudgetItemRepository
	realizationRepo adapter.RealizationRepository
}

// NewDeactivatePeriodUseCase creates a new DeactivatePeriodUseCase instance.
func NewDeactivatePeriodUseCase(
	periodRepo adapter.PeriodRepository,
	itemRepo adapter.BudgetItemRepository,
	realizationRepo adapter.RealizationRepository,
) *DeactivatePeriodUseCase {
	return &DeactivatePeriodUseCase{
		periodRepo:      periodRepo,
		itemRepo:        itemRepo,
		realizationRepo: realizationRepo,
	}
}

// Execute deactivates a period. Rejected while any budget item or
// realization entry still references it.
func (uc *DeactivatePeriodUseCase) Execute(ctx context.Context, input DeactivatePeriodInput) (*DeactivatePeriodOutput, error) {
	period, err := uc.periodRepo.FindByID(ctx, input.PeriodID)
	if err != nil {
		return nil, domainerror.NewPeriodError(
			domainerror.ErrCodePeriodNotFound,
			"period not found",
			domainerror.ErrPeriodNotFound,
		)
	}

	itemCount, err := uc.itemRepo.CountByPeriod(ctx, period.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count items for period: %w", err)
	}
	entryCount, err := uc.realizationRepo.CountByPeriod(ctx, period.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count realizations for period: %w", err)
	}
	if itemCount > 0 || entryCount > 0 {
		return nil, domainerror.NewPeriodError(
			domainerror.ErrCodePeriodInUse,
			fmt.Sprintf("period is referenced by %d budget items and %d realizations", itemCount, entryCount),
			domainerror.ErrPeriodInUse,
		)
	}

	period.Active = false
	period.UpdatedAt = time.Now().UTC()

	if err := uc.periodRepo.Update(ctx, period); err != nil {
		return nil, fmt.Errorf("failed to deactivate period: %w", err)
	}

	return &DeactivatePeriodOutput{}, nil
}
