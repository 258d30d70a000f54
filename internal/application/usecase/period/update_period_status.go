// Package period contains fiscal period-related use cases.
package period

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
)

// UpdatePeriodStatusInput represents the input for a period status change.
type UpdatePeriodStatusInput struct {
	PeriodID uuid.UUID
	Status   entity.PeriodStatus
}

// UpdatePeriodStatusOutput represents the output of a period status change.
type UpdatePeriodStatusOutput struct {
	Period *entity.Period
}

// UpdatePeriodStatusUseCase handles period status transitions. Transitions
// are caller-controlled; realization posting separately enforces that the
// period is active.
type UpdatePeriodStatusUseCase struct {
	periodRepo adapter.PeriodRepository
}

// NewUpdatePeriodStatusUseCase creates a new UpdatePeriodStatusUseCase instance.
func NewUpdatePeriodStatusUseCase(periodRepo adapter.PeriodRepository) *UpdatePeriodStatusUseCase {
	return &UpdatePeriodStatusUseCase{
		periodRepo: periodRepo,
	}
}

// Execute applies the requested status.
func (uc *UpdatePeriodStatusUseCase) Execute(ctx context.Context, input UpdatePeriodStatusInput) (*UpdatePeriodStatusOutput, error) {
	switch input.Status {
	case entity.PeriodStatusDraft, entity.PeriodStatusActive, entity.PeriodStatusClosed:
	default:
		return nil, domainerror.NewPeriodError(
			domainerror.ErrCodeInvalidPeriodStatus,
			"status must be 'draft', 'active' or 'closed'",
			domainerror.ErrInvalidPeriodStatus,
		)
	}

	period, err := uc.periodRepo.FindByID(ctx, input.PeriodID)
	if err != nil {
		return nil, domainerror.NewPeriodError(
			domainerror.ErrCodePeriodNotFound,
			"period not found",
			domainerror.ErrPeriodNotFound,
		)
	}

	period.Status = input.Status
	period.UpdatedAt = time.Now().UTC()

	if err := uc.periodRepo.Update(ctx, period); err != nil {
		return nil, fmt.Errorf("failed to update period status: %w", err)
	}

	return &UpdatePeriodStatusOutput{
		Period: period,
	}, nil
}
