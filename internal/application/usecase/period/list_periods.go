// Package period contains fiscal period-related use cases.
package period

import (
	"context"
	"fmt"

	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/domain/entity"
)

// ListPeriodsInput represents the input for listing periods.
type ListPeriodsInput struct {
	ActiveOnly bool
}

// ListPeriodsOutput represents the output of listing periods.
type ListPeriodsOutput struct {
	Periods []*entity.Period
}

// ListPeriodsUseCase handles period listing logic.
type ListPeriodsUseCase struct {
	periodRepo adapter.PeriodRepository
}

// NewListPeriodsUseCase creates a new ListPeriodsUseCase instance.
func NewListPeriodsUseCase(periodRepo adapter.PeriodRepository) *ListPeriodsUseCase {
	return &ListPeriodsUseCase{
		periodRepo: periodRepo,
	}
}

// Execute retrieves the periods.
func (uc *ListPeriodsUseCase) Execute(ctx context.Context, input ListPeriodsInput) (*ListPeriodsOutput, error) {
	periods, err := uc.periodRepo.FindAll(ctx, input.ActiveOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}

	return &ListPeriodsOutput{
		Periods: periods,
	}, nil
}
