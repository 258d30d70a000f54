// Package period contains fiscal period-related use cases.
package period

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
)

// CreatePeriodInput represents the input for period creation.
type CreatePeriodInput struct {
	Name      string
	Year      int
	StartDate time.Time
	EndDate   time.Time
}

// CreatePeriodOutput represents the output of period creation.
type CreatePeriodOutput struct {
	Period *entity.Period
}

// CreatePeriodUseCase handles period creation logic.
type CreatePeriodUseCase struct {
	periodRepo adapter.PeriodRepository
}

// NewCreatePeriodUseCase creates a new CreatePeriodUseCase instance.
func NewCreatePeriodUseCase(periodRepo adapter.PeriodRepository) *CreatePeriodUseCase {
	return &CreatePeriodUseCase{
		periodRepo: periodRepo,
	}
}

// Execute performs the period creation. Date ranges of different periods may
// overlap; callers pick one period explicitly.
func (uc *CreatePeriodUseCase) Execute(ctx context.Context, input CreatePeriodInput) (*CreatePeriodOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Year <= 0 {
		return nil, domainerror.NewPeriodError(
			domainerror.ErrCodeMissingPeriodFields,
			"name and year are required",
			nil,
		)
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, domainerror.NewPeriodError(
			domainerror.ErrCodeInvalidPeriodDates,
			"end date must not be before start date",
			domainerror.ErrInvalidPeriodDates,
		)
	}

	exists, err := uc.periodRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check period name existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewPeriodError(
			domainerror.ErrCodePeriodNameExists,
			"a period with this name already exists",
			domainerror.ErrPeriodNameExists,
		)
	}

	period := entity.NewPeriod(name, input.Year, input.StartDate, input.EndDate)

	if err := uc.periodRepo.Create(ctx, period); err != nil {
		return nil, fmt.Errorf("failed to create period: %w", err)
	}

	return &CreatePeriodOutput{
		Period: period,
	}, nil
}
