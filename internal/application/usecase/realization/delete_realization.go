// Package realization contains realization ledger-related use cases.
package realization

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budget-ledger/backend/internal/application/adapter"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
)

// DeleteRealizationInput represents the input for deleting a realization entry.
type DeleteRealizationInput struct {
	EntryID uuid.UUID
}

// DeleteRealizationOutput represents the output of deleting a realization entry.
type DeleteRealizationOutput struct{}

// DeleteRealizationUseCase handles realization deletion.
type DeleteRealizationUseCase struct {
	realizationRepo adapter.RealizationRepository
}

// NewDeleteRealizationUseCase creates a new DeleteRealizationUseCase instance.
func NewDeleteRealizationUseCase(realizationRepo adapter.RealizationRepository) *DeleteRealizationUseCase {
	return &DeleteRealizationUseCase{
		realizationRepo: realizationRepo,
	}
}

// Execute removes the entry.
func (uc *DeleteRealizationUseCase) Execute(ctx context.Context, input DeleteRealizationInput) (*DeleteRealizationOutput, error) {
	if _, err := uc.realizationRepo.FindByID(ctx, input.EntryID); err != nil {
		return nil, domainerror.NewRealizationError(
			domainerror.ErrCodeRealizationNotFound,
			"realization entry not found",
			domainerror.ErrRealizationNotFound,
		)
	}

	if err := uc.realizationRepo.Delete(ctx, input.EntryID); err != nil {
		return nil, fmt.Errorf("failed to delete realization entry: %w", err)
	}

	return &DeleteRealizationOutput{}, nil
}
