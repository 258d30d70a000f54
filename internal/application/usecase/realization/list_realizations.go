// Package realization contains realization ledger-related use cases.
package realization

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/domain/entity"
)

const (
	// DefaultPageLimit is the page size used when none is requested.
	DefaultPageLimit = 20
	// MaxPageLimit caps the requested page size.
	MaxPageLimit = 200
)

// ListRealizationsInput represents the input for listing realization entries.
type ListRealizationsInput struct {
	PeriodID     *uuid.UUID
	BudgetItemID *uuid.UUID
	CategoryID   *uuid.UUID
	StartDate    *time.Time
	EndDate      *time.Time
	Search       string
	Page         int
	Limit        int
}

// ListRealizationsOutput represents the output of listing realization entries.
type ListRealizationsOutput struct {
	Entries    []*entity.RealizationEntry
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ListRealizationsUseCase handles realization listing logic.
type ListRealizationsUseCase struct {
	realizationRepo adapter.RealizationRepository
}

// NewListRealizationsUseCase creates a new ListRealizationsUseCase instance.
func NewListRealizationsUseCase(realizationRepo adapter.RealizationRepository) *ListRealizationsUseCase {
	return &ListRealizationsUseCase{
		realizationRepo: realizationRepo,
	}
}

// Execute retrieves entries matching the filter with pagination.
func (uc *ListRealizationsUseCase) Execute(ctx context.Context, input ListRealizationsInput) (*ListRealizationsOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	result, err := uc.realizationRepo.FindByFilter(ctx,
		adapter.RealizationFilter{
			PeriodID:     input.PeriodID,
			BudgetItemID: input.BudgetItemID,
			CategoryID:   input.CategoryID,
			StartDate:    input.StartDate,
			EndDate:      input.EndDate,
			Search:       input.Search,
		},
		adapter.RealizationPagination{Page: page, Limit: limit},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list realizations: %w", err)
	}

	return &ListRealizationsOutput{
		Entries:    result.Entries,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	}, nil
}
