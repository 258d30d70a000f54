// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/budget-ledger/backend/internal/domain/entity"
)

// RealizationFilter holds the filter criteria for listing realization entries.
type RealizationFilter struct {
	PeriodID     *uuid.UUID
	BudgetItemID *uuid.UUID
	// CategoryID filters through the referenced budget item.
	CategoryID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	// Search matches case-insensitively against the note.
	Search string
}

// RealizationPagination holds pagination parameters for listing entries.
type RealizationPagination struct {
	Page  int
	Limit int
}

// RealizationListResult represents the result of listing realization entries.
type RealizationListResult struct {
	Entries    []*entity.RealizationEntry
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// PeriodKey is the bulk-import uniqueness key: one entry per item, year,
// month and week.
type PeriodKey struct {
	BudgetItemID uuid.UUID
	Year         int
	Month        int
	Week         int
}

// RealizationRepository defines the interface for realization ledger persistence operations.
type RealizationRepository interface {
	// Create creates a new realization entry in the database.
	Create(ctx context.Context, entry *entity.RealizationEntry) error

	// CreateBatch inserts all entries. Callers run it inside a transaction
	// so the batch commits or rolls back as a whole.
	CreateBatch(ctx context.Context, entries []*entity.RealizationEntry) error

	// FindByID retrieves a realization entry by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RealizationEntry, error)

	// FindByFilter retrieves entries matching the filter with pagination,
	// ordered by date then creation time descending.
	FindByFilter(ctx context.Context, filter RealizationFilter, pagination RealizationPagination) (*RealizationListResult, error)

	// Update updates an existing realization entry in the database.
	Update(ctx context.Context, entry *entity.RealizationEntry) error

	// Delete removes a realization entry from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByItem counts the entries referencing a budget item.
	CountByItem(ctx context.Context, itemID uuid.UUID) (int, error)

	// CountByPeriod counts the entries referencing a period.
	CountByPeriod(ctx context.Context, periodID uuid.UUID) (int, error)

	// SumByItem returns the amount sum and entry count per budget item for a
	// period, via a single grouped query, optionally restricted to a date
	// range. This is the only place actual totals come from.
	SumByItem(ctx context.Context, periodID uuid.UUID, startDate, endDate *time.Time) (map[uuid.UUID]entity.RealizationTotal, error)

	// ExistingPeriodKeys returns which of the given bulk period keys already
	// hold a stored entry.
	ExistingPeriodKeys(ctx context.Context, keys []PeriodKey) (map[PeriodKey]bool, error)
}
