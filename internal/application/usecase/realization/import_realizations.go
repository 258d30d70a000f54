// Package realization contains realization ledger-related use cases.
package realization

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
)

// ImportEntryInput is one row of a bulk import batch. Year, month and week
// form the bulk period key together with the item: the batch path allows at
// most one entry per key, unlike manual posting.
type ImportEntryInput struct {
	BudgetItemID uuid.UUID
	PeriodID     uuid.UUID
	Date         time.Time
	Amount       decimal.Decimal
	Note         string
	Year         int
	Month        int
	Week         int
}

// ImportRealizationsInput represents the input for a bulk import.
type ImportRealizationsInput struct {
	Entries []ImportEntryInput
}

// ImportSummary summarizes a successful bulk import.
type ImportSummary struct {
	TotalRows   int
	TotalAmount decimal.Decimal
}

// ImportRealizationsOutput represents the output of a successful bulk import.
type ImportRealizationsOutput struct {
	Created []*entity.RealizationEntry
	Summary ImportSummary
}

// ImportRealizationsUseCase batch-validates and inserts realization entries.
// Any invalid row rejects the whole batch with a per-index error list; the
// insert itself is one all-or-nothing transaction.
type ImportRealizationsUseCase struct {
	realizationRepo adapter.RealizationRepository
	itemRepo        adapter.BudgetItemRepository
	txManager       adapter.TxManager
}

// NewImportRealizationsUseCase creates a new ImportRealizationsUseCase instance.
func NewImportRealizationsUseCase(
	realizationRepo adapter.RealizationRepository,
	itemRepo adapter.BudgetItemRepository,
	txManager adapter.TxManager,
) *ImportRealizationsUseCase {
	return &ImportRealizationsUseCase{
		realizationRepo: realizationRepo,
		itemRepo:        itemRepo,
		txManager:       txManager,
	}
}

// Execute validates every row before touching storage, then inserts the
// whole batch inside one serializable transaction.
func (uc *ImportRealizationsUseCase) Execute(ctx context.Context, input ImportRealizationsInput) (*ImportRealizationsOutput, error) {
	if len(input.Entries) == 0 {
		return nil, domainerror.NewRealizationError(
			domainerror.ErrCodeMissingRealizationFields,
			"batch must contain at least one entry",
			nil,
		)
	}

	var rowErrs []domainerror.BulkRowError
	failed := make(map[int]bool)

	// Field validation and in-request duplicate detection.
	seen := make(map[adapter.PeriodKey]int, len(input.Entries))
	for i, row := range input.Entries {
		if msg := validateImportRow(row); msg != "" {
			rowErrs = append(rowErrs, domainerror.BulkRowError{
				Index:   i,
				Code:    domainerror.ErrCodeMissingRealizationFields,
				Message: msg,
			})
			failed[i] = true
			continue
		}
		key := adapter.PeriodKey{BudgetItemID: row.BudgetItemID, Year: row.Year, Month: row.Month, Week: row.Week}
		if first, dup := seen[key]; dup {
			rowErrs = append(rowErrs, domainerror.BulkRowError{
				Index:   i,
				Code:    domainerror.ErrCodeDuplicatePeriodKey,
				Message: fmt.Sprintf("duplicate period key within batch (same as row %d)", first),
			})
			failed[i] = true
			continue
		}
		seen[key] = i
	}

	// One batched lookup for every referenced item.
	items, err := uc.itemRepo.FindByIDs(ctx, itemIDs(input.Entries))
	if err != nil {
		return nil, fmt.Errorf("failed to look up budget items: %w", err)
	}
	for i, row := range input.Entries {
		if failed[i] {
			continue
		}
		item, ok := items[row.BudgetItemID]
		if !ok || !item.Active {
			rowErrs = append(rowErrs, domainerror.BulkRowError{
				Index:   i,
				Code:    domainerror.ErrCodeUnknownItem,
				Message: "budget item does not exist",
			})
			failed[i] = true
			continue
		}
		if item.PeriodID != row.PeriodID {
			rowErrs = append(rowErrs, domainerror.BulkRowError{
				Index:   i,
				Code:    domainerror.ErrCodePeriodMismatch,
				Message: "entry period does not match the item's period",
			})
			failed[i] = true
		}
	}

	// Duplicate detection against already-stored entries.
	keys := make([]adapter.PeriodKey, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	stored, err := uc.realizationRepo.ExistingPeriodKeys(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to check stored period keys: %w", err)
	}
	for i, row := range input.Entries {
		if failed[i] {
			continue
		}
		key := adapter.PeriodKey{BudgetItemID: row.BudgetItemID, Year: row.Year, Month: row.Month, Week: row.Week}
		if stored[key] && seen[key] == i {
			rowErrs = append(rowErrs, domainerror.BulkRowError{
				Index:   i,
				Code:    domainerror.ErrCodeDuplicatePeriodKey,
				Message: "an entry already exists for this item, year, month and week",
			})
		}
	}

	if len(rowErrs) > 0 {
		sort.Slice(rowErrs, func(a, b int) bool { return rowErrs[a].Index < rowErrs[b].Index })
		return nil, &domainerror.BulkImportError{Rows: rowErrs}
	}

	entries := make([]*entity.RealizationEntry, len(input.Entries))
	total := decimal.Zero
	for i, row := range input.Entries {
		entry := entity.NewRealizationEntry(row.BudgetItemID, row.PeriodID, row.Date, row.Amount, row.Note)
		year, month, week := row.Year, row.Month, row.Week
		entry.Year, entry.Month, entry.Week = &year, &month, &week
		entries[i] = entry
		total = total.Add(row.Amount)
	}

	err = uc.txManager.RunSerializable(ctx, func(ctx context.Context) error {
		// Re-check under the transaction so a concurrent import of the same
		// keys cannot slip between validation and insert.
		stored, err := uc.realizationRepo.ExistingPeriodKeys(ctx, keys)
		if err != nil {
			return fmt.Errorf("failed to re-check stored period keys: %w", err)
		}
		if len(stored) > 0 {
			return domainerror.ErrConflict
		}
		return uc.realizationRepo.CreateBatch(ctx, entries)
	})
	if err != nil {
		if errors.Is(err, domainerror.ErrConflict) {
			return nil, domainerror.NewRealizationError(
				domainerror.ErrCodeBulkImportConflict,
				"concurrent import conflict, please retry",
				err,
			)
		}
		return nil, fmt.Errorf("failed to import realizations: %w", err)
	}

	return &ImportRealizationsOutput{
		Created: entries,
		Summary: ImportSummary{
			TotalRows:   len(entries),
			TotalAmount: total,
		},
	}, nil
}

// validateImportRow checks the required fields of one batch row. Returns an
// empty string when the row is valid.
func validateImportRow(row ImportEntryInput) string {
	switch {
	case row.BudgetItemID == uuid.Nil:
		return "budget item id is required"
	case row.PeriodID == uuid.Nil:
		return "period id is required"
	case row.Date.IsZero():
		return "date is required"
	case row.Amount.IsNegative():
		return "amount must not be negative"
	case row.Year <= 0:
		return "year is required"
	case row.Month < 1 || row.Month > 12:
		return "month must be between 1 and 12"
	case row.Week < 1 || row.Week > 53:
		return "week must be between 1 and 53"
	}
	return ""
}

// itemIDs collects the distinct budget item IDs of a batch.
func itemIDs(rows []ImportEntryInput) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(rows))
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		if row.BudgetItemID != uuid.Nil && !seen[row.BudgetItemID] {
			seen[row.BudgetItemID] = true
			ids = append(ids, row.BudgetItemID)
		}
	}
	return ids
}
