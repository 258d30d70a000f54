// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
	"github.com/budget-ledger/backend/internal/integration/persistence/model"
)

// realizationRepository implements the adapter.RealizationRepository interface.
type realizationRepository struct {
	db *gorm.DB
}

// NewRealizationRepository creates a new realization repository instance.
func NewRealizationRepository(db *gorm.DB) adapter.RealizationRepository {
	return &realizationRepository{
		db: db,
	}
}

// Create creates a new realization entry in the database.
func (r *realizationRepository) Create(ctx context.Context, entry *entity.RealizationEntry) error {
	entryModel := model.RealizationEntryFromEntity(entry)
	result := dbFromContext(ctx, r.db).WithContext(ctx).Create(entryModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// CreateBatch inserts all entries. Callers wrap it in a transaction so the
// batch commits or rolls back as a whole.
func (r *realizationRepository) CreateBatch(ctx context.Context, entries []*entity.RealizationEntry) error {
	if len(entries) == 0 {
		return nil
	}

	entryModels := make([]*model.RealizationEntryModel, len(entries))
	for i := range entries {
		entryModels[i] = model.RealizationEntryFromEntity(entries[i])
	}

	result := dbFromContext(ctx, r.db).WithContext(ctx).CreateInBatches(entryModels, 100)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a realization entry by its ID.
func (r *realizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RealizationEntry, error) {
	var entryModel model.RealizationEntryModel
	result := dbFromContext(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&entryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRealizationNotFound
		}
		return nil, result.Error
	}
	return entryModel.ToEntity(), nil
}

// FindByFilter retrieves entries matching the filter with pagination, ordered
// by date then creation time descending.
func (r *realizationRepository) FindByFilter(ctx context.Context, filter adapter.RealizationFilter, pagination adapter.RealizationPagination) (*adapter.RealizationListResult, error) {
	query := dbFromContext(ctx, r.db).WithContext(ctx).Model(&model.RealizationEntryModel{})

	if filter.PeriodID != nil {
		query = query.Where("realization_entries.period_id = ?", *filter.PeriodID)
	}
	if filter.BudgetItemID != nil {
		query = query.Where("realization_entries.budget_item_id = ?", *filter.BudgetItemID)
	}
	if filter.CategoryID != nil {
		query = query.
			Joins("JOIN budget_items ON budget_items.id = realization_entries.budget_item_id").
			Where("budget_items.category_id = ?", *filter.CategoryID)
	}
	if filter.StartDate != nil {
		query = query.Where("realization_entries.date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("realization_entries.date <= ?", *filter.EndDate)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("LOWER(realization_entries.note) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (pagination.Page - 1) * pagination.Limit
	var entryModels []model.RealizationEntryModel
	result := query.
		Order("realization_entries.date DESC, realization_entries.created_at DESC").
		Offset(offset).
		Limit(pagination.Limit).
		Find(&entryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]*entity.RealizationEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToEntity()
	}

	return &adapter.RealizationListResult{
		Entries:    entries,
		Total:      total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(pagination.Limit))),
	}, nil
}

// Update updates an existing realization entry in the database.
func (r *realizationRepository) Update(ctx context.Context, entry *entity.RealizationEntry) error {
	entryModel := model.RealizationEntryFromEntity(entry)
	result := dbFromContext(ctx, r.db).WithContext(ctx).Save(entryModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a realization entry from the database.
func (r *realizationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.RealizationEntryModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRealizationNotFound
	}
	return nil
}

// CountByItem counts the entries referencing a budget item.
func (r *realizationRepository) CountByItem(ctx context.Context, itemID uuid.UUID) (int, error) {
	var count int64
	result := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&model.RealizationEntryModel{}).
		Where("budget_item_id = ?", itemID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(count), nil
}

// CountByPeriod counts the entries referencing a period.
func (r *realizationRepository) CountByPeriod(ctx context.Context, periodID uuid.UUID) (int, error) {
	var count int64
	result := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&model.RealizationEntryModel{}).
		Where("period_id = ?", periodID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(count), nil
}

// realizationSumRow carries one grouped sum row. The sum is scanned as a
// string so decimal precision survives the round trip on every driver.
type realizationSumRow struct {
	BudgetItemID uuid.UUID
	TotalAmount  decimal.Decimal
	EntryCount   int
}

// SumByItem returns the amount sum and entry count per budget item for a
// period via a single grouped query, optionally restricted to a date range.
func (r *realizationRepository) SumByItem(ctx context.Context, periodID uuid.UUID, startDate, endDate *time.Time) (map[uuid.UUID]entity.RealizationTotal, error) {
	query := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&model.RealizationEntryModel{}).
		Select("budget_item_id, SUM(amount) AS total_amount, COUNT(*) AS entry_count").
		Where("period_id = ?", periodID)

	if startDate != nil {
		query = query.Where("date >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("date <= ?", *endDate)
	}

	var rows []realizationSumRow
	result := query.Group("budget_item_id").Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	totals := make(map[uuid.UUID]entity.RealizationTotal, len(rows))
	for i := range rows {
		totals[rows[i].BudgetItemID] = entity.RealizationTotal{
			BudgetItemID: rows[i].BudgetItemID,
			Sum:          rows[i].TotalAmount,
			Count:        rows[i].EntryCount,
		}
	}
	return totals, nil
}

// ExistingPeriodKeys returns which of the given bulk period keys already hold
// a stored entry.
func (r *realizationRepository) ExistingPeriodKeys(ctx context.Context, keys []adapter.PeriodKey) (map[adapter.PeriodKey]bool, error) {
	existing := make(map[adapter.PeriodKey]bool, len(keys))
	if len(keys) == 0 {
		return existing, nil
	}

	query := dbFromContext(ctx, r.db).WithContext(ctx).Model(&model.RealizationEntryModel{})
	conditions := dbFromContext(ctx, r.db).Session(&gorm.Session{NewDB: true})
	for _, key := range keys {
		conditions = conditions.Or(
			"(budget_item_id = ? AND year = ? AND month = ? AND week = ?)",
			key.BudgetItemID, key.Year, key.Month, key.Week,
		)
	}

	var rows []struct {
		BudgetItemID uuid.UUID
		Year         *int
		Month        *int
		Week         *int
	}
	result := query.
		Select("budget_item_id, year, month, week").
		Where(conditions).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	for _, row := range rows {
		if row.Year == nil || row.Month == nil || row.Week == nil {
			continue
		}
		existing[adapter.PeriodKey{
			BudgetItemID: row.BudgetItemID,
			Year:         *row.Year,
			Month:        *row.Month,
			Week:         *row.Week,
		}] = true
	}
	return existing, nil
}
