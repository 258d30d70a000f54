// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
	"github.com/budget-ledger/backend/internal/integration/persistence/model"
)

// budgetItemRepository implements the adapter.BudgetItemRepository interface.
type budgetItemRepository struct {
	db *gorm.DB
}

// NewBudgetItemRepository creates a new budget item repository instance.
func NewBudgetItemRepository(db *gorm.DB) adapter.BudgetItemRepository {
	return &budgetItemRepository{
		db: db,
	}
}

// Create creates a new budget item in the database.
func (r *budgetItemRepository) Create(ctx context.Context, item *entity.BudgetItem) error {
	itemModel := model.BudgetItemFromEntity(item)
	result := dbFromContext(ctx, r.db).WithContext(ctx).Create(itemModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a budget item by its ID.
func (r *budgetItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BudgetItem, error) {
	var itemModel model.BudgetItemModel
	result := dbFromContext(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&itemModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetItemNotFound
		}
		return nil, result.Error
	}
	return itemModel.ToEntity(), nil
}

// FindByIDs retrieves budget items by ID, keyed by ID.
func (r *budgetItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.BudgetItem, error) {
	items := make(map[uuid.UUID]*entity.BudgetItem, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	var itemModels []model.BudgetItemModel
	result := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("id IN ?", ids).
		Find(&itemModels)
	if result.Error != nil {
		return nil, result.Error
	}

	for i := range itemModels {
		items[itemModels[i].ID] = itemModels[i].ToEntity()
	}
	return items, nil
}

// FindActiveByPeriod retrieves every active item of a period, unfiltered.
func (r *budgetItemRepository) FindActiveByPeriod(ctx context.Context, periodID uuid.UUID) ([]*entity.BudgetItem, error) {
	var itemModels []model.BudgetItemModel
	result := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("period_id = ? AND active = ?", periodID, true).
		Order("level ASC, sort_order ASC").
		Find(&itemModels)
	if result.Error != nil {
		return nil, result.Error
	}

	items := make([]*entity.BudgetItem, len(itemModels))
	for i := range itemModels {
		items[i] = itemModels[i].ToEntity()
	}
	return items, nil
}

// budgetItemRow carries the item columns plus the grouped child count.
type budgetItemRow struct {
	model.BudgetItemModel
	ChildCount int
}

// FindByFilter retrieves items matching the filter together with their active
// direct-child counts via a correlated subquery.
func (r *budgetItemRepository) FindByFilter(ctx context.Context, filter adapter.BudgetItemFilter) ([]*entity.BudgetItemWithChildCount, error) {
	db := dbFromContext(ctx, r.db)
	query := db.WithContext(ctx).
		Model(&model.BudgetItemModel{}).
		Select("budget_items.*, (?) AS child_count",
			db.Model(&model.BudgetItemModel{}).
				Select("COUNT(*)").
				Where("children.parent_id = budget_items.id AND children.active = ?", true).
				Table("budget_items AS children"),
		).
		Where("budget_items.period_id = ?", filter.PeriodID)

	if !filter.IncludeInactive {
		query = query.Where("budget_items.active = ?", true)
	}
	if filter.CategoryID != nil {
		query = query.Where("budget_items.category_id = ?", *filter.CategoryID)
	}
	if filter.ParentID != nil {
		query = query.Where("budget_items.parent_id = ?", *filter.ParentID)
	}
	if filter.Level != nil {
		query = query.Where("budget_items.level = ?", *filter.Level)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(budget_items.name) LIKE ? OR LOWER(budget_items.code) LIKE ? OR LOWER(budget_items.description) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var rows []budgetItemRow
	result := query.Order("budget_items.level ASC, budget_items.sort_order ASC").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	items := make([]*entity.BudgetItemWithChildCount, len(rows))
	for i := range rows {
		items[i] = &entity.BudgetItemWithChildCount{
			Item:       rows[i].BudgetItemModel.ToEntity(),
			ChildCount: rows[i].ChildCount,
		}
	}
	return items, nil
}

// CountSiblings counts the active items sharing the same parent, category,
// period and level.
func (r *budgetItemRepository) CountSiblings(ctx context.Context, parentID *uuid.UUID, categoryID, periodID uuid.UUID, level int) (int, error) {
	query := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&model.BudgetItemModel{}).
		Where("category_id = ? AND period_id = ? AND level = ? AND active = ?", categoryID, periodID, level, true)
	query = whereParent(query, parentID)

	var count int64
	result := query.Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(count), nil
}

// MaxSiblingOrder returns the highest sort order among items sharing the
// same parent and level within a period, or 0 when there are none.
func (r *budgetItemRepository) MaxSiblingOrder(ctx context.Context, parentID *uuid.UUID, periodID uuid.UUID, level int) (int, error) {
	query := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&model.BudgetItemModel{}).
		Where("period_id = ? AND level = ?", periodID, level)
	query = whereParent(query, parentID)

	var maxOrder *int
	result := query.Select("MAX(sort_order)").Scan(&maxOrder)
	if result.Error != nil {
		return 0, result.Error
	}
	if maxOrder == nil {
		return 0, nil
	}
	return *maxOrder, nil
}

// ExistsByCode checks if an item code exists within a category and period.
func (r *budgetItemRepository) ExistsByCode(ctx context.Context, categoryID, periodID uuid.UUID, code string) (bool, error) {
	var count int64
	result := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&model.BudgetItemModel{}).
		Where("category_id = ? AND period_id = ? AND code = ?", categoryID, periodID, code).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// CountActiveChildren counts the active direct children of an item.
func (r *budgetItemRepository) CountActiveChildren(ctx context.Context, itemID uuid.UUID) (int, error) {
	var count int64
	result := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&model.BudgetItemModel{}).
		Where("parent_id = ? AND active = ?", itemID, true).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(count), nil
}

// CountByCategory counts the active items referencing a category.
func (r *budgetItemRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var count int64
	result := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&model.BudgetItemModel{}).
		Where("category_id = ? AND active = ?", categoryID, true).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(count), nil
}

// CountByPeriod counts the active items referencing a period.
func (r *budgetItemRepository) CountByPeriod(ctx context.Context, periodID uuid.UUID) (int, error) {
	var count int64
	result := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&model.BudgetItemModel{}).
		Where("period_id = ? AND active = ?", periodID, true).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(count), nil
}

// Update updates an existing budget item in the database.
func (r *budgetItemRepository) Update(ctx context.Context, item *entity.BudgetItem) error {
	itemModel := model.BudgetItemFromEntity(item)
	result := dbFromContext(ctx, r.db).WithContext(ctx).Save(itemModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// whereParent applies a parent filter handling the NULL root case.
func whereParent(query *gorm.DB, parentID *uuid.UUID) *gorm.DB {
	if parentID == nil {
		return query.Where("parent_id IS NULL")
	}
	return query.Where("parent_id = ?", *parentID)
}
