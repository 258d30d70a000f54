// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
	"github.com/budget-ledger/backend/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category in the database.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	result := dbFromContext(ctx, r.db).WithContext(ctx).Create(categoryModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a category by its ID.
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := dbFromContext(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindByIDs retrieves categories by ID, keyed by ID.
func (r *categoryRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Category, error) {
	categories := make(map[uuid.UUID]*entity.Category, len(ids))
	if len(ids) == 0 {
		return categories, nil
	}

	var categoryModels []model.CategoryModel
	result := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("id IN ?", ids).
		Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	for i := range categoryModels {
		categories[categoryModels[i].ID] = categoryModels[i].ToEntity()
	}
	return categories, nil
}

// FindAll retrieves all categories, optionally restricted to active ones.
func (r *categoryRepository) FindAll(ctx context.Context, activeOnly bool) ([]*entity.Category, error) {
	query := dbFromContext(ctx, r.db).WithContext(ctx)
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var categoryModels []model.CategoryModel
	result := query.Order("short_code ASC").Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToEntity()
	}
	return categories, nil
}

// ExistsByName checks if a category with the given name exists.
func (r *categoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	result := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("name = ?", name).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// ExistsByShortCode checks if a category with the given short code exists.
func (r *categoryRepository) ExistsByShortCode(ctx context.Context, shortCode string) (bool, error) {
	var count int64
	result := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("short_code = ?", shortCode).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// Update updates an existing category in the database.
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	result := dbFromContext(ctx, r.db).WithContext(ctx).Save(categoryModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
