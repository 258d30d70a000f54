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

// periodRepository implements the adapter.PeriodRepository interface.
type periodRepository struct {
	db *gorm.DB
}

// NewPeriodRepository creates a new period repository instance.
func NewPeriodRepository(db *gorm.DB) adapter.PeriodRepository {
	return &periodRepository{
		db: db,
	}
}

// Create creates a new period in the database.
func (r *periodRepository) Create(ctx context.Context, period *entity.Period) error {
	periodModel := model.PeriodFromEntity(period)
	result := dbFromContext(ctx, r.db).WithContext(ctx).Create(periodModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a period by its ID.
func (r *periodRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Period, error) {
	var periodModel model.PeriodModel
	result := dbFromContext(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&periodModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPeriodNotFound
		}
		return nil, result.Error
	}
	return periodModel.ToEntity(), nil
}

// FindAll retrieves all periods ordered by year then start date descending.
func (r *periodRepository) FindAll(ctx context.Context, activeOnly bool) ([]*entity.Period, error) {
	query := dbFromContext(ctx, r.db).WithContext(ctx)
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var periodModels []model.PeriodModel
	result := query.Order("year DESC, start_date DESC").Find(&periodModels)
	if result.Error != nil {
		return nil, result.Error
	}

	periods := make([]*entity.Period, len(periodModels))
	for i := range periodModels {
		periods[i] = periodModels[i].ToEntity()
	}
	return periods, nil
}

// ExistsByName checks if a period with the given name exists.
func (r *periodRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	result := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&model.PeriodModel{}).
		Where("name = ?", name).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// Update updates an existing period in the database.
func (r *periodRepository) Update(ctx context.Context, period *entity.Period) error {
	periodModel := model.PeriodFromEntity(period)
	result := dbFromContext(ctx, r.db).WithContext(ctx).Save(periodModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
