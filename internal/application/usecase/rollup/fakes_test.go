// Package rollup contains the bottom-up aggregation engine.
package rollup

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
)

// fakeItemRepo serves the full active item set of a period.
type fakeItemRepo struct {
	items []*entity.BudgetItem
}

func (r *fakeItemRepo) Create(context.Context, *entity.BudgetItem) error { return nil }

func (r *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.BudgetItem, error) {
	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, domainerror.ErrBudgetItemNotFound
}

func (r *fakeItemRepo) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.BudgetItem, error) {
	found := make(map[uuid.UUID]*entity.BudgetItem)
	for _, id := range ids {
		for _, item := range r.items {
			if item.ID == id {
				found[id] = item
			}
		}
	}
	return found, nil
}

func (r *fakeItemRepo) FindActiveByPeriod(_ context.Context, periodID uuid.UUID) ([]*entity.BudgetItem, error) {
	var active []*entity.BudgetItem
	for _, item := range r.items {
		if item.PeriodID == periodID && item.Active {
			active = append(active, item)
		}
	}
	return active, nil
}

func (r *fakeItemRepo) FindByFilter(context.Context, adapter.BudgetItemFilter) ([]*entity.BudgetItemWithChildCount, error) {
	return nil, nil
}

func (r *fakeItemRepo) CountSiblings(context.Context, *uuid.UUID, uuid.UUID, uuid.UUID, int) (int, error) {
	return 0, nil
}

func (r *fakeItemRepo) MaxSiblingOrder(context.Context, *uuid.UUID, uuid.UUID, int) (int, error) {
	return 0, nil
}

func (r *fakeItemRepo) ExistsByCode(context.Context, uuid.UUID, uuid.UUID, string) (bool, error) {
	return false, nil
}

func (r *fakeItemRepo) CountActiveChildren(context.Context, uuid.UUID) (int, error) { return 0, nil }
func (r *fakeItemRepo) CountByCategory(context.Context, uuid.UUID) (int, error)     { return 0, nil }
func (r *fakeItemRepo) CountByPeriod(context.Context, uuid.UUID) (int, error)       { return 0, nil }
func (r *fakeItemRepo) Update(context.Context, *entity.BudgetItem) error            { return nil }

// fakeRealizationRepo serves canned grouped sums.
type fakeRealizationRepo struct {
	totals map[uuid.UUID]entity.RealizationTotal
}

func (r *fakeRealizationRepo) Create(context.Context, *entity.RealizationEntry) error { return nil }

func (r *fakeRealizationRepo) CreateBatch(context.Context, []*entity.RealizationEntry) error {
	return nil
}

func (r *fakeRealizationRepo) FindByID(context.Context, uuid.UUID) (*entity.RealizationEntry, error) {
	return nil, domainerror.ErrRealizationNotFound
}

func (r *fakeRealizationRepo) FindByFilter(context.Context, adapter.RealizationFilter, adapter.RealizationPagination) (*adapter.RealizationListResult, error) {
	return &adapter.RealizationListResult{}, nil
}

func (r *fakeRealizationRepo) Update(context.Context, *entity.RealizationEntry) error { return nil }
func (r *fakeRealizationRepo) Delete(context.Context, uuid.UUID) error                { return nil }
func (r *fakeRealizationRepo) CountByItem(context.Context, uuid.UUID) (int, error)    { return 0, nil }
func (r *fakeRealizationRepo) CountByPeriod(context.Context, uuid.UUID) (int, error)  { return 0, nil }

func (r *fakeRealizationRepo) SumByItem(context.Context, uuid.UUID, *time.Time, *time.Time) (map[uuid.UUID]entity.RealizationTotal, error) {
	return r.totals, nil
}

func (r *fakeRealizationRepo) ExistingPeriodKeys(context.Context, []adapter.PeriodKey) (map[adapter.PeriodKey]bool, error) {
	return map[adapter.PeriodKey]bool{}, nil
}

// fakePeriodRepo serves a single known period.
type fakePeriodRepo struct {
	period *entity.Period
}

func (r *fakePeriodRepo) Create(context.Context, *entity.Period) error { return nil }

func (r *fakePeriodRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Period, error) {
	if r.period != nil && r.period.ID == id {
		return r.period, nil
	}
	return nil, domainerror.ErrPeriodNotFound
}

func (r *fakePeriodRepo) FindAll(context.Context, bool) ([]*entity.Period, error) { return nil, nil }
func (r *fakePeriodRepo) ExistsByName(context.Context, string) (bool, error)      { return false, nil }
func (r *fakePeriodRepo) Update(context.Context, *entity.Period) error            { return nil }

// fakeCategoryRepo serves canned categories keyed by ID.
type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func (r *fakeCategoryRepo) Create(context.Context, *entity.Category) error { return nil }

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return category, nil
}

func (r *fakeCategoryRepo) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Category, error) {
	found := make(map[uuid.UUID]*entity.Category)
	for _, id := range ids {
		if category, ok := r.categories[id]; ok {
			found[id] = category
		}
	}
	return found, nil
}

func (r *fakeCategoryRepo) FindAll(context.Context, bool) ([]*entity.Category, error) {
	return nil, nil
}

func (r *fakeCategoryRepo) ExistsByName(context.Context, string) (bool, error) { return false, nil }
func (r *fakeCategoryRepo) ExistsByShortCode(context.Context, string) (bool, error) {
	return false, nil
}
func (r *fakeCategoryRepo) Update(context.Context, *entity.Category) error { return nil }
