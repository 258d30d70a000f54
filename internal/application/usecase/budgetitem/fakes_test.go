// Package budgetitem contains budget item tree-related use cases.
package budgetitem

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
)

// fakeItemRepo is an in-memory BudgetItemRepository for use case tests.
type fakeItemRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.BudgetItem
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uuid.UUID]*entity.BudgetItem)}
}

func (r *fakeItemRepo) Create(_ context.Context, item *entity.BudgetItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.BudgetItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, domainerror.ErrBudgetItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeItemRepo) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.BudgetItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := make(map[uuid.UUID]*entity.BudgetItem)
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			copied := *item
			found[id] = &copied
		}
	}
	return found, nil
}

func (r *fakeItemRepo) FindActiveByPeriod(_ context.Context, periodID uuid.UUID) ([]*entity.BudgetItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []*entity.BudgetItem
	for _, item := range r.items {
		if item.PeriodID == periodID && item.Active {
			copied := *item
			items = append(items, &copied)
		}
	}
	return items, nil
}

func (r *fakeItemRepo) FindByFilter(_ context.Context, filter adapter.BudgetItemFilter) ([]*entity.BudgetItemWithChildCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var results []*entity.BudgetItemWithChildCount
	for _, item := range r.items {
		if item.PeriodID != filter.PeriodID {
			continue
		}
		if !filter.IncludeInactive && !item.Active {
			continue
		}
		if filter.CategoryID != nil && item.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.ParentID != nil && (item.ParentID == nil || *item.ParentID != *filter.ParentID) {
			continue
		}
		if filter.Level != nil && item.Level != *filter.Level {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(filter.Search)) {
			continue
		}
		childCount := 0
		for _, other := range r.items {
			if other.ParentID != nil && *other.ParentID == item.ID && other.Active {
				childCount++
			}
		}
		copied := *item
		results = append(results, &entity.BudgetItemWithChildCount{Item: &copied, ChildCount: childCount})
	}
	return results, nil
}

func (r *fakeItemRepo) CountSiblings(_ context.Context, parentID *uuid.UUID, categoryID, periodID uuid.UUID, level int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, item := range r.items {
		if item.CategoryID != categoryID || item.PeriodID != periodID || item.Level != level || !item.Active {
			continue
		}
		if sameParent(item.ParentID, parentID) {
			count++
		}
	}
	return count, nil
}

func (r *fakeItemRepo) MaxSiblingOrder(_ context.Context, parentID *uuid.UUID, periodID uuid.UUID, level int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	maxOrder := 0
	for _, item := range r.items {
		if item.PeriodID != periodID || item.Level != level {
			continue
		}
		if sameParent(item.ParentID, parentID) && item.Order > maxOrder {
			maxOrder = item.Order
		}
	}
	return maxOrder, nil
}

func (r *fakeItemRepo) ExistsByCode(_ context.Context, categoryID, periodID uuid.UUID, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.CategoryID == categoryID && item.PeriodID == periodID && item.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeItemRepo) CountActiveChildren(_ context.Context, itemID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, item := range r.items {
		if item.ParentID != nil && *item.ParentID == itemID && item.Active {
			count++
		}
	}
	return count, nil
}

func (r *fakeItemRepo) CountByCategory(_ context.Context, categoryID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, item := range r.items {
		if item.CategoryID == categoryID && item.Active {
			count++
		}
	}
	return count, nil
}

func (r *fakeItemRepo) CountByPeriod(_ context.Context, periodID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, item := range r.items {
		if item.PeriodID == periodID && item.Active {
			count++
		}
	}
	return count, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *entity.BudgetItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func sameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// fakeCategoryRepo is an in-memory CategoryRepository for use case tests.
type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

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

func (r *fakeCategoryRepo) FindAll(_ context.Context, activeOnly bool) ([]*entity.Category, error) {
	var categories []*entity.Category
	for _, category := range r.categories {
		if activeOnly && !category.Active {
			continue
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func (r *fakeCategoryRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, category := range r.categories {
		if category.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) ExistsByShortCode(_ context.Context, shortCode string) (bool, error) {
	for _, category := range r.categories {
		if category.ShortCode == shortCode {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

// fakePeriodRepo is an in-memory PeriodRepository for use case tests.
type fakePeriodRepo struct {
	periods map[uuid.UUID]*entity.Period
}

func newFakePeriodRepo() *fakePeriodRepo {
	return &fakePeriodRepo{periods: make(map[uuid.UUID]*entity.Period)}
}

func (r *fakePeriodRepo) Create(_ context.Context, period *entity.Period) error {
	r.periods[period.ID] = period
	return nil
}

func (r *fakePeriodRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Period, error) {
	period, ok := r.periods[id]
	if !ok {
		return nil, domainerror.ErrPeriodNotFound
	}
	return period, nil
}

func (r *fakePeriodRepo) FindAll(_ context.Context, activeOnly bool) ([]*entity.Period, error) {
	var periods []*entity.Period
	for _, period := range r.periods {
		if activeOnly && !period.Active {
			continue
		}
		periods = append(periods, period)
	}
	return periods, nil
}

func (r *fakePeriodRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, period := range r.periods {
		if period.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePeriodRepo) Update(_ context.Context, period *entity.Period) error {
	r.periods[period.ID] = period
	return nil
}

// fakeRealizationCounter stubs the realization repository methods the
// deactivation use case touches.
type fakeRealizationCounter struct {
	countsByItem map[uuid.UUID]int
}

func newFakeRealizationCounter() *fakeRealizationCounter {
	return &fakeRealizationCounter{countsByItem: make(map[uuid.UUID]int)}
}

func (r *fakeRealizationCounter) Create(context.Context, *entity.RealizationEntry) error {
	return nil
}

func (r *fakeRealizationCounter) CreateBatch(context.Context, []*entity.RealizationEntry) error {
	return nil
}

func (r *fakeRealizationCounter) FindByID(context.Context, uuid.UUID) (*entity.RealizationEntry, error) {
	return nil, domainerror.ErrRealizationNotFound
}

func (r *fakeRealizationCounter) FindByFilter(context.Context, adapter.RealizationFilter, adapter.RealizationPagination) (*adapter.RealizationListResult, error) {
	return &adapter.RealizationListResult{}, nil
}

func (r *fakeRealizationCounter) Update(context.Context, *entity.RealizationEntry) error {
	return nil
}

func (r *fakeRealizationCounter) Delete(context.Context, uuid.UUID) error {
	return nil
}

func (r *fakeRealizationCounter) CountByItem(_ context.Context, itemID uuid.UUID) (int, error) {
	return r.countsByItem[itemID], nil
}

func (r *fakeRealizationCounter) CountByPeriod(context.Context, uuid.UUID) (int, error) {
	return 0, nil
}

func (r *fakeRealizationCounter) SumByItem(context.Context, uuid.UUID, *time.Time, *time.Time) (map[uuid.UUID]entity.RealizationTotal, error) {
	return map[uuid.UUID]entity.RealizationTotal{}, nil
}

func (r *fakeRealizationCounter) ExistingPeriodKeys(context.Context, []adapter.PeriodKey) (map[adapter.PeriodKey]bool, error) {
	return map[adapter.PeriodKey]bool{}, nil
}

// fakeTxManager serializes transactional sections with a mutex, mirroring
// what serializable isolation guarantees for the tree placement reads.
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}
