// Package realization contains realization ledger-related use cases.
package realization

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
)

// fakeRealizationRepo is an in-memory RealizationRepository for use case tests.
type fakeRealizationRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entity.RealizationEntry
}

func newFakeRealizationRepo() *fakeRealizationRepo {
	return &fakeRealizationRepo{entries: make(map[uuid.UUID]*entity.RealizationEntry)}
}

func (r *fakeRealizationRepo) Create(_ context.Context, entry *entity.RealizationEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *entry
	r.entries[entry.ID] = &copied
	return nil
}

func (r *fakeRealizationRepo) CreateBatch(ctx context.Context, entries []*entity.RealizationEntry) error {
	for _, entry := range entries {
		if err := r.Create(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeRealizationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.RealizationEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[id]
	if !ok {
		return nil, domainerror.ErrRealizationNotFound
	}
	copied := *entry
	return &copied, nil
}

func (r *fakeRealizationRepo) FindByFilter(_ context.Context, filter adapter.RealizationFilter, pagination adapter.RealizationPagination) (*adapter.RealizationListResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.RealizationEntry
	for _, entry := range r.entries {
		if filter.PeriodID != nil && entry.PeriodID != *filter.PeriodID {
			continue
		}
		if filter.BudgetItemID != nil && entry.BudgetItemID != *filter.BudgetItemID {
			continue
		}
		copied := *entry
		matched = append(matched, &copied)
	}
	return &adapter.RealizationListResult{
		Entries:    matched,
		Total:      int64(len(matched)),
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: 1,
	}, nil
}

func (r *fakeRealizationRepo) Update(_ context.Context, entry *entity.RealizationEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *entry
	r.entries[entry.ID] = &copied
	return nil
}

func (r *fakeRealizationRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return domainerror.ErrRealizationNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *fakeRealizationRepo) CountByItem(_ context.Context, itemID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, entry := range r.entries {
		if entry.BudgetItemID == itemID {
			count++
		}
	}
	return count, nil
}

func (r *fakeRealizationRepo) CountByPeriod(_ context.Context, periodID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, entry := range r.entries {
		if entry.PeriodID == periodID {
			count++
		}
	}
	return count, nil
}

func (r *fakeRealizationRepo) SumByItem(_ context.Context, periodID uuid.UUID, startDate, endDate *time.Time) (map[uuid.UUID]entity.RealizationTotal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	totals := make(map[uuid.UUID]entity.RealizationTotal)
	for _, entry := range r.entries {
		if entry.PeriodID != periodID {
			continue
		}
		if startDate != nil && entry.Date.Before(*startDate) {
			continue
		}
		if endDate != nil && entry.Date.After(*endDate) {
			continue
		}
		total := totals[entry.BudgetItemID]
		total.BudgetItemID = entry.BudgetItemID
		total.Sum = total.Sum.Add(entry.Amount)
		total.Count++
		totals[entry.BudgetItemID] = total
	}
	return totals, nil
}

func (r *fakeRealizationRepo) ExistingPeriodKeys(_ context.Context, keys []adapter.PeriodKey) (map[adapter.PeriodKey]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing := make(map[adapter.PeriodKey]bool)
	for _, key := range keys {
		for _, entry := range r.entries {
			if entry.Year == nil || entry.Month == nil || entry.Week == nil {
				continue
			}
			if entry.BudgetItemID == key.BudgetItemID && *entry.Year == key.Year && *entry.Month == key.Month && *entry.Week == key.Week {
				existing[key] = true
			}
		}
	}
	return existing, nil
}

// fakeItemRepo stubs the budget item lookups the realization use cases need.
type fakeItemRepo struct {
	items map[uuid.UUID]*entity.BudgetItem
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uuid.UUID]*entity.BudgetItem)}
}

func (r *fakeItemRepo) Create(_ context.Context, item *entity.BudgetItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.BudgetItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, domainerror.ErrBudgetItemNotFound
	}
	return item, nil
}

func (r *fakeItemRepo) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.BudgetItem, error) {
	found := make(map[uuid.UUID]*entity.BudgetItem)
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			found[id] = item
		}
	}
	return found, nil
}

func (r *fakeItemRepo) FindActiveByPeriod(context.Context, uuid.UUID) ([]*entity.BudgetItem, error) {
	return nil, nil
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

func (r *fakeItemRepo) CountActiveChildren(context.Context, uuid.UUID) (int, error) {
	return 0, nil
}

func (r *fakeItemRepo) CountByCategory(context.Context, uuid.UUID) (int, error) {
	return 0, nil
}

func (r *fakeItemRepo) CountByPeriod(context.Context, uuid.UUID) (int, error) {
	return 0, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *entity.BudgetItem) error {
	r.items[item.ID] = item
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

func (r *fakePeriodRepo) FindAll(context.Context, bool) ([]*entity.Period, error) {
	return nil, nil
}

func (r *fakePeriodRepo) ExistsByName(context.Context, string) (bool, error) {
	return false, nil
}

func (r *fakePeriodRepo) Update(_ context.Context, period *entity.Period) error {
	r.periods[period.ID] = period
	return nil
}

// fakeTxManager serializes transactional sections with a mutex.
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}
