// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
)

type realizationTestFixture struct {
	repo     adapter.RealizationRepository
	category *entity.Category
	period   *entity.Period
	item     *entity.BudgetItem
	item2    *entity.BudgetItem
}

func newRealizationTestFixture(t *testing.T) *realizationTestFixture {
	t.Helper()
	db := newTestDB(t)
	ctx := context.Background()

	category := entity.NewCategory("Revenue", "A")
	if err := NewCategoryRepository(db).Create(ctx, category); err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	period := entity.NewPeriod("FY2026", 2026,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	if err := NewPeriodRepository(db).Create(ctx, period); err != nil {
		t.Fatalf("failed to seed period: %v", err)
	}

	itemRepo := NewBudgetItemRepository(db)
	item := entity.NewBudgetItem(category.ID, period.ID, nil, "Sales", "")
	item.Code = "A"
	item.Level = 1
	item.Order = 1
	if err := itemRepo.Create(ctx, item); err != nil {
		t.Fatalf("failed to seed item: %v", err)
	}
	item2 := entity.NewBudgetItem(category.ID, period.ID, nil, "Services", "")
	item2.Code = "B"
	item2.Level = 1
	item2.Order = 2
	if err := itemRepo.Create(ctx, item2); err != nil {
		t.Fatalf("failed to seed second item: %v", err)
	}

	return &realizationTestFixture{
		repo:     NewRealizationRepository(db),
		category: category,
		period:   period,
		item:     item,
		item2:    item2,
	}
}

func (f *realizationTestFixture) post(t *testing.T, item *entity.BudgetItem, day int, amount string, note string) *entity.RealizationEntry {
	t.Helper()
	entry := entity.NewRealizationEntry(item.ID, f.period.ID,
		time.Date(2026, 1, day, 0, 0, 0, 0, time.UTC),
		decimal.RequireFromString(amount), note)
	if err := f.repo.Create(context.Background(), entry); err != nil {
		t.Fatalf("failed to seed entry: %v", err)
	}
	return entry
}

func TestRealizationRepository_SumByItem(t *testing.T) {
	f := newRealizationTestFixture(t)
	ctx := context.Background()

	f.post(t, f.item, 5, "100.50", "")
	f.post(t, f.item, 10, "49.50", "")
	f.post(t, f.item2, 15, "1000", "")

	t.Run("groups per item", func(t *testing.T) {
		totals, err := f.repo.SumByItem(ctx, f.period.ID, nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(totals) != 2 {
			t.Fatalf("expected totals for 2 items, got %d", len(totals))
		}
		if got := totals[f.item.ID]; !got.Sum.Equal(decimal.RequireFromString("150")) || got.Count != 2 {
			t.Errorf("item total mismatch: sum %s, count %d", got.Sum, got.Count)
		}
		if got := totals[f.item2.ID]; !got.Sum.Equal(decimal.RequireFromString("1000")) || got.Count != 1 {
			t.Errorf("second item total mismatch: sum %s, count %d", got.Sum, got.Count)
		}
	})

	t.Run("honors the date range", func(t *testing.T) {
		start := time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
		totals, err := f.repo.SumByItem(ctx, f.period.ID, &start, &end)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(totals) != 1 {
			t.Fatalf("expected totals for 1 item, got %d", len(totals))
		}
		if got := totals[f.item.ID]; !got.Sum.Equal(decimal.RequireFromString("49.50")) || got.Count != 1 {
			t.Errorf("ranged total mismatch: sum %s, count %d", got.Sum, got.Count)
		}
	})

	t.Run("empty period", func(t *testing.T) {
		totals, err := f.repo.SumByItem(ctx, uuid.New(), nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(totals) != 0 {
			t.Errorf("expected no totals, got %d", len(totals))
		}
	})
}

func TestRealizationRepository_FindByFilter(t *testing.T) {
	f := newRealizationTestFixture(t)
	ctx := context.Background()

	for day := 1; day <= 5; day++ {
		f.post(t, f.item, day, "10", fmt.Sprintf("week report %d", day))
	}
	f.post(t, f.item2, 20, "500", "quarterly invoice")

	t.Run("paginates", func(t *testing.T) {
		result, err := f.repo.FindByFilter(ctx,
			adapter.RealizationFilter{PeriodID: &f.period.ID},
			adapter.RealizationPagination{Page: 1, Limit: 4})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 6 || result.TotalPages != 2 {
			t.Errorf("expected total 6 over 2 pages, got %d over %d", result.Total, result.TotalPages)
		}
		if len(result.Entries) != 4 {
			t.Errorf("expected 4 entries on page 1, got %d", len(result.Entries))
		}

		result, err = f.repo.FindByFilter(ctx,
			adapter.RealizationFilter{PeriodID: &f.period.ID},
			adapter.RealizationPagination{Page: 2, Limit: 4})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Entries) != 2 {
			t.Errorf("expected 2 entries on page 2, got %d", len(result.Entries))
		}
	})

	t.Run("orders by date descending", func(t *testing.T) {
		result, err := f.repo.FindByFilter(ctx,
			adapter.RealizationFilter{PeriodID: &f.period.ID},
			adapter.RealizationPagination{Page: 1, Limit: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := 1; i < len(result.Entries); i++ {
			if result.Entries[i].Date.After(result.Entries[i-1].Date) {
				t.Fatalf("entries out of order at index %d", i)
			}
		}
	})

	t.Run("filters by item", func(t *testing.T) {
		result, err := f.repo.FindByFilter(ctx,
			adapter.RealizationFilter{BudgetItemID: &f.item2.ID},
			adapter.RealizationPagination{Page: 1, Limit: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 1 {
			t.Errorf("expected 1 entry, got %d", result.Total)
		}
	})

	t.Run("filters by category through the item join", func(t *testing.T) {
		result, err := f.repo.FindByFilter(ctx,
			adapter.RealizationFilter{CategoryID: &f.category.ID},
			adapter.RealizationPagination{Page: 1, Limit: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 6 {
			t.Errorf("expected all 6 entries, got %d", result.Total)
		}

		other := uuid.New()
		result, err = f.repo.FindByFilter(ctx,
			adapter.RealizationFilter{CategoryID: &other},
			adapter.RealizationPagination{Page: 1, Limit: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 0 {
			t.Errorf("expected no entries for an unknown category, got %d", result.Total)
		}
	})

	t.Run("searches the note", func(t *testing.T) {
		result, err := f.repo.FindByFilter(ctx,
			adapter.RealizationFilter{Search: "QUARTERLY"},
			adapter.RealizationPagination{Page: 1, Limit: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 1 || result.Entries[0].Note != "quarterly invoice" {
			t.Errorf("expected the invoice entry, got %d entries", result.Total)
		}
	})

	t.Run("filters by date range", func(t *testing.T) {
		start := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC)
		result, err := f.repo.FindByFilter(ctx,
			adapter.RealizationFilter{PeriodID: &f.period.ID, StartDate: &start, EndDate: &end},
			adapter.RealizationPagination{Page: 1, Limit: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 3 {
			t.Errorf("expected 3 entries in range, got %d", result.Total)
		}
	})
}

func TestRealizationRepository_UpdateAndDelete(t *testing.T) {
	f := newRealizationTestFixture(t)
	ctx := context.Background()

	entry := f.post(t, f.item, 5, "100", "initial")

	entry.Amount = decimal.RequireFromString("250")
	entry.Note = "corrected"
	if err := f.repo.Update(ctx, entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found, err := f.repo.FindByID(ctx, entry.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found.Amount.Equal(decimal.RequireFromString("250")) || found.Note != "corrected" {
		t.Errorf("update not persisted: %s / %q", found.Amount, found.Note)
	}

	if err := f.repo.Delete(ctx, entry.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.repo.FindByID(ctx, entry.ID); !errors.Is(err, domainerror.ErrRealizationNotFound) {
		t.Errorf("expected not-found after delete, got %v", err)
	}

	if err := f.repo.Delete(ctx, uuid.New()); !errors.Is(err, domainerror.ErrRealizationNotFound) {
		t.Errorf("expected not-found for unknown ID, got %v", err)
	}
}

func TestRealizationRepository_PeriodKeys(t *testing.T) {
	f := newRealizationTestFixture(t)
	ctx := context.Background()

	year, month, week := 2026, 1, 2
	stored := entity.NewRealizationEntry(f.item.ID, f.period.ID,
		time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC),
		decimal.RequireFromString("1000"), "")
	stored.Year = &year
	stored.Month = &month
	stored.Week = &week
	if err := f.repo.CreateBatch(ctx, []*entity.RealizationEntry{stored}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Manual entries carry no period key and must not collide.
	f.post(t, f.item, 8, "50", "manual")

	keys := []adapter.PeriodKey{
		{BudgetItemID: f.item.ID, Year: 2026, Month: 1, Week: 2},
		{BudgetItemID: f.item.ID, Year: 2026, Month: 1, Week: 3},
		{BudgetItemID: f.item2.ID, Year: 2026, Month: 1, Week: 2},
	}
	existing, err := f.repo.ExistingPeriodKeys(ctx, keys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(existing) != 1 || !existing[keys[0]] {
		t.Errorf("expected only the stored key to exist, got %v", existing)
	}

	existing, err = f.repo.ExistingPeriodKeys(ctx, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(existing) != 0 {
		t.Errorf("expected no matches for an empty key set, got %v", existing)
	}
}

func TestRealizationRepository_Counts(t *testing.T) {
	f := newRealizationTestFixture(t)
	ctx := context.Background()

	f.post(t, f.item, 5, "100", "")
	f.post(t, f.item, 6, "100", "")
	f.post(t, f.item2, 7, "100", "")

	count, err := f.repo.CountByItem(ctx, f.item.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 entries for the item, got %d", count)
	}

	count, err = f.repo.CountByPeriod(ctx, f.period.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 entries for the period, got %d", count)
	}
}
