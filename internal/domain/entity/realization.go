// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RealizationEntry represents a single posted actual-amount event against a
// budget item. Entries are the source of truth for all aggregation: totals
// are always recomputed from entries at read time, never read from a cache.
//
// Year, Month and Week are set only by the bulk import path, where the
// combination (item, year, month, week) acts as a uniqueness key. Manual
// postings leave them nil and may repeat freely.
type RealizationEntry struct {
	ID           uuid.UUID
	BudgetItemID uuid.UUID
	PeriodID     uuid.UUID
	Date         time.Time
	Amount       decimal.Decimal
	Note         string
	Year         *int
	Month        *int
	Week         *int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewRealizationEntry creates a new RealizationEntry entity.
func NewRealizationEntry(budgetItemID, periodID uuid.UUID, date time.Time, amount decimal.Decimal, note string) *RealizationEntry {
	now := time.Now().UTC()

	return &RealizationEntry{
		ID:           uuid.New(),
		BudgetItemID: budgetItemID,
		PeriodID:     periodID,
		Date:         date,
		Amount:       amount,
		Note:         note,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
