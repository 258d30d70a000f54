// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetItem represents a node in the hierarchical plan-vs-actual tree.
// Items nest under a parent item within the same category and period; the
// nesting level is 1 for roots and parent.Level+1 otherwise. Codes are
// dotted hierarchical identifiers such as "A.1.2", unique within the
// (category, period) combination.
type BudgetItem struct {
	ID          uuid.UUID
	CategoryID  uuid.UUID
	PeriodID    uuid.UUID
	ParentID    *uuid.UUID
	Code        string
	Name        string
	Description string
	Level       int
	Order       int

	// Target fields are stored as provided; cross-validation between them
	// is the caller's responsibility. TotalTarget is the item's own
	// declared target, distinct from the effective target computed by
	// rollup.
	TargetFrequency *int
	FrequencyUnit   string
	UnitAmount      *decimal.Decimal
	TotalTarget     *decimal.Decimal

	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBudgetItem creates a new BudgetItem entity. Code, level and order are
// assigned by the create use case.
func NewBudgetItem(categoryID, periodID uuid.UUID, parentID *uuid.UUID, name, description string) *BudgetItem {
	now := time.Now().UTC()

	return &BudgetItem{
		ID:          uuid.New(),
		CategoryID:  categoryID,
		PeriodID:    periodID,
		ParentID:    parentID,
		Name:        name,
		Description: description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// DeclaredTarget returns the item's own total target, or zero when no
// target is declared.
func (b *BudgetItem) DeclaredTarget() decimal.Decimal {
	if b.TotalTarget == nil {
		return decimal.Zero
	}
	return *b.TotalTarget
}

// BudgetItemWithChildCount pairs an item with the number of its active
// direct children, so callers can tell leaves from branches without a
// second round trip.
type BudgetItemWithChildCount struct {
	Item       *BudgetItem
	ChildCount int
}
