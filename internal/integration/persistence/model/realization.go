// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/domain/entity"
)

// RealizationEntryModel represents the realization_entries table in the
// database. Year, month and week are only set by the bulk import path,
// where (budget_item_id, year, month, week) is treated as a uniqueness key.
type RealizationEntryModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BudgetItemID uuid.UUID       `gorm:"type:uuid;not null;index:idx_realization_entries_period_key"`
	PeriodID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date         time.Time       `gorm:"type:date;not null;index"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Note         string          `gorm:"type:text"`
	Year         *int            `gorm:"type:integer;index:idx_realization_entries_period_key"`
	Month        *int            `gorm:"type:integer;index:idx_realization_entries_period_key"`
	Week         *int            `gorm:"type:integer;index:idx_realization_entries_period_key"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	BudgetItem *BudgetItemModel `gorm:"foreignKey:BudgetItemID;references:ID"`
	Period     *PeriodModel     `gorm:"foreignKey:PeriodID;references:ID"`
}

// TableName returns the table name for the RealizationEntryModel.
func (RealizationEntryModel) TableName() string {
	return "realization_entries"
}

// ToEntity converts a RealizationEntryModel to a domain RealizationEntry entity.
func (m *RealizationEntryModel) ToEntity() *entity.RealizationEntry {
	return &entity.RealizationEntry{
		ID:           m.ID,
		BudgetItemID: m.BudgetItemID,
		PeriodID:     m.PeriodID,
		Date:         m.Date,
		Amount:       m.Amount,
		Note:         m.Note,
		Year:         m.Year,
		Month:        m.Month,
		Week:         m.Week,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// RealizationEntryFromEntity creates a RealizationEntryModel from a domain
// RealizationEntry entity.
func RealizationEntryFromEntity(entry *entity.RealizationEntry) *RealizationEntryModel {
	return &RealizationEntryModel{
		ID:           entry.ID,
		BudgetItemID: entry.BudgetItemID,
		PeriodID:     entry.PeriodID,
		Date:         entry.Date,
		Amount:       entry.Amount,
		Note:         entry.Note,
		Year:         entry.Year,
		Month:        entry.Month,
		Week:         entry.Week,
		CreatedAt:    entry.CreatedAt,
		UpdatedAt:    entry.UpdatedAt,
	}
}
