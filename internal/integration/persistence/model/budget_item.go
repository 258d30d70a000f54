// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/domain/entity"
)

// BudgetItemModel represents the budget_items table in the database.
// Item codes are unique within the (category, period) combination.
type BudgetItemModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CategoryID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_budget_items_scope_code;index"`
	PeriodID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_budget_items_scope_code;index"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index"`
	Code        string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_budget_items_scope_code"`
	Name        string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text"`
	Level       int        `gorm:"not null;index"`
	SortOrder   int        `gorm:"not null"`

	TargetFrequency *int             `gorm:"type:integer"`
	FrequencyUnit   string           `gorm:"type:varchar(20)"`
	UnitAmount      *decimal.Decimal `gorm:"type:decimal(18,2)"`
	TotalTarget     *decimal.Decimal `gorm:"type:decimal(18,2)"`

	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Category *CategoryModel   `gorm:"foreignKey:CategoryID;references:ID"`
	Period   *PeriodModel     `gorm:"foreignKey:PeriodID;references:ID"`
	Parent   *BudgetItemModel `gorm:"foreignKey:ParentID;references:ID"`
}

// TableName returns the table name for the BudgetItemModel.
func (BudgetItemModel) TableName() string {
	return "budget_items"
}

// ToEntity converts a BudgetItemModel to a domain BudgetItem entity.
func (m *BudgetItemModel) ToEntity() *entity.BudgetItem {
	return &entity.BudgetItem{
		ID:              m.ID,
		CategoryID:      m.CategoryID,
		PeriodID:        m.PeriodID,
		ParentID:        m.ParentID,
		Code:            m.Code,
		Name:            m.Name,
		Description:     m.Description,
		Level:           m.Level,
		Order:           m.SortOrder,
		TargetFrequency: m.TargetFrequency,
		FrequencyUnit:   m.FrequencyUnit,
		UnitAmount:      m.UnitAmount,
		TotalTarget:     m.TotalTarget,
		Active:          m.Active,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// BudgetItemFromEntity creates a BudgetItemModel from a domain BudgetItem entity.
func BudgetItemFromEntity(item *entity.BudgetItem) *BudgetItemModel {
	return &BudgetItemModel{
		ID:              item.ID,
		CategoryID:      item.CategoryID,
		PeriodID:        item.PeriodID,
		ParentID:        item.ParentID,
		Code:            item.Code,
		Name:            item.Name,
		Description:     item.Description,
		Level:           item.Level,
		SortOrder:       item.Order,
		TargetFrequency: item.TargetFrequency,
		FrequencyUnit:   item.FrequencyUnit,
		UnitAmount:      item.UnitAmount,
		TotalTarget:     item.TotalTarget,
		Active:          item.Active,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}
