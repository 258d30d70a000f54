// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/budget-ledger/backend/internal/domain/entity"
)

// PeriodModel represents the periods table in the database.
type PeriodModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Year      int       `gorm:"not null;index"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	Status    string    `gorm:"type:varchar(10);not null"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the PeriodModel.
func (PeriodModel) TableName() string {
	return "periods"
}

// ToEntity converts a PeriodModel to a domain Period entity.
func (m *PeriodModel) ToEntity() *entity.Period {
	return &entity.Period{
		ID:        m.ID,
		Name:      m.Name,
		Year:      m.Year,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		Status:    entity.PeriodStatus(m.Status),
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// PeriodFromEntity creates a PeriodModel from a domain Period entity.
func PeriodFromEntity(period *entity.Period) *PeriodModel {
	return &PeriodModel{
		ID:        period.ID,
		Name:      period.Name,
		Year:      period.Year,
		StartDate: period.StartDate,
		EndDate:   period.EndDate,
		Status:    string(period.Status),
		Active:    period.Active,
		CreatedAt: period.CreatedAt,
		UpdatedAt: period.UpdatedAt,
	}
}
