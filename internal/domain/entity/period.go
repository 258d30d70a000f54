// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// PeriodStatus represents the lifecycle status of a fiscal period.
type PeriodStatus string

const (
	PeriodStatusDraft  PeriodStatus = "draft"
	PeriodStatusActive PeriodStatus = "active"
	PeriodStatusClosed PeriodStatus = "closed"
)

// Period represents a fiscal period that budget items and realizations are
// scoped to. The store allows multiple active periods and overlapping date
// ranges; callers pick one period explicitly.
type Period struct {
	ID        uuid.UUID
	Name      string
	Year      int
	StartDate time.Time
	EndDate   time.Time
	Status    PeriodStatus
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPeriod creates a new Period entity in draft status.
func NewPeriod(name string, year int, startDate, endDate time.Time) *Period {
	now := time.Now().UTC()

	return &Period{
		ID:        uuid.New(),
		Name:      name,
		Year:      year,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    PeriodStatusDraft,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ContainsDate reports whether the given date falls within the period's
// date range (inclusive on both ends).
func (p *Period) ContainsDate(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}
