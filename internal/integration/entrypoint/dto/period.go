// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/budget-ledger/backend/internal/domain/entity"
)

// CreatePeriodRequest represents the request body for period creation.
// Dates use the YYYY-MM-DD format.
type CreatePeriodRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	Year      int    `json:"year" binding:"required,min=1"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// UpdatePeriodStatusRequest represents the request body for a period status change.
type UpdatePeriodStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft active closed"`
}

// PeriodResponse represents a single period in API responses.
type PeriodResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Year      int       `json:"year"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Status    string    `json:"status"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PeriodListResponse represents the response for listing periods.
type PeriodListResponse struct {
	Periods []PeriodResponse `json:"periods"`
}

// ToPeriodResponse converts a domain Period entity to a PeriodResponse DTO.
func ToPeriodResponse(period *entity.Period) PeriodResponse {
	return PeriodResponse{
		ID:        period.ID.String(),
		Name:      period.Name,
		Year:      period.Year,
		StartDate: period.StartDate.Format("2006-01-02"),
		EndDate:   period.EndDate.Format("2006-01-02"),
		Status:    string(period.Status),
		Active:    period.Active,
		CreatedAt: period.CreatedAt,
		UpdatedAt: period.UpdatedAt,
	}
}

// ToPeriodListResponse converts a list of periods to a PeriodListResponse.
func ToPeriodListResponse(periods []*entity.Period) PeriodListResponse {
	responses := make([]PeriodResponse, len(periods))
	for i, period := range periods {
		responses[i] = ToPeriodResponse(period)
	}
	return PeriodListResponse{
		Periods: responses,
	}
}
