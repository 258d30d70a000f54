// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
)

// PostRealizationRequest represents the request body for posting a
// realization entry. Amounts are decimal strings; dates use YYYY-MM-DD.
type PostRealizationRequest struct {
	BudgetItemID string `json:"budget_item_id" binding:"required,uuid"`
	PeriodID     string `json:"period_id" binding:"required,uuid"`
	Date         string `json:"date" binding:"required"`
	Amount       string `json:"amount" binding:"required"`
	Note         string `json:"note,omitempty"`
}

// UpdateRealizationRequest represents the request body for updating a
// realization entry. Omitted fields are left unchanged.
type UpdateRealizationRequest struct {
	Date   *string `json:"date,omitempty"`
	Amount *string `json:"amount,omitempty"`
	Note   *string `json:"note,omitempty"`
}

// ImportRealizationRowRequest is one row of a bulk import request body.
type ImportRealizationRowRequest struct {
	BudgetItemID string `json:"budget_item_id" binding:"required,uuid"`
	PeriodID     string `json:"period_id" binding:"required,uuid"`
	Date         string `json:"date" binding:"required"`
	Amount       string `json:"amount" binding:"required"`
	Note         string `json:"note,omitempty"`
	Year         int    `json:"year" binding:"required,min=1"`
	Month        int    `json:"month" binding:"required,min=1,max=12"`
	Week         int    `json:"week" binding:"required,min=1,max=53"`
}

// ImportRealizationsRequest represents the request body for a bulk import.
type ImportRealizationsRequest struct {
	Entries []ImportRealizationRowRequest `json:"entries" binding:"required,min=1,dive"`
}

// RealizationResponse represents a single realization entry in API responses.
type RealizationResponse struct {
	ID           string    `json:"id"`
	BudgetItemID string    `json:"budget_item_id"`
	PeriodID     string    `json:"period_id"`
	Date         string    `json:"date"`
	Amount       string    `json:"amount"`
	Note         string    `json:"note,omitempty"`
	Year         *int      `json:"year,omitempty"`
	Month        *int      `json:"month,omitempty"`
	Week         *int      `json:"week,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RealizationListResponse represents the paginated response for listing
// realization entries.
type RealizationListResponse struct {
	Entries    []RealizationResponse `json:"entries"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	TotalPages int                   `json:"total_pages"`
}

// ImportRowErrorResponse represents one rejected row of a bulk import.
type ImportRowErrorResponse struct {
	Index   int    `json:"index"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ImportErrorResponse represents the response body when a bulk import is
// rejected. No rows are stored in that case.
type ImportErrorResponse struct {
	Error string                   `json:"error"`
	Code  string                   `json:"code"`
	Rows  []ImportRowErrorResponse `json:"rows"`
}

// ImportSummaryResponse represents the response for a successful bulk import.
type ImportSummaryResponse struct {
	TotalRows   int    `json:"total_rows"`
	TotalAmount string `json:"total_amount"`
}

// ToRealizationResponse converts a domain RealizationEntry entity to a
// RealizationResponse DTO.
func ToRealizationResponse(entry *entity.RealizationEntry) RealizationResponse {
	return RealizationResponse{
		ID:           entry.ID.String(),
		BudgetItemID: entry.BudgetItemID.String(),
		PeriodID:     entry.PeriodID.String(),
		Date:         entry.Date.Format("2006-01-02"),
		Amount:       entry.Amount.String(),
		Note:         entry.Note,
		Year:         entry.Year,
		Month:        entry.Month,
		Week:         entry.Week,
		CreatedAt:    entry.CreatedAt,
		UpdatedAt:    entry.UpdatedAt,
	}
}

// ToRealizationListResponse converts paginated entries to a
// RealizationListResponse.
func ToRealizationListResponse(entries []*entity.RealizationEntry, total int64, page, limit, totalPages int) RealizationListResponse {
	responses := make([]RealizationResponse, len(entries))
	for i, entry := range entries {
		responses[i] = ToRealizationResponse(entry)
	}
	return RealizationListResponse{
		Entries:    responses,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// ToImportErrorResponse converts a BulkImportError to an ImportErrorResponse.
func ToImportErrorResponse(err *domainerror.BulkImportError) ImportErrorResponse {
	rows := make([]ImportRowErrorResponse, len(err.Rows))
	for i, row := range err.Rows {
		rows[i] = ImportRowErrorResponse{
			Index:   row.Index,
			Code:    string(row.Code),
			Message: row.Message,
		}
	}
	return ImportErrorResponse{
		Error: "bulk import rejected",
		Code:  string(domainerror.ErrCodeBulkImportRejected),
		Rows:  rows,
	}
}
