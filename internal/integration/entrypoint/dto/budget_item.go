// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/budget-ledger/backend/internal/domain/entity"
)

// CreateBudgetItemRequest represents the request body for budget item
// creation. Amounts are decimal strings so precision survives the JSON
// round trip; code is optional and generated when omitted.
type CreateBudgetItemRequest struct {
	CategoryID  string `json:"category_id" binding:"required,uuid"`
	PeriodID    string `json:"period_id" binding:"required,uuid"`
	ParentID    string `json:"parent_id,omitempty" binding:"omitempty,uuid"`
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Description string `json:"description,omitempty"`
	Code        string `json:"code,omitempty" binding:"omitempty,max=50"`

	TargetFrequency *int   `json:"target_frequency,omitempty" binding:"omitempty,min=1"`
	FrequencyUnit   string `json:"frequency_unit,omitempty" binding:"omitempty,oneof=day week month quarter year"`
	UnitAmount      string `json:"unit_amount,omitempty"`
	TotalTarget     string `json:"total_target,omitempty"`
}

// BudgetItemResponse represents a single budget item in API responses.
type BudgetItemResponse struct {
	ID          string `json:"id"`
	CategoryID  string `json:"category_id"`
	PeriodID    string `json:"period_id"`
	ParentID    string `json:"parent_id,omitempty"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Level       int    `json:"level"`
	Order       int    `json:"order"`

	TargetFrequency *int   `json:"target_frequency,omitempty"`
	FrequencyUnit   string `json:"frequency_unit,omitempty"`
	UnitAmount      string `json:"unit_amount,omitempty"`
	TotalTarget     string `json:"total_target,omitempty"`

	ChildCount int       `json:"child_count"`
	IsLeaf     bool      `json:"is_leaf"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BudgetItemListResponse represents the response for listing budget items.
type BudgetItemListResponse struct {
	Items []BudgetItemResponse `json:"items"`
}

// ToBudgetItemResponse converts a domain BudgetItem entity to a
// BudgetItemResponse DTO. childCount distinguishes leaves from branches.
func ToBudgetItemResponse(item *entity.BudgetItem, childCount int) BudgetItemResponse {
	response := BudgetItemResponse{
		ID:              item.ID.String(),
		CategoryID:      item.CategoryID.String(),
		PeriodID:        item.PeriodID.String(),
		Code:            item.Code,
		Name:            item.Name,
		Description:     item.Description,
		Level:           item.Level,
		Order:           item.Order,
		TargetFrequency: item.TargetFrequency,
		FrequencyUnit:   item.FrequencyUnit,
		ChildCount:      childCount,
		IsLeaf:          childCount == 0,
		Active:          item.Active,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
	if item.ParentID != nil {
		response.ParentID = item.ParentID.String()
	}
	if item.UnitAmount != nil {
		response.UnitAmount = item.UnitAmount.String()
	}
	if item.TotalTarget != nil {
		response.TotalTarget = item.TotalTarget.String()
	}
	return response
}

// ToBudgetItemListResponse converts items with child counts to a
// BudgetItemListResponse.
func ToBudgetItemListResponse(items []*entity.BudgetItemWithChildCount) BudgetItemListResponse {
	responses := make([]BudgetItemResponse, len(items))
	for i, item := range items {
		responses[i] = ToBudgetItemResponse(item.Item, item.ChildCount)
	}
	return BudgetItemListResponse{
		Items: responses,
	}
}
