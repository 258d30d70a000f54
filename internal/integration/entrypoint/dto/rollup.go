// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/budget-ledger/backend/internal/domain/entity"
)

// RollupItemResponse represents one rolled-up budget item in API responses.
// All amounts are decimal strings computed from the realization ledger at
// request time.
type RollupItemResponse struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	CategoryID   string `json:"category_id"`
	CategoryCode string `json:"category_code"`
	ParentID     string `json:"parent_id,omitempty"`
	Level        int    `json:"level"`

	DirectRealization     string `json:"direct_realization"`
	AggregatedRealization string `json:"aggregated_realization"`
	DirectTarget          string `json:"direct_target"`
	EffectiveTarget       string `json:"effective_target"`
	VarianceAmount        string `json:"variance_amount"`
	AchievementPercentage string `json:"achievement_percentage"`
	IsTargetAchieved      bool   `json:"is_target_achieved"`

	HasChildren            bool `json:"has_children"`
	DirectRealizationCount int  `json:"direct_realization_count"`
}

// RollupSummaryResponse represents the overall stats block of a rollup.
type RollupSummaryResponse struct {
	TotalItems             int    `json:"total_items"`
	TotalTargetAmount      string `json:"total_target_amount"`
	TotalRealizationAmount string `json:"total_realization_amount"`
	TotalVarianceAmount    string `json:"total_variance_amount"`
	ItemsWithRealization   int    `json:"items_with_realization"`
	ItemsTargetAchieved    int    `json:"items_target_achieved"`
}

// RollupResponse represents the response for a rollup computation.
type RollupResponse struct {
	Items   []RollupItemResponse  `json:"items"`
	Summary RollupSummaryResponse `json:"summary"`
}

// ToRollupItemResponse converts a RollupNode to a RollupItemResponse DTO.
func ToRollupItemResponse(node *entity.RollupNode) RollupItemResponse {
	response := RollupItemResponse{
		ID:                     node.Item.ID.String(),
		Code:                   node.Item.Code,
		Name:                   node.Item.Name,
		CategoryID:             node.Item.CategoryID.String(),
		CategoryCode:           node.CategoryCode,
		Level:                  node.Item.Level,
		DirectRealization:      node.DirectRealization.String(),
		AggregatedRealization:  node.AggregatedRealization.String(),
		DirectTarget:           node.DirectTarget.String(),
		EffectiveTarget:        node.EffectiveTarget.String(),
		VarianceAmount:         node.VarianceAmount.String(),
		AchievementPercentage:  node.AchievementPercentage.String(),
		IsTargetAchieved:       node.IsTargetAchieved,
		HasChildren:            node.HasChildren,
		DirectRealizationCount: node.DirectRealizationCount,
	}
	if node.Item.ParentID != nil {
		response.ParentID = node.Item.ParentID.String()
	}
	return response
}

// ToRollupResponse converts a rollup result to a RollupResponse.
func ToRollupResponse(nodes []*entity.RollupNode, summary entity.RollupSummary) RollupResponse {
	items := make([]RollupItemResponse, len(nodes))
	for i, node := range nodes {
		items[i] = ToRollupItemResponse(node)
	}
	return RollupResponse{
		Items: items,
		Summary: RollupSummaryResponse{
			TotalItems:             summary.TotalItems,
			TotalTargetAmount:      summary.TotalTargetAmount.String(),
			TotalRealizationAmount: summary.TotalRealizationAmount.String(),
			TotalVarianceAmount:    summary.TotalVarianceAmount.String(),
			ItemsWithRealization:   summary.ItemsWithRealization,
			ItemsTargetAchieved:    summary.ItemsTargetAchieved,
		},
	}
}
