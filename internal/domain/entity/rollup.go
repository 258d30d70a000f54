// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RollupNode is the derived plan-vs-actual view of a single budget item
// after bottom-up aggregation. It is computed on demand and never persisted.
type RollupNode struct {
	Item         *BudgetItem
	CategoryCode string

	// DirectRealization is the sum of the item's own realization entries;
	// AggregatedRealization additionally includes every descendant's sum.
	DirectRealization     decimal.Decimal
	AggregatedRealization decimal.Decimal

	// DirectTarget is the item's own declared target; EffectiveTarget
	// additionally includes every descendant's effective target.
	DirectTarget    decimal.Decimal
	EffectiveTarget decimal.Decimal

	VarianceAmount         decimal.Decimal
	AchievementPercentage  decimal.Decimal
	IsTargetAchieved       bool
	HasChildren            bool
	DirectRealizationCount int

	Children []*RollupNode
}

// RollupSummary aggregates the filtered node set of one rollup computation.
type RollupSummary struct {
	TotalItems             int
	TotalTargetAmount      decimal.Decimal
	TotalRealizationAmount decimal.Decimal
	TotalVarianceAmount    decimal.Decimal
	ItemsWithRealization   int
	ItemsTargetAchieved    int
}

// RealizationTotal is one row of the grouped sum query feeding the rollup.
type RealizationTotal struct {
	BudgetItemID uuid.UUID
	Sum          decimal.Decimal
	Count        int
}
