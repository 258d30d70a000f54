// Package rollup contains the bottom-up aggregation engine that rolls actual
// realization sums and effective targets from leaf budget items up to every
// ancestor.
package rollup

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
)

var oneHundred = decimal.NewFromInt(100)

// ComputeRollupInput represents the input for a rollup computation.
// Category, level and item filters apply to the output only; the input set
// is always the period's full active item tree.
type ComputeRollupInput struct {
	PeriodID   uuid.UUID
	CategoryID *uuid.UUID
	Level      *int
	ItemID     *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// ComputeRollupOutput represents the output of a rollup computation.
type ComputeRollupOutput struct {
	Items   []*entity.RollupNode
	Summary entity.RollupSummary
}

// ComputeRollupUseCase computes the derived plan-vs-actual view for a
// period. The computation is read-only and side-effect-free: it recomputes
// every total from the realization entries and never trusts a stored
// aggregate.
type ComputeRollupUseCase struct {
	itemRepo        adapter.BudgetItemRepository
	realizationRepo adapter.RealizationRepository
	periodRepo      adapter.PeriodRepository
	categoryRepo    adapter.CategoryRepository
	timeout         time.Duration
}

// NewComputeRollupUseCase creates a new ComputeRollupUseCase instance.
// A timeout of zero disables the computation bound.
func NewComputeRollupUseCase(
	itemRepo adapter.BudgetItemRepository,
	realizationRepo adapter.RealizationRepository,
	periodRepo adapter.PeriodRepository,
	categoryRepo adapter.CategoryRepository,
	timeout time.Duration,
) *ComputeRollupUseCase {
	return &ComputeRollupUseCase{
		itemRepo:        itemRepo,
		realizationRepo: realizationRepo,
		periodRepo:      periodRepo,
		categoryRepo:    categoryRepo,
		timeout:         timeout,
	}
}

// Execute runs the rollup for one period.
func (uc *ComputeRollupUseCase) Execute(ctx context.Context, input ComputeRollupInput) (*ComputeRollupOutput, error) {
	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	if _, err := uc.periodRepo.FindByID(ctx, input.PeriodID); err != nil {
		return nil, domainerror.NewPeriodError(
			domainerror.ErrCodePeriodNotFound,
			"period not found",
			domainerror.ErrPeriodNotFound,
		)
	}

	// Step 1: the full active item set of the period. Output filters are
	// deliberately NOT applied here; ancestors outside the filter still
	// contribute aggregates.
	items, err := uc.itemRepo.FindActiveByPeriod(ctx, input.PeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget items: %w", err)
	}

	// Step 2: one grouped query over the entry ledger. This is the only
	// source of actual totals.
	totals, err := uc.realizationRepo.SumByItem(ctx, input.PeriodID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to sum realizations: %w", err)
	}

	categories, err := uc.categoryRepo.FindByIDs(ctx, categoryIDs(items))
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	// Steps 3-4: seed per-item nodes and roll values up the parent links.
	nodes := buildNodes(items, totals, categories)
	rollUp(nodes)

	// Step 5: filters apply to the output node set only.
	filtered := filterNodes(nodes, input)

	// Step 6: derived metrics on the surviving nodes.
	for _, node := range filtered {
		finalize(node)
	}

	// Step 7: category code, then natural item code order.
	sort.Slice(filtered, func(a, b int) bool {
		if filtered[a].CategoryCode != filtered[b].CategoryCode {
			return filtered[a].CategoryCode < filtered[b].CategoryCode
		}
		return compareItemCodes(filtered[a].Item.Code, filtered[b].Item.Code) < 0
	})

	return &ComputeRollupOutput{
		Items:   filtered,
		Summary: summarize(filtered),
	}, nil
}

// buildNodes seeds one node per item with its direct values. Aggregated
// values start equal to the direct values before rollup.
func buildNodes(items []*entity.BudgetItem, totals map[uuid.UUID]entity.RealizationTotal, categories map[uuid.UUID]*entity.Category) map[uuid.UUID]*entity.RollupNode {
	nodes := make(map[uuid.UUID]*entity.RollupNode, len(items))
	for _, item := range items {
		direct := decimal.Zero
		count := 0
		if total, ok := totals[item.ID]; ok {
			direct = total.Sum
			count = total.Count
		}
		target := item.DeclaredTarget()

		var categoryCode string
		if category, ok := categories[item.CategoryID]; ok {
			categoryCode = category.ShortCode
		}

		nodes[item.ID] = &entity.RollupNode{
			Item:                   item,
			CategoryCode:           categoryCode,
			DirectRealization:      direct,
			AggregatedRealization:  direct,
			DirectTarget:           target,
			EffectiveTarget:        target,
			DirectRealizationCount: count,
		}
	}
	return nodes
}

// rollUp propagates aggregated realization and effective target from each
// node into its parent, processing deepest levels first. Deepest-first
// order guarantees each parent receives the fully-summed values of each
// child exactly once before being summed into its own parent, closing the
// transitive sums in a single O(n) pass.
func rollUp(nodes map[uuid.UUID]*entity.RollupNode) {
	ordered := make([]*entity.RollupNode, 0, len(nodes))
	for _, node := range nodes {
		ordered = append(ordered, node)
	}
	sort.Slice(ordered, func(a, b int) bool {
		return ordered[a].Item.Level > ordered[b].Item.Level
	})

	for _, node := range ordered {
		if node.Item.ParentID == nil {
			continue
		}
		parent, ok := nodes[*node.Item.ParentID]
		if !ok {
			continue
		}
		parent.AggregatedRealization = parent.AggregatedRealization.Add(node.AggregatedRealization)
		parent.EffectiveTarget = parent.EffectiveTarget.Add(node.EffectiveTarget)
		parent.HasChildren = true
		parent.Children = append(parent.Children, node)
	}
}

// filterNodes applies the requested output filters to the rolled-up set.
func filterNodes(nodes map[uuid.UUID]*entity.RollupNode, input ComputeRollupInput) []*entity.RollupNode {
	filtered := make([]*entity.RollupNode, 0, len(nodes))
	for _, node := range nodes {
		if input.CategoryID != nil && node.Item.CategoryID != *input.CategoryID {
			continue
		}
		if input.Level != nil && node.Item.Level != *input.Level {
			continue
		}
		if input.ItemID != nil && node.Item.ID != *input.ItemID {
			continue
		}
		filtered = append(filtered, node)
	}
	return filtered
}

// finalize computes variance and achievement for one node. An item with no
// target and no realization is trivially "achieved" (0 >= 0); callers
// displaying achievement badges need to account for that.
func finalize(node *entity.RollupNode) {
	node.VarianceAmount = node.AggregatedRealization.Sub(node.EffectiveTarget)
	if node.EffectiveTarget.IsPositive() {
		node.AchievementPercentage = node.AggregatedRealization.Div(node.EffectiveTarget).Mul(oneHundred).Round(2)
	} else {
		node.AchievementPercentage = decimal.Zero
	}
	node.IsTargetAchieved = node.AggregatedRealization.GreaterThanOrEqual(node.EffectiveTarget)
}

// summarize computes the overall stats over the filtered node set.
func summarize(nodes []*entity.RollupNode) entity.RollupSummary {
	summary := entity.RollupSummary{
		TotalItems:             len(nodes),
		TotalTargetAmount:      decimal.Zero,
		TotalRealizationAmount: decimal.Zero,
		TotalVarianceAmount:    decimal.Zero,
	}
	for _, node := range nodes {
		summary.TotalTargetAmount = summary.TotalTargetAmount.Add(node.EffectiveTarget)
		summary.TotalRealizationAmount = summary.TotalRealizationAmount.Add(node.AggregatedRealization)
		summary.TotalVarianceAmount = summary.TotalVarianceAmount.Add(node.VarianceAmount)
		if node.DirectRealizationCount > 0 {
			summary.ItemsWithRealization++
		}
		if node.IsTargetAchieved {
			summary.ItemsTargetAchieved++
		}
	}
	return summary
}

// categoryIDs collects the distinct category IDs of an item set.
func categoryIDs(items []*entity.BudgetItem) []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0)
	for _, item := range items {
		if !seen[item.CategoryID] {
			seen[item.CategoryID] = true
			ids = append(ids, item.CategoryID)
		}
	}
	return ids
}
