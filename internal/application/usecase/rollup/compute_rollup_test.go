// Package rollup contains the bottom-up aggregation engine.
package rollup

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/domain/entity"
)

type rollupFixture struct {
	uc       *ComputeRollupUseCase
	period   *entity.Period
	category *entity.Category
	items    map[string]*entity.BudgetItem
	totals   map[uuid.UUID]entity.RealizationTotal
}

func newRollupFixture() *rollupFixture {
	period := entity.NewPeriod("FY2026", 2026, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	category := entity.NewCategory("Revenue", "A")

	return &rollupFixture{
		period:   period,
		category: category,
		items:    make(map[string]*entity.BudgetItem),
		totals:   make(map[uuid.UUID]entity.RealizationTotal),
	}
}

func (f *rollupFixture) addItem(code string, level int, parent *entity.BudgetItem, target string) *entity.BudgetItem {
	var parentID *uuid.UUID
	if parent != nil {
		parentID = &parent.ID
	}
	item := entity.NewBudgetItem(f.category.ID, f.period.ID, parentID, "Item "+code, "")
	item.Code = code
	item.Level = level
	if target != "" {
		amount := decimal.RequireFromString(target)
		item.TotalTarget = &amount
	}
	f.items[code] = item
	return item
}

func (f *rollupFixture) post(item *entity.BudgetItem, amounts ...string) {
	total := f.totals[item.ID]
	total.BudgetItemID = item.ID
	for _, amount := range amounts {
		total.Sum = total.Sum.Add(decimal.RequireFromString(amount))
		total.Count++
	}
	f.totals[item.ID] = total
}

func (f *rollupFixture) build() *ComputeRollupUseCase {
	items := make([]*entity.BudgetItem, 0, len(f.items))
	for _, item := range f.items {
		items = append(items, item)
	}
	f.uc = NewComputeRollupUseCase(
		&fakeItemRepo{items: items},
		&fakeRealizationRepo{totals: f.totals},
		&fakePeriodRepo{period: f.period},
		&fakeCategoryRepo{categories: map[uuid.UUID]*entity.Category{f.category.ID: f.category}},
		0,
	)
	return f.uc
}

func nodeByCode(t *testing.T, nodes []*entity.RollupNode, code string) *entity.RollupNode {
	t.Helper()
	for _, node := range nodes {
		if node.Item.Code == code {
			return node
		}
	}
	t.Fatalf("no node with code %q", code)
	return nil
}

func TestComputeRollup_Aggregation(t *testing.T) {
	f := newRollupFixture()
	root := f.addItem("A", 1, nil, "")
	mid := f.addItem("A.1", 2, root, "")
	leaf1 := f.addItem("A.1.1", 3, mid, "100")
	leaf2 := f.addItem("A.1.2", 3, mid, "50")
	f.post(leaf1, "100")
	f.post(leaf2, "50")
	uc := f.build()

	output, err := uc.Execute(context.Background(), ComputeRollupInput{PeriodID: f.period.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Items) != 4 {
		t.Fatalf("expected 4 nodes, got %d", len(output.Items))
	}

	// Every parent's aggregate equals the sum of its direct value and its
	// children's aggregates.
	midNode := nodeByCode(t, output.Items, "A.1")
	if !midNode.AggregatedRealization.Equal(decimal.NewFromInt(150)) {
		t.Errorf("A.1: expected aggregated 150, got %s", midNode.AggregatedRealization)
	}
	if !midNode.DirectRealization.IsZero() {
		t.Errorf("A.1: expected direct 0, got %s", midNode.DirectRealization)
	}
	if !midNode.EffectiveTarget.Equal(decimal.NewFromInt(150)) {
		t.Errorf("A.1: expected effective target 150, got %s", midNode.EffectiveTarget)
	}
	if !midNode.HasChildren {
		t.Error("A.1: expected HasChildren")
	}

	rootNode := nodeByCode(t, output.Items, "A")
	if !rootNode.AggregatedRealization.Equal(decimal.NewFromInt(150)) {
		t.Errorf("A: expected aggregated 150, got %s", rootNode.AggregatedRealization)
	}
	if !rootNode.EffectiveTarget.Equal(decimal.NewFromInt(150)) {
		t.Errorf("A: expected effective target 150, got %s", rootNode.EffectiveTarget)
	}

	leafNode := nodeByCode(t, output.Items, "A.1.1")
	if leafNode.HasChildren {
		t.Error("A.1.1: expected leaf")
	}
	if leafNode.DirectRealizationCount != 1 {
		t.Errorf("A.1.1: expected 1 direct entry, got %d", leafNode.DirectRealizationCount)
	}
}

func TestComputeRollup_ParentOwnTargetAddsUp(t *testing.T) {
	f := newRollupFixture()
	root := f.addItem("A", 1, nil, "1000")
	f.addItem("A.1", 2, root, "300")
	uc := f.build()

	output, err := uc.Execute(context.Background(), ComputeRollupInput{PeriodID: f.period.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A parent's effective target is its own declared target plus its
	// children's effective targets.
	rootNode := nodeByCode(t, output.Items, "A")
	if !rootNode.EffectiveTarget.Equal(decimal.NewFromInt(1300)) {
		t.Errorf("expected effective target 1300, got %s", rootNode.EffectiveTarget)
	}
	if !rootNode.DirectTarget.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected direct target 1000, got %s", rootNode.DirectTarget)
	}
}

func TestComputeRollup_VarianceAndAchievement(t *testing.T) {
	f := newRollupFixture()
	leaf := f.addItem("A", 1, nil, "26000000")
	f.post(leaf, "9000000", "8000000", "9500000")
	uc := f.build()

	output, err := uc.Execute(context.Background(), ComputeRollupInput{PeriodID: f.period.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	node := nodeByCode(t, output.Items, "A")
	if !node.AggregatedRealization.Equal(decimal.NewFromInt(26500000)) {
		t.Errorf("expected realization 26500000, got %s", node.AggregatedRealization)
	}
	if !node.VarianceAmount.Equal(decimal.NewFromInt(500000)) {
		t.Errorf("expected variance 500000, got %s", node.VarianceAmount)
	}
	if !node.IsTargetAchieved {
		t.Error("expected target achieved")
	}
	if want := decimal.RequireFromString("101.92"); !node.AchievementPercentage.Equal(want) {
		t.Errorf("expected achievement %s, got %s", want, node.AchievementPercentage)
	}
	if node.DirectRealizationCount != 3 {
		t.Errorf("expected 3 entries, got %d", node.DirectRealizationCount)
	}
}

func TestComputeRollup_ZeroTarget(t *testing.T) {
	f := newRollupFixture()
	f.addItem("A", 1, nil, "")
	uc := f.build()

	output, err := uc.Execute(context.Background(), ComputeRollupInput{PeriodID: f.period.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	node := nodeByCode(t, output.Items, "A")
	if !node.AchievementPercentage.IsZero() {
		t.Errorf("expected achievement 0 for zero target, got %s", node.AchievementPercentage)
	}
	// 0 >= 0 is trivially achieved.
	if !node.IsTargetAchieved {
		t.Error("expected zero-target item to count as achieved")
	}
}

func TestComputeRollup_FilterInvariance(t *testing.T) {
	f := newRollupFixture()
	root := f.addItem("A", 1, nil, "")
	mid := f.addItem("A.1", 2, root, "")
	leaf := f.addItem("A.1.1", 3, mid, "200")
	f.post(leaf, "120")
	uc := f.build()
	ctx := context.Background()

	full, err := uc.Execute(ctx, ComputeRollupInput{PeriodID: f.period.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fullMid := nodeByCode(t, full.Items, "A.1")

	level := 2
	filtered, err := uc.Execute(ctx, ComputeRollupInput{PeriodID: f.period.ID, Level: &level})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(filtered.Items) != 1 {
		t.Fatalf("expected 1 node at level 2, got %d", len(filtered.Items))
	}

	// Filters narrow the output set only; the aggregate of a node is the
	// same with or without filters.
	filteredMid := filtered.Items[0]
	if !filteredMid.AggregatedRealization.Equal(fullMid.AggregatedRealization) {
		t.Errorf("filtered aggregate %s differs from unfiltered %s",
			filteredMid.AggregatedRealization, fullMid.AggregatedRealization)
	}
	if !filteredMid.EffectiveTarget.Equal(fullMid.EffectiveTarget) {
		t.Errorf("filtered target %s differs from unfiltered %s",
			filteredMid.EffectiveTarget, fullMid.EffectiveTarget)
	}
}

func TestComputeRollup_Idempotent(t *testing.T) {
	f := newRollupFixture()
	root := f.addItem("A", 1, nil, "")
	leaf := f.addItem("A.1", 2, root, "500")
	f.post(leaf, "250")
	uc := f.build()
	ctx := context.Background()

	first, err := uc.Execute(ctx, ComputeRollupInput{PeriodID: f.period.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.Execute(ctx, ComputeRollupInput{PeriodID: f.period.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range first.Items {
		a, b := first.Items[i], second.Items[i]
		if a.Item.ID != b.Item.ID || !a.AggregatedRealization.Equal(b.AggregatedRealization) {
			t.Fatal("expected identical results across runs")
		}
	}
	if first.Summary.TotalItems != second.Summary.TotalItems ||
		!first.Summary.TotalRealizationAmount.Equal(second.Summary.TotalRealizationAmount) {
		t.Error("expected identical summaries across runs")
	}
}

func TestComputeRollup_NaturalCodeOrder(t *testing.T) {
	f := newRollupFixture()
	root := f.addItem("A", 1, nil, "")
	for _, code := range []string{"A.10", "A.2", "A.1", "A.9"} {
		f.addItem(code, 2, root, "")
	}
	uc := f.build()

	output, err := uc.Execute(context.Background(), ComputeRollupInput{PeriodID: f.period.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []string
	for _, node := range output.Items {
		got = append(got, node.Item.Code)
	}
	want := []string{"A", "A.1", "A.2", "A.9", "A.10"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestComputeRollup_Summary(t *testing.T) {
	f := newRollupFixture()
	root := f.addItem("A", 1, nil, "")
	leaf1 := f.addItem("A.1", 2, root, "100")
	f.addItem("A.2", 2, root, "200")
	f.post(leaf1, "150")
	uc := f.build()

	level := 2
	output, err := uc.Execute(context.Background(), ComputeRollupInput{PeriodID: f.period.ID, Level: &level})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary := output.Summary
	if summary.TotalItems != 2 {
		t.Errorf("expected 2 items, got %d", summary.TotalItems)
	}
	if !summary.TotalTargetAmount.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected total target 300, got %s", summary.TotalTargetAmount)
	}
	if !summary.TotalRealizationAmount.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected total realization 150, got %s", summary.TotalRealizationAmount)
	}
	if !summary.TotalVarianceAmount.Equal(decimal.NewFromInt(-150)) {
		t.Errorf("expected total variance -150, got %s", summary.TotalVarianceAmount)
	}
	if summary.ItemsWithRealization != 1 {
		t.Errorf("expected 1 item with realization, got %d", summary.ItemsWithRealization)
	}
	if summary.ItemsTargetAchieved != 1 {
		t.Errorf("expected 1 achieved item, got %d", summary.ItemsTargetAchieved)
	}
}
