package intelligence

import (
	"context"
	"fmt"

	"github.com/finsight/finsight/internal/analytics"
	"github.com/finsight/finsight/internal/domain"
	"github.com/finsight/finsight/internal/store"
)

// InsightType classifies an insight's tone.
type InsightType string

const (
	InsightPositive InsightType = "positive"
	InsightWarning  InsightType = "warning"
	InsightInfo     InsightType = "info"
)

// Priority is informational metadata on an insight; insights are delivered
// in rule-evaluation order, never re-sorted by priority.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Insight is one human-readable observation about the period.
type Insight struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Type        InsightType `json:"type"`
	Priority    Priority    `json:"priority"`
}

// BudgetStatus is one active budget's consumption.
type BudgetStatus struct {
	Budget     domain.Budget `json:"budget"`
	Spent      domain.Money  `json:"spent"`
	Percentage float64       `json:"percentage"`
}

// InsightsResult is the full insight report for a period.
type InsightsResult struct {
	Period        analytics.Period          `json:"period"`
	Summary       analytics.Totals          `json:"summary"`
	Comparison    analytics.Changes         `json:"comparison"`
	TopCategories []analytics.CategorySpend `json:"topCategories"`
	Insights      []Insight                 `json:"insights"`
	Degraded      bool                      `json:"degraded"`
}

const (
	maxInsights      = 5
	minInsights      = 3
	topCategoryLimit = 5
)

// insightContext carries the aggregates the rules read.
type insightContext struct {
	period        analytics.Period
	totals        analytics.Totals
	changes       analytics.Changes
	topCategories []analytics.CategorySpend
	budgets       []BudgetStatus
}

// insightRules is the fixed, ordered rule set. Each rule is pure and yields
// at most one insight; order is part of the contract.
var insightRules = []func(insightContext) *Insight{
	balanceRule,
	expenseTrendRule,
	categoryConcentrationRule,
	budgetComplianceRule,
	savingsRateRule,
}

// GenerateInsights builds the period's summary, comparison, top categories
// and 1-5 rule-generated insights.
func (s *Service) GenerateInsights(ctx context.Context, userID string, period analytics.Period) InsightsResult {
	now := s.now()

	overview, err := s.agg.Overview(ctx, userID, period, now)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Str("period", string(period)).Msg("insights: overview failed")
		return degradedInsights(period)
	}

	topCategories, err := s.agg.TopCategories(ctx, userID, analytics.PeriodWindow(period, now), topCategoryLimit)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("insights: top categories failed")
		return degradedInsights(period)
	}

	budgets, err := s.budgetStatuses(ctx, userID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("insights: budget tracking failed")
		return degradedInsights(period)
	}

	ic := insightContext{
		period:        period,
		totals:        overview.Current,
		changes:       overview.Change,
		topCategories: topCategories,
		budgets:       budgets,
	}

	var insights []Insight
	for _, rule := range insightRules {
		if in := rule(ic); in != nil {
			insights = append(insights, *in)
		}
	}
	if len(insights) < minInsights {
		insights = append(insights, summaryInsight(ic))
	}
	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}

	return InsightsResult{
		Period:        period,
		Summary:       overview.Current,
		Comparison:    overview.Change,
		TopCategories: topCategories,
		Insights:      insights,
	}
}

// budgetStatuses computes spent-to-window for every active budget. Windows
// come from Budget.Window so all consumers agree on the same semantics.
func (s *Service) budgetStatuses(ctx context.Context, userID string) ([]BudgetStatus, error) {
	budgets, err := s.store.ListActiveBudgets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("budgetStatuses: %w", err)
	}

	out := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		start, end := b.Window()
		spent, err := s.store.SumForCategory(ctx, userID, domain.TypeExpense, b.CategoryID, store.Window{Start: start, End: end})
		if err != nil {
			return nil, fmt.Errorf("budgetStatuses: budget %s: %w", b.ID, err)
		}
		status := BudgetStatus{Budget: b, Spent: spent}
		if b.Amount > 0 {
			status.Percentage = spent.Float64() / b.Amount.Float64() * 100
		}
		out = append(out, status)
	}
	return out, nil
}

func balanceRule(ic insightContext) *Insight {
	if ic.totals.Balance > 0 {
		return &Insight{
			Title:       "Positive Cash Flow",
			Description: fmt.Sprintf("Great job! You have a positive balance of $%s this %s. Consider saving or investing the surplus.", ic.totals.Balance, ic.period),
			Type:        InsightPositive,
			Priority:    PriorityHigh,
		}
	}
	if ic.totals.Balance < 0 {
		return &Insight{
			Title:       "Negative Cash Flow",
			Description: fmt.Sprintf("Your expenses exceed income by $%s. Review your spending and consider creating a budget.", ic.totals.Balance.Abs()),
			Type:        InsightWarning,
			Priority:    PriorityHigh,
		}
	}
	return nil
}

func expenseTrendRule(ic insightContext) *Insight {
	if ic.changes.Expenses > 20 {
		return &Insight{
			Title:       "Spending Increase Detected",
			Description: fmt.Sprintf("Your expenses increased by %.1f%% compared to last %s. Review your top spending categories.", ic.changes.Expenses, ic.period),
			Type:        InsightWarning,
			Priority:    PriorityMedium,
		}
	}
	if ic.changes.Expenses < -10 {
		return &Insight{
			Title:       "Spending Reduction",
			Description: fmt.Sprintf("Excellent! You reduced expenses by %.1f%% compared to last %s. Keep up the good work!", -ic.changes.Expenses, ic.period),
			Type:        InsightPositive,
			Priority:    PriorityMedium,
		}
	}
	return nil
}

func categoryConcentrationRule(ic insightContext) *Insight {
	if len(ic.topCategories) == 0 {
		return nil
	}
	top := ic.topCategories[0]
	if top.Percentage <= 40 {
		return nil
	}
	return &Insight{
		Title:       "High Concentration in One Category",
		Description: fmt.Sprintf("%s accounts for %.1f%% of your expenses. Consider diversifying or reviewing this category.", top.Category.Name, top.Percentage),
		Type:        InsightInfo,
		Priority:    PriorityMedium,
	}
}

func budgetComplianceRule(ic insightContext) *Insight {
	var exceeded, warning []BudgetStatus
	for _, b := range ic.budgets {
		switch {
		case b.Percentage > 100:
			exceeded = append(exceeded, b)
		case b.Percentage > 80:
			warning = append(warning, b)
		}
	}

	if len(exceeded) > 0 {
		return &Insight{
			Title:       "Budget Exceeded",
			Description: fmt.Sprintf("You've exceeded %d %s. Review your spending in these categories.", len(exceeded), plural(len(exceeded), "budget")),
			Type:        InsightWarning,
			Priority:    PriorityHigh,
		}
	}
	if len(warning) > 0 {
		return &Insight{
			Title:       "Approaching Budget Limit",
			Description: fmt.Sprintf("%d %s at %.0f%% capacity. Monitor closely.", len(warning), pluralIs(len(warning), "budget"), warning[0].Percentage),
			Type:        InsightInfo,
			Priority:    PriorityMedium,
		}
	}
	return nil
}

func savingsRateRule(ic insightContext) *Insight {
	if ic.totals.Income <= 0 {
		return nil
	}
	rate := ic.totals.Balance.Float64() / ic.totals.Income.Float64() * 100
	if rate > 20 {
		return &Insight{
			Title:       "Excellent Savings Rate",
			Description: fmt.Sprintf("You're saving %.1f%% of your income. This is above the recommended 20%% savings rate!", rate),
			Type:        InsightPositive,
			Priority:    PriorityLow,
		}
	}
	if rate < 0 {
		return &Insight{
			Title:       "Negative Savings Rate",
			Description: "You're spending more than you earn. Focus on reducing expenses or increasing income.",
			Type:        InsightWarning,
			Priority:    PriorityHigh,
		}
	}
	return nil
}

// summaryInsight is the floor rule: it guarantees at least one insight even
// for quiet periods.
func summaryInsight(ic insightContext) Insight {
	outcome := "surplus"
	if ic.totals.Balance < 0 {
		outcome = "deficit"
	}
	return Insight{
		Title:       "Financial Summary",
		Description: fmt.Sprintf("This %s, you earned $%s and spent $%s, resulting in a %s of $%s.", ic.period, ic.totals.Income, ic.totals.Expenses, outcome, ic.totals.Balance.Abs()),
		Type:        InsightInfo,
		Priority:    PriorityLow,
	}
}

func degradedInsights(period analytics.Period) InsightsResult {
	return InsightsResult{
		Period:   period,
		Insights: []Insight{summaryInsight(insightContext{period: period})},
		Degraded: true,
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func pluralIs(n int, word string) string {
	if n == 1 {
		return word + " is"
	}
	return word + "s are"
}
