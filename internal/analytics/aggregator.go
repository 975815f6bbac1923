// Package analytics turns the store's aggregate reads into period-level
// figures: totals, period-over-period changes, category breakdowns and
// trends. Everything here is pure computation over store results; the
// intelligence engine builds on top of it.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/finsight/finsight/internal/domain"
	"github.com/finsight/finsight/internal/store"
)

// Totals are the income/expense/balance sums for one window.
type Totals struct {
	Income       domain.Money `json:"income"`
	Expenses     domain.Money `json:"expenses"`
	Balance      domain.Money `json:"balance"`
	IncomeCount  int          `json:"incomeCount"`
	ExpenseCount int          `json:"expenseCount"`
}

// Changes are percent deltas between two Totals.
type Changes struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
}

// ChangesBetween computes the percent deltas from previous to current.
func ChangesBetween(current, previous Totals) Changes {
	return Changes{
		Income:   PercentChange(current.Income, previous.Income),
		Expenses: PercentChange(current.Expenses, previous.Expenses),
		Balance:  BalanceChange(current.Balance, previous.Balance),
	}
}

// Overview is the current-vs-previous period summary.
type Overview struct {
	Period   Period  `json:"period"`
	Current  Totals  `json:"current"`
	Previous Totals  `json:"previous"`
	Change   Changes `json:"change"`
}

// CategorySpend is one category's share of spending in a window. Max and Min
// are the largest and smallest single amounts, kept for dispersion estimates.
type CategorySpend struct {
	Category   domain.Category `json:"category"`
	Total      domain.Money    `json:"total"`
	Count      int             `json:"count"`
	Percentage float64         `json:"percentage"`
	Max        domain.Money    `json:"-"`
	Min        domain.Money    `json:"-"`
}

// TrendPoint is one period's total in a trend series.
type TrendPoint struct {
	Period string       `json:"period"`
	Start  time.Time    `json:"startDate"`
	End    time.Time    `json:"endDate"`
	Total  domain.Money `json:"total"`
	Count  int          `json:"count"`
}

// Comparison holds totals and deltas for two arbitrary windows.
type Comparison struct {
	First  Totals  `json:"period1"`
	Second Totals  `json:"period2"`
	Change Changes `json:"change"`
}

// Aggregator computes period aggregates for one store.
type Aggregator struct {
	store store.Store
}

// New creates an Aggregator over the given store.
func New(s store.Store) *Aggregator {
	return &Aggregator{store: s}
}

// Totals sums the window's transactions grouped by type.
func (a *Aggregator) Totals(ctx context.Context, userID string, w store.Window) (Totals, error) {
	byType, err := a.store.SumByType(ctx, userID, w)
	if err != nil {
		return Totals{}, fmt.Errorf("Totals: %w", err)
	}

	var t Totals
	for _, tt := range byType {
		switch tt.Type {
		case domain.TypeIncome:
			t.Income = tt.Total
			t.IncomeCount = tt.Count
		case domain.TypeExpense:
			t.Expenses = tt.Total
			t.ExpenseCount = tt.Count
		}
	}
	t.Balance = t.Income - t.Expenses
	return t, nil
}

// Overview compares the current period against the previous equivalent one.
func (a *Aggregator) Overview(ctx context.Context, userID string, p Period, asOf time.Time) (Overview, error) {
	current, err := a.Totals(ctx, userID, PeriodWindow(p, asOf))
	if err != nil {
		return Overview{}, fmt.Errorf("Overview: current: %w", err)
	}
	previous, err := a.Totals(ctx, userID, PreviousPeriodWindow(p, asOf))
	if err != nil {
		return Overview{}, fmt.Errorf("Overview: previous: %w", err)
	}

	return Overview{
		Period:   p,
		Current:  current,
		Previous: previous,
		Change:   ChangesBetween(current, previous),
	}, nil
}

// SpendingByCategory returns the window's expense totals per category with
// resolved category metadata and each category's share of total expenses,
// ordered by total descending.
func (a *Aggregator) SpendingByCategory(ctx context.Context, userID string, w store.Window) ([]CategorySpend, error) {
	totals, err := a.store.SumByCategory(ctx, userID, domain.TypeExpense, w)
	if err != nil {
		return nil, fmt.Errorf("SpendingByCategory: %w", err)
	}
	categories, err := a.store.ListCategories(ctx, userID, domain.TypeExpense)
	if err != nil {
		return nil, fmt.Errorf("SpendingByCategory: categories: %w", err)
	}

	byID := make(map[string]domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	var grandTotal domain.Money
	for _, ct := range totals {
		grandTotal += ct.Total
	}

	out := make([]CategorySpend, 0, len(totals))
	for _, ct := range totals {
		cs := CategorySpend{
			Category: byID[ct.CategoryID],
			Total:    ct.Total,
			Count:    ct.Count,
			Max:      ct.Max,
			Min:      ct.Min,
		}
		if cs.Category.ID == "" {
			cs.Category.ID = ct.CategoryID
		}
		if grandTotal > 0 {
			cs.Percentage = ct.Total.Float64() / grandTotal.Float64() * 100
		}
		out = append(out, cs)
	}
	return out, nil
}

// TopCategories returns up to limit of the window's largest expense categories.
func (a *Aggregator) TopCategories(ctx context.Context, userID string, w store.Window, limit int) ([]CategorySpend, error) {
	all, err := a.SpendingByCategory(ctx, userID, w)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Trends returns per-period totals for the trailing n periods in
// chronological order, labelled "2006-01" for months and "2006" for years.
func (a *Aggregator) Trends(ctx context.Context, userID string, t domain.TransactionType, p Period, n int, asOf time.Time) ([]TrendPoint, error) {
	out := make([]TrendPoint, 0, n)
	for i := n - 1; i >= 0; i-- {
		var w store.Window
		if p == PeriodYear {
			w = YearWindow(asOf.AddDate(-i, 0, 0))
		} else {
			w = MonthWindow(time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location()).AddDate(0, -i, 0))
		}

		byType, err := a.store.SumByType(ctx, userID, w)
		if err != nil {
			return nil, fmt.Errorf("Trends: %w", err)
		}
		point := TrendPoint{Start: w.Start, End: w.End}
		if p == PeriodYear {
			point.Period = w.Start.Format("2006")
		} else {
			point.Period = w.Start.Format("2006-01")
		}
		for _, tt := range byType {
			if tt.Type == t {
				point.Total = tt.Total
				point.Count = tt.Count
			}
		}
		out = append(out, point)
	}
	return out, nil
}

// DailySpending returns per-day expense totals for the trailing days.
func (a *Aggregator) DailySpending(ctx context.Context, userID string, days int, asOf time.Time) ([]store.DayTotal, error) {
	w := store.Window{Start: asOf.AddDate(0, 0, -days), End: asOf}
	out, err := a.store.SumByDay(ctx, userID, domain.TypeExpense, w)
	if err != nil {
		return nil, fmt.Errorf("DailySpending: %w", err)
	}
	return out, nil
}

// ComparePeriods computes totals and percent deltas for two arbitrary windows.
// Deltas read second-relative-to-first.
func (a *Aggregator) ComparePeriods(ctx context.Context, userID string, first, second store.Window) (Comparison, error) {
	t1, err := a.Totals(ctx, userID, first)
	if err != nil {
		return Comparison{}, fmt.Errorf("ComparePeriods: first: %w", err)
	}
	t2, err := a.Totals(ctx, userID, second)
	if err != nil {
		return Comparison{}, fmt.Errorf("ComparePeriods: second: %w", err)
	}
	return Comparison{
		First:  t1,
		Second: t2,
		Change: ChangesBetween(t2, t1),
	}, nil
}
