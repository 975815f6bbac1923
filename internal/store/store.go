// Package store defines the read-only persistence boundary the analytics
// engine depends on. Implementations exist for BigQuery (production) and
// in-memory (local runs and tests); the engine never writes.
package store

import (
	"context"
	"time"

	"github.com/finsight/finsight/internal/domain"
)

// Window is an inclusive date range.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// TypeTotal is a sum/count of transactions grouped by type.
type TypeTotal struct {
	Type  domain.TransactionType
	Total domain.Money
	Count int
}

// CategoryTotal is a sum/count of transactions grouped by category, with the
// largest and smallest single amounts for dispersion estimates.
type CategoryTotal struct {
	CategoryID string
	Total      domain.Money
	Count      int
	Max        domain.Money
	Min        domain.Money
}

// MonthTotal is a sum/count of transactions for one calendar month.
type MonthTotal struct {
	Year  int
	Month time.Month
	Total domain.Money
	Count int
}

// DayTotal is a sum/count of transactions for one calendar day (YYYY-MM-DD).
type DayTotal struct {
	Date  string
	Total domain.Money
	Count int
}

// CategoryCount is an all-time transaction count for one category.
type CategoryCount struct {
	CategoryID string
	Count      int
}

// CategoryStore reads the categories visible to a user.
type CategoryStore interface {
	// ListCategories returns global categories plus the user's own,
	// optionally filtered by type (empty type means all).
	ListCategories(ctx context.Context, userID string, t domain.TransactionType) ([]domain.Category, error)
}

// TransactionStore exposes the aggregate reads the engine needs. Filtering
// and grouping are pushed down to the backend; callers never see raw rows.
type TransactionStore interface {
	// SumByType sums amounts and counts inside the window, grouped by type.
	SumByType(ctx context.Context, userID string, w Window) ([]TypeTotal, error)

	// SumByCategory sums amounts of the given type inside the window,
	// grouped by category, ordered by total descending.
	SumByCategory(ctx context.Context, userID string, t domain.TransactionType, w Window) ([]CategoryTotal, error)

	// SumForCategory sums amounts of the given type for one category
	// inside the window.
	SumForCategory(ctx context.Context, userID string, t domain.TransactionType, categoryID string, w Window) (domain.Money, error)

	// SumByMonth sums amounts of the given type inside the window, grouped
	// by calendar month in chronological order.
	SumByMonth(ctx context.Context, userID string, t domain.TransactionType, w Window) ([]MonthTotal, error)

	// SumByDay sums amounts of the given type inside the window, grouped
	// by calendar day in chronological order.
	SumByDay(ctx context.Context, userID string, t domain.TransactionType, w Window) ([]DayTotal, error)

	// CountByCategory counts the user's transactions of the given type over
	// all time, grouped by category, ordered by count descending.
	CountByCategory(ctx context.Context, userID string, t domain.TransactionType) ([]CategoryCount, error)
}

// BudgetStore reads a user's budgets.
type BudgetStore interface {
	// ListActiveBudgets returns budgets with isActive=true.
	ListActiveBudgets(ctx context.Context, userID string) ([]domain.Budget, error)
}

// Store composes the three read interfaces the engine consumes.
type Store interface {
	CategoryStore
	TransactionStore
	BudgetStore
}
