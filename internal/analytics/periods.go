package analytics

import (
	"time"

	"github.com/finsight/finsight/internal/domain"
	"github.com/finsight/finsight/internal/store"
)

// Period is a caller-selected aggregation granularity.
type Period string

const (
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ParsePeriod normalizes a raw period string, defaulting to month.
func ParsePeriod(s string) Period {
	if Period(s) == PeriodYear {
		return PeriodYear
	}
	return PeriodMonth
}

// MonthWindow returns the calendar month containing asOf.
func MonthWindow(asOf time.Time) store.Window {
	start := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return store.Window{Start: start, End: end}
}

// YearWindow returns the calendar year containing asOf.
func YearWindow(asOf time.Time) store.Window {
	start := time.Date(asOf.Year(), time.January, 1, 0, 0, 0, 0, asOf.Location())
	end := time.Date(asOf.Year(), time.December, 31, 23, 59, 59, 0, asOf.Location())
	return store.Window{Start: start, End: end}
}

// PeriodWindow returns the current window for the given period.
func PeriodWindow(p Period, asOf time.Time) store.Window {
	if p == PeriodYear {
		return YearWindow(asOf)
	}
	return MonthWindow(asOf)
}

// PreviousPeriodWindow returns the equivalent preceding window: the prior
// calendar month for month, the prior calendar year for year.
func PreviousPeriodWindow(p Period, asOf time.Time) store.Window {
	if p == PeriodYear {
		return YearWindow(asOf.AddDate(-1, 0, 0))
	}
	return MonthWindow(time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location()).AddDate(0, -1, 0))
}

// TrailingMonths returns a window covering the n months up to and including asOf.
func TrailingMonths(n int, asOf time.Time) store.Window {
	return store.Window{Start: asOf.AddDate(0, -n, 0), End: asOf}
}

// PercentChange returns (current-previous)/previous*100, or exactly 0 when the
// previous value is not positive. A move from zero activity to nonzero activity
// therefore reports as 0% - a documented flat-floor behavior, not a bug.
func PercentChange(current, previous domain.Money) float64 {
	if previous <= 0 {
		return 0
	}
	return (current - previous).Float64() / previous.Float64() * 100
}

// BalanceChange returns (current-previous)/abs(previous)*100, or 0 when the
// previous balance is zero. Balances can be negative, hence the abs.
func BalanceChange(current, previous domain.Money) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous).Float64() / previous.Abs().Float64() * 100
}
