package domain

import (
	"time"
)

// BudgetPeriod is the recurrence of a budget.
type BudgetPeriod string

const (
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// Budget caps spending in one expense category over a window.
type Budget struct {
	ID         string
	UserID     string
	CategoryID string
	Amount     Money
	Period     BudgetPeriod
	StartDate  time.Time
	EndDate    *time.Time
	IsActive   bool
}

// Window resolves the budget's effective date window. When no end date was
// set, the window closes at the end of the start month (monthly) or start
// year (yearly). Every consumer of budget windows must go through here so
// tracking, insights and advice all agree on the same window.
func (b Budget) Window() (time.Time, time.Time) {
	if b.EndDate != nil {
		return b.StartDate, *b.EndDate
	}
	s := b.StartDate
	if b.Period == PeriodYearly {
		end := time.Date(s.Year(), time.December, 31, 23, 59, 59, 0, s.Location())
		return s, end
	}
	firstOfNext := time.Date(s.Year(), s.Month(), 1, 0, 0, 0, 0, s.Location()).AddDate(0, 1, 0)
	end := firstOfNext.Add(-time.Second)
	return s, end
}
