package memory

import (
	"time"

	"github.com/google/uuid"

	"github.com/finsight/finsight/internal/domain"
)

// DemoUserID is the user the demo dataset belongs to.
const DemoUserID = "demo"

// SeedDemoData loads a year of plausible activity for DemoUserID so the API
// and CLI can be exercised without a BigQuery backend.
func SeedDemoData(s *Store, now time.Time) {
	cats := map[string]domain.Category{
		"food":      {ID: uuid.New().String(), Name: "Food & Dining", Type: domain.TypeExpense, Icon: "🍔", Color: "#f59e0b", IsDefault: true},
		"shopping":  {ID: uuid.New().String(), Name: "Shopping", Type: domain.TypeExpense, Icon: "🛍️", Color: "#8b5cf6", IsDefault: true},
		"transport": {ID: uuid.New().String(), Name: "Transportation", Type: domain.TypeExpense, Icon: "🚗", Color: "#3b82f6", IsDefault: true},
		"bills":     {ID: uuid.New().String(), Name: "Bills & Utilities", Type: domain.TypeExpense, Icon: "📄", Color: "#ef4444", IsDefault: true},
		"salary":    {ID: uuid.New().String(), Name: "Salary", Type: domain.TypeIncome, Icon: "💰", Color: "#10b981", IsDefault: true},
	}
	for _, c := range cats {
		s.AddCategories(c)
	}

	type entry struct {
		catKey      string
		t           domain.TransactionType
		amount      string
		description string
	}
	monthly := []entry{
		{"salary", domain.TypeIncome, "3200.00", "Monthly salary"},
		{"food", domain.TypeExpense, "86.40", "Grocery store"},
		{"food", domain.TypeExpense, "24.90", "Pizza night"},
		{"food", domain.TypeExpense, "4.50", "Starbucks coffee"},
		{"shopping", domain.TypeExpense, "129.99", "Amazon order"},
		{"transport", domain.TypeExpense, "52.30", "Gas station fuel"},
		{"transport", domain.TypeExpense, "18.00", "Uber ride"},
		{"bills", domain.TypeExpense, "89.00", "Internet bill"},
		{"bills", domain.TypeExpense, "14.99", "Netflix subscription"},
	}

	for monthsBack := 11; monthsBack >= 0; monthsBack-- {
		base := now.AddDate(0, -monthsBack, 0)
		for i, e := range monthly {
			amount, err := domain.ParseMoney(e.amount)
			if err != nil {
				continue
			}
			day := 2 + i*3
			date := time.Date(base.Year(), base.Month(), 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, day%27)
			if date.After(now) {
				continue
			}
			s.AddTransactions(domain.Transaction{
				ID:          uuid.New().String(),
				UserID:      DemoUserID,
				Type:        e.t,
				Amount:      amount,
				CategoryID:  cats[e.catKey].ID,
				Description: e.description,
				Date:        date,
			})
		}
	}

	budgetAmount, _ := domain.ParseMoney("400.00")
	s.AddBudgets(domain.Budget{
		ID:         uuid.New().String(),
		UserID:     DemoUserID,
		CategoryID: cats["food"].ID,
		Amount:     budgetAmount,
		Period:     domain.PeriodMonthly,
		StartDate:  time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		IsActive:   true,
	})
}
