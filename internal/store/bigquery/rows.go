package bigquery

import (
	"math/big"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"

	"github.com/finsight/finsight/internal/domain"
)

// CategoryRow mirrors the categories table schema.
type CategoryRow struct {
	CategoryID string              `bigquery:"category_id"` // REQUIRED
	Name       string              `bigquery:"name"`        // REQUIRED
	Type       string              `bigquery:"type"`        // REQUIRED ("expense" | "income")
	Icon       bigquery.NullString `bigquery:"icon"`        // NULLABLE
	Color      bigquery.NullString `bigquery:"color"`       // NULLABLE
	UserID     bigquery.NullString `bigquery:"user_id"`     // NULLABLE (NULL = global)
	IsDefault  bigquery.NullBool   `bigquery:"is_default"`  // NULLABLE
}

// Category converts the row to its domain read model.
func (r CategoryRow) Category() domain.Category {
	return domain.Category{
		ID:        r.CategoryID,
		Name:      r.Name,
		Type:      domain.TransactionType(r.Type),
		Icon:      r.Icon.StringVal,
		Color:     r.Color.StringVal,
		UserID:    r.UserID.StringVal,
		IsDefault: r.IsDefault.Bool,
	}
}

// BudgetRow mirrors the budgets table schema.
type BudgetRow struct {
	BudgetID   string            `bigquery:"budget_id"`   // REQUIRED
	UserID     string            `bigquery:"user_id"`     // REQUIRED
	CategoryID string            `bigquery:"category_id"` // REQUIRED
	Amount     *big.Rat          `bigquery:"amount"`      // REQUIRED NUMERIC
	Period     string            `bigquery:"period"`      // REQUIRED ("monthly" | "yearly")
	StartDate  civil.Date        `bigquery:"start_date"`  // REQUIRED
	EndDate    bigquery.NullDate `bigquery:"end_date"`    // NULLABLE
	IsActive   bigquery.NullBool `bigquery:"is_active"`   // NULLABLE
}

// Budget converts the row to its domain read model.
func (r BudgetRow) Budget() domain.Budget {
	b := domain.Budget{
		ID:         r.BudgetID,
		UserID:     r.UserID,
		CategoryID: r.CategoryID,
		Amount:     domain.MoneyFromRat(r.Amount),
		Period:     domain.BudgetPeriod(r.Period),
		StartDate:  r.StartDate.In(time.UTC),
		IsActive:   r.IsActive.Bool,
	}
	if r.EndDate.Valid {
		end := r.EndDate.Date.In(time.UTC)
		b.EndDate = &end
	}
	return b
}

// aggregate row shapes scanned from GROUP BY queries

type typeTotalRow struct {
	Type  string   `bigquery:"type"`
	Total *big.Rat `bigquery:"total"`
	Count int64    `bigquery:"count"`
}

type categoryTotalRow struct {
	CategoryID string   `bigquery:"category_id"`
	Total      *big.Rat `bigquery:"total"`
	Count      int64    `bigquery:"count"`
	Max        *big.Rat `bigquery:"max_amount"`
	Min        *big.Rat `bigquery:"min_amount"`
}

type monthTotalRow struct {
	Year  int64    `bigquery:"year"`
	Month int64    `bigquery:"month"`
	Total *big.Rat `bigquery:"total"`
	Count int64    `bigquery:"count"`
}

type dayTotalRow struct {
	Day   civil.Date `bigquery:"day"`
	Total *big.Rat   `bigquery:"total"`
	Count int64      `bigquery:"count"`
}

type categoryCountRow struct {
	CategoryID string `bigquery:"category_id"`
	Count      int64  `bigquery:"count"`
}

type sumRow struct {
	Total *big.Rat `bigquery:"total"`
}
