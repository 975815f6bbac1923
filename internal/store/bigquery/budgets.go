package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/finsight/finsight/internal/domain"
)

// ListActiveBudgets implements store.BudgetStore.
func (s *Store) ListActiveBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	q := s.client.Query(fmt.Sprintf(`
		SELECT
		  budget_id,
		  user_id,
		  category_id,
		  amount,
		  period,
		  start_date,
		  end_date,
		  is_active
		FROM %s
		WHERE user_id = @user_id
		  AND is_active = TRUE
		ORDER BY start_date
	`, s.table("budgets")))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: userID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListActiveBudgets: query read: %w", err)
	}

	var out []domain.Budget
	for {
		var r BudgetRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListActiveBudgets: iter next: %w", err)
		}
		out = append(out, r.Budget())
	}
	return out, nil
}
