package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/finsight/finsight/internal/domain"
	"github.com/finsight/finsight/internal/store"
)

// SumByType implements store.TransactionStore.
func (s *Store) SumByType(ctx context.Context, userID string, w store.Window) ([]store.TypeTotal, error) {
	q := s.client.Query(fmt.Sprintf(`
		SELECT
		  type,
		  SUM(amount) AS total,
		  COUNT(*) AS count
		FROM %s
		WHERE user_id = @user_id
		  AND date >= @start AND date <= @end
		GROUP BY type
		ORDER BY type
	`, s.table("transactions")))
	q.Parameters = windowParams(userID, w)

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("SumByType: query read: %w", err)
	}

	var out []store.TypeTotal
	for {
		var r typeTotalRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("SumByType: iter next: %w", err)
		}
		out = append(out, store.TypeTotal{
			Type:  domain.TransactionType(r.Type),
			Total: domain.MoneyFromRat(r.Total),
			Count: int(r.Count),
		})
	}
	return out, nil
}

// SumByCategory implements store.TransactionStore.
func (s *Store) SumByCategory(ctx context.Context, userID string, t domain.TransactionType, w store.Window) ([]store.CategoryTotal, error) {
	q := s.client.Query(fmt.Sprintf(`
		SELECT
		  category_id,
		  SUM(amount) AS total,
		  COUNT(*) AS count,
		  MAX(amount) AS max_amount,
		  MIN(amount) AS min_amount
		FROM %s
		WHERE user_id = @user_id
		  AND type = @type
		  AND date >= @start AND date <= @end
		GROUP BY category_id
		ORDER BY total DESC
	`, s.table("transactions")))
	q.Parameters = append(windowParams(userID, w), bigquery.QueryParameter{Name: "type", Value: string(t)})

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("SumByCategory: query read: %w", err)
	}

	var out []store.CategoryTotal
	for {
		var r categoryTotalRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("SumByCategory: iter next: %w", err)
		}
		out = append(out, store.CategoryTotal{
			CategoryID: r.CategoryID,
			Total:      domain.MoneyFromRat(r.Total),
			Count:      int(r.Count),
			Max:        domain.MoneyFromRat(r.Max),
			Min:        domain.MoneyFromRat(r.Min),
		})
	}
	return out, nil
}

// SumForCategory implements store.TransactionStore.
func (s *Store) SumForCategory(ctx context.Context, userID string, t domain.TransactionType, categoryID string, w store.Window) (domain.Money, error) {
	q := s.client.Query(fmt.Sprintf(`
		SELECT
		  SUM(amount) AS total
		FROM %s
		WHERE user_id = @user_id
		  AND type = @type
		  AND category_id = @category_id
		  AND date >= @start AND date <= @end
	`, s.table("transactions")))
	q.Parameters = append(windowParams(userID, w),
		bigquery.QueryParameter{Name: "type", Value: string(t)},
		bigquery.QueryParameter{Name: "category_id", Value: categoryID},
	)

	it, err := q.Read(ctx)
	if err != nil {
		return 0, fmt.Errorf("SumForCategory: query read: %w", err)
	}

	var r sumRow
	if err := it.Next(&r); err != nil {
		if err == iterator.Done {
			return 0, nil
		}
		return 0, fmt.Errorf("SumForCategory: iter next: %w", err)
	}
	return domain.MoneyFromRat(r.Total), nil
}

// SumByMonth implements store.TransactionStore.
func (s *Store) SumByMonth(ctx context.Context, userID string, t domain.TransactionType, w store.Window) ([]store.MonthTotal, error) {
	q := s.client.Query(fmt.Sprintf(`
		SELECT
		  EXTRACT(YEAR FROM date) AS year,
		  EXTRACT(MONTH FROM date) AS month,
		  SUM(amount) AS total,
		  COUNT(*) AS count
		FROM %s
		WHERE user_id = @user_id
		  AND type = @type
		  AND date >= @start AND date <= @end
		GROUP BY year, month
		ORDER BY year, month
	`, s.table("transactions")))
	q.Parameters = append(windowParams(userID, w), bigquery.QueryParameter{Name: "type", Value: string(t)})

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("SumByMonth: query read: %w", err)
	}

	var out []store.MonthTotal
	for {
		var r monthTotalRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("SumByMonth: iter next: %w", err)
		}
		out = append(out, store.MonthTotal{
			Year:  int(r.Year),
			Month: time.Month(r.Month),
			Total: domain.MoneyFromRat(r.Total),
			Count: int(r.Count),
		})
	}
	return out, nil
}

// SumByDay implements store.TransactionStore.
func (s *Store) SumByDay(ctx context.Context, userID string, t domain.TransactionType, w store.Window) ([]store.DayTotal, error) {
	q := s.client.Query(fmt.Sprintf(`
		SELECT
		  DATE(date) AS day,
		  SUM(amount) AS total,
		  COUNT(*) AS count
		FROM %s
		WHERE user_id = @user_id
		  AND type = @type
		  AND date >= @start AND date <= @end
		GROUP BY day
		ORDER BY day
	`, s.table("transactions")))
	q.Parameters = append(windowParams(userID, w), bigquery.QueryParameter{Name: "type", Value: string(t)})

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("SumByDay: query read: %w", err)
	}

	var out []store.DayTotal
	for {
		var r dayTotalRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("SumByDay: iter next: %w", err)
		}
		out = append(out, store.DayTotal{
			Date:  r.Day.String(),
			Total: domain.MoneyFromRat(r.Total),
			Count: int(r.Count),
		})
	}
	return out, nil
}

// CountByCategory implements store.TransactionStore.
func (s *Store) CountByCategory(ctx context.Context, userID string, t domain.TransactionType) ([]store.CategoryCount, error) {
	q := s.client.Query(fmt.Sprintf(`
		SELECT
		  category_id,
		  COUNT(*) AS count
		FROM %s
		WHERE user_id = @user_id
		  AND type = @type
		GROUP BY category_id
		ORDER BY count DESC
	`, s.table("transactions")))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: userID},
		{Name: "type", Value: string(t)},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("CountByCategory: query read: %w", err)
	}

	var out []store.CategoryCount
	for {
		var r categoryCountRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CountByCategory: iter next: %w", err)
		}
		out = append(out, store.CategoryCount{CategoryID: r.CategoryID, Count: int(r.Count)})
	}
	return out, nil
}

func windowParams(userID string, w store.Window) []bigquery.QueryParameter {
	return []bigquery.QueryParameter{
		{Name: "user_id", Value: userID},
		{Name: "start", Value: w.Start},
		{Name: "end", Value: w.End},
	}
}
