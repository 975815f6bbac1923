package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/finsight/finsight/internal/domain"
)

// ListCategories implements store.CategoryStore. Global categories (NULL
// user_id) are visible to everyone; a user additionally sees their own.
func (s *Store) ListCategories(ctx context.Context, userID string, t domain.TransactionType) ([]domain.Category, error) {
	q := s.client.Query(fmt.Sprintf(`
		SELECT
		  category_id,
		  name,
		  type,
		  icon,
		  color,
		  user_id,
		  is_default
		FROM %s
		WHERE (user_id IS NULL OR user_id = @user_id)
		  AND (@type = '' OR type = @type)
		ORDER BY is_default DESC, name
	`, s.table("categories")))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: userID},
		{Name: "type", Value: string(t)},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListCategories: query read: %w", err)
	}

	var out []domain.Category
	for {
		var r CategoryRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListCategories: iter next: %w", err)
		}
		out = append(out, r.Category())
	}
	return out, nil
}
