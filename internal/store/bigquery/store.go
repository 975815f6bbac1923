// Package bigquery implements store.Store against a BigQuery dataset with
// tables transactions, categories and budgets. Aggregation is pushed down to
// SQL; amounts travel as NUMERIC and are converted to minor units at the
// boundary.
package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
)

// Store is the BigQuery-backed implementation of store.Store. It holds a
// shared client to avoid creating a new connection for each operation.
type Store struct {
	client  *bigquery.Client
	project string
	dataset string
}

// NewStore creates a Store with its own BigQuery client.
func NewStore(ctx context.Context, project, dataset string) (*Store, error) {
	client, err := bigquery.NewClient(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("NewStore: creating client: %w", err)
	}
	return NewStoreWithClient(client, project, dataset), nil
}

// NewStoreWithClient creates a Store using the provided client. The caller
// keeps ownership of the client's lifecycle in this case.
func NewStoreWithClient(client *bigquery.Client, project, dataset string) *Store {
	return &Store{client: client, project: project, dataset: dataset}
}

// Close closes the BigQuery client connection.
func (s *Store) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// table returns the fully qualified table name to avoid project ID issues.
func (s *Store) table(name string) string {
	return fmt.Sprintf("`%s.%s.%s`", s.project, s.dataset, name)
}
