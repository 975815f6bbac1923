package intelligence

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/finsight/finsight/internal/domain"
	"github.com/finsight/finsight/internal/store"
)

const testUser = "user-1"

var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

// newTestService pins the clock so window math in tests is deterministic.
func newTestService(st store.Store) *Service {
	svc := NewService(st, DefaultLexicon(), zerolog.Nop())
	svc.now = func() time.Time { return testNow }
	return svc
}

var errStore = errors.New("store unavailable")

// failStore fails every read, for exercising the degraded paths.
type failStore struct{}

func (failStore) ListCategories(context.Context, string, domain.TransactionType) ([]domain.Category, error) {
	return nil, errStore
}

func (failStore) SumByType(context.Context, string, store.Window) ([]store.TypeTotal, error) {
	return nil, errStore
}

func (failStore) SumByCategory(context.Context, string, domain.TransactionType, store.Window) ([]store.CategoryTotal, error) {
	return nil, errStore
}

func (failStore) SumForCategory(context.Context, string, domain.TransactionType, string, store.Window) (domain.Money, error) {
	return 0, errStore
}

func (failStore) SumByMonth(context.Context, string, domain.TransactionType, store.Window) ([]store.MonthTotal, error) {
	return nil, errStore
}

func (failStore) SumByDay(context.Context, string, domain.TransactionType, store.Window) ([]store.DayTotal, error) {
	return nil, errStore
}

func (failStore) CountByCategory(context.Context, string, domain.TransactionType) ([]store.CategoryCount, error) {
	return nil, errStore
}

func (failStore) ListActiveBudgets(context.Context, string) ([]domain.Budget, error) {
	return nil, errStore
}
