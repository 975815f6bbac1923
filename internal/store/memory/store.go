package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/finsight/finsight/internal/domain"
	"github.com/finsight/finsight/internal/store"
)

// Store is an in-memory implementation of store.Store.
// It is safe for concurrent use. Data is lost on service restart - it backs
// local single-instance runs and tests; production uses the BigQuery store.
type Store struct {
	mu           sync.RWMutex
	transactions []domain.Transaction
	categories   []domain.Category
	budgets      []domain.Budget
}

// NewStore creates a new empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

// AddTransactions appends transactions to the store.
func (s *Store) AddTransactions(txs ...domain.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, txs...)
}

// AddCategories appends categories to the store.
func (s *Store) AddCategories(cats ...domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, cats...)
}

// AddBudgets appends budgets to the store.
func (s *Store) AddBudgets(budgets ...domain.Budget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets = append(s.budgets, budgets...)
}

// ListCategories implements store.CategoryStore.
func (s *Store) ListCategories(ctx context.Context, userID string, t domain.TransactionType) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Category
	for _, c := range s.categories {
		if !c.VisibleTo(userID) {
			continue
		}
		if t != "" && c.Type != t {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// SumByType implements store.TransactionStore.
func (s *Store) SumByType(ctx context.Context, userID string, w store.Window) ([]store.TypeTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[domain.TransactionType]*store.TypeTotal)
	for _, tx := range s.transactions {
		if tx.UserID != userID || !w.Contains(tx.Date) {
			continue
		}
		tt, ok := totals[tx.Type]
		if !ok {
			tt = &store.TypeTotal{Type: tx.Type}
			totals[tx.Type] = tt
		}
		tt.Total += tx.Amount
		tt.Count++
	}

	out := make([]store.TypeTotal, 0, len(totals))
	for _, tt := range totals {
		out = append(out, *tt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out, nil
}

// SumByCategory implements store.TransactionStore.
func (s *Store) SumByCategory(ctx context.Context, userID string, t domain.TransactionType, w store.Window) ([]store.CategoryTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[string]*store.CategoryTotal)
	var order []string
	for _, tx := range s.transactions {
		if tx.UserID != userID || tx.Type != t || !w.Contains(tx.Date) {
			continue
		}
		ct, ok := totals[tx.CategoryID]
		if !ok {
			ct = &store.CategoryTotal{CategoryID: tx.CategoryID, Max: tx.Amount, Min: tx.Amount}
			totals[tx.CategoryID] = ct
			order = append(order, tx.CategoryID)
		}
		ct.Total += tx.Amount
		ct.Count++
		if tx.Amount > ct.Max {
			ct.Max = tx.Amount
		}
		if tx.Amount < ct.Min {
			ct.Min = tx.Amount
		}
	}

	out := make([]store.CategoryTotal, 0, len(order))
	for _, id := range order {
		out = append(out, *totals[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out, nil
}

// SumForCategory implements store.TransactionStore.
func (s *Store) SumForCategory(ctx context.Context, userID string, t domain.TransactionType, categoryID string, w store.Window) (domain.Money, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total domain.Money
	for _, tx := range s.transactions {
		if tx.UserID != userID || tx.Type != t || tx.CategoryID != categoryID || !w.Contains(tx.Date) {
			continue
		}
		total += tx.Amount
	}
	return total, nil
}

// SumByMonth implements store.TransactionStore.
func (s *Store) SumByMonth(ctx context.Context, userID string, t domain.TransactionType, w store.Window) ([]store.MonthTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type ym struct {
		year  int
		month time.Month
	}
	totals := make(map[ym]*store.MonthTotal)
	for _, tx := range s.transactions {
		if tx.UserID != userID || tx.Type != t || !w.Contains(tx.Date) {
			continue
		}
		k := ym{tx.Date.Year(), tx.Date.Month()}
		mt, ok := totals[k]
		if !ok {
			mt = &store.MonthTotal{Year: k.year, Month: k.month}
			totals[k] = mt
		}
		mt.Total += tx.Amount
		mt.Count++
	}

	out := make([]store.MonthTotal, 0, len(totals))
	for _, mt := range totals {
		out = append(out, *mt)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}

// SumByDay implements store.TransactionStore.
func (s *Store) SumByDay(ctx context.Context, userID string, t domain.TransactionType, w store.Window) ([]store.DayTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[string]*store.DayTotal)
	for _, tx := range s.transactions {
		if tx.UserID != userID || tx.Type != t || !w.Contains(tx.Date) {
			continue
		}
		day := tx.Date.Format("2006-01-02")
		dt, ok := totals[day]
		if !ok {
			dt = &store.DayTotal{Date: day}
			totals[day] = dt
		}
		dt.Total += tx.Amount
		dt.Count++
	}

	out := make([]store.DayTotal, 0, len(totals))
	for _, dt := range totals {
		out = append(out, *dt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// CountByCategory implements store.TransactionStore.
func (s *Store) CountByCategory(ctx context.Context, userID string, t domain.TransactionType) ([]store.CategoryCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	var order []string
	for _, tx := range s.transactions {
		if tx.UserID != userID || tx.Type != t {
			continue
		}
		if _, ok := counts[tx.CategoryID]; !ok {
			order = append(order, tx.CategoryID)
		}
		counts[tx.CategoryID]++
	}

	out := make([]store.CategoryCount, 0, len(order))
	for _, id := range order {
		out = append(out, store.CategoryCount{CategoryID: id, Count: counts[id]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}

// ListActiveBudgets implements store.BudgetStore.
func (s *Store) ListActiveBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Budget
	for _, b := range s.budgets {
		if b.UserID == userID && b.IsActive {
			out = append(out, b)
		}
	}
	return out, nil
}
