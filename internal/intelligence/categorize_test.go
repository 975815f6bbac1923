package intelligence

import (
	"context"
	"testing"
	"time"

	"github.com/finsight/finsight/internal/domain"
	"github.com/finsight/finsight/internal/store/memory"
)

func defaultCategories() []domain.Category {
	return []domain.Category{
		{ID: "cat-food", Name: "Food & Dining", Type: domain.TypeExpense},
		{ID: "cat-shopping", Name: "Shopping", Type: domain.TypeExpense},
		{ID: "cat-transport", Name: "Transportation", Type: domain.TypeExpense},
		{ID: "cat-bills", Name: "Bills & Utilities", Type: domain.TypeExpense},
	}
}

func TestCategorizeKeywordMatch(t *testing.T) {
	st := memory.NewStore()
	st.AddCategories(defaultCategories()...)
	svc := newTestService(st)

	tests := []struct {
		name        string
		description string
		amount      domain.Money
		wantID      string
		wantConf    Confidence
	}{
		{"coffee shop", "Starbucks coffee", 4_50, "cat-food", ConfidenceHigh},
		{"ride share", "Uber ride downtown", 18_00, "cat-transport", ConfidenceHigh},
		{"online order", "Amazon order", 129_99, "cat-shopping", ConfidenceHigh},
		{"streaming", "Netflix subscription", 14_99, "cat-bills", ConfidenceHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.Categorize(context.Background(), testUser, tt.description, tt.amount)
			if result.SuggestedCategory == nil {
				t.Fatal("expected a suggestion")
			}
			if result.SuggestedCategory.ID != tt.wantID {
				t.Errorf("suggested = %q, want %q", result.SuggestedCategory.ID, tt.wantID)
			}
			if result.Confidence != tt.wantConf {
				t.Errorf("confidence = %q, want %q", result.Confidence, tt.wantConf)
			}
			if result.Degraded {
				t.Error("result should not be degraded")
			}
		})
	}
}

func TestCategorizeNameWordMatch(t *testing.T) {
	// Categories absent from the lexicon can still match on their own name
	// words, which scores below the high-confidence threshold.
	st := memory.NewStore()
	st.AddCategories(
		domain.Category{ID: "cat-rent", Name: "Rent", Type: domain.TypeExpense},
		domain.Category{ID: "cat-groceries", Name: "Groceries", Type: domain.TypeExpense},
	)
	svc := newTestService(st)

	result := svc.Categorize(context.Background(), testUser, "monthly rent", 1200_00)
	if result.SuggestedCategory == nil || result.SuggestedCategory.ID != "cat-rent" {
		t.Fatalf("suggested = %+v, want cat-rent", result.SuggestedCategory)
	}
	if result.Confidence != ConfidenceMedium {
		t.Errorf("confidence = %q, want medium", result.Confidence)
	}
}

func TestCategorizeConfidenceTiers(t *testing.T) {
	// Tiers are driven by the top score: >= 10 high, 5-9 medium, 1-4 low.
	// Amount bonuses alone (2-3 points) must not reach medium.
	tests := []struct {
		name        string
		category    domain.Category
		description string
		amount      domain.Money
		wantConf    Confidence
	}{
		{"amount band bonus only scores 2", domain.Category{ID: "cat-bills", Name: "Bills & Utilities", Type: domain.TypeExpense}, "zzzz", 89_00, ConfidenceLow},
		{"small amount bonus only scores 3", domain.Category{ID: "cat-food", Name: "Food & Dining", Type: domain.TypeExpense}, "zzzz", 4_50, ConfidenceLow},
		{"name word scores 5", domain.Category{ID: "cat-rent", Name: "Rent", Type: domain.TypeExpense}, "monthly rent", 1200_00, ConfidenceMedium},
		{"keyword scores 10", domain.Category{ID: "cat-food", Name: "Food & Dining", Type: domain.TypeExpense}, "pizza place", 200_00, ConfidenceHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := memory.NewStore()
			st.AddCategories(tt.category)
			svc := newTestService(st)

			result := svc.Categorize(context.Background(), testUser, tt.description, tt.amount)
			if result.SuggestedCategory == nil || result.SuggestedCategory.ID != tt.category.ID {
				t.Fatalf("suggested = %+v, want %q", result.SuggestedCategory, tt.category.ID)
			}
			if result.Confidence != tt.wantConf {
				t.Errorf("confidence = %q, want %q", result.Confidence, tt.wantConf)
			}
			if result.Degraded {
				t.Error("scored result should not be degraded")
			}
		})
	}
}

func TestCategorizeAlternativesCapped(t *testing.T) {
	st := memory.NewStore()
	st.AddCategories(defaultCategories()...)
	svc := newTestService(st)

	result := svc.Categorize(context.Background(), testUser, "Starbucks coffee", 4_50)
	if len(result.Alternatives) != 2 {
		t.Errorf("got %d alternatives, want 2", len(result.Alternatives))
	}
	for _, alt := range result.Alternatives {
		if alt.Category.ID == result.SuggestedCategory.ID {
			t.Error("suggestion must not appear among alternatives")
		}
	}
}

func TestCategorizeFallbackToMostFrequent(t *testing.T) {
	st := memory.NewStore()
	st.AddCategories(defaultCategories()...)
	// History heavily favors transportation.
	for i := 0; i < 5; i++ {
		st.AddTransactions(domain.Transaction{
			ID:         string(rune('a' + i)),
			UserID:     testUser,
			Type:       domain.TypeExpense,
			Amount:     10_00,
			CategoryID: "cat-transport",
			Date:       time.Date(2026, time.February, 1+i, 12, 0, 0, 0, time.UTC),
		})
	}
	svc := newTestService(st)

	result := svc.Categorize(context.Background(), testUser, "xyzzy", 10_00)
	if result.SuggestedCategory == nil || result.SuggestedCategory.ID != "cat-transport" {
		t.Fatalf("suggested = %+v, want most used cat-transport", result.SuggestedCategory)
	}
	if result.Confidence != ConfidenceLow {
		t.Errorf("confidence = %q, want low", result.Confidence)
	}
	if result.Degraded {
		t.Error("frequency fallback is not a degraded answer")
	}
}

func TestCategorizeFallbackWithoutHistory(t *testing.T) {
	st := memory.NewStore()
	st.AddCategories(defaultCategories()...)
	svc := newTestService(st)

	result := svc.Categorize(context.Background(), testUser, "xyzzy", 10_00)
	if result.SuggestedCategory == nil || result.SuggestedCategory.ID != "cat-food" {
		t.Fatalf("suggested = %+v, want first visible category", result.SuggestedCategory)
	}
	if result.Confidence != ConfidenceLow {
		t.Errorf("confidence = %q, want low", result.Confidence)
	}
}

func TestCategorizeNoCategories(t *testing.T) {
	svc := newTestService(memory.NewStore())

	result := svc.Categorize(context.Background(), testUser, "Starbucks coffee", 4_50)
	if result.SuggestedCategory != nil {
		t.Error("expected no suggestion")
	}
	if result.Confidence != ConfidenceLow {
		t.Errorf("confidence = %q, want low", result.Confidence)
	}
	if result.Degraded {
		t.Error("an empty category list is not a degraded answer")
	}
}

func TestCategorizeStoreFailure(t *testing.T) {
	svc := newTestService(failStore{})

	result := svc.Categorize(context.Background(), testUser, "Starbucks coffee", 4_50)
	if !result.Degraded {
		t.Error("expected degraded result")
	}
	if result.SuggestedCategory != nil {
		t.Error("expected no suggestion on store failure")
	}
	if result.Confidence != ConfidenceLow {
		t.Errorf("confidence = %q, want low", result.Confidence)
	}
}

func TestAmountRuleMatches(t *testing.T) {
	tests := []struct {
		name   string
		rule   AmountRule
		amount domain.Money
		want   bool
	}{
		{"below only, inside", AmountRule{Below: 100_00}, 4_50, true},
		{"below only, at bound", AmountRule{Below: 100_00}, 100_00, false},
		{"above only, inside", AmountRule{Above: 50_00}, 129_99, true},
		{"above only, at bound", AmountRule{Above: 50_00}, 50_00, false},
		{"band, inside", AmountRule{Above: 20_00, Below: 500_00}, 89_00, true},
		{"band, outside", AmountRule{Above: 20_00, Below: 500_00}, 600_00, false},
		{"unbounded", AmountRule{}, 1_000_000_00, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.Matches(tt.amount); got != tt.want {
				t.Errorf("Matches(%d) = %v, want %v", tt.amount, got, tt.want)
			}
		})
	}
}
