package intelligence

import (
	"github.com/finsight/finsight/internal/domain"
)

// AmountRule grants a small score bonus when an amount falls in a range.
// A zero bound means unbounded on that side; Above/Below are exclusive.
type AmountRule struct {
	Above domain.Money
	Below domain.Money
	Bonus int
}

// Matches reports whether the amount falls inside the rule's range.
func (r AmountRule) Matches(amount domain.Money) bool {
	if r.Above > 0 && amount <= r.Above {
		return false
	}
	if r.Below > 0 && amount >= r.Below {
		return false
	}
	return true
}

// Lexicon maps canonical category names to the keywords and amount
// heuristics used by the categorizer. Matching is by category name, so
// categories absent from the lexicon simply score zero. The lexicon is
// configuration data versioned with the code; it is passed into the Service
// rather than referenced as a global so the scorer stays testable.
type Lexicon struct {
	Keywords    map[string][]string
	AmountRules map[string][]AmountRule
}

// DefaultLexicon returns the built-in lexicon.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Keywords: map[string][]string{
			"Food & Dining":     {"restaurant", "food", "dining", "cafe", "coffee", "lunch", "dinner", "breakfast", "pizza", "burger", "starbucks", "mcdonald", "kfc", "subway"},
			"Shopping":          {"amazon", "walmart", "target", "mall", "store", "shop", "purchase", "buy", "retail", "clothing", "apparel"},
			"Transportation":    {"uber", "lyft", "taxi", "gas", "fuel", "parking", "metro", "subway", "bus", "train", "airline", "flight", "car", "vehicle"},
			"Bills & Utilities": {"electric", "water", "gas bill", "internet", "phone", "utility", "bill", "payment", "subscription", "netflix", "spotify"},
			"Entertainment":     {"movie", "cinema", "theater", "concert", "game", "sports", "ticket", "entertainment", "fun"},
			"Healthcare":        {"hospital", "doctor", "pharmacy", "medicine", "medical", "health", "clinic", "dental", "prescription"},
			"Education":         {"school", "university", "course", "tuition", "book", "education", "learning", "student"},
			"Travel":            {"hotel", "travel", "vacation", "trip", "airbnb", "booking", "resort"},
		},
		AmountRules: map[string][]AmountRule{
			"Food & Dining":     {{Below: 100_00, Bonus: 3}},
			"Shopping":          {{Above: 50_00, Bonus: 2}},
			"Bills & Utilities": {{Above: 20_00, Below: 500_00, Bonus: 2}},
		},
	}
}
