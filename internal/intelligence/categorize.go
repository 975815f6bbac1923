package intelligence

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/finsight/finsight/internal/domain"
)

const (
	keywordScore      = 10
	nameWordScore     = 5
	highThreshold     = 10
	mediumThreshold   = 5
	maxAlternatives   = 2
	minNameWordLength = 4
)

// CategoryMatch is one category's score against a description.
type CategoryMatch struct {
	Category domain.Category `json:"category"`
	Score    int             `json:"score"`
}

// CategorizeResult is the categorizer's suggestion.
type CategorizeResult struct {
	SuggestedCategory *domain.Category `json:"suggestedCategory"`
	Confidence        Confidence       `json:"confidence"`
	Explanation       string           `json:"explanation"`
	Alternatives      []CategoryMatch  `json:"alternatives,omitempty"`
	Degraded          bool             `json:"degraded"`
}

// Categorize scores the description against the user's expense categories
// and suggests the best match. Keyword hits score 10, category-name words 5,
// amount heuristics 2-3. With no keyword signal it falls back to the user's
// most frequently used category, then to the first visible one. This is
// advisory and never blocks: lookup failures degrade to a best-effort answer.
func (s *Service) Categorize(ctx context.Context, userID, description string, amount domain.Money) CategorizeResult {
	categories, err := s.store.ListCategories(ctx, userID, domain.TypeExpense)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("categorize: listing categories failed")
		return CategorizeResult{
			Confidence:  ConfidenceLow,
			Explanation: "Error in categorization. No category available.",
			Degraded:    true,
		}
	}
	if len(categories) == 0 {
		return CategorizeResult{
			Confidence:  ConfidenceLow,
			Explanation: "No expense categories found",
		}
	}

	scores := s.scoreCategories(categories, description, amount)

	// Stable sort keeps the original enumeration order on ties.
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	top := scores[0]

	if top.Score == 0 {
		return s.fallbackResult(ctx, userID, categories)
	}

	var confidence Confidence
	var explanation string
	switch {
	case top.Score >= highThreshold:
		confidence = ConfidenceHigh
		explanation = fmt.Sprintf("Strong keyword match found for %q", top.Category.Name)
	case top.Score >= mediumThreshold:
		confidence = ConfidenceMedium
		explanation = fmt.Sprintf("Partial match found for %q", top.Category.Name)
	default:
		confidence = ConfidenceLow
		explanation = fmt.Sprintf("Weak match found for %q", top.Category.Name)
	}

	suggested := top.Category
	alternatives := scores[1:]
	if len(alternatives) > maxAlternatives {
		alternatives = alternatives[:maxAlternatives]
	}

	return CategorizeResult{
		SuggestedCategory: &suggested,
		Confidence:        confidence,
		Explanation:       explanation,
		Alternatives:      alternatives,
	}
}

func (s *Service) scoreCategories(categories []domain.Category, description string, amount domain.Money) []CategoryMatch {
	descriptionLower := strings.ToLower(description)

	scores := make([]CategoryMatch, 0, len(categories))
	for _, category := range categories {
		score := 0

		for _, keyword := range s.lexicon.Keywords[category.Name] {
			if strings.Contains(descriptionLower, keyword) {
				score += keywordScore
			}
		}

		for _, word := range strings.Fields(strings.ToLower(category.Name)) {
			if len(word) >= minNameWordLength && strings.Contains(descriptionLower, word) {
				score += nameWordScore
			}
		}

		for _, rule := range s.lexicon.AmountRules[category.Name] {
			if rule.Matches(amount) {
				score += rule.Bonus
			}
		}

		scores = append(scores, CategoryMatch{Category: category, Score: score})
	}
	return scores
}

// fallbackResult handles the zero-score case: prefer the category the user
// has used most often, then the first visible one.
func (s *Service) fallbackResult(ctx context.Context, userID string, categories []domain.Category) CategorizeResult {
	suggested := categories[0]
	degraded := false

	counts, err := s.store.CountByCategory(ctx, userID, domain.TypeExpense)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("categorize: counting category usage failed")
		degraded = true
	} else if len(counts) > 0 {
		for _, c := range categories {
			if c.ID == counts[0].CategoryID {
				suggested = c
				break
			}
		}
	}

	explanation := "No keyword matches found. Using most frequently used category."
	if degraded {
		explanation = "Error in categorization. Using default category."
	}

	return CategorizeResult{
		SuggestedCategory: &suggested,
		Confidence:        ConfidenceLow,
		Explanation:       explanation,
		Degraded:          degraded,
	}
}
