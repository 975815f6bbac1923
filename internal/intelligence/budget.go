package intelligence

import (
	"context"
	"sort"

	"github.com/finsight/finsight/internal/analytics"
	"github.com/finsight/finsight/internal/domain"
)

const (
	advisorMonths      = 6
	advisorBufferNum   = 12 // suggested = monthly average * 1.2, capped at 2x
	advisorBufferDen   = 10
	advisorCapFactor   = 2
	advisorMaxResults  = 10
	advisorHighMinTxns = 10
	advisorLowMaxTxns  = 5
)

// SuggestionBasis describes the history a suggestion was derived from.
type SuggestionBasis struct {
	Months         int          `json:"months"`
	Transactions   int          `json:"transactions"`
	AverageMonthly domain.Money `json:"averageMonthly"`
	MaxTransaction domain.Money `json:"maxTransaction"`
}

// BudgetSuggestion is one per-category budget recommendation.
type BudgetSuggestion struct {
	Category        domain.Category `json:"category"`
	SuggestedAmount domain.Money    `json:"suggestedAmount"`
	BasedOn         SuggestionBasis `json:"basedOn"`
	Confidence      Confidence      `json:"confidence"`
	Reasoning       string          `json:"reasoning"`
}

// BudgetSuggestionsResult is the advisor's full output.
type BudgetSuggestionsResult struct {
	Suggestions []BudgetSuggestion `json:"suggestions"`
	Methodology string             `json:"methodology"`
	Degraded    bool               `json:"degraded"`
}

const advisorMethodology = "Calculated using 6-month average with 20% buffer, capped at 2x average"

// SuggestBudgets recommends a monthly budget per category from the trailing
// six months of spending. Confidence is derived from sample count and a
// range/4 dispersion proxy compared against the mean transaction size.
func (s *Service) SuggestBudgets(ctx context.Context, userID string) BudgetSuggestionsResult {
	now := s.now()

	spending, err := s.agg.SpendingByCategory(ctx, userID, analytics.TrailingMonths(advisorMonths, now))
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("budget suggestions: aggregate failed")
		return BudgetSuggestionsResult{Methodology: advisorMethodology, Degraded: true}
	}

	suggestions := make([]BudgetSuggestion, 0, len(spending))
	for _, cs := range spending {
		if cs.Count == 0 || cs.Total <= 0 {
			// A zero-average category yields nothing useful; skip instead
			// of emitting a zero or NaN suggestion.
			continue
		}

		// All derivation stays in minor units, rounded to the nearest cent.
		monthlyAverage := cs.Total.DivRound(advisorMonths)
		suggested := (monthlyAverage * advisorBufferNum).DivRound(advisorBufferDen)
		if ceiling := monthlyAverage * advisorCapFactor; suggested > ceiling {
			suggested = ceiling
		}

		avgTransaction := cs.Total.Float64() / float64(cs.Count)
		dispersion := analytics.RangeStdDev(cs.Max.Float64(), cs.Min.Float64())

		confidence := ConfidenceMedium
		reasoning := "Based on limited historical data - consider reviewing after more transactions"
		switch {
		case cs.Count >= advisorHighMinTxns && dispersion < avgTransaction:
			confidence = ConfidenceHigh
			reasoning = "Based on consistent spending patterns"
		case cs.Count < advisorLowMaxTxns:
			confidence = ConfidenceLow
		}

		suggestions = append(suggestions, BudgetSuggestion{
			Category:        cs.Category,
			SuggestedAmount: suggested,
			BasedOn: SuggestionBasis{
				Months:         advisorMonths,
				Transactions:   cs.Count,
				AverageMonthly: monthlyAverage,
				MaxTransaction: cs.Max,
			},
			Confidence: confidence,
			Reasoning:  reasoning,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].SuggestedAmount > suggestions[j].SuggestedAmount
	})
	if len(suggestions) > advisorMaxResults {
		suggestions = suggestions[:advisorMaxResults]
	}

	return BudgetSuggestionsResult{
		Suggestions: suggestions,
		Methodology: advisorMethodology,
	}
}
