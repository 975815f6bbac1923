package intelligence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/finsight/finsight/internal/analytics"
	"github.com/finsight/finsight/internal/domain"
)

// ResponseType classifies the tone of an advice response.
type ResponseType string

const (
	ResponsePositive   ResponseType = "positive"
	ResponseWarning    ResponseType = "warning"
	ResponseInfo       ResponseType = "info"
	ResponseSuggestion ResponseType = "suggestion"
	ResponseError      ResponseType = "error"
)

// AdviceResult is the dialogue engine's answer to one question.
type AdviceResult struct {
	Response    string       `json:"response"`
	Type        ResponseType `json:"type"`
	Suggestions []string     `json:"suggestions"`
	Degraded    bool         `json:"degraded"`
}

// followUpQuestions is always returned, regardless of intent, as a UI
// affordance.
var followUpQuestions = []string{
	"How are my budgets doing?",
	"What should I save?",
	"Where am I spending the most?",
	"How can I reduce expenses?",
}

const adviceFallback = "I'm having trouble processing your request. Please try rephrasing your question or ask about budgets, spending, or savings."

const adviceHelp = "I can help you with budget planning, spending analysis, savings goals, and financial insights. Try asking:\n\n" +
	"- 'How are my budgets doing?'\n" +
	"- 'What should I save?'\n" +
	"- 'Where am I spending the most?'\n" +
	"- 'How can I reduce expenses?'\n" +
	"- 'What's my financial summary?'"

// GetAdvice maps a free-text question to one of a fixed set of intents by
// keyword matching (first match wins, in priority order) and renders a
// response from live current-month aggregates. It never fails: any internal
// error produces the apologetic fallback with type "error".
func (s *Service) GetAdvice(ctx context.Context, userID, question string) AdviceResult {
	q := strings.ToLower(strings.TrimSpace(question))
	now := s.now()

	totals, err := s.agg.Totals(ctx, userID, analytics.MonthWindow(now))
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("advice: month totals failed")
		return AdviceResult{Response: adviceFallback, Type: ResponseError, Suggestions: []string{}, Degraded: true}
	}

	var text string
	var kind ResponseType
	switch {
	case containsAny(q, "budget", "spending limit"):
		text, kind, err = s.budgetAdvice(ctx, userID)
	case containsAny(q, "save", "saving"):
		text, kind = savingsAdvice(totals)
	case strings.Contains(q, "income") && containsAny(q, "growth", "increase", "how much"):
		text, kind, err = s.incomeGrowthAdvice(ctx, userID, totals, now)
	case containsAny(q, "category", "spend", "where"):
		text, kind, err = s.spendingBreakdownAdvice(ctx, userID, now)
	case containsAny(q, "reduce", "cut", "decrease", "lower"):
		text, kind, err = s.reduceExpensesAdvice(ctx, userID, totals, now)
	case containsAny(q, "balance", "overview", "summary", "how am i doing"):
		text, kind = summaryAdvice(totals)
	default:
		text, kind = adviceHelp, ResponseInfo
	}
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("advice: intent handling failed")
		return AdviceResult{Response: adviceFallback, Type: ResponseError, Suggestions: []string{}, Degraded: true}
	}

	return AdviceResult{
		Response:    text,
		Type:        kind,
		Suggestions: followUpQuestions,
	}
}

func (s *Service) budgetAdvice(ctx context.Context, userID string) (string, ResponseType, error) {
	statuses, err := s.budgetStatuses(ctx, userID)
	if err != nil {
		return "", "", fmt.Errorf("budgetAdvice: %w", err)
	}
	if len(statuses) == 0 {
		return "You don't have any active budgets set up yet. Creating budgets can help you track and control your spending. " +
			"I recommend setting budgets for your top spending categories like Food, Transport, or Shopping.", ResponseSuggestion, nil
	}

	names, err := s.categoryNames(ctx, userID)
	if err != nil {
		return "", "", fmt.Errorf("budgetAdvice: %w", err)
	}

	var exceeded, warning []string
	for _, st := range statuses {
		name := names[st.Budget.CategoryID]
		switch {
		case st.Spent > st.Budget.Amount:
			exceeded = append(exceeded, fmt.Sprintf("%s (exceeded by $%s)", name, st.Spent-st.Budget.Amount))
		case st.Percentage >= 80:
			warning = append(warning, fmt.Sprintf("%s (%.0f%% used)", name, st.Percentage))
		}
	}

	if len(exceeded) > 0 {
		return fmt.Sprintf("You've exceeded your budget for %s. Consider reviewing your spending in these categories and adjusting your budget if needed.",
			strings.Join(exceeded, ", ")), ResponseWarning, nil
	}
	if len(warning) > 0 {
		return fmt.Sprintf("You're approaching your budget limit for %s. Monitor your spending closely to avoid exceeding these budgets.",
			strings.Join(warning, ", ")), ResponseWarning, nil
	}

	lines := make([]string, 0, len(statuses))
	for _, st := range statuses {
		lines = append(lines, fmt.Sprintf("%s: $%s / $%s (%.0f%% used)", names[st.Budget.CategoryID], st.Spent, st.Budget.Amount, st.Percentage))
	}
	return fmt.Sprintf("You have %d active %s and you're currently within limits:\n\n%s\n\nKeep monitoring your spending to stay on track!",
		len(statuses), plural(len(statuses), "budget"), strings.Join(lines, "\n")), ResponseInfo, nil
}

func savingsAdvice(totals analytics.Totals) (string, ResponseType) {
	if totals.Income <= 0 {
		return "I don't see any income recorded for this month yet. Once you add income transactions, I can help you calculate " +
			"how much you should save. A good rule of thumb is to save at least 20% of your income.", ResponseInfo
	}

	saved := totals.Balance
	rate := saved.Float64() / totals.Income.Float64() * 100

	switch {
	case rate > 20:
		return fmt.Sprintf("Excellent! You're saving %.1f%% of your income this month ($%s). This is above the recommended 20%% savings rate. Keep up the great work!",
			rate, saved), ResponsePositive
	case rate > 0:
		recommended := domain.MoneyFromFloat(totals.Income.Float64() * 0.2)
		shortfall := recommended - saved
		return fmt.Sprintf("You're currently saving %.1f%% of your income this month ($%s). For better financial security, aim to save at least 20%% ($%s). "+
			"You need to save $%s more to reach this goal.", rate, saved, recommended, shortfall), ResponseSuggestion
	default:
		return fmt.Sprintf("You're spending $%s more than you earn this month. Your expenses ($%s) exceed your income ($%s). "+
			"Focus on reducing expenses or finding ways to increase income.", saved.Abs(), totals.Expenses, totals.Income), ResponseWarning
	}
}

func (s *Service) incomeGrowthAdvice(ctx context.Context, userID string, totals analytics.Totals, now time.Time) (string, ResponseType, error) {
	if totals.Income <= 0 {
		return "I don't see any income recorded for this month yet. Add your income transactions to track your income growth over time.", ResponseInfo, nil
	}

	previous, err := s.agg.Totals(ctx, userID, analytics.PreviousPeriodWindow(analytics.PeriodMonth, now))
	if err != nil {
		return "", "", fmt.Errorf("incomeGrowthAdvice: %w", err)
	}
	if previous.Income <= 0 {
		return fmt.Sprintf("Your income this month is $%s. This is your first month with recorded income. Keep tracking to see your income trends over time!",
			totals.Income), ResponseInfo, nil
	}

	growth := analytics.PercentChange(totals.Income, previous.Income)
	direction := "growth"
	kind := ResponsePositive
	if growth < 0 {
		direction = "decrease"
		kind = ResponseWarning
	}
	return fmt.Sprintf("Your income this month is $%s. Compared to last month ($%s), that's a %s of %.1f%%.",
		totals.Income, previous.Income, direction, abs(growth)), kind, nil
}

func (s *Service) spendingBreakdownAdvice(ctx context.Context, userID string, now time.Time) (string, ResponseType, error) {
	top, err := s.agg.TopCategories(ctx, userID, analytics.MonthWindow(now), 5)
	if err != nil {
		return "", "", fmt.Errorf("spendingBreakdownAdvice: %w", err)
	}
	if len(top) == 0 {
		return "You haven't recorded any expenses this month yet. Start adding transactions to see where your money is going.", ResponseInfo, nil
	}

	lines := make([]string, 0, 3)
	for i, c := range top {
		if i == 3 {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. %s: $%s (%d %s)", i+1, c.Category.Name, c.Total, c.Count, plural(c.Count, "transaction")))
	}

	return fmt.Sprintf("Your top spending category this month is %s with $%s (%.1f%% of total expenses).\n\nTop 3 spending categories:\n%s",
		top[0].Category.Name, top[0].Total, top[0].Percentage, strings.Join(lines, "\n")), ResponseInfo, nil
}

func (s *Service) reduceExpensesAdvice(ctx context.Context, userID string, totals analytics.Totals, now time.Time) (string, ResponseType, error) {
	if totals.Expenses <= 0 {
		return "You haven't recorded any expenses this month. Once you start tracking expenses, I can help identify areas to reduce spending.", ResponseInfo, nil
	}

	top, err := s.agg.TopCategories(ctx, userID, analytics.MonthWindow(now), 3)
	if err != nil {
		return "", "", fmt.Errorf("reduceExpensesAdvice: %w", err)
	}
	if len(top) == 0 {
		return fmt.Sprintf("Your expenses this month are $%s. To reduce expenses, review your transactions and identify areas where you can cut back.",
			totals.Expenses), ResponseSuggestion, nil
	}

	lines := make([]string, 0, len(top))
	for _, c := range top {
		lines = append(lines, fmt.Sprintf("- %s: $%s", c.Category.Name, c.Total))
	}

	return fmt.Sprintf("To reduce expenses, focus on your top spending categories:\n\n%s\n\nConsider:\n"+
		"1. Reviewing if these expenses are necessary\n"+
		"2. Looking for cheaper alternatives\n"+
		"3. Setting a budget for %s (your highest category)\n"+
		"4. Tracking daily spending to identify patterns",
		strings.Join(lines, "\n"), top[0].Category.Name), ResponseSuggestion, nil
}

func summaryAdvice(totals analytics.Totals) (string, ResponseType) {
	outcome := "(Surplus)"
	verdict := "You have a positive cash flow!"
	kind := ResponsePositive
	if totals.Balance < 0 {
		outcome = "(Deficit)"
		verdict = "You're spending more than you earn. Consider reducing expenses."
		kind = ResponseWarning
	}

	savings := "Add income to calculate savings rate"
	if totals.Income > 0 {
		savings = fmt.Sprintf("Savings Rate: %.1f%%", totals.Balance.Float64()/totals.Income.Float64()*100)
	}

	return fmt.Sprintf("Financial Summary for This Month:\n\nIncome: $%s\nExpenses: $%s\nBalance: $%s %s\n\n%s\n\n%s",
		totals.Income, totals.Expenses, totals.Balance, outcome, savings, verdict), kind
}

// categoryNames maps category IDs to display names for the user's visible
// categories.
func (s *Service) categoryNames(ctx context.Context, userID string) (map[string]string, error) {
	categories, err := s.store.ListCategories(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
