package intelligence

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/finsight/finsight/internal/analytics"
	"github.com/finsight/finsight/internal/domain"
)

const (
	forecastHistoryMonths  = 12
	forecastMovingWindow   = 3
	forecastMovingWeight   = 0.7
	forecastTrendWeight    = 0.3
	forecastMinConfMonths  = 6
	forecastHighCVCutoff   = 0.3
	forecastMethodology    = "Uses moving average (70%) and trend analysis (30%) for predictions"
)

// ForecastPoint is one predicted month of spending.
type ForecastPoint struct {
	Month           int        `json:"month"`
	MonthName       string     `json:"monthName"`
	PredictedAmount float64    `json:"predictedAmount"`
	Confidence      Confidence `json:"confidence"`
}

// ForecastResult is the spending forecast.
type ForecastResult struct {
	BasedOn                string          `json:"basedOn"`
	AverageMonthlySpending float64         `json:"averageMonthlySpending"`
	MovingAverage          float64         `json:"movingAverage"`
	Trend                  float64         `json:"trend"`
	Predictions            []ForecastPoint `json:"predictions"`
	Confidence             Confidence      `json:"confidence"`
	Methodology            string          `json:"methodology"`
	Degraded               bool            `json:"degraded"`
}

// PredictSpending forecasts expense totals for the next months from the
// trailing twelve months, blending a 3-month moving average with a
// linear trend projection. With no history it returns an empty, low
// confidence forecast rather than an error; months <= 0 yields no points.
func (s *Service) PredictSpending(ctx context.Context, userID string, months int) ForecastResult {
	now := s.now()

	monthly, err := s.store.SumByMonth(ctx, userID, domain.TypeExpense, analytics.TrailingMonths(forecastHistoryMonths, now))
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("forecast: monthly totals failed")
		r := emptyForecast()
		r.Degraded = true
		return r
	}
	if len(monthly) == 0 {
		return emptyForecast()
	}

	totals := make([]float64, len(monthly))
	for i, m := range monthly {
		totals[i] = m.Total.Float64()
	}
	n := len(totals)

	average := analytics.Mean(totals)
	trend := analytics.TrendSlope(totals)

	recent := totals
	if n > forecastMovingWindow {
		recent = totals[n-forecastMovingWindow:]
	}
	movingAverage := analytics.Mean(recent)

	pointConfidence := ConfidenceLow
	if n >= forecastMinConfMonths {
		pointConfidence = ConfidenceMedium
	}

	// Non-nil so a zero-month request serializes as [] like the
	// no-history result.
	predictions := []ForecastPoint{}
	for i := 1; i <= months; i++ {
		predicted := movingAverage*forecastMovingWeight + (average+trend*float64(n+i))*forecastTrendWeight
		predictions = append(predictions, ForecastPoint{
			Month:           i,
			MonthName:       monthLabel(now, i),
			PredictedAmount: math.Max(0, round2(predicted)),
			Confidence:      pointConfidence,
		})
	}

	confidence := ConfidenceLow
	if n >= forecastMinConfMonths {
		confidence = ConfidenceMedium
		if average > 0 {
			cv := math.Sqrt(analytics.Variance(totals)) / average
			if cv < forecastHighCVCutoff {
				confidence = ConfidenceHigh
			}
		}
	}

	return ForecastResult{
		BasedOn:                fmt.Sprintf("%d %s of historical data", n, plural(n, "month")),
		AverageMonthlySpending: round2(average),
		MovingAverage:          round2(movingAverage),
		Trend:                  round2(trend),
		Predictions:            predictions,
		Confidence:             confidence,
		Methodology:            forecastMethodology,
	}
}

func emptyForecast() ForecastResult {
	return ForecastResult{
		BasedOn:     "No historical data available",
		Predictions: []ForecastPoint{},
		Confidence:  ConfidenceLow,
		Methodology: forecastMethodology,
	}
}

// monthLabel names the month at the given offset from now, e.g. "Mar 2026".
func monthLabel(now time.Time, offset int) string {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, offset, 0).Format("Jan 2006")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
