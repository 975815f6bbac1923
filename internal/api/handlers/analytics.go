package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/finsight/finsight/internal/analytics"
	"github.com/finsight/finsight/internal/api/middleware"
	"github.com/finsight/finsight/internal/domain"
	"github.com/finsight/finsight/internal/store"
)

// AnalyticsHandler serves the raw aggregate endpoints feeding dashboards.
type AnalyticsHandler struct {
	agg *analytics.Aggregator
	log zerolog.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(agg *analytics.Aggregator, log zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{agg: agg, log: log}
}

// Overview handles GET /api/analytics/overview?period=month|year
func (h *AnalyticsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	period := analytics.ParsePeriod(r.URL.Query().Get("period"))

	overview, err := h.agg.Overview(ctx, middleware.UserID(ctx), period, time.Now())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute overview")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to compute overview")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, overview)
}

// SpendingByCategory handles GET /api/analytics/spending-by-category?start&end
func (h *AnalyticsHandler) SpendingByCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	window, err := parseWindow(r.URL.Query().Get("start"), r.URL.Query().Get("end"), time.Now())
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	spending, err := h.agg.SpendingByCategory(ctx, middleware.UserID(ctx), window)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute category spending")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to compute category spending")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"spending": spending,
		"count":    len(spending),
	})
}

// Trends handles GET /api/analytics/trends?type=expense&period=month&months=6
func (h *AnalyticsHandler) Trends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	txType := domain.TransactionType(r.URL.Query().Get("type"))
	if txType == "" {
		txType = domain.TypeExpense
	}
	if !txType.Valid() {
		middleware.WriteError(w, http.StatusBadRequest, "type must be expense or income")
		return
	}

	period := analytics.ParsePeriod(r.URL.Query().Get("period"))
	n := 6
	if raw := r.URL.Query().Get("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			middleware.WriteError(w, http.StatusBadRequest, "months must be a positive integer")
			return
		}
		n = parsed
	}

	trends, err := h.agg.Trends(ctx, middleware.UserID(ctx), txType, period, n, time.Now())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute trends")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to compute trends")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{"trends": trends})
}

// Daily handles GET /api/analytics/daily?days=30
func (h *AnalyticsHandler) Daily(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			middleware.WriteError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	daily, err := h.agg.DailySpending(ctx, middleware.UserID(ctx), days, time.Now())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute daily spending")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to compute daily spending")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{"daily": daily})
}

var errInvalidDate = errors.New("dates must be in YYYY-MM-DD format")

// parseWindow builds a window from optional YYYY-MM-DD bounds, defaulting to
// the current calendar month.
func parseWindow(start, end string, now time.Time) (store.Window, error) {
	w := analytics.MonthWindow(now)
	if start != "" {
		t, err := time.Parse("2006-01-02", start)
		if err != nil {
			return w, errInvalidDate
		}
		w.Start = t
	}
	if end != "" {
		t, err := time.Parse("2006-01-02", end)
		if err != nil {
			return w, errInvalidDate
		}
		w.End = t.AddDate(0, 0, 1).Add(-time.Second)
	}
	return w, nil
}
