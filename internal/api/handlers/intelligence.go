package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/finsight/finsight/internal/analytics"
	"github.com/finsight/finsight/internal/api/middleware"
	"github.com/finsight/finsight/internal/domain"
	"github.com/finsight/finsight/internal/intelligence"
)

const defaultForecastMonths = 3

// IntelligenceHandler serves the advisory endpoints. These are best-effort:
// internal failures surface as HTTP 200 with a degraded body, never as 5xx.
type IntelligenceHandler struct {
	svc *intelligence.Service
	log zerolog.Logger
}

// NewIntelligenceHandler creates a new intelligence handler.
func NewIntelligenceHandler(svc *intelligence.Service, log zerolog.Logger) *IntelligenceHandler {
	return &IntelligenceHandler{svc: svc, log: log}
}

// Categorize handles POST /api/intelligence/categorize
func (h *IntelligenceHandler) Categorize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Description string       `json:"description"`
		Amount      domain.Money `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Description == "" || req.Amount <= 0 {
		middleware.WriteError(w, http.StatusBadRequest, "Description and a positive amount are required")
		return
	}

	result := h.svc.Categorize(ctx, middleware.UserID(ctx), req.Description, req.Amount)
	middleware.WriteJSON(w, http.StatusOK, result)
}

// Insights handles GET /api/intelligence/insights?period=month|year
func (h *IntelligenceHandler) Insights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	period := analytics.ParsePeriod(r.URL.Query().Get("period"))

	result := h.svc.GenerateInsights(ctx, middleware.UserID(ctx), period)
	middleware.WriteJSON(w, http.StatusOK, result)
}

// BudgetSuggestions handles GET /api/intelligence/budget-suggestions
func (h *IntelligenceHandler) BudgetSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result := h.svc.SuggestBudgets(ctx, middleware.UserID(ctx))
	middleware.WriteJSON(w, http.StatusOK, result)
}

// Predictions handles GET /api/intelligence/predictions?months=N
func (h *IntelligenceHandler) Predictions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	months := defaultForecastMonths
	if raw := r.URL.Query().Get("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "months must be an integer")
			return
		}
		// Non-positive values yield an empty prediction list rather than an error.
		months = parsed
	}

	result := h.svc.PredictSpending(ctx, middleware.UserID(ctx), months)
	middleware.WriteJSON(w, http.StatusOK, result)
}

// Chat handles POST /api/intelligence/chat
func (h *IntelligenceHandler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Question == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Question is required")
		return
	}

	result := h.svc.GetAdvice(ctx, middleware.UserID(ctx), req.Question)
	middleware.WriteJSON(w, http.StatusOK, result)
}
