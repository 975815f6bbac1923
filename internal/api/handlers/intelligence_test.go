package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/finsight/finsight/internal/api/middleware"
	"github.com/finsight/finsight/internal/intelligence"
	"github.com/finsight/finsight/internal/store/memory"
)

func newTestHandler() *IntelligenceHandler {
	st := memory.NewStore()
	memory.SeedDemoData(st, time.Now())
	svc := intelligence.NewService(st, intelligence.DefaultLexicon(), zerolog.Nop())
	return NewIntelligenceHandler(svc, zerolog.Nop())
}

// asUser stamps the request with an authenticated user the way the
// middleware chain would.
func asUser(r *http.Request, userID string) *http.Request {
	r.Header.Set("X-User-ID", userID)
	var out *http.Request
	capture := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) { out = req })
	middleware.RequireUser(capture).ServeHTTP(httptest.NewRecorder(), r)
	return out
}

func TestCategorizeHandler(t *testing.T) {
	h := newTestHandler()

	body := strings.NewReader(`{"description":"Starbucks coffee","amount":4.50}`)
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/intelligence/categorize", body), memory.DemoUserID)
	rec := httptest.NewRecorder()
	h.Categorize(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var result intelligence.CategorizeResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if result.SuggestedCategory == nil || result.SuggestedCategory.Name != "Food & Dining" {
		t.Errorf("suggested = %+v, want Food & Dining", result.SuggestedCategory)
	}
	if result.Confidence != intelligence.ConfidenceHigh {
		t.Errorf("confidence = %q, want high", result.Confidence)
	}
}

func TestCategorizeHandlerValidation(t *testing.T) {
	h := newTestHandler()

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{not json`},
		{"missing description", `{"amount":4.50}`},
		{"non-positive amount", `{"description":"coffee","amount":0}`},
		{"negative amount", `{"description":"coffee","amount":-3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := asUser(httptest.NewRequest(http.MethodPost, "/api/intelligence/categorize", strings.NewReader(tt.body)), memory.DemoUserID)
			rec := httptest.NewRecorder()
			h.Categorize(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestInsightsHandler(t *testing.T) {
	h := newTestHandler()

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/intelligence/insights?period=month", nil), memory.DemoUserID)
	rec := httptest.NewRecorder()
	h.Insights(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var result intelligence.InsightsResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(result.Insights) == 0 {
		t.Error("expected at least one insight for the demo dataset")
	}
	if result.Degraded {
		t.Error("demo dataset must not produce a degraded result")
	}
}

func TestPredictionsHandler(t *testing.T) {
	h := newTestHandler()

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/intelligence/predictions?months=2", nil), memory.DemoUserID)
	rec := httptest.NewRecorder()
	h.Predictions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var result intelligence.ForecastResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(result.Predictions) != 2 {
		t.Errorf("got %d predictions, want 2", len(result.Predictions))
	}
}

func TestPredictionsHandlerBadMonths(t *testing.T) {
	h := newTestHandler()

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/intelligence/predictions?months=x", nil), memory.DemoUserID)
	rec := httptest.NewRecorder()
	h.Predictions(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestChatHandler(t *testing.T) {
	h := newTestHandler()

	body := strings.NewReader(`{"question":"How much should I save?"}`)
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/intelligence/chat", body), memory.DemoUserID)
	rec := httptest.NewRecorder()
	h.Chat(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var result intelligence.AdviceResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if result.Response == "" {
		t.Error("expected a response")
	}
	if len(result.Suggestions) != 4 {
		t.Errorf("got %d suggestions, want 4", len(result.Suggestions))
	}
}

func TestChatHandlerMissingQuestion(t *testing.T) {
	h := newTestHandler()

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/intelligence/chat", strings.NewReader(`{}`)), memory.DemoUserID)
	rec := httptest.NewRecorder()
	h.Chat(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
