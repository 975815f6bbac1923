package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/finsight/finsight/internal/intelligence"
	"github.com/finsight/finsight/internal/store/memory"
)

func newAnalyticsTestHandler() *AnalyticsHandler {
	st := memory.NewStore()
	memory.SeedDemoData(st, time.Now())
	svc := intelligence.NewService(st, intelligence.DefaultLexicon(), zerolog.Nop())
	return NewAnalyticsHandler(svc.Aggregator(), zerolog.Nop())
}

func TestOverviewHandler(t *testing.T) {
	h := newAnalyticsTestHandler()

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/analytics/overview?period=month", nil), memory.DemoUserID)
	rec := httptest.NewRecorder()
	h.Overview(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Period  string `json:"period"`
		Current struct {
			Income float64 `json:"income"`
		} `json:"current"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Period != "month" {
		t.Errorf("period = %q, want month", body.Period)
	}
}

func TestSpendingByCategoryHandlerBadDates(t *testing.T) {
	h := newAnalyticsTestHandler()

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/analytics/spending-by-category?start=03-01-2026", nil), memory.DemoUserID)
	rec := httptest.NewRecorder()
	h.SpendingByCategory(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestTrendsHandlerValidation(t *testing.T) {
	h := newAnalyticsTestHandler()

	tests := []struct {
		name string
		url  string
		want int
	}{
		{"default params", "/api/analytics/trends", http.StatusOK},
		{"invalid type", "/api/analytics/trends?type=transfer", http.StatusBadRequest},
		{"invalid months", "/api/analytics/trends?months=zero", http.StatusBadRequest},
		{"negative months", "/api/analytics/trends?months=-1", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := asUser(httptest.NewRequest(http.MethodGet, tt.url, nil), memory.DemoUserID)
			rec := httptest.NewRecorder()
			h.Trends(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestDailyHandler(t *testing.T) {
	h := newAnalyticsTestHandler()

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/analytics/daily?days=30", nil), memory.DemoUserID)
	rec := httptest.NewRecorder()
	h.Daily(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Daily []struct {
			Date  string  `json:"Date"`
			Total float64 `json:"Total"`
		} `json:"daily"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(body.Daily) == 0 {
		t.Error("expected daily spending for the demo dataset")
	}
}

func TestParseWindow(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	w, err := parseWindow("", "", now)
	if err != nil {
		t.Fatalf("parseWindow failed: %v", err)
	}
	if w.Start.Day() != 1 || w.Start.Month() != time.March {
		t.Errorf("default Start = %v, want first of March", w.Start)
	}

	w, err = parseWindow("2026-01-01", "2026-01-31", now)
	if err != nil {
		t.Fatalf("parseWindow failed: %v", err)
	}
	if w.Start.Month() != time.January || w.Start.Day() != 1 {
		t.Errorf("Start = %v, want 2026-01-01", w.Start)
	}
	// End bound is inclusive through the end of the named day.
	if !w.Contains(time.Date(2026, time.January, 31, 18, 0, 0, 0, time.UTC)) {
		t.Error("window should include the whole end day")
	}

	if _, err := parseWindow("jan 1", "", now); err == nil {
		t.Error("expected an error for a malformed start date")
	}
}
