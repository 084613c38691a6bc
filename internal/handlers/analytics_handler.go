package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"shipdash-backend/internal/cache"
	"shipdash-backend/internal/middleware"
	"shipdash-backend/internal/timeutil"
	"shipdash-backend/internal/upstream"
	"shipdash-backend/pkg/utils"
)

type AnalyticsHandler struct {
	API *upstream.Client
}

func NewAnalyticsHandler(api *upstream.Client) *AnalyticsHandler {
	return &AnalyticsHandler{API: api}
}

// GetSummary handles GET /api/analytics/summary
// Query params: start, end (YYYY-MM-DD, widened to full days)
func (h *AnalyticsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	var start, end *time.Time
	if raw := r.URL.Query().Get("start"); raw != "" {
		t, err := time.ParseInLocation(timeutil.DateLayout, raw, timeutil.IST)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid start date, use YYYY-MM-DD")
			return
		}
		s := timeutil.StartOfDay(t)
		start = &s
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		t, err := time.ParseInLocation(timeutil.DateLayout, raw, timeutil.IST)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid end date, use YYYY-MM-DD")
			return
		}
		e := timeutil.EndOfDay(t)
		end = &e
	}

	// Only the unwindowed summary is cached; windowed queries go
	// straight upstream.
	if start == nil && end == nil {
		if data, ok := cache.GetSummary(r.Context()); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(data)
			return
		}
	}

	summary, err := h.API.AnalyticsSummary(r.Context(), middleware.SessionFromContext(r.Context()), start, end)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	if start == nil && end == nil {
		if data, err := json.Marshal(summary); err == nil {
			cache.PutSummary(r.Context(), data)
		}
	}

	utils.JSON(w, http.StatusOK, summary)
}

// GetDashboard handles GET /api/analytics/dashboard
func (h *AnalyticsHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	data, err := h.API.Dashboard(r.Context(), middleware.SessionFromContext(r.Context()))
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, data)
}
