package analytics

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/linkbio/modules/api"
	"github.com/dmitrymomot/linkbio/pkg/analytics"
	"github.com/dmitrymomot/linkbio/pkg/entitlement"
	"github.com/dmitrymomot/linkbio/pkg/logger"
)

const (
	defaultWindowDays = 30
	maxWindowDays     = 365
	topCountriesLimit = 10
)

type handlers struct {
	clicks       ClickSource
	entitlements EntitlementService
	log          *slog.Logger
}

// capabilitiesFor resolves the current user's capabilities. Lookup failures
// degrade to the free tier, which carries no analytics capabilities, so a
// broken lookup denies access instead of leaking gated data.
func (h *handlers) capabilitiesFor(r *http.Request, userID uuid.UUID) entitlement.Capabilities {
	caps, err := h.entitlements.EffectiveCapabilities(r.Context(), userID)
	if err != nil {
		h.log.ErrorContext(r.Context(), "Capability resolution degraded",
			logger.Component("analytics"), logger.UserID(userID), logger.Error(err))
	}
	return caps
}

// windowDays reads the optional ?days= query parameter, clamped to a year.
func windowDays(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return defaultWindowDays, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 {
		return 0, fmt.Errorf("days must be a positive integer, got %q", raw)
	}
	return min(days, maxWindowDays), nil
}

type countryCount struct {
	Country string `json:"country"`
	Clicks  int64  `json:"clicks"`
}

type summaryResponse struct {
	Days         int                 `json:"days"`
	Total        int64               `json:"total"`
	ByDay        map[string]int64    `json:"by_day"`
	TopCountries []countryCount      `json:"top_countries"`
	ByLink       map[uuid.UUID]int64 `json:"by_link"`
}

func (h *handlers) summary(w http.ResponseWriter, r *http.Request) {
	userID, _ := api.GetUserIDFromContext(r.Context())

	if !h.capabilitiesFor(r, userID).AdvancedAnalytics {
		api.Error(w, http.StatusForbidden, "analytics_not_available",
			"advanced analytics is not available on current plan")
		return
	}

	days, err := windowDays(r)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "invalid_days", err.Error())
		return
	}

	s, err := h.summarize(r, userID, days)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "internal", "could not load analytics")
		return
	}

	ranked := s.TopCountries(topCountriesLimit)
	top := make([]countryCount, len(ranked))
	for i, c := range ranked {
		top[i] = countryCount{Country: c.Country, Clicks: c.Count}
	}

	api.JSON(w, http.StatusOK, summaryResponse{
		Days:         days,
		Total:        s.Total,
		ByDay:        s.ByDay,
		TopCountries: top,
		ByLink:       s.ByLink,
	})
}

func (h *handlers) exportCSV(w http.ResponseWriter, r *http.Request) {
	userID, _ := api.GetUserIDFromContext(r.Context())

	if !h.capabilitiesFor(r, userID).AnalyticsExport {
		api.Error(w, http.StatusForbidden, "export_not_available",
			"analytics export is not available on current plan")
		return
	}

	days, err := windowDays(r)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "invalid_days", err.Error())
		return
	}

	s, err := h.summarize(r, userID, days)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "internal", "could not load analytics")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("clicks-%dd.csv", days)))
	w.WriteHeader(http.StatusOK)

	if err := analytics.WriteCSV(w, s); err != nil {
		// Headers are already on the wire; the truncated body is the
		// client's signal.
		h.log.ErrorContext(r.Context(), "CSV export write failed",
			logger.Component("analytics"), logger.UserID(userID), logger.Error(err))
	}
}

func (h *handlers) summarize(r *http.Request, userID uuid.UUID, days int) (analytics.Summary, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	clicks, err := h.clicks.ListByUser(r.Context(), userID, since)
	if err != nil {
		h.log.ErrorContext(r.Context(), "Click listing failed",
			logger.Component("analytics"), logger.UserID(userID), logger.Error(err))
		return analytics.Summary{}, err
	}
	return analytics.Summarize(clicks), nil
}
