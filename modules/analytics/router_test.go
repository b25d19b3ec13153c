package analytics_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/linkbio/modules/api"
	analyticsmodule "github.com/dmitrymomot/linkbio/modules/analytics"
	"github.com/dmitrymomot/linkbio/pkg/analytics"
	"github.com/dmitrymomot/linkbio/pkg/entitlement"
)

type fakeClicks struct {
	clicks []analytics.Click
	err    error

	gotSince time.Time
}

func (f *fakeClicks) ListByUser(_ context.Context, _ uuid.UUID, since time.Time) ([]analytics.Click, error) {
	f.gotSince = since
	return f.clicks, f.err
}

type fakeEntitlements struct {
	caps entitlement.Capabilities
	err  error
}

func (f *fakeEntitlements) EffectiveCapabilities(_ context.Context, _ uuid.UUID) (entitlement.Capabilities, error) {
	return f.caps, f.err
}

func newRouter(clicks *fakeClicks, ents *fakeEntitlements) http.Handler {
	return analyticsmodule.Router(analyticsmodule.RouterOptions{
		Clicks:       clicks,
		Entitlements: ents,
	})
}

func premiumCaps() entitlement.Capabilities {
	return entitlement.Capabilities{
		PlanID:            entitlement.PlanPremium,
		AdvancedAnalytics: true,
		AnalyticsExport:   true,
	}
}

func authedGet(h http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(api.SetUserIDToContext(req.Context(), uuid.New()))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_PanicsOnMissingDeps(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		analyticsmodule.Router(analyticsmodule.RouterOptions{Entitlements: &fakeEntitlements{}})
	})
	assert.Panics(t, func() {
		analyticsmodule.Router(analyticsmodule.RouterOptions{Clicks: &fakeClicks{}})
	})
}

func TestSummary(t *testing.T) {
	t.Parallel()

	linkID := uuid.New()
	now := time.Now().UTC()
	clicks := &fakeClicks{clicks: []analytics.Click{
		{LinkID: linkID, OccurredAt: now, Country: "DE"},
		{LinkID: linkID, OccurredAt: now, Country: "DE"},
		{LinkID: linkID, OccurredAt: now.Add(-24 * time.Hour), Country: "US"},
	}}
	h := newRouter(clicks, &fakeEntitlements{caps: premiumCaps()})

	w := authedGet(h, "/summary")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Days         int              `json:"days"`
		Total        int64            `json:"total"`
		ByDay        map[string]int64 `json:"by_day"`
		TopCountries []struct {
			Country string `json:"country"`
			Clicks  int64  `json:"clicks"`
		} `json:"top_countries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 30, resp.Days)
	assert.EqualValues(t, 3, resp.Total)
	require.NotEmpty(t, resp.TopCountries)
	assert.Equal(t, "DE", resp.TopCountries[0].Country)
	assert.EqualValues(t, 2, resp.TopCountries[0].Clicks)
	assert.WithinDuration(t, now.AddDate(0, 0, -30), clicks.gotSince, time.Minute)
}

func TestSummary_CustomWindow(t *testing.T) {
	t.Parallel()

	clicks := &fakeClicks{}
	h := newRouter(clicks, &fakeEntitlements{caps: premiumCaps()})

	w := authedGet(h, "/summary?days=7")
	require.Equal(t, http.StatusOK, w.Code)
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, -7), clicks.gotSince, time.Minute)

	w = authedGet(h, "/summary?days=nope")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_days")

	w = authedGet(h, "/summary?days=-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSummary_RequiresCapability(t *testing.T) {
	t.Parallel()

	h := newRouter(&fakeClicks{}, &fakeEntitlements{caps: entitlement.Capabilities{
		PlanID:    entitlement.PlanBasic,
		LinkLimit: 25,
	}})

	w := authedGet(h, "/summary")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "analytics_not_available")
}

func TestSummary_DegradedLookupDenies(t *testing.T) {
	t.Parallel()

	// Lookup failure resolves to free-tier capabilities, which never carry
	// the analytics flags.
	h := newRouter(&fakeClicks{}, &fakeEntitlements{
		caps: entitlement.Capabilities{PlanID: entitlement.PlanFree, LinkLimit: 5},
		err:  errors.New("store down"),
	})

	w := authedGet(h, "/summary")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSummary_SourceFailure(t *testing.T) {
	t.Parallel()

	h := newRouter(&fakeClicks{err: errors.New("query failed")}, &fakeEntitlements{caps: premiumCaps()})

	w := authedGet(h, "/summary")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestExportCSV(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	clicks := &fakeClicks{clicks: []analytics.Click{
		{LinkID: uuid.New(), OccurredAt: now, Country: "DE"},
	}}
	h := newRouter(clicks, &fakeEntitlements{caps: premiumCaps()})

	w := authedGet(h, "/export.csv")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "date,clicks")
	assert.Contains(t, w.Body.String(), now.Format("2006-01-02")+",1")
}

func TestExportCSV_RequiresCapability(t *testing.T) {
	t.Parallel()

	// The download is gated separately from the summary view.
	h := newRouter(&fakeClicks{}, &fakeEntitlements{caps: entitlement.Capabilities{
		PlanID:            entitlement.PlanBasic,
		AdvancedAnalytics: true,
	}})

	w := authedGet(h, "/export.csv")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "export_not_available")
}

func TestRequiresAuthentication(t *testing.T) {
	t.Parallel()

	h := newRouter(&fakeClicks{}, &fakeEntitlements{caps: premiumCaps()})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/summary", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
