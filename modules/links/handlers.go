package links

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/linkbio/modules/api"
	"github.com/dmitrymomot/linkbio/pkg/analytics"
	"github.com/dmitrymomot/linkbio/pkg/links"
	"github.com/dmitrymomot/linkbio/pkg/logger"
)

type handlers struct {
	links   LinkService
	resolve UserResolver
	clicks  ClickRecorder
	log     *slog.Logger
}

type linkResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Position    int        `json:"position"`
	Active      bool       `json:"active"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

func toLinkResponse(l links.Link) linkResponse {
	return linkResponse{
		ID:          l.ID,
		Title:       l.Title,
		URL:         l.URL,
		Position:    l.Position,
		Active:      l.Active,
		ScheduledAt: l.ScheduledAt,
	}
}

func toLinkResponses(ls []links.Link) []linkResponse {
	out := make([]linkResponse, len(ls))
	for i, l := range ls {
		out[i] = toLinkResponse(l)
	}
	return out
}

// setQuotaHeaders exposes the plan quota on list/create responses.
// limit = remaining + count; -1 remaining means unlimited.
func (h *handlers) setQuotaHeaders(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	remaining, count, err := h.links.Remaining(r.Context(), userID)
	if err != nil {
		h.log.ErrorContext(r.Context(), "Quota header lookup failed",
			logger.Component("links"), logger.UserID(userID), logger.Error(err))
		return
	}
	if remaining < 0 {
		w.Header().Set("X-Links-Limit", "unlimited")
		w.Header().Set("X-Links-Remaining", "unlimited")
		return
	}
	w.Header().Set("X-Links-Limit", strconv.FormatInt(remaining+count, 10))
	w.Header().Set("X-Links-Remaining", strconv.FormatInt(remaining, 10))
}

func (h *handlers) list(w http.ResponseWriter, r *http.Request) {
	userID, _ := api.GetUserIDFromContext(r.Context())

	list, err := h.links.List(r.Context(), userID)
	if err != nil {
		h.log.ErrorContext(r.Context(), "Link listing failed",
			logger.Component("links"), logger.UserID(userID), logger.Error(err))
		api.Error(w, http.StatusInternalServerError, "internal", "could not list links")
		return
	}

	h.setQuotaHeaders(w, r, userID)
	api.JSON(w, http.StatusOK, toLinkResponses(list))
}

type createLinkRequest struct {
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	userID, _ := api.GetUserIDFromContext(r.Context())

	var req createLinkRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid_body", "malformed request body")
		return
	}

	link, err := h.links.Create(r.Context(), userID, links.CreateInput{
		Title:       req.Title,
		URL:         req.URL,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		h.writeLinkError(w, r, userID, err)
		return
	}

	h.setQuotaHeaders(w, r, userID)
	api.JSON(w, http.StatusCreated, toLinkResponse(*link))
}

type updateLinkRequest struct {
	Title         *string    `json:"title,omitempty"`
	URL           *string    `json:"url,omitempty"`
	Active        *bool      `json:"active,omitempty"`
	ScheduledAt   *time.Time `json:"scheduled_at,omitempty"`
	ClearSchedule bool       `json:"clear_schedule,omitempty"`
}

func (h *handlers) update(w http.ResponseWriter, r *http.Request) {
	userID, _ := api.GetUserIDFromContext(r.Context())

	linkID, err := uuid.Parse(chi.URLParam(r, "linkID"))
	if err != nil {
		api.Error(w, http.StatusNotFound, "not_found", "link not found")
		return
	}

	var req updateLinkRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid_body", "malformed request body")
		return
	}

	link, err := h.links.Update(r.Context(), userID, linkID, links.UpdateInput{
		Title:         req.Title,
		URL:           req.URL,
		Active:        req.Active,
		ScheduledAt:   req.ScheduledAt,
		ClearSchedule: req.ClearSchedule,
	})
	if err != nil {
		h.writeLinkError(w, r, userID, err)
		return
	}

	api.JSON(w, http.StatusOK, toLinkResponse(*link))
}

func (h *handlers) delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := api.GetUserIDFromContext(r.Context())

	linkID, err := uuid.Parse(chi.URLParam(r, "linkID"))
	if err != nil {
		api.Error(w, http.StatusNotFound, "not_found", "link not found")
		return
	}

	if err := h.links.Delete(r.Context(), userID, linkID); err != nil {
		h.writeLinkError(w, r, userID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type reorderRequest struct {
	LinkIDs []uuid.UUID `json:"link_ids"`
}

func (h *handlers) reorder(w http.ResponseWriter, r *http.Request) {
	userID, _ := api.GetUserIDFromContext(r.Context())

	var req reorderRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid_body", "malformed request body")
		return
	}

	if err := h.links.Reorder(r.Context(), userID, req.LinkIDs); err != nil {
		h.writeLinkError(w, r, userID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type publicPageResponse struct {
	Username string         `json:"username"`
	Links    []linkResponse `json:"links"`
}

func (h *handlers) publicPage(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	userID, err := h.resolve(r.Context(), username)
	if err != nil {
		api.Error(w, http.StatusNotFound, "not_found", "profile not found")
		return
	}

	visible, err := h.links.VisibleLinks(r.Context(), userID)
	if err != nil {
		h.log.ErrorContext(r.Context(), "Public page lookup failed",
			logger.Component("links"), logger.UserID(userID), logger.Error(err))
		api.Error(w, http.StatusInternalServerError, "internal", "could not load profile")
		return
	}

	api.JSON(w, http.StatusOK, publicPageResponse{
		Username: username,
		Links:    toLinkResponses(visible),
	})
}

// clickThrough records a visit and redirects to the link target. Only links
// visible on the public page are reachable, so hidden and scheduled links
// cannot be probed through the redirect.
func (h *handlers) clickThrough(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	userID, err := h.resolve(r.Context(), username)
	if err != nil {
		api.Error(w, http.StatusNotFound, "not_found", "profile not found")
		return
	}

	linkID, err := uuid.Parse(chi.URLParam(r, "linkID"))
	if err != nil {
		api.Error(w, http.StatusNotFound, "not_found", "link not found")
		return
	}

	visible, err := h.links.VisibleLinks(r.Context(), userID)
	if err != nil {
		h.log.ErrorContext(r.Context(), "Public page lookup failed",
			logger.Component("links"), logger.UserID(userID), logger.Error(err))
		api.Error(w, http.StatusInternalServerError, "internal", "could not load profile")
		return
	}

	var target *links.Link
	for i := range visible {
		if visible[i].ID == linkID {
			target = &visible[i]
			break
		}
	}
	if target == nil {
		api.Error(w, http.StatusNotFound, "not_found", "link not found")
		return
	}

	if h.clicks != nil {
		click := analytics.Click{
			UserID:     userID,
			LinkID:     target.ID,
			OccurredAt: time.Now().UTC(),
			Country:    r.Header.Get("CF-IPCountry"), // set by the edge proxy
			Referrer:   r.Referer(),
		}
		if err := h.clicks.Record(r.Context(), click); err != nil {
			// Analytics must never break the visitor's redirect.
			h.log.ErrorContext(r.Context(), "Click recording failed",
				logger.Component("links"), logger.UserID(userID), logger.Error(err))
		}
	}

	http.Redirect(w, r, target.URL, http.StatusFound)
}

func (h *handlers) writeLinkError(w http.ResponseWriter, r *http.Request, userID uuid.UUID, err error) {
	switch {
	case errors.Is(err, links.ErrLinkLimitReached):
		api.Error(w, http.StatusPaymentRequired, "link_limit_reached", "link limit reached for current plan")
	case errors.Is(err, links.ErrSchedulingNotAllowed):
		api.Error(w, http.StatusForbidden, "scheduling_not_allowed", "link scheduling is not available on current plan")
	case errors.Is(err, links.ErrEmptyTitle), errors.Is(err, links.ErrInvalidURL), errors.Is(err, links.ErrInvalidReorder):
		api.Error(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
	case errors.Is(err, links.ErrLinkNotFound):
		api.Error(w, http.StatusNotFound, "not_found", "link not found")
	default:
		h.log.ErrorContext(r.Context(), "Link operation failed",
			logger.Component("links"), logger.UserID(userID), logger.Error(err))
		api.Error(w, http.StatusInternalServerError, "internal", "link operation failed")
	}
}
