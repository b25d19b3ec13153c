package links

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/linkbio/modules/api"
	"github.com/dmitrymomot/linkbio/pkg/analytics"
	"github.com/dmitrymomot/linkbio/pkg/links"
)

// LinkService is the subset of links.Service the module needs.
type LinkService interface {
	Create(ctx context.Context, userID uuid.UUID, in links.CreateInput) (*links.Link, error)
	Update(ctx context.Context, userID, linkID uuid.UUID, in links.UpdateInput) (*links.Link, error)
	Delete(ctx context.Context, userID, linkID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]links.Link, error)
	Reorder(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error
	VisibleLinks(ctx context.Context, userID uuid.UUID) ([]links.Link, error)
	Remaining(ctx context.Context, userID uuid.UUID) (remaining, count int64, err error)
}

// UserResolver maps a public profile username to a user id.
// It must return links.ErrLinkNotFound-compatible semantics through its own
// error; the public router translates any failure into a 404.
type UserResolver func(ctx context.Context, username string) (uuid.UUID, error)

// RouterOptions configures the links module.
type RouterOptions struct {
	Links LinkService
	Log   *slog.Logger // optional, discards when nil
}

// Router mounts the authenticated link management endpoints. List and create
// responses carry X-Links-Limit and X-Links-Remaining quota headers so
// dashboards can render upgrade prompts without a second round trip.
//
//	r.Mount("/links", links.Router(links.RouterOptions{Links: linkSvc, Log: log}))
func Router(opts RouterOptions) chi.Router {
	if opts.Links == nil {
		panic("links: link service is required")
	}
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	h := &handlers{links: opts.Links, log: log}

	r := chi.NewRouter()
	r.Use(api.RequireUser)
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Patch("/{linkID}", h.update)
	r.Delete("/{linkID}", h.delete)
	r.Put("/reorder", h.reorder)

	return r
}

// ClickRecorder persists one click per visit. Recording is best effort; the
// redirect never fails because of it.
type ClickRecorder interface {
	Record(ctx context.Context, click analytics.Click) error
}

// PublicRouterOptions configures the unauthenticated public surface.
type PublicRouterOptions struct {
	Links   LinkService
	Resolve UserResolver
	Clicks  ClickRecorder // optional, redirects skip recording when nil
	Log     *slog.Logger  // optional, discards when nil
}

// PublicRouter mounts the unauthenticated public page endpoint serving the
// visible links of a profile, plus the click-through redirect that feeds
// the analytics store.
//
//	r.Mount("/", links.PublicRouter(links.PublicRouterOptions{
//	    Links:   linkSvc,
//	    Resolve: resolveUser,
//	    Clicks:  clickStore,
//	}))
func PublicRouter(opts PublicRouterOptions) chi.Router {
	if opts.Links == nil {
		panic("links: link service is required")
	}
	if opts.Resolve == nil {
		panic("links: user resolver is required")
	}
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	h := &handlers{links: opts.Links, resolve: opts.Resolve, clicks: opts.Clicks, log: log}

	r := chi.NewRouter()
	r.Get("/{username}", h.publicPage)
	r.Get("/{username}/r/{linkID}", h.clickThrough)

	return r
}
