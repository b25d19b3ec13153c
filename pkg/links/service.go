package links

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/linkbio/pkg/entitlement"
)

// CapabilitiesFunc resolves the caller's effective capabilities.
// Usually entitlement.Service.EffectiveCapabilities.
type CapabilitiesFunc func(ctx context.Context, userID uuid.UUID) (entitlement.Capabilities, error)

// Service implements link management with plan gating.
// Every mutating operation resolves capabilities first and fails closed on
// resolution errors: a transient denial beats accidental premium access.
type Service struct {
	store        Store
	capabilities CapabilitiesFunc
}

// NewService creates a links Service.
// Panics if any dependency is nil to fail fast during initialization.
func NewService(store Store, capabilities CapabilitiesFunc) *Service {
	if store == nil {
		panic("links: Store is required")
	}
	if capabilities == nil {
		panic("links: CapabilitiesFunc is required")
	}

	return &Service{store: store, capabilities: capabilities}
}

// Create adds a new link after checking the plan's link quota against a
// fresh count. The check is advisory: the store's constraints remain the
// authority under concurrent creates.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*Link, error) {
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}
	if err := validateURL(in.URL); err != nil {
		return nil, err
	}

	caps, err := s.capabilities(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.ScheduledAt != nil && !caps.LinkScheduling {
		return nil, ErrSchedulingNotAllowed
	}

	count, err := s.store.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !caps.CanCreateLink(count) {
		return nil, ErrLinkLimitReached
	}

	now := time.Now().UTC()
	link := &Link{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       strings.TrimSpace(in.Title),
		URL:         in.URL,
		Position:    int(count), // append at the end of the page
		Active:      true,
		ScheduledAt: in.ScheduledAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// Update modifies an existing link owned by the user.
func (s *Service) Update(ctx context.Context, userID, linkID uuid.UUID, in UpdateInput) (*Link, error) {
	link, err := s.store.Get(ctx, userID, linkID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if err := validateTitle(*in.Title); err != nil {
			return nil, err
		}
		link.Title = strings.TrimSpace(*in.Title)
	}
	if in.URL != nil {
		if err := validateURL(*in.URL); err != nil {
			return nil, err
		}
		link.URL = *in.URL
	}
	if in.Active != nil {
		link.Active = *in.Active
	}

	if in.ScheduledAt != nil {
		caps, err := s.capabilities(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !caps.LinkScheduling {
			return nil, ErrSchedulingNotAllowed
		}
		link.ScheduledAt = in.ScheduledAt
	} else if in.ClearSchedule {
		link.ScheduledAt = nil
	}

	link.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// Delete removes a link owned by the user.
func (s *Service) Delete(ctx context.Context, userID, linkID uuid.UUID) error {
	return s.store.Delete(ctx, userID, linkID)
}

// List returns all of the user's links ordered by position.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]Link, error) {
	return s.store.ListByUser(ctx, userID)
}

// Reorder applies a new link order. The ID list must contain every link the
// user owns exactly once.
func (s *Service) Reorder(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error {
	existing, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(orderedIDs) != len(existing) {
		return ErrInvalidReorder
	}

	owned := make(map[uuid.UUID]bool, len(existing))
	for _, link := range existing {
		owned[link.ID] = true
	}
	seen := make(map[uuid.UUID]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !owned[id] || seen[id] {
			return ErrInvalidReorder
		}
		seen[id] = true
	}

	return s.store.UpdatePositions(ctx, userID, orderedIDs)
}

// VisibleLinks returns the links that should render on the public page
// right now: active and past any scheduled publish time.
func (s *Service) VisibleLinks(ctx context.Context, userID uuid.UUID) ([]Link, error) {
	all, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	visible := make([]Link, 0, len(all))
	for _, link := range all {
		if link.IsVisibleAt(now) {
			visible = append(visible, link)
		}
	}
	return visible, nil
}

// Remaining reports how many more links the user may create, with the
// current count, for dashboards and quota headers. -1 means unlimited.
func (s *Service) Remaining(ctx context.Context, userID uuid.UUID) (remaining, count int64, err error) {
	caps, err := s.capabilities(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	count, err = s.store.CountByUser(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return caps.RemainingLinks(count), count, nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidURL
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}
