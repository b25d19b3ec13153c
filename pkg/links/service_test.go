package links_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/linkbio/pkg/entitlement"
	"github.com/dmitrymomot/linkbio/pkg/links"
)

func staticCaps(caps entitlement.Capabilities) links.CapabilitiesFunc {
	return func(ctx context.Context, userID uuid.UUID) (entitlement.Capabilities, error) {
		return caps, nil
	}
}

func freeCaps() entitlement.Capabilities {
	return entitlement.Capabilities{PlanID: entitlement.PlanFree, LinkLimit: 5}
}

func premiumCaps() entitlement.Capabilities {
	return entitlement.Capabilities{
		PlanID:         entitlement.PlanPremium,
		LinkLimit:      100,
		LinkScheduling: true,
	}
}

func mustCreate(t *testing.T, svc *links.Service, userID uuid.UUID, title string) *links.Link {
	t.Helper()

	link, err := svc.Create(context.Background(), userID, links.CreateInput{
		Title: title,
		URL:   "https://example.com/" + title,
	})
	require.NoError(t, err)
	return link
}

func TestService_Create(t *testing.T) {
	t.Parallel()

	t.Run("creates under the limit", func(t *testing.T) {
		t.Parallel()

		svc := links.NewService(links.NewMemStore(), staticCaps(freeCaps()))
		userID := uuid.New()

		link, err := svc.Create(context.Background(), userID, links.CreateInput{
			Title: "My blog",
			URL:   "https://blog.example.com",
		})

		require.NoError(t, err)
		assert.Equal(t, userID, link.UserID)
		assert.True(t, link.Active)
		assert.Equal(t, 0, link.Position)
	})

	t.Run("denies at the limit", func(t *testing.T) {
		t.Parallel()

		svc := links.NewService(links.NewMemStore(), staticCaps(freeCaps()))
		userID := uuid.New()

		for i := 0; i < 5; i++ {
			mustCreate(t, svc, userID, string(rune('a'+i)))
		}

		_, err := svc.Create(context.Background(), userID, links.CreateInput{
			Title: "one too many",
			URL:   "https://example.com/over",
		})

		assert.ErrorIs(t, err, links.ErrLinkLimitReached)
	})

	t.Run("unlimited plan never denies", func(t *testing.T) {
		t.Parallel()

		caps := entitlement.Capabilities{LinkLimit: entitlement.Unlimited}
		svc := links.NewService(links.NewMemStore(), staticCaps(caps))
		userID := uuid.New()

		for i := 0; i < 20; i++ {
			mustCreate(t, svc, userID, string(rune('a'+i)))
		}

		remaining, count, err := svc.Remaining(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, entitlement.Unlimited, remaining)
		assert.EqualValues(t, 20, count)
	})

	t.Run("scheduling requires the capability", func(t *testing.T) {
		t.Parallel()

		svc := links.NewService(links.NewMemStore(), staticCaps(freeCaps()))
		publishAt := time.Now().UTC().Add(time.Hour)

		_, err := svc.Create(context.Background(), uuid.New(), links.CreateInput{
			Title:       "Launch",
			URL:         "https://example.com/launch",
			ScheduledAt: &publishAt,
		})

		assert.ErrorIs(t, err, links.ErrSchedulingNotAllowed)
	})

	t.Run("scheduling allowed on premium", func(t *testing.T) {
		t.Parallel()

		svc := links.NewService(links.NewMemStore(), staticCaps(premiumCaps()))
		publishAt := time.Now().UTC().Add(time.Hour)

		link, err := svc.Create(context.Background(), uuid.New(), links.CreateInput{
			Title:       "Launch",
			URL:         "https://example.com/launch",
			ScheduledAt: &publishAt,
		})

		require.NoError(t, err)
		require.NotNil(t, link.ScheduledAt)
	})

	t.Run("capability resolution failure denies", func(t *testing.T) {
		t.Parallel()

		lookupErr := errors.New("connection timeout")
		svc := links.NewService(links.NewMemStore(),
			func(ctx context.Context, userID uuid.UUID) (entitlement.Capabilities, error) {
				return entitlement.Capabilities{}, lookupErr
			})

		_, err := svc.Create(context.Background(), uuid.New(), links.CreateInput{
			Title: "nope",
			URL:   "https://example.com",
		})

		assert.ErrorIs(t, err, lookupErr)
	})

	t.Run("input validation", func(t *testing.T) {
		t.Parallel()

		svc := links.NewService(links.NewMemStore(), staticCaps(freeCaps()))
		userID := uuid.New()

		_, err := svc.Create(context.Background(), userID, links.CreateInput{
			Title: "  ",
			URL:   "https://example.com",
		})
		assert.ErrorIs(t, err, links.ErrEmptyTitle)

		_, err = svc.Create(context.Background(), userID, links.CreateInput{
			Title: "ftp link",
			URL:   "ftp://example.com/file",
		})
		assert.ErrorIs(t, err, links.ErrInvalidURL)

		_, err = svc.Create(context.Background(), userID, links.CreateInput{
			Title: "no host",
			URL:   "https://",
		})
		assert.ErrorIs(t, err, links.ErrInvalidURL)
	})
}

func TestService_Update(t *testing.T) {
	t.Parallel()

	t.Run("updates fields", func(t *testing.T) {
		t.Parallel()

		svc := links.NewService(links.NewMemStore(), staticCaps(freeCaps()))
		userID := uuid.New()
		link := mustCreate(t, svc, userID, "old")

		newTitle := "new title"
		inactive := false
		updated, err := svc.Update(context.Background(), userID, link.ID, links.UpdateInput{
			Title:  &newTitle,
			Active: &inactive,
		})

		require.NoError(t, err)
		assert.Equal(t, "new title", updated.Title)
		assert.False(t, updated.Active)
	})

	t.Run("scheduling gate applies on update", func(t *testing.T) {
		t.Parallel()

		svc := links.NewService(links.NewMemStore(), staticCaps(freeCaps()))
		userID := uuid.New()
		link := mustCreate(t, svc, userID, "x")

		publishAt := time.Now().UTC().Add(time.Hour)
		_, err := svc.Update(context.Background(), userID, link.ID, links.UpdateInput{
			ScheduledAt: &publishAt,
		})

		assert.ErrorIs(t, err, links.ErrSchedulingNotAllowed)
	})

	t.Run("clear schedule needs no capability", func(t *testing.T) {
		t.Parallel()

		store := links.NewMemStore()
		premium := links.NewService(store, staticCaps(premiumCaps()))
		userID := uuid.New()

		publishAt := time.Now().UTC().Add(time.Hour)
		link, err := premium.Create(context.Background(), userID, links.CreateInput{
			Title:       "scheduled",
			URL:         "https://example.com/s",
			ScheduledAt: &publishAt,
		})
		require.NoError(t, err)

		// Same store, downgraded capabilities: clearing must still work.
		downgraded := links.NewService(store, staticCaps(freeCaps()))
		updated, err := downgraded.Update(context.Background(), userID, link.ID, links.UpdateInput{
			ClearSchedule: true,
		})

		require.NoError(t, err)
		assert.Nil(t, updated.ScheduledAt)
	})

	t.Run("cannot touch another user's link", func(t *testing.T) {
		t.Parallel()

		svc := links.NewService(links.NewMemStore(), staticCaps(freeCaps()))
		owner := uuid.New()
		link := mustCreate(t, svc, owner, "mine")

		title := "hijack"
		_, err := svc.Update(context.Background(), uuid.New(), link.ID, links.UpdateInput{
			Title: &title,
		})

		assert.ErrorIs(t, err, links.ErrLinkNotFound)
	})
}

func TestService_Reorder(t *testing.T) {
	t.Parallel()

	t.Run("applies new order", func(t *testing.T) {
		t.Parallel()

		svc := links.NewService(links.NewMemStore(), staticCaps(freeCaps()))
		userID := uuid.New()
		a := mustCreate(t, svc, userID, "a")
		b := mustCreate(t, svc, userID, "b")
		c := mustCreate(t, svc, userID, "c")

		require.NoError(t, svc.Reorder(context.Background(), userID,
			[]uuid.UUID{c.ID, a.ID, b.ID}))

		listed, err := svc.List(context.Background(), userID)
		require.NoError(t, err)
		require.Len(t, listed, 3)
		assert.Equal(t, c.ID, listed[0].ID)
		assert.Equal(t, a.ID, listed[1].ID)
		assert.Equal(t, b.ID, listed[2].ID)
	})

	t.Run("rejects incomplete or duplicated lists", func(t *testing.T) {
		t.Parallel()

		svc := links.NewService(links.NewMemStore(), staticCaps(freeCaps()))
		userID := uuid.New()
		a := mustCreate(t, svc, userID, "a")
		b := mustCreate(t, svc, userID, "b")

		assert.ErrorIs(t, svc.Reorder(context.Background(), userID,
			[]uuid.UUID{a.ID}), links.ErrInvalidReorder)
		assert.ErrorIs(t, svc.Reorder(context.Background(), userID,
			[]uuid.UUID{a.ID, a.ID}), links.ErrInvalidReorder)
		assert.ErrorIs(t, svc.Reorder(context.Background(), userID,
			[]uuid.UUID{a.ID, uuid.New()}), links.ErrInvalidReorder)
		_ = b
	})
}

func TestService_VisibleLinks(t *testing.T) {
	t.Parallel()

	store := links.NewMemStore()
	svc := links.NewService(store, staticCaps(premiumCaps()))
	userID := uuid.New()

	visible := mustCreate(t, svc, userID, "visible")

	future := time.Now().UTC().Add(time.Hour)
	_, err := svc.Create(context.Background(), userID, links.CreateInput{
		Title:       "not yet",
		URL:         "https://example.com/later",
		ScheduledAt: &future,
	})
	require.NoError(t, err)

	past := time.Now().UTC().Add(-time.Hour)
	published, err := svc.Create(context.Background(), userID, links.CreateInput{
		Title:       "published",
		URL:         "https://example.com/published",
		ScheduledAt: &past,
	})
	require.NoError(t, err)

	hidden := mustCreate(t, svc, userID, "hidden")
	inactive := false
	_, err = svc.Update(context.Background(), userID, hidden.ID, links.UpdateInput{Active: &inactive})
	require.NoError(t, err)

	got, err := svc.VisibleLinks(context.Background(), userID)

	require.NoError(t, err)
	ids := make([]uuid.UUID, 0, len(got))
	for _, link := range got {
		ids = append(ids, link.ID)
	}
	assert.ElementsMatch(t, []uuid.UUID{visible.ID, published.ID}, ids)
}

func TestService_Remaining(t *testing.T) {
	t.Parallel()

	svc := links.NewService(links.NewMemStore(), staticCaps(freeCaps()))
	userID := uuid.New()

	mustCreate(t, svc, userID, "a")
	mustCreate(t, svc, userID, "b")

	remaining, count, err := svc.Remaining(context.Background(), userID)

	require.NoError(t, err)
	assert.EqualValues(t, 3, remaining)
	assert.EqualValues(t, 2, count)
}
