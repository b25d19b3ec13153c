package entitlement_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/linkbio/pkg/entitlement"
)

type failingSource struct {
	err error
}

func (s *failingSource) Load(ctx context.Context) (map[entitlement.PlanID]entitlement.Capabilities, error) {
	return nil, s.err
}

func TestNewCatalog(t *testing.T) {
	t.Parallel()

	t.Run("default plans", func(t *testing.T) {
		t.Parallel()

		catalog, err := entitlement.NewCatalog(context.Background(),
			entitlement.NewInMemSource(entitlement.DefaultPlans()))

		require.NoError(t, err)
		assert.Equal(t, []entitlement.PlanID{
			entitlement.PlanBasic,
			entitlement.PlanEnterprise,
			entitlement.PlanFree,
			entitlement.PlanPremium,
		}, catalog.PlanIDs())
	})

	t.Run("source load error", func(t *testing.T) {
		t.Parallel()

		loadErr := errors.New("load failed")
		catalog, err := entitlement.NewCatalog(context.Background(), &failingSource{err: loadErr})

		assert.Nil(t, catalog)
		assert.ErrorIs(t, err, entitlement.ErrFailedToLoadPlans)
		assert.ErrorIs(t, err, loadErr)
	})

	t.Run("nil source panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			_, _ = entitlement.NewCatalog(context.Background(), nil)
		})
	})

	t.Run("missing free tier", func(t *testing.T) {
		t.Parallel()

		plans := entitlement.DefaultPlans()
		delete(plans, entitlement.PlanFree)

		_, err := entitlement.NewCatalog(context.Background(), entitlement.NewInMemSource(plans))

		assert.ErrorIs(t, err, entitlement.ErrInvalidCatalogConfiguration)
	})

	t.Run("missing enterprise tier", func(t *testing.T) {
		t.Parallel()

		plans := entitlement.DefaultPlans()
		delete(plans, entitlement.PlanEnterprise)

		_, err := entitlement.NewCatalog(context.Background(), entitlement.NewInMemSource(plans))

		assert.ErrorIs(t, err, entitlement.ErrInvalidCatalogConfiguration)
	})

	t.Run("plan ID mismatch", func(t *testing.T) {
		t.Parallel()

		plans := entitlement.DefaultPlans()
		caps := plans[entitlement.PlanBasic]
		caps.PlanID = entitlement.PlanPremium
		plans[entitlement.PlanBasic] = caps

		_, err := entitlement.NewCatalog(context.Background(), entitlement.NewInMemSource(plans))

		assert.ErrorIs(t, err, entitlement.ErrInvalidCatalogConfiguration)
	})

	t.Run("invalid link limit", func(t *testing.T) {
		t.Parallel()

		plans := entitlement.DefaultPlans()
		caps := plans[entitlement.PlanFree]
		caps.LinkLimit = -2
		plans[entitlement.PlanFree] = caps

		_, err := entitlement.NewCatalog(context.Background(), entitlement.NewInMemSource(plans))

		assert.ErrorIs(t, err, entitlement.ErrInvalidCatalogConfiguration)
	})
}

func TestCatalog_Get(t *testing.T) {
	t.Parallel()

	catalog, err := entitlement.NewCatalog(context.Background(),
		entitlement.NewInMemSource(entitlement.DefaultPlans()))
	require.NoError(t, err)

	t.Run("known plan", func(t *testing.T) {
		t.Parallel()

		caps, ok := catalog.Get(entitlement.PlanBasic)

		require.True(t, ok)
		assert.Equal(t, entitlement.PlanBasic, caps.PlanID)
		assert.EqualValues(t, 25, caps.LinkLimit)
	})

	t.Run("unknown plan", func(t *testing.T) {
		t.Parallel()

		_, ok := catalog.Get("legacy_gold")

		assert.False(t, ok)
	})

	t.Run("free tier accessor", func(t *testing.T) {
		t.Parallel()

		caps := catalog.Free()

		assert.Equal(t, entitlement.PlanFree, caps.PlanID)
		assert.EqualValues(t, 5, caps.LinkLimit)
		assert.False(t, caps.CustomDomain)
	})

	t.Run("enterprise tier accessor", func(t *testing.T) {
		t.Parallel()

		caps := catalog.Enterprise()

		assert.Equal(t, entitlement.PlanEnterprise, caps.PlanID)
		assert.Equal(t, entitlement.Unlimited, caps.LinkLimit)
		assert.True(t, caps.WhiteLabel)
		assert.True(t, caps.TeamCollaboration)
	})
}

func TestInMemSource_Isolation(t *testing.T) {
	t.Parallel()

	plans := entitlement.DefaultPlans()
	src := entitlement.NewInMemSource(plans)

	// Mutating the input map after construction must not leak into the source.
	caps := plans[entitlement.PlanFree]
	caps.LinkLimit = 999
	plans[entitlement.PlanFree] = caps

	loaded, err := src.Load(context.Background())

	require.NoError(t, err)
	assert.EqualValues(t, 5, loaded[entitlement.PlanFree].LinkLimit)
}
