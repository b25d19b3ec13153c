package subscription_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/linkbio/pkg/subscription"
)

func TestRecord_IsSubscribedAt(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name       string
		subscribed bool
		periodEnd  *time.Time
		want       bool
	}{
		{name: "subscribed without period end", subscribed: true, periodEnd: nil, want: true},
		{name: "subscribed with future period end", subscribed: true, periodEnd: &future, want: true},
		{name: "subscribed with elapsed period end", subscribed: true, periodEnd: &past, want: false},
		{name: "period end exactly now", subscribed: true, periodEnd: &now, want: false},
		{name: "unsubscribed", subscribed: false, periodEnd: &future, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			record := subscription.Record{
				UserID:     uuid.New(),
				PlanID:     "premium",
				Subscribed: tt.subscribed,
				PeriodEnd:  tt.periodEnd,
			}

			assert.Equal(t, tt.want, record.IsSubscribedAt(now))
		})
	}
}

func TestRecord_IsCancelled(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	assert.False(t, (&subscription.Record{}).IsCancelled())
	assert.True(t, (&subscription.Record{CancelledAt: &now}).IsCancelled())
}
