package subscription

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/linkbio/pkg/pg"
)

// pgStore is a PostgreSQL-backed Store on top of a pgx connection pool.
type pgStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Store backed by the subscriptions table.
// Panics on a nil pool to fail fast during initialization.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	if pool == nil {
		panic("subscription: pgxpool is required")
	}
	return &pgStore{pool: pool}
}

func (s *pgStore) Get(ctx context.Context, userID uuid.UUID) (*Record, error) {
	const query = `
		SELECT user_id, plan_id, subscribed, period_end,
		       provider_sub_id, provider_customer_id,
		       created_at, updated_at, cancelled_at
		FROM subscriptions
		WHERE user_id = $1`

	var record Record
	err := s.pool.QueryRow(ctx, query, userID).Scan(
		&record.UserID,
		&record.PlanID,
		&record.Subscribed,
		&record.PeriodEnd,
		&record.ProviderSubID,
		&record.ProviderCustomerID,
		&record.CreatedAt,
		&record.UpdatedAt,
		&record.CancelledAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return &record, nil
}

func (s *pgStore) Save(ctx context.Context, record *Record) error {
	if record == nil {
		return errors.New("subscription: nil record")
	}

	// Upsert keyed by user_id keeps the one-record-per-user invariant in the
	// database rather than in application code.
	const query = `
		INSERT INTO subscriptions (
			user_id, plan_id, subscribed, period_end,
			provider_sub_id, provider_customer_id,
			created_at, updated_at, cancelled_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			plan_id = EXCLUDED.plan_id,
			subscribed = EXCLUDED.subscribed,
			period_end = EXCLUDED.period_end,
			provider_sub_id = EXCLUDED.provider_sub_id,
			provider_customer_id = EXCLUDED.provider_customer_id,
			updated_at = EXCLUDED.updated_at,
			cancelled_at = EXCLUDED.cancelled_at`

	_, err := s.pool.Exec(ctx, query,
		record.UserID,
		record.PlanID,
		record.Subscribed,
		record.PeriodEnd,
		record.ProviderSubID,
		record.ProviderCustomerID,
		record.CreatedAt,
		record.UpdatedAt,
		record.CancelledAt,
	)
	return err
}
