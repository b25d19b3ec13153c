package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgStore is a PostgreSQL-backed Store on top of a pgx connection pool.
type pgStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Store backed by the link_clicks table.
// Panics on a nil pool to fail fast during initialization.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	if pool == nil {
		panic("analytics: pgxpool is required")
	}
	return &pgStore{pool: pool}
}

func (s *pgStore) Record(ctx context.Context, click Click) error {
	const query = `
		INSERT INTO link_clicks (user_id, link_id, occurred_at, country, referrer)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := s.pool.Exec(ctx, query,
		click.UserID,
		click.LinkID,
		click.OccurredAt,
		click.Country,
		click.Referrer,
	)
	return err
}

func (s *pgStore) ListByUser(ctx context.Context, userID uuid.UUID, since time.Time) ([]Click, error) {
	const query = `
		SELECT user_id, link_id, occurred_at, country, referrer
		FROM link_clicks
		WHERE user_id = $1 AND occurred_at >= $2
		ORDER BY occurred_at`

	rows, err := s.pool.Query(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Click
	for rows.Next() {
		var click Click
		if err := rows.Scan(
			&click.UserID,
			&click.LinkID,
			&click.OccurredAt,
			&click.Country,
			&click.Referrer,
		); err != nil {
			return nil, err
		}
		result = append(result, click)
	}
	return result, rows.Err()
}
