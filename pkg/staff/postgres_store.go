package staff

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/linkbio/pkg/pg"
)

// pgStore is a PostgreSQL-backed Store on top of a pgx connection pool.
type pgStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Store backed by the staff_grants table.
// Panics on a nil pool to fail fast during initialization.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	if pool == nil {
		panic("staff: pgxpool is required")
	}
	return &pgStore{pool: pool}
}

func (s *pgStore) Get(ctx context.Context, userID uuid.UUID) (*Grant, error) {
	const query = `
		SELECT user_id, role, active, created_at, updated_at
		FROM staff_grants
		WHERE user_id = $1`

	var grant Grant
	err := s.pool.QueryRow(ctx, query, userID).Scan(
		&grant.UserID,
		&grant.Role,
		&grant.Active,
		&grant.CreatedAt,
		&grant.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrGrantNotFound
		}
		return nil, err
	}

	return &grant, nil
}

func (s *pgStore) Save(ctx context.Context, grant *Grant) error {
	if !grant.Role.Valid() {
		return ErrInvalidRole
	}

	const query = `
		INSERT INTO staff_grants (user_id, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			role = EXCLUDED.role,
			active = EXCLUDED.active,
			updated_at = EXCLUDED.updated_at`

	_, err := s.pool.Exec(ctx, query,
		grant.UserID,
		grant.Role,
		grant.Active,
		grant.CreatedAt,
		grant.UpdatedAt,
	)
	return err
}
