package links

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/linkbio/pkg/pg"
)

// pgStore is a PostgreSQL-backed Store on top of a pgx connection pool.
type pgStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Store backed by the links table.
// Panics on a nil pool to fail fast during initialization.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	if pool == nil {
		panic("links: pgxpool is required")
	}
	return &pgStore{pool: pool}
}

const linkColumns = `id, user_id, title, url, position, active, scheduled_at, created_at, updated_at`

func scanLink(row pgx.Row) (*Link, error) {
	var link Link
	err := row.Scan(
		&link.ID,
		&link.UserID,
		&link.Title,
		&link.URL,
		&link.Position,
		&link.Active,
		&link.ScheduledAt,
		&link.CreatedAt,
		&link.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	return &link, nil
}

func (s *pgStore) Get(ctx context.Context, userID, linkID uuid.UUID) (*Link, error) {
	const query = `SELECT ` + linkColumns + ` FROM links WHERE user_id = $1 AND id = $2`
	return scanLink(s.pool.QueryRow(ctx, query, userID, linkID))
}

func (s *pgStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]Link, error) {
	const query = `SELECT ` + linkColumns + ` FROM links WHERE user_id = $1 ORDER BY position, created_at`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Link
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *link)
	}
	return result, rows.Err()
}

func (s *pgStore) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	const query = `SELECT COUNT(*) FROM links WHERE user_id = $1`

	var count int64
	if err := s.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *pgStore) Create(ctx context.Context, link *Link) error {
	if link == nil {
		return errors.New("links: nil link")
	}

	const query = `
		INSERT INTO links (` + linkColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.pool.Exec(ctx, query,
		link.ID,
		link.UserID,
		link.Title,
		link.URL,
		link.Position,
		link.Active,
		link.ScheduledAt,
		link.CreatedAt,
		link.UpdatedAt,
	)
	return err
}

func (s *pgStore) Update(ctx context.Context, link *Link) error {
	if link == nil {
		return errors.New("links: nil link")
	}

	const query = `
		UPDATE links
		SET title = $3, url = $4, position = $5, active = $6,
		    scheduled_at = $7, updated_at = $8
		WHERE user_id = $1 AND id = $2`

	tag, err := s.pool.Exec(ctx, query,
		link.UserID,
		link.ID,
		link.Title,
		link.URL,
		link.Position,
		link.Active,
		link.ScheduledAt,
		link.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrLinkNotFound
	}
	return nil
}

func (s *pgStore) Delete(ctx context.Context, userID, linkID uuid.UUID) error {
	const query = `DELETE FROM links WHERE user_id = $1 AND id = $2`

	tag, err := s.pool.Exec(ctx, query, userID, linkID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrLinkNotFound
	}
	return nil
}

func (s *pgStore) UpdatePositions(ctx context.Context, userID uuid.UUID, orderedIDs []uuid.UUID) error {
	// One transaction so a half-applied reorder never becomes visible.
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const query = `UPDATE links SET position = $3, updated_at = now() WHERE user_id = $1 AND id = $2`
	for pos, id := range orderedIDs {
		tag, err := tx.Exec(ctx, query, userID, id, pos)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrLinkNotFound
		}
	}

	return tx.Commit(ctx)
}
