package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MembershipRepository handles the album-entry relation.
type MembershipRepository struct {
	pool *pgxpool.Pool
}

// AlbumIDs retrieves the ids of all albums an entry currently belongs to.
func (r *MembershipRepository) AlbumIDs(ctx context.Context, entryID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT album_id
		FROM album_entries
		WHERE entry_id = $1
	`
	rows, err := r.pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("querying entry memberships: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning membership: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Add batch-inserts membership rows linking the entry to each album.
func (r *MembershipRepository) Add(ctx context.Context, entryID uuid.UUID, albumIDs []uuid.UUID) error {
	if len(albumIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO album_entries (album_id, entry_id)
		SELECT unnest($1::uuid[]), $2
	`
	_, err := r.pool.Exec(ctx, query, albumIDs, entryID)
	if err != nil {
		return fmt.Errorf("batch inserting memberships: %w", err)
	}
	return nil
}

// Remove batch-deletes membership rows linking the entry to each album.
func (r *MembershipRepository) Remove(ctx context.Context, entryID uuid.UUID, albumIDs []uuid.UUID) error {
	if len(albumIDs) == 0 {
		return nil
	}

	query := `
		DELETE FROM album_entries
		WHERE entry_id = $1 AND album_id = ANY($2::uuid[])
	`
	_, err := r.pool.Exec(ctx, query, entryID, albumIDs)
	if err != nil {
		return fmt.Errorf("batch deleting memberships: %w", err)
	}
	return nil
}
