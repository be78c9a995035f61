package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AlbumRepository handles album database operations.
type AlbumRepository struct {
	pool *pgxpool.Pool
}

// Create inserts a new album.
func (r *AlbumRepository) Create(ctx context.Context, album *Album) error {
	query := `
		INSERT INTO albums (id, user_id, title, description, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`
	if album.ID == uuid.Nil {
		album.ID = uuid.New()
	}
	now := time.Now()
	_, err := r.pool.Exec(ctx, query,
		album.ID,
		album.UserID,
		album.Title,
		album.Description,
		album.Color,
		now,
	)
	if err != nil {
		return fmt.Errorf("inserting album: %w", err)
	}
	album.CreatedAt = now
	album.UpdatedAt = now
	return nil
}

// Get retrieves an album if it exists and is owned by userID.
func (r *AlbumRepository) Get(ctx context.Context, id uuid.UUID, userID string) (*Album, error) {
	query := `
		SELECT id, user_id, title, description, color, created_at, updated_at
		FROM albums
		WHERE id = $1 AND user_id = $2
	`
	var album Album
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&album.ID,
		&album.UserID,
		&album.Title,
		&album.Description,
		&album.Color,
		&album.CreatedAt,
		&album.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying album: %w", err)
	}
	return &album, nil
}

// ListByUser retrieves all albums for a user, newest first.
func (r *AlbumRepository) ListByUser(ctx context.Context, userID string) ([]Album, error) {
	query := `
		SELECT id, user_id, title, description, color, created_at, updated_at
		FROM albums
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying user albums: %w", err)
	}
	defer rows.Close()

	var albums []Album
	for rows.Next() {
		var album Album
		if err := rows.Scan(
			&album.ID,
			&album.UserID,
			&album.Title,
			&album.Description,
			&album.Color,
			&album.CreatedAt,
			&album.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning album: %w", err)
		}
		albums = append(albums, album)
	}
	return albums, rows.Err()
}

// ListEntries retrieves all entries in an album, newest first. This is the
// single membership-to-entry join in the system.
func (r *AlbumRepository) ListEntries(ctx context.Context, albumID uuid.UUID) ([]Entry, error) {
	query := `
		SELECT e.id, e.user_id, e.content, e.mood, e.mood_color, e.summary, e.title, e.tags, e.created_at, e.updated_at
		FROM entries e
		JOIN album_entries ae ON e.id = ae.entry_id
		WHERE ae.album_id = $1
		ORDER BY e.created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, albumID)
	if err != nil {
		return nil, fmt.Errorf("querying album entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}
