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

// EntryRepository handles journal entry database operations.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// Create inserts a new entry. The caller must have validated content and
// mood; creation time is stamped here, at call time.
func (r *EntryRepository) Create(ctx context.Context, entry *Entry) error {
	query := `
		INSERT INTO entries (id, user_id, content, mood, mood_color, summary, title, tags, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	tags := entry.Tags
	if tags == nil {
		tags = []string{}
	}
	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Content,
		entry.Mood,
		entry.MoodColor,
		entry.Summary,
		entry.Title,
		tags,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting entry: %w", err)
	}
	return nil
}

// ListByUser retrieves a user's entries, newest first. A positive limit
// caps the result (the dashboard preview passes 3); zero means no cap.
// The user_id filter is always part of the query, never inferred from
// ambient state.
func (r *EntryRepository) ListByUser(ctx context.Context, userID string, limit int) ([]Entry, error) {
	query := `
		SELECT id, user_id, content, mood, mood_color, summary, title, tags, created_at, updated_at
		FROM entries
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying user entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// GetByID retrieves one entry if it exists and is owned by userID.
// Ownership is part of the fetch itself: a wrong owner and a missing row
// are both ErrNotFound, so existence of other users' entries never leaks.
func (r *EntryRepository) GetByID(ctx context.Context, id uuid.UUID, userID string) (*Entry, error) {
	query := `
		SELECT id, user_id, content, mood, mood_color, summary, title, tags, created_at, updated_at
		FROM entries
		WHERE id = $1 AND user_id = $2
	`
	var entry Entry
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Content,
		&entry.Mood,
		&entry.MoodColor,
		&entry.Summary,
		&entry.Title,
		&entry.Tags,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying entry: %w", err)
	}
	return &entry, nil
}

// scanEntries collects entry rows.
func scanEntries(rows pgx.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Content,
			&entry.Mood,
			&entry.MoodColor,
			&entry.Summary,
			&entry.Title,
			&entry.Tags,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
