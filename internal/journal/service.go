// Package journal provides the entry composition and reading flows.
package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ameliahb/go-inner-library/internal/db"
	"github.com/ameliahb/go-inner-library/internal/mood"
)

// summaryWords and titleWords bound the derived summary and title.
const (
	summaryWords = 10
	titleWords   = 3
)

// Validation errors, checked before any store call.
var (
	ErrEmptyContent = errors.New("entry content is empty")
)

// EntryStore is the slice of the entry repository the service needs.
type EntryStore interface {
	Create(ctx context.Context, entry *db.Entry) error
	ListByUser(ctx context.Context, userID string, limit int) ([]db.Entry, error)
	GetByID(ctx context.Context, id uuid.UUID, userID string) (*db.Entry, error)
}

// Service handles journal entry composition and retrieval.
type Service struct {
	entries EntryStore
}

// New creates a journal service.
func New(entries EntryStore) *Service {
	return &Service{entries: entries}
}

// Compose validates and persists a new entry for userID. Content must be
// non-empty and the mood complete; both are checked before the store is
// touched. The summary and title are derived from the content, and the
// creation timestamp is stamped at call time.
//
// Writes are single-shot: a store failure surfaces to the caller and is
// never retried here, since a retried insert would duplicate the entry.
func (s *Service) Compose(ctx context.Context, userID, content string, m mood.Mood, tags []string) (*db.Entry, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	summary := Summarize(content)
	entry := &db.Entry{
		ID:        uuid.New(),
		UserID:    userID,
		Content:   content,
		Mood:      m.Word,
		MoodColor: m.Color,
		Summary:   summary,
		Title:     TitleFrom(summary),
		Tags:      tags,
		CreatedAt: time.Now(),
	}

	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("persisting entry: %w", err)
	}
	return entry, nil
}

// Recent returns the user's newest entries, capped at limit.
func (s *Service) Recent(ctx context.Context, userID string, limit int) ([]db.Entry, error) {
	entries, err := s.entries.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return entries, nil
}

// All returns every entry the user has written, newest first.
func (s *Service) All(ctx context.Context, userID string) ([]db.Entry, error) {
	return s.Recent(ctx, userID, 0)
}

// Get fetches one entry owned by userID.
func (s *Service) Get(ctx context.Context, id uuid.UUID, userID string) (*db.Entry, error) {
	return s.entries.GetByID(ctx, id, userID)
}

// Palette projects the user's previously used moods from their entries.
func (s *Service) Palette(ctx context.Context, userID string) ([]mood.Mood, error) {
	entries, err := s.All(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mood.Palette(entries), nil
}

// Summarize derives a brief summary from the first few words of content.
func Summarize(content string) string {
	words := strings.Fields(content)
	if len(words) > summaryWords {
		words = words[:summaryWords]
	}
	return strings.Join(words, " ") + "..."
}

// TitleFrom derives a short title from the first words of a summary.
func TitleFrom(summary string) string {
	words := strings.Fields(summary)
	if len(words) > titleWords {
		words = words[:titleWords]
	}
	return strings.Join(words, " ")
}
