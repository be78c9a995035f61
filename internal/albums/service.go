// Package albums maintains the many-to-many relation between entries and
// user-defined albums.
package albums

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/ameliahb/go-inner-library/internal/db"
)

// EntryGetter fetches an entry with its ownership check.
type EntryGetter interface {
	GetByID(ctx context.Context, id uuid.UUID, userID string) (*db.Entry, error)
}

// AlbumLister lists the albums a user owns.
type AlbumLister interface {
	ListByUser(ctx context.Context, userID string) ([]db.Album, error)
}

// MembershipStore reads and writes the album-entry relation.
type MembershipStore interface {
	AlbumIDs(ctx context.Context, entryID uuid.UUID) ([]uuid.UUID, error)
	Add(ctx context.Context, entryID uuid.UUID, albumIDs []uuid.UUID) error
	Remove(ctx context.Context, entryID uuid.UUID, albumIDs []uuid.UUID) error
}

// Service reconciles an entry's album membership against the user's
// current selection.
type Service struct {
	entries     EntryGetter
	albums      AlbumLister
	memberships MembershipStore
}

// New creates an album membership service.
func New(entries EntryGetter, albums AlbumLister, memberships MembershipStore) *Service {
	return &Service{entries: entries, albums: albums, memberships: memberships}
}

// Result reports the writes a reconciliation performed.
type Result struct {
	Added   int
	Removed int
}

// Reconcile brings the entry's persisted membership in line with the
// selected album set using minimal writes: additions are selected minus
// current, removals are current minus selected. Re-running with the same
// selection performs zero writes, and selecting no albums clears all
// membership.
//
// Additions run before removals and the two are not one transaction: if
// the additions land and the removals fail, the caller sees the store
// error and must re-read membership before retrying. There is no
// automatic compensation.
func (s *Service) Reconcile(ctx context.Context, userID string, entryID uuid.UUID, selected []uuid.UUID) (*Result, error) {
	// Ownership checks before any write: the entry and every selected
	// album must belong to userID. A foreign album id in the selection is
	// indistinguishable from a nonexistent one.
	if _, err := s.entries.GetByID(ctx, entryID, userID); err != nil {
		return nil, fmt.Errorf("fetching entry: %w", err)
	}

	owned, err := s.albums.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing user albums: %w", err)
	}
	ownedSet := make(map[uuid.UUID]bool, len(owned))
	for _, album := range owned {
		ownedSet[album.ID] = true
	}
	for _, id := range selected {
		if !ownedSet[id] {
			return nil, fmt.Errorf("album %s: %w", id, db.ErrNotFound)
		}
	}

	current, err := s.memberships.AlbumIDs(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("reading current membership: %w", err)
	}

	toAdd, toRemove := diff(current, selected)

	if len(toAdd) > 0 {
		if err := s.memberships.Add(ctx, entryID, toAdd); err != nil {
			return nil, fmt.Errorf("adding memberships: %w", err)
		}
	}
	if len(toRemove) > 0 {
		if err := s.memberships.Remove(ctx, entryID, toRemove); err != nil {
			return nil, fmt.Errorf("removing memberships: %w", err)
		}
	}

	return &Result{Added: len(toAdd), Removed: len(toRemove)}, nil
}

// diff computes the symmetric difference between the current and selected
// sets. Duplicates in either input collapse; results are sorted for
// deterministic write order.
func diff(current, selected []uuid.UUID) (toAdd, toRemove []uuid.UUID) {
	currentSet := make(map[uuid.UUID]bool, len(current))
	for _, id := range current {
		currentSet[id] = true
	}
	selectedSet := make(map[uuid.UUID]bool, len(selected))
	for _, id := range selected {
		selectedSet[id] = true
	}

	for id := range selectedSet {
		if !currentSet[id] {
			toAdd = append(toAdd, id)
		}
	}
	for id := range currentSet {
		if !selectedSet[id] {
			toRemove = append(toRemove, id)
		}
	}

	sortIDs(toAdd)
	sortIDs(toRemove)
	return toAdd, toRemove
}

func sortIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
}
