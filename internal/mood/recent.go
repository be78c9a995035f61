package mood

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// maxRecent bounds the recently-selected mood word list.
const maxRecent = 3

// RecentStore persists the most recently selected mood words to a
// device-local file. The list is bounded, newest first, deduplicated, and
// never synced to the server; concurrent writers are last-writer-wins.
type RecentStore struct {
	path string
}

// NewRecentStore creates a RecentStore backed by recent_moods.json under
// dataDir.
func NewRecentStore(dataDir string) *RecentStore {
	return &RecentStore{path: filepath.Join(dataDir, "recent_moods.json")}
}

// Load reads the recent mood words from disk.
// Returns an empty list if the file does not exist.
func (s *RecentStore) Load() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading recent moods file: %w", err)
	}

	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("parsing recent moods file: %w", err)
	}
	return words, nil
}

// Record moves word to the front of the list, deduplicating and trimming
// to the bound, then persists the result.
func (s *RecentStore) Record(word string) ([]string, error) {
	words, err := s.Load()
	if err != nil {
		return nil, err
	}

	updated := []string{word}
	for _, w := range words {
		if w != word {
			updated = append(updated, w)
		}
	}
	if len(updated) > maxRecent {
		updated = updated[:maxRecent]
	}

	if err := s.save(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// save writes the list to disk, creating the parent directory if needed.
func (s *RecentStore) save(words []string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	data, err := json.MarshalIndent(words, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding recent moods: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing recent moods file: %w", err)
	}
	return nil
}
