package prompt

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// History maps prompt ids to the time they were last shown, stored as
// RFC3339 strings.
type History map[string]string

// LastShown returns when the prompt was last shown, or false if never.
func (h History) LastShown(id string) (time.Time, bool) {
	raw, ok := h[id]
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		// A corrupt timestamp is treated as never shown.
		return time.Time{}, false
	}
	return t, true
}

// Record overwrites the prompt's last-shown time. Timestamps only move
// forward: a record older than what is already stored is dropped, and a
// single id holds at most one timestamp.
func (h History) Record(id string, shownAt time.Time) {
	if last, ok := h.LastShown(id); ok && !shownAt.After(last) {
		return
	}
	h[id] = shownAt.Format(time.RFC3339)
}

// HistoryStore persists prompt history to a device-local file. It is
// never synced to the server; concurrent writers are last-writer-wins.
type HistoryStore struct {
	path string
}

// NewHistoryStore creates a HistoryStore backed by prompt_history.json
// under dataDir.
func NewHistoryStore(dataDir string) *HistoryStore {
	return &HistoryStore{path: filepath.Join(dataDir, "prompt_history.json")}
}

// Load reads the history from disk.
// Returns an empty history if the file does not exist.
func (s *HistoryStore) Load() (History, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return History{}, nil
		}
		return nil, fmt.Errorf("reading prompt history file: %w", err)
	}

	var history History
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("parsing prompt history file: %w", err)
	}
	if history == nil {
		history = History{}
	}
	return history, nil
}

// Save writes the history to disk, creating the parent directory if
// needed.
func (s *HistoryStore) Save(history History) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding prompt history: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing prompt history file: %w", err)
	}
	return nil
}
