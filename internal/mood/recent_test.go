package mood

import (
	"reflect"
	"testing"
)

func TestRecentStoreRecord(t *testing.T) {
	dir := t.TempDir()
	store := NewRecentStore(dir)

	steps := []struct {
		word string
		want []string
	}{
		{word: "Happy", want: []string{"Happy"}},
		{word: "Sad", want: []string{"Sad", "Happy"}},
		{word: "Calm", want: []string{"Calm", "Sad", "Happy"}},
		// Re-recording moves to front without duplicating.
		{word: "Happy", want: []string{"Happy", "Calm", "Sad"}},
		// A fourth word evicts the oldest.
		{word: "Tired", want: []string{"Tired", "Happy", "Calm"}},
	}

	for _, step := range steps {
		got, err := store.Record(step.word)
		if err != nil {
			t.Fatalf("Record(%q) error: %v", step.word, err)
		}
		if !reflect.DeepEqual(got, step.want) {
			t.Errorf("Record(%q) = %v, want %v", step.word, got, step.want)
		}
	}

	// Persistence round-trip.
	reloaded := NewRecentStore(dir)
	words, err := reloaded.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(words, []string{"Tired", "Happy", "Calm"}) {
		t.Errorf("Load() after reload = %v", words)
	}
}

func TestRecentStoreLoadMissingFile(t *testing.T) {
	store := NewRecentStore(t.TempDir())
	words, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if words != nil {
		t.Errorf("Load() on missing file = %v, want nil", words)
	}
}
