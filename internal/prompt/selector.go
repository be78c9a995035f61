package prompt

import (
	"fmt"
	"math/rand"
	"time"
)

const hoursPerDay = 24

// Selector chooses prompts from a catalog, recording each pick into the
// history store so recently shown prompts rest for their repeat interval.
type Selector struct {
	catalog Catalog
	store   *HistoryStore
	// intn allows tests to pin the random draw; defaults to rand.Intn.
	intn func(n int) int
}

// NewSelector creates a Selector over the given catalog and history store.
func NewSelector(catalog Catalog, store *HistoryStore) *Selector {
	return &Selector{
		catalog: catalog,
		store:   store,
		intn:    rand.Intn,
	}
}

// Pick selects one prompt for the time-of-day bucket of now and records
// it into history immediately, before the prompt is ever used. Selection
// never fails for a bucket with a non-empty catalog: when every prompt
// was shown too recently the draw falls back to the whole bucket.
//
// The same instant is used for bucketing and for recency so a pick
// straddling a bucket boundary stays self-consistent.
func (s *Selector) Pick(now time.Time) (Prompt, error) {
	history, err := s.store.Load()
	if err != nil {
		return Prompt{}, fmt.Errorf("loading prompt history: %w", err)
	}

	picked := Select(s.catalog[Bucket(now)], history, now, s.intn)

	history.Record(picked.ID, now)
	if err := s.store.Save(history); err != nil {
		return Prompt{}, fmt.Errorf("saving prompt history: %w", err)
	}
	return picked, nil
}

// Select partitions the bucket catalog into prompts eligible under the
// history (never shown, or rested at least their own repeat interval) and
// draws uniformly from the eligible set, falling back to the whole
// catalog when nothing is eligible.
func Select(catalog []Prompt, history History, now time.Time, intn func(int) int) Prompt {
	var eligible []Prompt
	for _, p := range catalog {
		lastShown, ok := history.LastShown(p.ID)
		if !ok {
			eligible = append(eligible, p)
			continue
		}
		daysSince := now.Sub(lastShown).Hours() / hoursPerDay
		if daysSince >= float64(p.RepeatInterval) {
			eligible = append(eligible, p)
		}
	}

	pool := eligible
	if len(pool) == 0 {
		pool = catalog
	}
	return pool[intn(len(pool))]
}
