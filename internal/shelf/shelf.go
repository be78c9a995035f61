// Package shelf turns a flat list of entries into the bookshelf view: one
// visual "book" per calendar month, sized by how much was written.
package shelf

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ameliahb/go-inner-library/internal/db"
)

// DefaultColor is the book color for months whose entries carry no mood.
const DefaultColor = "#8B5E3C"

// Book is one month's aggregate.
type Book struct {
	// Key is the sortable month key, e.g. "2025-03".
	Key string
	// Label is the short month name, e.g. "Mar".
	Label      string
	EntryCount int
	WordCount  int
	// Color is the dominant mood color of the month: the most frequent
	// color, ties broken by whichever color reached that frequency first.
	Color string
}

// monthAccumulator carries per-month state while scanning entries.
type monthAccumulator struct {
	book        Book
	colorCounts map[string]int
}

// Build groups entries by calendar month and aggregates entry count, word
// count and dominant mood color. Input order does not affect the counts;
// it can affect which color wins a tie, which is accepted behavior.
// Books are returned most recent month first.
func Build(entries []db.Entry) []Book {
	months := make(map[string]*monthAccumulator)

	for _, entry := range entries {
		key := monthKey(entry.CreatedAt)

		acc, ok := months[key]
		if !ok {
			// Seed the dominant color with the first entry seen for the
			// month so a month of all-distinct colors resolves
			// deterministically.
			color := entry.MoodColor
			if color == "" {
				color = DefaultColor
			}
			acc = &monthAccumulator{
				book: Book{
					Key:   key,
					Label: entry.CreatedAt.Month().String()[:3],
					Color: color,
				},
				colorCounts: make(map[string]int),
			}
			months[key] = acc
		}

		acc.book.EntryCount++
		acc.book.WordCount += CountWords(entry.Content)

		if entry.MoodColor != "" {
			acc.colorCounts[entry.MoodColor]++
			// Strictly greater: the first color to reach a count keeps
			// the lead on ties.
			if acc.colorCounts[entry.MoodColor] > acc.colorCounts[acc.book.Color] {
				acc.book.Color = entry.MoodColor
			}
		}
	}

	books := make([]Book, 0, len(months))
	for _, acc := range months {
		books = append(books, acc.book)
	}
	sort.Slice(books, func(i, j int) bool {
		return books[i].Key > books[j].Key
	})
	return books
}

// CountWords counts contiguous non-space runs in content.
func CountWords(content string) int {
	return len(strings.Fields(content))
}

// monthKey derives the sortable (year, month) key from a timestamp.
func monthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}
