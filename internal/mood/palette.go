package mood

import "github.com/ameliahb/go-inner-library/internal/db"

// Palette projects a user's entries into their previously used moods,
// distinct by word. When the same word recurs with different colors the
// last-seen color wins. Matching is exact: "Happy" and "happy" are
// separate palette entries, mirroring what the user actually typed.
//
// The projection is read-time only; nothing is persisted.
func Palette(entries []db.Entry) []Mood {
	colorByWord := make(map[string]string)
	var order []string

	for _, entry := range entries {
		if entry.Mood == "" || entry.MoodColor == "" {
			continue
		}
		if _, seen := colorByWord[entry.Mood]; !seen {
			order = append(order, entry.Mood)
		}
		colorByWord[entry.Mood] = entry.MoodColor
	}

	palette := make([]Mood, 0, len(order))
	for _, word := range order {
		palette = append(palette, Mood{Word: word, Color: colorByWord[word]})
	}
	return palette
}
