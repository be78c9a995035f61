package shelf

import (
	"time"

	"github.com/ameliahb/go-inner-library/internal/db"
)

// emptyDayColor renders days without an entry.
const emptyDayColor = "#EBEDF0"

// Day is one cell of the yearly mood calendar.
type Day struct {
	Date  time.Time
	Color string
	// Entries is how many entries were written that day.
	Entries int
}

// Calendar lays out a year of entries as columns of weeks, Sunday first,
// for the yearly mood heat-map. A day's color is the mood color of its
// latest entry; days without entries render neutral.
func Calendar(entries []db.Entry, year int, loc *time.Location) [][]Day {
	type dayState struct {
		color   string
		latest  time.Time
		entries int
	}
	byDate := make(map[string]*dayState)

	for _, entry := range entries {
		local := entry.CreatedAt.In(loc)
		if local.Year() != year {
			continue
		}
		key := local.Format("2006-01-02")
		state, ok := byDate[key]
		if !ok {
			state = &dayState{}
			byDate[key] = state
		}
		state.entries++
		if entry.MoodColor != "" && !local.Before(state.latest) {
			state.color = entry.MoodColor
			state.latest = local
		}
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(1, 0, 0)

	// Pad back to the previous Sunday so weeks align.
	first := start.AddDate(0, 0, -int(start.Weekday()))

	var weeks [][]Day
	for cursor := first; cursor.Before(end); {
		week := make([]Day, 0, 7)
		for i := 0; i < 7; i++ {
			day := Day{Date: cursor, Color: emptyDayColor}
			if !cursor.Before(start) && cursor.Before(end) {
				if state, ok := byDate[cursor.Format("2006-01-02")]; ok {
					day.Entries = state.entries
					if state.color != "" {
						day.Color = state.color
					}
				}
			}
			week = append(week, day)
			cursor = cursor.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}
