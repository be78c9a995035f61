package mood

import (
	"reflect"
	"testing"

	"github.com/ameliahb/go-inner-library/internal/db"
)

func TestPalette(t *testing.T) {
	tests := []struct {
		name    string
		entries []db.Entry
		want    []Mood
	}{
		{
			name:    "no entries",
			entries: nil,
			want:    []Mood{},
		},
		{
			name: "distinct words",
			entries: []db.Entry{
				{Mood: "Happy", MoodColor: "#ffa500"},
				{Mood: "Sad", MoodColor: "#6495ed"},
			},
			want: []Mood{
				{Word: "Happy", Color: "#ffa500"},
				{Word: "Sad", Color: "#6495ed"},
			},
		},
		{
			name: "repeated word keeps last color",
			entries: []db.Entry{
				{Mood: "Happy", MoodColor: "#ffa500"},
				{Mood: "Happy", MoodColor: "#ffd700"},
			},
			want: []Mood{
				{Word: "Happy", Color: "#ffd700"},
			},
		},
		{
			name: "matching is case-sensitive",
			entries: []db.Entry{
				{Mood: "Happy", MoodColor: "#ffa500"},
				{Mood: "happy", MoodColor: "#ffd700"},
			},
			want: []Mood{
				{Word: "Happy", Color: "#ffa500"},
				{Word: "happy", Color: "#ffd700"},
			},
		},
		{
			name: "entries without a mood are skipped",
			entries: []db.Entry{
				{Mood: "", MoodColor: ""},
				{Mood: "Calm", MoodColor: "#98fb98"},
			},
			want: []Mood{
				{Word: "Calm", Color: "#98fb98"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Palette(tt.entries)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Palette() = %v, want %v", got, tt.want)
			}
		})
	}
}
