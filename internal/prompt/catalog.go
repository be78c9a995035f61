// Package prompt selects writing prompts scoped to time of day, avoiding
// recently shown prompts via a device-local history.
package prompt

import "time"

// TimeOfDay buckets the local wall-clock hour.
type TimeOfDay string

// Time-of-day buckets.
const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	LateNight TimeOfDay = "late_night"
)

// Prompt is a suggested writing topic.
type Prompt struct {
	ID   string   `json:"id"`
	Text string   `json:"text"`
	Tags []string `json:"tags"`
	// Voice describes the register the prompt is written in.
	Voice string `json:"voice"`
	// RepeatInterval is the minimum number of days before the prompt may
	// resurface.
	RepeatInterval int `json:"repeatInterval"`
}

// Bucket maps a time to its time-of-day bucket.
func Bucket(t time.Time) TimeOfDay {
	hour := t.Hour()
	switch {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 22:
		return Evening
	default:
		return LateNight
	}
}

// Catalog is the fixed prompt set, keyed by bucket. Every bucket has a
// non-empty list; selection relies on that.
type Catalog map[TimeOfDay][]Prompt

// DefaultCatalog returns the built-in prompt catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		Morning: {
			{ID: "morning-intention", Text: "What is one intention you want to carry through today?", Tags: []string{"intention", "planning"}, Voice: "gentle", RepeatInterval: 3},
			{ID: "morning-dream", Text: "Did anything linger from last night's dreams?", Tags: []string{"dreams"}, Voice: "curious", RepeatInterval: 5},
			{ID: "morning-gratitude", Text: "Name three small things you are grateful to wake up to.", Tags: []string{"gratitude"}, Voice: "warm", RepeatInterval: 2},
			{ID: "morning-energy", Text: "How rested do you feel, and what does your body need this morning?", Tags: []string{"body", "rest"}, Voice: "gentle", RepeatInterval: 4},
			{ID: "morning-first-thought", Text: "What was the very first thought you had when you opened your eyes?", Tags: []string{"awareness"}, Voice: "curious", RepeatInterval: 7},
		},
		Afternoon: {
			{ID: "afternoon-pause", Text: "Pause for a moment. What has the day asked of you so far?", Tags: []string{"reflection"}, Voice: "calm", RepeatInterval: 3},
			{ID: "afternoon-surprise", Text: "What has surprised you today, however small?", Tags: []string{"noticing"}, Voice: "curious", RepeatInterval: 4},
			{ID: "afternoon-person", Text: "Write about a person who crossed your mind today.", Tags: []string{"people"}, Voice: "warm", RepeatInterval: 5},
			{ID: "afternoon-reset", Text: "If you could restart the day from noon, what would you do differently?", Tags: []string{"perspective"}, Voice: "playful", RepeatInterval: 6},
			{ID: "afternoon-senses", Text: "Describe where you are right now using only your senses.", Tags: []string{"grounding"}, Voice: "calm", RepeatInterval: 4},
		},
		Evening: {
			{ID: "evening-highlight", Text: "What moment from today would you bottle up and keep?", Tags: []string{"gratitude", "memory"}, Voice: "warm", RepeatInterval: 2},
			{ID: "evening-release", Text: "What are you ready to set down before tomorrow?", Tags: []string{"release"}, Voice: "gentle", RepeatInterval: 3},
			{ID: "evening-lesson", Text: "What did today teach you, even if the lesson was unwelcome?", Tags: []string{"growth"}, Voice: "honest", RepeatInterval: 5},
			{ID: "evening-conversation", Text: "Replay a conversation from today. What went unsaid?", Tags: []string{"people", "reflection"}, Voice: "curious", RepeatInterval: 6},
			{ID: "evening-tomorrow", Text: "Write a one-line note to the person you will be tomorrow morning.", Tags: []string{"intention"}, Voice: "playful", RepeatInterval: 4},
		},
		LateNight: {
			{ID: "latenight-awake", Text: "What is keeping you awake right now?", Tags: []string{"honesty"}, Voice: "gentle", RepeatInterval: 3},
			{ID: "latenight-quiet", Text: "The house is quiet. What do you hear when everything else stops?", Tags: []string{"grounding"}, Voice: "calm", RepeatInterval: 5},
			{ID: "latenight-unsent", Text: "Write the message you would never actually send.", Tags: []string{"release", "people"}, Voice: "honest", RepeatInterval: 7},
			{ID: "latenight-wander", Text: "Let your mind wander: where does it go first?", Tags: []string{"free"}, Voice: "curious", RepeatInterval: 4},
		},
	}
}
