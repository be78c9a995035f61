// Package mood models the (word, color) pair a user attaches to an entry.
package mood

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"
)

// MaxWordLen is the upper bound on a mood word, enforced by Validate.
const MaxWordLen = 20

// Slider saturation and lightness are fixed; only hue is user-controlled.
const (
	sliderSaturation = 70
	sliderLightness  = 70
)

// ErrUnset is returned when an entry is saved without a complete mood.
var ErrUnset = errors.New("mood is not set")

// Mood is a complete (word, color) pair, or unset when both are empty.
// The word and the color are never set one without the other.
type Mood struct {
	Word  string `json:"word"`
	Color string `json:"color"`
}

// IsSet reports whether the mood is complete.
func (m Mood) IsSet() bool {
	return m.Word != "" && m.Color != ""
}

// Validate refuses half-set moods. An unset mood is reported as ErrUnset
// so composition flows can refuse the save before any store call.
func (m Mood) Validate() error {
	if m.Word == "" && m.Color == "" {
		return ErrUnset
	}
	if m.Word == "" || m.Color == "" {
		return fmt.Errorf("mood word and color must be set together (word=%q, color=%q)", m.Word, m.Color)
	}
	if utf8.RuneCountInString(m.Word) > MaxWordLen {
		return fmt.Errorf("mood word exceeds %d characters", MaxWordLen)
	}
	return nil
}

// FromHue builds a complete mood from a word and a slider hue.
func FromHue(word string, hue int) Mood {
	return Mood{Word: word, Color: HueToHex(hue)}
}

// HueToHex converts a slider hue to a hex color at the fixed slider
// saturation and lightness. Pure: the same hue always yields the same
// color, and hue 360 wraps to hue 0.
func HueToHex(hue int) string {
	hue = ((hue % 360) + 360) % 360
	return hslToHex(float64(hue), sliderSaturation, sliderLightness)
}

// hslToHex converts HSL (h in degrees, s and l in percent) to "#rrggbb".
func hslToHex(h, s, l float64) string {
	l /= 100
	a := s * math.Min(l, 1-l) / 100
	f := func(n float64) uint8 {
		k := math.Mod(n+h/30, 12)
		color := l - a*math.Max(math.Min(math.Min(k-3, 9-k), 1), -1)
		return uint8(math.Round(255 * color))
	}
	return fmt.Sprintf("#%02x%02x%02x", f(0), f(8), f(4))
}

// Presets are the built-in mood chips offered alongside the hue slider.
var Presets = []Mood{
	{Word: "Joyful", Color: "#FFD700"},
	{Word: "Happy", Color: "#FFA500"},
	{Word: "Peaceful", Color: "#98FB98"},
	{Word: "Loved", Color: "#FF69B4"},
	{Word: "Hopeful", Color: "#87CEEB"},
	{Word: "Neutral", Color: "#B8B8B8"},
	{Word: "Anxious", Color: "#DDA0DD"},
	{Word: "Sad", Color: "#6495ED"},
	{Word: "Angry", Color: "#DC143C"},
	{Word: "Stressed", Color: "#FF4500"},
	{Word: "Tired", Color: "#778899"},
	{Word: "Overwhelmed", Color: "#4682B4"},
}
