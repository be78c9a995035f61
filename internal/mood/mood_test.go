package mood

import (
	"errors"
	"testing"
)

func TestHueToHex(t *testing.T) {
	tests := []struct {
		name string
		hue  int
		want string
	}{
		{name: "red", hue: 0, want: "#e87d7d"},
		{name: "green", hue: 120, want: "#7de87d"},
		{name: "blue", hue: 240, want: "#7d7de8"},
		{name: "full circle wraps to red", hue: 360, want: "#e87d7d"},
		{name: "over a full circle", hue: 480, want: "#7de87d"},
		{name: "negative wraps", hue: -120, want: "#7d7de8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HueToHex(tt.hue)
			if got != tt.want {
				t.Errorf("HueToHex(%d) = %q, want %q", tt.hue, got, tt.want)
			}
		})
	}
}

func TestHueToHexIsPure(t *testing.T) {
	for hue := 0; hue <= 360; hue += 30 {
		first := HueToHex(hue)
		second := HueToHex(hue)
		if first != second {
			t.Errorf("HueToHex(%d) not deterministic: %q then %q", hue, first, second)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mood      Mood
		wantUnset bool
		wantErr   bool
	}{
		{name: "complete", mood: Mood{Word: "Calm", Color: "#98fb98"}},
		{name: "unset", mood: Mood{}, wantUnset: true, wantErr: true},
		{name: "word without color", mood: Mood{Word: "Calm"}, wantErr: true},
		{name: "color without word", mood: Mood{Color: "#98fb98"}, wantErr: true},
		{
			name:    "word over the length bound",
			mood:    Mood{Word: "Discombobulatedbeyondwords", Color: "#98fb98"},
			wantErr: true,
		},
		{
			name: "word exactly at the length bound",
			mood: Mood{Word: "TwentyCharactersLong", Color: "#98fb98"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mood.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantUnset && !errors.Is(err, ErrUnset) {
				t.Errorf("Validate() error = %v, want ErrUnset", err)
			}
			if !tt.wantUnset && errors.Is(err, ErrUnset) {
				t.Errorf("Validate() = ErrUnset for half-set mood")
			}
		})
	}
}

func TestFromHue(t *testing.T) {
	m := FromHue("Restless", 200)
	if m.Word != "Restless" {
		t.Errorf("FromHue word = %q, want %q", m.Word, "Restless")
	}
	if m.Color != HueToHex(200) {
		t.Errorf("FromHue color = %q, want %q", m.Color, HueToHex(200))
	}
	if !m.IsSet() {
		t.Error("FromHue mood should be set")
	}
}

func TestPresets(t *testing.T) {
	if len(Presets) != 12 {
		t.Fatalf("len(Presets) = %d, want 12", len(Presets))
	}
	seen := make(map[string]bool)
	for _, p := range Presets {
		if !p.IsSet() {
			t.Errorf("preset %q is incomplete", p.Word)
		}
		if seen[p.Word] {
			t.Errorf("duplicate preset word %q", p.Word)
		}
		seen[p.Word] = true
	}
}
