package assets

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#959595", color.RGBA{0x95, 0x95, 0x95, 0xff}},
		{"C1C1C1", color.RGBA{0xc1, 0xc1, 0xc1, 0xff}},
		{"#fff", color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{"#00000080", color.RGBA{0, 0, 0, 0x80}},
	}
	for _, c := range tests {
		got, err := ParseColor(c.in)
		if err != nil || got != c.want {
			t.Errorf("ParseColor(%q) = %v, %v; want %v", c.in, got, err, c.want)
		}
	}
	for _, bad := range []string{"", "#12", "#zzzzzz"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) succeeded", bad)
		}
	}
	if ColorOr("nope", color.RGBA{1, 2, 3, 4}) != (color.RGBA{1, 2, 3, 4}) {
		t.Errorf("ColorOr fallback not used")
	}
}
