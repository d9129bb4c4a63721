package sprite

import (
	"errors"
	"image/color"
	"strings"
	"testing"
)

func TestParseRoundtrip(t *testing.T) {
	for _, res := range Resolutions() {
		grid := gradientGrid(int(res))
		s, hist, err := Encode(grid, ModeNormal, DefaultTuning())
		if err != nil {
			t.Fatalf("res %d: %v", int(res), err)
		}

		gotRes, nibbles, err := Parse(s)
		if err != nil {
			t.Fatalf("res %d: parse: %v", int(res), err)
		}
		if gotRes != res {
			t.Errorf("res %d: parsed resolution %d", int(res), int(gotRes))
		}
		if len(nibbles) != 2*int(res)*int(res) {
			t.Errorf("res %d: %d nibbles", int(res), len(nibbles))
		}
		if HistogramOf(nibbles) != hist {
			t.Errorf("res %d: recounted histogram differs from Encode's", int(res))
		}
	}
}

func TestParseMalformed(t *testing.T) {
	valid, _, err := Encode(solidGrid(16, color.NRGBA{128, 128, 128, 255}), ModeNormal, DefaultTuning())
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no prefix", valid[1:]},
		{"no suffix", valid[:len(valid)-1]},
		{"unknown header", "[gfx]ffff" + strings.Repeat("8", 512) + "[/gfx]"},
		{"short stream", "[gfx]2010" + strings.Repeat("8", 511) + "[/gfx]"},
		{"long stream", "[gfx]2010" + strings.Repeat("8", 513) + "[/gfx]"},
		{"non-hex digit", "[gfx]2010" + strings.Repeat("8", 511) + "g[/gfx]"},
		{"uppercase digit", "[gfx]2010" + strings.Repeat("8", 511) + "F[/gfx]"},
		{"header only truncated", "[gfx]20[/gfx]"},
	}
	for _, c := range cases {
		if _, _, err := Parse(c.input); !errors.Is(err, ErrMalformedSprite) {
			t.Errorf("%s: got %v, want ErrMalformedSprite", c.name, err)
		}
	}
}
