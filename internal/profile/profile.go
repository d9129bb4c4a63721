// Package profile holds named conversion presets: a mode, a grid resolution
// and tuning defaults bundled under a stable name for batch runs.
package profile

import (
	"sort"

	"github.com/jojomanman/Pico-8-normal-map/internal/sprite"
)

// Preset binds everything a batch conversion needs besides the image itself.
type Preset struct {
	Name       string
	Mode       sprite.Mode
	Resolution sprite.Resolution
	Tuning     sprite.Tuning
}

// DefaultName is the preset used when an unknown name is requested.
const DefaultName = "normal-16"

var presets = map[string]Preset{
	"normal-16": {
		Name:       "normal-16",
		Mode:       sprite.ModeNormal,
		Resolution: sprite.Res16,
		Tuning:     sprite.DefaultTuning(),
	},
	"normal-32": {
		Name:       "normal-32",
		Mode:       sprite.ModeNormal,
		Resolution: sprite.Res32,
		Tuning:     sprite.DefaultTuning(),
	},
	"normal-64": {
		Name:       "normal-64",
		Mode:       sprite.ModeNormal,
		Resolution: sprite.Res64,
		Tuning:     sprite.DefaultTuning(),
	},
	"depth-16": {
		Name:       "depth-16",
		Mode:       sprite.ModeDepth,
		Resolution: sprite.Res16,
		Tuning:     sprite.DefaultTuning(),
	},
	"depth-32": {
		Name:       "depth-32",
		Mode:       sprite.ModeDepth,
		Resolution: sprite.Res32,
		Tuning:     sprite.DefaultTuning(),
	},
	"depth-64": {
		Name:       "depth-64",
		Mode:       sprite.ModeDepth,
		Resolution: sprite.Res64,
		Tuning:     sprite.DefaultTuning(),
	},
}

// Get returns a preset by name, falling back to the default preset (with the
// requested name preserved) so batch runs never hard-fail on a typo.
func Get(name string) Preset {
	if p, ok := presets[name]; ok {
		return p
	}
	p := presets[DefaultName]
	p.Name = name
	return p
}

// Names returns all preset names, sorted.
func Names() []string {
	out := make([]string, 0, len(presets))
	for n := range presets {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// ClampTuning constrains UI-sourced tuning values to the ranges the encoder
// accepts: gradient factor 0.1–5.0, alpha threshold 0–255.
func ClampTuning(t sprite.Tuning) sprite.Tuning {
	if t.GradientFactor < 0.1 {
		t.GradientFactor = 0.1
	} else if t.GradientFactor > 5.0 {
		t.GradientFactor = 5.0
	}
	if t.AlphaThreshold < 0 {
		t.AlphaThreshold = 0
	} else if t.AlphaThreshold > 255 {
		t.AlphaThreshold = 255
	}
	return t
}

// Clamped returns a copy of the preset with tuning clamped to valid ranges.
func (p Preset) Clamped() Preset {
	p.Tuning = ClampTuning(p.Tuning)
	return p
}
