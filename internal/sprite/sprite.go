// Package sprite converts normal maps and height maps into the 4-bit-per-pixel
// sprite strings the Pico-8 gfx format stores.
//
// The pipeline is two pure steps: Sample crops a normalized square region out
// of the source and box-resamples it to a fixed 16/32/64 grid; Encode turns
// each grid pixel into a pair of 4-bit slope values (Y slope first, then X),
// counts them into a 16-bucket histogram, and serializes the nibble stream
// between "[gfx]"/"[/gfx]" markers with a resolution header. Identical inputs
// always produce byte-identical output; nothing here touches shared state.
package sprite

import (
	"fmt"
	"image"
	"math"
	"strings"
)

// Resolution is the side length of the resampled grid. Only the three sizes
// the gfx header can express are valid.
type Resolution int

const (
	Res16 Resolution = 16
	Res32 Resolution = 32
	Res64 Resolution = 64
)

// Resolutions lists the supported grid sides in ascending order.
func Resolutions() []Resolution {
	return []Resolution{Res16, Res32, Res64}
}

// ParseResolution validates a numeric grid side.
func ParseResolution(n int) (Resolution, error) {
	r := Resolution(n)
	if !r.Valid() {
		return 0, fmt.Errorf("%w: %d (want 16, 32 or 64)", ErrUnsupportedResolution, n)
	}
	return r, nil
}

func (r Resolution) Valid() bool {
	return r == Res16 || r == Res32 || r == Res64
}

// Header returns the 4-digit resolution tag: two hex bytes holding the nibble
// column count (two nibbles per pixel) and the pixel row count.
// 16→"2010", 32→"4020", 64→"8040".
func (r Resolution) Header() string {
	return fmt.Sprintf("%02x%02x", int(r)*2, int(r))
}

// Mode selects the per-pixel slope algorithm.
type Mode uint8

const (
	// ModeNormal reads slopes straight off the red (X) and green (Y) channels
	// of a tangent-space normal map.
	ModeNormal Mode = iota
	// ModeDepth derives slopes from central differences over a grayscale
	// height map.
	ModeDepth
)

func (m Mode) String() string {
	if m == ModeDepth {
		return "depth"
	}
	return "normal"
}

// ParseMode maps a CLI/manifest mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "normal":
		return ModeNormal, nil
	case "depth":
		return ModeDepth, nil
	}
	return 0, fmt.Errorf("unknown mode %q (want normal or depth)", s)
}

// Tuning holds the two caller-supplied scalars. Callers clamp UI-sourced
// values to GradientFactor [0.1,5.0] and AlphaThreshold [0,255] before
// encoding; the encoder applies them as given.
type Tuning struct {
	GradientFactor float64
	AlphaThreshold int
}

// DefaultTuning matches the converter's UI defaults.
func DefaultTuning() Tuning {
	return Tuning{GradientFactor: 1.0, AlphaThreshold: 10}
}

// Histogram counts emitted nibble values; index = nibble. Every pixel
// contributes two counts (its Y slope and its X slope).
type Histogram [16]int

// Total returns the number of nibbles counted: always 2·resolution².
func (h Histogram) Total() int {
	n := 0
	for _, c := range h {
		n += c
	}
	return n
}

// Nibble landmarks. 0 is emitted only by the two void gates (transparency,
// near-black height); slopes occupy [1,15] with 8 as flat.
const (
	NibbleVoid = 0
	NibbleFlat = 8
)

const (
	framePrefix = "[gfx]"
	frameSuffix = "[/gfx]"
	headerLen   = 4

	// Depth-mode constants. The 0.5 base sensitivity and the ×5 boost are
	// empirically chosen; the encoding is defined by these literal values,
	// so do not re-derive them.
	depthSensitivity = 0.5
	depthBoost       = 5.0
	lumaVoidMax      = 8.0
)

const hexDigits = "0123456789abcdef"

// Encode turns a resampled grid into a sprite string and its nibble
// histogram. The grid must be square with a valid Resolution side; this is
// checked before any pixel work.
//
// Pixels are visited in row-major order. A pixel whose alpha falls below
// Tuning.AlphaThreshold emits the void pair 0,0 regardless of mode. In depth
// mode a second, independent gate voids pixels whose luma is ≤ 8, so
// transparent and near-black keep their distinct source meanings.
func Encode(grid *image.NRGBA, mode Mode, t Tuning) (string, Histogram, error) {
	var hist Histogram

	res, err := gridResolution(grid)
	if err != nil {
		return "", hist, err
	}
	side := int(res)
	b := grid.Bounds()

	var sb strings.Builder
	sb.Grow(len(framePrefix) + headerLen + 2*side*side + len(frameSuffix))
	sb.WriteString(framePrefix)
	sb.WriteString(res.Header())

	var luma []float64
	if mode == ModeDepth {
		luma = lumaPlane(grid)
	}

	for y := 0; y < side; y++ {
		off := grid.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < side; x++ {
			r := grid.Pix[off]
			g := grid.Pix[off+1]
			a := grid.Pix[off+3]
			off += 4

			valX, valY := NibbleVoid, NibbleVoid
			switch {
			case int(a) < t.AlphaThreshold:
				// transparent: void pair, skip the slope math
			case mode == ModeNormal:
				valX = quantize(float64(r), t.GradientFactor)
				valY = quantize(float64(g), t.GradientFactor)
			default:
				if luma[y*side+x] > lumaVoidMax {
					dx, dy := centralDiff(luma, side, x, y)
					valX = gradientQuantize(dx, t.GradientFactor)
					valY = gradientQuantize(dy, t.GradientFactor)
				}
			}

			hist[valX]++
			hist[valY]++
			sb.WriteByte(hexDigits[valY])
			sb.WriteByte(hexDigits[valX])
		}
	}

	sb.WriteString(frameSuffix)
	return sb.String(), hist, nil
}

// Result bundles one conversion's outputs. Region is the source rectangle the
// crop resolved to, for overlay display alongside the sprite.
type Result struct {
	Sprite    string
	Histogram Histogram
	Region    image.Rectangle
}

// Convert runs the full pipeline: crop geometry, box resample, slope encode.
func Convert(img image.Image, crop CropSpec, res Resolution, mode Mode, t Tuning) (*Result, error) {
	if !res.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedResolution, int(res))
	}
	b := img.Bounds()
	region, err := SquareRegion(b.Dx(), b.Dy(), crop)
	if err != nil {
		return nil, err
	}
	grid := resample(img, region.Add(b.Min), res)
	s, hist, err := Encode(grid, mode, t)
	if err != nil {
		return nil, err
	}
	return &Result{Sprite: s, Histogram: hist, Region: region}, nil
}

func gridResolution(grid *image.NRGBA) (Resolution, error) {
	b := grid.Bounds()
	if b.Dx() != b.Dy() {
		return 0, fmt.Errorf("%w: grid %dx%d is not square", ErrUnsupportedResolution, b.Dx(), b.Dy())
	}
	return ParseResolution(b.Dx())
}

// quantize maps an 8-bit normal-map channel to a slope nibble. The sign flip
// means a high channel value (surface tilting toward +axis) lands on the low
// end of the nibble range: 255→1, 127.5→8, 0→15.
func quantize(channel, factor float64) int {
	return slopeNibble(-(channel - 127.5) / 127.5 * factor)
}

// gradientQuantize maps a luma central difference (−255..255) to a slope
// nibble, with the depth base sensitivity and boost applied before clamping.
func gradientQuantize(delta, factor float64) int {
	return slopeNibble(-(delta / 255 * depthSensitivity) * factor * depthBoost)
}

// slopeNibble clamps a normalized slope to [−1,1] and maps it onto [1,15],
// with 0 reserved for void.
func slopeNibble(v float64) int {
	if v < -1 {
		v = -1
	} else if v > 1 {
		v = 1
	}
	n := int(math.Round((v+1)/2*14)) + 1
	if n < 1 {
		n = 1
	} else if n > 15 {
		n = 15
	}
	return n
}
