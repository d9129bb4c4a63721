// Package render draws diagnostic previews of encoded sprite nibble streams.
package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/transform"
	"github.com/lucasb-eyer/go-colorful"
)

// Ramp endpoints per slope axis, blended in Lab so the perceptual step
// between adjacent nibble values stays even. X slopes ride the red ramp and
// Y slopes the green ramp, mirroring the normal-map channel convention.
var (
	xLow  = colorful.Color{R: 0.22, G: 0.02, B: 0.10}
	xHigh = colorful.Color{R: 1.00, G: 0.45, B: 0.20}
	yLow  = colorful.Color{R: 0.02, G: 0.22, B: 0.10}
	yHigh = colorful.Color{R: 0.40, G: 1.00, B: 0.30}
)

// Slopes renders a decoded nibble stream as an RGBA image, one cell per
// pixel, upscaled by scale with nearest-neighbor so cells stay crisp. Void
// pixels (nibble pair 0,0) come out fully transparent.
func Slopes(nibbles []byte, side, scale int) (*image.RGBA, error) {
	if side <= 0 || len(nibbles) != 2*side*side {
		return nil, fmt.Errorf("nibble stream length %d does not match side %d", len(nibbles), side)
	}
	if scale < 1 {
		scale = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			i := 2 * (y*side + x)
			valY, valX := nibbles[i], nibbles[i+1]
			if valX == 0 && valY == 0 {
				continue // void stays transparent
			}
			img.SetRGBA(x, y, slopeColor(valX, valY))
		}
	}

	if scale == 1 {
		return img, nil
	}
	return transform.Resize(img, side*scale, side*scale, transform.NearestNeighbor), nil
}

func slopeColor(valX, valY byte) color.RGBA {
	tx := float64(valX-1) / 14
	ty := float64(valY-1) / 14
	c := xLow.BlendLab(xHigh, tx).BlendRgb(yLow.BlendLab(yHigh, ty), 0.5).Clamped()
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
