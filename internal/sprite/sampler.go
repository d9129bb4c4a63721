package sprite

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// CropSpec selects a square region of the source image in normalized
// coordinates, so the same values work for any image size.
//
// Zoom scales the square relative to the largest centered square that fits
// (Zoom=1 selects the full square). PanX/PanY position the square's top-left
// corner within the remaining travel range: 0 = flush left/top, 1 = flush
// right/bottom, 0.5 = centered.
type CropSpec struct {
	Zoom float64 // (0, 1]
	PanX float64 // [0, 1]
	PanY float64 // [0, 1]
}

// CenteredCrop returns the full-frame crop: the largest square, centered.
func CenteredCrop() CropSpec {
	return CropSpec{Zoom: 1, PanX: 0.5, PanY: 0.5}
}

func (c CropSpec) validate() error {
	if c.Zoom <= 0 || c.Zoom > 1 {
		return fmt.Errorf("%w: zoom %.4f outside (0,1]", ErrInvalidCrop, c.Zoom)
	}
	if c.PanX < 0 || c.PanX > 1 {
		return fmt.Errorf("%w: pan-x %.4f outside [0,1]", ErrInvalidCrop, c.PanX)
	}
	if c.PanY < 0 || c.PanY > 1 {
		return fmt.Errorf("%w: pan-y %.4f outside [0,1]", ErrInvalidCrop, c.PanY)
	}
	return nil
}

// SquareRegion derives the source rectangle a crop selects from a w×h image.
//
// This is the single geometry formula for the whole tool: both the sampler
// and any crop-overlay preview must call it, so what the user sees and what
// gets encoded can never diverge.
//
// The square side is min(w,h)·zoom and the origin is pan·(dimension−side),
// rounded to whole pixels. Rounding may nudge the origin back by at most one
// pixel to keep the rectangle inside the image.
func SquareRegion(w, h int, crop CropSpec) (image.Rectangle, error) {
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, fmt.Errorf("%w: %dx%d", ErrEmptySource, w, h)
	}
	if err := crop.validate(); err != nil {
		return image.Rectangle{}, err
	}

	side := float64(min(w, h)) * crop.Zoom
	sideI := int(math.Round(side))
	if sideI < 1 {
		return image.Rectangle{}, fmt.Errorf("%w: zoom %.4f selects a square below one pixel", ErrInvalidCrop, crop.Zoom)
	}
	if sideI > min(w, h) {
		sideI = min(w, h)
	}

	// Travel range is (dimension − side), non-negative since zoom ≤ 1.
	x := int(math.Round((float64(w) - side) * crop.PanX))
	y := int(math.Round((float64(h) - side) * crop.PanY))
	x = min(max(x, 0), w-sideI)
	y = min(max(y, 0), h-sideI)

	return image.Rect(x, y, x+sideI, y+sideI), nil
}

// Sample extracts the crop square from img and box-resamples it into a
// res×res RGBA grid, one sample per destination cell.
func Sample(img image.Image, crop CropSpec, res Resolution) (*image.NRGBA, error) {
	if !res.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedResolution, int(res))
	}
	b := img.Bounds()
	region, err := SquareRegion(b.Dx(), b.Dy(), crop)
	if err != nil {
		return nil, err
	}
	return resample(img, region.Add(b.Min), res), nil
}

func resample(img image.Image, region image.Rectangle, res Resolution) *image.NRGBA {
	return imaging.Resize(imaging.Crop(img, region), int(res), int(res), imaging.Box)
}
