package sprite

import "errors"

// All failures are input-validation errors detected before any pixel work;
// a call either produces a complete result or nothing.
var (
	// ErrEmptySource reports a source image with zero area.
	ErrEmptySource = errors.New("source image has zero area")

	// ErrInvalidCrop reports crop parameters outside their valid ranges or a
	// crop square that degenerates below one pixel.
	ErrInvalidCrop = errors.New("invalid crop")

	// ErrUnsupportedResolution reports a grid side outside the three sizes
	// the gfx format carries headers for.
	ErrUnsupportedResolution = errors.New("unsupported resolution")

	// ErrMalformedSprite reports a sprite string that cannot be parsed back
	// into a nibble grid.
	ErrMalformedSprite = errors.New("malformed sprite string")
)
