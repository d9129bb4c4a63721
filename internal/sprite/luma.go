package sprite

import "image"

// lumaPlane converts the whole grid to ITU-R BT.601 weighted grayscale
// (0.299R + 0.587G + 0.114B), row-major, values in 0..255.
func lumaPlane(grid *image.NRGBA) []float64 {
	b := grid.Bounds()
	side := b.Dx()
	luma := make([]float64, side*side)
	for y := 0; y < side; y++ {
		off := grid.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < side; x++ {
			r := float64(grid.Pix[off])
			g := float64(grid.Pix[off+1])
			bl := float64(grid.Pix[off+2])
			luma[y*side+x] = 0.299*r + 0.587*g + 0.114*bl
			off += 4
		}
	}
	return luma
}

// centralDiff returns the horizontal and vertical central differences at
// (x,y) with neighbors clamped at the grid edges.
func centralDiff(luma []float64, side, x, y int) (dx, dy float64) {
	xm, xp := max(x-1, 0), min(x+1, side-1)
	ym, yp := max(y-1, 0), min(y+1, side-1)
	dx = luma[y*side+xp] - luma[y*side+xm]
	dy = luma[yp*side+x] - luma[ym*side+x]
	return dx, dy
}
