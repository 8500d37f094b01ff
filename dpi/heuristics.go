package dpi

import (
	"math"

	"preflight/contracts"
)

// SurfaceEstimate guesses DPI from drawing-surface scale factors. A
// rough platform guess, tried only after the format extractors and
// before the density fallback.
func SurfaceEstimate(surface contracts.RenderingSurface) (float64, error) {
	if surface == nil {
		return 0, ErrNotFound
	}
	device, backing, err := surface.PixelRatios()
	if err != nil || backing == 0 {
		return 0, ErrNotFound
	}
	return math.Round(72 * device / backing), nil
}

// DensityEstimate maps stored bytes per pixel to a DPI tier. It always
// produces a value; the caller records that the number is estimated
// rather than measured.
func DensityEstimate(fileSize int64, width, height int) float64 {
	totalPixels := int64(width) * int64(height)
	if totalPixels <= 0 {
		return 72
	}
	bytesPerPixel := float64(fileSize) / float64(totalPixels)
	switch {
	case bytesPerPixel > 3:
		return 300
	case bytesPerPixel > 1.5:
		return 150
	case bytesPerPixel > 0.5:
		return 96
	default:
		return 72
	}
}
