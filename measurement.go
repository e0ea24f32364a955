package golabel

import "math"

// Pixel conversion helpers for print geometry.
// Label artwork is produced for a fixed print resolution, so all sizes in a
// profile are plain pixel counts; these helpers convert physical lengths to
// pixels at a given DPI. 1 inch = 2.54 cm, 1 point = 1/72 inch.

const (
	centimetersPerInch = 2.54
	pointsPerInch      = 72
	// maxPixels is the maximum safe pixel value to prevent overflow.
	maxPixels = math.MaxInt32 / 2
)

// CentimeterToPixels converts a length in centimeters to pixels at dpi.
// Clamps to safe range.
func CentimeterToPixels(cm float64, dpi float64) int {
	return clampPixels(cm * dpi / centimetersPerInch)
}

// InchToPixels converts a length in inches to pixels at dpi.
func InchToPixels(in float64, dpi float64) int {
	return clampPixels(in * dpi)
}

// PointToPixels converts a length in typographic points to pixels at dpi.
func PointToPixels(pt float64, dpi float64) int {
	return clampPixels(pt * dpi / pointsPerInch)
}

// PixelsToCentimeter converts pixels to centimeters at dpi.
func PixelsToCentimeter(px int, dpi float64) float64 {
	if dpi <= 0 {
		return 0
	}
	return float64(px) * centimetersPerInch / dpi
}

// clampPixels converts a float64 to int, clamping to prevent overflow.
func clampPixels(v float64) int {
	if v > float64(maxPixels) {
		return maxPixels
	}
	if v < -float64(maxPixels) {
		return -maxPixels
	}
	return int(math.Round(v))
}
