package deckforge

import "math"

// EMU (English Metric Units) conversion helpers.
// 1 inch = 914400 EMU, 1 point = 12700 EMU, 1 cm = 360000 EMU.

const (
	emuPerInch  = 914400
	emuPerPoint = 12700
	// maxEMU is the maximum safe EMU value to prevent overflow.
	maxEMU = math.MaxInt64 / 2
)

// Inch converts inches to EMU. Clamps to safe range.
func Inch(n float64) int64 {
	return clampEMU(n * emuPerInch)
}

// Point converts points to EMU.
func Point(n float64) int64 {
	return clampEMU(n * emuPerPoint)
}

// EMUToInch converts EMU to inches.
func EMUToInch(emu int64) float64 {
	return float64(emu) / emuPerInch
}

// EMUToPoint converts EMU to points.
func EMUToPoint(emu int64) float64 {
	return float64(emu) / emuPerPoint
}

// clampEMU converts a float64 to int64, clamping to prevent overflow.
func clampEMU(v float64) int64 {
	if v > float64(maxEMU) {
		return maxEMU
	}
	if v < -float64(maxEMU) {
		return -maxEMU
	}
	return int64(v)
}

// SlideDimensions holds a slide canvas size in both EMU and inches.
// The aspect ratio and format label are derived, never stored separately.
type SlideDimensions struct {
	WidthInches  float64 `json:"width_inches"`
	WidthEMU     int64   `json:"width_emu"`
	HeightInches float64 `json:"height_inches"`
	HeightEMU    int64   `json:"height_emu"`
	AspectRatio  float64 `json:"aspect_ratio"`
	Format       string  `json:"format"`
}

// IsSet reports whether the dimensions carry a usable size.
// Unset dimensions mean "use application defaults" downstream.
func (d SlideDimensions) IsSet() bool {
	return d.WidthEMU > 0 && d.HeightEMU > 0
}

// widescreenTolerance is how close the aspect ratio must be to 16:9
// for the format to be labeled widescreen.
const widescreenTolerance = 0.1

// NormalizeDimensions interprets raw width/height values that may be in
// either EMU or inches and returns both representations. Values above
// 1000 are taken to already be EMU; anything else is inches. This
// mirrors the unit heuristic used by the analysis files, where either
// unit can appear depending on which tool produced them.
func NormalizeDimensions(width, height float64) SlideDimensions {
	if width <= 0 || height <= 0 {
		return SlideDimensions{}
	}

	var d SlideDimensions
	if width > 1000 {
		d.WidthEMU = int64(width)
		d.HeightEMU = int64(height)
		d.WidthInches = width / emuPerInch
		d.HeightInches = height / emuPerInch
	} else {
		d.WidthInches = width
		d.HeightInches = height
		d.WidthEMU = Inch(width)
		d.HeightEMU = Inch(height)
	}
	d.AspectRatio = d.WidthInches / d.HeightInches
	d.Format = formatLabel(d.AspectRatio)
	return d
}

// formatLabel names the slide format from its aspect ratio.
func formatLabel(ratio float64) string {
	if math.Abs(ratio-16.0/9.0) < widescreenTolerance {
		return "Widescreen (16:9)"
	}
	return "Custom"
}
