package deckforge

import (
	"math"
	"testing"
)

func TestInchPointConversions(t *testing.T) {
	if got := Inch(1); got != 914400 {
		t.Errorf("Inch(1) = %d, want 914400", got)
	}
	if got := Point(1); got != 12700 {
		t.Errorf("Point(1) = %d, want 12700", got)
	}
	if got := EMUToInch(914400); got != 1 {
		t.Errorf("EMUToInch(914400) = %f, want 1", got)
	}
	if got := EMUToPoint(25400); got != 2 {
		t.Errorf("EMUToPoint(25400) = %f, want 2", got)
	}
}

func TestClampEMUOverflow(t *testing.T) {
	if got := clampEMU(math.MaxFloat64); got != maxEMU {
		t.Errorf("clampEMU(MaxFloat64) = %d, want %d", got, maxEMU)
	}
	if got := clampEMU(-math.MaxFloat64); got != -maxEMU {
		t.Errorf("clampEMU(-MaxFloat64) = %d, want %d", got, -maxEMU)
	}
}

func TestNormalizeDimensionsEMUInput(t *testing.T) {
	d := NormalizeDimensions(12192000, 6858000)
	if d.WidthEMU != 12192000 || d.HeightEMU != 6858000 {
		t.Fatalf("EMU values not preserved: %d x %d", d.WidthEMU, d.HeightEMU)
	}
	if math.Abs(d.WidthInches-13.333) > 0.001 {
		t.Errorf("WidthInches = %f, want 13.333", d.WidthInches)
	}
	if d.Format != "Widescreen (16:9)" {
		t.Errorf("Format = %q, want Widescreen (16:9)", d.Format)
	}
}

func TestNormalizeDimensionsInchInput(t *testing.T) {
	d := NormalizeDimensions(10, 7.5)
	if d.WidthEMU != 9144000 || d.HeightEMU != 6858000 {
		t.Fatalf("inch input not converted: %d x %d EMU", d.WidthEMU, d.HeightEMU)
	}
	if d.Format != "Custom" {
		t.Errorf("Format = %q, want Custom for 4:3", d.Format)
	}
	if math.Abs(d.AspectRatio-4.0/3.0) > 0.0001 {
		t.Errorf("AspectRatio = %f, want 4:3", d.AspectRatio)
	}
}

func TestNormalizeDimensionsBothRepresentationsAgree(t *testing.T) {
	fromEMU := NormalizeDimensions(12192000, 6858000)
	fromInches := NormalizeDimensions(fromEMU.WidthInches, fromEMU.HeightInches)
	if fromInches.WidthEMU != fromEMU.WidthEMU || fromInches.HeightEMU != fromEMU.HeightEMU {
		t.Errorf("round trip disagrees: %d x %d vs %d x %d",
			fromInches.WidthEMU, fromInches.HeightEMU, fromEMU.WidthEMU, fromEMU.HeightEMU)
	}
}

func TestNormalizeDimensionsInvalid(t *testing.T) {
	for _, tc := range [][2]float64{{0, 7.5}, {10, 0}, {-1, 5}} {
		d := NormalizeDimensions(tc[0], tc[1])
		if d.IsSet() {
			t.Errorf("NormalizeDimensions(%v, %v).IsSet() = true, want false", tc[0], tc[1])
		}
	}
}
