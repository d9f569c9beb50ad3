package deckforge

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorCategory is the bucket a palette color falls into, together with
// the HSL triple the decision was made from. Categorization is a pure
// function of the HSL value and the profile thresholds: the same input
// always yields the same category.
type ColorCategory struct {
	Category      string `json:"category"`
	Hue           int    `json:"hue"`
	Saturation    int    `json:"saturation"`
	Lightness     int    `json:"lightness"`
	IsGreenFamily bool   `json:"is_green_family"`
}

// Category names produced by Categorize.
const (
	CategoryLight          = "light"
	CategoryDark           = "dark"
	CategoryNeutral        = "neutral"
	CategoryPrimaryGreen   = "primary_green"
	CategorySecondaryGreen = "secondary_green"
	CategoryAccent         = "accent"
)

// PaletteProfile holds the hue ranges used to split saturated colors
// into primary/secondary buckets. The default profile is calibrated for
// the green conference template this tool was built around, not a
// general color taxonomy; swap the profile to retarget another deck.
type PaletteProfile struct {
	PrimaryHueMin   int
	PrimaryHueMax   int
	SecondaryHueMax int
}

// DefaultPaletteProfile is the green-template calibration:
// 80–140° primary, 140–200° secondary.
var DefaultPaletteProfile = PaletteProfile{
	PrimaryHueMin:   80,
	PrimaryHueMax:   140,
	SecondaryHueMax: 200,
}

// Fixed lightness/saturation thresholds. These are policy, not
// configuration: every caller categorizes the same way.
const (
	lightnessLightMin = 90
	lightnessDarkMax  = 20
	saturationNeutral = 20
)

// Categorize buckets a hex color ("#rrggbb" or "rrggbb") using the
// default palette profile.
func Categorize(hex string) (ColorCategory, error) {
	return DefaultPaletteProfile.Categorize(hex)
}

// Categorize buckets a hex color using this profile's hue ranges.
func (p PaletteProfile) Categorize(hex string) (ColorCategory, error) {
	c, err := parseHexColor(hex)
	if err != nil {
		return ColorCategory{}, err
	}

	hf, sf, lf := c.Hsl()
	h := int(hf)
	s := int(sf * 100)
	l := int(lf * 100)

	cat := ColorCategory{
		Hue:           h,
		Saturation:    s,
		Lightness:     l,
		IsGreenFamily: h >= p.PrimaryHueMin && h <= p.SecondaryHueMax,
	}

	switch {
	case l > lightnessLightMin:
		cat.Category = CategoryLight
	case l < lightnessDarkMax:
		cat.Category = CategoryDark
	case s < saturationNeutral:
		cat.Category = CategoryNeutral
	case h >= p.PrimaryHueMin && h <= p.PrimaryHueMax:
		cat.Category = CategoryPrimaryGreen
	case h > p.PrimaryHueMax && h <= p.SecondaryHueMax:
		cat.Category = CategorySecondaryGreen
	default:
		cat.Category = CategoryAccent
	}
	return cat, nil
}

// parseHexColor parses "#rrggbb" (hash optional) into a colorful.Color.
func parseHexColor(hex string) (colorful.Color, error) {
	if len(hex) > 0 && hex[0] != '#' {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return c, nil
}

// HexToRGB converts a hex color string to its byte components.
func HexToRGB(hex string) (r, g, b uint8, err error) {
	c, err := parseHexColor(hex)
	if err != nil {
		return 0, 0, 0, err
	}
	cr, cg, cb := c.RGB255()
	return cr, cg, cb, nil
}
