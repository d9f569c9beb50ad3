package deckforge

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Default pixel size for generated placeholder images. Chosen to match
// a 4:3 content placeholder at screen resolution.
const (
	placeholderImageWidth  = 640
	placeholderImageHeight = 480
)

// PlaceholderImage renders a solid-color PNG carrying an optional
// centered label, used when a mapping binds an image placeholder but no
// real asset exists yet. The fill color comes from the deck's brand
// palette so generated decks stay on brand even with stand-in images.
func PlaceholderImage(hexColor, label string) ([]byte, error) {
	r, g, b, err := HexToRGB(hexColor)
	if err != nil {
		return nil, fmt.Errorf("placeholder image fill: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, placeholderImageWidth, placeholderImageHeight))
	fill := color.RGBA{R: r, G: g, B: b, A: 0xff}
	for y := 0; y < placeholderImageHeight; y++ {
		for x := 0; x < placeholderImageWidth; x++ {
			img.SetRGBA(x, y, fill)
		}
	}

	if label != "" {
		drawCenteredLabel(img, label, labelColorFor(r, g, b))
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode placeholder image: %w", err)
	}
	return buf.Bytes(), nil
}

// labelColorFor picks black or white text for contrast against the
// fill, using the Rec. 601 luma weights.
func labelColorFor(r, g, b uint8) color.Color {
	luma := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	if luma > 128 {
		return color.Black
	}
	return color.White
}

// drawCenteredLabel draws the label centered with the fixed-size basic
// font. Long labels are clipped by the drawer, not wrapped.
func drawCenteredLabel(img *image.RGBA, label string, textColor color.Color) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, label).Ceil()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I((placeholderImageWidth - width) / 2),
			Y: fixed.I(placeholderImageHeight / 2),
		},
	}
	d.DrawString(label)
}
