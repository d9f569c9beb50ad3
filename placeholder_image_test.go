package deckforge

import (
	"bytes"
	"image/png"
	"testing"
)

func TestPlaceholderImage(t *testing.T) {
	data, err := PlaceholderImage("#e7f3ec", "Facility photo")
	if err != nil {
		t.Fatalf("PlaceholderImage failed: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a decodable PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != placeholderImageWidth || bounds.Dy() != placeholderImageHeight {
		t.Errorf("size = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), placeholderImageWidth, placeholderImageHeight)
	}

	r, g, b, _ := img.At(0, 0).RGBA()
	if uint8(r>>8) != 0xe7 || uint8(g>>8) != 0xf3 || uint8(b>>8) != 0xec {
		t.Errorf("corner pixel = %x,%x,%x, want fill color", r>>8, g>>8, b>>8)
	}
}

func TestPlaceholderImageNoLabel(t *testing.T) {
	data, err := PlaceholderImage("#456446", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("unlabeled image should still decode: %v", err)
	}
}

func TestPlaceholderImageBadColor(t *testing.T) {
	if _, err := PlaceholderImage("chartreuse", "x"); err == nil {
		t.Error("invalid fill color should fail")
	}
}
