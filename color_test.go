package deckforge

import (
	"testing"
)

func TestCategorizeBuckets(t *testing.T) {
	tests := []struct {
		hex  string
		want string
	}{
		{"#ffffff", CategoryLight},   // lightness 100
		{"#f5f5f5", CategoryLight},   // lightness 96
		{"#000000", CategoryDark},    // lightness 0
		{"#1a1a1a", CategoryDark},    // lightness 10
		{"#808080", CategoryNeutral}, // zero saturation midtone
		{"#456446", CategoryNeutral}, // green hue but saturation 18, under threshold
		{"#4a7c4e", CategoryPrimaryGreen},
		{"#2e8b57", CategorySecondaryGreen}, // sea green, hue ~146
		{"#ff0000", CategoryAccent},         // red, hue 0
		{"#0000ff", CategoryAccent},         // blue, hue 240
	}
	for _, tc := range tests {
		got, err := Categorize(tc.hex)
		if err != nil {
			t.Fatalf("Categorize(%q) error: %v", tc.hex, err)
		}
		if got.Category != tc.want {
			t.Errorf("Categorize(%q) = %q (h=%d s=%d l=%d), want %q",
				tc.hex, got.Category, got.Hue, got.Saturation, got.Lightness, tc.want)
		}
	}
}

func TestCategorizeDeterministic(t *testing.T) {
	first, err := Categorize("#6f8770")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := Categorize("#6f8770")
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("Categorize not deterministic: %+v vs %+v", again, first)
		}
	}
}

func TestCategorizeGreenFamilyFlag(t *testing.T) {
	green, err := Categorize("#456446")
	if err != nil {
		t.Fatal(err)
	}
	if !green.IsGreenFamily {
		t.Errorf("#456446 should be flagged green family (hue %d)", green.Hue)
	}
	red, err := Categorize("#cc2222")
	if err != nil {
		t.Fatal(err)
	}
	if red.IsGreenFamily {
		t.Errorf("#cc2222 should not be flagged green family (hue %d)", red.Hue)
	}
}

func TestCategorizeInvalidHex(t *testing.T) {
	for _, hex := range []string{"", "xyz", "#12345", "#gggggg"} {
		if _, err := Categorize(hex); err == nil {
			t.Errorf("Categorize(%q) should fail", hex)
		}
	}
}

func TestCategorizeHueBoundaries(t *testing.T) {
	// hue 80 is inside the primary range, hue just past 140 is secondary,
	// hue past 200 is accent. Saturated midtone colors chosen per hue.
	cases := []struct {
		hex  string
		want string
	}{
		{"#88cc33", CategoryPrimaryGreen},   // hue ~86
		{"#33cc99", CategorySecondaryGreen}, // hue ~160
		{"#3366cc", CategoryAccent},         // hue ~220
	}
	for _, tc := range cases {
		got, err := Categorize(tc.hex)
		if err != nil {
			t.Fatal(err)
		}
		if got.Category != tc.want {
			t.Errorf("Categorize(%q) = %q (h=%d), want %q", tc.hex, got.Category, got.Hue, tc.want)
		}
	}
}

func TestHexToRGB(t *testing.T) {
	r, g, b, err := HexToRGB("#456446")
	if err != nil {
		t.Fatal(err)
	}
	if r != 0x45 || g != 0x64 || b != 0x46 {
		t.Errorf("HexToRGB = %d,%d,%d, want 69,100,70", r, g, b)
	}
	if _, _, _, err := HexToRGB("nope"); err == nil {
		t.Error("HexToRGB should reject invalid input")
	}
}
