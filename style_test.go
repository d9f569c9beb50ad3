package deckforge

import "testing"

func TestNewColor(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"FF0000", "FFFF0000"},
		{"#456446", "FF456446"},
		{"#2d4a2e", "FF2D4A2E"},
		{"80FF0000", "80FF0000"},
		{"bogus", "FF000000"},
		{"", "FF000000"},
		{"#12345", "FF000000"},
	}
	for _, tc := range cases {
		if got := NewColor(tc.in); got.ARGB != tc.want {
			t.Errorf("NewColor(%q) = %s, want %s", tc.in, got.ARGB, tc.want)
		}
	}
}

func TestColorComponents(t *testing.T) {
	c := NewColor("#456446")
	if c.GetRed() != 0x45 || c.GetGreen() != 0x64 || c.GetBlue() != 0x46 {
		t.Errorf("components = %d,%d,%d", c.GetRed(), c.GetGreen(), c.GetBlue())
	}
	if c.GetAlpha() != 0xFF {
		t.Errorf("alpha = %d, want 255", c.GetAlpha())
	}
	if c.Hex() != "#456446" {
		t.Errorf("Hex = %s", c.Hex())
	}
	if c.RGB() != "456446" {
		t.Errorf("RGB = %s", c.RGB())
	}
}

func TestFontSetters(t *testing.T) {
	f := NewFont().SetName("Gothic A1").SetSize(44).SetBold(true).SetColor(NewColor("#2d4a2e"))
	if f.Name != "Gothic A1" || f.Size != 44 || !f.Bold {
		t.Errorf("font = %+v", f)
	}
	if f.SetSize(0).Size != 1 {
		t.Error("size should clamp to 1")
	}
	if f.SetSize(99999).Size != 4000 {
		t.Error("size should clamp to 4000")
	}
}

func TestFillAndAlignment(t *testing.T) {
	f := NewFill()
	if f.Type != FillNone {
		t.Error("new fill should be none")
	}
	f.SetSolid(NewColor("#e7f3ec"))
	if f.Type != FillSolid || f.Color.Hex() != "#e7f3ec" {
		t.Errorf("fill = %+v", f)
	}

	a := NewAlignment()
	if a.SetLevel(-5).Level != 0 {
		t.Error("level should clamp to 0")
	}
	if a.SetLevel(3).Level != 3 {
		t.Error("level not set")
	}
}

func TestPlaceholderSetTextReplaces(t *testing.T) {
	ph := NewPlaceholderShape(PlaceholderTitle)
	ph.SetText("first")
	ph.CreateParagraph().CreateTextRun("extra")
	ph.SetText("replaced")

	if len(ph.GetParagraphs()) != 1 {
		t.Fatalf("paragraph count = %d, want 1 after SetText", len(ph.GetParagraphs()))
	}
	if ph.ExtractText() != "replaced" {
		t.Errorf("text = %q", ph.ExtractText())
	}
}

func TestTableShapeBounds(t *testing.T) {
	table := NewTableShape(2, 3)
	if table.GetCell(0, 0) == nil || table.GetCell(1, 2) == nil {
		t.Error("in-range cells should exist")
	}
	if table.GetCell(-1, 0) != nil || table.GetCell(2, 0) != nil || table.GetCell(0, 3) != nil {
		t.Error("out-of-range cells should be nil")
	}
}
