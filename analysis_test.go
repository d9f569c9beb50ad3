package deckforge

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPaletteEntryJSON(t *testing.T) {
	var entry PaletteEntry
	if err := json.Unmarshal([]byte(`["#456446", 0.42]`), &entry); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if entry.Hex != "#456446" || entry.Frequency != 0.42 {
		t.Errorf("got %+v", entry)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `["#456446",0.42]` {
		t.Errorf("marshal = %s", data)
	}
}

func TestPaletteEntryJSONErrors(t *testing.T) {
	cases := []string{
		`["#fff"]`,           // too short
		`[42, 0.5]`,          // color not a string
		`["#fff", "often"]`,  // frequency not a number
		`{"hex": "#ffffff"}`, // not an array
	}
	for _, raw := range cases {
		var entry PaletteEntry
		if err := json.Unmarshal([]byte(raw), &entry); err == nil {
			t.Errorf("unmarshal(%s) should fail", raw)
		}
	}
}

func TestRawDimensionsCoercion(t *testing.T) {
	cases := []struct {
		dims   RawDimensions
		w, h   float64
		wantOK bool
	}{
		{RawDimensions{Width: "12192000", Height: "6858000"}, 12192000, 6858000, true},
		{RawDimensions{Width: float64(10), Height: float64(7.5)}, 10, 7.5, true},
		{RawDimensions{Width: json.Number("914400"), Height: json.Number("685800")}, 914400, 685800, true},
		{RawDimensions{}, 0, 0, false},
		{RawDimensions{Width: "wide", Height: "tall"}, 0, 0, false},
		{RawDimensions{Width: float64(10)}, 0, 0, false}, // height absent
	}
	for i, tc := range cases {
		w, h, ok := tc.dims.Values()
		if ok != tc.wantOK {
			t.Errorf("case %d: ok = %v, want %v", i, ok, tc.wantOK)
			continue
		}
		if ok && (w != tc.w || h != tc.h) {
			t.Errorf("case %d: got %v x %v, want %v x %v", i, w, h, tc.w, tc.h)
		}
	}
}

func TestAnalyzeTemplate(t *testing.T) {
	pres := New()
	theme := NewThemeRecord()
	theme.Colors["accent1"] = "456446"
	theme.MajorFonts["latin"] = "Gothic A1"
	pres.SetTheme(theme)
	pres.GetLayout().SetCustomLayout(12192000, 6858000)
	pres.AddSlideMaster(&SlideMaster{
		Name: "Office Theme",
		SlideLayouts: []*SlideLayout{
			{Name: "Title Slide", Placeholders: []LayoutPlaceholder{{Type: "TITLE", Index: 0}}},
		},
	})
	pres.CreateSlide()
	pres.CreateSlide()

	analysis := AnalyzeTemplate(pres)

	if analysis.ColorScheme["accent1"] != "456446" {
		t.Errorf("accent1 = %q", analysis.ColorScheme["accent1"])
	}
	if analysis.FontScheme.MajorFont["latin"] != "Gothic A1" {
		t.Errorf("major latin = %q", analysis.FontScheme.MajorFont["latin"])
	}
	w, h, ok := analysis.SlideDimensions.Values()
	if !ok || w != 12192000 || h != 6858000 {
		t.Errorf("dimensions = %v x %v (ok=%v)", w, h, ok)
	}
	if len(analysis.Layouts) != 1 || analysis.Layouts[0].Name != "Title Slide" {
		t.Errorf("layouts = %+v", analysis.Layouts)
	}
	if analysis.SlideCount != 2 {
		t.Errorf("slide count = %d, want 2", analysis.SlideCount)
	}
}

func TestAnalyzeTemplateWithoutTheme(t *testing.T) {
	analysis := AnalyzeTemplate(New())
	if len(analysis.ColorScheme) != 0 {
		t.Errorf("color scheme should be empty, got %v", analysis.ColorScheme)
	}
}

func TestTemplateAnalysisJSONRoundTrip(t *testing.T) {
	pres := New()
	theme := NewThemeRecord()
	theme.Colors["accent1"] = "456446"
	pres.SetTheme(theme)
	pres.GetLayout().SetCustomLayout(12192000, 6858000)
	analysis := AnalyzeTemplate(pres)

	path := filepath.Join(t.TempDir(), "template_analysis.json")
	if err := SaveJSON(path, analysis); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadTemplateAnalysis(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.ColorScheme["accent1"] != "456446" {
		t.Errorf("accent1 = %q after round trip", loaded.ColorScheme["accent1"])
	}
	w, h, ok := loaded.SlideDimensions.Values()
	if !ok || w != 12192000 || h != 6858000 {
		t.Errorf("dimensions = %v x %v (ok=%v) after round trip", w, h, ok)
	}
}

func TestLoadMissingInput(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.json")

	_, err := LoadTemplateAnalysis(missing)
	if !errors.Is(err, ErrMissingInput) {
		t.Errorf("LoadTemplateAnalysis error = %v, want ErrMissingInput", err)
	}
	_, err = LoadImageAnalysis(missing)
	if !errors.Is(err, ErrMissingInput) {
		t.Errorf("LoadImageAnalysis error = %v, want ErrMissingInput", err)
	}
	_, err = LoadContentRecord(missing)
	if !errors.Is(err, ErrMissingInput) {
		t.Errorf("LoadContentRecord error = %v, want ErrMissingInput", err)
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte(`{"color_scheme": `), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadTemplateAnalysis(path)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if !strings.Contains(err.Error(), "malformed JSON") || !strings.Contains(err.Error(), path) {
		t.Errorf("error should name the file and the cause: %v", err)
	}
}
