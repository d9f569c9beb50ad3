package deckforge

import (
	"errors"
	"testing"
)

const sampleThemeXML = `<?xml version="1.0"?>
<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Leafy">
  <a:themeElements>
    <a:clrScheme name="Leafy">
      <a:dk1><a:sysClr val="windowText" lastClr="2D4A2E"/></a:dk1>
      <a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>
      <a:dk2><a:srgbClr val="1E3320"/></a:dk2>
      <a:lt2><a:srgbClr val="E7F3EC"/></a:lt2>
      <a:accent1><a:srgbClr val="456446"/></a:accent1>
      <a:accent2><a:srgbClr val="6F8770"/></a:accent2>
    </a:clrScheme>
    <a:fontScheme name="Leafy">
      <a:majorFont>
        <a:latin typeface="Gothic A1"/>
        <a:ea typeface=""/>
        <a:cs typeface=""/>
        <a:font script="Jpan" typeface="Yu Gothic"/>
      </a:majorFont>
      <a:minorFont>
        <a:latin typeface="Gothic A1 Light"/>
        <a:ea typeface=""/>
        <a:cs typeface=""/>
      </a:minorFont>
    </a:fontScheme>
  </a:themeElements>
</a:theme>`

func TestParseThemeXML(t *testing.T) {
	theme, err := parseThemeXML([]byte(sampleThemeXML))
	if err != nil {
		t.Fatalf("parseThemeXML failed: %v", err)
	}

	if got := theme.Colors["accent1"]; got != "456446" {
		t.Errorf("accent1 = %q, want 456446", got)
	}
	if got := theme.Colors["dk1"]; got != "2D4A2E" {
		t.Errorf("dk1 = %q, want lastClr of sysClr", got)
	}
	if got := theme.MajorFonts["latin"]; got != "Gothic A1" {
		t.Errorf("major latin = %q", got)
	}
	if got := theme.MajorFonts["Jpan"]; got != "Yu Gothic" {
		t.Errorf("script-tagged font = %q, want Yu Gothic", got)
	}
	if _, ok := theme.MajorFonts["ea"]; ok {
		t.Error("empty typefaces should not be recorded")
	}
	if got := theme.MinorFonts["latin"]; got != "Gothic A1 Light" {
		t.Errorf("minor latin = %q", got)
	}
}

func TestParseThemeXMLEmpty(t *testing.T) {
	if _, err := parseThemeXML([]byte(`<a:theme xmlns:a="x"/>`)); err == nil {
		t.Error("expected error for theme with no schemes")
	}
}

func TestResolveFontPreference(t *testing.T) {
	cases := []struct {
		fonts map[string]string
		want  string
	}{
		{map[string]string{"latin": "Gothic A1", "Jpan": "Yu Gothic"}, "Gothic A1"},
		{map[string]string{"Jpan": "Yu Gothic"}, "Yu Gothic"},
		{map[string]string{"Hans": "SimSun", "Arab": "Arial"}, "Arial"}, // sorted key order
		{map[string]string{}, ""},
		{nil, ""},
	}
	for i, tc := range cases {
		if got := resolveFont(tc.fonts); got != tc.want {
			t.Errorf("case %d: resolveFont = %q, want %q", i, got, tc.want)
		}
	}
}

const sampleLayoutXML = `<?xml version="1.0"?>
<p:sldLayout xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
             xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" type="title">
  <p:cSld name="Green Title">
    <p:spTree>
      <p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>
      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="2" name="Title 1"/>
          <p:nvPr><p:ph type="ctrTitle"/></p:nvPr>
        </p:nvSpPr>
      </p:sp>
      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="3" name="Subtitle 2"/>
          <p:nvPr><p:ph type="subTitle" idx="1"/></p:nvPr>
        </p:nvSpPr>
      </p:sp>
      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="4" name="Content 3"/>
          <p:nvPr><p:ph idx="2"/></p:nvPr>
        </p:nvSpPr>
      </p:sp>
    </p:spTree>
  </p:cSld>
</p:sldLayout>`

func TestParseLayoutXML(t *testing.T) {
	layout := parseLayoutXML([]byte(sampleLayoutXML))
	if layout == nil {
		t.Fatal("parseLayoutXML returned nil")
	}
	if layout.Name != "Green Title" {
		t.Errorf("name = %q", layout.Name)
	}
	if layout.Type != "title" {
		t.Errorf("type = %q", layout.Type)
	}
	if len(layout.Placeholders) != 3 {
		t.Fatalf("placeholder count = %d, want 3", len(layout.Placeholders))
	}

	if ph := layout.Placeholders[0]; ph.Type != "TITLE" || ph.Index != 0 || ph.Name != "Title 1" {
		t.Errorf("placeholder 0 = %+v", ph)
	}
	if ph := layout.Placeholders[1]; ph.Type != "SUBTITLE" || ph.Index != 1 {
		t.Errorf("placeholder 1 = %+v", ph)
	}
	if ph := layout.Placeholders[2]; ph.Type != "BODY" || ph.Index != 2 {
		t.Errorf("untyped placeholder should normalize to BODY: %+v", ph)
	}
}

func TestParseLayoutXMLUnusable(t *testing.T) {
	if layout := parseLayoutXML([]byte(`<p:sldLayout xmlns:p="x"/>`)); layout != nil {
		t.Errorf("layout with no name and no placeholders should be dropped, got %+v", layout)
	}
}

func TestNormalizePlaceholderType(t *testing.T) {
	cases := map[string]string{
		"title":    "TITLE",
		"ctrTitle": "TITLE",
		"subTitle": "SUBTITLE",
		"body":     "BODY",
		"":         "BODY",
		"pic":      "PICTURE",
		"dt":       "DT",
		"sldNum":   "SLDNUM",
	}
	for raw, want := range cases {
		if got := NormalizePlaceholderType(raw); got != want {
			t.Errorf("NormalizePlaceholderType(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(t.TempDir() + "/absent.pptx")
	if !errors.Is(err, ErrMissingInput) {
		t.Errorf("Open error = %v, want ErrMissingInput", err)
	}
}

func TestLayoutByNameOrDefault(t *testing.T) {
	pres := New()
	pres.AddSlideMaster(&SlideMaster{
		SlideLayouts: []*SlideLayout{
			{Name: "First"},
			{Name: "Second"},
		},
	})

	if got := pres.LayoutByNameOrDefault("Second", 0); got.Name != "Second" {
		t.Errorf("named lookup = %q", got.Name)
	}
	if got := pres.LayoutByNameOrDefault("Missing", 1); got.Name != "Second" {
		t.Errorf("index fallback = %q, want Second", got.Name)
	}
	if got := pres.LayoutByNameOrDefault("Missing", 99); got.Name != "First" {
		t.Errorf("out-of-range index should fall back to first layout, got %q", got.Name)
	}
	if got := New().LayoutByNameOrDefault("Anything", 0); got != nil {
		t.Errorf("no layouts should resolve to nil, got %+v", got)
	}
}
