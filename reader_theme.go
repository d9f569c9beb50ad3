package deckforge

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
)

// ThemeRecord holds the theme's named color and font roles as read from
// ppt/theme/theme1.xml. Role names are fixed by the document format's
// schema; a role missing from the maps means the template did not
// customize it and callers must fall back to application defaults.
type ThemeRecord struct {
	// Colors maps a role name ("accent1", "dk1", ...) to a 6-char RGB
	// hex value without a leading '#'. System colors are recorded via
	// their last-known concrete value.
	Colors map[string]string

	// MajorFonts and MinorFonts map a script key ("latin", "ea", "cs",
	// or an explicit script tag like "Jpan") to a typeface name.
	MajorFonts map[string]string
	MinorFonts map[string]string
}

// NewThemeRecord creates an empty theme record.
func NewThemeRecord() *ThemeRecord {
	return &ThemeRecord{
		Colors:     make(map[string]string),
		MajorFonts: make(map[string]string),
		MinorFonts: make(map[string]string),
	}
}

// preferredScripts is the ordered script fallback used when resolving a
// font role to a single typeface.
var preferredScripts = []string{"latin", "Jpan"}

// resolveFont picks a typeface from a script map: preferred scripts
// first, then any non-empty entry in sorted key order so the choice is
// deterministic. Returns "" when the role has no usable entry.
func resolveFont(fonts map[string]string) string {
	for _, script := range preferredScripts {
		if face := fonts[script]; face != "" {
			return face
		}
	}
	keys := make([]string, 0, len(fonts))
	for k := range fonts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if fonts[k] != "" {
			return fonts[k]
		}
	}
	return ""
}

// MajorFont resolves the major (heading) font role.
func (t *ThemeRecord) MajorFont() string { return resolveFont(t.MajorFonts) }

// MinorFont resolves the minor (body) font role.
func (t *ThemeRecord) MinorFont() string { return resolveFont(t.MinorFonts) }

// readTheme parses ppt/theme/theme1.xml into a ThemeRecord.
func readTheme(zr *zip.Reader) (*ThemeRecord, error) {
	data, err := readFileFromZip(zr, "ppt/theme/theme1.xml")
	if err != nil {
		return nil, err
	}
	return parseThemeXML(data)
}

// parseThemeXML walks the theme document with a streaming decoder.
// Inside clrScheme, each child element names a color role and wraps
// either <a:srgbClr val="..."/> or <a:sysClr val="..." lastClr="..."/>.
// Inside fontScheme, majorFont/minorFont wrap <a:latin>, <a:ea>,
// <a:cs> and script-tagged <a:font> elements.
func parseThemeXML(data []byte) (*ThemeRecord, error) {
	theme := NewThemeRecord()
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var (
		inClrScheme  bool
		currentRole  string
		currentFonts map[string]string // majorFont or minorFont target, nil outside
	)

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "clrScheme":
				inClrScheme = true
			case "srgbClr":
				if inClrScheme && currentRole != "" {
					if val := attrValue(t, "val"); val != "" {
						theme.Colors[currentRole] = val
					}
				}
			case "sysClr":
				// System color: record the last-known concrete value.
				if inClrScheme && currentRole != "" {
					if last := attrValue(t, "lastClr"); last != "" {
						theme.Colors[currentRole] = last
					}
				}
			case "majorFont":
				currentFonts = theme.MajorFonts
			case "minorFont":
				currentFonts = theme.MinorFonts
			case "latin", "ea", "cs":
				if currentFonts != nil {
					if face := attrValue(t, "typeface"); face != "" {
						currentFonts[t.Name.Local] = face
					}
				}
			case "font":
				if currentFonts != nil {
					script := attrValue(t, "script")
					face := attrValue(t, "typeface")
					if script != "" && face != "" {
						currentFonts[script] = face
					}
				}
			default:
				if inClrScheme {
					currentRole = t.Name.Local
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "clrScheme":
				inClrScheme = false
				currentRole = ""
			case "majorFont", "minorFont":
				currentFonts = nil
			default:
				if inClrScheme && t.Name.Local == currentRole {
					currentRole = ""
				}
			}
		}
	}

	if len(theme.Colors) == 0 && len(theme.MajorFonts) == 0 && len(theme.MinorFonts) == 0 {
		return nil, fmt.Errorf("theme document contains no color or font scheme")
	}
	return theme, nil
}

// attrValue returns the value of the attribute with the given local name.
func attrValue(el xml.StartElement, name string) string {
	for _, attr := range el.Attr {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}
