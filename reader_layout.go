package deckforge

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"strconv"
)

// readLayouts reads every ppt/slideLayouts/slideLayoutN.xml part and
// builds the layout placeholder inventory. Parts are visited in
// numeric order so layout indices are stable across runs.
func readLayouts(zr *zip.Reader) ([]*SlideLayout, error) {
	names := zipNamesWithPrefix(zr, "ppt/slideLayouts/", ".xml")
	layouts := make([]*SlideLayout, 0, len(names))
	for _, name := range names {
		data, err := readFileFromZip(zr, name)
		if err != nil {
			continue
		}
		layout := parseLayoutXML(data)
		if layout != nil {
			layouts = append(layouts, layout)
		}
	}
	return layouts, nil
}

// parseLayoutXML extracts the layout name and placeholder slots from a
// slideLayout part. The layout name lives on <p:cSld name="...">; each
// placeholder is an <p:sp> whose <p:ph> carries type and idx attributes.
func parseLayoutXML(data []byte) *SlideLayout {
	layout := &SlideLayout{}
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var (
		inShape   bool
		shapeName string
	)

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		start, ok := token.(xml.StartElement)
		if !ok {
			if end, ok := token.(xml.EndElement); ok && end.Name.Local == "sp" {
				inShape = false
				shapeName = ""
			}
			continue
		}

		switch start.Name.Local {
		case "cSld":
			layout.Name = attrValue(start, "name")
		case "sldLayout":
			layout.Type = attrValue(start, "type")
		case "sp":
			inShape = true
		case "cNvPr":
			if inShape && shapeName == "" {
				shapeName = attrValue(start, "name")
			}
		case "ph":
			if !inShape {
				continue
			}
			idx := 0
			if raw := attrValue(start, "idx"); raw != "" {
				if v, err := strconv.Atoi(raw); err == nil {
					idx = v
				}
			}
			layout.Placeholders = append(layout.Placeholders, LayoutPlaceholder{
				Type:  NormalizePlaceholderType(attrValue(start, "type")),
				Index: idx,
				Name:  shapeName,
			})
		}
	}

	if layout.Name == "" && len(layout.Placeholders) == 0 {
		return nil
	}
	return layout
}
