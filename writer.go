package deckforge

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
)

// SaveAs writes the presentation to a .pptx file at path.
func (p *Presentation) SaveAs(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := p.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to finish %s: %w", path, err)
	}
	return nil
}

// WriteTo serializes the presentation as a PPTX zip container. The
// part inventory mirrors what ReadFrom consumes, so a written deck
// reads back with the same layouts, text, tables and backgrounds.
func (p *Presentation) WriteTo(w io.Writer) error {
	zw := zip.NewWriter(w)

	layouts := p.writerLayouts()
	slideCount := len(p.slides)

	media := collectMedia(p.slides)

	parts := []struct {
		name string
		data string
	}{
		{"[Content_Types].xml", contentTypesXML(len(layouts), slideCount, media)},
		{"_rels/.rels", rootRelsXML()},
		{"docProps/core.xml", corePropsXML(p.properties)},
		{"docProps/app.xml", appPropsXML(p)},
		{"ppt/presentation.xml", presentationXML(p, slideCount)},
		{"ppt/_rels/presentation.xml.rels", presentationRelsXML(slideCount)},
		{"ppt/theme/theme1.xml", themeXML(p.theme)},
		{"ppt/slideMasters/slideMaster1.xml", masterXML(len(layouts))},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", masterRelsXML(len(layouts))},
	}

	for i, layout := range layouts {
		n := i + 1
		parts = append(parts,
			struct{ name, data string }{fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", n), layoutPartXML(layout)},
			struct{ name, data string }{fmt.Sprintf("ppt/slideLayouts/_rels/slideLayout%d.xml.rels", n), layoutRelsXML()},
		)
	}

	for i, slide := range p.slides {
		n := i + 1
		layoutRef := layoutIndexFor(slide, layouts) + 1
		parts = append(parts,
			struct{ name, data string }{fmt.Sprintf("ppt/slides/slide%d.xml", n), slideXML(slide, media)},
			struct{ name, data string }{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), slideRelsXML(layoutRef, slide, media)},
		)
	}

	for _, part := range parts {
		if err := writeZipPart(zw, part.name, []byte(part.data)); err != nil {
			return err
		}
	}

	for _, m := range media {
		if err := writeZipPart(zw, m.partName, m.data); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize zip: %w", err)
	}
	return nil
}

func writeZipPart(zw *zip.Writer, name string, data []byte) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create zip entry %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write zip entry %s: %w", name, err)
	}
	return nil
}

// writerLayouts returns the layouts to serialize. A presentation built
// without a template still needs at least one layout for the master
// to reference, so defaults are synthesized.
func (p *Presentation) writerLayouts() []*SlideLayout {
	if layouts := p.GetSlideLayouts(); len(layouts) > 0 {
		return layouts
	}
	return []*SlideLayout{
		{
			Name: "Title Slide",
			Type: "title",
			Placeholders: []LayoutPlaceholder{
				{Type: "TITLE", Index: 0, Name: "Title 1"},
				{Type: "SUBTITLE", Index: 1, Name: "Subtitle 2"},
			},
		},
		{
			Name: "Title and Content",
			Type: "obj",
			Placeholders: []LayoutPlaceholder{
				{Type: "TITLE", Index: 0, Name: "Title 1"},
				{Type: "BODY", Index: 1, Name: "Content Placeholder 2"},
			},
		},
	}
}

// layoutIndexFor finds the serialized layout a slide was built from,
// defaulting to the first layout.
func layoutIndexFor(slide *Slide, layouts []*SlideLayout) int {
	for i, layout := range layouts {
		if layout.Name != "" && layout.Name == slide.layoutName {
			return i
		}
	}
	return 0
}

// mediaPart is one embedded image file.
type mediaPart struct {
	partName  string // "ppt/media/image1.png"
	extension string
	data      []byte
	shape     *DrawingShape
}

// collectMedia walks every slide's drawing shapes and assigns media
// part names in encounter order.
func collectMedia(slides []*Slide) []mediaPart {
	var media []mediaPart
	for _, slide := range slides {
		for _, shape := range slide.GetShapes() {
			d, ok := shape.(*DrawingShape)
			if !ok || len(d.GetImageData()) == 0 {
				continue
			}
			ext := "png"
			if d.GetMimeType() == "image/jpeg" {
				ext = "jpeg"
			}
			n := len(media) + 1
			media = append(media, mediaPart{
				partName:  fmt.Sprintf("ppt/media/image%d.%s", n, ext),
				extension: ext,
				data:      d.GetImageData(),
				shape:     d,
			})
		}
	}
	return media
}

// mediaFor returns the media parts belonging to one slide, keyed by
// shape identity.
func mediaFor(slide *Slide, media []mediaPart) []mediaPart {
	var out []mediaPart
	for _, shape := range slide.GetShapes() {
		d, ok := shape.(*DrawingShape)
		if !ok {
			continue
		}
		for _, m := range media {
			if m.shape == d {
				out = append(out, m)
			}
		}
	}
	return out
}
