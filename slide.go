package deckforge

import "strings"

// Slide represents a single slide in a presentation.
type Slide struct {
	name       string
	layoutName string
	shapes     []Shape
	background *Fill
}

// newSlide creates an empty slide.
func newSlide() *Slide {
	return &Slide{
		shapes: make([]Shape, 0),
	}
}

// GetName returns the slide name.
func (s *Slide) GetName() string { return s.name }

// SetName sets the slide name.
func (s *Slide) SetName(name string) { s.name = name }

// GetLayoutName returns the name of the layout the slide was built from.
func (s *Slide) GetLayoutName() string { return s.layoutName }

// GetShapes returns all shapes on the slide.
func (s *Slide) GetShapes() []Shape { return s.shapes }

// AddShape adds a shape to the slide.
func (s *Slide) AddShape(shape Shape) {
	s.shapes = append(s.shapes, shape)
}

// CreateRichTextShape creates a rich text shape and adds it to the slide.
func (s *Slide) CreateRichTextShape() *RichTextShape {
	rt := NewRichTextShape()
	s.shapes = append(s.shapes, rt)
	return rt
}

// CreatePlaceholderShape creates a placeholder shape and adds it to the slide.
func (s *Slide) CreatePlaceholderShape(phType PlaceholderType) *PlaceholderShape {
	ph := NewPlaceholderShape(phType)
	s.shapes = append(s.shapes, ph)
	return ph
}

// GetBackground returns the slide background fill, creating it if needed.
func (s *Slide) GetBackground() *Fill {
	if s.background == nil {
		s.background = NewFill()
	}
	return s.background
}

// SetBackground sets the slide background fill.
func (s *Slide) SetBackground(f *Fill) { s.background = f }

// HasBackground reports whether a background fill was explicitly set.
func (s *Slide) HasBackground() bool {
	return s.background != nil && s.background.Type != FillNone
}

// FindPlaceholder returns the first placeholder of the given type, or nil.
func (s *Slide) FindPlaceholder(phType PlaceholderType) *PlaceholderShape {
	for _, shape := range s.shapes {
		if ph, ok := shape.(*PlaceholderShape); ok && ph.phType == phType {
			return ph
		}
	}
	return nil
}

// FindPlaceholderByIndex returns the placeholder with the given index, or nil.
func (s *Slide) FindPlaceholderByIndex(idx int) *PlaceholderShape {
	for _, shape := range s.shapes {
		if ph, ok := shape.(*PlaceholderShape); ok && ph.phIdx == idx {
			return ph
		}
	}
	return nil
}

// ExtractText returns all text content of the slide, one line per paragraph.
func (s *Slide) ExtractText() string {
	var parts []string
	for _, shape := range s.shapes {
		switch sh := shape.(type) {
		case *PlaceholderShape:
			parts = append(parts, extractParagraphsText(sh.paragraphs)...)
		case *RichTextShape:
			parts = append(parts, extractParagraphsText(sh.paragraphs)...)
		case *TableShape:
			for _, row := range sh.rows {
				for _, cell := range row {
					parts = append(parts, extractParagraphsText(cell.paragraphs)...)
				}
			}
		}
	}
	return strings.Join(parts, "\n")
}

// LayoutPlaceholder describes one placeholder slot defined by a slide layout.
type LayoutPlaceholder struct {
	Type  string `json:"type"`  // normalized name: TITLE, SUBTITLE, BODY, PICTURE, ...
	Index int    `json:"idx"`   // placeholder index within the layout
	Name  string `json:"name"`  // shape name from the layout XML
}

// SlideLayout represents a slide layout and its placeholder inventory.
type SlideLayout struct {
	Name         string
	Type         string
	Placeholders []LayoutPlaceholder
}

// PlaceholderHistogram counts placeholders per normalized type name.
func (l *SlideLayout) PlaceholderHistogram() map[string]int {
	hist := make(map[string]int, len(l.Placeholders))
	for _, ph := range l.Placeholders {
		hist[ph.Type]++
	}
	return hist
}

// SlideMaster represents a slide master.
type SlideMaster struct {
	Name         string
	SlideLayouts []*SlideLayout
}

// NormalizePlaceholderType maps a raw layout XML ph type attribute to
// the uppercase names used in layout analysis. Centered titles count as
// titles; an absent type attribute means a body placeholder per the
// document format's schema.
func NormalizePlaceholderType(raw string) string {
	switch raw {
	case "title", "ctrTitle":
		return "TITLE"
	case "subTitle":
		return "SUBTITLE"
	case "body", "":
		return "BODY"
	case "pic":
		return "PICTURE"
	default:
		return strings.ToUpper(raw)
	}
}
