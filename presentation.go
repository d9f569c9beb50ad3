// Package deckforge analyzes slide-deck templates and regenerates
// presentations that match the template's design.
//
// The pipeline has three stages: structural extraction (theme colors,
// font roles, canvas size and layout placeholders from a .pptx
// template), design merging (structural data combined with an external
// visual palette analysis into a DesignSpec), and slide assembly (a
// declarative mapping binds a nested content record to layout
// placeholders, producing a styled PPTX).
package deckforge

import (
	"errors"
	"time"
)

// Presentation represents an in-memory slide deck.
type Presentation struct {
	properties   *DocumentProperties
	slides       []*Slide
	slideMasters []*SlideMaster
	layout       *DocumentLayout
	theme        *ThemeRecord
}

// New creates a new empty Presentation.
func New() *Presentation {
	return &Presentation{
		properties:   NewDocumentProperties(),
		slides:       make([]*Slide, 0),
		slideMasters: make([]*SlideMaster, 0),
		layout:       NewDocumentLayout(),
	}
}

// GetDocumentProperties returns the document properties.
func (p *Presentation) GetDocumentProperties() *DocumentProperties {
	return p.properties
}

// GetTheme returns the theme record read from the template, or nil.
func (p *Presentation) GetTheme() *ThemeRecord {
	return p.theme
}

// SetTheme sets the theme record.
func (p *Presentation) SetTheme(t *ThemeRecord) {
	p.theme = t
}

// GetLayout returns the document layout.
func (p *Presentation) GetLayout() *DocumentLayout {
	return p.layout
}

// SetLayout sets the document layout.
func (p *Presentation) SetLayout(layout *DocumentLayout) {
	p.layout = layout
}

// CreateSlide creates a new slide and adds it to the presentation.
func (p *Presentation) CreateSlide() *Slide {
	slide := newSlide()
	p.slides = append(p.slides, slide)
	return slide
}

// AddSlide adds an existing slide to the presentation.
func (p *Presentation) AddSlide(slide *Slide) *Slide {
	p.slides = append(p.slides, slide)
	return slide
}

// GetSlide returns a slide by index.
func (p *Presentation) GetSlide(index int) (*Slide, error) {
	if index < 0 || index >= len(p.slides) {
		return nil, errors.New("slide index out of range")
	}
	return p.slides[index], nil
}

// GetAllSlides returns all slides.
func (p *Presentation) GetAllSlides() []*Slide {
	return p.slides
}

// Slides is an alias for GetAllSlides.
func (p *Presentation) Slides() []*Slide {
	return p.slides
}

// GetSlideCount returns the number of slides.
func (p *Presentation) GetSlideCount() int {
	return len(p.slides)
}

// GetSlideMasters returns all slide masters.
func (p *Presentation) GetSlideMasters() []*SlideMaster {
	return p.slideMasters
}

// AddSlideMaster adds a slide master.
func (p *Presentation) AddSlideMaster(sm *SlideMaster) {
	p.slideMasters = append(p.slideMasters, sm)
}

// GetSlideLayouts returns all slide layouts from all slide masters.
func (p *Presentation) GetSlideLayouts() []*SlideLayout {
	var layouts []*SlideLayout
	for _, sm := range p.slideMasters {
		layouts = append(layouts, sm.SlideLayouts...)
	}
	return layouts
}

// GetLayoutByName returns a SlideLayout by name.
// Returns an error if no layout with the given name is found.
func (p *Presentation) GetLayoutByName(name string) (*SlideLayout, error) {
	for _, sm := range p.slideMasters {
		for _, layout := range sm.SlideLayouts {
			if layout.Name == name {
				return layout, nil
			}
		}
	}
	return nil, errLayoutNotFound(name)
}

// GetLayoutByIndex returns the layout at the given position across all
// masters, or nil if out of range.
func (p *Presentation) GetLayoutByIndex(index int) *SlideLayout {
	layouts := p.GetSlideLayouts()
	if index < 0 || index >= len(layouts) {
		return nil
	}
	return layouts[index]
}

// LayoutByNameOrDefault resolves a layout through an ordered fallback
// list: the named layout, then the layout at the default index, then
// nil if the presentation has no layouts at all. Resolution never
// fails; callers treat a nil result as "no layout constraints".
func (p *Presentation) LayoutByNameOrDefault(name string, defaultIndex int) *SlideLayout {
	if name != "" {
		if layout, err := p.GetLayoutByName(name); err == nil {
			return layout
		}
	}
	if layout := p.GetLayoutByIndex(defaultIndex); layout != nil {
		return layout
	}
	return p.GetLayoutByIndex(0)
}

// ExtractText returns all text content from the presentation as a
// single string. Useful for search and test assertions.
func (p *Presentation) ExtractText() string {
	var parts []string
	for _, slide := range p.slides {
		if text := slide.ExtractText(); text != "" {
			parts = append(parts, text)
		}
	}
	return joinNonEmpty(parts, "\n")
}

func joinNonEmpty(parts []string, sep string) string {
	var result []string
	for _, p := range parts {
		if p != "" {
			result = append(result, p)
		}
	}
	out := ""
	for i, p := range result {
		if i > 0 {
			out += sep
		}
		out += p
	}
	return out
}

// DocumentProperties holds standard document properties.
type DocumentProperties struct {
	Creator        string
	LastModifiedBy string
	Created        time.Time
	Modified       time.Time
	Title          string
	Description    string
	Subject        string
	Keywords       string
	Category       string
}

// NewDocumentProperties creates new document properties with defaults.
func NewDocumentProperties() *DocumentProperties {
	now := time.Now()
	return &DocumentProperties{
		Creator:        "deckforge",
		LastModifiedBy: "deckforge",
		Created:        now,
		Modified:       now,
	}
}

// DocumentLayout represents the slide canvas dimensions.
type DocumentLayout struct {
	CX   int64 // width in EMU (English Metric Units)
	CY   int64 // height in EMU
	Name string
}

// Standard layout names.
const (
	LayoutScreen4x3  = "screen4x3"
	LayoutScreen16x9 = "screen16x9"
	LayoutCustom     = "custom"
)

// NewDocumentLayout creates a default 4:3 layout.
func NewDocumentLayout() *DocumentLayout {
	return &DocumentLayout{
		CX:   9144000, // 10 inches
		CY:   6858000, // 7.5 inches
		Name: LayoutScreen4x3,
	}
}

// SetCustomLayout sets custom dimensions in EMU. Non-positive values
// fall back to the 4:3 defaults.
func (dl *DocumentLayout) SetCustomLayout(cx, cy int64) {
	if cx <= 0 {
		cx = 9144000
	}
	if cy <= 0 {
		cy = 6858000
	}
	dl.CX = cx
	dl.CY = cy
	dl.Name = LayoutCustom
}
