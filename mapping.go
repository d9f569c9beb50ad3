package deckforge

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ContentRoot is the envelope key content records are wrapped in:
// slide data lives at "presentation_data.<slide_key>.<field>".
const ContentRoot = "presentation_data"

// ContentType is the closed set of content kinds a placeholder mapping
// can bind. Each kind implies both a shape type on the slide and a
// shape of the resolved data: scalars for text-like kinds, a list of
// strings for bullet lists, a list of rows for tables.
type ContentType string

const (
	ContentText       ContentType = "text"
	ContentBulletList ContentType = "bullet_list"
	ContentTable      ContentType = "table"
	ContentImage      ContentType = "image"
	ContentTitle      ContentType = "title"
	ContentSubtitle   ContentType = "subtitle"
)

// validContentTypes is the authoritative membership set; adding a new
// kind means adding a binding arm in the assembler too.
var validContentTypes = map[ContentType]bool{
	ContentText:       true,
	ContentBulletList: true,
	ContentTable:      true,
	ContentImage:      true,
	ContentTitle:      true,
	ContentSubtitle:   true,
}

// Valid reports whether the content type is a known member.
func (c ContentType) Valid() bool { return validContentTypes[c] }

// Tier returns the typography tier a content type styles with.
func (c ContentType) Tier() string {
	switch c {
	case ContentTitle:
		return "title"
	case ContentSubtitle:
		return "subheading"
	default:
		return "body"
	}
}

// UnmarshalJSON rejects unknown content types at config load time so a
// typo in a mapping file fails loudly instead of silently binding nothing.
func (c *ContentType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ct := ContentType(raw)
	if !ct.Valid() {
		return fmt.Errorf("unknown content type %q", raw)
	}
	*c = ct
	return nil
}

// FormatOverrides are optional per-placeholder style overrides applied
// after the design-level defaults.
type FormatOverrides struct {
	FontSize int    `json:"font_size,omitempty"`
	Bold     bool   `json:"bold,omitempty"`
	Color    string `json:"color,omitempty"`
}

// PlaceholderMapping binds one layout placeholder to a dotted path into
// the content record.
type PlaceholderMapping struct {
	// Index is the placeholder idx within the chosen layout.
	Index int `json:"placeholder_idx"`

	// Type determines the binding and styling behavior.
	Type ContentType `json:"content_type"`

	// Path is the dotted path into the content record, e.g.
	// "analysis.key_benefits".
	Path string `json:"data_path"`

	// Substitute enables template variable substitution on the resolved
	// text before binding.
	Substitute bool `json:"substitution,omitempty"`

	// Formatting carries optional style overrides.
	Formatting *FormatOverrides `json:"formatting,omitempty"`
}

// SlideConfig describes one slide to assemble: which layout to start
// from and how each placeholder is filled.
type SlideConfig struct {
	// Key is the slide's identifier in the content record and in
	// diagnostics.
	Key string `json:"slide_key"`

	// LayoutName selects the layout by name; when it does not match any
	// layout, LayoutIndex is used instead.
	LayoutName string `json:"layout_name,omitempty"`

	// LayoutIndex is the fallback layout position.
	LayoutIndex int `json:"layout_idx"`

	// TitlePath optionally names a dotted path for the slide title when
	// no explicit title mapping exists.
	TitlePath string `json:"title_path,omitempty"`

	Placeholders []PlaceholderMapping `json:"placeholders"`
}

// MappingConfig is the full slide plan for one deck.
type MappingConfig struct {
	Slides []SlideConfig `json:"slides"`
}

// HasTitleMapping reports whether any placeholder binds title content.
func (s *SlideConfig) HasTitleMapping() bool {
	for _, ph := range s.Placeholders {
		if ph.Type == ContentTitle {
			return true
		}
	}
	return false
}

// blockPath returns the content block this slide's data lives under.
// It is derived from the placeholder paths so custom mappings with a
// different (or no) envelope still validate correctly; a slide with no
// placeholder paths falls back to the conventional envelope location.
func (s *SlideConfig) blockPath() string {
	for _, ph := range s.Placeholders {
		if i := strings.LastIndex(ph.Path, "."); i > 0 {
			return ph.Path[:i]
		}
	}
	return ContentRoot + "." + s.Key
}

// Slide returns the config for a slide key, or nil.
func (m *MappingConfig) Slide(key string) *SlideConfig {
	for i := range m.Slides {
		if m.Slides[i].Key == key {
			return &m.Slides[i]
		}
	}
	return nil
}

// DefaultMappingConfig is the built-in three-slide plan: a title slide,
// a benefits slide with bullets and an image, and an impact slide with
// a metrics table. Callers needing a different plan load their own
// config with LoadMappingConfig.
func DefaultMappingConfig() *MappingConfig {
	return &MappingConfig{
		Slides: []SlideConfig{
			{
				Key:         "title_slide",
				LayoutName:  "Title Slide",
				LayoutIndex: 0,
				Placeholders: []PlaceholderMapping{
					{Index: 0, Type: ContentTitle, Path: "presentation_data.title_slide.title", Substitute: true},
					{Index: 1, Type: ContentSubtitle, Path: "presentation_data.title_slide.subtitle", Substitute: true},
				},
			},
			{
				Key:         "benefits_slide",
				LayoutName:  "Title and Content",
				LayoutIndex: 1,
				Placeholders: []PlaceholderMapping{
					{Index: 0, Type: ContentTitle, Path: "presentation_data.benefits_slide.title", Substitute: true},
					{Index: 1, Type: ContentBulletList, Path: "presentation_data.benefits_slide.key_benefits"},
					{Index: 2, Type: ContentImage, Path: "presentation_data.benefits_slide.image_label"},
				},
			},
			{
				Key:         "impact_slide",
				LayoutName:  "Title and Content",
				LayoutIndex: 1,
				Placeholders: []PlaceholderMapping{
					{Index: 0, Type: ContentTitle, Path: "presentation_data.impact_slide.title", Substitute: true},
					{Index: 1, Type: ContentTable, Path: "presentation_data.impact_slide.metrics"},
				},
			},
		},
	}
}

// LoadMappingConfig reads a mapping config override from disk.
func LoadMappingConfig(path string) (*MappingConfig, error) {
	var cfg MappingConfig
	if err := loadJSONFile(path, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Slides) == 0 {
		return nil, fmt.Errorf("mapping config %s defines no slides", path)
	}
	return &cfg, nil
}
