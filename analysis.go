package deckforge

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
)

// TemplateAnalysis is the structural record extracted from a template:
// theme color roles, font roles per script, canvas size and the
// per-layout placeholder inventory. It round-trips through
// template_analysis.json so extraction and merging can run as separate
// steps.
type TemplateAnalysis struct {
	ColorScheme     map[string]string  `json:"color_scheme"`
	FontScheme      FontSchemeAnalysis `json:"font_scheme"`
	SlideDimensions RawDimensions      `json:"slide_dimensions"`
	Layouts         []LayoutAnalysis   `json:"layouts,omitempty"`
	SlideCount      int                `json:"slide_count,omitempty"`
}

// FontSchemeAnalysis maps script keys to typeface names per font role.
type FontSchemeAnalysis struct {
	MajorFont map[string]string `json:"majorFont"`
	MinorFont map[string]string `json:"minorFont"`
}

// LayoutAnalysis is one layout's placeholder inventory.
type LayoutAnalysis struct {
	Name         string              `json:"name"`
	Placeholders []LayoutPlaceholder `json:"placeholders"`
}

// RawDimensions carries a canvas size whose unit and JSON type are not
// fixed: analysis files written by different tools store width/height
// as strings or numbers, in EMU or inches. Values normalizes both.
type RawDimensions struct {
	Width  any `json:"width,omitempty"`
	Height any `json:"height,omitempty"`
}

// Values coerces the raw width/height to floats. ok is false when
// either value is absent or unparseable; callers then use defaults.
func (d RawDimensions) Values() (w, h float64, ok bool) {
	w, wok := coerceFloat(d.Width)
	h, hok := coerceFloat(d.Height)
	return w, h, wok && hok
}

func coerceFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// PaletteEntry is one [hexColor, frequency] pair from the visual
// analysis palette list.
type PaletteEntry struct {
	Hex       string
	Frequency float64
}

// UnmarshalJSON decodes the two-element array form.
func (e *PaletteEntry) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) < 2 {
		return fmt.Errorf("palette entry needs [hex, frequency], got %d elements", len(raw))
	}
	hex, ok := raw[0].(string)
	if !ok {
		return fmt.Errorf("palette entry color must be a string, got %T", raw[0])
	}
	freq, ok := coerceFloat(raw[1])
	if !ok {
		return fmt.Errorf("palette entry frequency must be a number, got %T", raw[1])
	}
	e.Hex = hex
	e.Frequency = freq
	return nil
}

// MarshalJSON encodes back to the two-element array form.
func (e PaletteEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Hex, e.Frequency})
}

// ImageAnalysis is the externally produced visual analysis of rendered
// template images: a ranked color palette and layout density metrics.
// This tool consumes it; it never produces it.
type ImageAnalysis struct {
	ColorPalette   ColorPalette   `json:"color_palette"`
	LayoutPatterns LayoutPatterns `json:"layout_patterns"`
}

// ColorPalette is the ranked dominant-color list.
type ColorPalette struct {
	MostCommonColors  []PaletteEntry `json:"most_common_colors"`
	TotalUniqueColors int            `json:"total_unique_colors"`
	ColorConsistency  float64        `json:"color_consistency"`
}

// LayoutPatterns holds per-slide element density metrics.
type LayoutPatterns struct {
	AvgElementsPerSlide  float64 `json:"avg_elements_per_slide"`
	ElementCountVariance float64 `json:"element_count_variance"`
}

// AnalyzeTemplate builds a TemplateAnalysis from an opened template.
// The theme may be nil (template without a readable theme part); the
// analysis then carries empty schemes and downstream merging falls
// back to defaults.
func AnalyzeTemplate(pres *Presentation) *TemplateAnalysis {
	analysis := &TemplateAnalysis{
		ColorScheme: make(map[string]string),
		FontScheme: FontSchemeAnalysis{
			MajorFont: make(map[string]string),
			MinorFont: make(map[string]string),
		},
		SlideCount: pres.GetSlideCount(),
	}

	if theme := pres.GetTheme(); theme != nil {
		for role, hex := range theme.Colors {
			analysis.ColorScheme[role] = hex
		}
		for script, face := range theme.MajorFonts {
			analysis.FontScheme.MajorFont[script] = face
		}
		for script, face := range theme.MinorFonts {
			analysis.FontScheme.MinorFont[script] = face
		}
	}

	if layout := pres.GetLayout(); layout != nil && layout.CX > 0 && layout.CY > 0 {
		analysis.SlideDimensions = RawDimensions{
			Width:  strconv.FormatInt(layout.CX, 10),
			Height: strconv.FormatInt(layout.CY, 10),
		}
	}

	for _, sl := range pres.GetSlideLayouts() {
		analysis.Layouts = append(analysis.Layouts, LayoutAnalysis{
			Name:         sl.Name,
			Placeholders: sl.Placeholders,
		})
	}
	return analysis
}

// LoadTemplateAnalysis reads a template_analysis.json file.
func LoadTemplateAnalysis(path string) (*TemplateAnalysis, error) {
	var analysis TemplateAnalysis
	if err := loadJSONFile(path, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// LoadImageAnalysis reads an image_analysis.json file.
func LoadImageAnalysis(path string) (*ImageAnalysis, error) {
	var analysis ImageAnalysis
	if err := loadJSONFile(path, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// LoadContentRecord reads the caller-supplied nested content data.
// The record is decoded generically; the mapping layer only ever reads it.
func LoadContentRecord(path string) (map[string]any, error) {
	var record map[string]any
	if err := loadJSONFile(path, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// LoadJSONInto reads a JSON file into v with the shared failure
// taxonomy: ErrMissingInput for absent files, a wrapped decode error
// naming the path for malformed content.
func LoadJSONInto(path string, v any) error {
	return loadJSONFile(path, v)
}

func loadJSONFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("malformed JSON in %s: %w", path, err)
	}
	return nil
}

// SaveJSON writes v as indented JSON, the format shared by every
// analysis and configuration artifact this tool produces.
func SaveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
