package deckforge

import (
	"log/slog"
)

// Literal fallbacks used when a palette bucket is empty. These come
// from the green conference template the default calibration targets.
const (
	fallbackPrimary   = "#456446"
	fallbackSecondary = "#e7f3ec"
	fallbackAccent    = "#6f8770"
	colorTextDark     = "#2d4a2e"
	colorTextLight    = "#ffffff"
	colorBackground   = "#ffffff"

	fallbackFontFamily = "Gothic A1"
)

// TypeScale is the fixed five-tier typography scale in points. It is
// always generated in full regardless of what the template carries.
var TypeScale = map[string]int{
	"title":      44,
	"heading":    32,
	"subheading": 24,
	"body":       18,
	"caption":    14,
}

// Usage pattern labels inferred per layout.
const (
	UsageTitleSlide   = "title_slide"
	UsageContentSlide = "content_slide"
	UsageImageSlide   = "image_slide"
	UsageMultiContent = "multi_content"
	UsageCustom       = "custom"
)

// CategorizedColor is one palette color with its bucket and provenance.
type CategorizedColor struct {
	ColorCategory
	Hex       string   `json:"hex"`
	Frequency float64  `json:"frequency"`
	RGB       [3]uint8 `json:"rgb"`
}

// BrandColors are the named colors chosen first-match-per-bucket.
type BrandColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

// ColorScheme is the categorized palette section of a DesignSpec.
type ColorScheme struct {
	PrimaryColors       []CategorizedColor `json:"primary_colors"`
	SecondaryColors     []CategorizedColor `json:"secondary_colors"`
	NeutralColors       []CategorizedColor `json:"neutral_colors"`
	LightColors         []CategorizedColor `json:"light_colors"`
	DarkColors          []CategorizedColor `json:"dark_colors"`
	AccentColors        []CategorizedColor `json:"accent_colors"`
	TotalUniqueColors   int                `json:"total_unique_colors"`
	ColorConsistency    float64            `json:"color_consistency"`
	DominantColorFamily string             `json:"dominant_color_family"`
	BrandColors         BrandColors        `json:"brand_colors"`
}

// SizeRange is the min/max of the generated type scale.
type SizeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Typography is the resolved font section of a DesignSpec.
type Typography struct {
	PrimaryFontFamily string         `json:"primary_font_family"`
	FontFamilies      []string       `json:"font_families"`
	RecommendedSizes  map[string]int `json:"recommended_sizes"`
	SizeRange         SizeRange      `json:"size_range"`
}

// LayoutTemplate is one layout's placeholder histogram and inferred
// usage pattern.
type LayoutTemplate struct {
	Name             string              `json:"name"`
	PlaceholderCount int                 `json:"placeholder_count"`
	PlaceholderTypes map[string]int      `json:"placeholder_types"`
	Placeholders     []LayoutPlaceholder `json:"placeholders"`
	UsagePattern     string              `json:"usage_pattern"`
}

// DesignElements are overall density metrics merged from both analyses.
type DesignElements struct {
	SlideCount              int     `json:"slide_count"`
	AverageElementsPerSlide float64 `json:"average_elements_per_slide"`
	LayoutConsistency       float64 `json:"layout_consistency"`
	ContentDensity          string  `json:"content_density"`
}

// BrandGuidelines collects the derived styling contract in one place.
type BrandGuidelines struct {
	ColorPalette    map[string]string `json:"color_palette"`
	TypographyScale map[string]int    `json:"typography_scale"`
	FontFamily      string            `json:"font_family"`
}

// DesignSpec is the merged design specification for one template:
// built once, immutable thereafter, serialized for reuse by the
// assembly stage.
type DesignSpec struct {
	SlideDimensions SlideDimensions           `json:"slide_dimensions"`
	ColorScheme     ColorScheme               `json:"color_scheme"`
	Typography      Typography                `json:"typography"`
	LayoutTemplates map[string]LayoutTemplate `json:"layout_templates"`
	DesignElements  DesignElements            `json:"design_elements"`
	BrandGuidelines BrandGuidelines           `json:"brand_guidelines"`
}

// bucket caps applied after grouping; brand colors are chosen before
// truncation so the first match always survives.
const (
	maxColorsPerBucket = 3
	maxAccentColors    = 2
)

// BuildDesignSpec merges the structural template analysis with the
// visual image analysis into a DesignSpec.
func BuildDesignSpec(template *TemplateAnalysis, image *ImageAnalysis) *DesignSpec {
	spec := &DesignSpec{
		LayoutTemplates: make(map[string]LayoutTemplate),
	}

	if w, h, ok := template.SlideDimensions.Values(); ok {
		spec.SlideDimensions = NormalizeDimensions(w, h)
	}

	spec.ColorScheme = buildColorScheme(image)
	spec.Typography = buildTypography(template.FontScheme)

	for _, layout := range template.Layouts {
		hist := make(map[string]int, len(layout.Placeholders))
		for _, ph := range layout.Placeholders {
			hist[ph.Type]++
		}
		spec.LayoutTemplates[layout.Name] = LayoutTemplate{
			Name:             layout.Name,
			PlaceholderCount: len(layout.Placeholders),
			PlaceholderTypes: hist,
			Placeholders:     layout.Placeholders,
			UsagePattern:     InferUsagePattern(hist),
		}
	}

	density := "low"
	if image.LayoutPatterns.AvgElementsPerSlide >= 3 {
		density = "medium"
	}
	spec.DesignElements = DesignElements{
		SlideCount:              template.SlideCount,
		AverageElementsPerSlide: image.LayoutPatterns.AvgElementsPerSlide,
		LayoutConsistency:       image.LayoutPatterns.ElementCountVariance,
		ContentDensity:          density,
	}

	spec.BrandGuidelines = BrandGuidelines{
		ColorPalette: map[string]string{
			"primary":    spec.ColorScheme.BrandColors.Primary,
			"secondary":  spec.ColorScheme.BrandColors.Secondary,
			"accent":     spec.ColorScheme.BrandColors.Accent,
			"text_dark":  colorTextDark,
			"text_light": colorTextLight,
			"background": colorBackground,
		},
		TypographyScale: spec.Typography.RecommendedSizes,
		FontFamily:      spec.Typography.PrimaryFontFamily,
	}

	return spec
}

// buildColorScheme categorizes every palette color in rank order and
// picks brand colors first-match-per-bucket with literal fallbacks.
func buildColorScheme(image *ImageAnalysis) ColorScheme {
	byCategory := make(map[string][]CategorizedColor)

	for _, entry := range image.ColorPalette.MostCommonColors {
		cat, err := Categorize(entry.Hex)
		if err != nil {
			slog.Warn("skipping unparseable palette color", "color", entry.Hex, "error", err)
			continue
		}
		r, g, b, _ := HexToRGB(entry.Hex)
		byCategory[cat.Category] = append(byCategory[cat.Category], CategorizedColor{
			ColorCategory: cat,
			Hex:           entry.Hex,
			Frequency:     entry.Frequency,
			RGB:           [3]uint8{r, g, b},
		})
	}

	firstHex := func(category, fallback string) string {
		if colors := byCategory[category]; len(colors) > 0 {
			return colors[0].Hex
		}
		return fallback
	}

	truncate := func(colors []CategorizedColor, n int) []CategorizedColor {
		if len(colors) > n {
			return colors[:n]
		}
		return colors
	}

	return ColorScheme{
		PrimaryColors:       truncate(byCategory[CategoryPrimaryGreen], maxColorsPerBucket),
		SecondaryColors:     truncate(byCategory[CategorySecondaryGreen], maxColorsPerBucket),
		NeutralColors:       truncate(byCategory[CategoryNeutral], maxColorsPerBucket),
		LightColors:         truncate(byCategory[CategoryLight], maxColorsPerBucket),
		DarkColors:          truncate(byCategory[CategoryDark], maxColorsPerBucket),
		AccentColors:        truncate(byCategory[CategoryAccent], maxAccentColors),
		TotalUniqueColors:   image.ColorPalette.TotalUniqueColors,
		ColorConsistency:    image.ColorPalette.ColorConsistency,
		DominantColorFamily: "green",
		BrandColors: BrandColors{
			Primary:   firstHex(CategoryPrimaryGreen, fallbackPrimary),
			Secondary: firstHex(CategoryLight, fallbackSecondary),
			Accent:    firstHex(CategorySecondaryGreen, fallbackAccent),
		},
	}
}

// buildTypography resolves the font roles through the ordered fallback
// chain (major font, else minor font, else the literal fallback) and
// always emits the full fixed type scale.
func buildTypography(fonts FontSchemeAnalysis) Typography {
	major := resolveFont(fonts.MajorFont)
	minor := resolveFont(fonts.MinorFont)

	var primary string
	var families []string
	switch {
	case major == "" && minor == "":
		primary = fallbackFontFamily
		families = []string{fallbackFontFamily}
	case major != "" && minor != "" && major != minor:
		primary = major
		families = []string{major, minor}
	case major != "":
		primary = major
		families = []string{major}
	default:
		primary = minor
		families = []string{minor}
	}

	sizes := make(map[string]int, len(TypeScale))
	min, max := 0, 0
	for tier, size := range TypeScale {
		sizes[tier] = size
		if min == 0 || size < min {
			min = size
		}
		if size > max {
			max = size
		}
	}

	return Typography{
		PrimaryFontFamily: primary,
		FontFamilies:      families,
		RecommendedSizes:  sizes,
		SizeRange:         SizeRange{Min: min, Max: max},
	}
}

// InferUsagePattern classifies a layout by its placeholder histogram.
// Rules are checked in priority order; first match wins.
func InferUsagePattern(hist map[string]int) string {
	switch {
	case hist["TITLE"] > 0 && hist["SUBTITLE"] > 0:
		return UsageTitleSlide
	case hist["TITLE"] > 0 && hist["BODY"] > 0:
		return UsageContentSlide
	case hist["TITLE"] > 0 && hist["PICTURE"] > 0:
		return UsageImageSlide
	case hist["BODY"] > 1:
		return UsageMultiContent
	default:
		return UsageCustom
	}
}

// DeckDimensions is the canvas size of a DeckConfig, in EMU.
type DeckDimensions struct {
	Width  int64 `json:"width"`
	Height int64 `json:"height"`
}

// DeckFonts is the font block of a DeckConfig.
type DeckFonts struct {
	Primary string         `json:"primary"`
	Sizes   map[string]int `json:"sizes"`
}

// DeckConfig is the reduced configuration derived from a DesignSpec
// and consumed directly by the assembly stage. It is what
// enhanced_template_config.json contains.
type DeckConfig struct {
	SlideDimensions DeckDimensions            `json:"slide_dimensions"`
	Colors          map[string]string         `json:"colors"`
	Fonts           DeckFonts                 `json:"fonts"`
	Layouts         map[string]LayoutTemplate `json:"layouts,omitempty"`
}

// BuildDeckConfig reduces a DesignSpec to the assembly-stage config.
func BuildDeckConfig(spec *DesignSpec) *DeckConfig {
	return &DeckConfig{
		SlideDimensions: DeckDimensions{
			Width:  spec.SlideDimensions.WidthEMU,
			Height: spec.SlideDimensions.HeightEMU,
		},
		Colors: map[string]string{
			"primary":    spec.BrandGuidelines.ColorPalette["primary"],
			"secondary":  spec.BrandGuidelines.ColorPalette["secondary"],
			"accent":     spec.BrandGuidelines.ColorPalette["accent"],
			"text_dark":  spec.BrandGuidelines.ColorPalette["text_dark"],
			"text_light": spec.BrandGuidelines.ColorPalette["text_light"],
		},
		Fonts: DeckFonts{
			Primary: spec.Typography.PrimaryFontFamily,
			Sizes:   spec.Typography.RecommendedSizes,
		},
		Layouts: spec.LayoutTemplates,
	}
}

// DefaultDeckConfig is the configuration used when no
// enhanced_template_config.json is available.
func DefaultDeckConfig() *DeckConfig {
	return &DeckConfig{
		SlideDimensions: DeckDimensions{Width: Inch(10), Height: Inch(7.5)},
		Colors: map[string]string{
			"primary":    "#4472C4",
			"secondary":  "#E7E6E6",
			"accent":     "#70AD47",
			"text_dark":  "#000000",
			"text_light": "#FFFFFF",
		},
		Fonts: DeckFonts{
			Primary: "Calibri",
			Sizes: map[string]int{
				"title":      44,
				"heading":    32,
				"subheading": 24,
				"body":       18,
				"caption":    14,
			},
		},
	}
}

// ColorOr returns the named config color or the fallback.
func (c *DeckConfig) ColorOr(name, fallback string) string {
	if v := c.Colors[name]; v != "" {
		return v
	}
	return fallback
}

// FontSize returns the point size for a tier, defaulting to body (18).
func (c *DeckConfig) FontSize(tier string) int {
	if v := c.Fonts.Sizes[tier]; v > 0 {
		return v
	}
	return 18
}

// FontFamily returns the primary font family, defaulting to Calibri.
func (c *DeckConfig) FontFamily() string {
	if c.Fonts.Primary != "" {
		return c.Fonts.Primary
	}
	return "Calibri"
}
