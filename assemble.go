package deckforge

import (
	"fmt"
	"log/slog"
	"strings"
)

// AssemblyReport summarizes one assembly run: how many slides the plan
// named, how many were built, and what was skipped or degraded along
// the way. Warnings are advisory; a non-empty Skipped list means some
// content could not be rendered at all.
type AssemblyReport struct {
	SlidesPlanned int
	SlidesBuilt   int
	Skipped       []string
	Warnings      []string
}

// Assembler builds slides into a presentation from a mapping config
// and a content record, styling everything from a DeckConfig.
type Assembler struct {
	pres   *Presentation
	config *DeckConfig
	logger *slog.Logger
}

// NewAssembler creates an assembler targeting the given presentation.
// A nil config uses the built-in defaults; a nil logger uses the
// process default.
func NewAssembler(pres *Presentation, config *DeckConfig, logger *slog.Logger) *Assembler {
	if config == nil {
		config = DefaultDeckConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{pres: pres, config: config, logger: logger}
}

// Assemble runs the slide plan against the content record. Each slide
// passes through four steps: layout selection, template rendering,
// placeholder binding, and style application. A slide whose template
// rendering fails is skipped and logged; the remaining slides still
// build. Layout selection and style application never abort a slide.
func (a *Assembler) Assemble(mapping *MappingConfig, record map[string]any) *AssemblyReport {
	report := &AssemblyReport{SlidesPlanned: len(mapping.Slides)}

	if a.config.SlideDimensions.Width > 0 && a.config.SlideDimensions.Height > 0 {
		a.pres.GetLayout().SetCustomLayout(a.config.SlideDimensions.Width, a.config.SlideDimensions.Height)
	}

	for _, sc := range mapping.Slides {
		if err := a.buildSlide(sc, record, report); err != nil {
			a.logger.Error("skipping slide", "slide", sc.Key, "error", err)
			report.Skipped = append(report.Skipped, sc.Key)
			continue
		}
		report.SlidesBuilt++
	}
	return report
}

// buildSlide assembles one slide. Only a rendering failure returns an
// error; missing data paths and styling problems degrade with warnings.
func (a *Assembler) buildSlide(sc SlideConfig, record map[string]any, report *AssemblyReport) error {
	layout := a.selectLayout(sc, report)

	slide := newSlide()
	slide.SetName(sc.Key)
	if layout != nil {
		slide.layoutName = layout.Name
	}

	for i, ph := range sc.Placeholders {
		if err := a.bindPlaceholder(slide, layout, sc, ph, i, record, report); err != nil {
			return err
		}
	}

	a.bindTitleFallback(slide, layout, sc, record)
	a.applyBackground(slide)
	a.pres.AddSlide(slide)
	return nil
}

// selectLayout resolves the slide's layout with ordered fallback. An
// unknown layout name is logged and falls back to the default index;
// selection itself never fails.
func (a *Assembler) selectLayout(sc SlideConfig, report *AssemblyReport) *SlideLayout {
	if sc.LayoutName != "" {
		if _, err := a.pres.GetLayoutByName(sc.LayoutName); err != nil {
			msg := fmt.Sprintf("layout %q not found for slide %s, using default layout %d", sc.LayoutName, sc.Key, sc.LayoutIndex)
			a.logger.Warn("layout fallback", "slide", sc.Key, "layout", sc.LayoutName, "default_idx", sc.LayoutIndex)
			report.Warnings = append(report.Warnings, msg)
		}
	}
	return a.pres.LayoutByNameOrDefault(sc.LayoutName, sc.LayoutIndex)
}

// bindPlaceholder resolves one mapping and creates the bound shape.
// A missing data path is advisory (warned, placeholder left out); a
// template rendering failure is returned so the slide is skipped.
func (a *Assembler) bindPlaceholder(slide *Slide, layout *SlideLayout, sc SlideConfig, ph PlaceholderMapping, slot int, record map[string]any, report *AssemblyReport) error {
	value, ok := Resolve(record, ph.Path)
	if !ok {
		msg := fmt.Sprintf("missing data for path: %s", ph.Path)
		a.logger.Warn("placeholder unbound", "slide", sc.Key, "path", ph.Path)
		report.Warnings = append(report.Warnings, msg)
		return nil
	}

	switch ph.Type {
	case ContentTitle, ContentSubtitle, ContentText:
		text, ok := scalarString(value)
		if !ok {
			report.Warnings = append(report.Warnings, fmt.Sprintf("text data must be a scalar: %s", ph.Path))
			a.logger.Warn("placeholder unbound", "slide", sc.Key, "path", ph.Path, "reason", "non-scalar text value")
			return nil
		}
		if ph.Substitute {
			rendered, err := Substitute(text, record)
			if err != nil {
				return fmt.Errorf("rendering %s: %w", ph.Path, err)
			}
			text = rendered
		}
		shape := slide.CreatePlaceholderShape(placeholderTypeFor(ph.Type, layout, ph.Index))
		shape.SetPlaceholderIndex(ph.Index)
		shape.SetText(text)
		a.placeShape(&shape.BaseShape, ph.Type, slot)
		a.styleTextShape(sc.Key, &shape.RichTextShape, ph)

	case ContentBulletList:
		items, ok := ResolveStringList(record, ph.Path)
		if !ok {
			report.Warnings = append(report.Warnings, fmt.Sprintf("bullet list data must be a list: %s", ph.Path))
			a.logger.Warn("placeholder unbound", "slide", sc.Key, "path", ph.Path, "reason", "not a string list")
			return nil
		}
		shape := slide.CreatePlaceholderShape(placeholderTypeFor(ph.Type, layout, ph.Index))
		shape.SetPlaceholderIndex(ph.Index)
		bindBulletList(shape, items)
		a.placeShape(&shape.BaseShape, ph.Type, slot)
		a.styleTextShape(sc.Key, &shape.RichTextShape, ph)

	case ContentTable:
		columns := rowColumns(value)
		rows, ok := ResolveRows(record, ph.Path, columns)
		if !ok {
			report.Warnings = append(report.Warnings, fmt.Sprintf("table data must be a list: %s", ph.Path))
			a.logger.Warn("placeholder unbound", "slide", sc.Key, "path", ph.Path, "reason", "not a row list")
			return nil
		}
		table := a.buildTable(columns, rows)
		a.placeShape(&table.BaseShape, ph.Type, slot)
		slide.AddShape(table)

	case ContentImage:
		label, _ := scalarString(value)
		data, err := PlaceholderImage(a.config.ColorOr("secondary", fallbackSecondary), label)
		if err != nil {
			// Image generation failure degrades like a styling failure.
			a.logger.Warn("image placeholder failed", "slide", sc.Key, "path", ph.Path, "error", err)
			report.Warnings = append(report.Warnings, fmt.Sprintf("could not generate image for: %s", ph.Path))
			return nil
		}
		img := NewDrawingShape().SetImageData(data, "image/png")
		img.SetName(fmt.Sprintf("%s image", sc.Key))
		a.placeShape(&img.BaseShape, ph.Type, slot)
		slide.AddShape(img)

	default:
		// Unreachable for configs loaded through ContentType.UnmarshalJSON;
		// guards hand-built configs.
		report.Warnings = append(report.Warnings, fmt.Sprintf("unknown content type %q for: %s", ph.Type, ph.Path))
	}
	return nil
}

// bindTitleFallback binds the slide title from the config's title path
// when no explicit title mapping exists. An unresolvable path is
// silent: the fallback is opportunistic, not a binding contract.
func (a *Assembler) bindTitleFallback(slide *Slide, layout *SlideLayout, sc SlideConfig, record map[string]any) {
	if sc.TitlePath == "" || sc.HasTitleMapping() {
		return
	}
	text, ok := ResolveString(record, sc.TitlePath)
	if !ok {
		a.logger.Debug("title path did not resolve", "slide", sc.Key, "path", sc.TitlePath)
		return
	}
	shape := slide.CreatePlaceholderShape(placeholderTypeFor(ContentTitle, layout, 0))
	shape.SetText(text)
	a.placeShape(&shape.BaseShape, ContentTitle, 0)
	a.styleTextShape(sc.Key, &shape.RichTextShape, PlaceholderMapping{Type: ContentTitle})
}

// bindBulletList writes list items into a placeholder: the first item
// replaces the existing content, the rest append as level-0 paragraphs.
func bindBulletList(shape *PlaceholderShape, items []string) {
	if len(items) == 0 {
		shape.Clear()
		return
	}
	shape.SetText(items[0])
	for _, item := range items[1:] {
		para := shape.CreateParagraph()
		para.GetAlignment().SetLevel(0)
		para.CreateTextRun(item)
	}
}

// buildTable creates a table shape with a bold header row built from
// the column keys, filled with the brand primary color.
func (a *Assembler) buildTable(columns []string, rows [][]string) *TableShape {
	table := NewTableShape(len(rows)+1, len(columns))
	headerFill := NewColor(a.config.ColorOr("primary", fallbackPrimary))
	headerText := NewColor(a.config.ColorOr("text_light", colorTextLight))

	for c, col := range columns {
		cell := table.GetCell(0, c)
		cell.GetFill().SetSolid(headerFill)
		run := cell.GetParagraphs()[0].CreateTextRun(headerLabel(col))
		run.GetFont().
			SetName(a.config.FontFamily()).
			SetSize(a.config.FontSize("body")).
			SetBold(true).
			SetColor(headerText)
	}

	bodyColor := NewColor(a.config.ColorOr("text_dark", colorTextDark))
	for r, row := range rows {
		for c := range columns {
			text := ""
			if c < len(row) {
				text = row[c]
			}
			run := table.GetCell(r+1, c).GetParagraphs()[0].CreateTextRun(text)
			run.GetFont().
				SetName(a.config.FontFamily()).
				SetSize(a.config.FontSize("caption")).
				SetColor(bodyColor)
		}
	}
	return table
}

// headerLabel turns a column key like "annual_savings" into "Annual Savings".
func headerLabel(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// styleTextShape applies the deck typography to every run of a bound
// text shape: tier size, primary font family, and dark text color.
// Mapping-level overrides win over the tier defaults. A bad override
// color degrades to black inside NewColor; styling never aborts the slide.
func (a *Assembler) styleTextShape(slideKey string, shape *RichTextShape, ph PlaceholderMapping) {
	size := a.config.FontSize(ph.Type.Tier())
	family := a.config.FontFamily()
	textColor := NewColor(a.config.ColorOr("text_dark", colorTextDark))
	bold := ph.Type == ContentTitle

	if ph.Formatting != nil {
		if ph.Formatting.FontSize > 0 {
			size = ph.Formatting.FontSize
		}
		if ph.Formatting.Bold {
			bold = true
		}
		if ph.Formatting.Color != "" {
			textColor = NewColor(ph.Formatting.Color)
		}
	}

	styled := 0
	for _, para := range shape.GetParagraphs() {
		for _, elem := range para.GetElements() {
			run, ok := elem.(*TextRun)
			if !ok {
				continue
			}
			run.GetFont().
				SetName(family).
				SetSize(size).
				SetBold(bold).
				SetColor(textColor)
			styled++
		}
	}
	if styled == 0 {
		a.logger.Warn("styling applied to no runs", "slide", slideKey, "placeholder_idx", ph.Index)
	}
}

// applyBackground sets the slide background from the deck config only
// when a background color is configured and is not pure white. White
// backgrounds are the application default and are left implicit.
func (a *Assembler) applyBackground(slide *Slide) {
	bg := a.config.Colors["background"]
	if bg == "" {
		return
	}
	if strings.EqualFold(strings.TrimPrefix(bg, "#"), "ffffff") {
		return
	}
	slide.GetBackground().SetSolid(NewColor(bg))
}

// placeShape assigns a default frame by content kind and slot order.
// Geometry is intentionally simple: titles across the top, subtitles
// beneath, body content below the title band, images in the right half.
func (a *Assembler) placeShape(shape *BaseShape, ct ContentType, slot int) {
	cw := a.config.SlideDimensions.Width
	ch := a.config.SlideDimensions.Height
	if cw <= 0 || ch <= 0 {
		cw, ch = Inch(10), Inch(7.5)
	}
	margin := Inch(0.5)

	switch ct {
	case ContentTitle:
		shape.SetPosition(margin, Inch(0.3))
		shape.SetSize(cw-2*margin, Inch(1.25))
	case ContentSubtitle:
		shape.SetPosition(margin, Inch(1.7))
		shape.SetSize(cw-2*margin, Inch(1.0))
	case ContentImage:
		shape.SetPosition(cw/2+margin/2, Inch(1.8))
		shape.SetSize(cw/2-margin-margin/2, ch-Inch(2.4))
	default:
		// Body-band content stacks below the title, shifted per slot so
		// two content placeholders on one slide do not overlap.
		y := Inch(1.8) + int64(max(slot-1, 0))*Inch(0.4)
		shape.SetPosition(margin, y)
		shape.SetSize(cw/2-margin, ch-y-margin)
	}
}

// placeholderTypeFor maps a content type to the slide-level placeholder
// type, preferring what the chosen layout declares at that index.
func placeholderTypeFor(ct ContentType, layout *SlideLayout, idx int) PlaceholderType {
	if layout != nil {
		for _, ph := range layout.Placeholders {
			if ph.Index != idx {
				continue
			}
			switch ph.Type {
			case "TITLE":
				return PlaceholderTitle
			case "SUBTITLE":
				return PlaceholderSubTitle
			case "PICTURE":
				return PlaceholderPicture
			case "BODY":
				return PlaceholderBody
			}
		}
	}
	switch ct {
	case ContentTitle:
		return PlaceholderTitle
	case ContentSubtitle:
		return PlaceholderSubTitle
	case ContentImage:
		return PlaceholderPicture
	default:
		return PlaceholderBody
	}
}
