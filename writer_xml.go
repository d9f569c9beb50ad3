package deckforge

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// DrawingML / presentationML namespace URIs.
const (
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	relTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relTypeExtProps       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relTypeSlideMaster    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	relTypeSlideLayout    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTypeSlide          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeTheme          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	relTypeImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
)

// esc escapes a string for use as XML character data or attribute value.
func esc(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return ""
	}
	return buf.String()
}

func contentTypesXML(layoutCount, slideCount int, media []mediaPart) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	sb.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	sb.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)

	seenExt := map[string]bool{}
	for _, m := range media {
		if seenExt[m.extension] {
			continue
		}
		seenExt[m.extension] = true
		sb.WriteString(fmt.Sprintf(`<Default Extension="%s" ContentType="image/%s"/>`, m.extension, m.extension))
	}

	sb.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	sb.WriteString(`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`)
	sb.WriteString(`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>`)
	sb.WriteString(`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)
	sb.WriteString(`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`)
	for i := 1; i <= layoutCount; i++ {
		sb.WriteString(fmt.Sprintf(`<Override PartName="/ppt/slideLayouts/slideLayout%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`, i))
	}
	for i := 1; i <= slideCount; i++ {
		sb.WriteString(fmt.Sprintf(`<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i))
	}
	sb.WriteString(`</Types>`)
	return sb.String()
}

func rootRelsXML() string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	sb.WriteString(fmt.Sprintf(`<Relationship Id="rId1" Type="%s" Target="ppt/presentation.xml"/>`, relTypeOfficeDocument))
	sb.WriteString(fmt.Sprintf(`<Relationship Id="rId2" Type="%s" Target="docProps/core.xml"/>`, relTypeCoreProps))
	sb.WriteString(fmt.Sprintf(`<Relationship Id="rId3" Type="%s" Target="docProps/app.xml"/>`, relTypeExtProps))
	sb.WriteString(`</Relationships>`)
	return sb.String()
}

func corePropsXML(props *DocumentProperties) string {
	const timeFormat = "2006-01-02T15:04:05Z"
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	sb.WriteString(fmt.Sprintf(`<dc:title>%s</dc:title>`, esc(props.Title)))
	sb.WriteString(fmt.Sprintf(`<dc:subject>%s</dc:subject>`, esc(props.Subject)))
	sb.WriteString(fmt.Sprintf(`<dc:creator>%s</dc:creator>`, esc(props.Creator)))
	sb.WriteString(fmt.Sprintf(`<cp:keywords>%s</cp:keywords>`, esc(props.Keywords)))
	sb.WriteString(fmt.Sprintf(`<dc:description>%s</dc:description>`, esc(props.Description)))
	sb.WriteString(fmt.Sprintf(`<cp:lastModifiedBy>%s</cp:lastModifiedBy>`, esc(props.LastModifiedBy)))
	sb.WriteString(fmt.Sprintf(`<dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>`, props.Created.UTC().Format(timeFormat)))
	sb.WriteString(fmt.Sprintf(`<dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>`, props.Modified.UTC().Format(timeFormat)))
	sb.WriteString(fmt.Sprintf(`<cp:category>%s</cp:category>`, esc(props.Category)))
	sb.WriteString(`</cp:coreProperties>`)
	return sb.String()
}

func appPropsXML(p *Presentation) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties" xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">`)
	sb.WriteString(fmt.Sprintf(`<Slides>%d</Slides>`, p.GetSlideCount()))
	sb.WriteString(fmt.Sprintf(`<Application>deckforge %d.%d.%d</Application>`, VersionMajor, VersionMinor, VersionPatch))
	sb.WriteString(`</Properties>`)
	return sb.String()
}

func presentationXML(p *Presentation, slideCount int) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(fmt.Sprintf(`<p:presentation xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, nsA, nsR, nsP))
	sb.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	if slideCount > 0 {
		sb.WriteString(`<p:sldIdLst>`)
		for i := 0; i < slideCount; i++ {
			// Slide IDs start at 256 by convention; rIds follow the master.
			sb.WriteString(fmt.Sprintf(`<p:sldId id="%d" r:id="rId%d"/>`, 256+i, 2+i))
		}
		sb.WriteString(`</p:sldIdLst>`)
	}
	layout := p.GetLayout()
	sb.WriteString(fmt.Sprintf(`<p:sldSz cx="%d" cy="%d"/>`, layout.CX, layout.CY))
	sb.WriteString(`<p:notesSz cx="6858000" cy="9144000"/>`)
	sb.WriteString(`</p:presentation>`)
	return sb.String()
}

func presentationRelsXML(slideCount int) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	sb.WriteString(fmt.Sprintf(`<Relationship Id="rId1" Type="%s" Target="slideMasters/slideMaster1.xml"/>`, relTypeSlideMaster))
	for i := 0; i < slideCount; i++ {
		sb.WriteString(fmt.Sprintf(`<Relationship Id="rId%d" Type="%s" Target="slides/slide%d.xml"/>`, 2+i, relTypeSlide, i+1))
	}
	sb.WriteString(fmt.Sprintf(`<Relationship Id="rId%d" Type="%s" Target="theme/theme1.xml"/>`, 2+slideCount, relTypeTheme))
	sb.WriteString(`</Relationships>`)
	return sb.String()
}

// themeColorOrder is the fixed role order required by the theme schema.
var themeColorOrder = []string{
	"dk1", "lt1", "dk2", "lt2",
	"accent1", "accent2", "accent3", "accent4", "accent5", "accent6",
	"hlink", "folHlink",
}

// defaultThemeColors are used for roles a template theme did not define.
var defaultThemeColors = map[string]string{
	"dk1": "000000", "lt1": "FFFFFF", "dk2": "44546A", "lt2": "E7E6E6",
	"accent1": "4472C4", "accent2": "ED7D31", "accent3": "A5A5A5",
	"accent4": "FFC000", "accent5": "5B9BD5", "accent6": "70AD47",
	"hlink": "0563C1", "folHlink": "954F72",
}

// themeXML emits ppt/theme/theme1.xml. When a theme record exists its
// colors and fonts are carried through; missing roles fall back to the
// application defaults. The format scheme is the minimal valid one.
func themeXML(theme *ThemeRecord) string {
	colorFor := func(role string) string {
		if theme != nil {
			if v := theme.Colors[role]; v != "" {
				return strings.ToUpper(v)
			}
		}
		return defaultThemeColors[role]
	}
	fontFor := func(fonts map[string]string, script, fallback string) string {
		if fonts != nil {
			if v := fonts[script]; v != "" {
				return v
			}
		}
		return fallback
	}
	var majorFonts, minorFonts map[string]string
	if theme != nil {
		majorFonts = theme.MajorFonts
		minorFonts = theme.MinorFonts
	}

	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(fmt.Sprintf(`<a:theme xmlns:a="%s" name="Office Theme">`, nsA))
	sb.WriteString(`<a:themeElements><a:clrScheme name="Office">`)
	for _, role := range themeColorOrder {
		val := colorFor(role)
		switch role {
		case "dk1":
			sb.WriteString(fmt.Sprintf(`<a:dk1><a:sysClr val="windowText" lastClr="%s"/></a:dk1>`, val))
		case "lt1":
			sb.WriteString(fmt.Sprintf(`<a:lt1><a:sysClr val="window" lastClr="%s"/></a:lt1>`, val))
		default:
			sb.WriteString(fmt.Sprintf(`<a:%s><a:srgbClr val="%s"/></a:%s>`, role, val, role))
		}
	}
	sb.WriteString(`</a:clrScheme><a:fontScheme name="Office">`)
	sb.WriteString(fmt.Sprintf(`<a:majorFont><a:latin typeface="%s"/><a:ea typeface="%s"/><a:cs typeface="%s"/></a:majorFont>`,
		esc(fontFor(majorFonts, "latin", "Calibri Light")),
		esc(fontFor(majorFonts, "ea", "")),
		esc(fontFor(majorFonts, "cs", ""))))
	sb.WriteString(fmt.Sprintf(`<a:minorFont><a:latin typeface="%s"/><a:ea typeface="%s"/><a:cs typeface="%s"/></a:minorFont>`,
		esc(fontFor(minorFonts, "latin", "Calibri")),
		esc(fontFor(minorFonts, "ea", "")),
		esc(fontFor(minorFonts, "cs", ""))))
	sb.WriteString(`</a:fontScheme>`)
	sb.WriteString(`<a:fmtScheme name="Office">`)
	sb.WriteString(`<a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst>`)
	sb.WriteString(`<a:lnStyleLst><a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln></a:lnStyleLst>`)
	sb.WriteString(`<a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst>`)
	sb.WriteString(`<a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst>`)
	sb.WriteString(`</a:fmtScheme></a:themeElements></a:theme>`)
	return sb.String()
}

func masterXML(layoutCount int) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(fmt.Sprintf(`<p:sldMaster xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, nsA, nsR, nsP))
	sb.WriteString(`<p:cSld><p:spTree>`)
	sb.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`)
	sb.WriteString(`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`)
	sb.WriteString(`</p:spTree></p:cSld>`)
	sb.WriteString(`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>`)
	sb.WriteString(`<p:sldLayoutIdLst>`)
	for i := 0; i < layoutCount; i++ {
		sb.WriteString(fmt.Sprintf(`<p:sldLayoutId id="%d" r:id="rId%d"/>`, 2147483649+i, i+1))
	}
	sb.WriteString(`</p:sldLayoutIdLst>`)
	sb.WriteString(`</p:sldMaster>`)
	return sb.String()
}

func masterRelsXML(layoutCount int) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for i := 0; i < layoutCount; i++ {
		sb.WriteString(fmt.Sprintf(`<Relationship Id="rId%d" Type="%s" Target="../slideLayouts/slideLayout%d.xml"/>`, i+1, relTypeSlideLayout, i+1))
	}
	sb.WriteString(fmt.Sprintf(`<Relationship Id="rId%d" Type="%s" Target="../theme/theme1.xml"/>`, layoutCount+1, relTypeTheme))
	sb.WriteString(`</Relationships>`)
	return sb.String()
}

// rawPlaceholderType maps a normalized placeholder name back to the
// type attribute value the layout XML carries. BODY placeholders carry
// no type attribute.
func rawPlaceholderType(normalized string) string {
	switch normalized {
	case "TITLE":
		return "title"
	case "SUBTITLE":
		return "subTitle"
	case "PICTURE":
		return "pic"
	case "BODY":
		return ""
	default:
		return strings.ToLower(normalized)
	}
}

// layoutPartXML emits one slideLayout part carrying the layout's name
// and placeholder inventory.
func layoutPartXML(layout *SlideLayout) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(fmt.Sprintf(`<p:sldLayout xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"`, nsA, nsR, nsP))
	if layout.Type != "" {
		sb.WriteString(fmt.Sprintf(` type="%s"`, esc(layout.Type)))
	}
	sb.WriteString(`>`)
	sb.WriteString(fmt.Sprintf(`<p:cSld name="%s"><p:spTree>`, esc(layout.Name)))
	sb.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`)
	sb.WriteString(`<p:grpSpPr/>`)
	for i, ph := range layout.Placeholders {
		sb.WriteString(`<p:sp><p:nvSpPr>`)
		sb.WriteString(fmt.Sprintf(`<p:cNvPr id="%d" name="%s"/>`, i+2, esc(ph.Name)))
		sb.WriteString(`<p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr>`)
		sb.WriteString(`<p:nvPr><p:ph`)
		if raw := rawPlaceholderType(ph.Type); raw != "" {
			sb.WriteString(fmt.Sprintf(` type="%s"`, raw))
		}
		if ph.Index > 0 {
			sb.WriteString(fmt.Sprintf(` idx="%d"`, ph.Index))
		}
		sb.WriteString(`/></p:nvPr></p:nvSpPr>`)
		sb.WriteString(`<p:spPr/><p:txBody><a:bodyPr/><a:lstStyle/><a:p><a:endParaRPr/></a:p></p:txBody></p:sp>`)
	}
	sb.WriteString(`</p:spTree></p:cSld>`)
	sb.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	sb.WriteString(`</p:sldLayout>`)
	return sb.String()
}

func layoutRelsXML() string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	sb.WriteString(fmt.Sprintf(`<Relationship Id="rId1" Type="%s" Target="../slideMasters/slideMaster1.xml"/>`, relTypeSlideMaster))
	sb.WriteString(`</Relationships>`)
	return sb.String()
}
