package deckforge

import (
	"fmt"
	"strings"
)

// slideXML emits one ppt/slides/slideN.xml part. Shape kinds map to
// their DrawingML forms: placeholder and rich text shapes to p:sp,
// tables to p:graphicFrame, images to p:pic. Image shapes reference
// media through r:embed ids that slideRelsXML assigns in the same
// encounter order.
func slideXML(slide *Slide, media []mediaPart) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(fmt.Sprintf(`<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, nsA, nsR, nsP))
	sb.WriteString(`<p:cSld>`)

	if slide.HasBackground() && slide.GetBackground().Type == FillSolid {
		sb.WriteString(`<p:bg><p:bgPr><a:solidFill>`)
		sb.WriteString(fmt.Sprintf(`<a:srgbClr val="%s"/>`, slide.GetBackground().Color.RGB()))
		sb.WriteString(`</a:solidFill><a:effectLst/></p:bgPr></p:bg>`)
	}

	sb.WriteString(`<p:spTree>`)
	sb.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`)
	sb.WriteString(`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`)

	slideMedia := mediaFor(slide, media)
	imageRel := 0
	shapeID := 2

	for _, shape := range slide.GetShapes() {
		switch sh := shape.(type) {
		case *PlaceholderShape:
			writeTextShape(&sb, shapeID, sh.GetName(), sh, &sh.RichTextShape)
		case *RichTextShape:
			writeTextShape(&sb, shapeID, sh.GetName(), nil, sh)
		case *TableShape:
			writeTableShape(&sb, shapeID, sh)
		case *DrawingShape:
			if imageRel < len(slideMedia) {
				// rId1 is the layout; images follow.
				writePicShape(&sb, shapeID, sh, fmt.Sprintf("rId%d", imageRel+2))
				imageRel++
			}
		}
		shapeID++
	}

	sb.WriteString(`</p:spTree></p:cSld>`)
	sb.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	sb.WriteString(`</p:sld>`)
	return sb.String()
}

// slideRelsXML emits the per-slide relationships: the layout at rId1,
// then each embedded image.
func slideRelsXML(layoutRef int, slide *Slide, media []mediaPart) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	sb.WriteString(fmt.Sprintf(`<Relationship Id="rId1" Type="%s" Target="../slideLayouts/slideLayout%d.xml"/>`, relTypeSlideLayout, layoutRef))
	for i, m := range mediaFor(slide, media) {
		target := strings.TrimPrefix(m.partName, "ppt/")
		sb.WriteString(fmt.Sprintf(`<Relationship Id="rId%d" Type="%s" Target="../%s"/>`, i+2, relTypeImage, target))
	}
	sb.WriteString(`</Relationships>`)
	return sb.String()
}

// writeTextShape emits a p:sp for a rich text or placeholder shape.
// ph is nil for plain rich text.
func writeTextShape(sb *strings.Builder, id int, name string, ph *PlaceholderShape, rt *RichTextShape) {
	sb.WriteString(`<p:sp><p:nvSpPr>`)
	sb.WriteString(fmt.Sprintf(`<p:cNvPr id="%d" name="%s"/>`, id, esc(name)))
	sb.WriteString(`<p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr>`)
	if ph != nil {
		sb.WriteString(`<p:ph`)
		if t := string(ph.GetPlaceholderType()); t != "" && t != string(PlaceholderBody) {
			sb.WriteString(fmt.Sprintf(` type="%s"`, esc(t)))
		}
		if ph.GetPlaceholderIndex() > 0 {
			sb.WriteString(fmt.Sprintf(` idx="%d"`, ph.GetPlaceholderIndex()))
		}
		sb.WriteString(`/>`)
	}
	sb.WriteString(`</p:nvPr></p:nvSpPr>`)

	writeSpPr(sb, rt.base())

	sb.WriteString(`<p:txBody><a:bodyPr`)
	if !rt.GetWordWrap() {
		sb.WriteString(` wrap="none"`)
	}
	sb.WriteString(`/><a:lstStyle/>`)
	writeParagraphs(sb, rt.GetParagraphs())
	sb.WriteString(`</p:txBody></p:sp>`)
}

// writeSpPr emits shape properties: frame geometry and solid fill when set.
func writeSpPr(sb *strings.Builder, base *BaseShape) {
	sb.WriteString(`<p:spPr>`)
	if base.GetWidth() > 0 || base.GetHeight() > 0 {
		sb.WriteString(fmt.Sprintf(`<a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`,
			base.GetOffsetX(), base.GetOffsetY(), base.GetWidth(), base.GetHeight()))
	}
	if f := base.GetFill(); f.Type == FillSolid {
		sb.WriteString(fmt.Sprintf(`<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, f.Color.RGB()))
	}
	sb.WriteString(`</p:spPr>`)
}

func writeParagraphs(sb *strings.Builder, paragraphs []*Paragraph) {
	if len(paragraphs) == 0 {
		sb.WriteString(`<a:p><a:endParaRPr/></a:p>`)
		return
	}
	for _, para := range paragraphs {
		sb.WriteString(`<a:p>`)
		align := para.GetAlignment()
		if align.Level > 0 || align.Horizontal != HorizontalLeft {
			sb.WriteString(`<a:pPr`)
			if align.Level > 0 {
				sb.WriteString(fmt.Sprintf(` lvl="%d"`, align.Level))
			}
			if align.Horizontal != HorizontalLeft {
				sb.WriteString(fmt.Sprintf(` algn="%s"`, align.Horizontal))
			}
			sb.WriteString(`/>`)
		}
		for _, elem := range para.GetElements() {
			if run, ok := elem.(*TextRun); ok {
				writeRun(sb, run)
			}
		}
		sb.WriteString(`</a:p>`)
	}
}

func writeRun(sb *strings.Builder, run *TextRun) {
	font := run.GetFont()
	sb.WriteString(fmt.Sprintf(`<a:r><a:rPr lang="en-US" sz="%d"`, font.Size*100))
	if font.Bold {
		sb.WriteString(` b="1"`)
	}
	if font.Italic {
		sb.WriteString(` i="1"`)
	}
	sb.WriteString(`>`)
	sb.WriteString(fmt.Sprintf(`<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, font.Color.RGB()))
	if font.Name != "" {
		sb.WriteString(fmt.Sprintf(`<a:latin typeface="%s"/>`, esc(font.Name)))
	}
	sb.WriteString(`</a:rPr>`)
	sb.WriteString(fmt.Sprintf(`<a:t>%s</a:t></a:r>`, esc(run.GetText())))
}

// defaultTableRowHeight is 0.4 inch in EMU.
const defaultTableRowHeight = 365760

func writeTableShape(sb *strings.Builder, id int, table *TableShape) {
	sb.WriteString(`<p:graphicFrame><p:nvGraphicFramePr>`)
	name := table.GetName()
	if name == "" {
		name = fmt.Sprintf("Table %d", id)
	}
	sb.WriteString(fmt.Sprintf(`<p:cNvPr id="%d" name="%s"/>`, id, esc(name)))
	sb.WriteString(`<p:cNvGraphicFramePr><a:graphicFrameLocks noGrp="1"/></p:cNvGraphicFramePr><p:nvPr/></p:nvGraphicFramePr>`)
	sb.WriteString(fmt.Sprintf(`<p:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></p:xfrm>`,
		table.GetOffsetX(), table.GetOffsetY(), table.GetWidth(), table.GetHeight()))
	sb.WriteString(`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table">`)
	sb.WriteString(`<a:tbl><a:tblPr firstRow="1" bandRow="1"/>`)

	cols := table.GetNumCols()
	colWidth := int64(0)
	if cols > 0 {
		if table.GetWidth() > 0 {
			colWidth = table.GetWidth() / int64(cols)
		} else {
			colWidth = Inch(2)
		}
	}
	sb.WriteString(`<a:tblGrid>`)
	for c := 0; c < cols; c++ {
		sb.WriteString(fmt.Sprintf(`<a:gridCol w="%d"/>`, colWidth))
	}
	sb.WriteString(`</a:tblGrid>`)

	for _, row := range table.GetRows() {
		sb.WriteString(fmt.Sprintf(`<a:tr h="%d">`, defaultTableRowHeight))
		for _, cell := range row {
			sb.WriteString(`<a:tc><a:txBody><a:bodyPr/><a:lstStyle/>`)
			writeParagraphs(sb, cell.GetParagraphs())
			sb.WriteString(`</a:txBody><a:tcPr>`)
			if f := cell.GetFill(); f != nil && f.Type == FillSolid {
				sb.WriteString(fmt.Sprintf(`<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, f.Color.RGB()))
			}
			sb.WriteString(`</a:tcPr></a:tc>`)
		}
		sb.WriteString(`</a:tr>`)
	}
	sb.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
}

func writePicShape(sb *strings.Builder, id int, pic *DrawingShape, relID string) {
	name := pic.GetName()
	if name == "" {
		name = fmt.Sprintf("Picture %d", id)
	}
	sb.WriteString(`<p:pic><p:nvPicPr>`)
	sb.WriteString(fmt.Sprintf(`<p:cNvPr id="%d" name="%s" descr="%s"/>`, id, esc(name), esc(pic.GetDescription())))
	sb.WriteString(`<p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr><p:nvPr/></p:nvPicPr>`)
	sb.WriteString(fmt.Sprintf(`<p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`, relID))
	sb.WriteString(`<p:spPr>`)
	sb.WriteString(fmt.Sprintf(`<a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`,
		pic.GetOffsetX(), pic.GetOffsetY(), pic.GetWidth(), pic.GetHeight()))
	sb.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`)
	sb.WriteString(`</p:spPr></p:pic>`)
}
