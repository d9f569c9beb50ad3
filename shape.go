package deckforge

import (
	"strings"
)

// Shape is the interface that all shapes implement.
type Shape interface {
	GetType() ShapeType
	GetOffsetX() int64
	GetOffsetY() int64
	GetWidth() int64
	GetHeight() int64
	GetName() string
	// base returns the underlying BaseShape (unexported, internal use only).
	base() *BaseShape
}

// ShapeType represents the type of shape.
type ShapeType int

const (
	ShapeTypeRichText ShapeType = iota
	ShapeTypeDrawing
	ShapeTypeTable
	ShapeTypePlaceholder
)

// BaseShape contains common shape properties.
type BaseShape struct {
	name        string
	description string
	offsetX     int64 // in EMU
	offsetY     int64 // in EMU
	width       int64 // in EMU
	height      int64 // in EMU
	fill        *Fill
}

func (b *BaseShape) GetOffsetX() int64 { return b.offsetX }
func (b *BaseShape) GetOffsetY() int64 { return b.offsetY }
func (b *BaseShape) GetWidth() int64   { return b.width }
func (b *BaseShape) GetHeight() int64  { return b.height }
func (b *BaseShape) GetName() string   { return b.name }
func (b *BaseShape) base() *BaseShape  { return b }

func (b *BaseShape) SetName(n string) *BaseShape { b.name = n; return b }

// SetPosition sets both offset X and Y in EMU.
func (b *BaseShape) SetPosition(x, y int64) *BaseShape {
	b.offsetX = x
	b.offsetY = y
	return b
}

// SetSize sets both width and height in EMU.
func (b *BaseShape) SetSize(w, h int64) *BaseShape {
	b.width = w
	b.height = h
	return b
}

func (b *BaseShape) GetDescription() string  { return b.description }
func (b *BaseShape) SetDescription(d string) { b.description = d }

func (b *BaseShape) GetFill() *Fill {
	if b.fill == nil {
		b.fill = NewFill()
	}
	return b.fill
}

func (b *BaseShape) SetFill(f *Fill) { b.fill = f }

// RichTextShape represents a rich text shape.
type RichTextShape struct {
	BaseShape
	paragraphs      []*Paragraph
	activeParagraph int
	wordWrap        bool
}

func (r *RichTextShape) GetType() ShapeType { return ShapeTypeRichText }

// NewRichTextShape creates a new rich text shape.
func NewRichTextShape() *RichTextShape {
	return &RichTextShape{
		paragraphs: []*Paragraph{NewParagraph()},
		wordWrap:   true,
	}
}

// GetActiveParagraph returns the active paragraph.
func (r *RichTextShape) GetActiveParagraph() *Paragraph {
	if len(r.paragraphs) == 0 {
		r.paragraphs = append(r.paragraphs, NewParagraph())
	}
	return r.paragraphs[r.activeParagraph]
}

// CreateParagraph creates a new paragraph and makes it active.
func (r *RichTextShape) CreateParagraph() *Paragraph {
	p := NewParagraph()
	r.paragraphs = append(r.paragraphs, p)
	r.activeParagraph = len(r.paragraphs) - 1
	return p
}

// GetParagraphs returns all paragraphs.
func (r *RichTextShape) GetParagraphs() []*Paragraph {
	return r.paragraphs
}

// CreateTextRun creates a text run in the active paragraph.
func (r *RichTextShape) CreateTextRun(text string) *TextRun {
	return r.GetActiveParagraph().CreateTextRun(text)
}

// SetWordWrap sets word wrap.
func (r *RichTextShape) SetWordWrap(wrap bool) {
	r.wordWrap = wrap
}

// GetWordWrap returns word wrap setting.
func (r *RichTextShape) GetWordWrap() bool {
	return r.wordWrap
}

// ExtractText returns the concatenated text of all paragraphs,
// one line per paragraph.
func (r *RichTextShape) ExtractText() string {
	return strings.Join(extractParagraphsText(r.paragraphs), "\n")
}

// Paragraph represents a text paragraph.
type Paragraph struct {
	elements  []ParagraphElement
	alignment *Alignment
}

// ParagraphElement is the interface for paragraph content.
type ParagraphElement interface {
	GetElementType() string
}

// NewParagraph creates a new paragraph.
func NewParagraph() *Paragraph {
	return &Paragraph{
		elements:  make([]ParagraphElement, 0),
		alignment: NewAlignment(),
	}
}

// GetAlignment returns the paragraph alignment.
func (p *Paragraph) GetAlignment() *Alignment {
	return p.alignment
}

// SetAlignment sets the paragraph alignment.
func (p *Paragraph) SetAlignment(a *Alignment) {
	p.alignment = a
}

// GetElements returns all paragraph elements.
func (p *Paragraph) GetElements() []ParagraphElement {
	return p.elements
}

// CreateTextRun creates a new text run.
func (p *Paragraph) CreateTextRun(text string) *TextRun {
	tr := &TextRun{
		text: text,
		font: NewFont(),
	}
	p.elements = append(p.elements, tr)
	return tr
}

// TextRun represents a run of text with formatting.
type TextRun struct {
	text string
	font *Font
}

func (tr *TextRun) GetElementType() string { return "textrun" }

// GetText returns the text content.
func (tr *TextRun) GetText() string { return tr.text }

// SetText sets the text content.
func (tr *TextRun) SetText(text string) { tr.text = text }

// GetFont returns the font properties.
func (tr *TextRun) GetFont() *Font { return tr.font }

// SetFont sets the font properties.
func (tr *TextRun) SetFont(f *Font) { tr.font = f }

// extractParagraphsText collects the non-empty text of each paragraph.
func extractParagraphsText(paragraphs []*Paragraph) []string {
	var parts []string
	for _, para := range paragraphs {
		var sb strings.Builder
		for _, elem := range para.elements {
			if tr, ok := elem.(*TextRun); ok {
				sb.WriteString(tr.text)
			}
		}
		if sb.Len() > 0 {
			parts = append(parts, sb.String())
		}
	}
	return parts
}

// PlaceholderShape represents a placeholder shape (title, body, etc.).
type PlaceholderShape struct {
	RichTextShape
	phType PlaceholderType
	phIdx  int
}

func (p *PlaceholderShape) GetType() ShapeType { return ShapeTypePlaceholder }

// PlaceholderType represents the type of placeholder as named in the
// slide layout XML.
type PlaceholderType string

const (
	PlaceholderTitle    PlaceholderType = "title"
	PlaceholderBody     PlaceholderType = "body"
	PlaceholderCtrTitle PlaceholderType = "ctrTitle"
	PlaceholderSubTitle PlaceholderType = "subTitle"
	PlaceholderPicture  PlaceholderType = "pic"
	PlaceholderDate     PlaceholderType = "dt"
	PlaceholderFooter   PlaceholderType = "ftr"
	PlaceholderSlideNum PlaceholderType = "sldNum"
)

// NewPlaceholderShape creates a new placeholder shape.
func NewPlaceholderShape(phType PlaceholderType) *PlaceholderShape {
	return &PlaceholderShape{
		RichTextShape: *NewRichTextShape(),
		phType:        phType,
	}
}

// GetPlaceholderType returns the placeholder type.
func (p *PlaceholderShape) GetPlaceholderType() PlaceholderType {
	return p.phType
}

// SetPlaceholderIndex sets the placeholder index.
func (p *PlaceholderShape) SetPlaceholderIndex(idx int) {
	p.phIdx = idx
}

// GetPlaceholderIndex returns the placeholder index.
func (p *PlaceholderShape) GetPlaceholderIndex() int {
	return p.phIdx
}

// SetText sets the placeholder text, replacing all existing content with
// a single paragraph.
func (p *PlaceholderShape) SetText(text string) {
	p.paragraphs = []*Paragraph{NewParagraph()}
	p.paragraphs[0].CreateTextRun(text)
	p.activeParagraph = 0
}

// Clear clears the placeholder content and adds a single empty paragraph.
// An empty paragraph is required by PowerPoint for the file to be valid.
func (p *PlaceholderShape) Clear() {
	p.paragraphs = []*Paragraph{NewParagraph()}
	p.activeParagraph = 0
}

// DrawingShape represents an image shape.
type DrawingShape struct {
	BaseShape
	data     []byte // raw image data
	mimeType string
}

func (d *DrawingShape) GetType() ShapeType { return ShapeTypeDrawing }

// NewDrawingShape creates a new drawing shape.
func NewDrawingShape() *DrawingShape {
	return &DrawingShape{}
}

// SetImageData sets the raw image data.
func (d *DrawingShape) SetImageData(data []byte, mimeType string) *DrawingShape {
	d.data = data
	d.mimeType = mimeType
	return d
}

// GetImageData returns the raw image data.
func (d *DrawingShape) GetImageData() []byte { return d.data }

// GetMimeType returns the image MIME type.
func (d *DrawingShape) GetMimeType() string { return d.mimeType }

// TableShape represents a table shape.
type TableShape struct {
	BaseShape
	rows    [][]*TableCell
	numRows int
	numCols int
}

func (t *TableShape) GetType() ShapeType { return ShapeTypeTable }

// NewTableShape creates a new table shape.
func NewTableShape(rows, cols int) *TableShape {
	table := &TableShape{
		numRows: rows,
		numCols: cols,
		rows:    make([][]*TableCell, rows),
	}
	for i := 0; i < rows; i++ {
		table.rows[i] = make([]*TableCell, cols)
		for j := 0; j < cols; j++ {
			table.rows[i][j] = NewTableCell()
		}
	}
	return table
}

// GetCell returns a cell at the given row and column.
func (t *TableShape) GetCell(row, col int) *TableCell {
	if row < 0 || row >= t.numRows || col < 0 || col >= t.numCols {
		return nil
	}
	return t.rows[row][col]
}

// GetRows returns all rows.
func (t *TableShape) GetRows() [][]*TableCell {
	return t.rows
}

// GetNumRows returns the number of rows.
func (t *TableShape) GetNumRows() int { return t.numRows }

// GetNumCols returns the number of columns.
func (t *TableShape) GetNumCols() int { return t.numCols }

// TableCell represents a table cell.
type TableCell struct {
	paragraphs []*Paragraph
	fill       *Fill
}

// NewTableCell creates a new table cell.
func NewTableCell() *TableCell {
	return &TableCell{
		paragraphs: []*Paragraph{NewParagraph()},
		fill:       NewFill(),
	}
}

// SetText sets the cell text (convenience method).
func (tc *TableCell) SetText(text string) *TableCell {
	if len(tc.paragraphs) == 0 {
		tc.paragraphs = append(tc.paragraphs, NewParagraph())
	}
	tc.paragraphs[0].CreateTextRun(text)
	return tc
}

// GetParagraphs returns the cell paragraphs.
func (tc *TableCell) GetParagraphs() []*Paragraph {
	return tc.paragraphs
}

// GetFill returns the cell fill.
func (tc *TableCell) GetFill() *Fill { return tc.fill }
