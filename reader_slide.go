package deckforge

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"strconv"
)

// readSlide parses one ppt/slides/slideN.xml part back into a Slide.
// Only the content the assembly stage emits is read back: placeholder
// and rich text shapes, tables, and an explicit background fill.
// Pictures are acknowledged but their media bytes are not reloaded.
func readSlide(zr *zip.Reader, path string) (*Slide, error) {
	data, err := readFileFromZip(zr, path)
	if err != nil {
		return nil, err
	}

	slide := newSlide()
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var (
		inBackground bool
		currentText  *RichTextShape // paragraphs target of the open sp
		currentPH    *PlaceholderShape
		currentPara  *Paragraph
		currentRun   *TextRun
		inRunText    bool

		currentTable *TableShape
		tableRows    [][]*TableCell
		tableRow     []*TableCell
		tableCell    *TableCell
		shapeName    string
		phType       string
		phIdx        int
		sawPH        bool
	)

	flushShape := func() {
		if currentPH != nil {
			currentPH.SetName(shapeName)
			slide.AddShape(currentPH)
		} else if currentText != nil {
			currentText.SetName(shapeName)
			slide.AddShape(currentText)
		}
		currentText = nil
		currentPH = nil
		currentPara = nil
		shapeName = ""
		phType = ""
		phIdx = 0
		sawPH = false
	}

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "bg":
				inBackground = true
			case "srgbClr":
				if inBackground {
					slide.GetBackground().SetSolid(NewColor(attrValue(t, "val")))
				} else if currentRun != nil {
					currentRun.GetFont().SetColor(NewColor(attrValue(t, "val")))
				}
			case "sp":
				currentText = NewRichTextShape()
				currentText.paragraphs = nil
			case "cNvPr":
				if currentText != nil && shapeName == "" {
					shapeName = attrValue(t, "name")
				}
			case "ph":
				phType = attrValue(t, "type")
				if raw := attrValue(t, "idx"); raw != "" {
					if v, err := strconv.Atoi(raw); err == nil {
						phIdx = v
					}
				}
				sawPH = true
			case "txBody":
				if sawPH && currentPH == nil {
					pt := PlaceholderType(phType)
					if phType == "" {
						pt = PlaceholderBody
					}
					currentPH = NewPlaceholderShape(pt)
					currentPH.SetPlaceholderIndex(phIdx)
					currentPH.paragraphs = nil
				}
			case "p":
				currentPara = NewParagraph()
				switch {
				case tableCell != nil:
					tableCell.paragraphs = append(tableCell.paragraphs, currentPara)
				case currentPH != nil:
					currentPH.paragraphs = append(currentPH.paragraphs, currentPara)
				case currentText != nil:
					currentText.paragraphs = append(currentText.paragraphs, currentPara)
				}
			case "pPr":
				if currentPara != nil {
					if raw := attrValue(t, "lvl"); raw != "" {
						if v, err := strconv.Atoi(raw); err == nil {
							currentPara.GetAlignment().SetLevel(v)
						}
					}
				}
			case "r":
				if currentPara != nil {
					currentRun = currentPara.CreateTextRun("")
				}
			case "rPr":
				if currentRun != nil {
					if raw := attrValue(t, "sz"); raw != "" {
						if v, err := strconv.Atoi(raw); err == nil {
							currentRun.GetFont().SetSize(v / 100)
						}
					}
					if attrValue(t, "b") == "1" {
						currentRun.GetFont().SetBold(true)
					}
				}
			case "latin":
				if currentRun != nil {
					if face := attrValue(t, "typeface"); face != "" {
						currentRun.GetFont().SetName(face)
					}
				}
			case "t":
				if currentRun != nil {
					inRunText = true
				}
			case "tbl":
				currentTable = &TableShape{}
				tableRows = nil
			case "tr":
				if currentTable != nil {
					tableRow = nil
				}
			case "tc":
				if currentTable != nil {
					tableCell = NewTableCell()
					tableCell.paragraphs = nil
				}
			}
		case xml.CharData:
			if inRunText && currentRun != nil {
				currentRun.SetText(currentRun.GetText() + string(t))
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "bg":
				inBackground = false
			case "t":
				inRunText = false
			case "r":
				currentRun = nil
			case "p":
				currentPara = nil
			case "sp":
				flushShape()
			case "tc":
				if currentTable != nil && tableCell != nil {
					if len(tableCell.paragraphs) == 0 {
						tableCell.paragraphs = []*Paragraph{NewParagraph()}
					}
					tableRow = append(tableRow, tableCell)
					tableCell = nil
				}
			case "tr":
				if currentTable != nil && tableRow != nil {
					tableRows = append(tableRows, tableRow)
					tableRow = nil
				}
			case "tbl":
				if currentTable != nil {
					currentTable.rows = tableRows
					currentTable.numRows = len(tableRows)
					if len(tableRows) > 0 {
						currentTable.numCols = len(tableRows[0])
					}
					slide.AddShape(currentTable)
					currentTable = nil
					tableRows = nil
				}
			}
		}
	}

	return slide, nil
}
