package deckforge

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// maxZipEntrySize is the maximum allowed size for a single file
// extracted from a ZIP. This prevents zip bomb attacks. 50 MB is
// generous for any legitimate PPTX part.
const maxZipEntrySize = 50 << 20 // 50 MB

// maxZipTotalSize is the cumulative limit for a single ZIP.
const maxZipTotalSize = 200 << 20 // 200 MB

// maxZipEntries is the maximum number of files allowed in a ZIP archive.
const maxZipEntries = 10000

// Open reads a PPTX file from disk and returns a Presentation.
func Open(path string) (*Presentation, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	return ReadFrom(f, info.Size())
}

// OpenTemplate opens a PPTX template file and returns a Presentation
// with all existing slides removed, so new slides can be added using
// the template's layouts. Layouts and masters are preserved.
func OpenTemplate(path string) (*Presentation, error) {
	pres, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open template: %w", err)
	}
	pres.slides = make([]*Slide, 0)
	return pres, nil
}

// ReadFrom reads a PPTX from an io.ReaderAt with the given size.
func ReadFrom(r io.ReaderAt, size int64) (*Presentation, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid reader size: %d", size)
	}
	if size > int64(maxZipTotalSize) {
		return nil, fmt.Errorf("file size %d exceeds maximum allowed (%d bytes)", size, maxZipTotalSize)
	}

	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}
	if len(zr.File) > maxZipEntries {
		return nil, fmt.Errorf("zip archive contains too many entries (%d > %d)", len(zr.File), maxZipEntries)
	}

	pres := New()

	// Theme and layouts first so slide parsing can reference them.
	theme, err := readTheme(zr)
	if err == nil {
		pres.theme = theme
	}

	layouts, err := readLayouts(zr)
	if err != nil {
		return nil, err
	}
	pres.AddSlideMaster(&SlideMaster{Name: "Office Theme", SlideLayouts: layouts})

	slideRels, err := readPresentationXML(zr, pres)
	if err != nil {
		return nil, err
	}

	presRels, err := readRelationships(zr, "ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil, err
	}

	for _, relID := range slideRels {
		target := ""
		for _, rel := range presRels {
			if rel.ID == relID {
				target = rel.Target
				break
			}
		}
		if target == "" {
			continue
		}
		if !strings.HasPrefix(target, "ppt/") {
			target = "ppt/" + target
		}
		slide, err := readSlide(zr, target)
		if err != nil {
			return nil, fmt.Errorf("failed to read slide %s: %w", target, err)
		}
		pres.slides = append(pres.slides, slide)
	}

	return pres, nil
}

func readFileFromZip(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			if f.UncompressedSize64 > maxZipEntrySize {
				return nil, fmt.Errorf("file %s exceeds maximum allowed size (%d bytes)", name, maxZipEntrySize)
			}
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("failed to open %s in zip: %w", name, err)
			}
			defer rc.Close()
			data, err := io.ReadAll(io.LimitReader(rc, int64(maxZipEntrySize)+1))
			if err != nil {
				return nil, fmt.Errorf("failed to read %s from zip: %w", name, err)
			}
			if int64(len(data)) > int64(maxZipEntrySize) {
				return nil, fmt.Errorf("file %s actual size exceeds maximum allowed size", name)
			}
			return data, nil
		}
	}
	return nil, fmt.Errorf("file not found in zip: %s", name)
}

// zipNamesWithPrefix returns zip entry names under a prefix, sorted.
// Numeric suffixes sort naturally (slideLayout2 before slideLayout10).
func zipNamesWithPrefix(zr *zip.Reader, prefix, suffix string) []string {
	var names []string
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, prefix) && strings.HasSuffix(f.Name, suffix) &&
			!strings.Contains(strings.TrimPrefix(f.Name, prefix), "/") {
			names = append(names, f.Name)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) < len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}

// --- Relationship reading ---

type xmlRelForRead struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

type xmlRelsForRead struct {
	XMLName       xml.Name        `xml:"Relationships"`
	Relationships []xmlRelForRead `xml:"Relationship"`
}

func readRelationships(zr *zip.Reader, path string) ([]xmlRelForRead, error) {
	data, err := readFileFromZip(zr, path)
	if err != nil {
		return nil, nil // relationships file may not exist
	}

	var rels xmlRelsForRead
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse relationships %s: %w", path, err)
	}
	return rels.Relationships, nil
}

// readPresentationXML extracts the slide ID list and canvas size from
// ppt/presentation.xml. A missing sldSz element leaves the layout at
// its defaults rather than failing; downstream code treats the unset
// size as "use application defaults".
func readPresentationXML(zr *zip.Reader, pres *Presentation) ([]string, error) {
	data, err := readFileFromZip(zr, "ppt/presentation.xml")
	if err != nil {
		return nil, fmt.Errorf("missing ppt/presentation.xml: %w", err)
	}

	var doc struct {
		SldSz *struct {
			CX int64 `xml:"cx,attr"`
			CY int64 `xml:"cy,attr"`
		} `xml:"sldSz"`
		SldIDLst struct {
			SldIDs []struct {
				RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
			} `xml:"sldId"`
		} `xml:"sldIdLst"`
	}
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse presentation.xml: %w", err)
	}

	if doc.SldSz != nil && doc.SldSz.CX > 0 && doc.SldSz.CY > 0 {
		pres.layout.SetCustomLayout(doc.SldSz.CX, doc.SldSz.CY)
	}

	ids := make([]string, 0, len(doc.SldIDLst.SldIDs))
	for _, s := range doc.SldIDLst.SldIDs {
		ids = append(ids, s.RID)
	}
	return ids, nil
}
