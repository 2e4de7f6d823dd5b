// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"fmt"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

// headingMarker is stripped from lines that start with it; exactly its four
// bytes are removed.
const headingMarker = "### "

// Fixed-layout geometry, in millimetres and points.
const (
	pdfFont        = "Helvetica"
	pdfLineHeight  = 10.0
	pdfTitleSize   = 16.0
	pdfHeadingSize = 14.0
	pdfBodySize    = 12.0
)

// pdfCompression controls content stream compression. Tests turn it off to
// inspect the drawn text.
var pdfCompression = true

// EncodingError reports a character the fixed-layout renderer cannot
// represent in its 8-bit (ISO-8859-1) encoding. Line is 0 for the title and
// 1-based for plan lines.
type EncodingError struct {
	Line int
	Rune rune
}

func (e *EncodingError) Error() string {
	where := "title"
	if e.Line > 0 {
		where = fmt.Sprintf("line %d", e.Line)
	}
	return fmt.Sprintf("cannot encode %q (U+%04X) on %s for PDF export: only Latin-1 characters are supported", e.Rune, e.Rune, where)
}

// FixedLayout builds the page-oriented document: each line starting with
// "### " becomes a heading with the marker stripped, every other line
// (blank lines included) becomes a paragraph.
func FixedLayout(title, raw string) Document {
	doc := Document{Title: title}
	for _, line := range strings.Split(raw, "\n") {
		if strings.HasPrefix(line, headingMarker) {
			doc.Blocks = append(doc.Blocks, Heading(line[len(headingMarker):], 3))
			continue
		}
		doc.Blocks = append(doc.Blocks, Paragraph(line))
	}
	return doc
}

// PDFRenderer is the fixed-layout renderer. It uses the core Helvetica
// font, so all text must be representable in ISO-8859-1.
type PDFRenderer struct {
	Options Options
}

// Render lays out raw under title and returns the PDF bytes. Any
// character outside ISO-8859-1 yields an *EncodingError and no output.
func (r *PDFRenderer) Render(title, raw string) ([]byte, error) {
	return r.RenderDocument(FixedLayout(title, raw))
}

// RenderDocument draws a fixed-layout document.
func (r *PDFRenderer) RenderDocument(doc Document) ([]byte, error) {
	title, err := latin1(doc.Title, 0)
	if err != nil {
		return nil, err
	}

	lines := make([]string, len(doc.Blocks))
	for i, b := range doc.Blocks {
		if lines[i], err = latin1(b.Text(), i+1); err != nil {
			return nil, err
		}
	}

	ts := r.Options.timestamp()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCatalogSort(true)
	pdf.SetCompression(pdfCompression)
	pdf.SetCreationDate(ts)
	pdf.SetModificationDate(ts)
	pdf.SetCreator("lesson-planner", false)
	pdf.SetTitle(title, false)
	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", pdfTitleSize)
	pdf.CellFormat(0, pdfLineHeight, title, "", 1, "", false, 0, "")
	pdf.SetFont(pdfFont, "", pdfBodySize)

	for i, b := range doc.Blocks {
		switch b.Kind {
		case KindHeading:
			pdf.SetFont(pdfFont, "B", pdfHeadingSize)
			pdf.CellFormat(0, pdfLineHeight, lines[i], "", 1, "", false, 0, "")
			pdf.SetFont(pdfFont, "", pdfBodySize)
		default:
			pdf.MultiCell(0, pdfLineHeight, lines[i], "", "", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension implements Exporter.
func (r *PDFRenderer) Extension() string { return FormatPDF }

// MimeType implements Exporter.
func (r *PDFRenderer) MimeType() string { return MimePDF }

// latin1 re-encodes s as ISO-8859-1 bytes held in a Go string, which is
// what the core fonts expect.
func latin1(s string, line int) (string, error) {
	out := make([]byte, 0, len(s))
	for _, c := range s {
		b, ok := charmap.ISO8859_1.EncodeRune(c)
		if !ok {
			return "", &EncodingError{Line: line, Rune: c}
		}
		out = append(out, b)
	}
	return string(out), nil
}
