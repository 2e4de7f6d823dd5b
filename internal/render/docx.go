// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

// Paragraph style IDs from the default Word template.
const (
	styleListBullet   = "ListBullet"
	styleListNumber   = "ListNumber"
	styleListContinue = "ListContinue"
	styleCode         = "MacroText"
)

// maxListDepth is the deepest list style the template defines.
const maxListDepth = 3

// DOCXRenderer is the flow-layout renderer. Documents are built with
// godocx and the package is then rewritten with sorted parts, fixed
// timestamps, and core properties so repeated renders are byte-identical.
type DOCXRenderer struct {
	Options Options
}

// Render converts raw from Markdown and returns the DOCX bytes.
func (r *DOCXRenderer) Render(title, raw string) ([]byte, error) {
	return r.RenderDocument(FlowLayout(title, raw))
}

// RenderDocument serializes a flow document.
func (r *DOCXRenderer) RenderDocument(doc Document) ([]byte, error) {
	d, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("creating DOCX document: %w", err)
	}

	for _, blk := range doc.Blocks {
		switch blk.Kind {
		case KindHeading:
			level := uint(min(max(blk.Level, 1), 9))
			if _, err := d.AddHeading(blk.Text(), level); err != nil {
				return nil, fmt.Errorf("adding heading %q: %w", blk.Text(), err)
			}
		case KindListItem:
			addParagraphs(d, listStyle(blk), blk.Runs)
		case KindCode:
			addParagraphs(d, styleCode, blk.Runs)
		case KindRule:
			d.AddParagraph("")
		default:
			style := ""
			if blk.Level > 0 {
				style = depthStyle(styleListContinue, blk.Level)
			}
			addParagraphs(d, style, blk.Runs)
		}
	}

	raw, err := save(d)
	if err != nil {
		return nil, err
	}
	return repack(raw, doc.Title, r.Options.timestamp())
}

// Extension implements Exporter.
func (r *DOCXRenderer) Extension() string { return FormatDOCX }

// MimeType implements Exporter.
func (r *DOCXRenderer) MimeType() string { return MimeDOCX }

func listStyle(b Block) string {
	base := styleListBullet
	if b.Ordered {
		base = styleListNumber
	}
	return depthStyle(base, b.Level)
}

// depthStyle maps a nesting depth onto the numbered style variants
// ("ListBullet", "ListBullet2", "ListBullet3").
func depthStyle(base string, depth int) string {
	if depth = min(depth, maxListDepth-1); depth <= 0 {
		return base
	}
	return fmt.Sprintf("%s%d", base, depth+1)
}

// addParagraphs writes runs as one paragraph per hard-break segment, all
// with the same style.
func addParagraphs(d *docx.RootDoc, style string, runs []Run) {
	for _, seg := range splitBreaks(runs) {
		p := d.AddParagraph("")
		if style != "" {
			p.Style(style)
		}
		for _, r := range seg {
			run := p.AddText(r.Text)
			if r.Bold {
				run.Bold(true)
			}
			if r.Italic {
				run.Italic(true)
			}
		}
	}
}

func splitBreaks(runs []Run) [][]Run {
	out := [][]Run{nil}
	for _, r := range runs {
		if r.Break {
			out = append(out, nil)
			continue
		}
		out[len(out)-1] = append(out[len(out)-1], r)
	}
	return out
}

// save writes the document through godocx, which only saves to a path.
func save(d *docx.RootDoc) ([]byte, error) {
	f, err := os.CreateTemp("", "lesson-plan-*.docx")
	if err != nil {
		return nil, fmt.Errorf("creating temporary DOCX: %w", err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	if err := d.SaveTo(path); err != nil {
		return nil, fmt.Errorf("saving DOCX: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading DOCX: %w", err)
	}
	return data, nil
}

const corePropsPart = "docProps/core.xml"

// repack rewrites a DOCX package with parts in a fixed order, every entry
// stamped with ts, and core properties carrying the title and ts.
func repack(data []byte, title string, ts time.Time) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("reading DOCX package: %w", err)
	}

	parts := map[string][]byte{corePropsPart: []byte(coreXML(title, ts))}
	for _, f := range zr.File {
		if f.Name == corePropsPart || strings.HasSuffix(f.Name, "/") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}
		parts[f.Name] = b
	}

	names := make([]string, 0, len(parts))
	for name := range parts {
		names = append(names, name)
	}
	// [Content_Types].xml sorts first in byte order.
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: ts,
		})
		if err != nil {
			return nil, fmt.Errorf("adding %s: %w", name, err)
		}
		if _, err := w.Write(parts[name]); err != nil {
			return nil, fmt.Errorf("writing %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing DOCX package: %w", err)
	}
	return buf.Bytes(), nil
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

func coreXML(title string, ts time.Time) string {
	stamp := ts.UTC().Format(time.RFC3339)
	return xmlHeader +
		`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
		`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" ` +
		`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title>` + escape(title) + `</dc:title>` +
		`<dc:creator>lesson-planner</dc:creator>` +
		`<dcterms:created xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:created>` +
		`<dcterms:modified xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:modified>` +
		`</cp:coreProperties>`
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
