// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns generated plan text into export documents: a
// fixed-layout PDF and a flow-layout DOCX. Both renderers read the raw plan
// text, not the split sections, and produce byte-identical output for
// identical input.
package render

import (
	"fmt"
	"strings"
	"time"
)

// BlockKind distinguishes the block elements of a Document.
type BlockKind int

const (
	KindHeading BlockKind = iota
	KindParagraph
	KindListItem
	KindCode
	KindRule
)

func (k BlockKind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindListItem:
		return "list-item"
	case KindCode:
		return "code"
	case KindRule:
		return "rule"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Run is a span of inline text with uniform emphasis.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Code   bool
	// Break is a hard line break; Text is empty.
	Break bool
}

// Block is one block element of an export document.
type Block struct {
	Kind BlockKind

	// Level is the heading level (1-6) for headings and the nesting depth
	// (0-based) for list items and indented paragraphs.
	Level int

	Runs []Run

	// Ordered and List apply to list items: List identifies the list the
	// item belongs to so numbering restarts per list, Start is the first
	// number of an ordered list.
	Ordered bool
	List    int
	Start   int
}

// Text returns the block's runs concatenated without styling.
func (b Block) Text() string {
	var sb strings.Builder
	for _, r := range b.Runs {
		if r.Break {
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Heading builds a single-run heading block.
func Heading(text string, level int) Block {
	return Block{Kind: KindHeading, Level: level, Runs: []Run{{Text: text}}}
}

// Paragraph builds a single-run paragraph block.
func Paragraph(text string) Block {
	return Block{Kind: KindParagraph, Runs: []Run{{Text: text}}}
}

// Document is an ordered sequence of blocks under a title. It is built
// from plan text, consumed by a renderer, and discarded.
type Document struct {
	Title  string
	Blocks []Block
}

// Title returns the document title for a lesson: "{subject} Lesson Plan: {topic}".
func Title(subject, topic string) string {
	return fmt.Sprintf("%s Lesson Plan: %s", subject, topic)
}

// MIME types of the export formats.
const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// FileName returns the download name "{subject}_{topic}_LessonPlan.{ext}".
// Subject and topic are used verbatim.
func FileName(subject, topic, ext string) string {
	return fmt.Sprintf("%s_%s_LessonPlan.%s", subject, topic, strings.TrimPrefix(ext, "."))
}

// Exporter renders plan text under a title into one file format.
type Exporter interface {
	Render(title, raw string) ([]byte, error)

	// Extension is the file extension without a leading dot.
	Extension() string

	MimeType() string
}

// Options tune both renderers.
type Options struct {
	// Timestamp is written into document metadata. The zero value uses
	// DocumentEpoch so that output depends only on the input text.
	Timestamp time.Time
}

// DocumentEpoch is the metadata timestamp used when Options.Timestamp is
// zero. It is the earliest time a zip entry can carry.
var DocumentEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

func (o Options) timestamp() time.Time {
	if o.Timestamp.IsZero() {
		return DocumentEpoch
	}
	return o.Timestamp.UTC().Truncate(time.Second)
}

// Format names accepted by ExporterFor.
const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
)

// Formats lists the supported export formats.
var Formats = []string{FormatPDF, FormatDOCX}

// ExporterFor returns the exporter for a format name.
func ExporterFor(format string, opts Options) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatPDF:
		return &PDFRenderer{Options: opts}, nil
	case FormatDOCX:
		return &DOCXRenderer{Options: opts}, nil
	}
	return nil, fmt.Errorf("unknown export format %q (want pdf or docx)", format)
}
