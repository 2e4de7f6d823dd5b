// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// FlowLayout parses raw as Markdown and returns the flow document: the
// title as a level-1 heading followed by the converted fragments.
// Heading levels, emphasis, inline code, and list nesting carry over.
func FlowLayout(title, raw string) Document {
	doc := Document{Title: title, Blocks: []Block{Heading(title, 1)}}
	doc.Blocks = append(doc.Blocks, ConvertMarkdown(raw)...)
	return doc
}

// ConvertMarkdown converts Markdown source into document blocks.
func ConvertMarkdown(raw string) []Block {
	src := []byte(raw)
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	c := &converter{src: src}
	c.children(root, 0)
	return c.blocks
}

type converter struct {
	src    []byte
	blocks []Block
	lists  int
}

type runStyle struct {
	bold, italic, code bool
}

func (c *converter) children(n ast.Node, depth int) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		c.block(child, depth)
	}
}

// block converts one block node. depth is the list nesting level the node
// sits at.
func (c *converter) block(n ast.Node, depth int) {
	switch node := n.(type) {
	case *ast.Heading:
		c.blocks = append(c.blocks, Block{Kind: KindHeading, Level: node.Level, Runs: c.inlines(node)})
	case *ast.Paragraph, *ast.TextBlock:
		c.blocks = append(c.blocks, Block{Kind: KindParagraph, Level: depth, Runs: c.inlines(node)})
	case *ast.List:
		c.list(node, depth)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		c.blocks = append(c.blocks, Block{Kind: KindCode, Level: depth, Runs: c.lines(node)})
	case *ast.HTMLBlock:
		if runs := c.lines(node); len(runs) > 0 {
			c.blocks = append(c.blocks, Block{Kind: KindParagraph, Level: depth, Runs: runs})
		}
	case *ast.ThematicBreak:
		c.blocks = append(c.blocks, Block{Kind: KindRule})
	default:
		// Blockquotes and other containers contribute their children.
		c.children(node, depth)
	}
}

// list emits one list-item block per item. The first paragraph of an item
// carries the bullet or number; later blocks of the item and nested lists
// sit one level deeper.
func (c *converter) list(l *ast.List, depth int) {
	c.lists++
	id := c.lists
	ordered := l.IsOrdered()
	start := 0
	if ordered {
		start = l.Start
	}

	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marked := false
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			switch child.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				if !marked {
					c.blocks = append(c.blocks, Block{
						Kind:    KindListItem,
						Level:   depth,
						Runs:    c.inlines(child),
						Ordered: ordered,
						List:    id,
						Start:   start,
					})
					marked = true
					continue
				}
			}
			c.block(child, depth+1)
		}
		if !marked {
			// An item without text still takes a bullet or number.
			c.blocks = append(c.blocks, Block{Kind: KindListItem, Level: depth, Ordered: ordered, List: id, Start: start})
		}
	}
}

// inlines flattens the inline children of n into styled runs.
func (c *converter) inlines(n ast.Node) []Run {
	return mergeRuns(c.inline(n, runStyle{}, nil))
}

func (c *converter) inline(n ast.Node, st runStyle, runs []Run) []Run {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch node := child.(type) {
		case *ast.Text:
			runs = append(runs, st.run(st.literal(node.Segment.Value(c.src))))
			switch {
			case node.HardLineBreak():
				runs = append(runs, Run{Break: true})
			case node.SoftLineBreak():
				runs = append(runs, st.run(" "))
			}
		case *ast.String:
			if node.IsCode() {
				runs = append(runs, st.run(string(node.Value)))
			} else {
				runs = append(runs, st.run(st.literal(node.Value)))
			}
		case *ast.Emphasis:
			inner := st
			if node.Level >= 2 {
				inner.bold = true
			} else {
				inner.italic = true
			}
			runs = c.inline(node, inner, runs)
		case *ast.CodeSpan:
			inner := st
			inner.code = true
			runs = c.inline(node, inner, runs)
		case *ast.AutoLink:
			runs = append(runs, st.run(string(node.URL(c.src))))
		case *ast.RawHTML:
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				runs = append(runs, st.run(string(seg.Value(c.src))))
			}
		default:
			// Links and images keep their text.
			runs = c.inline(node, st, runs)
		}
	}
	return runs
}

// lines returns the raw lines of a code or HTML block, one run per line
// separated by hard breaks.
func (c *converter) lines(n ast.Node) []Run {
	var runs []Run
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimRight(string(seg.Value(c.src)), "\r\n")
		if i > 0 {
			runs = append(runs, Run{Break: true})
		}
		runs = append(runs, Run{Text: line, Code: true})
	}
	return runs
}

// literal resolves backslash escapes and character references outside
// code spans, matching what an HTML rendering of the source would show.
func (st runStyle) literal(b []byte) string {
	if st.code {
		return string(b)
	}
	b = util.UnescapePunctuations(b)
	b = util.ResolveNumericReferences(b)
	b = util.ResolveEntityNames(b)
	return string(b)
}

func (st runStyle) run(s string) Run {
	return Run{Text: s, Bold: st.bold, Italic: st.italic, Code: st.code}
}

// mergeRuns joins adjacent runs with identical styling and drops empty ones.
func mergeRuns(runs []Run) []Run {
	var out []Run
	for _, r := range runs {
		if !r.Break && r.Text == "" {
			continue
		}
		if n := len(out); n > 0 && !r.Break && !out[n-1].Break &&
			out[n-1].Bold == r.Bold && out[n-1].Italic == r.Italic && out[n-1].Code == r.Code {
			out[n-1].Text += r.Text
			continue
		}
		out = append(out, r)
	}
	return out
}
