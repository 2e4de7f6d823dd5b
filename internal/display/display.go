// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package display renders a sectioned lesson plan for the terminal, one card
// per section, and copies single sections to the system clipboard.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/pdiddy/lesson-planner/pkg/types"
)

// DefaultWidth is the word-wrap width for rendered cards.
const DefaultWidth = 80

// Options control card rendering.
type Options struct {
	// Plain writes section Markdown unchanged, with no styling.
	Plain bool

	// Width is the wrap width; zero means DefaultWidth.
	Width int

	// Style is a glamour standard style name ("dark", "light", "ascii",
	// "notty"). Empty selects a style from the terminal background.
	Style string
}

// clipboardWrite is replaced in tests.
var clipboardWrite = clipboard.WriteAll

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")).
	Padding(0, 1)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Cards writes every non-empty section of plan to w in canonical order.
// An empty plan writes nothing.
func Cards(w io.Writer, plan types.SectionedPlan, opts Options) error {
	sections := plan.NonEmpty()
	if len(sections) == 0 {
		return nil
	}

	if opts.Plain {
		for i, s := range sections {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if _, err := io.WriteString(w, s.Text); err != nil {
				return err
			}
		}
		return nil
	}

	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	style := glamour.WithAutoStyle()
	if opts.Style != "" {
		style = glamour.WithStandardStyle(opts.Style)
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width-4))
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}

	for _, s := range sections {
		body, err := r.Render(s.Text)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", s.Key, err)
		}
		card := cardStyle.Width(width - 2).Render(strings.Trim(body, "\n"))
		if _, err := fmt.Fprintln(w, card); err != nil {
			return err
		}
	}
	return nil
}

// SectionText returns the Markdown of one section. A section with no text
// is an error.
func SectionText(plan types.SectionedPlan, key types.SectionKey) (string, error) {
	if key.Title() == "" {
		return "", fmt.Errorf("unknown section %q", key)
	}
	text := plan[key]
	if text == "" {
		return "", fmt.Errorf("section %q is empty in the current plan", key.Title())
	}
	return text, nil
}

// Copy places one section's Markdown on the system clipboard.
func Copy(plan types.SectionedPlan, key types.SectionKey) error {
	text, err := SectionText(plan, key)
	if err != nil {
		return err
	}
	if err := clipboardWrite(text); err != nil {
		return fmt.Errorf("copying %s to clipboard: %w", key.Title(), err)
	}
	return nil
}
