// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package section splits generated plan text into the four named sections
// shown on screen.
package section

import (
	"strings"

	"github.com/pdiddy/lesson-planner/pkg/types"
)

// HeadingMarker is the Markdown prefix the completion service is told to
// put in front of every section heading.
const HeadingMarker = "### "

// Matcher decides whether a line opens a section.
type Matcher interface {
	Match(line string) (types.SectionKey, bool)
}

// PrefixMatcher matches lines that start with one of a fixed set of
// heading strings. Matching is case- and whitespace-exact.
type PrefixMatcher struct {
	prefixes []prefix
}

type prefix struct {
	text string
	key  types.SectionKey
}

// NewPrefixMatcher returns a matcher for the canonical headings
// ("### Learning Objectives", "### Teaching Strategies", ...).
func NewPrefixMatcher() *PrefixMatcher {
	m := &PrefixMatcher{}
	for _, k := range types.SectionKeys {
		m.prefixes = append(m.prefixes, prefix{text: HeadingMarker + k.Title(), key: k})
	}
	return m
}

// Match reports the section a heading line opens.
func (m *PrefixMatcher) Match(line string) (types.SectionKey, bool) {
	for _, p := range m.prefixes {
		if strings.HasPrefix(line, p.text) {
			return p.key, true
		}
	}
	return "", false
}

// Splitter buckets lines of plan text under the most recent heading.
type Splitter struct {
	Matcher Matcher
}

// Split walks raw line by line. A heading line switches the current section
// and is kept as that section's first line; other lines are appended to the
// current section. Lines before the first heading belong to no section and
// are dropped. Every appended line is terminated with "\n".
func (s Splitter) Split(raw string) types.SectionedPlan {
	m := s.Matcher
	if m == nil {
		m = NewPrefixMatcher()
	}

	plan := types.NewSectionedPlan()
	acc := make(map[types.SectionKey]*strings.Builder, len(types.SectionKeys))
	var current types.SectionKey

	for _, line := range strings.Split(raw, "\n") {
		if key, ok := m.Match(line); ok {
			current = key
		}
		if current == "" {
			continue
		}
		b := acc[current]
		if b == nil {
			b = &strings.Builder{}
			acc[current] = b
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	for k, b := range acc {
		plan[k] = b.String()
	}
	return plan
}

// Split splits raw with the canonical prefix matcher.
func Split(raw string) types.SectionedPlan {
	return Splitter{}.Split(raw)
}
