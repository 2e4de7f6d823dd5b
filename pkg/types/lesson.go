// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the lesson planner:
// the form inputs, the sectioned view of a generated plan, generation
// attempts, and configuration.
package types

import (
	"fmt"
	"strings"
)

// GradeLevel is the audience a lesson plan is written for.
type GradeLevel string

const (
	GradeElementary   GradeLevel = "elementary"
	GradeMiddleSchool GradeLevel = "middle-school"
	GradeHighSchool   GradeLevel = "high-school"
	GradeCollege      GradeLevel = "college"
)

// GradeLevels lists every grade level in form order.
var GradeLevels = []GradeLevel{GradeElementary, GradeMiddleSchool, GradeHighSchool, GradeCollege}

var gradeLabels = map[GradeLevel]string{
	GradeElementary:   "Elementary",
	GradeMiddleSchool: "Middle School",
	GradeHighSchool:   "High School",
	GradeCollege:      "College",
}

// Label returns the human-readable name used in prompts and forms.
func (g GradeLevel) Label() string {
	if l, ok := gradeLabels[g]; ok {
		return l
	}
	return string(g)
}

// Valid reports whether g is one of the known grade levels.
func (g GradeLevel) Valid() bool {
	_, ok := gradeLabels[g]
	return ok
}

// ParseGradeLevel accepts either the identifier ("middle-school") or the
// label ("Middle School"), case-insensitively.
func ParseGradeLevel(s string) (GradeLevel, error) {
	for _, g := range GradeLevels {
		if matchesChoice(s, string(g), g.Label()) {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown grade level %q", s)
}

// TeachingStyle is the pedagogical approach a lesson plan follows.
type TeachingStyle string

const (
	StyleDirect        TeachingStyle = "direct"
	StyleInquiryBased  TeachingStyle = "inquiry-based"
	StyleCollaborative TeachingStyle = "collaborative"
	StyleFlipped       TeachingStyle = "flipped"
)

// TeachingStyles lists every teaching style in form order.
var TeachingStyles = []TeachingStyle{StyleDirect, StyleInquiryBased, StyleCollaborative, StyleFlipped}

var styleLabels = map[TeachingStyle]string{
	StyleDirect:        "Direct Instruction",
	StyleInquiryBased:  "Inquiry-Based",
	StyleCollaborative: "Collaborative",
	StyleFlipped:       "Flipped Classroom",
}

// Label returns the human-readable name used in prompts and forms.
func (s TeachingStyle) Label() string {
	if l, ok := styleLabels[s]; ok {
		return l
	}
	return string(s)
}

// Valid reports whether s is one of the known teaching styles.
func (s TeachingStyle) Valid() bool {
	_, ok := styleLabels[s]
	return ok
}

// ParseTeachingStyle accepts either the identifier ("flipped") or the label
// ("Flipped Classroom"), case-insensitively.
func ParseTeachingStyle(s string) (TeachingStyle, error) {
	for _, st := range TeachingStyles {
		if matchesChoice(s, string(st), st.Label()) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown teaching style %q", s)
}

func matchesChoice(input, id, label string) bool {
	in := strings.TrimSpace(input)
	return strings.EqualFold(in, id) || strings.EqualFold(in, label)
}

// LessonRequest holds the four form inputs for one generation. It is treated
// as immutable once built.
type LessonRequest struct {
	Subject       string        `json:"subject" yaml:"subject"`
	Topic         string        `json:"topic" yaml:"topic"`
	GradeLevel    GradeLevel    `json:"grade_level" yaml:"grade_level"`
	TeachingStyle TeachingStyle `json:"teaching_style" yaml:"teaching_style"`
}

// SectionKey identifies one of the four fixed parts of a lesson plan.
type SectionKey string

const (
	SectionObjectives SectionKey = "objectives"
	SectionStrategies SectionKey = "strategies"
	SectionHomework   SectionKey = "homework"
	SectionPractice   SectionKey = "practice"
)

// SectionKeys lists the section keys in canonical display order.
var SectionKeys = []SectionKey{SectionObjectives, SectionStrategies, SectionHomework, SectionPractice}

var sectionTitles = map[SectionKey]string{
	SectionObjectives: "Learning Objectives",
	SectionStrategies: "Teaching Strategies",
	SectionHomework:   "Homework Assignments",
	SectionPractice:   "Additional Practice Problems",
}

// Title returns the heading text the completion service is asked to emit
// for the section.
func (k SectionKey) Title() string {
	return sectionTitles[k]
}

// ParseSectionKey resolves a section key by identifier.
func ParseSectionKey(s string) (SectionKey, error) {
	for _, k := range SectionKeys {
		if strings.EqualFold(strings.TrimSpace(s), string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown section %q (want one of objectives, strategies, homework, practice)", s)
}

// Section is one named part of a split plan.
type Section struct {
	Key  SectionKey
	Text string
}

// SectionedPlan maps every section key to its accumulated text. All four
// keys are always present; a section with no heading in the source maps to
// the empty string.
type SectionedPlan map[SectionKey]string

// NewSectionedPlan returns a plan with all four keys set to empty text.
func NewSectionedPlan() SectionedPlan {
	p := make(SectionedPlan, len(SectionKeys))
	for _, k := range SectionKeys {
		p[k] = ""
	}
	return p
}

// NonEmpty returns the sections that have text, in canonical order.
func (p SectionedPlan) NonEmpty() []Section {
	var out []Section
	for _, k := range SectionKeys {
		if text := p[k]; text != "" {
			out = append(out, Section{Key: k, Text: text})
		}
	}
	return out
}
