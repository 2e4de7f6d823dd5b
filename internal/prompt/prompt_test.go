// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/lesson-planner/pkg/types"
)

func TestBuild(t *testing.T) {
	req := types.LessonRequest{
		Subject:       "Physics",
		Topic:         "Newton's Laws",
		GradeLevel:    types.GradeHighSchool,
		TeachingStyle: types.StyleInquiryBased,
	}

	got := Build(req)

	assert.True(t, strings.HasPrefix(got,
		`Create a comprehensive lesson plan for High School Physics on "Newton's Laws" using Inquiry-Based approach.`))
	assert.Contains(t, got, "3. Align with Inquiry-Based approach")
	for _, k := range types.SectionKeys {
		assert.Contains(t, got, "\n### "+k.Title()+"\n", "missing heading for %s", k)
	}
	assert.Contains(t, got, "**Problem 1:** [problem statement]")
	assert.Contains(t, got, "- **Hard:** Critical thinking/analysis")
}

func TestBuildDeterministic(t *testing.T) {
	req := types.LessonRequest{
		Subject:       "History",
		Topic:         "World War II",
		GradeLevel:    types.GradeCollege,
		TeachingStyle: types.StyleFlipped,
	}
	assert.Equal(t, Build(req), Build(req))
}

func TestBuildDoesNotEscapeInput(t *testing.T) {
	req := types.LessonRequest{
		Subject:       "Math & <Logic>",
		Topic:         "Sets",
		GradeLevel:    types.GradeElementary,
		TeachingStyle: types.StyleDirect,
	}
	got := Build(req)
	assert.Contains(t, got, "Elementary Math & <Logic> on \"Sets\" using Direct Instruction approach.")
}

func TestSystemInstructionNamesConventions(t *testing.T) {
	assert.Contains(t, SystemInstruction, "### for section headings")
	assert.Contains(t, SystemInstruction, "** for bold text")
}
