// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package display

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lesson-planner/pkg/types"
)

func samplePlan() types.SectionedPlan {
	p := types.NewSectionedPlan()
	p[types.SectionObjectives] = "### Learning Objectives\n- State Newton's three laws\n"
	p[types.SectionPractice] = "### Additional Practice Problems\n**Easy:** A 2 kg cart...\n"
	return p
}

func TestCardsPlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Cards(&buf, samplePlan(), Options{Plain: true}))

	want := "### Learning Objectives\n- State Newton's three laws\n" +
		"\n" +
		"### Additional Practice Problems\n**Easy:** A 2 kg cart...\n"
	assert.Equal(t, want, buf.String())
}

func TestCardsEmptyPlan(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Cards(&buf, types.NewSectionedPlan(), Options{}))
	assert.Empty(t, buf.String())
}

func TestCardsStyled(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Cards(&buf, samplePlan(), Options{Style: "ascii", Width: 60}))

	out := buf.String()
	assert.Contains(t, out, "Learning Objectives")
	assert.Contains(t, out, "Additional Practice Problems")
	assert.NotContains(t, out, "Teaching Strategies")
	assert.Less(t, strings.Index(out, "Learning Objectives"), strings.Index(out, "Additional Practice Problems"))
	assert.Equal(t, 2, strings.Count(out, "╭"), "one card per non-empty section")
}

func TestSectionText(t *testing.T) {
	plan := samplePlan()

	text, err := SectionText(plan, types.SectionObjectives)
	require.NoError(t, err)
	assert.Equal(t, plan[types.SectionObjectives], text)

	_, err = SectionText(plan, types.SectionHomework)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Homework Assignments")

	_, err = SectionText(plan, types.SectionKey("summary"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown section")
}

func TestCopy(t *testing.T) {
	var copied []string
	orig := clipboardWrite
	t.Cleanup(func() { clipboardWrite = orig })

	clipboardWrite = func(s string) error {
		copied = append(copied, s)
		return nil
	}
	require.NoError(t, Copy(samplePlan(), types.SectionPractice))
	assert.Equal(t, []string{"### Additional Practice Problems\n**Easy:** A 2 kg cart...\n"}, copied)

	require.Error(t, Copy(samplePlan(), types.SectionStrategies))
	assert.Len(t, copied, 1, "empty section is never copied")

	clipboardWrite = func(string) error { return errors.New("no clipboard utility") }
	err := Copy(samplePlan(), types.SectionObjectives)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no clipboard utility")
}
