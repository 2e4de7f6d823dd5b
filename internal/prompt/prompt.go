// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt builds the instructions sent to the completion service for
// one lesson plan.
package prompt

import (
	"bytes"
	"text/template"

	"github.com/pdiddy/lesson-planner/pkg/types"
)

// SystemInstruction fixes the Markdown conventions the section splitter and
// renderers depend on: ### section headings and ** for bold markers.
const SystemInstruction = "You are an expert curriculum designer. Create meticulously structured lesson plans with clear sections. Use Markdown formatting with ### for section headings and ** for bold text."

// lessonPromptTmpl lists the four required sections with the exact heading
// text the splitter matches on.
var lessonPromptTmpl = template.Must(template.New("lesson").Parse(`Create a comprehensive lesson plan for {{.Grade}} {{.Subject}} on "{{.Topic}}" using {{.Style}} approach.

Structure the output exactly as follows:

### Learning Objectives
- List 3-5 clear, measurable objectives that students should achieve
- Each objective should begin with "Students will be able to..."

### Teaching Strategies
For each learning objective:
1. Provide 5 unique, engaging teaching methods
2. Include specific activities or techniques
3. Align with {{.Style}} approach

### Homework Assignments
Provide 2 meaningful problems/exercises:
- Each problem should be clearly stated
- Followed by a detailed solution showing all steps
- Highlight any key formulas or concepts used
- Format as:
    **Problem 1:** [problem statement]
    **Solution:** [step-by-step solution]

### Additional Practice Problems
Create 3 problems for each difficulty level:
- **Easy:** Basic comprehension
- **Medium:** Application of concepts
- **Hard:** Critical thinking/analysis
- Include complete solutions for each
`))

type promptData struct {
	Grade   string
	Subject string
	Topic   string
	Style   string
}

// Build renders the user prompt for req. Callers validate req first; Build
// itself never fails.
func Build(req types.LessonRequest) string {
	var buf bytes.Buffer
	// The template is parsed at init and only reads string fields.
	_ = lessonPromptTmpl.Execute(&buf, promptData{
		Grade:   req.GradeLevel.Label(),
		Subject: req.Subject,
		Topic:   req.Topic,
		Style:   req.TeachingStyle.Label(),
	})
	return buf.String()
}
