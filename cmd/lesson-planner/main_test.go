// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lesson-planner/internal/session"
	"github.com/pdiddy/lesson-planner/pkg/types"
)

func TestResolveFormats(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    []string
		wantErr bool
	}{
		{name: "none", in: nil, want: nil},
		{name: "all", in: []string{"all"}, want: []string{"pdf", "docx"}},
		{name: "dedupe and case", in: []string{"DOCX", "pdf", "docx"}, want: []string{"docx", "pdf"}},
		{name: "all plus explicit", in: []string{"pdf", "all"}, want: []string{"pdf", "docx"}},
		{name: "unknown", in: []string{"odt"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveFormats(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiskName(t *testing.T) {
	assert.Equal(t, "Physics_Newton's Laws_LessonPlan.pdf", diskName("Physics_Newton's Laws_LessonPlan.pdf"))
	assert.Equal(t, "Art-Design_Color_LessonPlan.pdf", diskName("Art/Design_Color_LessonPlan.pdf"))
}

func TestChoice(t *testing.T) {
	assert.Equal(t, types.GradeMiddleSchool, choice("Middle School", types.ParseGradeLevel))
	assert.Equal(t, types.StyleFlipped, choice("flipped", types.ParseTeachingStyle))
	assert.Equal(t, types.GradeLevel("grad-school"), choice("grad-school", types.ParseGradeLevel))
}

const serverPlan = "### Learning Objectives\n- State Newton's three laws\n### Homework Assignments\n- Read chapter 4"

// TestCommandsEndToEnd drives the CLI against a local completion server:
// a blocked request, a successful generation, show, export, and history.
func TestCommandsEndToEnd(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get("Authorization") != "Bearer test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"choices":[{"message":{"role":"assistant","content":%q}}]}`, serverPlan)
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "lesson-planner.yaml")
	cfg := fmt.Sprintf(`completion:
  endpoint: %s
  api_key: test-key
  timeout: 5s
ledger:
  path: %s
session_file: %s
secrets_dir: %s
`, srv.URL,
		filepath.Join(dir, "state", "attempts.db"),
		filepath.Join(dir, "state", "session.yaml"),
		filepath.Join(dir, "secrets"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&out)
		rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
		err := rootCmd.Execute()
		return out.String(), err
	}

	// Empty subject is blocked before any request.
	_, err := run("generate", "--subject", " ", "--topic", "Newton's Laws")
	var valErr *session.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, int32(0), calls.Load())

	out, err := run("generate", "--subject", "Physics", "--topic", "Newton's Laws",
		"--grade", "High School", "--style", "inquiry-based", "--plain")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Contains(t, out, "### Learning Objectives\n- State Newton's three laws\n")
	assert.Contains(t, out, "### Homework Assignments\n- Read chapter 4\n")

	out, err = run("show", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "Physics Lesson Plan: Newton's Laws")

	outDir := filepath.Join(dir, "out")
	out, err = run("export", "--format", "all", "--out-dir", outDir)
	require.NoError(t, err)
	for _, name := range []string{"Physics_Newton's Laws_LessonPlan.pdf", "Physics_Newton's Laws_LessonPlan.docx"} {
		assert.Contains(t, out, name)
		info, err := os.Stat(filepath.Join(outDir, name))
		require.NoError(t, err)
		assert.NotZero(t, info.Size())
	}
	pdf, err := os.ReadFile(filepath.Join(outDir, "Physics_Newton's Laws_LessonPlan.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

	out, err = run("history", "--yaml", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "outcome: ok")
	assert.Contains(t, out, "outcome: validation_error")
	assert.NotContains(t, out, "Read chapter 4", "ledger never stores plan text")

	sess, err := session.Load(filepath.Join(dir, "state", "session.yaml"))
	require.NoError(t, err)
	assert.Equal(t, serverPlan, sess.RawPlan)
	assert.WithinDuration(t, time.Now(), sess.GeneratedAt, time.Minute)
}
