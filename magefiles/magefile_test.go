package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.go")
	require.NoError(t, os.WriteFile(path, []byte("package x\n\n  \t\nfunc f() {}\n\n// done"), 0o644))

	n, err := nonBlankLines(path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestStatsSkipsReferenceTrees(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.MkdirAll(filepath.Join("_examples", "big"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("_examples", "big", "broken.go"), []byte("x\n"), 0o000))
	require.NoError(t, os.WriteFile("a.go", []byte("package a\n"), 0o644))
	require.NoError(t, os.WriteFile("README.md", []byte("two words\n"), 0o644))

	assert.NoError(t, Stats())
}
