// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/lesson-planner/internal/display"
	"github.com/pdiddy/lesson-planner/internal/ledger"
	"github.com/pdiddy/lesson-planner/internal/render"
	"github.com/pdiddy/lesson-planner/internal/session"
	"github.com/pdiddy/lesson-planner/pkg/types"
)

// openRecorder opens the attempt ledger. A ledger that cannot be opened is
// logged and skipped; generation does not depend on it.
func openRecorder(cfg types.LedgerConfig) (session.Recorder, func()) {
	if cfg.Path == "" {
		return nil, func() {}
	}
	store, err := ledger.Open(cfg)
	if err != nil {
		logger.WithError(err).Warn("attempt ledger unavailable")
		return nil, func() {}
	}
	return store, func() { store.Close() }
}

// loadPlan loads the session file and requires a generated plan.
func loadPlan(path string) (*session.Session, error) {
	sess, err := session.Load(path)
	if err != nil {
		return nil, err
	}
	if !sess.HasPlan() {
		return nil, fmt.Errorf("%w; run lesson-planner generate first", session.ErrNoPlan)
	}
	return sess, nil
}

// resolveFormats expands "all" and removes duplicates, keeping order.
func resolveFormats(requested []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, f := range requested {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		names := []string{f}
		if f == "all" {
			names = render.Formats
		}
		for _, n := range names {
			if _, err := render.ExporterFor(n, render.Options{}); err != nil {
				return nil, err
			}
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out, nil
}

// diskName makes an export file name safe to create inside one directory.
func diskName(name string) string {
	return strings.NewReplacer("/", "-", string(os.PathSeparator), "-").Replace(name)
}

// writeExports renders the session's plan in each format and writes the
// files to dir. Renders complete before any file is written.
func writeExports(w io.Writer, sess *session.Session, formats []string, dir string) error {
	opts := render.Options{Timestamp: sess.GeneratedAt}
	exports := make([]session.Export, 0, len(formats))
	for _, f := range formats {
		e, err := render.ExporterFor(f, opts)
		if err != nil {
			return err
		}
		out, err := sess.Export(e)
		if err != nil {
			return err
		}
		exports = append(exports, out)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	for _, out := range exports {
		path := filepath.Join(dir, diskName(out.FileName))
		if err := os.WriteFile(path, out.Data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		logger.WithField("mime", out.MimeType).Debugf("wrote %d bytes", len(out.Data))
		fmt.Fprintf(w, "wrote %s\n", path)
	}
	return nil
}

// printCards shows the plan, styled only when stdout is a terminal.
func printCards(w io.Writer, sess *session.Session, plain bool) error {
	plain = plain || !display.IsTerminal(os.Stdout)
	return display.Cards(w, sess.Sections(), display.Options{Plain: plain})
}
