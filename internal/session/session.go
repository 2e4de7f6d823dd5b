// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session holds the state of one planner session: the request that
// produced the current plan and the plan text itself. State is created with
// New, replaced wholesale by a successful generation, and never mutated in
// place.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lesson-planner/internal/completion"
	"github.com/pdiddy/lesson-planner/internal/prompt"
	"github.com/pdiddy/lesson-planner/internal/render"
	"github.com/pdiddy/lesson-planner/internal/section"
	"github.com/pdiddy/lesson-planner/pkg/types"
)

// ErrNoPlan is returned when a session has no generated plan yet.
var ErrNoPlan = errors.New("no lesson plan has been generated in this session")

// ValidationError reports form input that blocks generation. No request is
// sent when it is returned.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "invalid lesson request: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks that subject and topic are present and both choices are
// known. Whitespace-only text counts as missing.
func Validate(req types.LessonRequest) error {
	var result *multierror.Error
	if strings.TrimSpace(req.Subject) == "" {
		result = multierror.Append(result, errors.New("subject is required"))
	}
	if strings.TrimSpace(req.Topic) == "" {
		result = multierror.Append(result, errors.New("topic is required"))
	}
	if !req.GradeLevel.Valid() {
		result = multierror.Append(result, fmt.Errorf("unknown grade level %q", req.GradeLevel))
	}
	if !req.TeachingStyle.Valid() {
		result = multierror.Append(result, fmt.Errorf("unknown teaching style %q", req.TeachingStyle))
	}
	if err := result.ErrorOrNil(); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// Recorder receives one record per generation attempt.
type Recorder interface {
	Record(ctx context.Context, a types.Attempt) error
}

// Session is the explicit per-user state. The zero value is not usable;
// call New or Load.
type Session struct {
	ID          string              `yaml:"id"`
	Request     types.LessonRequest `yaml:"request"`
	RawPlan     string              `yaml:"raw_plan"`
	GeneratedAt time.Time           `yaml:"generated_at"`
}

// New starts a fresh session with no plan.
func New() *Session {
	return &Session{ID: uuid.NewString()}
}

// HasPlan reports whether a plan has been generated.
func (s *Session) HasPlan() bool {
	return s.RawPlan != ""
}

// Generator runs generation cycles against a completion service.
type Generator struct {
	Completer completion.Completer
	Recorder  Recorder
	Logger    *logrus.Logger

	// now is replaced in tests.
	now func() time.Time
}

func (g *Generator) clock() time.Time {
	if g.now != nil {
		return g.now()
	}
	return time.Now()
}

func (g *Generator) logger() *logrus.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return logrus.StandardLogger()
}

// Generate runs one cycle: validate, build the prompt, call the completion
// service once, and on success replace the session's request and plan.
// Any failure leaves s unchanged. Errors are *ValidationError,
// *completion.APIError, or *completion.ConnectionError.
func (g *Generator) Generate(ctx context.Context, s *Session, req types.LessonRequest) error {
	start := g.clock()
	log := g.logger().WithFields(logrus.Fields{
		"session": s.ID,
		"subject": req.Subject,
		"topic":   req.Topic,
	})

	if err := Validate(req); err != nil {
		log.WithError(err).Warn("generation blocked")
		g.record(ctx, s, req, start, err)
		return err
	}

	text, err := g.Completer.Complete(ctx, prompt.Build(req))
	if err != nil {
		log.WithError(err).Error("generation failed")
		g.record(ctx, s, req, start, err)
		return err
	}

	s.Request = req
	s.RawPlan = text
	s.GeneratedAt = g.clock().UTC()
	log.WithField("chars", len(text)).Info("lesson plan generated")
	g.record(ctx, s, req, start, nil)
	return nil
}

func (g *Generator) record(ctx context.Context, s *Session, req types.LessonRequest, start time.Time, err error) {
	if g.Recorder == nil {
		return
	}
	a := types.Attempt{
		SessionID: s.ID,
		Request:   req,
		Outcome:   types.OutcomeOK,
		Duration:  g.clock().Sub(start),
		CreatedAt: start.UTC(),
	}
	if err != nil {
		a.Message = err.Error()
		var (
			valErr *ValidationError
			apiErr *completion.APIError
		)
		switch {
		case errors.As(err, &valErr):
			a.Outcome = types.OutcomeValidationError
		case errors.As(err, &apiErr):
			a.Outcome = types.OutcomeAPIError
			a.StatusCode = apiErr.StatusCode
		default:
			a.Outcome = types.OutcomeConnectionError
		}
	}
	if rerr := g.Recorder.Record(ctx, a); rerr != nil {
		g.logger().WithError(rerr).Warn("could not record generation attempt")
	}
}

// Sections splits the current plan for display. It is recomputed on every
// call.
func (s *Session) Sections() types.SectionedPlan {
	return section.Split(s.RawPlan)
}

// Title is the export document title for the current plan.
func (s *Session) Title() string {
	return render.Title(s.Request.Subject, s.Request.Topic)
}

// Export is one rendered download.
type Export struct {
	FileName string
	MimeType string
	Data     []byte
}

// Export renders the current plan with e.
func (s *Session) Export(e render.Exporter) (Export, error) {
	if !s.HasPlan() {
		return Export{}, ErrNoPlan
	}
	data, err := e.Render(s.Title(), s.RawPlan)
	if err != nil {
		return Export{}, fmt.Errorf("rendering %s: %w", e.Extension(), err)
	}
	return Export{
		FileName: render.FileName(s.Request.Subject, s.Request.Topic, e.Extension()),
		MimeType: e.MimeType(),
		Data:     data,
	}, nil
}

// Load reads a session file. A missing file yields a new session.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("reading session %s: %w", path, err)
	}
	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing session %s: %w", path, err)
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return &s, nil
}

// Save writes the session file, replacing any previous one.
func (s *Session) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating session directory: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return os.Rename(tmp, path)
}
