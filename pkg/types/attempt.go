// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// AttemptOutcome classifies how one generation attempt ended.
type AttemptOutcome string

const (
	OutcomeOK              AttemptOutcome = "ok"
	OutcomeValidationError AttemptOutcome = "validation_error"
	OutcomeAPIError        AttemptOutcome = "api_error"
	OutcomeConnectionError AttemptOutcome = "connection_error"
)

// Attempt records the metadata of one generation cycle. It never carries
// the generated plan text.
type Attempt struct {
	// ID is a random UUID assigned when the attempt is recorded.
	ID string `json:"id" yaml:"id"`

	// SessionID links the attempt to the session that issued it.
	SessionID string `json:"session_id" yaml:"session_id"`

	Request LessonRequest `json:"request" yaml:"request"`

	Outcome AttemptOutcome `json:"outcome" yaml:"outcome"`

	// StatusCode is the HTTP status for api_error outcomes, 0 otherwise.
	StatusCode int `json:"status_code,omitempty" yaml:"status_code,omitempty"`

	// Message is the error text for failed attempts.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`

	Duration  time.Duration `json:"duration" yaml:"duration"`
	CreatedAt time.Time     `json:"created_at" yaml:"created_at"`
}
