// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package completion sends lesson prompts to a chat-completion service and
// returns the generated plan text.
package completion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/lesson-planner/internal/httputil"
	"github.com/pdiddy/lesson-planner/internal/prompt"
	"github.com/pdiddy/lesson-planner/pkg/types"
)

// Completer turns a prompt into generated text. Tests supply a fake.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrMissingAPIKey is returned by New when no API key is configured.
var ErrMissingAPIKey = errors.New("completion API key is not configured (set LESSON_PLANNER_COMPLETION_API_KEY or .secrets/together-api-key)")

// APIError reports a non-2xx response from the completion service.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API Error: %d - %s", e.StatusCode, e.Body)
}

// ConnectionError reports a transport failure, timeout, or a response that
// could not be read as a chat completion.
type ConnectionError struct {
	Message string
	Err     error
}

func (e *ConnectionError) Error() string {
	return "Failed to connect to API: " + e.Message
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	cfg    types.CompletionConfig
	http   *http.Client
	logger *logrus.Logger
}

// New returns a Client for cfg. Zero fields in cfg fall back to the
// defaults from types.DefaultCompletionConfig, except the API key, which
// is required, and the temperature, where zero selects greedy sampling.
func New(cfg types.CompletionConfig, logger *logrus.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	def := types.DefaultCompletionConfig()
	if cfg.Endpoint == "" {
		cfg.Endpoint = def.Endpoint
	}
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = def.MaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Client{
		cfg:    cfg,
		http:   httputil.NewClient(cfg.HTTPConfig),
		logger: logger,
	}, nil
}

// chatRequest is the request body for the chat-completions API.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse holds the one field read back: choices[0].message.content.
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends p with the fixed system instruction and returns the
// assistant message. It makes exactly one request.
func (c *Client) Complete(ctx context.Context, p string) (string, error) {
	body := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: prompt.SystemInstruction},
			{Role: "user", Content: p},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	start := time.Now()
	resp, err := httputil.PostJSON(ctx, c.http, c.cfg.Endpoint, c.cfg.HTTPConfig,
		map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}, body)
	if err != nil {
		return "", &ConnectionError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	log := c.logger.WithFields(logrus.Fields{
		"model":   c.cfg.Model,
		"status":  resp.StatusCode,
		"elapsed": time.Since(start).Round(time.Millisecond),
	})

	if !httputil.IsSuccess(resp.StatusCode) {
		log.Debug("completion request rejected")
		return "", &APIError{StatusCode: resp.StatusCode, Body: httputil.ReadErrorBody(resp)}
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", &ConnectionError{Message: fmt.Sprintf("decoding completion response: %v", err), Err: err}
	}
	if len(cr.Choices) == 0 {
		return "", &ConnectionError{Message: "completion response has no choices"}
	}

	log.Debug("completion received")
	return cr.Choices[0].Message.Content, nil
}
