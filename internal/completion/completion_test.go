// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package completion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lesson-planner/internal/prompt"
	"github.com/pdiddy/lesson-planner/pkg/types"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testClient(t *testing.T, endpoint string) *Client {
	t.Helper()
	cfg := types.DefaultCompletionConfig()
	cfg.Endpoint = endpoint
	cfg.APIKey = "test-key"
	c, err := New(cfg, quietLogger())
	require.NoError(t, err)
	return c
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(types.DefaultCompletionConfig(), quietLogger())
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewAppliesDefaults(t *testing.T) {
	c, err := New(types.CompletionConfig{APIKey: "k"}, nil)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultCompletionEndpoint, c.cfg.Endpoint)
	assert.Equal(t, types.DefaultCompletionModel, c.cfg.Model)
	assert.Equal(t, 3500, c.cfg.MaxTokens)
	assert.Zero(t, c.cfg.Temperature)
	assert.Equal(t, 60*time.Second, c.http.Timeout)
}

func TestCompleteSendsZeroTemperature(t *testing.T) {
	var got map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		fmt.Fprint(w, `{"choices":[{"message":{"content":"ok"}}]}`)
	}))
	defer ts.Close()

	cfg := types.DefaultCompletionConfig()
	cfg.Endpoint = ts.URL
	cfg.APIKey = "test-key"
	cfg.Temperature = 0
	c, err := New(cfg, quietLogger())
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "p")
	require.NoError(t, err)
	require.Contains(t, got, "temperature")
	assert.Equal(t, 0.0, got["temperature"])
}

func TestCompleteSuccess(t *testing.T) {
	var got chatRequest
	var auth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"### Learning Objectives\n- one"}}]}`)
	}))
	defer ts.Close()

	text, err := testClient(t, ts.URL).Complete(context.Background(), "make a plan")
	require.NoError(t, err)

	assert.Equal(t, "### Learning Objectives\n- one", text)
	assert.Equal(t, "Bearer test-key", auth)
	assert.Equal(t, types.DefaultCompletionModel, got.Model)
	assert.Equal(t, 3500, got.MaxTokens)
	assert.InDelta(t, 0.6, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, chatMessage{Role: "system", Content: prompt.SystemInstruction}, got.Messages[0])
	assert.Equal(t, chatMessage{Role: "user", Content: "make a plan"}, got.Messages[1])
}

func TestCompleteAPIError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"error":"slow down"}`},
		{name: "unauthorized", status: http.StatusUnauthorized, body: "bad key"},
		{name: "server error", status: http.StatusInternalServerError, body: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				calls++
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer ts.Close()

			_, err := testClient(t, ts.URL).Complete(context.Background(), "p")

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr), "want *APIError, got %T", err)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.body, apiErr.Body)
			assert.Equal(t, 1, calls, "no retry expected")
		})
	}
}

func TestCompleteConnectionErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantMsg string
	}{
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `{"choices":`)
			},
			wantMsg: "decoding completion response",
		},
		{
			name: "no choices",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `{"choices":[]}`)
			},
			wantMsg: "no choices",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			_, err := testClient(t, ts.URL).Complete(context.Background(), "p")

			var connErr *ConnectionError
			require.True(t, errors.As(err, &connErr), "want *ConnectionError, got %T", err)
			assert.Contains(t, connErr.Message, tt.wantMsg)
		})
	}
}

func TestCompleteUnreachable(t *testing.T) {
	_, err := testClient(t, "http://127.0.0.1:1/").Complete(context.Background(), "p")

	var connErr *ConnectionError
	require.True(t, errors.As(err, &connErr))
	assert.NotEmpty(t, connErr.Message)
	assert.Contains(t, err.Error(), "Failed to connect to API")
}

func TestCompleteTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, `{"choices":[{"message":{"content":"late"}}]}`)
	}))
	defer ts.Close()

	cfg := types.DefaultCompletionConfig()
	cfg.Endpoint = ts.URL
	cfg.APIKey = "k"
	cfg.Timeout = 20 * time.Millisecond
	c, err := New(cfg, quietLogger())
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "p")
	var connErr *ConnectionError
	assert.True(t, errors.As(err, &connErr))
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{StatusCode: 429, Body: "too many"}
	assert.Equal(t, "API Error: 429 - too many", err.Error())
}
