// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lesson-planner/pkg/types"
)

func TestPostJSON_SendsBodyAndHeaders(t *testing.T) {
	var (
		gotBody   map[string]any
		gotHeader http.Header
		gotMethod string
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotHeader = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	cfg := types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "lesson-planner-test/0.1"}
	resp, err := PostJSON(context.Background(), ts.Client(), ts.URL, cfg,
		map[string]string{"Authorization": "Bearer k"},
		map[string]any{"model": "m", "max_tokens": 10})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))
	assert.Equal(t, "lesson-planner-test/0.1", gotHeader.Get("User-Agent"))
	assert.Equal(t, "Bearer k", gotHeader.Get("Authorization"))
	assert.Equal(t, "m", gotBody["model"])
	assert.EqualValues(t, 10, gotBody["max_tokens"])
}

func TestPostJSON_SingleAttemptOn429(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	resp, err := PostJSON(context.Background(), ts.Client(), ts.URL, types.HTTPConfig{}, nil, struct{}{})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, 1, calls)
}

func TestPostJSON_UnmarshalableBody(t *testing.T) {
	_, err := PostJSON(context.Background(), nil, "http://127.0.0.1:1/", types.HTTPConfig{}, nil, make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marshaling request")
}

func TestNewClientTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := NewClient(types.HTTPConfig{Timeout: 20 * time.Millisecond})
	_, err := PostJSON(context.Background(), client, ts.URL, types.HTTPConfig{}, nil, struct{}{})
	require.Error(t, err)
}

func TestReadErrorBodyTruncates(t *testing.T) {
	big := strings.Repeat("x", MaxErrorBody+100)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(big))
	}))
	defer ts.Close()

	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Len(t, ReadErrorBody(resp), MaxErrorBody)
}

func TestIsSuccess(t *testing.T) {
	assert.True(t, IsSuccess(200))
	assert.True(t, IsSuccess(204))
	assert.False(t, IsSuccess(199))
	assert.False(t, IsSuccess(301))
	assert.False(t, IsSuccess(429))
}
