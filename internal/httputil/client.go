// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for outbound service calls.
package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/lesson-planner/pkg/types"
)

// MaxErrorBody bounds how much of a failed response body is read back for
// error reporting.
const MaxErrorBody = 64 << 10

// NewClient returns an http.Client whose Timeout covers the whole exchange,
// connection through reading the last body byte.
func NewClient(cfg types.HTTPConfig) *http.Client {
	return &http.Client{Timeout: cfg.Timeout}
}

// PostJSON marshals body and POSTs it to url with a JSON content type, the
// configured User-Agent, and any extra headers. The caller owns the
// returned response body. A single request is issued; there is no retry.
func PostJSON(ctx context.Context, client *http.Client, url string, cfg types.HTTPConfig, headers map[string]string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	if client == nil {
		client = http.DefaultClient
	}
	return client.Do(req)
}

// ReadErrorBody reads at most MaxErrorBody bytes of resp.Body as text.
func ReadErrorBody(resp *http.Response) string {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, MaxErrorBody))
	return string(data)
}

// IsSuccess reports whether status is in the 2xx range.
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}
