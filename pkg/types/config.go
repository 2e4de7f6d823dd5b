// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for outbound requests.
type HTTPConfig struct {
	// Timeout is the upper bound on one request, connection to last byte.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "lesson-planner/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CompletionConfig holds settings for the chat-completion service.
type CompletionConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoint is the chat-completions URL.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Model is the model identifier sent in every request.
	Model string `json:"model" yaml:"model"`

	// APIKey is the bearer token. It is never persisted or logged.
	APIKey string `json:"-" yaml:"-"`

	// MaxTokens bounds the length of the generated plan.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Temperature is the sampling temperature.
	Temperature float64 `json:"temperature" yaml:"temperature"`
}

// Completion defaults.
const (
	DefaultCompletionEndpoint = "https://api.together.xyz/v1/chat/completions"
	DefaultCompletionModel    = "deepseek-ai/DeepSeek-V3"
	DefaultMaxTokens          = 3500
	DefaultTemperature        = 0.6
	DefaultCompletionTimeout  = 60 * time.Second
)

// DefaultCompletionConfig returns the settings the planner ships with. The
// API key is left empty and must come from configuration or secrets.
func DefaultCompletionConfig() CompletionConfig {
	return CompletionConfig{
		HTTPConfig: HTTPConfig{
			Timeout:   DefaultCompletionTimeout,
			UserAgent: "lesson-planner/0.1",
		},
		Endpoint:    DefaultCompletionEndpoint,
		Model:       DefaultCompletionModel,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	}
}

// ExportConfig holds settings for writing export files.
type ExportConfig struct {
	// OutputDir is the directory export files are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Formats lists the formats to write: "pdf", "docx".
	Formats []string `json:"formats" yaml:"formats"`
}

// LedgerConfig holds settings for the generation attempt log.
type LedgerConfig struct {
	// Path is the SQLite database file. Empty disables the ledger.
	Path string `json:"path" yaml:"path"`
}

// PlannerConfig groups all settings for the CLI.
type PlannerConfig struct {
	Completion  CompletionConfig `json:"completion" yaml:"completion"`
	Export      ExportConfig     `json:"export" yaml:"export"`
	Ledger      LedgerConfig     `json:"ledger" yaml:"ledger"`
	SessionFile string           `json:"session_file" yaml:"session_file"`
	SecretsDir  string           `json:"secrets_dir" yaml:"secrets_dir"`
}
