package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of generative task being performed.
type TaskType string

const (
	TaskSuggestValues   TaskType = "suggest_values"
	TaskSuggestChapters TaskType = "suggest_chapters"
	TaskSummary         TaskType = "summary"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// Config holds all configuration for the generative-text subsystem.
type Config struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	Model      string
	APIKey     string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns a Config with sensible defaults.
// Generation is disabled until an API key is provided.
func DefaultConfig() Config {
	return Config{
		Enabled:    false,
		LogCalls:   false,
		Endpoint:   "https://generativelanguage.googleapis.com",
		Model:      "gemini-3-flash-preview",
		TimeoutMs:  15000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskSuggestValues:   {Temperature: 0.4, MaxTokens: 1024, TimeoutMs: 15000},
			TaskSuggestChapters: {Temperature: 0.5, MaxTokens: 2048, TimeoutMs: 20000},
			TaskSummary:         {Temperature: 0.6, MaxTokens: 2048, TimeoutMs: 30000},
		},
	}
}

// LoadConfig reads generative configuration from environment variables,
// falling back to defaults for any unset values. Setting an API key
// enables the subsystem unless explicitly disabled.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("ARCHISHEETS_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
		cfg.Enabled = true
	}
	if v := os.Getenv("ARCHISHEETS_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("ARCHISHEETS_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("ARCHISHEETS_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("ARCHISHEETS_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("ARCHISHEETS_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("ARCHISHEETS_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}
