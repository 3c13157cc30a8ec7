// Package agent implements the five workflow steps and the LLM
// plumbing they share: client abstraction, prompt construction, and
// tolerant decoding of structured model output.
package agent

import "context"

// Prompt is one request to the text-generation backend.
type Prompt struct {
	System      string
	User        string
	Temperature float64
}

// LLMClient abstracts the text-generation backend so it can be swapped
// or mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings carries the base configuration for concrete clients.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// Per-agent sampling temperatures.
const (
	contextTemperature   = 0.7
	generatorTemperature = 0.8
	criticTemperature    = 0.3
	refinerTemperature   = 0.7
	readinessTemperature = 0.5
)
