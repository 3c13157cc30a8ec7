package agent

import (
	"context"
	"errors"
)

// RetryingLLM wraps an LLMClient with bounded, error-only retries.
// Context errors are never retried, so a cancelled request fails fast
// and a slow backend cannot stall a session beyond its deadline.
type RetryingLLM struct {
	Next     LLMClient
	Attempts int
}

// WithRetry wraps client with the default policy of one retry.
func WithRetry(client LLMClient) *RetryingLLM {
	return &RetryingLLM{Next: client, Attempts: 2}
}

func (r *RetryingLLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		text, err := r.Next.Complete(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			break
		}
	}
	return "", lastErr
}
