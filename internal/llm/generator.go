// Package llm produces analysis text from a prompt via an OpenAI-compatible
// chat completion API.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/openai/openai-go"
)

// Generator produces completions with a fixed model. Generation is blocking
// with no internal timeout; the caller's context governs cancellation.
type Generator struct {
	client *openai.Client
	model  string
}

// NewGenerator creates a Generator using the given API client and model name.
func NewGenerator(client *openai.Client, model string) *Generator {
	return &Generator{
		client: client,
		model:  model,
	}
}

// Generate sends the prompt as a single user message and returns the model's
// text verbatim. Rate limit and server errors are retried with exponential
// backoff; other errors fail immediately.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	var output string

	operation := func() error {
		resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			},
			Model: openai.ChatModel(g.model),
		})
		if err != nil {
			if isRetryableError(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		if len(resp.Choices) == 0 {
			return backoff.Permanent(fmt.Errorf("completion returned no choices"))
		}
		output = resp.Choices[0].Message.Content
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	return output, nil
}

// isRetryableError reports whether the error is worth retrying: rate limits
// (HTTP 429) and transient server-side failures (5xx).
func isRetryableError(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}
	return false
}
