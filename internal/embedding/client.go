package embedding

import (
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Client wraps an OpenAI-compatible API client for embedding generation.
// Ollama exposes the same surface at its /v1 endpoint, so the one client
// covers both a local model server and the hosted API.
type Client struct {
	client *openai.Client
}

// NewClient creates a client against the given base URL. Ollama ignores the
// API key but the OpenAI wire format requires one to be present.
func NewClient(baseURL, apiKey string) *Client {
	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)
	return &Client{client: &client}
}

// Client returns the underlying API client for use in other packages
// (e.g. text generation).
func (c *Client) Client() *openai.Client {
	return c.client
}
