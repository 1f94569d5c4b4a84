// Package ai talks to an OpenAI-compatible chat-completion endpoint
// (OpenRouter in production) to classify inbound messages and to generate
// free-form conversational replies.
//
// The package does no logging of its own; callers decide how analyzer and
// responder failures surface. Credentials live in the Settings record and are
// passed in at construction, never fetched here.
package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// Client wraps the chat-completion API for one (key, model) pair. A fresh
// Client is cheap to build per pipeline invocation since credentials come
// from the settings row.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient builds a Client against baseURL using the given API key and
// model identifier.
func NewClient(baseURL, apiKey, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &Client{api: openai.NewClientWithConfig(cfg), model: model}
}

// TestConnection probes the endpoint's model listing to verify the API key.
// Exposed through the admin settings surface.
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.api.ListModels(ctx)
	return err
}
