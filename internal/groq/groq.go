package groq

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const defaultBaseURL = "https://api.groq.com/openai/v1"

// Fixed sampling parameters for every completion.
const (
	temperature = 0.7
	maxTokens   = 1024
	topP        = 0.9
)

// Client calls Groq's OpenAI-compatible chat-completion endpoint.
type Client struct {
	client *openai.Client
	model  string
}

func NewClient(apiKey, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = defaultBaseURL
	return &Client{client: openai.NewClientWithConfig(cfg), model: model}
}

// NewClientWithBaseURL is used by tests to target a local server.
func NewClientWithBaseURL(apiKey, model, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &Client{client: openai.NewClientWithConfig(cfg), model: model}
}

// Prompt sends a system message plus a user message and returns the first
// choice's text. Every call is attempted exactly once.
func (c *Client) Prompt(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		TopP:        topP,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("groq completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("groq returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
