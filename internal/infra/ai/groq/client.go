package groq

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	domain "github.com/reelcheck/reelcheck/internal/domain/ai"
)

// Client wraps satu koneksi ke endpoint OpenAI-compatible (Groq).
type Client struct {
	*openai.Client
	Model string
}

func NewClient(baseURL, apiKey, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{Client: openai.NewClientWithConfig(cfg), Model: model}
}

func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	resp, err := c.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return "", domain.ErrQuotaExceeded
		}
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Factory nyoba tiap API key sesuai urutan config sampai ada yang jalan.
// Probe = satu call ListModels yang murah; key pertama yang lolos dipakai.
type Factory struct {
	BaseURL string
	Model   string
	APIKeys []string
	// probe injectable supaya fallback loop gampang ditest
	probe func(ctx context.Context, c *Client) error
}

func NewFactory(baseURL, model string, apiKeys []string) *Factory {
	return &Factory{
		BaseURL: baseURL,
		Model:   model,
		APIKeys: apiKeys,
		probe: func(ctx context.Context, c *Client) error {
			_, err := c.ListModels(ctx)
			return err
		},
	}
}

// Client balikin client pertama yang probe-nya sukses plus index key-nya
// (index dipakai buat observability).
func (f *Factory) Client(ctx context.Context) (domain.Client, int, error) {
	for idx, key := range f.APIKeys {
		if key == "" {
			continue
		}
		c := NewClient(f.BaseURL, key, f.Model)
		if err := f.probe(ctx, c); err != nil {
			log.Printf("ai credential index=%d failed probe: %v", idx, err)
			continue
		}
		log.Printf("ai credential index=%d selected", idx)
		return c, idx, nil
	}
	return nil, -1, domain.ErrAllKeysFailed
}
