package chatapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/synapsehub/support-portal/internal/config"
	"github.com/synapsehub/support-portal/internal/domain"
)

// Client calls an OpenAI-compatible chat completion API.
type Client interface {
	Complete(ctx context.Context, messages []domain.ChatMessage) (string, error)
}

type client struct {
	url         string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	http        *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &client{
		url:         cfg.ChatAPIURL,
		apiKey:      cfg.ChatAPIKey,
		model:       cfg.ChatModel,
		maxTokens:   cfg.ChatMaxTokens,
		temperature: cfg.ChatTemperature,
		http:        http.DefaultClient,
	}
}

type completionRequest struct {
	Model       string               `json:"model"`
	Messages    []domain.ChatMessage `json:"messages"`
	MaxTokens   int                  `json:"max_tokens"`
	Temperature float64              `json:"temperature"`
	Stream      bool                 `json:"stream"`
}

type completionResponse struct {
	Choices []struct {
		Message domain.ChatMessage `json:"message"`
	} `json:"choices"`
}

func (c *client) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Stream:      false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call completion API: %v: %w", err, domain.ErrUpstream)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return "", fmt.Errorf("completion API rejected credentials: %w", domain.ErrUpstreamAuth)
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("completion API throttled: %w", domain.ErrUpstreamRateLimited)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("completion API responded %d: %w", resp.StatusCode, domain.ErrUpstream)
	}

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode completion response: %v: %w", err, domain.ErrUpstream)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("completion response had no choices: %w", domain.ErrUpstream)
	}
	return out.Choices[0].Message.Content, nil
}
