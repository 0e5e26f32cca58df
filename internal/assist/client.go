// Package assist talks to an OpenAI-compatible chat endpoint to extract
// 6W2H plan fields and to draft audit suggestions from a shortlist.
package assist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/totohpy/pa-ai-auditor/internal/config"
	"github.com/totohpy/pa-ai-auditor/internal/domain"
)

// Defaults for an empty Config.
const (
	DefaultBaseURL    = "https://api.opentyphoon.ai/v1"
	DefaultModel      = "typhoon-v2.1-12b-instruct"
	DefaultTimeout    = 60 * time.Second
	DefaultMaxRetries = 3
)

// Config configures the chat client.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
	// MaxRetries bounds retries on 429 and 5xx responses. Negative disables retrying.
	MaxRetries int
	Logger     *zap.Logger
}

// FromAppConfig maps the assist section of the application config,
// reading the key from the configured environment variable.
func FromAppConfig(c config.AssistConfig, logger *zap.Logger) Config {
	return Config{
		BaseURL:     c.BaseURL,
		APIKey:      c.APIKey(),
		Model:       c.Model,
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
		Timeout:     time.Duration(c.TimeoutSecs) * time.Second,
		Logger:      logger,
	}
}

// Client implements domain.Suggester and domain.Extractor.
type Client struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	maxRetries  int
	logger      *zap.Logger
}

var (
	_ domain.Suggester = (*Client)(nil)
	_ domain.Extractor = (*Client)(nil)
)

// NewClient returns domain.ErrMissingAPIKey when cfg carries no key.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, domain.ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		maxRetries:  cfg.MaxRetries,
		logger:      cfg.Logger.Named("assist"),
	}, nil
}

// complete sends a single user prompt and returns the first choice's text.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: prompt}},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	for attempt := 0; ; attempt++ {
		start := time.Now()
		resp, err := c.client.CreateChatCompletion(ctx, req)
		if err == nil {
			if len(resp.Choices) == 0 {
				return "", errors.New("chat completion returned no choices")
			}
			c.logger.Debug("chat completion",
				zap.String("model", c.model),
				zap.Int("prompt_tokens", resp.Usage.PromptTokens),
				zap.Int("completion_tokens", resp.Usage.CompletionTokens),
				zap.Duration("took", time.Since(start)),
			)
			return resp.Choices[0].Message.Content, nil
		}
		if attempt >= c.maxRetries || !retryable(err) {
			return "", parseAPIError(err)
		}
		d := retryDelay(attempt)
		c.logger.Warn("chat completion failed, retrying", zap.Int("attempt", attempt+1), zap.Duration("backoff", d), zap.Error(err))
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(d):
		}
	}
}

func retryable(err error) bool {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	default:
		return false
	}
	return status == http.StatusTooManyRequests || status >= 500
}

func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	// exponential backoff capped at 5s
	d := 200 * time.Millisecond << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}

// parseAPIError extracts a human-readable error from the API response.
func parseAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("chat API error %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("chat API error %d: %s", reqErr.HTTPStatusCode, detail)
		}
		return fmt.Errorf("chat API error %d: %w", reqErr.HTTPStatusCode, err)
	}
	return fmt.Errorf("chat request failed: %w", err)
}

// extractDetail reads the "detail" field some compatible servers use instead of "error".
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil {
		return parsed.Detail
	}
	return ""
}
