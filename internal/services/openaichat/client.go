// Package openaichat implements the completion contract with the official
// OpenAI Go SDK, for OpenAI-compatible endpoints (OpenAI itself, or
// OpenRouter's /api/v1 root).
package openaichat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/morispolanco/recamazon/internal/logging"
	"github.com/morispolanco/recamazon/internal/metrics"
	"github.com/morispolanco/recamazon/internal/services"
)

const (
	providerName       = "openai"
	defaultHTTPTimeout = 120 * time.Second
)

// Config captures the SDK client settings.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	Referer        string
	Title          string
	TimeoutSeconds int
	// RetryAttempts is the total attempt count; 1 disables SDK retries.
	RetryAttempts int
}

// Client sends single-message chat completions through the SDK.
type Client struct {
	sdk    openai.Client
	model  string
	hasKey bool
	logger *slog.Logger
}

// Option customizes the client.
type Option func(*settings)

type settings struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// WithHTTPClient overrides the HTTP client handed to the SDK.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// NewClient constructs an SDK-backed client.
func NewClient(cfg Config, opts ...Option) *Client {
	s := settings{}
	for _, opt := range opts {
		opt(&s)
	}
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	if s.httpClient == nil {
		s.httpClient = &http.Client{Timeout: timeout}
	}
	retries := cfg.RetryAttempts - 1
	if retries < 0 {
		retries = 0
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	requestOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(retries),
		option.WithHTTPClient(s.httpClient),
	}
	if base := APIRoot(cfg.BaseURL); base != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(base))
	}
	if referer := strings.TrimSpace(cfg.Referer); referer != "" {
		requestOpts = append(requestOpts, option.WithHeader("HTTP-Referer", referer))
	}
	if title := strings.TrimSpace(cfg.Title); title != "" {
		requestOpts = append(requestOpts, option.WithHeader("X-Title", title))
	}

	return &Client{
		sdk:    openai.NewClient(requestOpts...),
		model:  strings.TrimSpace(cfg.Model),
		hasKey: apiKey != "",
		logger: logging.NewComponentLogger(s.logger, "openai-chat"),
	}
}

// APIRoot converts a configured endpoint into the API root the SDK expects,
// dropping a trailing /chat/completions and ensuring a trailing slash.
func APIRoot(baseURL string) string {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		return ""
	}
	base = strings.TrimRight(base, "/")
	base = strings.TrimSuffix(base, "/chat/completions")
	return base + "/"
}

// Model returns the model identifier sent with every request.
func (c *Client) Model() string {
	return c.model
}

// Complete sends prompt as a single user message and returns the first reply's content.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", services.Wrap(services.ErrValidation, "openai", "complete", "prompt required", nil)
	}
	if !c.hasKey {
		return "", services.Wrap(services.ErrUnauthorized, "openai", "complete", "api key required", nil)
	}

	started := time.Now()
	content, err := c.complete(ctx, prompt)
	elapsed := time.Since(started)
	metrics.RecordProviderRequest(providerName, services.Classify(err), elapsed.Seconds())
	if err != nil {
		c.logger.Debug("chat completion failed",
			logging.String("model", c.model),
			logging.Duration("elapsed", elapsed),
			logging.String(logging.FieldErrorClass, services.Classify(err)),
			logging.Error(err),
		)
		return "", err
	}
	c.logger.Debug("chat completion completed",
		logging.String("model", c.model),
		logging.Duration("elapsed", elapsed),
	)
	return content, nil
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.sdk.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: openai.ChatModel(c.model),
	})
	if err != nil {
		return "", classifySDKError(err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", services.Wrap(services.ErrMalformedResponse, "openai", "complete", "empty choices", nil)
	}
	for _, choice := range resp.Choices {
		if content := strings.TrimSpace(choice.Message.Content); content != "" {
			return content, nil
		}
	}
	return "", services.Wrap(services.ErrMalformedResponse, "openai", "complete",
		fmt.Sprintf("empty content (finish_reason=%v)", resp.Choices[0].FinishReason), nil)
}

func classifySDKError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return services.Wrap(services.ErrUnauthorized, "openai", "complete", fmt.Sprintf("http %d", apiErr.StatusCode), err)
		default:
			return services.Wrap(services.ErrNetwork, "openai", "complete", fmt.Sprintf("http %d", apiErr.StatusCode), err)
		}
	}
	return services.Wrap(services.ErrNetwork, "openai", "complete", "request failed", err)
}

// HealthCheck issues a fast ping to verify the API key and model are usable.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.Complete(ctx, "Reply with the single word OK.")
	return err
}
