// Package provider builds the configured completion client.
package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/morispolanco/recamazon/internal/config"
	"github.com/morispolanco/recamazon/internal/services"
	"github.com/morispolanco/recamazon/internal/services/llm"
	"github.com/morispolanco/recamazon/internal/services/openaichat"
)

// Client is a completion provider that can also probe its endpoint.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	HealthCheck(ctx context.Context) error
	Model() string
}

// Options carries collaborators that do not come from configuration.
type Options struct {
	Logger     *slog.Logger
	HTTPClient *http.Client
	// RetryAttempts overrides the configured attempt count when positive.
	RetryAttempts int
}

// New returns the client selected by cfg.Provider.
func New(cfg config.LLMConfig, opts Options) (Client, error) {
	attempts := cfg.RetryAttempts
	if opts.RetryAttempts > 0 {
		attempts = opts.RetryAttempts
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", config.ProviderOpenRouter:
		return llm.NewClient(llm.Config{
			APIKey:         cfg.APIKey,
			BaseURL:        cfg.BaseURL,
			Model:          cfg.Model,
			Referer:        cfg.Referer,
			Title:          cfg.Title,
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
			llm.WithHTTPClient(opts.HTTPClient),
			llm.WithRetryMaxAttempts(attempts),
			llm.WithRequestsPerMinute(cfg.RequestsPerMinute),
			llm.WithLogger(opts.Logger),
		), nil
	case config.ProviderOpenAI:
		return openaichat.NewClient(openaichat.Config{
			APIKey:         cfg.APIKey,
			BaseURL:        cfg.BaseURL,
			Model:          cfg.Model,
			Referer:        cfg.Referer,
			Title:          cfg.Title,
			TimeoutSeconds: cfg.TimeoutSeconds,
			RetryAttempts:  attempts,
		},
			openaichat.WithHTTPClient(opts.HTTPClient),
			openaichat.WithLogger(opts.Logger),
		), nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, "provider", "new", fmt.Sprintf("unknown llm.provider %q", cfg.Provider), nil)
	}
}
