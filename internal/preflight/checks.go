package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/morispolanco/recamazon/internal/config"
	"github.com/morispolanco/recamazon/internal/provider"
	"github.com/morispolanco/recamazon/internal/services"
)

const llmCheckTimeout = 30 * time.Second

// CheckConfig reports whether cfg passes validation.
func CheckConfig(cfg *config.Config) Result {
	const name = "Configuration"
	if cfg == nil {
		return Result{Name: name, Detail: "not loaded"}
	}
	if err := cfg.Validate(); err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("provider %s, catalog %s", cfg.LLM.Provider, cfg.Pipeline.Catalog)}
}

// CheckAPIKey reports whether a completion credential is configured.
func CheckAPIKey(cfg *config.Config) Result {
	const name = "API key"
	if !cfg.HasAPIKey() {
		return Result{Name: name, Detail: config.MissingAPIKeyMessage}
	}
	return Result{Name: name, Passed: true, Detail: "present"}
}

// CheckLLM verifies that the LLM API is reachable and the key is valid.
// It uses a 30-second timeout and a single attempt (no retries).
func CheckLLM(ctx context.Context, name string, cfg config.LLMConfig, httpClient *http.Client) Result {
	if cfg.APIKey == "" {
		return Result{Name: name, Detail: "API key missing"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, llmCheckTimeout)
	defer cancel()

	client, err := provider.New(cfg, provider.Options{HTTPClient: httpClient, RetryAttempts: 1})
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	if err := client.HealthCheck(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeLLMError(err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("API reachable (model %s)", client.Model())}
}

// summarizeLLMError produces a human-readable summary for LLM health check failures.
func summarizeLLMError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "health check timed out (LLM API unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "health check timed out (LLM API unreachable)"
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Sprintf("LLM API unreachable (%v)", urlErr.Err)
	}
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return "authentication failed (check llm.api_key)"
	case errors.Is(err, services.ErrMalformedResponse):
		return fmt.Sprintf("unexpected response (%v)", err)
	}
	return err.Error()
}
