package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/morispolanco/recamazon/internal/services"
)

// Validate ensures the configuration is usable. A missing API key is not a
// validation failure; callers that issue requests use RequireAPIKey.
func (c *Config) Validate() error {
	for _, check := range []func() error{c.validateLLM, c.validatePipeline, c.validateLogging} {
		if err := check(); err != nil {
			return services.Wrap(services.ErrConfiguration, "config", "validate", "", err)
		}
	}
	return nil
}

func (c *Config) validateLLM() error {
	switch c.LLM.Provider {
	case ProviderOpenRouter, ProviderOpenAI:
	default:
		return fmt.Errorf("llm.provider must be %q or %q, got %q", ProviderOpenRouter, ProviderOpenAI, c.LLM.Provider)
	}
	parsed, err := url.Parse(c.LLM.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("llm.base_url must be an absolute URL, got %q", c.LLM.BaseURL)
	}
	if c.LLM.RequestsPerMinute < 0 {
		return errors.New("llm.requests_per_minute must be zero or positive")
	}
	return nil
}

func (c *Config) validatePipeline() error {
	switch c.Pipeline.Catalog {
	case CatalogBooks, CatalogProducts:
		return nil
	default:
		return fmt.Errorf("pipeline.catalog must be %q or %q, got %q", CatalogBooks, CatalogProducts, c.Pipeline.Catalog)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}

// RequireAPIKey returns a configuration error when no credential is available.
func (c *Config) RequireAPIKey() error {
	if c.HasAPIKey() {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = defaultConfigPath
	}
	message := strings.TrimSuffix(MissingAPIKeyMessage, ".") + fmt.Sprintf(" (edit %s, create it with 'recamazon config init')", defaultPath)
	return services.Wrap(services.ErrConfiguration, "config", "llm.api_key", message, nil)
}
