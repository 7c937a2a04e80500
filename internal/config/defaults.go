package config

const (
	defaultConfigPath        = "~/.config/recamazon/config.toml"
	projectConfigName        = "recamazon.toml"
	defaultProvider          = ProviderOpenRouter
	defaultBaseURL           = "https://openrouter.ai/api/v1/chat/completions"
	defaultModel             = "amazon/nova-lite-v1"
	defaultReferer           = "https://github.com/morispolanco/recamazon"
	defaultTitle             = "Amazon Book Analyzer"
	defaultTimeoutSeconds    = 120
	defaultRetryAttempts     = 1
	defaultRequestsPerMinute = 0
	defaultCatalog           = CatalogBooks
	defaultServerBind        = "127.0.0.1:8501"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Provider names accepted by llm.provider.
const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
)

// Catalog names accepted by pipeline.catalog.
const (
	CatalogBooks    = "books"
	CatalogProducts = "products"
)

// MissingAPIKeyMessage is shown when no completion credential is configured.
const MissingAPIKeyMessage = "Please add your OpenRouter API key to the configuration (llm.api_key) or the OPENROUTER_API_KEY environment variable."

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		LLM: LLM{
			Provider:          defaultProvider,
			BaseURL:           defaultBaseURL,
			Model:             defaultModel,
			Referer:           defaultReferer,
			Title:             defaultTitle,
			TimeoutSeconds:    defaultTimeoutSeconds,
			RetryAttempts:     defaultRetryAttempts,
			RequestsPerMinute: defaultRequestsPerMinute,
		},
		Pipeline: Pipeline{
			Catalog: defaultCatalog,
		},
		Server: Server{
			Bind: defaultServerBind,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
