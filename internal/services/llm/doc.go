// Package llm provides an OpenRouter chat client that turns one prompt into
// one text reply.
//
// # Request Shape
//
// Every call sends {model, messages:[{role:"user", content:<prompt>}]} with a
// bearer credential injected at construction. Optional HTTP-Referer and X-Title
// headers identify the application to OpenRouter.
//
// # Entry Points
//
// NewClient: construct client from Config.
// Client.Complete: send a prompt, receive the first reply's text content.
// Client.HealthCheck: verify API key and model availability.
//
// # Failures
//
// Errors wrap the services markers: ErrUnauthorized (missing key, HTTP 401 or
// 403), ErrNetwork (transport failures and other non-2xx statuses), and
// ErrMalformedResponse (undecodable body, no choices, empty content).
//
// # Retry Behaviour
//
// A single attempt is made by default. WithRetryMaxAttempts enables retries on
// HTTP 408/429/5xx, network timeouts, and empty content with exponential
// backoff (base 1s, max 10s), honouring Retry-After. Context cancellation
// aborts retries immediately. WithRequestsPerMinute adds a token-bucket
// throttle in front of every request.
package llm
