package preflight

import (
	"context"
	"net/http"

	"github.com/morispolanco/recamazon/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the configuration, credential, and endpoint checks. The
// endpoint is only probed when the earlier checks pass.
func RunAll(ctx context.Context, cfg *config.Config, httpClient *http.Client) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckConfig(cfg), CheckAPIKey(cfg)}
	for _, r := range results {
		if !r.Passed {
			return results
		}
	}
	return append(results, CheckLLM(ctx, "LLM endpoint", cfg.GetLLM(), httpClient))
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
