package pipeline

import "context"

// CompletionProvider turns one prompt into the raw text of one reply.
// llm.Client and openaichat.Client both satisfy it.
type CompletionProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ProviderFunc adapts a function to CompletionProvider.
type ProviderFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f.
func (f ProviderFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
