package llm

import "context"

// NoneBackend is the fallback when no model is configured. It always returns
// the minimal empty-issues structure so the pipeline shape stays identical
// with and without a model.
type NoneBackend struct{}

func (NoneBackend) Name() string { return "none" }

func (NoneBackend) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	return `{"issues": []}`, nil
}
