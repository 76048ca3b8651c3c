package llm

import "context"

// Backend is the single capability the scanner needs from a model: prompt in,
// generated text out. All three implementations (none, llama, openai) are
// treated identically by the analyzer.
type Backend interface {
	Name() string
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}
