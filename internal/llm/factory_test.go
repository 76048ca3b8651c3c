package llm

import (
	"testing"

	"github.com/eshaanmathakari/Datenschutz/internal/config"
)

func TestNewBackendSelection(t *testing.T) {
	t.Setenv("TEST_MODEL_KEY", "")

	tests := []struct {
		name     string
		cfg      config.ModelConfig
		key      string
		expected string
	}{
		{"default_none", config.ModelConfig{}, "", "none"},
		{"explicit_none", config.ModelConfig{Backend: "none"}, "", "none"},
		{"llama_without_endpoint_downgrades", config.ModelConfig{Backend: "llama"}, "", "none"},
		{"llama_with_endpoint", config.ModelConfig{Backend: "llama", Endpoint: "http://localhost:8080"}, "", "llama"},
		{"openai_without_key_downgrades", config.ModelConfig{Backend: "openai", APIKeyEnv: "TEST_MODEL_KEY"}, "", "none"},
		{"openai_with_key", config.ModelConfig{Backend: "openai", APIKeyEnv: "TEST_MODEL_KEY"}, "sk-test", "openai"},
		{"unknown_backend_downgrades", config.ModelConfig{Backend: "transformers"}, "", "none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.key != "" {
				t.Setenv("TEST_MODEL_KEY", tt.key)
			}
			b := NewBackend(tt.cfg)
			if b.Name() != tt.expected {
				t.Errorf("backend = %q, want %q", b.Name(), tt.expected)
			}
		})
	}
}
