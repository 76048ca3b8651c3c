package llm

import (
	"os"

	"github.com/eshaanmathakari/Datenschutz/internal/config"
	"github.com/eshaanmathakari/Datenschutz/internal/logging"
)

// NewBackend builds the configured backend. A misconfigured backend (llama
// without an endpoint, openai without a key) downgrades to the no-op backend
// instead of failing: model-backed detection is additive, never load-bearing.
func NewBackend(cfg config.ModelConfig) Backend {
	switch cfg.Backend {
	case "llama":
		if cfg.Endpoint == "" {
			logging.Logger.Warnw("llama backend selected but no endpoint configured, downgrading to none")
			return NoneBackend{}
		}
		return NewLlama(cfg.Endpoint)
	case "openai":
		apiKey := os.Getenv(cfg.APIKeyEnv)
		if apiKey == "" {
			logging.Logger.Warnw("openai backend selected but API key env is empty, downgrading to none",
				"env", cfg.APIKeyEnv)
			return NoneBackend{}
		}
		return NewOpenAI(cfg.Endpoint, apiKey, cfg.Model)
	case "", "none":
		return NoneBackend{}
	default:
		logging.Logger.Warnw("unknown model backend, downgrading to none", "backend", cfg.Backend)
		return NoneBackend{}
	}
}
