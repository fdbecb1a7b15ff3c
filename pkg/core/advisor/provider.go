// Package advisor turns the computed score records into a natural-language
// financial analysis via an LLM provider.
package advisor

import "context"

// Provider is the interface every chat backend implements.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}

// Config selects the provider and model, loaded from config/models.yaml.
type Config struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

// NewProvider resolves a Config into a concrete provider. Unknown names
// fall back to OpenRouter, the original deployment's backend.
func NewProvider(cfg Config) Provider {
	switch cfg.Provider {
	case "gemini":
		return &GeminiProvider{Model: cfg.Model}
	default:
		return &OpenRouterProvider{Model: cfg.Model}
	}
}
