// Package ai provides factory functions for creating LLM service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/kavya-labs/kavya-cli/internal/adapters/driven/llm/google"
	"github.com/kavya-labs/kavya-cli/internal/adapters/driven/llm/groq"
	"github.com/kavya-labs/kavya-cli/internal/adapters/driven/llm/ollama"
	"github.com/kavya-labs/kavya-cli/internal/adapters/driven/llm/openai"
	"github.com/kavya-labs/kavya-cli/internal/core/domain"
	"github.com/kavya-labs/kavya-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateLLMService creates the LLM service selected by the settings.
// Selection is a configuration-time choice; the returned service is the
// only provider the run talks to.
func CreateLLMService(settings *domain.Settings) (driven.LLMService, error) {
	switch settings.Provider {
	case domain.ProviderGroq:
		return groq.NewLLMService(groq.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
	case domain.ProviderOpenAI:
		return openai.NewLLMService(openai.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
	case domain.ProviderGoogle:
		return google.NewLLMService(google.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
	case domain.ProviderOllama:
		return ollama.NewLLMService(ollama.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil
	default:
		return nil, fmt.Errorf("%w: unsupported provider %q", domain.ErrConfig, settings.Provider)
	}
}

// CreateAndValidateLLMService creates the LLM service and validates
// connectivity with a lightweight ping, so credential problems surface
// before the first chunk is processed.
func CreateAndValidateLLMService(ctx context.Context, settings *domain.Settings) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := svc.Ping(pingCtx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("validate %s: %w", settings.Provider, err)
	}
	return svc, nil
}
