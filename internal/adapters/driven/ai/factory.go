// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	anthropicllm "github.com/custodia-labs/ration/internal/adapters/driven/llm/anthropic"
	geminillm "github.com/custodia-labs/ration/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/custodia-labs/ration/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/ration/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/ration/internal/core/domain"
	"github.com/custodia-labs/ration/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateLLMService creates the appropriate LLM service based on settings.
// Returns nil if the provider is not configured; foraging tips are then
// unavailable but the rest of the service works.
func CreateLLMService(ctx context.Context, settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderGemini:
		return createGeminiLLM(ctx, settings)

	case domain.AIProviderOllama:
		return createOllamaLLM(settings), nil

	case domain.AIProviderOpenAI:
		return createOpenAILLM(settings)

	case domain.AIProviderAnthropic:
		return createAnthropicLLM(settings)

	default:
		return nil, fmt.Errorf("%w: LLM provider %s", domain.ErrUnsupportedType, settings.Provider)
	}
}

// ValidateLLMConfig creates a service for settings and pings it.
// Unconfigured settings are not an error.
func ValidateLLMConfig(ctx context.Context, settings *domain.LLMSettings) error {
	svc, err := CreateLLMService(ctx, settings)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: service unreachable (%w)", domain.ErrLLMUnavailable, err)
	}
	return nil
}

func createGeminiLLM(ctx context.Context, settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := geminillm.NewLLMService(ctx, geminillm.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: settings.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func createOllamaLLM(settings *domain.LLMSettings) driven.LLMService {
	return ollamallm.NewLLMService(ollamallm.LLMConfig{
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: settings.Timeout,
	})
}

func createOpenAILLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := openaillm.NewLLMService(openaillm.LLMConfig{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: settings.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func createAnthropicLLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := anthropicllm.NewLLMService(anthropicllm.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: settings.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}
