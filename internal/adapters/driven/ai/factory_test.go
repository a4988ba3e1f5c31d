package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	anthropicllm "github.com/custodia-labs/ration/internal/adapters/driven/llm/anthropic"
	geminillm "github.com/custodia-labs/ration/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/custodia-labs/ration/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/ration/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/ration/internal/core/domain"
)

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name     string
		settings *domain.LLMSettings
		wantType any
	}{
		{
			name:     "nil settings returns nil",
			settings: nil,
		},
		{
			name:     "unconfigured settings returns nil",
			settings: &domain.LLMSettings{},
		},
		{
			name:     "gemini without key returns nil",
			settings: &domain.LLMSettings{Provider: domain.AIProviderGemini},
		},
		{
			name:     "unknown provider returns nil (not configured)",
			settings: &domain.LLMSettings{Provider: "unknown", APIKey: "test-key"},
		},
		{
			name:     "gemini provider creates service",
			settings: &domain.LLMSettings{Provider: domain.AIProviderGemini, APIKey: "test-key"},
			wantType: &geminillm.LLMService{},
		},
		{
			name:     "ollama provider creates service",
			settings: &domain.LLMSettings{Provider: domain.AIProviderOllama, BaseURL: "http://localhost:11434"},
			wantType: &ollamallm.LLMService{},
		},
		{
			name:     "openai provider creates service",
			settings: &domain.LLMSettings{Provider: domain.AIProviderOpenAI, APIKey: "test-key"},
			wantType: &openaillm.LLMService{},
		},
		{
			name:     "anthropic provider creates service",
			settings: &domain.LLMSettings{Provider: domain.AIProviderAnthropic, APIKey: "test-key"},
			wantType: &anthropicllm.LLMService{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(context.Background(), tt.settings)
			require.NoError(t, err)

			if tt.wantType == nil {
				assert.Nil(t, svc)
				return
			}
			require.NotNil(t, svc)
			assert.IsType(t, tt.wantType, svc)
			assert.NoError(t, svc.Close())
		})
	}
}

func TestCreateLLMService_UsesConfiguredModel(t *testing.T) {
	svc, err := CreateLLMService(context.Background(), &domain.LLMSettings{
		Provider: domain.AIProviderGemini,
		APIKey:   "test-key",
		Model:    "gemini-2.0-flash-lite",
	})

	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash-lite", svc.ModelName())
}

func TestValidateLLMConfig(t *testing.T) {
	t.Run("unconfigured is valid", func(t *testing.T) {
		assert.NoError(t, ValidateLLMConfig(context.Background(), &domain.LLMSettings{}))
	})

	t.Run("reachable service", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"models":[]}`))
		}))
		defer srv.Close()

		err := ValidateLLMConfig(context.Background(), &domain.LLMSettings{
			Provider: domain.AIProviderOllama,
			BaseURL:  srv.URL,
		})
		assert.NoError(t, err)
	})

	t.Run("unreachable service", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		err := ValidateLLMConfig(context.Background(), &domain.LLMSettings{
			Provider: domain.AIProviderOpenAI,
			APIKey:   "bad",
			BaseURL:  srv.URL,
		})
		assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	})
}
