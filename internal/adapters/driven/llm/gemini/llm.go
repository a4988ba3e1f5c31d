// Package gemini provides an LLM service adapter using the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/custodia-labs/ration/internal/core/domain"
	"github.com/custodia-labs/ration/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultModel   = domain.DefaultGeminiModel
	DefaultTimeout = 120 * time.Second

	// DefaultThinkingBudget caps reasoning tokens on thinking models. It is
	// added on top of the caller's MaxTokens, which thinking would
	// otherwise consume.
	DefaultThinkingBudget = 1024
)

// Config holds configuration for the Gemini LLM service.
type Config struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// BaseURL overrides the API endpoint. Mainly useful for tests and proxies.
	BaseURL string

	// Model is the LLM model to use (default: gemini-2.5-flash).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration

	// ThinkingBudget caps reasoning tokens on models that think
	// (default: 1024).
	ThinkingBudget int
}

// LLMService generates text with a genai client. The client is created once
// and shared by every call.
type LLMService struct {
	client         *genai.Client
	model          string
	thinkingBudget int
}

// NewLLMService creates a new Gemini LLM service.
func NewLLMService(ctx context.Context, cfg Config) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.ThinkingBudget <= 0 {
		cfg.ThinkingBudget = DefaultThinkingBudget
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &LLMService{
		client:         client,
		model:          cfg.Model,
		thinkingBudget: cfg.ThinkingBudget,
	}, nil
}

// Generate produces text completion from a prompt.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	config := &genai.GenerateContentConfig{}
	maxTokens := opts.MaxTokens
	if thinks(s.model) {
		budget := int32(s.thinkingBudget) //nolint:gosec // bounded by config
		config.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: &budget}
		if maxTokens > 0 {
			maxTokens += s.thinkingBudget
		}
	}
	if maxTokens > 0 {
		config.MaxOutputTokens = int32(maxTokens) //nolint:gosec // bounded by caller
	}
	if opts.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(opts.Temperature))
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini: generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini: no text in response")
	}
	return text, nil
}

// thinks reports whether model reasons before answering. Gemini 2.5 and
// later count those tokens against MaxOutputTokens.
func thinks(model string) bool {
	model = strings.TrimPrefix(model, "models/")
	return strings.HasPrefix(model, "gemini-2.5") || strings.HasPrefix(model, "gemini-3")
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping validates the key and model by fetching the model metadata.
func (s *LLMService) Ping(ctx context.Context) error {
	if _, err := s.client.Models.Get(ctx, s.model, nil); err != nil {
		return fmt.Errorf("gemini: ping failed: %w", err)
	}
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	return nil
}
