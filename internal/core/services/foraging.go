package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/ration/internal/core/domain"
	"github.com/custodia-labs/ration/internal/core/ports/driven"
	"github.com/custodia-labs/ration/internal/core/ports/driving"
	"github.com/custodia-labs/ration/internal/logger"
)

// Ensure ForagingService implements the interface.
var _ driving.ForagingService = (*ForagingService)(nil)

// foragingMaxTokens bounds generated recommendations.
const foragingMaxTokens = 2048

// ForagingService builds profile prompts and forwards them to an LLM.
// The LLM is injected; a nil LLM makes every call fail with ErrUpstream.
type ForagingService struct {
	llmService  driven.LLMService
	promptStore driven.PromptStore
	format      domain.OutputFormat
	limiter     *rate.Limiter
	post        driven.PostProcessor
}

// NewForagingService creates a new foraging service.
// The llmService and promptStore parameters are optional (can be nil).
func NewForagingService(
	llmService driven.LLMService,
	promptStore driven.PromptStore,
	format domain.OutputFormat,
) *ForagingService {
	if !format.IsValid() {
		format = domain.OutputFormatHTML
	}
	return &ForagingService{
		llmService:  llmService,
		promptStore: promptStore,
		format:      format,
	}
}

// SetRateLimit caps outbound generation calls. A non-positive rps removes
// the limit, which is the default.
func (s *ForagingService) SetRateLimit(rps float64, burst int) {
	if rps <= 0 {
		s.limiter = nil
		return
	}
	if burst <= 0 {
		burst = 1
	}
	s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// SetPostProcessor installs a cleaner applied to every generated response.
func (s *ForagingService) SetPostProcessor(p driven.PostProcessor) {
	s.post = p
}

// Enabled reports whether an LLM is configured.
func (s *ForagingService) Enabled() bool {
	return s.llmService != nil
}

// BuildPrompt renders the prompt template for profile.
func (s *ForagingService) BuildPrompt(profile domain.Profile) string {
	name, fallback := driven.PromptForagingHTML, domain.ForagingPromptHTML
	if s.format == domain.OutputFormatText {
		name, fallback = driven.PromptForagingText, domain.ForagingPromptText
	}

	template := s.loadPrompt(name, fallback)
	return fmt.Sprintf(template,
		profile.HeightInches,
		profile.WeightLbs,
		profile.Sex,
		profile.ActivityLevel,
		profile.Age,
		profile.Location,
	)
}

// GenerateTips returns foraging recommendations for profile. It makes a
// single attempt; errors wrap domain.ErrUpstream.
func (s *ForagingService) GenerateTips(ctx context.Context, profile domain.Profile) (string, error) {
	logger.Section("Foraging Recommendations")

	if s.llmService == nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUpstream, domain.ErrLLMUnavailable)
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: rate limit wait: %w", domain.ErrUpstream, err)
		}
	}

	prompt := s.BuildPrompt(profile)
	logger.Debug("Prompt: %d chars, model=%s, format=%s", len(prompt), s.llmService.ModelName(), s.format)

	text, err := s.llmService.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens: foragingMaxTokens,
	})
	if err != nil {
		logger.Warn("Foraging generation failed: %v", err)
		return "", fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}

	if s.post != nil {
		if text, err = s.post.Process(ctx, text); err != nil {
			return "", fmt.Errorf("%w: post-process: %w", domain.ErrUpstream, err)
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: %w", domain.ErrUpstream, errors.New("empty response"))
	}

	logger.Debug("Generated %d chars", len(text))
	return text, nil
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func (s *ForagingService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}
