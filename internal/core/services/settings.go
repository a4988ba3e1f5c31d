package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/ration/internal/core/domain"
	"github.com/custodia-labs/ration/internal/core/ports/driven"
	"github.com/custodia-labs/ration/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyServerPort        = "server.port"
	KeyAllowedOrigins    = "server.allowed_origins"
	KeyDatasetPath       = "dataset.path"
	KeyDatasetFormat     = "dataset.format"
	KeyDatasetMatchField = "dataset.match_field"
	KeyDatasetListPath   = "dataset.list_path"
	KeyDatasetMaxMatches = "dataset.max_matches"
	KeyLLMProvider       = "llm.provider"
	KeyLLMModel          = "llm.model"
	KeyLLMAPIKey         = "llm.api_key"
	KeyLLMBaseURL        = "llm.base_url"
	KeyLLMOutputFormat   = "llm.output_format"
	KeyLLMTimeoutSeconds = "llm.timeout_seconds"
	KeyLLMRequestsPerSec = "llm.requests_per_second"
	KeyLLMBurst          = "llm.burst"
	KeyLLMPostProcessors = "llm.postprocessors"
)

// Environment variables. They take precedence over the config file.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvPort          = "PORT"
	EnvGeminiAPIKey  = "GEMINI_API_KEY"
	EnvLLMAPIKey     = "RATION_LLM_API_KEY"
	EnvLLMProvider   = "RATION_LLM_PROVIDER"
	EnvLLMModel      = "RATION_LLM_MODEL"
	EnvOutputFormat  = "RATION_OUTPUT_FORMAT"
	EnvDatasetPath   = "RATION_DATASET_PATH"
	EnvDatasetFormat = "RATION_DATASET_FORMAT"
)

// SettingsService resolves settings from environment, config file and defaults.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service reading the process environment.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// SetEnvLookup replaces the environment lookup. Useful for testing.
func (s *SettingsService) SetEnvLookup(fn func(string) (string, bool)) {
	s.lookupEnv = fn
}

// Get resolves the current settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	d := domain.DefaultSettings()

	port, err := s.envInt(EnvPort, s.getInt(KeyServerPort, d.Server.Port))
	if err != nil {
		return nil, err
	}

	format := domain.DatasetFormat(s.env(EnvDatasetFormat, s.getString(KeyDatasetFormat, string(d.Dataset.Format))))
	if !format.IsValid() {
		return nil, fmt.Errorf("%w: dataset format %q", domain.ErrInvalidInput, format)
	}

	provider := domain.AIProvider(s.env(EnvLLMProvider, s.getString(KeyLLMProvider, string(d.LLM.Provider))))
	if !provider.IsValid() {
		return nil, fmt.Errorf("%w: llm provider %q", domain.ErrInvalidInput, provider)
	}

	outputFormat := domain.OutputFormat(s.env(EnvOutputFormat, s.getString(KeyLLMOutputFormat, string(d.LLM.OutputFormat))))
	if !outputFormat.IsValid() {
		return nil, fmt.Errorf("%w: output format %q", domain.ErrInvalidInput, outputFormat)
	}

	model := s.env(EnvLLMModel, s.configStore.GetString(KeyLLMModel))
	if model == "" && provider == domain.AIProviderGemini {
		model = d.LLM.Model
	}

	apiKey := s.env(EnvLLMAPIKey, "")
	if apiKey == "" && provider == domain.AIProviderGemini {
		apiKey = s.env(EnvGeminiAPIKey, "")
	}
	if apiKey == "" {
		apiKey = s.configStore.GetString(KeyLLMAPIKey)
	}

	origins := s.configStore.GetStringSlice(KeyAllowedOrigins)
	if len(origins) == 0 {
		origins = d.Server.AllowedOrigins
	}

	settings := &domain.Settings{
		Server: domain.ServerSettings{
			Port:           port,
			AllowedOrigins: origins,
		},
		Dataset: domain.DatasetSettings{
			Path:       s.env(EnvDatasetPath, s.getString(KeyDatasetPath, d.Dataset.Path)),
			Format:     format,
			MatchField: s.getString(KeyDatasetMatchField, format.DefaultMatchField()),
			ListPath:   s.getString(KeyDatasetListPath, d.Dataset.ListPath),
			MaxMatches: s.getInt(KeyDatasetMaxMatches, d.Dataset.MaxMatches),
		},
		LLM: domain.LLMSettings{
			Provider:          provider,
			Model:             model,
			APIKey:            apiKey,
			BaseURL:           s.configStore.GetString(KeyLLMBaseURL),
			OutputFormat:      outputFormat,
			Timeout:           time.Duration(s.configStore.GetInt(KeyLLMTimeoutSeconds)) * time.Second,
			RequestsPerSecond: s.configStore.GetFloat(KeyLLMRequestsPerSec),
			Burst:             s.getInt(KeyLLMBurst, d.LLM.Burst),
			PostProcessors:    s.configStore.GetStringSlice(KeyLLMPostProcessors),
		},
	}

	return settings, nil
}

// Set persists a single configuration key.
func (s *SettingsService) Set(key string, value any) error {
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// ConfigPath returns the backing configuration file path.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

func (s *SettingsService) env(key, fallback string) string {
	if s.lookupEnv == nil {
		return fallback
	}
	if v, ok := s.lookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func (s *SettingsService) envInt(key string, fallback int) (int, error) {
	raw := s.env(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", domain.ErrInvalidInput, key, raw)
	}
	return v, nil
}

func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

func (s *SettingsService) getInt(key string, fallback int) int {
	if v := s.configStore.GetInt(key); v > 0 {
		return v
	}
	return fallback
}
