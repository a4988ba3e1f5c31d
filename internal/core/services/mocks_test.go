package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/ration/internal/core/domain"
	"github.com/custodia-labs/ration/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockLLMService implements driven.LLMService for testing.
type mockLLMService struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
	opts     []driven.GenerateOptions
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	m.opts = append(m.opts, opts)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLMService) ModelName() string          { return "mock-model" }
func (m *mockLLMService) Ping(_ context.Context) error { return nil }
func (m *mockLLMService) Close() error               { return nil }

func (m *mockLLMService) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompts map[string]string
	reloads int
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if p, ok := m.prompts[name]; ok {
		return p, nil
	}
	return "", errors.New("prompt not found")
}

func (m *mockPromptStore) Reload() { m.reloads++ }

// mockDataset implements driven.FoodDataset returning a fixed error.
type mockDataset struct {
	err error
}

func (m *mockDataset) Scan(_ context.Context, _ func(domain.FoodRecord) bool) (domain.SearchStats, error) {
	return domain.SearchStats{}, m.err
}

func (m *mockDataset) Close() error { return nil }

// --- Helpers ---

func testProfile() domain.Profile {
	return domain.Profile{
		HeightInches:  70,
		WeightLbs:     180,
		Sex:           domain.SexMale,
		ActivityLevel: domain.ActivityVeryActive,
		Age:           30,
		Location:      "Portland, OR",
	}
}

// mockConfigStore implements driven.ConfigStore over a map, converting
// values the way the TOML store decodes them.
type mockConfigStore struct {
	values map[string]any
	setErr error
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{values: make(map[string]any)}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	s, _ := m.values[key].(string)
	return s
}

func (m *mockConfigStore) GetInt(key string) int {
	switch v := m.values[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func (m *mockConfigStore) GetFloat(key string) float64 {
	switch v := m.values[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}

func (m *mockConfigStore) GetStringSlice(key string) []string {
	items, ok := m.values[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (m *mockConfigStore) Set(key string, value any) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *mockConfigStore) Load() error  { return nil }
func (m *mockConfigStore) Path() string { return "mock.toml" }
