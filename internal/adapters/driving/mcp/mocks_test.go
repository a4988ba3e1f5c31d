package mcp

import (
	"context"

	"github.com/custodia-labs/ration/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	result domain.SearchResult
	err    error
	query  string
}

func (m *mockSearchService) Search(_ context.Context, query string) (domain.SearchResult, error) {
	m.query = query
	return m.result, m.err
}

// mockCalorieService is a mock implementation of driving.CalorieService.
type mockCalorieService struct {
	result  domain.CaloricResult
	err     error
	profile domain.Profile
}

func (m *mockCalorieService) DailyCalories(_ context.Context, p domain.Profile) (domain.CaloricResult, error) {
	m.profile = p
	return m.result, m.err
}

// mockForagingService is a mock implementation of driving.ForagingService.
type mockForagingService struct {
	tips    string
	err     error
	profile domain.Profile
	calls   int
}

func (m *mockForagingService) GenerateTips(_ context.Context, p domain.Profile) (string, error) {
	m.calls++
	m.profile = p
	return m.tips, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.Settings
	err      error
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	if m.err != nil {
		return nil, m.err
	}
	cp := *m.settings
	return &cp, nil
}

func (m *mockSettingsService) Set(_ string, _ any) error { return nil }
func (m *mockSettingsService) ConfigPath() string        { return "/tmp/config.toml" }
