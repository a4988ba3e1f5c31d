package api

import (
	"context"
	"sync"

	"github.com/custodia-labs/ration/internal/core/domain"
)

// mockCalorieService implements driving.CalorieService for testing.
type mockCalorieService struct {
	result domain.CaloricResult
	err    error
	panics bool
}

func (m *mockCalorieService) DailyCalories(_ context.Context, _ domain.Profile) (domain.CaloricResult, error) {
	if m.panics {
		panic("calorie engine exploded")
	}
	return m.result, m.err
}

// mockSearchService implements driving.SearchService for testing.
type mockSearchService struct {
	result  domain.SearchResult
	err     error
	queries []string
}

func (m *mockSearchService) Search(_ context.Context, query string) (domain.SearchResult, error) {
	m.queries = append(m.queries, query)
	return m.result, m.err
}

// mockForagingService implements driving.ForagingService for testing.
type mockForagingService struct {
	mu       sync.Mutex
	text     string
	err      error
	profiles []domain.Profile
}

func (m *mockForagingService) GenerateTips(_ context.Context, p domain.Profile) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles = append(m.profiles, p)
	return m.text, m.err
}

func (m *mockForagingService) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.profiles)
}
