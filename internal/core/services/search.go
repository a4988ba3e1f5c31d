package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/ration/internal/core/domain"
	"github.com/custodia-labs/ration/internal/core/ports/driven"
	"github.com/custodia-labs/ration/internal/core/ports/driving"
	"github.com/custodia-labs/ration/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService performs bounded substring search over the food dataset.
type SearchService struct {
	dataset    driven.FoodDataset
	maxMatches int
}

// NewSearchService creates a new search service.
// A non-positive maxMatches uses domain.DefaultMaxMatches.
func NewSearchService(dataset driven.FoodDataset, maxMatches int) *SearchService {
	if maxMatches <= 0 {
		maxMatches = domain.DefaultMaxMatches
	}
	return &SearchService{
		dataset:    dataset,
		maxMatches: maxMatches,
	}
}

// MaxMatches returns the result cap.
func (s *SearchService) MaxMatches() int {
	return s.maxMatches
}

// Search returns records whose name contains query, ignoring case, in
// dataset order. Once the cap is reached the scan continues only until one
// further match proves the result truncated.
func (s *SearchService) Search(ctx context.Context, query string) (domain.SearchResult, error) {
	logger.Section("Food Search")
	logger.Debug("Query: %q", query)

	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return domain.SearchResult{}, fmt.Errorf("%w: search term is required", domain.ErrValidation)
	}
	if s.dataset == nil {
		return domain.SearchResult{}, fmt.Errorf("%w: no food dataset configured", domain.ErrUnavailable)
	}

	matches := make([]domain.FoodRecord, 0)
	truncated := false

	stats, err := s.dataset.Scan(ctx, func(rec domain.FoodRecord) bool {
		if !strings.Contains(strings.ToLower(rec.Name), term) {
			return true
		}
		if len(matches) >= s.maxMatches {
			truncated = true
			return false
		}
		matches = append(matches, rec)
		return true
	})
	if err != nil {
		logger.Warn("Food search failed: %v", err)
		return domain.SearchResult{}, fmt.Errorf("search: %w", err)
	}

	logger.Info("Search %q: %d matches (truncated=%t, scanned=%d, skipped=%d)",
		term, len(matches), truncated, stats.TotalEntries, stats.ErrorsEncountered)

	return domain.SearchResult{
		Results:   matches,
		Count:     len(matches),
		Truncated: truncated,
		Stats:     stats,
	}, nil
}
