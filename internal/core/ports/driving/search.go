package driving

import (
	"context"

	"github.com/custodia-labs/ration/internal/core/domain"
)

// SearchService provides food search capabilities to external actors.
type SearchService interface {
	// Search returns records whose name contains query, ignoring case.
	// An empty query returns an error wrapping domain.ErrValidation.
	Search(ctx context.Context, query string) (domain.SearchResult, error)
}
