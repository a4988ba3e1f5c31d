package driven

import (
	"context"

	"github.com/custodia-labs/ration/internal/core/domain"
)

// FoodDataset streams records from the persisted food-nutrition dataset.
// The dataset is read-only; implementations must not mutate it.
type FoodDataset interface {
	// Scan calls fn for each well-formed record in dataset order. Scanning
	// stops as soon as fn returns false or ctx is cancelled. Malformed
	// records are skipped where the format allows it and counted in the
	// returned stats.
	//
	// A missing dataset returns an error wrapping domain.ErrUnavailable.
	// A corrupt whole-document dataset returns domain.ErrParse.
	Scan(ctx context.Context, fn func(domain.FoodRecord) bool) (domain.SearchStats, error)

	// Close releases resources.
	Close() error
}
