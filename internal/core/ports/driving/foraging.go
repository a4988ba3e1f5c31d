package driving

import (
	"context"

	"github.com/custodia-labs/ration/internal/core/domain"
)

// ForagingService produces foraging recommendations for a profile.
type ForagingService interface {
	// GenerateTips returns generated text. Failures wrap domain.ErrUpstream;
	// callers substitute domain.ForagingFallback rather than failing.
	GenerateTips(ctx context.Context, profile domain.Profile) (string, error)
}
