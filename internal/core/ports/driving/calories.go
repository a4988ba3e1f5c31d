package driving

import (
	"context"

	"github.com/custodia-labs/ration/internal/core/domain"
)

// CalorieService computes daily caloric requirements.
type CalorieService interface {
	// DailyCalories validates the profile and returns its requirement.
	// Invalid profiles return an error wrapping domain.ErrValidation.
	DailyCalories(ctx context.Context, profile domain.Profile) (domain.CaloricResult, error)
}
