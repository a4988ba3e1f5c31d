package services

import (
	"context"
	"math"

	"github.com/custodia-labs/ration/internal/core/domain"
	"github.com/custodia-labs/ration/internal/core/ports/driving"
	"github.com/custodia-labs/ration/internal/logger"
)

// Ensure CalorieService implements the interface.
var _ driving.CalorieService = (*CalorieService)(nil)

// Unit conversions.
const (
	inchesToCm = 2.54
	lbsToKg    = 0.453592
)

// Formula offsets by sex.
const (
	maleOffset   = 5.0
	femaleOffset = -161.0
)

// ComputeDailyCalories returns the daily caloric requirement for p using the
// Mifflin-St Jeor basal metabolic rate and the activity multiplier. The result
// is not rounded. Inputs are not validated; see CalorieService.
func ComputeDailyCalories(p domain.Profile) float64 {
	kg := p.WeightLbs * lbsToKg
	cm := p.HeightInches * inchesToCm

	bmr := 10*kg + 6.25*cm - 5*float64(p.Age)
	if p.Sex.IsMale() {
		bmr += maleOffset
	} else {
		bmr += femaleOffset
	}

	kcal := bmr * p.ActivityLevel.Multiplier()

	// Unreachable for validated profiles of realistic size. Keeps the
	// result non-negative and finite.
	if math.IsNaN(kcal) || math.IsInf(kcal, 0) || kcal < 0 {
		return 0
	}
	return kcal
}

// CalorieService validates profiles and computes their requirement.
type CalorieService struct{}

// NewCalorieService creates a new calorie service.
func NewCalorieService() *CalorieService {
	return &CalorieService{}
}

// DailyCalories validates the profile and returns its caloric requirement.
func (s *CalorieService) DailyCalories(_ context.Context, profile domain.Profile) (domain.CaloricResult, error) {
	if err := profile.Validate(); err != nil {
		return domain.CaloricResult{}, err
	}
	if !profile.ActivityLevel.IsKnown() {
		logger.Debug("Unrecognised activity level %q, using sedentary multiplier", profile.ActivityLevel)
	}

	kcal := ComputeDailyCalories(profile)
	logger.Debug("Daily calories: %.2f (sex=%s activity=%s age=%d)",
		kcal, profile.Sex, profile.ActivityLevel, profile.Age)

	return domain.CaloricResult{KcalPerDay: kcal}, nil
}
