package domain

import (
	"fmt"
	"strings"
)

// Sex selects the constant offset of the metabolic-rate formula.
type Sex string

// Recognised sexes.
const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// IsMale reports whether the male offset applies. Comparison ignores case.
// Any other non-empty value uses the female offset.
func (s Sex) IsMale() bool {
	return strings.EqualFold(string(s), string(SexMale))
}

// ActivityLevel selects the activity multiplier.
type ActivityLevel string

// Recognised activity levels. Unrecognised values are accepted and
// treated as sedentary.
const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityVeryActive ActivityLevel = "very_active"
)

// Activity multipliers applied to the basal metabolic rate.
const (
	SedentaryMultiplier  = 1.2
	VeryActiveMultiplier = 1.55
)

// Multiplier returns the activity factor for the level.
func (a ActivityLevel) Multiplier() float64 {
	if a == ActivityVeryActive {
		return VeryActiveMultiplier
	}
	return SedentaryMultiplier
}

// IsKnown returns true for the two documented activity levels.
func (a ActivityLevel) IsKnown() bool {
	return a == ActivitySedentary || a == ActivityVeryActive
}

// Profile holds the body measurements submitted by a user.
// It lives for a single request and is never persisted.
type Profile struct {
	// HeightInches is total height in inches.
	HeightInches float64

	// WeightLbs is body weight in pounds.
	WeightLbs float64

	// Sex selects the formula offset.
	Sex Sex

	// ActivityLevel selects the multiplier.
	ActivityLevel ActivityLevel

	// Age is age in whole years.
	Age int

	// Location is free text used only for foraging prompts.
	Location string
}

// Validate checks that every field the calorie formula needs is present
// and positive. The returned error wraps ErrValidation and names each
// offending field.
func (p Profile) Validate() error {
	var missing []string
	if p.HeightInches <= 0 {
		missing = append(missing, "height")
	}
	if p.WeightLbs <= 0 {
		missing = append(missing, "weight")
	}
	if strings.TrimSpace(string(p.Sex)) == "" {
		missing = append(missing, "sex")
	}
	if strings.TrimSpace(string(p.ActivityLevel)) == "" {
		missing = append(missing, "activityLevel")
	}
	if p.Age <= 0 {
		missing = append(missing, "age")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing or invalid fields: %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}
