package domain

import "math"

// CaloricResult is a daily caloric requirement. It is derived on every
// request and never stored.
type CaloricResult struct {
	// KcalPerDay is the unrounded requirement.
	KcalPerDay float64
}

// Rounded returns the requirement rounded to the nearest whole kcal for display.
func (r CaloricResult) Rounded() int {
	return int(math.Round(r.KcalPerDay))
}
