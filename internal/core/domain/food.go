package domain

import "encoding/json"

// DefaultMaxMatches caps the number of records a search returns.
const DefaultMaxMatches = 1000

// FoodRecord is one entry of the food-nutrition dataset.
// The dataset owns the record shape; Raw carries the entry verbatim so
// clients see every field the file provides.
type FoodRecord struct {
	// Raw is the dataset entry as stored.
	Raw json.RawMessage

	// Name is the designated text field that searches match against.
	Name string

	// Calories is the per-serving calorie value, when the entry has one.
	Calories *float64
}

// MarshalJSON encodes the record as its original dataset entry.
func (r FoodRecord) MarshalJSON() ([]byte, error) {
	if len(r.Raw) == 0 {
		return json.Marshal(struct {
			Name     string   `json:"name"`
			Calories *float64 `json:"calories,omitempty"`
		}{r.Name, r.Calories})
	}
	return r.Raw, nil
}

// SearchStats describes the work done by a scan.
type SearchStats struct {
	// TotalEntries is the number of records examined, including malformed ones.
	TotalEntries int `json:"totalEntries"`

	// ErrorsEncountered is the number of records skipped as malformed.
	ErrorsEncountered int `json:"errorsEncountered"`
}

// SearchResult is an ordered, capped set of matches. Order is dataset
// encounter order; there is no ranking.
type SearchResult struct {
	// Results holds at most the configured maximum number of matches.
	Results []FoodRecord `json:"results"`

	// Count is len(Results).
	Count int `json:"count"`

	// Truncated is true when the cap was hit and more matches existed.
	Truncated bool `json:"truncated"`

	// Stats reports scan counters.
	Stats SearchStats `json:"stats"`
}
