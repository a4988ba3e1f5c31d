// Package record turns raw dataset entries into domain food records.
package record

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/custodia-labs/ration/internal/core/domain"
)

// Decoder extracts the searchable name and calorie value from raw JSON
// entries. Field locations are gjson paths.
type Decoder struct {
	matchField   string
	caloriesPath string
}

// NewDecoder creates a decoder reading the name from matchField.
// An empty matchField uses "food".
func NewDecoder(matchField string) *Decoder {
	if matchField == "" {
		matchField = domain.DatasetFormatArray.DefaultMatchField()
	}
	return &Decoder{
		matchField:   matchField,
		caloriesPath: domain.DefaultCaloriesPath,
	}
}

// MatchField returns the gjson path of the searched field.
func (d *Decoder) MatchField() string {
	return d.matchField
}

// Decode validates raw and extracts its fields. Entries that are not JSON
// objects fail with domain.ErrParse. A missing match field yields an empty
// name, which never matches a search.
func (d *Decoder) Decode(raw []byte) (domain.FoodRecord, error) {
	if !gjson.ValidBytes(raw) {
		return domain.FoodRecord{}, fmt.Errorf("%w: invalid JSON entry", domain.ErrParse)
	}
	return d.FromResult(gjson.ParseBytes(raw))
}

// FromResult extracts fields from an already parsed entry.
func (d *Decoder) FromResult(entry gjson.Result) (domain.FoodRecord, error) {
	if !entry.IsObject() {
		return domain.FoodRecord{}, fmt.Errorf("%w: entry is not an object", domain.ErrParse)
	}

	rec := domain.FoodRecord{
		Raw: []byte(entry.Raw),
	}
	if name := entry.Get(d.matchField); name.Type == gjson.String {
		rec.Name = name.Str
	}
	if cal := entry.Get(d.caloriesPath); cal.Type == gjson.Number {
		v := cal.Num
		rec.Calories = &v
	}
	return rec, nil
}
