// Package jsondoc reads food records from a single JSON document holding a
// nested list, such as the USDA branded foods export.
package jsondoc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tidwall/gjson"

	"github.com/custodia-labs/ration/internal/adapters/driven/dataset/record"
	"github.com/custodia-labs/ration/internal/core/domain"
	"github.com/custodia-labs/ration/internal/core/ports/driven"
)

// Ensure Dataset implements the interface.
var _ driven.FoodDataset = (*Dataset)(nil)

// Dataset parses the whole document on each scan.
type Dataset struct {
	path     string
	listPath string
	decoder  *record.Decoder
}

// New creates a dataset for the document at path. listPath is the gjson
// path of the record list; when empty the document root must be the list.
func New(path, listPath, matchField string) *Dataset {
	if matchField == "" {
		matchField = domain.DatasetFormatDocument.DefaultMatchField()
	}
	return &Dataset{
		path:     path,
		listPath: listPath,
		decoder:  record.NewDecoder(matchField),
	}
}

// Scan walks the record list in document order.
func (d *Dataset) Scan(ctx context.Context, fn func(domain.FoodRecord) bool) (domain.SearchStats, error) {
	var stats domain.SearchStats

	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return stats, fmt.Errorf("%w: %s not found", domain.ErrUnavailable, d.path)
		}
		return stats, fmt.Errorf("%w: read %s: %w", domain.ErrUnavailable, d.path, err)
	}
	if !gjson.ValidBytes(data) {
		return stats, fmt.Errorf("%w: %s is not a valid JSON document", domain.ErrParse, d.path)
	}

	list := gjson.ParseBytes(data)
	if d.listPath != "" && !list.IsArray() {
		list = list.Get(d.listPath)
	}
	if !list.IsArray() {
		return stats, fmt.Errorf("%w: no record list at %q in %s", domain.ErrParse, d.listPath, d.path)
	}

	var scanErr error
	list.ForEach(func(_, entry gjson.Result) bool {
		if err := ctx.Err(); err != nil {
			scanErr = err
			return false
		}
		stats.TotalEntries++
		rec, err := d.decoder.FromResult(entry)
		if err != nil {
			stats.ErrorsEncountered++
			return true
		}
		return fn(rec)
	})

	return stats, scanErr
}

// Close releases resources.
func (d *Dataset) Close() error {
	return nil
}
