// Package jsonarray streams food records from a JSON array file or a
// newline-delimited JSON file.
package jsonarray

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/custodia-labs/ration/internal/adapters/driven/dataset/record"
	"github.com/custodia-labs/ration/internal/core/domain"
	"github.com/custodia-labs/ration/internal/core/ports/driven"
	"github.com/custodia-labs/ration/internal/logger"
)

// Ensure Dataset implements the interface.
var _ driven.FoodDataset = (*Dataset)(nil)

// Dataset reads the file on every scan; nothing is held in memory between
// scans.
type Dataset struct {
	path    string
	decoder *record.Decoder
}

// New creates a dataset for the file at path.
func New(path, matchField string) *Dataset {
	return &Dataset{
		path:    path,
		decoder: record.NewDecoder(matchField),
	}
}

// Path returns the dataset file path.
func (d *Dataset) Path() string {
	return d.path
}

// Scan streams entries in file order. Malformed entries are counted and
// skipped. Reading stops as soon as fn returns false.
func (d *Dataset) Scan(ctx context.Context, fn func(domain.FoodRecord) bool) (domain.SearchStats, error) {
	var stats domain.SearchStats

	f, err := os.Open(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return stats, fmt.Errorf("%w: %s not found", domain.ErrUnavailable, d.path)
		}
		return stats, fmt.Errorf("%w: open %s: %w", domain.ErrUnavailable, d.path, err)
	}
	defer f.Close()

	return d.scanReader(ctx, f, fn)
}

func (d *Dataset) scanReader(ctx context.Context, r io.Reader, fn func(domain.FoodRecord) bool) (domain.SearchStats, error) {
	var stats domain.SearchStats
	sc := newElementScanner(r)

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		raw, err := sc.Next()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return stats, fmt.Errorf("read %s: %w", d.path, err)
		}

		stats.TotalEntries++
		rec, err := d.decoder.Decode(raw)
		if err != nil {
			stats.ErrorsEncountered++
			logger.Debug("Skipping entry %d: %v", stats.TotalEntries, err)
			continue
		}
		if !fn(rec) {
			return stats, nil
		}
	}
}

// Close releases resources. The file is only open during a scan.
func (d *Dataset) Close() error {
	return nil
}
