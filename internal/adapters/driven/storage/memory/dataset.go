// Package memory provides in-memory adapters for tests and embedded use.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/ration/internal/core/domain"
	"github.com/custodia-labs/ration/internal/core/ports/driven"
)

// Ensure Dataset implements the interface.
var _ driven.FoodDataset = (*Dataset)(nil)

// Dataset is an in-memory food dataset. Records marked malformed are
// counted and skipped the way file-backed datasets skip bad entries.
type Dataset struct {
	mu        sync.RWMutex
	records   []domain.FoodRecord
	malformed map[int]bool
	scans     int
}

// NewDataset creates a dataset holding records in order.
func NewDataset(records ...domain.FoodRecord) *Dataset {
	return &Dataset{
		records:   records,
		malformed: make(map[int]bool),
	}
}

// Add appends a record.
func (d *Dataset) Add(rec domain.FoodRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records = append(d.records, rec)
}

// AddMalformed appends a placeholder that scans count as a skipped entry.
func (d *Dataset) AddMalformed() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.malformed[len(d.records)] = true
	d.records = append(d.records, domain.FoodRecord{})
}

// Scans returns how many times Scan was called.
func (d *Dataset) Scans() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.scans
}

// Scan calls fn for each record in insertion order.
func (d *Dataset) Scan(ctx context.Context, fn func(domain.FoodRecord) bool) (domain.SearchStats, error) {
	d.mu.Lock()
	d.scans++
	records := d.records
	malformed := d.malformed
	d.mu.Unlock()

	var stats domain.SearchStats
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.TotalEntries++
		if malformed[i] {
			stats.ErrorsEncountered++
			continue
		}
		if !fn(rec) {
			break
		}
	}
	return stats, nil
}

// Close releases resources (no-op for memory dataset).
func (d *Dataset) Close() error {
	return nil
}
