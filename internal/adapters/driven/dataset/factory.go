// Package dataset selects the food dataset adapter for the configured format.
package dataset

import (
	"fmt"

	"github.com/custodia-labs/ration/internal/adapters/driven/dataset/jsonarray"
	"github.com/custodia-labs/ration/internal/adapters/driven/dataset/jsondoc"
	"github.com/custodia-labs/ration/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ration/internal/core/domain"
	"github.com/custodia-labs/ration/internal/core/ports/driven"
	"github.com/custodia-labs/ration/internal/logger"
)

// New creates the dataset described by cfg. File-backed formats open the
// file lazily on each scan, so a missing file surfaces from Scan. The
// sqlite format opens the database immediately.
func New(cfg domain.DatasetSettings) (driven.FoodDataset, error) {
	logger.Debug("Dataset: %s (%s), match field %q", cfg.Path, cfg.Format.Description(), cfg.MatchField)

	switch cfg.Format {
	case domain.DatasetFormatArray, "":
		return jsonarray.New(cfg.Path, cfg.MatchField), nil
	case domain.DatasetFormatDocument:
		return jsondoc.New(cfg.Path, cfg.ListPath, cfg.MatchField), nil
	case domain.DatasetFormatSQLite:
		store, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: dataset format %q", domain.ErrUnsupportedType, cfg.Format)
	}
}

// NewSource creates a JSON dataset suitable as an import source. The
// sqlite format is not a valid source.
func NewSource(cfg domain.DatasetSettings) (driven.FoodDataset, error) {
	if cfg.Format == domain.DatasetFormatSQLite {
		return nil, fmt.Errorf("%w: cannot import from %s", domain.ErrUnsupportedType, cfg.Format.Description())
	}
	return New(cfg)
}
