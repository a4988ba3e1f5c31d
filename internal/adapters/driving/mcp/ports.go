package mcp

import (
	"github.com/custodia-labs/ration/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server exposes.
type Ports struct {
	// Search looks up foods in the dataset.
	Search driving.SearchService

	// Calories computes daily requirements.
	Calories driving.CalorieService

	// Foraging generates recommendations. Optional; the foraging_tips tool
	// is only registered when set.
	Foraging driving.ForagingService

	// Settings backs the settings resource. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Calories == nil {
		return ErrMissingCalorieService
	}
	return nil
}
