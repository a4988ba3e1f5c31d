package driving

import "github.com/custodia-labs/ration/internal/core/domain"

// SettingsService resolves application settings.
type SettingsService interface {
	// Get returns the resolved settings.
	Get() (*domain.Settings, error)

	// Set persists a single configuration key.
	Set(key string, value any) error

	// ConfigPath returns the backing configuration file path.
	ConfigPath() string
}
