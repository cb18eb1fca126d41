package ports

import (
	"context"

	"jobmarket/internal/core/domain/model/worker"
)

// SettingsRepository persists the worker's matching configuration
// (categories and price range) across restarts. The online flag is
// deliberately not part of the contract: sessions always start offline.
type SettingsRepository interface {
	// Load returns the stored settings, or an ObjectNotFoundError when
	// none have been saved yet.
	Load(ctx context.Context) (*worker.Settings, error)

	// Save stores the settings, replacing any previous version.
	Save(ctx context.Context, settings *worker.Settings) error
}
