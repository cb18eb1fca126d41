package settingsrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jobmarket/internal/core/domain/model/worker"
	"jobmarket/internal/core/ports"
	"jobmarket/internal/pkg/errs"
)

var _ ports.SettingsRepository = (*GormSettingsRepository)(nil)

// GormSettingsRepository implements SettingsRepository using GORM.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GORM settings repository.
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{
		db: db,
	}
}

// Load retrieves the stored settings. Returns an ObjectNotFoundError
// when the worker has never saved a configuration.
func (r *GormSettingsRepository) Load(ctx context.Context) (*worker.Settings, error) {
	var dto SettingsDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", settingsRowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("settings", settingsRowID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Save stores the settings, replacing any previous record.
func (r *GormSettingsRepository) Save(ctx context.Context, settings *worker.Settings) error {
	if settings == nil {
		return errs.NewValueIsRequiredError("settings")
	}

	dto, err := fromDomain(settings)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
}
