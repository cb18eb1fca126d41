// Package settingsrepo persists the worker's matching configuration
// (categories and price range) so it survives restarts. The online flag
// is deliberately never stored.
package settingsrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"jobmarket/internal/core/domain/model/kernel"
	"jobmarket/internal/core/domain/model/worker"
)

// settingsRowID pins the single-row table: one worker, one record.
const settingsRowID = 1

// SettingsDTO represents the database structure for the worker settings
// record.
type SettingsDTO struct {
	ID         int       `gorm:"primaryKey"`
	Categories string    `gorm:"type:text;not null"`
	MinPrice   int64     `gorm:"type:bigint;not null"`
	MaxPrice   int64     `gorm:"type:bigint;not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the database table name for the settings record.
func (SettingsDTO) TableName() string {
	return "worker_settings"
}

// fromDomain converts the settings value to its database representation.
// Categories are stored as a JSON array so any id round-trips unchanged.
func fromDomain(settings *worker.Settings) (SettingsDTO, error) {
	categories, err := json.Marshal(settings.Categories)
	if err != nil {
		return SettingsDTO{}, fmt.Errorf("encode categories: %w", err)
	}

	return SettingsDTO{
		ID:         settingsRowID,
		Categories: string(categories),
		MinPrice:   settings.PriceRange.Min().Amount(),
		MaxPrice:   settings.PriceRange.Max().Amount(),
		UpdatedAt:  time.Now(),
	}, nil
}

// toDomain converts a database record back to the settings value.
func toDomain(dto SettingsDTO) (*worker.Settings, error) {
	var categories []string
	if err := json.Unmarshal([]byte(dto.Categories), &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	minPrice, err := kernel.NewPrice(dto.MinPrice)
	if err != nil {
		return nil, err
	}
	maxPrice, err := kernel.NewPrice(dto.MaxPrice)
	if err != nil {
		return nil, err
	}
	priceRange, err := kernel.NewPriceRange(minPrice, maxPrice)
	if err != nil {
		return nil, err
	}

	return &worker.Settings{
		Categories: categories,
		PriceRange: priceRange,
	}, nil
}
