package worker

import (
	"errors"
	"slices"

	"jobmarket/internal/core/domain/model/kernel"
	"jobmarket/internal/pkg/errs"
)

var (
	// ErrAvailabilityIsNotConstructed is returned when an Availability
	// instance was not created through the NewAvailability constructor.
	ErrAvailabilityIsNotConstructed = errors.New("Availability must be created via NewAvailability")
)

// Availability is the aggregate owning this worker's matching
// configuration: the online flag, the selected service categories and
// the acceptable price range.
//
// Invariants:
//   - the category selection is non-empty and free of duplicates
//   - the price range is valid (positive bounds, min < max)
//   - the online flag always starts false; it is never restored from
//     persistence
//
// The at-most-one-active-order rule is deliberately NOT enforced here:
// it belongs to the lifecycle state machine, which consults this
// aggregate only for the flag and the matching configuration.
type Availability struct {
	// online gates whether new offers may be surfaced
	online bool

	// categories holds the selected category ids (non-empty)
	categories []string

	// priceRange bounds the offer prices the worker will take
	priceRange kernel.PriceRange

	// isConstructed ensures the aggregate was created via NewAvailability
	isConstructed bool
}

// NewAvailability creates an offline Availability with a validated
// configuration. The worker always starts offline regardless of the
// state in which a previous session ended.
func NewAvailability(categories []string, priceRange kernel.PriceRange) (*Availability, error) {
	a := &Availability{
		isConstructed: true,
	}

	if err := a.setConfiguration(categories, priceRange); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate ensures the Availability was created via NewAvailability.
func (a *Availability) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAvailabilityIsNotConstructed
	}
	return nil
}

// Online reports whether offer surfacing is currently enabled.
func (a *Availability) Online() bool {
	return a.online
}

// Categories returns a copy of the selected category ids.
func (a *Availability) Categories() []string {
	return slices.Clone(a.categories)
}

// PriceRange returns the configured price range.
func (a *Availability) PriceRange() kernel.PriceRange {
	return a.priceRange
}

// HasCategory reports whether the given category id is selected.
func (a *Availability) HasCategory(categoryID string) bool {
	return slices.Contains(a.categories, categoryID)
}

// GoOnline enables offer surfacing.
func (a *Availability) GoOnline() {
	a.online = true
}

// GoOffline disables offer surfacing. Always succeeds.
func (a *Availability) GoOffline() {
	a.online = false
}

// Reconfigure replaces the category selection and price range.
// The new configuration is validated as a whole; on error the previous
// configuration is left untouched.
func (a *Availability) Reconfigure(categories []string, priceRange kernel.PriceRange) error {
	return a.setConfiguration(categories, priceRange)
}

// Settings extracts the persistable part of the configuration.
// The online flag is intentionally excluded: sessions always start
// offline.
func (a *Availability) Settings() Settings {
	return Settings{
		Categories: slices.Clone(a.categories),
		PriceRange: a.priceRange,
	}
}

func (a *Availability) setConfiguration(categories []string, priceRange kernel.PriceRange) error {
	if len(categories) == 0 {
		return errs.NewValueIsRequiredError("categories")
	}
	for _, c := range categories {
		if c == "" {
			return errs.NewValueIsRequiredError("category id")
		}
	}
	deduped := slices.Clone(categories)
	slices.Sort(deduped)
	if len(slices.Compact(deduped)) != len(categories) {
		return errs.NewValueIsInvalidError("categories contain duplicates")
	}

	if err := priceRange.Validate(); err != nil {
		return err
	}

	a.categories = slices.Clone(categories)
	a.priceRange = priceRange
	return nil
}

// Settings is the persisted slice of the worker's configuration:
// category selection and price range survive restarts, the online flag
// does not.
type Settings struct {
	Categories []string
	PriceRange kernel.PriceRange
}
