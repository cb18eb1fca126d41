package session

import (
	"context"

	"jobmarket/internal/core/domain/model/kernel"
	"jobmarket/internal/core/domain/model/worker"
	"jobmarket/internal/pkg/errs"
)

// availabilityUpdate is the backend-bound projection of the availability
// state, captured under the lock and pushed outside it.
type availabilityUpdate struct {
	online     bool
	categories []string
	priceRange kernel.PriceRange
}

// GoOnline validates and stores the matching configuration, flips the
// worker online and publishes the availability to the backend (best
// effort). Offer surfacing starts on the next pull cycle.
//
// Fails with a validation error on a bad configuration (settings are not
// saved in that case) and with a ConflictError while an order is active.
func (s *Session) GoOnline(ctx context.Context, categories []string, priceRange kernel.PriceRange) error {
	s.mu.Lock()
	if active, exists := s.lifecycle.activeOrder(); exists {
		s.mu.Unlock()
		return errs.NewConflictError(
			"cannot go online while an order is active: " + active.ID().String())
	}

	availability := s.availability
	var err error
	if availability == nil {
		availability, err = worker.NewAvailability(categories, priceRange)
	} else {
		err = availability.Reconfigure(categories, priceRange)
	}
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.availability = availability
	settings := availability.Settings()
	s.mu.Unlock()

	if err = s.settings.Save(ctx, &settings); err != nil {
		return err
	}

	s.mu.Lock()
	// an accept may have slipped in while the save was in flight
	if active, exists := s.lifecycle.activeOrder(); exists {
		s.mu.Unlock()
		return errs.NewConflictError(
			"cannot go online while an order is active: " + active.ID().String())
	}
	s.availability.GoOnline()
	s.pullGeneration++
	update := s.availabilitySnapshot()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "worker online",
		"categories", categories, "minPrice", priceRange.Min().Amount(), "maxPrice", priceRange.Max().Amount())
	s.pushAvailability(ctx, update)
	return nil
}

// GoOffline stops offer surfacing. It always succeeds locally: the
// offered view is cleared, in-flight pulls are superseded, and the
// backend is told on a best-effort basis.
func (s *Session) GoOffline(ctx context.Context) error {
	s.mu.Lock()
	s.forceOffline()
	s.lifecycle.clearOffered()
	update := s.availabilitySnapshot()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "worker offline")
	s.pushAvailability(ctx, update)
	return nil
}

// Online reports whether the worker is currently online.
func (s *Session) Online() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.availability != nil && s.availability.Online()
}

// forceOffline flips the availability offline and supersedes any
// in-flight pull. Returns whether the worker was online before the call.
// Caller must hold the lock.
func (s *Session) forceOffline() bool {
	if s.availability == nil || !s.availability.Online() {
		return false
	}
	s.availability.GoOffline()
	s.pullGeneration++
	return true
}

// restoreOnline flips the worker back online with the saved
// configuration after a completed order. Returns the update to push, or
// nil when no configuration exists.
// Caller must hold the lock.
func (s *Session) restoreOnline() *availabilityUpdate {
	if s.availability == nil {
		return nil
	}
	s.availability.GoOnline()
	s.pullGeneration++
	return s.availabilitySnapshot()
}

// availabilitySnapshot captures the backend-bound availability state.
// Caller must hold the lock.
func (s *Session) availabilitySnapshot() *availabilityUpdate {
	if s.availability == nil {
		return nil
	}
	return &availabilityUpdate{
		online:     s.availability.Online(),
		categories: s.availability.Categories(),
		priceRange: s.availability.PriceRange(),
	}
}

// pushAvailability publishes the availability to the backend. Failures
// are logged and swallowed: the local flag is authoritative for
// surfacing, and the next update will converge the backend.
// Must be called without the lock held.
func (s *Session) pushAvailability(ctx context.Context, update *availabilityUpdate) {
	if update == nil {
		return
	}
	err := s.gateway.UpdateAvailability(ctx, update.online, update.categories, update.priceRange)
	if err != nil {
		s.logger.ErrorContext(ctx, "availability push failed",
			"online", update.online, "error", err)
	}
}
