package services

import (
	"jobmarket/internal/core/domain/model/order"
	"jobmarket/internal/core/domain/model/worker"
)

// OfferMatcher is a domain service that decides whether an order snapshot
// qualifies as a surfaceable offer for the worker's current availability
// configuration.
//
// Matching rules:
//   - the snapshot must be in Offered status
//   - its category must be among the worker's selected categories
//   - its price must fall inside the worker's price range
//
// The matcher is stateless; it never mutates either aggregate.
type OfferMatcher struct{}

// NewOfferMatcher creates a new OfferMatcher instance.
func NewOfferMatcher() OfferMatcher {
	return OfferMatcher{}
}

// Matches reports whether the order should be surfaced to the worker.
// Invalid inputs never match.
func (m OfferMatcher) Matches(availability *worker.Availability, o *order.Order) bool {
	if availability.Validate() != nil || o.Validate() != nil {
		return false
	}

	if o.Status() != order.Offered {
		return false
	}

	if !availability.HasCategory(o.CategoryID()) {
		return false
	}

	return availability.PriceRange().Contains(o.Price())
}

// FilterOffers returns the subset of snapshots that match the worker's
// configuration, preserving the input ordering. Used by the pull path to
// rebuild the offered view from a backend listing.
func (m OfferMatcher) FilterOffers(availability *worker.Availability, orders []*order.Order) []*order.Order {
	matched := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if m.Matches(availability, o) {
			matched = append(matched, o)
		}
	}
	return matched
}
