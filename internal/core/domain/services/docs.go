// Package services contains stateless domain services that operate
// across aggregates. OfferMatcher applies the worker's availability
// configuration to candidate order snapshots.
package services
