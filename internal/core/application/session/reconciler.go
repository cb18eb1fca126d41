package session

import (
	"context"
	"errors"

	"jobmarket/internal/core/domain/model/order"
	"jobmarket/internal/core/ports"
	"jobmarket/internal/pkg/errs"
)

// Pull fetches the offered orders for the selected categories and
// rebuilds the offered view wholesale. No-op while offline. A pull
// result whose generation was superseded (availability changed while the
// request was in flight) is discarded. Transient backend failures are
// swallowed: a stale offered view is acceptable and the next cycle
// retries.
func (s *Session) Pull(ctx context.Context) error {
	s.mu.Lock()
	if s.availability == nil || !s.availability.Online() {
		s.mu.Unlock()
		return nil
	}
	generation := s.pullGeneration
	categories := s.availability.Categories()
	s.mu.Unlock()

	offers, err := s.gateway.ListOfferedOrders(ctx, categories)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if errors.Is(err, errs.ErrTransient) {
			s.logger.WarnContext(ctx, "offer pull failed", "error", err)
			return nil
		}
		return err
	}
	if generation != s.pullGeneration {
		s.logger.InfoContext(ctx, "offer pull superseded, result discarded")
		return nil
	}

	s.lifecycle.replaceOffered(s.matcher.FilterOffers(s.availability, offers))
	return nil
}

// ApplyEvent merges one push event into the session state. Events may
// arrive duplicated, reordered or for unknown orders; the merge is
// idempotent and discards stale snapshots, so applying any event twice
// leaves the state unchanged.
func (s *Session) ApplyEvent(ctx context.Context, e ports.OrderEvent) {
	snapshot := e.Order
	if snapshot == nil || snapshot.Validate() != nil {
		s.logger.WarnContext(ctx, "event without a valid order snapshot dropped",
			"kind", string(e.Kind))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch e.Kind {
	case ports.EventCreated:
		s.applyCreated(ctx, snapshot)
	case ports.EventUpdated:
		s.applyUpdated(ctx, snapshot)
	case ports.EventRemoved:
		s.applyRemoved(ctx, snapshot)
	default:
		s.logger.WarnContext(ctx, "unknown event kind dropped", "kind", string(e.Kind))
	}
}

// ExpireStaleAccepts reverts accepted orders whose backend confirmation
// never arrived within the configured window: the order goes back to
// offered and the availability the worker had before accepting is
// restored.
func (s *Session) ExpireStaleAccepts(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	for id, pending := range s.pendingAccepts {
		if now.Sub(pending.at) < s.confirmTimeout {
			continue
		}
		s.logger.InfoContext(ctx, "accept confirmation timed out", "orderID", id.String())
		s.rollbackAccept(ctx, id)
	}
}

// applyCreated handles a freshly posted order: surfaced and announced
// only while online and matching the configuration.
// Caller must hold the lock.
func (s *Session) applyCreated(ctx context.Context, snapshot *order.Order) {
	if s.lifecycle.knows(snapshot.ID()) {
		// duplicate created, reconcile as an update
		s.applyUpdated(ctx, snapshot)
		return
	}
	if s.availability == nil || !s.availability.Online() {
		return
	}
	if !s.matcher.Matches(s.availability, snapshot) {
		return
	}

	s.lifecycle.addOffered(snapshot)
	s.notifier.Notify(ports.NotificationNewOffer, "New offer",
		snapshot.CategoryName()+" at "+snapshot.Location())
}

// applyUpdated merges a status or attribute change.
// Caller must hold the lock.
func (s *Session) applyUpdated(ctx context.Context, snapshot *order.Order) {
	id := snapshot.ID()

	if _, ok := s.lifecycle.mineOrder(id); ok {
		s.reconcileMine(ctx, snapshot)
		return
	}

	if _, ok := s.lifecycle.offeredOrder(id); ok {
		if snapshot.Status() == order.Offered && s.availability != nil &&
			s.matcher.Matches(s.availability, snapshot) {
			s.lifecycle.offered[id] = snapshot
			return
		}
		// taken by another worker, withdrawn, or no longer matching
		s.lifecycle.removeOffered(id)
		return
	}

	if _, ok := s.lifecycle.history[id]; ok {
		return
	}

	// unknown order first seen in Offered status behaves like created
	if snapshot.Status() == order.Offered {
		s.applyCreated(ctx, snapshot)
	}
}

// applyRemoved handles an order disappearing from the marketplace.
// Offered orders are dropped silently; an order the worker holds is
// cancelled with a recoverable notice. Availability is left untouched.
// Caller must hold the lock.
func (s *Session) applyRemoved(ctx context.Context, snapshot *order.Order) {
	id := snapshot.ID()

	if o, ok := s.lifecycle.mineOrder(id); ok {
		s.externalCancelMine(ctx, o)
		return
	}

	s.lifecycle.removeOffered(id)
}

// reconcileSnapshot merges an authoritative snapshot returned by a
// backend mutation into the mine view.
// Caller must hold the lock.
func (s *Session) reconcileSnapshot(ctx context.Context, snapshot *order.Order) {
	if snapshot == nil || snapshot.Validate() != nil {
		return
	}
	if _, ok := s.lifecycle.mineOrder(snapshot.ID()); ok {
		s.reconcileMine(ctx, snapshot)
	}
}

// reconcileMine applies an authoritative snapshot to an order the worker
// holds. Snapshots at a lower lifecycle rank than the recorded status
// are stale and discarded; equal rank is a no-op.
// Caller must hold the lock.
func (s *Session) reconcileMine(ctx context.Context, snapshot *order.Order) {
	id := snapshot.ID()
	o, ok := s.lifecycle.mineOrder(id)
	if !ok {
		return
	}

	recorded := o.Status()
	reported := snapshot.Status()
	if reported.Rank() < recorded.Rank() {
		s.logger.InfoContext(ctx, "stale snapshot discarded",
			"orderID", id.String(),
			"recorded", recorded.String(), "reported", reported.String())
		return
	}
	if reported.Rank() == recorded.Rank() {
		return
	}

	switch reported {
	case order.Approved:
		s.confirmMine(ctx, o, snapshot)

	case order.Completed:
		if recorded == order.Accepted {
			if !s.confirmMine(ctx, o, snapshot) {
				return
			}
		}
		at := s.clock()
		if completedAt := snapshot.CompletedAt(); completedAt != nil {
			at = *completedAt
		}
		if err := o.Complete(at); err != nil {
			s.logger.ErrorContext(ctx, "completion reconcile failed",
				"orderID", id.String(), "error", err)
			return
		}
		delete(s.pendingAccepts, id)
		s.lifecycle.moveToHistory(o)

	case order.Rejected:
		s.externalCancelMine(ctx, o)
	}
}

// confirmMine applies a backend confirmation: the order turns Approved
// and the requester contacts become available.
// Caller must hold the lock.
func (s *Session) confirmMine(ctx context.Context, o *order.Order, snapshot *order.Order) bool {
	name := snapshot.RequesterName()
	phone := snapshot.RequesterPhone()
	if name == nil || phone == nil {
		s.logger.ErrorContext(ctx, "confirmation without requester contacts dropped",
			"orderID", o.ID().String())
		return false
	}
	if err := o.Confirm(*name, *phone); err != nil {
		s.logger.ErrorContext(ctx, "confirmation reconcile failed",
			"orderID", o.ID().String(), "error", err)
		return false
	}

	delete(s.pendingAccepts, o.ID())
	s.logger.InfoContext(ctx, "order approved", "orderID", o.ID().String())
	s.notifier.Notify(ports.NotificationApproved, "Order approved",
		"Requester: "+*name)
	return true
}

// externalCancelMine handles the backend reporting an order the worker
// holds as gone: terminal Rejected, moved to history, recoverable notice
// raised. Availability is deliberately not restored; the worker decides
// when to go back online.
// Caller must hold the lock.
func (s *Session) externalCancelMine(ctx context.Context, o *order.Order) {
	if err := o.Cancel(); err != nil {
		s.logger.InfoContext(ctx, "cancel on terminal order ignored",
			"orderID", o.ID().String(), "status", o.Status().String())
		return
	}

	delete(s.pendingAccepts, o.ID())
	s.lifecycle.moveToHistory(o)
	s.logger.InfoContext(ctx, "order lost", "orderID", o.ID().String())
	s.notifier.Notify(ports.NotificationOrderLost, "Order lost",
		o.CategoryName()+" at "+o.Location())
}
