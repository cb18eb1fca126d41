package ports

import (
	"context"

	"jobmarket/internal/core/domain/model/order"
)

// EventKind classifies backend change events.
type EventKind string

const (
	// EventCreated reports a newly posted order.
	EventCreated EventKind = "created"

	// EventUpdated reports a status or attribute change on an existing
	// order.
	EventUpdated EventKind = "updated"

	// EventRemoved reports that an order is gone (withdrawn or fully
	// taken by another worker).
	EventRemoved EventKind = "removed"
)

// OrderEvent is one entry of the push stream: an event kind plus the
// affected order's latest snapshot. Events may arrive duplicated or out
// of order; consumers must reconcile idempotently.
type OrderEvent struct {
	Kind  EventKind
	Order *order.Order
}

// EventStream is the push-style subscription contract. Subscribe starts
// delivering events to the handler until the returned stop function is
// called or the context is cancelled. Handlers are invoked sequentially
// per subscription.
type EventStream interface {
	Subscribe(ctx context.Context, handler func(OrderEvent)) (stop func(), err error)
}
