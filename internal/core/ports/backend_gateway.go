package ports

import (
	"context"

	"jobmarket/internal/core/domain/model/kernel"
	"jobmarket/internal/core/domain/model/order"
)

// BackendGateway defines the request/response contract with the
// marketplace backend. Implementations translate transport failures into
// the errs taxonomy: lost races surface as ConflictError, unknown ids as
// ObjectNotFoundError, and network/service failures as TransientError.
type BackendGateway interface {
	// ListOfferedOrders returns all orders currently offered in the given
	// categories. Used by the pull path to rebuild the offered view.
	ListOfferedOrders(ctx context.Context, categories []string) ([]*order.Order, error)

	// AcceptOrder asks the backend to durably assign the order to this
	// worker. Returns the authoritative snapshot on success and a
	// ConflictError when another worker won the race.
	AcceptOrder(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// CompleteOrder reports the order finished and returns the
	// authoritative snapshot with the completion timestamp recorded.
	CompleteOrder(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateAvailability publishes the worker's availability so the
	// backend can route offers. Best-effort from the session's point of
	// view.
	UpdateAvailability(ctx context.Context, online bool, categories []string, priceRange kernel.PriceRange) error
}
