package commands

import (
	"context"

	"jobmarket/internal/core/domain/model/kernel"
)

// OrderSession is the mutation surface the command handlers drive. It is
// implemented by the application session, which serializes all state
// changes.
type OrderSession interface {
	Accept(ctx context.Context, id kernel.UUID) error
	Reject(ctx context.Context, id kernel.UUID) error
	Complete(ctx context.Context, id kernel.UUID) error
	GoOnline(ctx context.Context, categories []string, priceRange kernel.PriceRange) error
	GoOffline(ctx context.Context) error
}
