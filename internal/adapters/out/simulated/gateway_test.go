package simulated

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmarket/internal/core/domain/model/kernel"
	"jobmarket/internal/core/domain/model/order"
	"jobmarket/internal/core/ports"
	"jobmarket/internal/pkg/errs"
)

func newGateway(t *testing.T, confirmDelay time.Duration) *Gateway {
	t.Helper()
	return NewGateway(confirmDelay, 42, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGateway_ListOfferedOrders(t *testing.T) {
	ctx := context.Background()
	g := newGateway(t, time.Second)

	orders, err := g.ListOfferedOrders(ctx, []string{"cat-construction", "cat-plumbing"})

	require.NoError(t, err)
	require.NotEmpty(t, orders)
	for _, o := range orders {
		assert.Equal(t, order.Offered, o.Status())
		assert.Contains(t, []string{"cat-construction", "cat-plumbing"}, o.CategoryID())
		assert.GreaterOrEqual(t, o.Price().Amount(), int64(offerMinPrice))
		assert.LessOrEqual(t, o.Price().Amount(), int64(offerMaxPrice))
	}
}

func TestGateway_AcceptOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("should return an accepted snapshot and confirm later", func(t *testing.T) {
		g := newGateway(t, 10*time.Millisecond)
		confirmed := make(chan ports.OrderEvent, 1)
		stop, err := g.Subscribe(ctx, func(e ports.OrderEvent) { confirmed <- e })
		require.NoError(t, err)
		defer stop()

		orders, err := g.ListOfferedOrders(ctx, []string{"cat-construction"})
		require.NoError(t, err)
		target := orders[0]

		snapshot, err := g.AcceptOrder(ctx, target.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Accepted, snapshot.Status())
		assert.Nil(t, snapshot.RequesterName())

		select {
		case event := <-confirmed:
			assert.Equal(t, ports.EventUpdated, event.Kind)
			assert.Equal(t, order.Approved, event.Order.Status())
			require.NotNil(t, event.Order.RequesterName())
			assert.Equal(t, requesterName, *event.Order.RequesterName())
			require.NotNil(t, event.Order.RequesterPhone())
			assert.Equal(t, requesterPhone, *event.Order.RequesterPhone())
		case <-time.After(time.Second):
			t.Fatal("confirmation event never arrived")
		}
	})

	t.Run("should return not found for an unknown id", func(t *testing.T) {
		g := newGateway(t, time.Second)

		_, err := g.AcceptOrder(ctx, kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should return a conflict for an already accepted order", func(t *testing.T) {
		g := newGateway(t, time.Hour)
		orders, err := g.ListOfferedOrders(ctx, []string{"cat-construction"})
		require.NoError(t, err)
		target := orders[0]

		_, err = g.AcceptOrder(ctx, target.ID())
		require.NoError(t, err)

		_, err = g.AcceptOrder(ctx, target.ID())
		require.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestGateway_CompleteOrder(t *testing.T) {
	ctx := context.Background()
	g := newGateway(t, time.Hour)

	orders, err := g.ListOfferedOrders(ctx, []string{"cat-plumbing"})
	require.NoError(t, err)
	target := orders[0]

	_, err = g.AcceptOrder(ctx, target.ID())
	require.NoError(t, err)

	snapshot, err := g.CompleteOrder(ctx, target.ID())

	require.NoError(t, err)
	assert.Equal(t, order.Completed, snapshot.Status())
	require.NotNil(t, snapshot.CompletedAt())
	require.NotNil(t, snapshot.RequesterName())
}
